package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	yaml "gopkg.in/yaml.v2"
)

type wizardConfig struct {
	Common struct {
		LogLevel           string `yaml:"log_level"`
		Workers            int    `yaml:"workers"`
		SnapshotFile       string `yaml:"snapshot_file"`
		StalenessThreshold string `yaml:"staleness_threshold"`
	} `yaml:"common"`
	GitHub struct {
		Org          string `yaml:"org"`
		Topic        string `yaml:"topic"`
		TemplateRepo string `yaml:"template_repo,omitempty"`
	} `yaml:"github"`
}

// runInitWizard collects the minimal settings interactively and writes
// them to path. Token handling stays out of the file on purpose: tokens
// come from GITHUB_TOKEN or vault.
func runInitWizard(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, remove it first", path)
	}

	var conf wizardConfig
	conf.Common.LogLevel = "info"
	conf.Common.Workers = 4
	conf.Common.SnapshotFile = "data/dashboard-data.json"
	conf.Common.StalenessThreshold = "45d"
	conf.GitHub.Org = "monarch-initiative"
	conf.GitHub.Topic = "kozahub-ingest"

	notEmpty := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("cannot be empty")
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GitHub organization").
				Description("Organization whose repositories are monitored.").
				Value(&conf.GitHub.Org).
				Validate(notEmpty),
			huh.NewInput().
				Title("Discovery topic").
				Description("Repositories carrying this topic appear on the dashboard.").
				Value(&conf.GitHub.Topic).
				Validate(notEmpty),
			huh.NewInput().
				Title("Template repository").
				Description("Optional org/name of the copier template, empty to skip template tracking.").
				Value(&conf.GitHub.TemplateRepo),
			huh.NewInput().
				Title("Staleness threshold").
				Description("Release age after which a passing ingest is marked stale, e.g. 45d.").
				Value(&conf.Common.StalenessThreshold).
				Validate(notEmpty),
			huh.NewInput().
				Title("Snapshot file").
				Description("Where the collector writes dashboard-data.json.").
				Value(&conf.Common.SnapshotFile).
				Validate(notEmpty),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	raw, err := yaml.Marshal(&conf)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

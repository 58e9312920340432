package config

import (
	"fmt"
	"os"
	"time"

	"github.com/monarch-initiative/kozahub-dashboard/helpers"

	yaml "gopkg.in/yaml.v2"
)

type Common struct {
	LogLevel        string `yaml:"log_level"`
	LogFile         string `yaml:"log_file"`
	Workers         int    `yaml:"workers"`
	SnapshotFile    string `yaml:"snapshot_file"`
	StalenessString string `yaml:"staleness_threshold"`

	StalenessThreshold time.Duration `yaml:"-"`
}

type GitHub struct {
	Org          string `yaml:"org"`
	Topic        string `yaml:"topic"`
	Token        string `yaml:"token"`
	TemplateRepo string `yaml:"template_repo"`
}

// Vault describes an optional token lookup. When enabled the GitHub token
// is read from the secret at Path under Key instead of config/env.
type Vault struct {
	Enable   bool   `yaml:"enable"`
	VaultURL string `yaml:"vault_url"`
	RoleID   string `yaml:"role_id"`
	SecretID string `yaml:"secret_id"`
	Token    string `yaml:"token"`
	Path     string `yaml:"path"`
	Key      string `yaml:"key"`
}

type Metrics struct {
	GraphiteAddress    string `yaml:"graphite_address"`
	Prefix             string `yaml:"prefix"`
	SendIntervalString string `yaml:"send_interval"`

	SendInterval time.Duration `yaml:"-"`
}

type Render struct {
	Snapshot string `yaml:"snapshot"`
	Output   string `yaml:"output"`
	Title    string `yaml:"title"`
}

type Config struct {
	Common  *Common  `yaml:"common"`
	GitHub  *GitHub  `yaml:"github"`
	Vault   *Vault   `yaml:"vault"`
	Metrics *Metrics `yaml:"metrics"`
	Render  *Render  `yaml:"render"`
}

func defaultConfig() *Config {
	return &Config{
		Common: &Common{
			LogLevel:        "info",
			Workers:         4,
			SnapshotFile:    "data/dashboard-data.json",
			StalenessString: "45d",
		},
		GitHub: &GitHub{
			Org:          "monarch-initiative",
			Topic:        "kozahub-ingest",
			TemplateRepo: "monarch-initiative/koza-ingest-template",
		},
		Vault: &Vault{
			Key: "token",
		},
		Metrics: &Metrics{
			SendIntervalString: "1m",
		},
		Render: &Render{
			Snapshot: "data/dashboard-data.json",
			Output:   "site/index.html",
			Title:    "KozaHub Ingest Dashboard",
		},
	}
}

func LoadConfig(configLocation string) (*Config, error) {
	config := defaultConfig()
	configYaml, err := os.ReadFile(configLocation)
	if err != nil {
		return nil, fmt.Errorf("can't read with: %v", err)
	}
	if err = yaml.Unmarshal(configYaml, &config); err != nil {
		return nil, fmt.Errorf("can't parse with: %v", err)
	}
	config.Common.StalenessThreshold, err = helpers.ParseDuration(config.Common.StalenessString)
	if err != nil {
		return nil, err
	}
	if config.Common.StalenessThreshold < time.Hour*24 {
		return nil, fmt.Errorf("staleness_threshold so small")
	}
	config.Metrics.SendInterval, err = helpers.ParseDuration(config.Metrics.SendIntervalString)
	if err != nil {
		return nil, err
	}
	return config, nil
}

func PrintDefaultConfig() {
	c := defaultConfig()
	d, _ := yaml.Marshal(&c)
	fmt.Print(string(d))
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/monarch-initiative/kozahub-dashboard/config"
	"github.com/monarch-initiative/kozahub-dashboard/render"

	"github.com/rs/zerolog"
)

var (
	configFlag   = flag.String("config", "config.yml", "config file location")
	snapshotFlag = flag.String("snapshot", "", "snapshot file path or URL, overrides config")
	outFlag      = flag.String("out", "", "output HTML file, overrides config")
)

func main() {
	flag.Parse()

	conf, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open config %s: %v\n", *configFlag, err)
		os.Exit(1)
	}
	if *snapshotFlag != "" {
		conf.Render.Snapshot = *snapshotFlag
	}
	if *outFlag != "" {
		conf.Render.Output = *outFlag
	}

	logger := zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger().Output(zerolog.ConsoleWriter{Out: os.Stdout})

	out, err := createOutput(conf.Render.Output)
	if err != nil {
		logger.Error().Str("error", err.Error()).Str("file", conf.Render.Output).Msg("can't create output")
		os.Exit(1)
	}
	defer out.Close()

	snapshot, loadErr := render.LoadSnapshot(conf.Render.Snapshot)
	if loadErr != nil {
		// The page always exists, it just says what went wrong.
		logger.Error().Str("error", loadErr.Error()).Msg("can't load snapshot, rendering error page")
		if err := render.WriteErrorHTML(out, conf.Render.Title, loadErr); err != nil {
			logger.Error().Str("error", err.Error()).Msg("can't render error page")
		}
		os.Exit(1)
	}

	if err := render.WriteHTML(out, conf.Render.Title, snapshot, time.Now().UTC()); err != nil {
		logger.Error().Str("error", err.Error()).Msg("can't render dashboard")
		os.Exit(1)
	}
	logger.Info().Int("ingests", len(snapshot.Ingests)).Str("file", conf.Render.Output).Msg("dashboard rendered")
}

func createOutput(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

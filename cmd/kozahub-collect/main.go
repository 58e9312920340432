package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"
	"time"

	"github.com/monarch-initiative/kozahub-dashboard/collector"
	"github.com/monarch-initiative/kozahub-dashboard/config"
	"github.com/monarch-initiative/kozahub-dashboard/github"
	"github.com/monarch-initiative/kozahub-dashboard/helpers"
	"github.com/monarch-initiative/kozahub-dashboard/metrics"
	"github.com/monarch-initiative/kozahub-dashboard/render"
	"github.com/monarch-initiative/kozahub-dashboard/state/snapshotstore"
	"github.com/monarch-initiative/kozahub-dashboard/vault"

	"github.com/joho/godotenv"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

var (
	version         = "unknown"
	configFlag      = flag.String("config", "config.yml", "config file location")
	outputFlag      = flag.String("output", "", "override snapshot file location")
	initFlag        = flag.Bool("init", false, "Run the interactive config wizard and exit")
	pprofFlag       = flag.Bool("pprof", false, "Enable listen pprof on :6060")
	printConfigFlag = flag.Bool("default-config", false, "Print default config to stdout and exit")
)

func main() {
	flag.Parse()

	if *printConfigFlag {
		config.PrintDefaultConfig()
		os.Exit(0)
	}
	if *initFlag {
		if err := runInitWizard(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	conf, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open config %s: %v\n", *configFlag, err)
		os.Exit(1)
	}
	if *outputFlag != "" {
		conf.Common.SnapshotFile = *outputFlag
	}

	logger := createLogger(conf.Common)

	_ = godotenv.Load()
	token, err := resolveToken(conf)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("can't resolve github token")
		os.Exit(1)
	}
	if token == "" {
		logger.Warn().Msg("no github token, using anonymous rate limits")
	}

	metricsRepo := metrics.StartMetricsRepo(conf.Metrics, logger)

	c := &collector.Collector{
		Provider: &github.Client{Token: token},
		Log:      logger,
		Metrics: collector.Metrics{
			FetchErrors: metricsRepo.CreateCounter("fetch.errors"),
		},
		Org:                conf.GitHub.Org,
		Topic:              conf.GitHub.Topic,
		TemplateRepo:       conf.GitHub.TemplateRepo,
		StalenessThreshold: conf.Common.StalenessThreshold,
		Workers:            conf.Common.Workers,
	}

	if *pprofFlag {
		go func() {
			if err := http.ListenAndServe(":6060", nil); err != nil {
				logger.Error().Str("error", err.Error()).Msg("can't start pprof")
			}
		}()
	}

	statusTicker := time.NewTicker(time.Second * 10)
	defer statusTicker.Stop()
	go func() {
		for range statusTicker.C {
			if inFlight := c.Status(); len(inFlight) > 0 {
				logger.Info().Str("repos", strings.Join(inFlight, ",")).Msg("fetching")
			}
		}
	}()

	logger.Info().Str("version", version).Msg("collection started")
	startTime := time.Now()

	snapshot, err := c.Collect()
	if err != nil {
		var discoveryErr *collector.DiscoveryError
		if errors.As(err, &discoveryErr) {
			logger.Error().Str("error", err.Error()).Msg("discovery failed, prior snapshot left untouched")
		} else {
			logger.Error().Str("error", err.Error()).Msg("collection failed")
		}
		metricsRepo.Stop()
		os.Exit(1)
	}

	store := &snapshotstore.Store{Location: conf.Common.SnapshotFile}
	if err := store.Save(snapshot); err != nil {
		logger.Error().Str("error", err.Error()).Str("file", conf.Common.SnapshotFile).Msg("can't save snapshot")
		metricsRepo.Stop()
		os.Exit(1)
	}

	summary := render.Summarize(snapshot)
	metricsRepo.CreateGauge("ingests.healthy").Set(float64(summary.Healthy))
	metricsRepo.CreateGauge("ingests.stale").Set(float64(summary.Stale))
	metricsRepo.CreateGauge("ingests.failed").Set(float64(summary.Failed))
	metricsRepo.CreateGauge("run.duration_seconds").Set(time.Since(startTime).Seconds())

	logger.Info().
		Int("total", summary.Total).
		Int("healthy", summary.Healthy).
		Int("stale", summary.Stale).
		Int("failed", summary.Failed).
		Str("duration", helpers.PrettyDuration(time.Since(startTime))).
		Str("file", conf.Common.SnapshotFile).
		Msg("snapshot written")

	if err := metricsRepo.Stop(); err != nil {
		logger.Error().Str("error", err.Error()).Str("service", "metrics repository").Msg("can't stop")
	}
}

func resolveToken(conf *config.Config) (string, error) {
	if conf.Vault != nil && conf.Vault.Enable {
		return vault.Token(conf.Vault)
	}
	if conf.GitHub.Token != "" {
		return conf.GitHub.Token, nil
	}
	return os.Getenv("GITHUB_TOKEN"), nil
}

func createLogger(conf *config.Common) zerolog.Logger {
	var lvl zerolog.Level
	switch conf.LogLevel {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		fmt.Fprintf(os.Stderr, "Unknown logging level '%s'", conf.LogLevel)
		os.Exit(1)
	}
	if conf.LogFile != "" {
		writer := &lumberjack.Logger{
			Filename: conf.LogFile,
			MaxSize:  100, //MB
			MaxAge:   1,   //d
			Compress: true,
		}
		return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger().Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

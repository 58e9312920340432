package metrics

import (
	"github.com/monarch-initiative/kozahub-dashboard/config"

	m "github.com/go-kit/kit/metrics"
	"github.com/rs/zerolog"
)

type IMetricsRepo interface {
	CreateCounter(string) m.Counter
	CreateGauge(string) m.Gauge
	Stop() error
}

// StartMetricsRepo picks the graphite backend when one is configured and a
// discarding one otherwise, so callers never branch on config.
func StartMetricsRepo(config *config.Metrics, log zerolog.Logger) IMetricsRepo {
	if config.GraphiteAddress != "" && config.Prefix != "" {
		return startGraphiteRepo(config.GraphiteAddress, config.Prefix, config.SendInterval, &log)
	}
	return &noopRepo{}
}

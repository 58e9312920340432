package collector

import (
	"time"

	kozahub "github.com/monarch-initiative/kozahub-dashboard"
)

const DefaultStalenessThreshold = 45 * 24 * time.Hour

// Classify derives the health status of an ingest from its most recent
// workflow run and release. It is a pure function of its arguments so the
// staleness boundary can be pinned down in tests.
//
// A release aged exactly the threshold counts as stale: ages below the
// threshold are healthy, ages at or above it are stale.
func Classify(release *kozahub.Release, run *kozahub.WorkflowRun, threshold time.Duration, now time.Time) kozahub.Status {
	if run == nil || run.Conclusion == nil || *run.Conclusion != "success" {
		return kozahub.StatusFailed
	}
	// A repo that never released anything has nothing to be stale about,
	// it just never worked end to end.
	if release == nil {
		return kozahub.StatusFailed
	}
	if now.Sub(release.Date) >= threshold {
		return kozahub.StatusStale
	}
	return kozahub.StatusHealthy
}

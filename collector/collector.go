package collector

import (
	"fmt"
	"sort"
	"time"

	kozahub "github.com/monarch-initiative/kozahub-dashboard"

	m "github.com/go-kit/kit/metrics"
	"github.com/rs/zerolog"
	sync "github.com/sasha-s/go-deadlock"
	"gopkg.in/tomb.v2"
)

// DiscoveryError means the candidate listing itself failed. It is the only
// fatal error of a collection run: no snapshot is written and the prior
// artifact stays untouched.
type DiscoveryError struct {
	Org   string
	Topic string
	Err   error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("can't discover repos for org %s topic %s: %v", e.Org, e.Topic, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

type Metrics struct {
	FetchErrors m.Counter
}

// Collector runs one collection pass over every repository carrying the
// discovery topic. Per-repo failures degrade to absent data; only
// discovery failures abort the run.
type Collector struct {
	Provider kozahub.IDataProvider
	Log      zerolog.Logger
	Metrics  Metrics

	Org                string
	Topic              string
	TemplateRepo       string
	StalenessThreshold time.Duration
	Workers            int
	Now                func() time.Time

	inFlightSync sync.RWMutex
	inFlight     map[string]time.Time
}

func (c *Collector) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}

func (c *Collector) threshold() time.Duration {
	if c.StalenessThreshold > 0 {
		return c.StalenessThreshold
	}
	return DefaultStalenessThreshold
}

// Status reports the repositories currently being fetched, oldest first.
func (c *Collector) Status() []string {
	c.inFlightSync.RLock()
	defer c.inFlightSync.RUnlock()
	names := make([]string, 0, len(c.inFlight))
	for name := range c.inFlight {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return c.inFlight[names[i]].Before(c.inFlight[names[j]])
	})
	return names
}

func (c *Collector) markStart(name string) {
	c.inFlightSync.Lock()
	defer c.inFlightSync.Unlock()
	if c.inFlight == nil {
		c.inFlight = map[string]time.Time{}
	}
	c.inFlight[name] = time.Now().UTC()
}

func (c *Collector) markDone(name string) {
	c.inFlightSync.Lock()
	defer c.inFlightSync.Unlock()
	delete(c.inFlight, name)
}

// Collect produces one full snapshot. The returned snapshot is sorted by
// repository name regardless of discovery order.
func (c *Collector) Collect() (*kozahub.Snapshot, error) {
	now := c.now()

	refs, err := c.Provider.SearchTopicRepos(c.Org, c.Topic)
	if err != nil {
		return nil, &DiscoveryError{Org: c.Org, Topic: c.Topic, Err: err}
	}
	c.Log.Info().Int("count", len(refs)).Str("org", c.Org).Str("topic", c.Topic).Msg("repos discovered")

	templateHistory := c.fetchTemplateHistory()

	workers := c.Workers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan kozahub.RepoRef)
	results := make(chan kozahub.Ingest, len(refs))

	var t tomb.Tomb
	for i := 0; i < workers; i++ {
		t.Go(func() error {
			for ref := range jobs {
				c.markStart(ref.Name)
				results <- c.fetchIngest(ref, templateHistory, now)
				c.markDone(ref.Name)
			}
			return nil
		})
	}
	for _, ref := range refs {
		jobs <- ref
	}
	close(jobs)
	if err := t.Wait(); err != nil {
		return nil, err
	}
	close(results)

	ingests := make([]kozahub.Ingest, 0, len(refs))
	for ingest := range results {
		ingests = append(ingests, ingest)
	}
	sort.Slice(ingests, func(i, j int) bool { return ingests[i].Name < ingests[j].Name })

	return &kozahub.Snapshot{
		LastUpdated: now,
		Template:    templateInfo(c.TemplateRepo, templateHistory),
		Ingests:     ingests,
	}, nil
}

func (c *Collector) fetchIngest(ref kozahub.RepoRef, templateHistory []string, now time.Time) kozahub.Ingest {
	release, err := c.Provider.LatestRelease(ref.Path)
	if err != nil {
		c.countFetchError()
		c.Log.Warn().Str("error", err.Error()).Str("repo", ref.Path).Msg("can't fetch latest release")
		release = nil
	}
	run, err := c.Provider.LatestWorkflowRun(ref.Path)
	if err != nil {
		c.countFetchError()
		c.Log.Warn().Str("error", err.Error()).Str("repo", ref.Path).Msg("can't fetch latest workflow run")
		run = nil
	}

	ingest := kozahub.Ingest{
		Name:            ref.Name,
		RepoURL:         ref.URL,
		KozaVersion:     c.fetchKozaVersion(ref.Path),
		LastRelease:     release,
		LastWorkflowRun: run,
		TemplateStatus:  c.fetchTemplateStatus(ref.Path, templateHistory),
		Status:          Classify(release, run, c.threshold(), now),
	}
	c.Log.Debug().Str("repo", ref.Path).Str("status", string(ingest.Status)).Msg("ingest collected")
	return ingest
}

func (c *Collector) fetchKozaVersion(repoPath string) string {
	src, err := c.Provider.FileContent(repoPath, "pyproject.toml")
	if err != nil {
		c.Log.Debug().Str("error", err.Error()).Str("repo", repoPath).Msg("no readable pyproject.toml")
		return ""
	}
	return kozaMajorVersion(src)
}

func (c *Collector) fetchTemplateStatus(repoPath string, templateHistory []string) *kozahub.TemplateStatus {
	if len(templateHistory) == 0 {
		return nil
	}
	src, err := c.Provider.FileContent(repoPath, ".copier-answers.yml")
	if err != nil {
		return nil
	}
	answers, ok := parseCopierAnswers(src)
	if !ok {
		return nil
	}
	return &kozahub.TemplateStatus{
		Commit:        answers.Commit,
		CommitsBehind: commitsBehind(answers.Commit, templateHistory),
	}
}

func (c *Collector) fetchTemplateHistory() []string {
	if c.TemplateRepo == "" {
		return nil
	}
	history, err := c.Provider.ListCommitSHAs(c.TemplateRepo)
	if err != nil {
		c.countFetchError()
		c.Log.Warn().Str("error", err.Error()).Str("repo", c.TemplateRepo).Msg("can't fetch template history")
		return nil
	}
	return history
}

func (c *Collector) countFetchError() {
	if c.Metrics.FetchErrors != nil {
		c.Metrics.FetchErrors.Add(1)
	}
}

func templateInfo(templateRepo string, history []string) *kozahub.TemplateInfo {
	if templateRepo == "" || len(history) == 0 {
		return nil
	}
	latest := history[0]
	if len(latest) > 7 {
		latest = latest[:7]
	}
	return &kozahub.TemplateInfo{
		RepoURL:      "https://github.com/" + templateRepo,
		LatestCommit: latest,
		TotalCommits: len(history),
	}
}

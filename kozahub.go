package kozahub

import (
	"time"
)

// Status is the derived health of an ingest. It is recomputed on every
// collection run, never carried over from a previous snapshot.
type Status string

const (
	StatusHealthy Status = "healthy"
	StatusStale   Status = "stale"
	StatusFailed  Status = "failed"
)

// RepoRef identifies a repository returned by topic discovery.
type RepoRef struct {
	Name string
	Path string // "org/name"
	URL  string
}

type Release struct {
	Tag  string    `json:"tag"`
	URL  string    `json:"url"`
	Date time.Time `json:"date"`
}

type WorkflowRun struct {
	URL        string    `json:"url"`
	Conclusion *string   `json:"conclusion"`
	Date       time.Time `json:"date"`
}

// TemplateStatus describes how far an ingest lags behind the copier
// template it was generated from. CommitsBehind is nil when the recorded
// commit is not found in the template history.
type TemplateStatus struct {
	Commit        string `json:"commit"`
	CommitsBehind *int   `json:"commits_behind"`
}

type TemplateInfo struct {
	RepoURL      string `json:"repo_url"`
	LatestCommit string `json:"latest_commit"`
	TotalCommits int    `json:"total_commits"`
}

type Ingest struct {
	Name            string          `json:"name"`
	RepoURL         string          `json:"repo_url"`
	KozaVersion     string          `json:"koza_version,omitempty"`
	LastRelease     *Release        `json:"last_release,omitempty"`
	LastWorkflowRun *WorkflowRun    `json:"last_workflow_run,omitempty"`
	TemplateStatus  *TemplateStatus `json:"template_status,omitempty"`
	Status          Status          `json:"status"`
}

// Snapshot is one complete collection-run result. Each run replaces the
// prior snapshot wholesale.
type Snapshot struct {
	LastUpdated time.Time     `json:"last_updated"`
	Template    *TemplateInfo `json:"template,omitempty"`
	Ingests     []Ingest      `json:"ingests"`
}

type IDataProvider interface {
	SearchTopicRepos(org, topic string) ([]RepoRef, error)
	LatestRelease(repoPath string) (*Release, error)
	LatestWorkflowRun(repoPath string) (*WorkflowRun, error)
	FileContent(repoPath, filePath string) (string, error)
	ListCommitSHAs(repoPath string) ([]string, error)
}

type ISnapshotStore interface {
	Save(*Snapshot) error
	Load() (*Snapshot, error)
}

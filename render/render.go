package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	kozahub "github.com/monarch-initiative/kozahub-dashboard"
	"github.com/monarch-initiative/kozahub-dashboard/helpers"
	"github.com/monarch-initiative/kozahub-dashboard/state/snapshotstore"
)

// ArtifactLoadError means the snapshot artifact could not be retrieved or
// parsed. The renderer recovers from it by producing an error page instead
// of a partial dashboard.
type ArtifactLoadError struct {
	Location string
	Err      error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("can't load snapshot from %s: %v", e.Location, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error { return e.Err }

type Summary struct {
	Healthy int
	Stale   int
	Failed  int
	Total   int
}

func Summarize(snapshot *kozahub.Snapshot) Summary {
	summary := Summary{Total: len(snapshot.Ingests)}
	for _, ingest := range snapshot.Ingests {
		switch ingest.Status {
		case kozahub.StatusHealthy:
			summary.Healthy++
		case kozahub.StatusStale:
			summary.Stale++
		default:
			summary.Failed++
		}
	}
	return summary
}

var statusRank = map[kozahub.Status]int{
	kozahub.StatusFailed:  0,
	kozahub.StatusStale:   1,
	kozahub.StatusHealthy: 2,
}

// SortIngests orders entries for display: failing repos first, then stale,
// then healthy, with a case-sensitive lexical name tiebreak.
func SortIngests(ingests []kozahub.Ingest) {
	sort.SliceStable(ingests, func(i, j int) bool {
		ri, rj := statusRank[ingests[i].Status], statusRank[ingests[j].Status]
		if ri != rj {
			return ri < rj
		}
		return ingests[i].Name < ingests[j].Name
	})
}

// LoadSnapshot retrieves the artifact from a local path or an http(s) URL.
func LoadSnapshot(location string) (*kozahub.Snapshot, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		resp, err := http.Get(location)
		if err != nil {
			return nil, &ArtifactLoadError{Location: location, Err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, &ArtifactLoadError{Location: location, Err: fmt.Errorf("status %s", resp.Status)}
		}
		snapshot := &kozahub.Snapshot{}
		if err := json.NewDecoder(resp.Body).Decode(snapshot); err != nil {
			return nil, &ArtifactLoadError{Location: location, Err: err}
		}
		return snapshot, nil
	}
	store := &snapshotstore.Store{Location: location}
	snapshot, err := store.Load()
	if err != nil {
		return nil, &ArtifactLoadError{Location: location, Err: err}
	}
	return snapshot, nil
}

type entryView struct {
	Name        string
	RepoURL     string
	Status      kozahub.Status
	KozaV2      bool
	Release     *kozahub.Release
	ReleaseAge  string
	Workflow    *kozahub.WorkflowRun
	Conclusion  string
	WorkflowAge string
	Template    string
}

type pageView struct {
	Title       string
	LastUpdated string
	Summary     Summary
	Template    *kozahub.TemplateInfo
	Entries     []entryView
	Error       string
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardTemplate))

// WriteHTML renders the full dashboard. Entries are ordered by severity
// then name, per SortIngests.
func WriteHTML(w io.Writer, title string, snapshot *kozahub.Snapshot, now time.Time) error {
	ingests := make([]kozahub.Ingest, len(snapshot.Ingests))
	copy(ingests, snapshot.Ingests)
	SortIngests(ingests)

	view := pageView{
		Title:       title,
		LastUpdated: helpers.FormatDate(snapshot.LastUpdated),
		Summary:     Summarize(snapshot),
		Template:    snapshot.Template,
	}
	for _, ingest := range ingests {
		view.Entries = append(view.Entries, makeEntryView(ingest, now))
	}
	return dashboardTmpl.Execute(w, view)
}

// WriteErrorHTML renders a single error placeholder in place of all
// entries.
func WriteErrorHTML(w io.Writer, title string, loadErr error) error {
	return dashboardTmpl.Execute(w, pageView{
		Title: title,
		Error: loadErr.Error(),
	})
}

func makeEntryView(ingest kozahub.Ingest, now time.Time) entryView {
	view := entryView{
		Name:     ingest.Name,
		RepoURL:  ingest.RepoURL,
		Status:   ingest.Status,
		KozaV2:   ingest.KozaVersion == "2",
		Release:  ingest.LastRelease,
		Workflow: ingest.LastWorkflowRun,
	}
	if ingest.LastRelease != nil {
		view.ReleaseAge = helpers.TimeAgo(&ingest.LastRelease.Date, now)
	}
	if ingest.LastWorkflowRun != nil {
		view.WorkflowAge = helpers.TimeAgo(&ingest.LastWorkflowRun.Date, now)
		view.Conclusion = "unknown"
		if ingest.LastWorkflowRun.Conclusion != nil {
			view.Conclusion = *ingest.LastWorkflowRun.Conclusion
		}
	}
	if ingest.TemplateStatus != nil {
		if ingest.TemplateStatus.CommitsBehind == nil {
			view.Template = fmt.Sprintf("template commit %s not in history", ingest.TemplateStatus.Commit)
		} else if behind := *ingest.TemplateStatus.CommitsBehind; behind == 0 {
			view.Template = "template up to date"
		} else {
			view.Template = fmt.Sprintf("%d commits behind template", behind)
		}
	}
	return view
}

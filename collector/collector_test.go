package collector

import (
	"fmt"
	"testing"
	"time"

	kozahub "github.com/monarch-initiative/kozahub-dashboard"

	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeRepo struct {
	release  *kozahub.Release
	run      *kozahub.WorkflowRun
	files    map[string]string
	fetchErr error
}

type fakeProvider struct {
	repos           map[string]fakeRepo
	templateHistory []string
	discoveryErr    error
}

func (f *fakeProvider) SearchTopicRepos(org, topic string) ([]kozahub.RepoRef, error) {
	if f.discoveryErr != nil {
		return nil, f.discoveryErr
	}
	var refs []kozahub.RepoRef
	for name := range f.repos {
		refs = append(refs, kozahub.RepoRef{
			Name: name,
			Path: org + "/" + name,
			URL:  "https://github.com/" + org + "/" + name,
		})
	}
	return refs, nil
}

func (f *fakeProvider) repo(repoPath string) fakeRepo {
	for name, repo := range f.repos {
		if repoPath == "test-org/"+name {
			return repo
		}
	}
	return fakeRepo{}
}

func (f *fakeProvider) LatestRelease(repoPath string) (*kozahub.Release, error) {
	r := f.repo(repoPath)
	return r.release, r.fetchErr
}

func (f *fakeProvider) LatestWorkflowRun(repoPath string) (*kozahub.WorkflowRun, error) {
	r := f.repo(repoPath)
	return r.run, r.fetchErr
}

func (f *fakeProvider) FileContent(repoPath, filePath string) (string, error) {
	if src, ok := f.repo(repoPath).files[filePath]; ok {
		return src, nil
	}
	return "", fmt.Errorf("404 not found")
}

func (f *fakeProvider) ListCommitSHAs(repoPath string) ([]string, error) {
	return f.templateHistory, nil
}

func testCollector(provider kozahub.IDataProvider, now time.Time) *Collector {
	return &Collector{
		Provider: provider,
		Log:      zerolog.Nop(),
		Org:      "test-org",
		Topic:    "kozahub-ingest",
		Workers:  3,
		Now:      func() time.Time { return now },
	}
}

func TestCollect(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	Convey("full scenario", t, func() {
		provider := &fakeProvider{
			repos: map[string]fakeRepo{
				"alpha-ingest": {
					release: releasedAt(now.AddDate(0, 0, -10)),
					run:     runWith(conclusion("success")),
				},
				"beta-ingest": {
					release: releasedAt(now.AddDate(0, 0, -100)),
					run:     runWith(conclusion("success")),
				},
				"gamma-ingest": {
					release: releasedAt(now.AddDate(0, 0, -1)),
					run:     runWith(conclusion("failure")),
				},
				"delta-ingest": {},
			},
		}
		snapshot, err := testCollector(provider, now).Collect()
		So(err, ShouldBeNil)
		So(snapshot.LastUpdated, ShouldEqual, now)
		So(len(snapshot.Ingests), ShouldEqual, 4)

		byName := map[string]kozahub.Ingest{}
		for _, ingest := range snapshot.Ingests {
			byName[ingest.Name] = ingest
		}
		So(byName["alpha-ingest"].Status, ShouldEqual, kozahub.StatusHealthy)
		So(byName["beta-ingest"].Status, ShouldEqual, kozahub.StatusStale)
		So(byName["gamma-ingest"].Status, ShouldEqual, kozahub.StatusFailed)
		So(byName["delta-ingest"].Status, ShouldEqual, kozahub.StatusFailed)

		Convey("output is sorted by name", func() {
			names := []string{}
			for _, ingest := range snapshot.Ingests {
				names = append(names, ingest.Name)
			}
			So(names, ShouldResemble, []string{"alpha-ingest", "beta-ingest", "delta-ingest", "gamma-ingest"})
		})
	})

	Convey("discovery failure is fatal", t, func() {
		provider := &fakeProvider{discoveryErr: fmt.Errorf("rate limited")}
		snapshot, err := testCollector(provider, now).Collect()
		So(snapshot, ShouldBeNil)
		So(err, ShouldNotBeNil)
		discoveryErr, ok := err.(*DiscoveryError)
		So(ok, ShouldBeTrue)
		So(discoveryErr.Org, ShouldEqual, "test-org")
	})

	Convey("per-repo fetch failure degrades to absent data", t, func() {
		provider := &fakeProvider{
			repos: map[string]fakeRepo{
				"broken-ingest": {fetchErr: fmt.Errorf("network down")},
				"alpha-ingest": {
					release: releasedAt(now.AddDate(0, 0, -10)),
					run:     runWith(conclusion("success")),
				},
			},
		}
		snapshot, err := testCollector(provider, now).Collect()
		So(err, ShouldBeNil)
		So(len(snapshot.Ingests), ShouldEqual, 2)

		broken := snapshot.Ingests[1]
		So(broken.Name, ShouldEqual, "broken-ingest")
		So(broken.LastRelease, ShouldBeNil)
		So(broken.LastWorkflowRun, ShouldBeNil)
		So(broken.Status, ShouldEqual, kozahub.StatusFailed)
		So(snapshot.Ingests[0].Status, ShouldEqual, kozahub.StatusHealthy)
	})

	Convey("koza version and template status from repo files", t, func() {
		provider := &fakeProvider{
			templateHistory: []string{
				"ccc3333333333333333333333333333333333333",
				"bbb2222222222222222222222222222222222222",
				"aaa1111111111111111111111111111111111111",
			},
			repos: map[string]fakeRepo{
				"alpha-ingest": {
					release: releasedAt(now.AddDate(0, 0, -10)),
					run:     runWith(conclusion("success")),
					files: map[string]string{
						"pyproject.toml":      "[project]\ndependencies = [\"koza>=2.0.0\"]\n",
						".copier-answers.yml": "_commit: bbb2222\n_src_path: gh:test-org/template\n",
					},
				},
			},
		}
		c := testCollector(provider, now)
		c.TemplateRepo = "test-org/template"
		snapshot, err := c.Collect()
		So(err, ShouldBeNil)

		ingest := snapshot.Ingests[0]
		So(ingest.KozaVersion, ShouldEqual, "2")
		So(ingest.TemplateStatus, ShouldNotBeNil)
		So(ingest.TemplateStatus.Commit, ShouldEqual, "bbb2222")
		So(*ingest.TemplateStatus.CommitsBehind, ShouldEqual, 1)

		So(snapshot.Template, ShouldNotBeNil)
		So(snapshot.Template.LatestCommit, ShouldEqual, "ccc3333")
		So(snapshot.Template.TotalCommits, ShouldEqual, 3)
	})
}

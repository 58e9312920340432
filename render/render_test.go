package render

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	kozahub "github.com/monarch-initiative/kozahub-dashboard"

	. "github.com/smartystreets/goconvey/convey"
)

func ingest(name string, status kozahub.Status) kozahub.Ingest {
	return kozahub.Ingest{
		Name:    name,
		RepoURL: "https://github.com/test-org/" + name,
		Status:  status,
	}
}

func TestSummarize(t *testing.T) {
	Convey("counts add up to the ingest total", t, func() {
		snapshot := &kozahub.Snapshot{
			Ingests: []kozahub.Ingest{
				ingest("a", kozahub.StatusHealthy),
				ingest("b", kozahub.StatusHealthy),
				ingest("c", kozahub.StatusStale),
				ingest("d", kozahub.StatusFailed),
			},
		}
		summary := Summarize(snapshot)
		So(summary.Healthy, ShouldEqual, 2)
		So(summary.Stale, ShouldEqual, 1)
		So(summary.Failed, ShouldEqual, 1)
		So(summary.Healthy+summary.Stale+summary.Failed, ShouldEqual, summary.Total)
	})
	Convey("empty snapshot", t, func() {
		summary := Summarize(&kozahub.Snapshot{})
		So(summary.Total, ShouldEqual, 0)
	})
}

func TestSortIngests(t *testing.T) {
	Convey("severity first, then name", t, func() {
		ingests := []kozahub.Ingest{
			ingest("alpha-ingest", kozahub.StatusHealthy),
			ingest("delta-ingest", kozahub.StatusFailed),
			ingest("beta-ingest", kozahub.StatusStale),
			ingest("gamma-ingest", kozahub.StatusFailed),
		}
		SortIngests(ingests)
		names := []string{}
		for _, i := range ingests {
			names = append(names, i.Name)
		}
		So(names, ShouldResemble, []string{"delta-ingest", "gamma-ingest", "beta-ingest", "alpha-ingest"})
	})
	Convey("name tiebreak is case-sensitive lexical", t, func() {
		ingests := []kozahub.Ingest{
			ingest("beta", kozahub.StatusFailed),
			ingest("Zeta", kozahub.StatusFailed),
			ingest("alpha", kozahub.StatusFailed),
		}
		SortIngests(ingests)
		So(ingests[0].Name, ShouldEqual, "Zeta")
		So(ingests[1].Name, ShouldEqual, "alpha")
		So(ingests[2].Name, ShouldEqual, "beta")
	})
}

func TestWriteHTML(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	success := "success"

	Convey("full dashboard", t, func() {
		snapshot := &kozahub.Snapshot{
			LastUpdated: now,
			Ingests: []kozahub.Ingest{
				{
					Name:        "alpha-ingest",
					RepoURL:     "https://github.com/test-org/alpha-ingest",
					KozaVersion: "2",
					LastRelease: &kozahub.Release{
						Tag:  "v1.2.3",
						URL:  "https://github.com/test-org/alpha-ingest/releases/v1.2.3",
						Date: now.AddDate(0, 0, -10),
					},
					LastWorkflowRun: &kozahub.WorkflowRun{
						URL:        "https://github.com/test-org/alpha-ingest/actions/runs/1",
						Conclusion: &success,
						Date:       now.AddDate(0, 0, -9),
					},
					Status: kozahub.StatusHealthy,
				},
				ingest("delta-ingest", kozahub.StatusFailed),
			},
		}
		var buf bytes.Buffer
		So(WriteHTML(&buf, "Test Dashboard", snapshot, now), ShouldBeNil)
		page := buf.String()

		So(page, ShouldContainSubstring, "Test Dashboard")
		So(page, ShouldContainSubstring, "Jun 15, 2024")
		So(page, ShouldContainSubstring, "v1.2.3")
		So(page, ShouldContainSubstring, "10 days ago")
		So(page, ShouldContainSubstring, "koza 2")
		So(page, ShouldContainSubstring, "No releases")
		So(page, ShouldContainSubstring, "No workflow runs")
		So(page, ShouldContainSubstring, "1 failed")
		So(page, ShouldContainSubstring, "1 healthy")

		Convey("failed entry is rendered before the healthy one", func() {
			So(bytes.Index(buf.Bytes(), []byte("delta-ingest")), ShouldBeLessThan, bytes.Index(buf.Bytes(), []byte("alpha-ingest")))
		})
	})

	Convey("error page replaces all entries", t, func() {
		var buf bytes.Buffer
		loadErr := &ArtifactLoadError{Location: "data/dashboard-data.json", Err: fmt.Errorf("no such file")}
		So(WriteErrorHTML(&buf, "Test Dashboard", loadErr), ShouldBeNil)
		page := buf.String()

		So(page, ShouldContainSubstring, "Failed to load dashboard data")
		So(page, ShouldNotContainSubstring, "<table>")
	})
}

func TestLoadSnapshot(t *testing.T) {
	Convey("missing file is an ArtifactLoadError", t, func() {
		_, err := LoadSnapshot("no-such-snapshot.json")
		So(err, ShouldNotBeNil)
		_, ok := err.(*ArtifactLoadError)
		So(ok, ShouldBeTrue)
	})
}

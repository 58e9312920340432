package collector

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestKozaMajorVersion(t *testing.T) {
	Convey("koza 2 constraint", t, func() {
		src := `
[project]
name = "some-ingest"
dependencies = ["koza>=2.0.0", "pandas>=2.0"]
`
		So(kozaMajorVersion(src), ShouldEqual, "2")
	})
	Convey("pinned koza 2 minor", t, func() {
		src := `
[project]
dependencies = ["koza==2.1.0"]
`
		So(kozaMajorVersion(src), ShouldEqual, "2")
	})
	Convey("koza 1 constraint", t, func() {
		src := `
[project]
dependencies = ["koza>=1.0.0"]
`
		So(kozaMajorVersion(src), ShouldEqual, "")
	})
	Convey("no koza dependency", t, func() {
		src := `
[project]
dependencies = ["pandas>=2.0"]
`
		So(kozaMajorVersion(src), ShouldEqual, "")
	})
	Convey("koza without a version constraint", t, func() {
		src := `
[project]
dependencies = ["koza"]
`
		So(kozaMajorVersion(src), ShouldEqual, "")
	})
	Convey("broken toml", t, func() {
		So(kozaMajorVersion("[project\ndependencies ="), ShouldEqual, "")
	})
}

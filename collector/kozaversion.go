package collector

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	toml "github.com/pelletier/go-toml/v2"
)

type pyProject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

var kozaConstraintRe = regexp.MustCompile(`koza\s*[><=!~]+\s*([0-9][0-9.]*)`)

// kozaMajorVersion inspects an ingest's pyproject.toml and reports "2"
// when the koza dependency constraint pins 2.0.0 or later. Anything that
// fails to parse maps to the empty string, same as no koza dependency.
func kozaMajorVersion(pyprojectSrc string) string {
	var project pyProject
	if err := toml.Unmarshal([]byte(pyprojectSrc), &project); err != nil {
		return ""
	}
	for _, dep := range project.Project.Dependencies {
		dep = strings.TrimSpace(dep)
		if !strings.HasPrefix(dep, "koza") {
			continue
		}
		match := kozaConstraintRe.FindStringSubmatch(dep)
		if match == nil {
			return ""
		}
		pinned, err := semver.NewVersion(strings.TrimRight(match[1], "."))
		if err != nil {
			return ""
		}
		if pinned.Major() >= 2 {
			return "2"
		}
		return ""
	}
	return ""
}

package collector

import (
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// copierAnswers is the part of .copier-answers.yml written by the copier
// tool itself.
type copierAnswers struct {
	Commit  string `yaml:"_commit"`
	SrcPath string `yaml:"_src_path"`
}

func parseCopierAnswers(src string) (copierAnswers, bool) {
	var answers copierAnswers
	if err := yaml.Unmarshal([]byte(src), &answers); err != nil {
		return copierAnswers{}, false
	}
	if answers.Commit == "" {
		return copierAnswers{}, false
	}
	return answers, true
}

// commitsBehind locates commit in the template history (newest first) and
// returns its distance from HEAD. The recorded commit may be a short hash.
// Returns nil when the commit is not in the history.
func commitsBehind(commit string, history []string) *int {
	for i, sha := range history {
		if strings.HasPrefix(sha, commit) {
			behind := i
			return &behind
		}
	}
	return nil
}

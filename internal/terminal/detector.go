package terminal

import (
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"TRAVIS",                 // Travis CI
	"CIRCLECI",               // Circle CI
	"JENKINS_URL",            // Jenkins
	"BUILD_NUMBER",           // Jenkins/TeamCity/etc
	"GITLAB_CI",              // GitLab CI
	"APPVEYOR",               // AppVeyor
	"BUILDKITE",              // Buildkite
	"DRONE",                  // Drone CI
	"TF_BUILD",               // Azure DevOps
}

func isTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// isCIEnvironment reports whether one of ciEnvVars is set. CI itself must
// also be truthy: CI=false, CI=0 and CI=no do not count.
func isCIEnvironment(lookup func(string) (string, bool)) bool {
	for _, envVar := range ciEnvVars {
		value, _ := lookup(envVar)
		if value == "" {
			continue
		}
		if envVar == "CI" {
			switch strings.ToLower(strings.TrimSpace(value)) {
			case "false", "0", "no":
				continue
			}
		}
		return true
	}
	return false
}

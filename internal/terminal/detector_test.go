package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCIEnvironment(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"nothing set", nil, false},
		{"CI=true", map[string]string{"CI": "true"}, true},
		{"CI=1", map[string]string{"CI": "1"}, true},
		{"CI=false", map[string]string{"CI": "false"}, false},
		{"CI=No", map[string]string{"CI": " No "}, false},
		{"GitHub Actions", map[string]string{"GITHUB_ACTIONS": "true"}, true},
		{"CI=0 but Jenkins", map[string]string{"CI": "0", "JENKINS_URL": "http://ci"}, true},
		{"empty value", map[string]string{"GITLAB_CI": ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := func(key string) (string, bool) {
				v, ok := tt.env[key]
				return v, ok
			}
			assert.Equal(t, tt.want, isCIEnvironment(lookup))
		})
	}
}

package version

import (
	"regexp"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Core", Core},
		{"CLI", CLI},
		{"Demo", Demo},
		{"REPL", REPL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestCoreVersion(t *testing.T) {
	v := CoreVersion()
	if v.String() != Core {
		t.Errorf("CoreVersion() = %s, want %s", v, Core)
	}
	if v.Exact || v.Postfix != "" {
		t.Errorf("CoreVersion() = %+v, want plain version", v)
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		component string
		expected  string
	}{
		{"cli", CLI},
		{"pl2", CLI},
		{"demo", Demo},
		{"repl", REPL},
		{"unknown", Core},
		{"", Core},
	}

	for _, tt := range tests {
		t.Run(tt.component, func(t *testing.T) {
			if got := ComponentVersion(tt.component); got != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, got, tt.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"pl2 " + CLI, "core " + Core, "commit " + Commit} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

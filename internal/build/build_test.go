package build

import (
	"regexp"
	"testing"
)

func TestVersion(t *testing.T) {
	v := Version()
	if !regexp.MustCompile(`^\d+\.\d+\.\d+`).MatchString(v) {
		t.Errorf("Version() = %q, want a semantic version", v)
	}
}

func TestVersion_LdflagsOverride(t *testing.T) {
	old := version
	t.Cleanup(func() { version = old })

	version = "9.9.9-test"
	if got := Version(); got != "9.9.9-test" {
		t.Errorf("Version() = %q, want ldflags value", got)
	}
}

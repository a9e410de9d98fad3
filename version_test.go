package mp3info

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	info := Build()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("GoVersion = %q, want runtime version", info.GoVersion)
	}
	// Without ldflags both stay at their defaults
	if info.Commit != "unknown" || info.Date != "unknown" {
		t.Errorf("Commit/Date = %q/%q, want unknown defaults", info.Commit, info.Date)
	}
}

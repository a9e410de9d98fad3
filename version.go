package mp3info

import "runtime"

// Version is the library's semantic version.
const Version = "0.1.0"

// BuildInfo describes the build that produced this binary.
//
// Commit and Date come from -ldflags and read "unknown" in plain
// `go build` output:
//
//	go build -ldflags="-X github.com/arafatamim/mp3info.commit=$(git rev-parse --short HEAD) \
//	  -X github.com/arafatamim/mp3info.date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
type BuildInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// Build returns version and build information for this binary.
func Build() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
}

var (
	commit = "unknown"
	date   = "unknown"
)

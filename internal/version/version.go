// Package version carries the application name and build information
// reported on /version.  Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yanizio/curriculum-ai/internal/version.Commit=$(git rev-parse HEAD)"
package version

import "runtime"

// Name and Version tag the HTTP application.
const (
	Name    = "Curriculum AI Service"
	Version = "1.0.0"
)

// Build information, overridden at link time.
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info is the JSON body served on /version.
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Name:      Name,
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

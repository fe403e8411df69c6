// Package version holds build information injected at link time.
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/slinky/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/slinky/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/slinky/internal/version.Date={{.Date}}
)

// Info is the build information of the running binary
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

func (i Info) String() string {
	return fmt.Sprintf("slinky version %s\n  commit: %s\n  built:  %s", i.Version, i.Commit, i.Date)
}

package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/jhaugh0/Rain-Chance-Monitor/internal/version.Version=v1.2.3 \
//	                   -X github.com/jhaugh0/Rain-Chance-Monitor/internal/version.Commit=abc123"
//
// If not set, they are populated from the embedded VCS info, or fall back to
// "dev" with a timestamp. Commit doubles as the local marker compared by the
// update checker, so release builds should always set it.
var (
	// Version is the semantic version of the display firmware
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		populateFromBuildInfo()
	}

	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// populateFromBuildInfo reads vcs.* settings from the Go build info.
func populateFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	var vcsRevision, vcsModified, vcsTime string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			vcsRevision = setting.Value
		case "vcs.modified":
			vcsModified = setting.Value
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	// The full revision is kept so it can be compared with the remote branch sha.
	if Commit == "" && vcsRevision != "" {
		Commit = vcsRevision
		if vcsModified == "true" {
			Commit += "-dirty"
		}
	}

	if Version == "" && vcsTime != "" {
		if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			Version = fmt.Sprintf("dev-%s", t.Format("20060102"))
		}
	}
}

// Short returns the first seven characters of Commit.
func Short() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}

// Full returns the full version string including the short commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Short())
}

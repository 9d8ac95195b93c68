package buildconfig

import (
	"runtime"
	"runtime/debug"
	"sync"
)

// Overridden at link time:
//
//	go build -ldflags "-X github.com/Harshitk-cp/rks/internal/buildconfig.version=v0.3.0 -X github.com/Harshitk-cp/rks/internal/buildconfig.commit=$(git rev-parse --short HEAD)"
var (
	version = "dev"
	commit  = ""
)

const shortCommitLen = 12

var resolveOnce sync.Once

// resolve fills commit from the VCS stamp `go build` embeds when ldflags
// did not set it.
func resolve() {
	resolveOnce.Do(func() {
		if commit != "" {
			return
		}
		commit = "unknown"

		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		var dirty bool
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				commit = s.Value
				if len(commit) > shortCommitLen {
					commit = commit[:shortCommitLen]
				}
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
		if dirty && commit != "unknown" {
			commit += "-dirty"
		}
	})
}

func Version() string {
	return version
}

func Commit() string {
	resolve()
	return commit
}

// VersionInfo is reported by /health and `rks version`.
func VersionInfo() map[string]string {
	return map[string]string{
		"version": Version(),
		"commit":  Commit(),
		"go":      runtime.Version(),
	}
}

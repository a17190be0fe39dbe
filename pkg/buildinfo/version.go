// Package buildinfo reports which build of permsample produced a result.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/permsample/pkg/buildinfo.Version=v1.0.0"
//
// Builds without ldflags fall back to the VCS stamp embedded by the Go
// toolchain, so history records of development builds still name a commit.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info identifies a build.
type Info struct {
	Version string
	Commit  string
	Date    string
	Dirty   bool
}

var (
	once   sync.Once
	cached Info
)

// Get returns the build info, filling values not set by ldflags from the
// embedded VCS settings.
func Get() Info {
	once.Do(func() {
		cached = resolve(debug.ReadBuildInfo())
	})
	return cached
}

func resolve(bi *debug.BuildInfo, ok bool) Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// Short returns the version with an abbreviated commit, e.g. "dev+1a2b3c4".
func (i Info) Short() string {
	if i.Commit == "none" {
		return i.Version
	}
	s := i.Version + "+" + i.Commit[:min(len(i.Commit), 7)]
	if i.Dirty {
		s += "-dirty"
	}
	return s
}

// Template returns the cobra version template.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", i.Version, i.Commit, i.Date)
}

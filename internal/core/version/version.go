// Package version reports which build of shopguide is running
package version

import (
	"runtime"
	"runtime/debug"
)

// BuildInfo is served by /meta/version and stamped on clickhouse sessions
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// overridden with -ldflags "-X shopguide/internal/core/version.version=v0.3.0"
var (
	version = "dev"
	commit  = ""
	date    = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

// Info returns the linker stamped values, falling back to the vcs settings
// the go toolchain embeds when the binary was built from a checkout
func Info() BuildInfo {
	out := BuildInfo{
		Service: "shopguide",
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}
	if out.Commit == "" {
		out.Commit = "unknown"
		if bi, ok := readBuildInfo(); ok && bi != nil {
			for _, s := range bi.Settings {
				switch s.Key {
				case "vcs.revision":
					out.Commit = Short(s.Value)
				case "vcs.time":
					if out.Date == "unknown" {
						out.Date = s.Value
					}
				}
			}
		}
	}
	return out
}

// Short trims a revision to the usual seven characters
func Short(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

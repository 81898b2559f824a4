// Package version reports the tickify build version.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is set at build time:
//
//	go build -ldflags "-X bennypowers.dev/tickify/internal/version.Version=v0.1.0"
var Version = "dev"

// Info describes a build
type Info struct {
	Version   string
	Commit    string
	Time      string
	Modified  bool
	GoVersion string
}

// Get returns the version of the running binary
func Get() Info {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		info = nil
	}
	return resolve(Version, info)
}

// GetVersion returns the version string for the application
func GetVersion() string {
	return Get().Version
}

// resolve prefers an ldflags version, then the module version, then "dev".
// VCS stamps fill in the commit details.
func resolve(ldflagsVersion string, build *debug.BuildInfo) Info {
	info := Info{Version: ldflagsVersion}
	if build == nil {
		return info
	}

	info.GoVersion = build.GoVersion
	if info.Version == "dev" && build.Main.Version != "" && build.Main.Version != "(devel)" {
		info.Version = build.Main.Version
	}

	for _, setting := range build.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Commit = setting.Value
		case "vcs.time":
			info.Time = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}
	return info
}

// String formats the version with its short commit, e.g. "v0.1.0 (1a2b3c4, modified)"
func (i Info) String() string {
	var details []string
	if i.Commit != "" {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		details = append(details, commit)
	}
	if i.Modified {
		details = append(details, "modified")
	}
	if len(details) == 0 {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, strings.Join(details, ", "))
}

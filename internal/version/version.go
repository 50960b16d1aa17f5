// Package version reports what the running binary was built from.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is the release number, overridable with -ldflags.
var Version = "0.1.0"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	Module    string
	GoVersion string
	Revision  string
	Time      string
	Modified  bool
}

// Info collects build details embedded by the Go toolchain. Fields the
// binary does not carry (for example under `go run`) are left empty.
func Info() BuildInfo {
	info := BuildInfo{Version: Version}
	bi, ok := readBuildInfo()
	if !ok || bi == nil {
		return info
	}
	info.Module = bi.Main.Path
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.Time = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// Short returns "v<version>" plus an abbreviated commit when known.
func (b BuildInfo) Short() string {
	out := "v" + strings.TrimPrefix(b.Version, "v")
	if b.Revision != "" {
		rev := b.Revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		out += " (" + rev
		if b.Modified {
			out += ", modified"
		}
		out += ")"
	}
	return out
}

// String lists every known field, one per line.
func (b BuildInfo) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Version:  %s\n", b.Short())
	for _, f := range []struct{ name, value string }{
		{"Module", b.Module},
		{"Go", b.GoVersion},
		{"Commit", b.Revision},
		{"Built", b.Time},
	} {
		if f.value != "" {
			fmt.Fprintf(&sb, "%-9s %s\n", f.name+":", f.value)
		}
	}
	return sb.String()
}

// Package version reports CLI build metadata.
//
// Release builds stamp these variables through ldflags:
//
//	go build -ldflags "-X github.com/pagesift/pagesift/internal/version.Version=1.0.0 ..."
//
// An unstamped binary falls back to the module version recorded by the
// Go toolchain, so `go install` builds still identify themselves.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	Dirty     = "false"
	BuildDate = "unknown"
)

// String returns the one-line version, with a -dirty suffix when the
// working tree had uncommitted changes at build time.
func String() string {
	v := Version
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	if Dirty == "true" {
		v += "-dirty"
	}
	return v
}

// Full returns the multi-line form shown by the version subcommand.
func Full() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pagesift %s\n", String())
	fmt.Fprintf(&sb, "  Commit:     %s\n", Commit)
	if Dirty == "true" {
		sb.WriteString("  Dirty:      yes\n")
	}
	fmt.Fprintf(&sb, "  Built:      %s\n", BuildDate)
	fmt.Fprintf(&sb, "  Go version: %s\n", runtime.Version())
	fmt.Fprintf(&sb, "  OS/Arch:    %s/%s", runtime.GOOS, runtime.GOARCH)
	return sb.String()
}

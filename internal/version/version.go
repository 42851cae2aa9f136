package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ApplicationName is the human-readable name of the application.
var ApplicationName = "envcheck"

// CommandName is the name the executable was started as.
var CommandName = "envcheck"

// Version is overwritten at build time using:
// -ldflags "-X envcheck/internal/version.Version=v1.YYYYMMDD.N"
var Version = "v0.0.0-dev"

// Commit is the git commit hash of the build.
var Commit = "none"

// BuildDate is the date the binary was built.
var BuildDate = "unknown"

func init() {
	baseName := filepath.Base(os.Args[0])
	name := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	// go run and test binaries get throwaway names
	if name != "" && !strings.EqualFold(name, "main") && !strings.HasSuffix(name, ".test") {
		CommandName = name
	}
}

// String describes the build on one line.
func String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s/%s)", ApplicationName, Version, Commit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

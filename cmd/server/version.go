// In file: cmd/server/version.go
package main

import (
	"fmt"
	"runtime"

	"github.com/dileep-u-k/prompt-optimizer/internal/api"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

type BuildInfo struct {
	Version, BuildDate, GitCommit, GoVersion, Platform string
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// Response is the /version payload, including the component versions that
// key the rewrite cache.
func (b BuildInfo) Response() api.VersionResponse {
	return api.NewVersionResponse(b.Version, b.BuildDate, b.GitCommit, b.GoVersion, b.Platform)
}

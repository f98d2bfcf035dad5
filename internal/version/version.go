package version

import "runtime"

// Version is set at build time:
// go build -ldflags "-X github.com/matttelliott/bookmarker-ai/internal/version.Version=v0.1.0".
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Info is the build metadata served at /version and printed by --version.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	return i.Version + " (" + i.GitCommit + ", built " + i.BuildTime + ")"
}

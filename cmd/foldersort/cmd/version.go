package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Build information, set with -ldflags "-X github.com/oneconcern/foldersort/cmd/foldersort/cmd.Version=..."
var (
	Version   string
	BuildDate string
	GitCommit string
)

// VersionInfo describes the build of the binary
type VersionInfo struct {
	Version   string `json:"version,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GitCommit string `json:"gitCommit,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
}

// NewVersionInfo reports the build information, falling back to the module version
// when the binary was built without ldflags
func NewVersionInfo() VersionInfo {
	ver := VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
	}
	if ver.Version != "" {
		return ver
	}
	ver.Version = "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			ver.Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch {
			case setting.Key == "vcs.revision" && ver.GitCommit == "":
				ver.GitCommit = setting.Value
			case setting.Key == "vcs.time" && ver.BuildDate == "":
				ver.BuildDate = setting.Value
			}
		}
	}
	return ver
}

func (v VersionInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Version: %s\n", v.Version)
	fmt.Fprintf(&b, "Build date: %s\n", v.BuildDate)
	fmt.Fprintf(&b, "Commit: %s\n", v.GitCommit)
	fmt.Fprintf(&b, "Go: %s\n", v.GoVersion)
	return b.String()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints the version of foldersort",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logStdOut("%s", NewVersionInfo().String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

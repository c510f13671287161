package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set by build flags)
	Version = "0.1.0"
	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"
	// BuildDate is the build timestamp (set by build flags)
	BuildDate = "unknown"
)

var versionShort bool

// buildInfo renders the one-line build summary, e.g.
// "chatrelay 0.1.0 (abc123, 2026-08-30) go1.25 linux/amd64".
func buildInfo() string {
	return fmt.Sprintf("chatrelay %s (%s, %s) %s %s/%s",
		Version, GitCommit, BuildDate,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(Version)
			return
		}
		fmt.Println(buildInfo())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print the bare version number only")
}

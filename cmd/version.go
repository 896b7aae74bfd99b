package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version and BuildDate are set at build time via ldflags, e.g.
// go build -ldflags "-X github.com/isaacglide/lighthouse/cmd.Version=1.0.0"
var (
	Version   = "dev"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("lighthouse %s (built %s, %s, %s/%s)\n",
		Version, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	// ldflags may be absent on `go install` builds; module metadata
	// still identifies the commit
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				fmt.Printf("commit %s\n", setting.Value)
			}
		}
	}
}

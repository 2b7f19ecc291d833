package cmd

import (
	"fmt"

	"github.com/cwbudde/go-xpost"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		major, minor, micro := xpost.VersionGet()
		fmt.Printf("xpost version %s (runtime %d.%d.%d)\n", Version, major, minor, micro)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		fmt.Printf("Build Date: %s\n", BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cdnguard version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cdnguard %s (%s)\n", version, commit)
	},
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bashar267/optical-topology-or/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("roadmctl dev build (use 'make build' for version info)")
		} else {
			fmt.Printf("roadmctl %s\n", version.Info())
		}
	},
}

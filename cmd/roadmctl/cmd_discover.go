package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover [device...]",
	Short: "Rebuild the topology cache from device configurations",
	Long: `Discover scans the configuration tree of the named devices (all
inventory devices when none are given) and rebuilds the topology cache:
nodes, degrees, shared-risk groups, termination points and mirrored
connections. The cache is replaced wholesale in one transaction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := engine.Discover(cmd.Context(), args)
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	},
}

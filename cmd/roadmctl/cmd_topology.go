package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bashar267/optical-topology-or/pkg/cli"
)

var topologyCmd = &cobra.Command{
	Use:   "topology [device]",
	Short: "Show the cached topology snapshot",
	Long: `Topology prints the cached snapshot built by the last discover run:
per-node degrees, shared-risk groups and termination points, plus the
mirrored connections. Run 'roadmctl discover' first to refresh it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rtx, err := st.Read(cmd.Context())
		if err != nil {
			return err
		}
		defer rtx.Close()

		topo := rtx.Topology()
		if len(topo.Nodes) == 0 {
			fmt.Println("Topology cache is empty; run 'roadmctl discover'")
			return nil
		}

		for _, name := range topo.NodeNames() {
			if len(args) == 1 && args[0] != name {
				continue
			}
			node := topo.Nodes[name]

			fmt.Printf("%s  mgmt %s  degrees %v  srgs %v\n",
				cli.Bold(node.Device), cli.Dash(node.MgmtIP), node.Degrees, node.SRGs)

			t := cli.NewTable("TP", "LAYER", "DEG", "SRG", "PP", "DIR", "FREQ").WithPrefix("  ")
			for _, tpName := range node.TPNames() {
				tp := node.TPs[tpName]
				t.Row(tp.Interface,
					cli.Dash(string(tp.Layer)),
					dashInt(tp.DegreeID),
					dashInt(tp.SRGID),
					dashInt(tp.PPID),
					cli.Dash(string(tp.Direction)),
					cli.Dash(tp.Frequency))
			}
			t.Flush()
		}

		t := cli.NewTable("CONNECTION", "DEVICE", "SOURCE", "DESTINATION")
		for _, name := range topo.ConnectionNames() {
			conn := topo.Connections[name]
			if len(args) == 1 && args[0] != conn.Device {
				continue
			}
			t.Row(conn.Name, conn.Device, conn.Source, conn.Destination)
		}
		t.Flush()

		return nil
	},
}

func dashInt(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

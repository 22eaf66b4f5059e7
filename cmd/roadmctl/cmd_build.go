package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bashar267/optical-topology-or/pkg/cli"
	"github.com/bashar267/optical-topology-or/pkg/optical"
	"github.com/bashar267/optical-topology-or/pkg/util"
)

var (
	buildDevice    string
	buildFrequency string
	buildSrcDegree int
	buildDstDegree int
	buildDstPP     int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an end-to-end media connection",
	Long: `Build provisions the MC/NMC interface stack on both endpoints and
creates the cross-connect. The source is the RX side of a degree; the
destination is exactly one of a degree (TX side) or an SRG port-pair.

Examples:
  roadmctl build -d roadm-a -f 193.3 --src-degree 1 --dst-degree 2
  roadmctl build -d roadm-a -f 195.0 --src-degree 1 --dst-pp 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := engine.Build(cmd.Context(), optical.BuildRequest{
			Device:    buildDevice,
			Frequency: buildFrequency,
			SrcDegree: buildSrcDegree,
			DstDegree: buildDstDegree,
			DstPP:     buildDstPP,
		})
		if err != nil {
			if errors.Is(err, util.ErrSlotConflict) ||
				errors.Is(err, util.ErrMissingParameter) ||
				errors.Is(err, util.ErrAmbiguousDestination) {
				// Fully reported here; main would print a returned error
				// a second time.
				fmt.Printf("%s %v\n", cli.Red("Rejected:"), err)
				return nil
			}
			return err
		}

		fmt.Printf("%s connection %s on %s\n", cli.Green("Created"), cli.Bold(res.Connection), buildDevice)
		for _, name := range res.InterfacesCreated {
			fmt.Printf("  + %s\n", name)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildDevice, "device", "d", "", "Device name (required)")
	buildCmd.Flags().StringVarP(&buildFrequency, "frequency", "f", "", "Center frequency in THz, e.g. 193.3 (required)")
	buildCmd.Flags().IntVar(&buildSrcDegree, "src-degree", 0, "Source degree (RX side)")
	buildCmd.Flags().IntVar(&buildDstDegree, "dst-degree", 0, "Destination degree (TX side)")
	buildCmd.Flags().IntVar(&buildDstPP, "dst-pp", 0, "Destination SRG port-pair (TX side)")
}

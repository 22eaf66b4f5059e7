package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bashar267/optical-topology-or/pkg/cli"
)

var (
	deleteDevice string
	deleteYes    bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <connection>",
	Short: "Delete a connection and its unshared interfaces",
	Long: `Delete removes a connection and every MC/NMC interface underneath it
that no other connection still references.

Example:
  roadmctl delete -d roadm-a DEG1-RX-to-DEG2-TX-193.3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		connection := args[0]

		if !deleteYes && !confirm(fmt.Sprintf("Delete connection %s on %s?", connection, deleteDevice)) {
			fmt.Println("Aborted")
			return nil
		}

		status, err := engine.Delete(cmd.Context(), deleteDevice, connection)
		if err != nil {
			return err
		}
		fmt.Println(cli.Green(status))
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVarP(&deleteDevice, "device", "d", "", "Device name (required)")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip confirmation prompt")
}

// confirm prompts on a TTY; non-interactive invocations proceed without
// prompting (--yes is implied when stdin is not a terminal).
func confirm(prompt string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

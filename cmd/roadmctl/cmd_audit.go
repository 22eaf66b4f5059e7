package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bashar267/optical-topology-or/pkg/audit"
	"github.com/bashar267/optical-topology-or/pkg/cli"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "View the audit log",
	Long: `View the audit log of mutating actions.

Every discover, build and delete is recorded with the user who ran it,
the device affected, the outcome and the duration.

Examples:
  roadmctl audit list --device roadm-a
  roadmctl audit list --last 24h --failures
  roadmctl audit list --action build-connection`,
}

var (
	auditDevice   string
	auditUser     string
	auditAction   string
	auditLast     string
	auditLimit    int
	auditFailures bool
	auditJSON     bool
)

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit events",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := auditFilter()
		if err != nil {
			return err
		}

		events, err := audit.Query(filter)
		if err != nil {
			return fmt.Errorf("querying audit log: %w", err)
		}

		out := cmd.OutOrStdout()
		if auditJSON {
			return json.NewEncoder(out).Encode(events)
		}

		if len(events) == 0 {
			fmt.Fprintln(out, "No audit events found")
			return nil
		}

		t := cli.NewTableTo(out, "TIMESTAMP", "USER", "DEVICE", "ACTION", "CONNECTION", "STATUS")
		for _, event := range events {
			status := cli.Green("ok")
			if !event.Success {
				status = cli.Red("failed")
			}
			t.Row(
				event.Timestamp.Format("2006-01-02 15:04:05"),
				event.User,
				cli.Dash(event.Device),
				event.Action,
				cli.Dash(event.Connection),
				status,
			)
		}
		t.Flush()

		return nil
	},
}

// auditFilter builds the query filter from the list flags.
func auditFilter() (audit.Filter, error) {
	filter := audit.Filter{
		Device:      auditDevice,
		User:        auditUser,
		Action:      auditAction,
		Limit:       auditLimit,
		FailureOnly: auditFailures,
	}

	if auditLast != "" {
		duration, err := time.ParseDuration(auditLast)
		if err != nil {
			return audit.Filter{}, fmt.Errorf("invalid duration: %s", auditLast)
		}
		filter.StartTime = time.Now().Add(-duration)
	}

	return filter, nil
}

func init() {
	auditListCmd.Flags().StringVar(&auditDevice, "device", "", "Filter by device")
	auditListCmd.Flags().StringVar(&auditUser, "user", "", "Filter by user")
	auditListCmd.Flags().StringVar(&auditAction, "action", "", "Filter by action, e.g. build-connection")
	auditListCmd.Flags().StringVar(&auditLast, "last", "", "Show events from the last duration, e.g. 24h")
	auditListCmd.Flags().IntVar(&auditLimit, "limit", 100, "Maximum events to show")
	auditListCmd.Flags().BoolVar(&auditFailures, "failures", false, "Show only failed actions")
	auditListCmd.Flags().BoolVar(&auditJSON, "json", false, "Output as JSON")

	auditCmd.AddCommand(auditListCmd)
}

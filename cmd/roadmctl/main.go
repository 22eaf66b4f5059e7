// Roadmctl - ROADM optical topology and cross-connect tool
//
// A CLI for managing the optical layer of ROADM network elements through
// their synchronized configuration trees:
//   - Topology discovery (degrees, shared-risk groups, termination points)
//   - Media-channel / network-media-channel provisioning
//   - Frequency-slot validated connection build and teardown
//   - Audit logging of all mutating actions
//
// Examples:
//
//	roadmctl discover                                   # all devices
//	roadmctl discover roadm-a                           # one device
//	roadmctl topology roadm-a                           # show cached topology
//	roadmctl build -d roadm-a -f 193.3 --src-degree 1 --dst-degree 2
//	roadmctl build -d roadm-a -f 195.0 --src-degree 1 --dst-pp 3
//	roadmctl delete -d roadm-a DEG1-RX-to-DEG2-TX-193.3
//	roadmctl serve --listen :9477                       # action API + metrics
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bashar267/optical-topology-or/pkg/audit"
	"github.com/bashar267/optical-topology-or/pkg/inventory"
	"github.com/bashar267/optical-topology-or/pkg/optical"
	"github.com/bashar267/optical-topology-or/pkg/store"
	"github.com/bashar267/optical-topology-or/pkg/util"
)

var (
	// Global flags
	inventoryPath string
	redisAddr     string
	verbose       bool

	// Global state, initialized in PersistentPreRunE
	inv    *inventory.Inventory
	st     store.Store
	engine *optical.Engine
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "roadmctl",
	Short:             "ROADM optical topology and cross-connect tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Roadmctl manages the optical layer of ROADM network elements:
topology discovery, frequency-slot validated connection builds, and
reference-counted teardown of the interface stacks underneath.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isVersionOrHelp(cmd) {
			return nil
		}

		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		// The audit command only reads the local audit log; it needs no
		// inventory or store, but a missing log is a hard error for it.
		if isAuditQuery(cmd) {
			return initAuditLogger()
		}

		var err error
		inv, err = loadInventory()
		if err != nil {
			return err
		}

		st, err = openStore(cmd, inv)
		if err != nil {
			return err
		}

		engine = optical.NewEngine(st, nil)

		if err := initAuditLogger(); err != nil {
			util.Warnf("Could not initialize audit logging: %v", err)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inventoryPath, "inventory", "I", "", "Inventory file (default /etc/roadmctl/inventory.yaml)")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis store address (overrides inventory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(topologyCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func isVersionOrHelp(cmd *cobra.Command) bool {
	return cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion"
}

func isAuditQuery(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == auditCmd {
			return true
		}
	}
	return false
}

func initAuditLogger() error {
	auditPath := filepath.Join(auditDir(), "roadmctl-audit.log")
	auditLogger, err := audit.NewFileLogger(auditPath, audit.RotationConfig{
		MaxSize:    10 * 1024 * 1024,
		MaxBackups: 10,
	})
	if err != nil {
		return err
	}
	audit.SetDefaultLogger(auditLogger)
	return nil
}

func loadInventory() (*inventory.Inventory, error) {
	path := inventoryPath
	if path == "" {
		path = "/etc/roadmctl/inventory.yaml"
	}
	i, err := inventory.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	return i, nil
}

// openStore selects the store backend: Redis when an address is given on
// the command line or in the inventory, the seeded in-memory store
// otherwise.
func openStore(cmd *cobra.Command, inv *inventory.Inventory) (store.Store, error) {
	addr := redisAddr
	if addr == "" {
		addr = inv.Redis
	}

	if addr == "" {
		mem := store.NewMemStore()
		for name, entry := range inv.Devices {
			mem.AddDevice(name, entry.Address, nil)
		}
		return mem, nil
	}

	rs := store.NewRedisStore(addr)
	ctx := cmd.Context()
	if err := rs.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connecting to store at %s: %w", addr, err)
	}
	for name, entry := range inv.Devices {
		if err := rs.RegisterDevice(ctx, name, entry.Address); err != nil {
			return nil, fmt.Errorf("registering device %s: %w", name, err)
		}
	}
	return rs, nil
}

func auditDir() string {
	if dir := os.Getenv("ROADMCTL_LOG_DIR"); dir != "" {
		return dir
	}
	return "/var/log/roadmctl"
}

// Package inventory loads the device inventory: which ROADM devices
// exist and how to reach their synchronized configuration.
package inventory

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/bashar267/optical-topology-or/pkg/util"
)

// DeviceEntry describes one device in the inventory.
type DeviceEntry struct {
	// Address is the device's management IP, mirrored into the topology
	// cache on discovery.
	Address string `yaml:"address"`
}

// Inventory maps device names to their entries.
type Inventory struct {
	// Redis is the address of the shared config store backend. Empty
	// selects the in-memory store.
	Redis string `yaml:"redis,omitempty"`

	Devices map[string]DeviceEntry `yaml:"devices"`
}

// Load parses an inventory YAML file and validates it.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory file: %w", err)
	}

	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parsing inventory YAML: %w", err)
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Validate checks the inventory for structural problems, reporting all of
// them at once.
func (inv *Inventory) Validate() error {
	v := &util.ValidationBuilder{}
	v.Add(len(inv.Devices) > 0, "at least one device is required")
	for name, entry := range inv.Devices {
		if name == "" {
			v.AddErrorf("device with empty name (address %q)", entry.Address)
		}
	}
	return v.Build()
}

// DeviceNames returns the inventory's device names in sorted order.
func (inv *Inventory) DeviceNames() []string {
	names := make([]string, 0, len(inv.Devices))
	for name := range inv.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

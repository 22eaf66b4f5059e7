// Package roadm models the configuration tree of an OpenROADM-style
// optical network element: interfaces, circuit-packs and roadm-connections,
// plus the interface naming grammar shared by provisioning and discovery.
package roadm

import "sort"

// Interface type identityrefs as they appear in the device model.
const (
	TypeMediaChannel        = "openROADM-if:mediaChannelTrailTerminationPoint"
	TypeNetworkMediaChannel = "openROADM-if:networkMediaChannelConnectionTerminationPoint"
)

// Administrative states.
const (
	AdminInService    = "inService"
	AdminOutOfService = "outOfService"
)

// ControlModeOff disables automatic power control on a connection.
const ControlModeOff = "off"

// Interface is one entry in a device's interface list, keyed by name.
// Decimal leaves (frequencies, power) are fixed-point strings, matching
// the decimal64 representation of the device model.
type Interface struct {
	Type                  string   `json:"type,omitempty"`
	AdminState            string   `json:"administrative_state,omitempty"`
	SupportingCircuitPack string   `json:"supporting_circuit_pack,omitempty"`
	SupportingPort        string   `json:"supporting_port,omitempty"`
	SupportingInterfaces  []string `json:"supporting_interface_list,omitempty"`

	// Media-channel frequency slot bounds, THz.
	MinFreq string `json:"min_freq,omitempty"`
	MaxFreq string `json:"max_freq,omitempty"`

	// Network-media-channel center frequency (THz) and width (GHz).
	Frequency string `json:"frequency,omitempty"`
	Width     string `json:"width,omitempty"`
}

// CircuitPack is one entry in a device's circuit-pack list, keyed by name.
// Only the name carries structural meaning (DEG<n>-..., SRG<n>...); the
// remaining fields are informational.
type CircuitPack struct {
	Model string `json:"model,omitempty"`
	Shelf string `json:"shelf,omitempty"`
	Slot  string `json:"slot,omitempty"`
}

// Connection is one entry in a device's roadm-connection list, keyed by name.
type Connection struct {
	Source            string `json:"source"`
	Destination       string `json:"destination"`
	ControlMode       string `json:"optical_control_mode,omitempty"`
	TargetOutputPower string `json:"target_output_power,omitempty"`
}

// Config is the per-device configuration tree. Collections are keyed by
// name; ordered iteration goes through the *Names() helpers.
type Config struct {
	Interfaces   map[string]*Interface   `json:"interface,omitempty"`
	CircuitPacks map[string]*CircuitPack `json:"circuit_packs,omitempty"`
	Connections  map[string]*Connection  `json:"roadm_connections,omitempty"`
}

// NewConfig creates an empty device configuration.
func NewConfig() *Config {
	return &Config{
		Interfaces:   make(map[string]*Interface),
		CircuitPacks: make(map[string]*CircuitPack),
		Connections:  make(map[string]*Connection),
	}
}

// InterfaceNames returns all interface names in sorted order.
func (c *Config) InterfaceNames() []string {
	return sortedKeys(c.Interfaces)
}

// CircuitPackNames returns all circuit-pack names in sorted order.
func (c *Config) CircuitPackNames() []string {
	return sortedKeys(c.CircuitPacks)
}

// ConnectionNames returns all connection names in sorted order.
func (c *Config) ConnectionNames() []string {
	return sortedKeys(c.Connections)
}

// Clone returns a deep copy. Used by the store to give transactions
// snapshot isolation.
func (c *Config) Clone() *Config {
	out := NewConfig()
	for name, intf := range c.Interfaces {
		cp := *intf
		cp.SupportingInterfaces = append([]string(nil), intf.SupportingInterfaces...)
		out.Interfaces[name] = &cp
	}
	for name, pack := range c.CircuitPacks {
		cp := *pack
		out.CircuitPacks[name] = &cp
	}
	for name, conn := range c.Connections {
		cp := *conn
		out.Connections[name] = &cp
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

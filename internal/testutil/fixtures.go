// Package testutil provides store fixtures and helpers shared by tests.
package testutil

import (
	"github.com/bashar267/optical-topology-or/pkg/roadm"
	"github.com/bashar267/optical-topology-or/pkg/store"
)

// FixtureDevice is the device name seeded by NewSeededStore.
const FixtureDevice = "roadm-a"

// FixtureAddress is the management address of the fixture device.
const FixtureAddress = "10.0.0.11"

// FixtureConfig builds the configuration of a three-degree, one-SRG ROADM
// with its static OMS interfaces and no provisioned channels.
func FixtureConfig() *roadm.Config {
	cfg := roadm.NewConfig()

	for _, name := range []string{
		"DEG1-AMPRX", "DEG1-AMPTX",
		"DEG2-AMPRX", "DEG2-AMPTX",
		"DEG3-AMPRX", "DEG3-AMPTX",
		"SRG1-WSS",
	} {
		cfg.CircuitPacks[name] = &roadm.CircuitPack{Model: "generic", Shelf: "1"}
	}

	for deg := 1; deg <= 3; deg++ {
		for _, dir := range []roadm.Direction{roadm.DirectionRX, roadm.DirectionTX} {
			cfg.Interfaces[roadm.OMSName(deg, dir)] = &roadm.Interface{
				Type:       "openROADM-if:opticalMultiplexSection",
				AdminState: roadm.AdminInService,
			}
		}
	}

	return cfg
}

// NewSeededStore creates an in-memory store with the fixture device.
func NewSeededStore() *store.MemStore {
	s := store.NewMemStore()
	s.AddDevice(FixtureDevice, FixtureAddress, FixtureConfig())
	return s
}

// Package store provides transactional access to per-device configuration
// trees and the derived topology cache.
//
// The store is modeled as a capability: callers open a read or write
// session, perform all reads and writes through it, and commit atomically.
// Either the whole session's effects become visible, or none do. Two
// sessions opened back to back see committed state only; concurrent write
// sessions are last-commit-wins.
package store

import (
	"context"

	"github.com/bashar267/optical-topology-or/pkg/roadm"
	"github.com/bashar267/optical-topology-or/pkg/topology"
)

// Store hands out transactional sessions.
type Store interface {
	// Read opens a read-only session over committed state.
	Read(ctx context.Context) (ReadTx, error)
	// Write opens a read-write session. Nothing is visible to other
	// sessions until Commit.
	Write(ctx context.Context) (WriteTx, error)
}

// ReadTx is a read-only view of committed state.
type ReadTx interface {
	// Devices lists known device names in sorted order.
	Devices() []string
	// Device returns a snapshot of a device's configuration.
	// Returns an error wrapping util.ErrDeviceNotFound when absent.
	Device(name string) (*roadm.Config, error)
	// DeviceAddress returns the device's management address, or "" when
	// unknown.
	DeviceAddress(name string) string
	// Topology returns a snapshot of the topology cache (never nil).
	// The caller owns the returned copy; mutating it does not affect
	// committed state.
	Topology() *topology.Topology
	// Close releases the session.
	Close()
}

// WriteTx is a read-write session. Device returns the pending, mutable
// configuration; mutations stay private to the session until Commit.
type WriteTx interface {
	ReadTx
	// ReplaceTopology stages a wholesale replacement of the topology cache.
	ReplaceTopology(t *topology.Topology)
	// Commit atomically persists all staged changes. After Commit the
	// session is done; Close becomes a no-op.
	Commit() error
}

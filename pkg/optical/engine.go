// Package optical implements the topology and cross-connect engine for
// ROADM-style network elements: parsing interface identifiers, frequency
// slot allocation and overlap detection, idempotent provisioning of
// media-channel / network-media-channel interface stacks, connection build
// and teardown, and topology discovery.
//
// The engine never speaks a device protocol. It reads and writes an
// already-synchronized configuration tree through the store capability,
// one transaction per action entry point.
package optical

import (
	"errors"
	"os"
	"os/user"

	"github.com/sirupsen/logrus"

	"github.com/bashar267/optical-topology-or/pkg/metrics"
	"github.com/bashar267/optical-topology-or/pkg/store"
	"github.com/bashar267/optical-topology-or/pkg/util"
)

// logEntry is the contextual logger passed through engine internals.
type logEntry = *logrus.Entry

// Engine exposes the three action entry points: Discover, Build, Delete.
type Engine struct {
	store   store.Store
	metrics *metrics.Metrics
}

// NewEngine creates an engine over the given store. m may be nil to
// disable metrics.
func NewEngine(s store.Store, m *metrics.Metrics) *Engine {
	return &Engine{store: s, metrics: m}
}

// buildResultLabel maps a Build error to its metrics result label:
// store failures count as errors, everything else as a rejection.
func buildResultLabel(err error) string {
	if errors.Is(err, util.ErrTransactionFailed) {
		return metrics.ResultError
	}
	return metrics.ResultRejected
}

// rejectionReason maps a validation error to its metrics reason label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, util.ErrMissingParameter):
		return "missing_parameter"
	case errors.Is(err, util.ErrAmbiguousDestination):
		return "ambiguous_destination"
	case errors.Is(err, util.ErrSlotConflict):
		return "slot_conflict"
	case errors.Is(err, util.ErrDeviceNotFound):
		return "device_not_found"
	case errors.Is(err, util.ErrConnectionNotFound):
		return "connection_not_found"
	default:
		return "other"
	}
}

// currentUser returns "user@hostname" for audit records.
func currentUser() string {
	username := "unknown"
	if u, err := user.Current(); err == nil {
		username = u.Username
	}
	hostname := "unknown"
	if h, err := os.Hostname(); err == nil {
		hostname = h
	}
	return username + "@" + hostname
}

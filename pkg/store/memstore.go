package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bashar267/optical-topology-or/pkg/roadm"
	"github.com/bashar267/optical-topology-or/pkg/topology"
	"github.com/bashar267/optical-topology-or/pkg/util"
)

// MemStore is the in-process Store implementation. Committed device
// configurations are treated as immutable: a commit swaps whole config
// pointers, so sessions opened earlier keep a consistent view.
type MemStore struct {
	mu      sync.RWMutex
	devices map[string]*deviceRecord
	topo    *topology.Topology
}

type deviceRecord struct {
	address string
	config  *roadm.Config
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		devices: make(map[string]*deviceRecord),
		topo:    topology.New(),
	}
}

// AddDevice registers a device with its management address and initial
// configuration. Intended for seeding; not part of the Store interface.
func (s *MemStore) AddDevice(name, address string, cfg *roadm.Config) {
	if cfg == nil {
		cfg = roadm.NewConfig()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[name] = &deviceRecord{address: address, config: cfg}
}

// Read opens a read-only session over committed state.
func (s *MemStore) Read(ctx context.Context) (ReadTx, error) {
	return s.snapshot(), nil
}

// Write opens a read-write session.
func (s *MemStore) Write(ctx context.Context) (WriteTx, error) {
	return &memWriteTx{
		store:   s,
		base:    s.snapshot(),
		pending: make(map[string]*roadm.Config),
	}, nil
}

// snapshot captures the committed config pointers and topology pointer.
// Later commits swap pointers on the store, never mutate in place, so the
// captured view stays consistent.
func (s *MemStore) snapshot() *memReadTx {
	s.mu.RLock()
	defer s.mu.RUnlock()
	devices := make(map[string]deviceRecord, len(s.devices))
	for name, rec := range s.devices {
		devices[name] = *rec
	}
	return &memReadTx{devices: devices, topo: s.topo}
}

// memReadTx is a point-in-time view of the store.
type memReadTx struct {
	devices map[string]deviceRecord
	topo    *topology.Topology
}

func (t *memReadTx) Devices() []string {
	names := make([]string, 0, len(t.devices))
	for name := range t.devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *memReadTx) Device(name string) (*roadm.Config, error) {
	rec, ok := t.devices[name]
	if !ok {
		return nil, util.NewDeviceNotFoundError(name)
	}
	// Clone so callers can never mutate committed state through a read tx.
	return rec.config.Clone(), nil
}

func (t *memReadTx) DeviceAddress(name string) string {
	return t.devices[name].address
}

func (t *memReadTx) Topology() *topology.Topology {
	// Clone for the same reason as Device: the committed snapshot must not
	// be reachable for mutation through a read tx.
	return t.topo.Clone()
}

func (t *memReadTx) Close() {}

// memWriteTx stages device config clones and an optional topology
// replacement, and swaps them in atomically on Commit.
type memWriteTx struct {
	store   *MemStore
	base    *memReadTx
	pending map[string]*roadm.Config
	newTopo *topology.Topology
	done    bool
}

func (t *memWriteTx) Devices() []string {
	return t.base.Devices()
}

func (t *memWriteTx) Device(name string) (*roadm.Config, error) {
	if cfg, ok := t.pending[name]; ok {
		return cfg, nil
	}
	rec, ok := t.base.devices[name]
	if !ok {
		return nil, util.NewDeviceNotFoundError(name)
	}
	cfg := rec.config.Clone()
	t.pending[name] = cfg
	return cfg, nil
}

func (t *memWriteTx) DeviceAddress(name string) string {
	return t.base.DeviceAddress(name)
}

func (t *memWriteTx) Topology() *topology.Topology {
	if t.newTopo != nil {
		return t.newTopo
	}
	return t.base.Topology()
}

func (t *memWriteTx) ReplaceTopology(topo *topology.Topology) {
	t.newTopo = topo
}

func (t *memWriteTx) Commit() error {
	if t.done {
		return fmt.Errorf("commit on closed transaction: %w", util.ErrTransactionFailed)
	}
	t.done = true

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, cfg := range t.pending {
		rec, ok := s.devices[name]
		if !ok {
			// Device removed between open and commit; keep the staged
			// configuration rather than dropping it silently.
			rec = &deviceRecord{}
			s.devices[name] = rec
		}
		rec.config = cfg
	}
	if t.newTopo != nil {
		s.topo = t.newTopo
	}
	return nil
}

func (t *memWriteTx) Close() {
	t.done = true
}

package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/bashar267/optical-topology-or/pkg/roadm"
	"github.com/bashar267/optical-topology-or/pkg/topology"
	"github.com/bashar267/optical-topology-or/pkg/util"
)

// Redis key layout, TABLE|key style:
//
//	DEVICE|<device>                → hash{address}
//	INTERFACE|<device>|<name>      → interface fields
//	CIRCUIT_PACK|<device>|<name>   → circuit-pack fields
//	CONNECTION|<device>|<name>     → connection fields
//	TOPO_NODE|<device>             → hash{mgmt_ip, degrees, srgs}
//	TOPO_TP|<device>|<name>        → termination-point fields
//	TOPO_CONN|<device>|<name>      → hash{source, destination}
const (
	tblDevice      = "DEVICE"
	tblInterface   = "INTERFACE"
	tblCircuitPack = "CIRCUIT_PACK"
	tblConnection  = "CONNECTION"
	tblTopoNode    = "TOPO_NODE"
	tblTopoTP      = "TOPO_TP"
	tblTopoConn    = "TOPO_CONN"
)

// RedisStore keeps device configurations and the topology cache in a
// Redis database. Sessions load a full snapshot on open; commits replace
// the touched tables inside one MULTI/EXEC pipeline.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by the Redis instance at addr.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Connect tests the connection.
func (s *RedisStore) Connect(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// RegisterDevice records a device and its management address so sessions
// can enumerate it. Configuration sync is external to this store.
func (s *RedisStore) RegisterDevice(ctx context.Context, name, address string) error {
	return s.client.HSet(ctx, tblDevice+"|"+name, "address", address).Err()
}

// Read opens a read-only session over a full snapshot.
func (s *RedisStore) Read(ctx context.Context) (ReadTx, error) {
	return s.load(ctx)
}

// Write opens a read-write session.
func (s *RedisStore) Write(ctx context.Context) (WriteTx, error) {
	base, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return &redisWriteTx{
		store:   s,
		ctx:     ctx,
		base:    base,
		pending: make(map[string]*roadm.Config),
	}, nil
}

// load reads every key and assembles the same point-in-time view the
// in-memory store hands out.
func (s *RedisStore) load(ctx context.Context) (*memReadTx, error) {
	keys, err := s.client.Keys(ctx, "*").Result()
	if err != nil {
		return nil, fmt.Errorf("loading store: %w", util.ErrTransactionFailed)
	}

	devices := make(map[string]deviceRecord)
	topo := topology.New()

	device := func(name string) *roadm.Config {
		rec, ok := devices[name]
		if !ok {
			rec = deviceRecord{config: roadm.NewConfig()}
		}
		devices[name] = rec
		return rec.config
	}

	for _, key := range keys {
		parts := strings.SplitN(key, "|", 3)
		vals, err := s.client.HGetAll(ctx, key).Result()
		if err != nil {
			continue
		}

		switch parts[0] {
		case tblDevice:
			if len(parts) < 2 {
				continue
			}
			rec := deviceRecord{address: vals["address"], config: device(parts[1])}
			devices[parts[1]] = rec
		case tblInterface:
			if len(parts) < 3 {
				continue
			}
			device(parts[1]).Interfaces[parts[2]] = interfaceFromFields(vals)
		case tblCircuitPack:
			if len(parts) < 3 {
				continue
			}
			device(parts[1]).CircuitPacks[parts[2]] = &roadm.CircuitPack{
				Model: vals["model"],
				Shelf: vals["shelf"],
				Slot:  vals["slot"],
			}
		case tblConnection:
			if len(parts) < 3 {
				continue
			}
			device(parts[1]).Connections[parts[2]] = &roadm.Connection{
				Source:            vals["source"],
				Destination:       vals["destination"],
				ControlMode:       vals["optical_control_mode"],
				TargetOutputPower: vals["target_output_power"],
			}
		case tblTopoNode:
			if len(parts) < 2 {
				continue
			}
			node := topo.Nodes[parts[1]]
			if node == nil {
				node = topology.NewNode(parts[1])
				topo.Nodes[parts[1]] = node
			}
			node.MgmtIP = vals["mgmt_ip"]
			for _, id := range splitInts(vals["degrees"]) {
				node.EnsureDegree(id)
			}
			for _, id := range splitInts(vals["srgs"]) {
				node.EnsureSRG(id)
			}
		case tblTopoTP:
			if len(parts) < 3 {
				continue
			}
			node := topo.Nodes[parts[1]]
			if node == nil {
				node = topology.NewNode(parts[1])
				topo.Nodes[parts[1]] = node
			}
			node.TPs[parts[2]] = &topology.TerminationPoint{
				Interface: parts[2],
				Layer:     roadm.Layer(vals["layer"]),
				DegreeID:  atoiOrZero(vals["degree_id"]),
				SRGID:     atoiOrZero(vals["srg_id"]),
				PPID:      atoiOrZero(vals["pp_id"]),
				Direction: roadm.Direction(vals["direction"]),
				Frequency: vals["frequency"],
			}
		case tblTopoConn:
			if len(parts) < 3 {
				continue
			}
			conn := &topology.Connection{
				Name:        parts[2],
				Device:      parts[1],
				Source:      vals["source"],
				Destination: vals["destination"],
			}
			topo.Connections[conn.Key()] = conn
		}
	}

	return &memReadTx{devices: devices, topo: topo}, nil
}

// redisWriteTx stages mutations against the snapshot and writes them back
// in one transaction.
type redisWriteTx struct {
	store   *RedisStore
	ctx     context.Context
	base    *memReadTx
	pending map[string]*roadm.Config
	newTopo *topology.Topology
	done    bool
}

func (t *redisWriteTx) Devices() []string { return t.base.Devices() }

func (t *redisWriteTx) Device(name string) (*roadm.Config, error) {
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

func (t *redisWriteTx) DeviceAddress(name string) string {
	return t.base.DeviceAddress(name)
}

func (t *redisWriteTx) Topology() *topology.Topology {
	if t.newTopo != nil {
		return t.newTopo
	}
	return t.base.topo
}

func (t *redisWriteTx) ReplaceTopology(topo *topology.Topology) {
	t.newTopo = topo
}

func (t *redisWriteTx) Commit() error {
	if t.done {
		return fmt.Errorf("commit on closed transaction: %w", util.ErrTransactionFailed)
	}
	t.done = true

	pipe := t.store.client.TxPipeline()

	for name, cfg := range t.pending {
		// Replace the device's config tables wholesale: delete what the
		// snapshot saw, then write the staged state.
		if rec, ok := t.base.devices[name]; ok {
			for _, ifName := range rec.config.InterfaceNames() {
				pipe.Del(t.ctx, tblInterface+"|"+name+"|"+ifName)
			}
			for _, connName := range rec.config.ConnectionNames() {
				pipe.Del(t.ctx, tblConnection+"|"+name+"|"+connName)
			}
			for _, cpName := range rec.config.CircuitPackNames() {
				pipe.Del(t.ctx, tblCircuitPack+"|"+name+"|"+cpName)
			}
		}
		for _, ifName := range cfg.InterfaceNames() {
			pipe.HSet(t.ctx, tblInterface+"|"+name+"|"+ifName, toArgs(interfaceToFields(cfg.Interfaces[ifName]))...)
		}
		for _, cpName := range cfg.CircuitPackNames() {
			cp := cfg.CircuitPacks[cpName]
			pipe.HSet(t.ctx, tblCircuitPack+"|"+name+"|"+cpName, toArgs(map[string]string{
				"model": cp.Model, "shelf": cp.Shelf, "slot": cp.Slot,
			})...)
		}
		for _, connName := range cfg.ConnectionNames() {
			conn := cfg.Connections[connName]
			pipe.HSet(t.ctx, tblConnection+"|"+name+"|"+connName, toArgs(map[string]string{
				"source":               conn.Source,
				"destination":          conn.Destination,
				"optical_control_mode": conn.ControlMode,
				"target_output_power":  conn.TargetOutputPower,
			})...)
		}
	}

	if t.newTopo != nil {
		for device, node := range t.base.topo.Nodes {
			pipe.Del(t.ctx, tblTopoNode+"|"+device)
			for tpName := range node.TPs {
				pipe.Del(t.ctx, tblTopoTP+"|"+device+"|"+tpName)
			}
		}
		for _, conn := range t.base.topo.Connections {
			pipe.Del(t.ctx, tblTopoConn+"|"+conn.Device+"|"+conn.Name)
		}
		for device, node := range t.newTopo.Nodes {
			pipe.HSet(t.ctx, tblTopoNode+"|"+device, toArgs(map[string]string{
				"mgmt_ip": node.MgmtIP,
				"degrees": joinInts(node.Degrees),
				"srgs":    joinInts(node.SRGs),
			})...)
			for tpName, tp := range node.TPs {
				pipe.HSet(t.ctx, tblTopoTP+"|"+device+"|"+tpName, toArgs(map[string]string{
					"layer":     string(tp.Layer),
					"degree_id": itoaOrEmpty(tp.DegreeID),
					"srg_id":    itoaOrEmpty(tp.SRGID),
					"pp_id":     itoaOrEmpty(tp.PPID),
					"direction": string(tp.Direction),
					"frequency": tp.Frequency,
				})...)
			}
		}
		for _, conn := range t.newTopo.Connections {
			pipe.HSet(t.ctx, tblTopoConn+"|"+conn.Device+"|"+conn.Name, toArgs(map[string]string{
				"source":      conn.Source,
				"destination": conn.Destination,
			})...)
		}
	}

	if _, err := pipe.Exec(t.ctx); err != nil {
		return fmt.Errorf("%w: %v", util.ErrTransactionFailed, err)
	}
	return nil
}

func (t *redisWriteTx) Close() {
	t.done = true
}

func interfaceToFields(intf *roadm.Interface) map[string]string {
	return map[string]string{
		"type":                      intf.Type,
		"administrative_state":      intf.AdminState,
		"supporting_circuit_pack":   intf.SupportingCircuitPack,
		"supporting_port":           intf.SupportingPort,
		"supporting_interface_list": strings.Join(intf.SupportingInterfaces, ","),
		"min_freq":                  intf.MinFreq,
		"max_freq":                  intf.MaxFreq,
		"frequency":                 intf.Frequency,
		"width":                     intf.Width,
	}
}

func interfaceFromFields(vals map[string]string) *roadm.Interface {
	intf := &roadm.Interface{
		Type:                  vals["type"],
		AdminState:            vals["administrative_state"],
		SupportingCircuitPack: vals["supporting_circuit_pack"],
		SupportingPort:        vals["supporting_port"],
		MinFreq:               vals["min_freq"],
		MaxFreq:               vals["max_freq"],
		Frequency:             vals["frequency"],
		Width:                 vals["width"],
	}
	if sil := vals["supporting_interface_list"]; sil != "" {
		intf.SupportingInterfaces = strings.Split(sil, ",")
	}
	return intf
}

func toArgs(fields map[string]string) []interface{} {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		if v == "" {
			continue
		}
		args = append(args, k, v)
	}
	if len(args) == 0 {
		// HSET requires at least one pair; keep the key present.
		args = append(args, "_", "1")
	}
	return args
}

func splitInts(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, tok := range strings.Split(s, ",") {
		if id, err := strconv.Atoi(tok); err == nil {
			out = append(out, id)
		}
	}
	return out
}

func joinInts(ids []int) string {
	toks := make([]string, len(ids))
	for i, id := range ids {
		toks[i] = strconv.Itoa(id)
	}
	return strings.Join(toks, ",")
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func itoaOrEmpty(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

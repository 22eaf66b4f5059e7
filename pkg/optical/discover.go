package optical

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bashar267/optical-topology-or/pkg/audit"
	"github.com/bashar267/optical-topology-or/pkg/roadm"
	"github.com/bashar267/optical-topology-or/pkg/store"
	"github.com/bashar267/optical-topology-or/pkg/topology"
	"github.com/bashar267/optical-topology-or/pkg/util"
)

var (
	degreePackRE = regexp.MustCompile(`^DEG(\d+)-`)
	srgPackRE    = regexp.MustCompile(`^SRG(\d+)`)
)

// Discover rebuilds the topology cache for the named devices, or for all
// known devices when none are given. The previous cache content is
// discarded wholesale; the rebuilt snapshot is committed in a single
// write transaction, so partial results are never visible.
//
// Devices are scanned in parallel, one worker per device, against one
// read snapshot of committed state. A device that cannot be read is
// skipped with a warning rather than failing the run.
func (e *Engine) Discover(ctx context.Context, devices []string) (string, error) {
	log := util.WithAction("discover-topology")
	start := time.Now()
	// The device field carries the requested filter; empty means all.
	event := audit.NewEvent(currentUser(), strings.Join(devices, ","), "discover-topology")

	status, err := e.discover(ctx, devices, log)

	event.WithDuration(time.Since(start))
	if err != nil {
		event.WithError(err)
	} else {
		event.WithResult(status)
	}
	if auditErr := audit.Log(event); auditErr != nil {
		log.Warnf("audit log failed: %v", auditErr)
	}
	return status, err
}

func (e *Engine) discover(ctx context.Context, devices []string, log logEntry) (string, error) {
	rtx, err := e.store.Read(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrTransactionFailed, err)
	}
	defer rtx.Close()

	if len(devices) == 0 {
		devices = rtx.Devices()
	}

	nodes := make([]*topology.Node, len(devices))
	conns := make([][]*topology.Connection, len(devices))

	var wg sync.WaitGroup
	for i, name := range devices {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			node, deviceConns, err := scanDevice(rtx, name)
			if err != nil {
				log.Warnf("skipping device %s: %v", name, err)
				return
			}
			nodes[i] = node
			conns[i] = deviceConns
		}(i, name)
	}
	wg.Wait()

	topo := topology.New()
	for i := range nodes {
		if nodes[i] == nil {
			continue
		}
		topo.Nodes[nodes[i].Device] = nodes[i]
		for _, conn := range conns[i] {
			topo.Connections[conn.Key()] = conn
		}
	}

	wtx, err := e.store.Write(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrTransactionFailed, err)
	}
	defer wtx.Close()

	wtx.ReplaceTopology(topo)
	if err := wtx.Commit(); err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrTransactionFailed, err)
	}

	e.metrics.ObserveDiscovery()
	status := fmt.Sprintf("Discovery complete: %d node(s), %d connection(s)",
		len(topo.Nodes), len(topo.Connections))
	log.Info(status)
	return status, nil
}

// scanDevice builds the topology node and mirrored connections for one
// device from its committed configuration.
func scanDevice(rtx store.ReadTx, name string) (*topology.Node, []*topology.Connection, error) {
	cfg, err := rtx.Device(name)
	if err != nil {
		return nil, nil, err
	}

	node := topology.NewNode(name)
	node.MgmtIP = rtx.DeviceAddress(name)

	// Degrees and SRGs from circuit-pack names: DEG<n>-AMPRX, SRG<n>-WSS,
	// SRG<n>-IN*, ...
	for _, cpName := range cfg.CircuitPackNames() {
		if m := degreePackRE.FindStringSubmatch(cpName); m != nil {
			node.EnsureDegree(atoiOrZero(m[1]))
			continue
		}
		if m := srgPackRE.FindStringSubmatch(cpName); m != nil {
			node.EnsureSRG(atoiOrZero(m[1]))
		}
	}

	// Termination points from interfaces. A degree or SRG seen only in an
	// interface name still gets its entry.
	for _, ifName := range cfg.InterfaceNames() {
		info := roadm.ParseInterfaceName(ifName)
		tp := &topology.TerminationPoint{
			Interface: ifName,
			Layer:     info.Layer,
			DegreeID:  info.DegreeID,
			SRGID:     info.SRGID,
			PPID:      info.PPID,
			Direction: info.Direction,
			Frequency: info.Frequency,
		}
		node.TPs[ifName] = tp

		if info.DegreeID != 0 {
			node.EnsureDegree(info.DegreeID)
		}
		if info.SRGID != 0 {
			node.EnsureSRG(info.SRGID)
		}
	}

	var conns []*topology.Connection
	for _, connName := range cfg.ConnectionNames() {
		conn := cfg.Connections[connName]
		conns = append(conns, &topology.Connection{
			Name:        connName,
			Device:      name,
			Source:      conn.Source,
			Destination: conn.Destination,
		})
	}

	return node, conns, nil
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

package optical

import (
	"context"
	"fmt"
	"time"

	"github.com/bashar267/optical-topology-or/pkg/audit"
	"github.com/bashar267/optical-topology-or/pkg/metrics"
	"github.com/bashar267/optical-topology-or/pkg/util"
)

// Delete removes a connection and every interface it no longer shares
// with another connection, in one write transaction.
//
// The "still in use" set is recomputed from scratch against the remaining
// connection list and expanded one level through each referenced
// interface's supporting interfaces, so an MC an NMC still rides on
// survives. Deeper supporting chains are not expanded; the stacks built
// here are at most two levels.
func (e *Engine) Delete(ctx context.Context, device, connection string) (string, error) {
	log := util.WithConnection(device, connection).WithField("action", "delete-connection")
	start := time.Now()
	event := audit.NewEvent(currentUser(), device, "delete-connection").
		WithConnection(connection)

	status, err := e.delete(ctx, device, connection, log)

	event.WithDuration(time.Since(start))
	if err != nil {
		event.WithError(err)
		e.metrics.ObserveDelete(buildResultLabel(err))
	} else {
		event.WithResult(status)
		e.metrics.ObserveDelete(metrics.ResultDeleted)
	}
	if auditErr := audit.Log(event); auditErr != nil {
		log.Warnf("audit log failed: %v", auditErr)
	}
	return status, err
}

func (e *Engine) delete(ctx context.Context, device, connection string, log logEntry) (string, error) {
	if device == "" {
		return "", util.NewMissingParameterError("device")
	}
	if connection == "" {
		return "", util.NewMissingParameterError("connection")
	}

	wtx, err := e.store.Write(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrTransactionFailed, err)
	}
	defer wtx.Close()

	cfg, err := wtx.Device(device)
	if err != nil {
		return "", err
	}

	conn, ok := cfg.Connections[connection]
	if !ok {
		return "", util.NewConnectionNotFoundError(device, connection)
	}

	srcIf := conn.Source
	dstIf := conn.Destination
	delete(cfg.Connections, connection)

	// Interfaces still referenced by any remaining connection, expanded
	// one level through supporting interfaces.
	used := make(map[string]bool)
	for _, other := range cfg.Connections {
		used[other.Source] = true
		used[other.Destination] = true
	}
	referenced := make([]string, 0, len(used))
	for name := range used {
		referenced = append(referenced, name)
	}
	for _, name := range referenced {
		if intf, ok := cfg.Interfaces[name]; ok {
			for _, sup := range intf.SupportingInterfaces {
				used[sup] = true
			}
		}
	}

	// Deletion candidates: both endpoints plus whatever they ride on.
	candidates := map[string]bool{srcIf: true, dstIf: true}
	for _, endpoint := range []string{srcIf, dstIf} {
		if intf, ok := cfg.Interfaces[endpoint]; ok {
			for _, sup := range intf.SupportingInterfaces {
				candidates[sup] = true
			}
		}
	}

	removed := 0
	for name := range candidates {
		if used[name] {
			continue
		}
		if _, ok := cfg.Interfaces[name]; ok {
			delete(cfg.Interfaces, name)
			removed++
		}
	}

	if err := wtx.Commit(); err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrTransactionFailed, err)
	}

	log.Infof("deleted connection and %d interface(s)", removed)
	return fmt.Sprintf("Connection '%s' and %d associated interface(s) deleted on device %s",
		connection, removed, device), nil
}

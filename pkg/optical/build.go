package optical

import (
	"context"
	"fmt"
	"time"

	"github.com/bashar267/optical-topology-or/pkg/audit"
	"github.com/bashar267/optical-topology-or/pkg/metrics"
	"github.com/bashar267/optical-topology-or/pkg/roadm"
	"github.com/bashar267/optical-topology-or/pkg/util"
)

// BuildRequest describes a connection to build. The source is always the
// RX side of a degree; the destination is exactly one of a degree (TX
// side) or an SRG port-pair index. Zero index values mean "not given".
type BuildRequest struct {
	Device    string
	Frequency string
	SrcDegree int
	DstDegree int
	DstPP     int
}

// BuildResult reports what a successful build created.
type BuildResult struct {
	Connection        string
	Source            string
	Destination       string
	InterfacesCreated []string
}

// Build validates the request, provisions the MC/NMC interface stacks on
// both endpoints and creates (or overwrites) the connection record, all
// within one write transaction. On rejection nothing is persisted.
//
// The frequency-overlap pre-check runs in its own read-only transaction
// before the write transaction opens. Two concurrent builds on the same
// degree and frequency can therefore both pass the check; callers needing
// strict exclusivity must serialize builds per device.
func (e *Engine) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	log := util.WithAction("build-connection").WithField("device", req.Device)
	start := time.Now()
	event := audit.NewEvent(currentUser(), req.Device, "build-connection").
		WithFrequency(req.Frequency)

	res, err := e.build(ctx, req, log)

	event.WithDuration(time.Since(start))
	if err != nil {
		event.WithError(err)
		label := buildResultLabel(err)
		e.metrics.ObserveBuild(label)
		if label == metrics.ResultRejected {
			e.metrics.ObserveBuildRejection(rejectionReason(err))
		}
	} else {
		event.WithConnection(res.Connection).WithResult("created")
		e.metrics.ObserveBuild(metrics.ResultCreated)
		e.metrics.ObserveInterfacesProvisioned(len(res.InterfacesCreated))
	}
	if auditErr := audit.Log(event); auditErr != nil {
		log.Warnf("audit log failed: %v", auditErr)
	}
	return res, err
}

func (e *Engine) build(ctx context.Context, req BuildRequest, log logEntry) (*BuildResult, error) {
	// Validation, in order. All of it happens before any mutation.
	if req.Device == "" {
		return nil, util.NewMissingParameterError("device")
	}
	if req.Frequency == "" {
		return nil, util.NewMissingParameterError("frequency")
	}
	if req.SrcDegree == 0 {
		return nil, util.NewMissingParameterError("src-degree")
	}
	if (req.DstDegree == 0) == (req.DstPP == 0) {
		return nil, fmt.Errorf("%w: dst-degree or dst-pp", util.ErrAmbiguousDestination)
	}

	if err := e.checkSlots(ctx, req, log); err != nil {
		return nil, err
	}

	wtx, err := e.store.Write(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrTransactionFailed, err)
	}
	defer wtx.Close()

	cfg, err := wtx.Device(req.Device)
	if err != nil {
		return nil, err
	}

	res := &BuildResult{}
	track := func(name string, created bool) string {
		if created {
			res.InterfacesCreated = append(res.InterfacesCreated, name)
		}
		return name
	}

	// Source stack: MC then NMC on the source degree, RX side.
	track(EnsureMediaChannel(cfg, req.SrcDegree, roadm.DirectionRX, req.Frequency))
	res.Source = track(EnsureNetworkMediaChannel(cfg, req.SrcDegree, roadm.DirectionRX, req.Frequency))

	// Destination stack: a degree gets MC+NMC on its TX side; an SRG
	// port-pair terminates directly at NMC.
	if req.DstDegree != 0 {
		track(EnsureMediaChannel(cfg, req.DstDegree, roadm.DirectionTX, req.Frequency))
		res.Destination = track(EnsureNetworkMediaChannel(cfg, req.DstDegree, roadm.DirectionTX, req.Frequency))
		res.Connection = roadm.DegreeConnectionName(req.SrcDegree, req.DstDegree, req.Frequency)
	} else {
		res.Destination = track(EnsureSRGPortChannel(cfg, req.DstPP, roadm.DirectionTX, req.Frequency))
		res.Connection = roadm.SRGConnectionName(req.SrcDegree, req.DstPP, req.Frequency)
	}

	// Create or overwrite the connection record. Power control stays off;
	// target output power is initialized, not computed.
	cfg.Connections[res.Connection] = &roadm.Connection{
		Source:            res.Source,
		Destination:       res.Destination,
		ControlMode:       roadm.ControlModeOff,
		TargetOutputPower: "0.0",
	}

	if err := wtx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrTransactionFailed, err)
	}

	log.WithField("connection", res.Connection).
		Infof("created connection with %d new interface(s)", len(res.InterfacesCreated))
	return res, nil
}

// checkSlots runs the frequency-overlap validation against a read-only
// snapshot of committed state. Store failures during the check are logged
// and treated as "no conflict": availability over strictness, with the
// device's own constraint enforcement as the backstop.
func (e *Engine) checkSlots(ctx context.Context, req BuildRequest, log logEntry) error {
	rtx, err := e.store.Read(ctx)
	if err != nil {
		log.Errorf("overlap check skipped: %v", err)
		return nil
	}
	defer rtx.Close()

	cfg, err := rtx.Device(req.Device)
	if err != nil {
		log.Errorf("overlap check skipped: %v", err)
		return nil
	}

	if SlotOverlaps(cfg, req.SrcDegree, roadm.DirectionRX, req.Frequency) {
		return &util.SlotConflictError{
			Device:    req.Device,
			Degree:    req.SrcDegree,
			Direction: string(roadm.DirectionRX),
			Frequency: req.Frequency,
		}
	}
	if req.DstDegree != 0 && SlotOverlaps(cfg, req.DstDegree, roadm.DirectionTX, req.Frequency) {
		return &util.SlotConflictError{
			Device:    req.Device,
			Degree:    req.DstDegree,
			Direction: string(roadm.DirectionTX),
			Frequency: req.Frequency,
		}
	}
	return nil
}

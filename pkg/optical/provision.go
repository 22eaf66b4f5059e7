package optical

import (
	"fmt"

	"github.com/bashar267/optical-topology-or/pkg/roadm"
)

// Interface provisioning. Each ensure operation is idempotent: when an
// interface of the computed name already exists it is returned untouched,
// otherwise it is created from a fixed attribute template. Overlap
// checking is the caller's job, before provisioning.

// EnsureMediaChannel ensures MC-TTP-DEG<degree>-<dir>-<freq> on a degree.
// The MC rides on the degree's OMS interface and reserves the frequency
// slot [f-0.05, f+0.05] THz, bounds stored as two-decimal strings.
func EnsureMediaChannel(cfg *roadm.Config, degree int, dir roadm.Direction, freq string) (string, bool) {
	name := roadm.MediaChannelName(degree, dir, freq)
	if _, ok := cfg.Interfaces[name]; ok {
		return name, false
	}

	intf := &roadm.Interface{
		Type:       roadm.TypeMediaChannel,
		AdminState: roadm.AdminInService,
	}
	if dir == roadm.DirectionRX {
		intf.SupportingCircuitPack = fmt.Sprintf("DEG%d-AMPRX", degree)
		intf.SupportingPort = fmt.Sprintf("DEG%d-AMPRX-IN", degree)
	} else {
		intf.SupportingCircuitPack = fmt.Sprintf("DEG%d-AMPTX", degree)
		intf.SupportingPort = fmt.Sprintf("DEG%d-AMPTX-OUT", degree)
	}
	intf.SupportingInterfaces = []string{roadm.OMSName(degree, dir)}

	if min, max, ok := roadm.SlotBounds(freq); ok {
		intf.MinFreq = roadm.FormatFreq(min)
		intf.MaxFreq = roadm.FormatFreq(max)
	}

	cfg.Interfaces[name] = intf
	return name, true
}

// EnsureNetworkMediaChannel ensures NMC-CTP-DEG<degree>-<dir>-<freq> on a
// degree. Supporting circuit-pack and port mirror the MC template; the
// single supporting interface is the MC of the same degree, direction and
// frequency, which callers ensure first.
func EnsureNetworkMediaChannel(cfg *roadm.Config, degree int, dir roadm.Direction, freq string) (string, bool) {
	name := roadm.NetworkMediaChannelName(degree, dir, freq)
	if _, ok := cfg.Interfaces[name]; ok {
		return name, false
	}

	intf := &roadm.Interface{
		Type:       roadm.TypeNetworkMediaChannel,
		AdminState: roadm.AdminInService,
		Frequency:  freq,
		Width:      "100",
	}
	if dir == roadm.DirectionRX {
		intf.SupportingCircuitPack = fmt.Sprintf("DEG%d-AMPRX", degree)
		intf.SupportingPort = fmt.Sprintf("DEG%d-AMPRX-IN", degree)
	} else {
		intf.SupportingCircuitPack = fmt.Sprintf("DEG%d-AMPTX", degree)
		intf.SupportingPort = fmt.Sprintf("DEG%d-AMPTX-OUT", degree)
	}
	intf.SupportingInterfaces = []string{roadm.MediaChannelName(degree, dir, freq)}

	cfg.Interfaces[name] = intf
	return name, true
}

// EnsureSRGPortChannel ensures SRG1-PP<pp>-<dir>-<freq> on a
// shared-risk-group port-pair. SRG ports terminate directly at the NMC
// layer; there is no MC underneath. The SRG index is fixed at 1, a known
// scope limitation.
func EnsureSRGPortChannel(cfg *roadm.Config, pp int, dir roadm.Direction, freq string) (string, bool) {
	name := roadm.SRGPortName(pp, dir, freq)
	if _, ok := cfg.Interfaces[name]; ok {
		return name, false
	}

	intf := &roadm.Interface{
		Type:                  roadm.TypeNetworkMediaChannel,
		AdminState:            roadm.AdminInService,
		SupportingCircuitPack: "SRG1-WSS",
		Frequency:             freq,
		Width:                 "100",
	}
	if dir == roadm.DirectionRX {
		intf.SupportingPort = fmt.Sprintf("SRG1-IN%d", pp)
	} else {
		intf.SupportingPort = fmt.Sprintf("SRG1-OUT%d", pp)
	}

	cfg.Interfaces[name] = intf
	return name, true
}

package roadm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Layer identifies the optical layer an interface terminates.
type Layer string

const (
	LayerOMS Layer = "OMS" // optical-multiplex-section
	LayerOTS Layer = "OTS" // optical-transport-section
	LayerMC  Layer = "MC"  // media-channel
	LayerNMC Layer = "NMC" // network-media-channel
)

// Direction is the signal direction encoded in an interface name.
type Direction string

const (
	DirectionRX Direction = "RX"
	DirectionTX Direction = "TX"
)

// InterfaceInfo holds the structural attributes parsed from an interface
// name. Zero values mean the attribute is not encoded in the name: degree,
// SRG and PP indices start at 1, so 0 is safe as "absent".
type InterfaceInfo struct {
	Layer     Layer
	DegreeID  int
	SRGID     int
	PPID      int
	Direction Direction
	Frequency string
}

var (
	srgRE = regexp.MustCompile(`^SRG(\d+)`)
	ppRE  = regexp.MustCompile(`^PP0*(\d+)`)
)

// ParseInterfaceName derives structural attributes from an interface name:
//
//	MC-TTP-DEG1-RX-193.3    → MC,  degree 1, RX, 193.3
//	NMC-CTP-DEG2-TX-193.3   → NMC, degree 2, TX, 193.3
//	SRG1-PP01-TX-193.3      → NMC, srg 1, pp 1, TX, 193.3
//	OMS-DEG1-TTP-RX         → OMS, degree 1, RX
//
// The function is total: attributes that cannot be derived are simply left
// unset, and malformed names yield an empty InterfaceInfo.
func ParseInterfaceName(name string) InterfaceInfo {
	var info InterfaceInfo

	parts := strings.Split(name, "-")
	if len(parts) == 0 || name == "" {
		return info
	}

	// Direction: RX wins when both tokens appear.
	for _, p := range parts {
		if p == string(DirectionRX) {
			info.Direction = DirectionRX
			break
		}
		if p == string(DirectionTX) && info.Direction == "" {
			info.Direction = DirectionTX
		}
	}

	// Frequency: last token, kept verbatim to preserve formatting.
	last := parts[len(parts)-1]
	if _, err := strconv.ParseFloat(last, 64); err == nil {
		info.Frequency = last
	}

	for _, p := range parts {
		switch {
		case strings.HasPrefix(p, "DEG"):
			if id, err := strconv.Atoi(p[3:]); err == nil {
				info.DegreeID = id
			}
		case strings.HasPrefix(p, "SRG"):
			if m := srgRE.FindStringSubmatch(p); m != nil {
				info.SRGID, _ = strconv.Atoi(m[1])
			}
		case strings.HasPrefix(p, "PP"):
			if m := ppRE.FindStringSubmatch(p); m != nil {
				info.PPID, _ = strconv.Atoi(m[1])
			}
		}
	}

	switch prefix := parts[0]; {
	case prefix == "OMS" || prefix == "OTS" || prefix == "MC" || prefix == "NMC":
		info.Layer = Layer(prefix)
	case strings.HasPrefix(prefix, "SRG"):
		// SRG PP interfaces terminate directly at the NMC layer.
		info.Layer = LayerNMC
	}

	return info
}

// Name builders. These must stay consistent with ParseInterfaceName: every
// produced name parses back to the exact attributes it was built from.

// MediaChannelName returns the MC trail-termination name on a degree.
func MediaChannelName(degree int, dir Direction, freq string) string {
	return fmt.Sprintf("MC-TTP-DEG%d-%s-%s", degree, dir, freq)
}

// NetworkMediaChannelName returns the NMC connection-termination name on a degree.
func NetworkMediaChannelName(degree int, dir Direction, freq string) string {
	return fmt.Sprintf("NMC-CTP-DEG%d-%s-%s", degree, dir, freq)
}

// SRGPortName returns the NMC name on an SRG port-pair. The SRG index is
// fixed at 1; see the provisioner for the scope of that limitation.
func SRGPortName(pp int, dir Direction, freq string) string {
	return fmt.Sprintf("SRG1-PP%02d-%s-%s", pp, dir, freq)
}

// OMSName returns the OMS degree interface name an MC rides on.
func OMSName(degree int, dir Direction) string {
	return fmt.Sprintf("OMS-DEG%d-TTP-%s", degree, dir)
}

// DegreeConnectionName returns the connection name for a degree-to-degree
// cross-connect.
func DegreeConnectionName(srcDegree, dstDegree int, freq string) string {
	return fmt.Sprintf("DEG%d-RX-to-DEG%d-TX-%s", srcDegree, dstDegree, freq)
}

// SRGConnectionName returns the connection name for a degree-to-SRG-port
// cross-connect.
func SRGConnectionName(srcDegree, pp int, freq string) string {
	return fmt.Sprintf("DEG%d-RX-to-SRG1-PP%02d-TX-%s", srcDegree, pp, freq)
}

package roadm

import "testing"

func TestParseInterfaceName(t *testing.T) {
	tests := []struct {
		name string
		want InterfaceInfo
	}{
		{"MC-TTP-DEG1-RX-193.3", InterfaceInfo{Layer: LayerMC, DegreeID: 1, Direction: DirectionRX, Frequency: "193.3"}},
		{"MC-TTP-DEG2-TX-193.3", InterfaceInfo{Layer: LayerMC, DegreeID: 2, Direction: DirectionTX, Frequency: "193.3"}},
		{"NMC-CTP-DEG1-RX-193.3", InterfaceInfo{Layer: LayerNMC, DegreeID: 1, Direction: DirectionRX, Frequency: "193.3"}},
		{"NMC-CTP-DEG12-TX-195.0", InterfaceInfo{Layer: LayerNMC, DegreeID: 12, Direction: DirectionTX, Frequency: "195.0"}},
		{"SRG1-PP01-TX-193.3", InterfaceInfo{Layer: LayerNMC, SRGID: 1, PPID: 1, Direction: DirectionTX, Frequency: "193.3"}},
		{"SRG1-PP10-RX-195.0", InterfaceInfo{Layer: LayerNMC, SRGID: 1, PPID: 10, Direction: DirectionRX, Frequency: "195.0"}},
		{"OMS-DEG1-TTP-RX", InterfaceInfo{Layer: LayerOMS, DegreeID: 1, Direction: DirectionRX}},
		{"OMS-DEG3-TTP-TX", InterfaceInfo{Layer: LayerOMS, DegreeID: 3, Direction: DirectionTX}},
		{"OTS-DEG2-TTP-RX", InterfaceInfo{Layer: LayerOTS, DegreeID: 2, Direction: DirectionRX}},

		// Attributes missing from the name stay unset.
		{"MC-TTP-DEG1-RX", InterfaceInfo{Layer: LayerMC, DegreeID: 1, Direction: DirectionRX}},
		{"SRG2-WSS", InterfaceInfo{Layer: LayerNMC, SRGID: 2}},

		// Malformed or foreign names parse without attributes.
		{"", InterfaceInfo{}},
		{"Ethernet0", InterfaceInfo{}},
		{"DEG1-AMPRX", InterfaceInfo{DegreeID: 1}},
		{"MC-TTP-DEGx-RX-193.3", InterfaceInfo{Layer: LayerMC, Direction: DirectionRX, Frequency: "193.3"}},
	}

	for _, tt := range tests {
		got := ParseInterfaceName(tt.name)
		if got != tt.want {
			t.Errorf("ParseInterfaceName(%q) = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

// A name containing both RX and TX tokens resolves to RX.
func TestParseInterfaceNameDirectionPriority(t *testing.T) {
	got := ParseInterfaceName("DEG1-RX-to-DEG2-TX-193.3")
	if got.Direction != DirectionRX {
		t.Errorf("Direction = %q, want RX", got.Direction)
	}
}

// The last token is kept verbatim so "193.30" and "193.3" stay distinct.
func TestParseInterfaceNameFrequencyVerbatim(t *testing.T) {
	got := ParseInterfaceName("MC-TTP-DEG1-RX-193.30")
	if got.Frequency != "193.30" {
		t.Errorf("Frequency = %q, want 193.30", got.Frequency)
	}
}

// Every builder output must parse back to the attributes it was built from.
func TestNameBuildersRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		want InterfaceInfo
	}{
		{MediaChannelName(1, DirectionRX, "193.3"), InterfaceInfo{Layer: LayerMC, DegreeID: 1, Direction: DirectionRX, Frequency: "193.3"}},
		{NetworkMediaChannelName(2, DirectionTX, "195.0"), InterfaceInfo{Layer: LayerNMC, DegreeID: 2, Direction: DirectionTX, Frequency: "195.0"}},
		{SRGPortName(3, DirectionTX, "193.3"), InterfaceInfo{Layer: LayerNMC, SRGID: 1, PPID: 3, Direction: DirectionTX, Frequency: "193.3"}},
		{SRGPortName(12, DirectionRX, "195.0"), InterfaceInfo{Layer: LayerNMC, SRGID: 1, PPID: 12, Direction: DirectionRX, Frequency: "195.0"}},
		{OMSName(1, DirectionRX), InterfaceInfo{Layer: LayerOMS, DegreeID: 1, Direction: DirectionRX}},
	}

	for _, tt := range tests {
		got := ParseInterfaceName(tt.name)
		if got != tt.want {
			t.Errorf("ParseInterfaceName(%q) = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestSRGPortNamePadding(t *testing.T) {
	if got := SRGPortName(3, DirectionTX, "193.3"); got != "SRG1-PP03-TX-193.3" {
		t.Errorf("SRGPortName(3) = %q", got)
	}
	if got := SRGPortName(12, DirectionTX, "193.3"); got != "SRG1-PP12-TX-193.3" {
		t.Errorf("SRGPortName(12) = %q", got)
	}
}

func TestConnectionNames(t *testing.T) {
	if got := DegreeConnectionName(1, 2, "193.3"); got != "DEG1-RX-to-DEG2-TX-193.3" {
		t.Errorf("DegreeConnectionName = %q", got)
	}
	if got := SRGConnectionName(1, 3, "195.0"); got != "DEG1-RX-to-SRG1-PP03-TX-195.0" {
		t.Errorf("SRGConnectionName = %q", got)
	}
}

package roadm

import (
	"reflect"
	"testing"
)

func TestConfigNamesSorted(t *testing.T) {
	cfg := NewConfig()
	cfg.Interfaces["OMS-DEG2-TTP-RX"] = &Interface{}
	cfg.Interfaces["OMS-DEG1-TTP-RX"] = &Interface{}
	cfg.Interfaces["MC-TTP-DEG1-RX-193.3"] = &Interface{}

	want := []string{"MC-TTP-DEG1-RX-193.3", "OMS-DEG1-TTP-RX", "OMS-DEG2-TTP-RX"}
	if got := cfg.InterfaceNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("InterfaceNames() = %v, want %v", got, want)
	}
}

func TestConfigClone(t *testing.T) {
	cfg := NewConfig()
	cfg.Interfaces["MC-TTP-DEG1-RX-193.3"] = &Interface{
		Type:                 TypeMediaChannel,
		AdminState:           AdminInService,
		SupportingInterfaces: []string{"OMS-DEG1-TTP-RX"},
		MinFreq:              "193.25",
		MaxFreq:              "193.35",
	}
	cfg.CircuitPacks["DEG1-AMPRX"] = &CircuitPack{Model: "amp"}
	cfg.Connections["DEG1-RX-to-DEG2-TX-193.3"] = &Connection{
		Source:      "NMC-CTP-DEG1-RX-193.3",
		Destination: "NMC-CTP-DEG2-TX-193.3",
		ControlMode: ControlModeOff,
	}

	clone := cfg.Clone()
	if !reflect.DeepEqual(cfg, clone) {
		t.Fatalf("Clone() differs from original")
	}

	// Mutating the clone must not leak back.
	clone.Interfaces["MC-TTP-DEG1-RX-193.3"].MinFreq = "0"
	clone.Interfaces["MC-TTP-DEG1-RX-193.3"].SupportingInterfaces[0] = "changed"
	clone.Connections["DEG1-RX-to-DEG2-TX-193.3"].Destination = "changed"
	delete(clone.CircuitPacks, "DEG1-AMPRX")

	if cfg.Interfaces["MC-TTP-DEG1-RX-193.3"].MinFreq != "193.25" {
		t.Errorf("clone mutation leaked into original interface scalar")
	}
	if cfg.Interfaces["MC-TTP-DEG1-RX-193.3"].SupportingInterfaces[0] != "OMS-DEG1-TTP-RX" {
		t.Errorf("clone mutation leaked into original supporting list")
	}
	if cfg.Connections["DEG1-RX-to-DEG2-TX-193.3"].Destination != "NMC-CTP-DEG2-TX-193.3" {
		t.Errorf("clone mutation leaked into original connection")
	}
	if _, ok := cfg.CircuitPacks["DEG1-AMPRX"]; !ok {
		t.Errorf("clone delete leaked into original circuit-packs")
	}
}

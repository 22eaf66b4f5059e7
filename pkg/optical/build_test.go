package optical

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/bashar267/optical-topology-or/internal/testutil"
	"github.com/bashar267/optical-topology-or/pkg/roadm"
	"github.com/bashar267/optical-topology-or/pkg/util"
)

func TestBuildValidation(t *testing.T) {
	eng := NewEngine(testutil.NewSeededStore(), nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     BuildRequest
		wantErr error
	}{
		{"missing device", BuildRequest{Frequency: "193.3", SrcDegree: 1, DstDegree: 2}, util.ErrMissingParameter},
		{"missing frequency", BuildRequest{Device: testutil.FixtureDevice, SrcDegree: 1, DstDegree: 2}, util.ErrMissingParameter},
		{"missing src degree", BuildRequest{Device: testutil.FixtureDevice, Frequency: "193.3", DstDegree: 2}, util.ErrMissingParameter},
		{"no destination", BuildRequest{Device: testutil.FixtureDevice, Frequency: "193.3", SrcDegree: 1}, util.ErrAmbiguousDestination},
		{"both destinations", BuildRequest{Device: testutil.FixtureDevice, Frequency: "193.3", SrcDegree: 1, DstDegree: 2, DstPP: 3}, util.ErrAmbiguousDestination},
		{"unknown device", BuildRequest{Device: "no-such-roadm", Frequency: "193.3", SrcDegree: 1, DstDegree: 2}, util.ErrDeviceNotFound},
	}

	for _, tt := range tests {
		_, err := eng.Build(ctx, tt.req)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: Build error = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestBuildDegreeToDegree(t *testing.T) {
	st := testutil.NewSeededStore()
	eng := NewEngine(st, nil)
	ctx := context.Background()

	res, err := eng.Build(ctx, BuildRequest{
		Device:    testutil.FixtureDevice,
		Frequency: "193.3",
		SrcDegree: 1,
		DstDegree: 2,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if res.Connection != "DEG1-RX-to-DEG2-TX-193.3" {
		t.Errorf("Connection = %q", res.Connection)
	}
	if res.Source != "NMC-CTP-DEG1-RX-193.3" || res.Destination != "NMC-CTP-DEG2-TX-193.3" {
		t.Errorf("endpoints = %q -> %q", res.Source, res.Destination)
	}

	wantCreated := []string{
		"MC-TTP-DEG1-RX-193.3",
		"MC-TTP-DEG2-TX-193.3",
		"NMC-CTP-DEG1-RX-193.3",
		"NMC-CTP-DEG2-TX-193.3",
	}
	got := append([]string(nil), res.InterfacesCreated...)
	sort.Strings(got)
	if !reflect.DeepEqual(got, wantCreated) {
		t.Errorf("InterfacesCreated = %v, want %v", got, wantCreated)
	}

	// The commit is visible to a fresh read session.
	rtx, _ := st.Read(ctx)
	defer rtx.Close()
	cfg, err := rtx.Device(testutil.FixtureDevice)
	if err != nil {
		t.Fatal(err)
	}
	conn, ok := cfg.Connections[res.Connection]
	if !ok {
		t.Fatalf("connection %q not committed", res.Connection)
	}
	if conn.ControlMode != roadm.ControlModeOff || conn.TargetOutputPower != "0.0" {
		t.Errorf("control mode/power = %q/%q", conn.ControlMode, conn.TargetOutputPower)
	}
	for _, name := range wantCreated {
		if _, ok := cfg.Interfaces[name]; !ok {
			t.Errorf("interface %q not committed", name)
		}
	}
}

func TestBuildDegreeToSRGPort(t *testing.T) {
	st := testutil.NewSeededStore()
	eng := NewEngine(st, nil)
	ctx := context.Background()

	res, err := eng.Build(ctx, BuildRequest{
		Device:    testutil.FixtureDevice,
		Frequency: "195.0",
		SrcDegree: 1,
		DstPP:     3,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if res.Connection != "DEG1-RX-to-SRG1-PP03-TX-195.0" {
		t.Errorf("Connection = %q", res.Connection)
	}
	if res.Destination != "SRG1-PP03-TX-195.0" {
		t.Errorf("Destination = %q", res.Destination)
	}

	// The SRG side terminates at NMC: no MC is created for it.
	for _, name := range res.InterfacesCreated {
		info := roadm.ParseInterfaceName(name)
		if info.Layer == roadm.LayerMC && info.Direction == roadm.DirectionTX {
			t.Errorf("unexpected TX media channel %q for SRG destination", name)
		}
	}
	if len(res.InterfacesCreated) != 3 {
		t.Errorf("InterfacesCreated = %v, want 3 entries", res.InterfacesCreated)
	}
}

// Building the same connection twice is idempotent: the second run
// creates nothing and overwrites the connection record in place.
func TestBuildIdempotent(t *testing.T) {
	st := testutil.NewSeededStore()
	eng := NewEngine(st, nil)
	ctx := context.Background()

	req := BuildRequest{Device: testutil.FixtureDevice, Frequency: "193.3", SrcDegree: 1, DstDegree: 2}
	if _, err := eng.Build(ctx, req); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	res, err := eng.Build(ctx, req)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if len(res.InterfacesCreated) != 0 {
		t.Errorf("second build created %v", res.InterfacesCreated)
	}
}

func TestBuildSlotConflict(t *testing.T) {
	st := testutil.NewSeededStore()
	eng := NewEngine(st, nil)
	ctx := context.Background()

	if _, err := eng.Build(ctx, BuildRequest{
		Device: testutil.FixtureDevice, Frequency: "193.3", SrcDegree: 1, DstDegree: 2,
	}); err != nil {
		t.Fatalf("first Build: %v", err)
	}

	// 193.32 sits inside the 193.3 slot on DEG1-RX.
	_, err := eng.Build(ctx, BuildRequest{
		Device: testutil.FixtureDevice, Frequency: "193.32", SrcDegree: 1, DstDegree: 3,
	})
	if !errors.Is(err, util.ErrSlotConflict) {
		t.Fatalf("Build error = %v, want slot conflict", err)
	}

	// Nothing from the rejected build is persisted.
	rtx, _ := st.Read(ctx)
	defer rtx.Close()
	cfg, _ := rtx.Device(testutil.FixtureDevice)
	for name := range cfg.Interfaces {
		if roadm.ParseInterfaceName(name).Frequency == "193.32" {
			t.Errorf("rejected build persisted interface %q", name)
		}
	}
	if _, ok := cfg.Connections["DEG1-RX-to-DEG3-TX-193.32"]; ok {
		t.Error("rejected build persisted its connection")
	}
}

// A conflict on the destination degree's TX side also rejects the build.
func TestBuildSlotConflictDestination(t *testing.T) {
	eng := NewEngine(testutil.NewSeededStore(), nil)
	ctx := context.Background()

	if _, err := eng.Build(ctx, BuildRequest{
		Device: testutil.FixtureDevice, Frequency: "193.3", SrcDegree: 1, DstDegree: 2,
	}); err != nil {
		t.Fatalf("first Build: %v", err)
	}

	_, err := eng.Build(ctx, BuildRequest{
		Device: testutil.FixtureDevice, Frequency: "193.3", SrcDegree: 3, DstDegree: 2,
	})
	if !errors.Is(err, util.ErrSlotConflict) {
		t.Fatalf("Build error = %v, want slot conflict", err)
	}
}

// The same frequency is fine on a different degree.
func TestBuildSameFrequencyOtherDegrees(t *testing.T) {
	eng := NewEngine(testutil.NewSeededStore(), nil)
	ctx := context.Background()

	if _, err := eng.Build(ctx, BuildRequest{
		Device: testutil.FixtureDevice, Frequency: "193.3", SrcDegree: 1, DstDegree: 2,
	}); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if _, err := eng.Build(ctx, BuildRequest{
		Device: testutil.FixtureDevice, Frequency: "193.3", SrcDegree: 2, DstDegree: 3,
	}); err != nil {
		t.Fatalf("second Build: %v", err)
	}
}

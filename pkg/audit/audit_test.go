package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLogger(t *testing.T, rotation RotationConfig) (*FileLogger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.log")
	logger, err := NewFileLogger(path, rotation)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger, path
}

func TestNewEvent(t *testing.T) {
	event := NewEvent("alice@host", "roadm-a", "build-connection")

	if event.User != "alice@host" {
		t.Errorf("User = %q", event.User)
	}
	if event.Device != "roadm-a" {
		t.Errorf("Device = %q", event.Device)
	}
	if event.Action != "build-connection" {
		t.Errorf("Action = %q", event.Action)
	}
	if event.ID == "" {
		t.Error("ID should not be empty")
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestEventBuilders(t *testing.T) {
	event := NewEvent("alice@host", "roadm-a", "build-connection").
		WithConnection("DEG1-RX-to-DEG2-TX-193.3").
		WithFrequency("193.3").
		WithResult("created").
		WithDuration(42 * time.Millisecond)

	if event.Connection != "DEG1-RX-to-DEG2-TX-193.3" {
		t.Errorf("Connection = %q", event.Connection)
	}
	if event.Frequency != "193.3" {
		t.Errorf("Frequency = %q", event.Frequency)
	}
	if !event.Success || event.Result != "created" {
		t.Errorf("Success/Result = %v/%q", event.Success, event.Result)
	}
	if event.Duration != 42*time.Millisecond {
		t.Errorf("Duration = %v", event.Duration)
	}
}

func TestEventWithError(t *testing.T) {
	event := NewEvent("alice@host", "roadm-a", "delete-connection").
		WithResult("deleted").
		WithError(os.ErrNotExist)

	if event.Success {
		t.Error("WithError should clear Success")
	}
	if !strings.Contains(event.Error, "file does not exist") {
		t.Errorf("Error = %q", event.Error)
	}
}

func TestFileLoggerLogAndQuery(t *testing.T) {
	logger, _ := newTestLogger(t, RotationConfig{})

	events := []*Event{
		NewEvent("alice@host", "roadm-a", "build-connection").WithResult("created"),
		NewEvent("alice@host", "roadm-a", "delete-connection").WithError(os.ErrInvalid),
		NewEvent("bob@host", "roadm-b", "build-connection").WithResult("created"),
	}
	for _, e := range events {
		if err := logger.Log(e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	got, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Query returned %d events, want 3", len(got))
	}
	if got[0].User != "alice@host" || got[0].Action != "build-connection" {
		t.Errorf("first event = %+v", got[0])
	}
}

func TestFileLoggerQueryFilters(t *testing.T) {
	logger, _ := newTestLogger(t, RotationConfig{})

	logger.Log(NewEvent("alice@host", "roadm-a", "build-connection").WithResult("created"))
	logger.Log(NewEvent("alice@host", "roadm-a", "build-connection").WithError(os.ErrInvalid))
	logger.Log(NewEvent("bob@host", "roadm-b", "delete-connection").WithResult("deleted"))

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 3},
		{"by device", Filter{Device: "roadm-a"}, 2},
		{"by user", Filter{User: "bob@host"}, 1},
		{"by action", Filter{Action: "build-connection"}, 2},
		{"success only", Filter{SuccessOnly: true}, 2},
		{"failure only", Filter{FailureOnly: true}, 1},
		{"limit", Filter{Limit: 2}, 2},
		{"offset", Filter{Offset: 2}, 1},
		{"offset past end", Filter{Offset: 10}, 0},
		{"no match", Filter{Device: "roadm-z"}, 0},
	}

	for _, tt := range tests {
		got, err := logger.Query(tt.filter)
		if err != nil {
			t.Fatalf("%s: Query failed: %v", tt.name, err)
		}
		if len(got) != tt.want {
			t.Errorf("%s: Query returned %d events, want %d", tt.name, len(got), tt.want)
		}
	}
}

func TestFileLoggerTimeFilter(t *testing.T) {
	logger, _ := newTestLogger(t, RotationConfig{})

	old := NewEvent("alice@host", "roadm-a", "build-connection")
	old.Timestamp = time.Now().Add(-2 * time.Hour)
	logger.Log(old)
	logger.Log(NewEvent("alice@host", "roadm-a", "build-connection"))

	got, err := logger.Query(Filter{StartTime: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("StartTime filter returned %d events, want 1", len(got))
	}

	got, err = logger.Query(Filter{EndTime: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("EndTime filter returned %d events, want 1", len(got))
	}
}

func TestFileLoggerSkipsMalformedLines(t *testing.T) {
	logger, path := newTestLogger(t, RotationConfig{})

	logger.Log(NewEvent("alice@host", "roadm-a", "build-connection"))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("not json\n")
	f.Close()

	logger.Log(NewEvent("alice@host", "roadm-a", "delete-connection"))

	got, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Query returned %d events, want 2", len(got))
	}
}

func TestFileLoggerRotation(t *testing.T) {
	logger, path := newTestLogger(t, RotationConfig{MaxSize: 1, MaxBackups: 5})

	// MaxSize 1 makes every write after the first trigger a rotation.
	for i := 0; i < 3; i++ {
		if err := logger.Log(NewEvent("alice@host", "roadm-a", "build-connection")); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	matches, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Error("no rotated files created")
	}

	// The active file still accepts writes.
	if err := logger.Log(NewEvent("alice@host", "roadm-a", "build-connection")); err != nil {
		t.Errorf("Log after rotation failed: %v", err)
	}
}

func TestDefaultLoggerNoOp(t *testing.T) {
	if err := Log(NewEvent("alice@host", "roadm-a", "build-connection")); err != nil {
		t.Errorf("Log without default logger returned %v", err)
	}
	events, err := Query(Filter{})
	if err != nil {
		t.Errorf("Query without default logger returned %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Query returned %d events", len(events))
	}
}

func TestDefaultLogger(t *testing.T) {
	logger, _ := newTestLogger(t, RotationConfig{})
	SetDefaultLogger(logger)
	t.Cleanup(func() { SetDefaultLogger(nil) })

	if err := Log(NewEvent("alice@host", "roadm-a", "build-connection")); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	events, err := Query(Filter{Device: "roadm-a"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Query returned %d events, want 1", len(events))
	}
}

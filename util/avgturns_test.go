package util

import (
	"testing"
	"time"
)

func TestAvgTurns(t *testing.T) {
	start := time.Unix(0, 0)
	a := &AvgTurns{lastCalled: start}

	if got := a.get(200, start.Add(2*time.Second)); got != 100 {
		t.Errorf("first report: expected 100 turns/s, got %d", got)
	}
	if got := a.get(500, start.Add(4*time.Second)); got != 125 {
		t.Errorf("second report: expected 125 turns/s, got %d", got)
	}
	// The oldest report drops out after the window is full.
	a.get(800, start.Add(6*time.Second))
	if got := a.get(1400, start.Add(8*time.Second)); got != 200 {
		t.Errorf("fourth report: expected 200 turns/s, got %d", got)
	}
}

func TestAvgTurnsNoElapsedTime(t *testing.T) {
	now := time.Now()
	a := &AvgTurns{lastCalled: now}
	if got := a.get(10, now); got != 10 {
		t.Errorf("expected duration to clamp to 1s, got %d turns/s", got)
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := NewLogger("loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
	log, err := NewLogger("debug")
	if err != nil {
		t.Fatal(err)
	}
	if entry := Target(log, "Test"); entry.Data["target"] != "Test" {
		t.Errorf("expected target field, got %v", entry.Data)
	}
}

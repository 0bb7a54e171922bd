package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewRun(t *testing.T) {
	run, err := NewRun("alice", "all", 365, 120, 3, false)
	if err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}
	if run.ID == uuid.Nil {
		t.Error("Expected run ID to be generated")
	}
	if run.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestNewRun_Invalid(t *testing.T) {
	if _, err := NewRun("", "all", 365, 0, 1, false); err == nil {
		t.Error("Expected error for missing user")
	}
	if _, err := NewRun("alice", "all", 0, 0, 1, false); err == nil {
		t.Error("Expected error for days < 1")
	}
	if _, err := NewRun("alice", "all", 7, -1, 1, false); err == nil {
		t.Error("Expected error for negative event count")
	}
}

func TestLoadRun(t *testing.T) {
	id := uuid.New()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	run, err := LoadRun(id, "alice", "like", 30, 5, 1, true, createdAt)
	if err != nil {
		t.Fatalf("Failed to load run: %v", err)
	}
	if run.ID != id {
		t.Errorf("Expected ID %v, got %v", id, run.ID)
	}
	if !run.Truncated {
		t.Error("Expected truncated flag to be preserved")
	}
	if !run.CreatedAt.Equal(createdAt) {
		t.Errorf("Expected created_at %v, got %v", createdAt, run.CreatedAt)
	}
}

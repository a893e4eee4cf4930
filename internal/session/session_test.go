package session

import (
	"fmt"
	"testing"
	"time"
)

func TestGetCreatesAndReuses(t *testing.T) {
	s := NewStore()

	m1 := s.Get("abc")
	m1.SetTarget("FutbolDB")

	m2 := s.Get("abc")
	if m2 != m1 {
		t.Fatal("same session id should return the same memory")
	}
	if m2.LastTarget != "FutbolDB" {
		t.Errorf("LastTarget = %q, want FutbolDB", m2.LastTarget)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestEmptySessionIDIsThrowaway(t *testing.T) {
	s := NewStore()
	m := s.Get("")
	m.SetTarget("Unity")
	if s.Len() != 0 {
		t.Errorf("anonymous session must not be stored, Len = %d", s.Len())
	}
	if s.Get("").LastTarget != "." {
		t.Error("anonymous sessions must not share state")
	}
}

func TestNewMemoryDefaults(t *testing.T) {
	m := NewStore().Get("x")
	if m.LastTarget != "." {
		t.Errorf("initial LastTarget = %q, want .", m.LastTarget)
	}
	if m.PendingIntent != PendingNone {
		t.Errorf("initial PendingIntent = %q, want none", m.PendingIntent)
	}
}

func TestSetTargetResetsContext(t *testing.T) {
	m := NewStore().Get("x")
	m.LastSuggestions = []string{"A", "B"}
	m.PendingIntent = PendingSummary

	m.SetTarget("FutbolDB")

	if m.LastSuggestions != nil {
		t.Error("SetTarget should clear suggestions")
	}
	if m.PendingIntent != PendingNone {
		t.Error("SetTarget should clear pending intent")
	}
	if len(m.Notes) != 1 || m.Notes[0] != "Ultimo objetivo: FutbolDB" {
		t.Errorf("Notes = %v", m.Notes)
	}
}

func TestSetListingClampsAndNotes(t *testing.T) {
	m := NewStore().Get("x")
	entries := make([]string, 100)
	for i := range entries {
		entries[i] = fmt.Sprintf("dir%02d", i)
	}

	m.SetListing(".", entries)

	if len(m.LastListing) != 80 {
		t.Errorf("listing clamped to %d, want 80", len(m.LastListing))
	}
	if len(m.Notes) != 2 {
		t.Fatalf("Notes = %v", m.Notes)
	}
	if m.Notes[1] != "Ultimo listado (80 elementos): dir00, dir01, dir02, dir03, dir04, dir05, dir06, dir07, dir08, dir09, dir10, dir11" {
		t.Errorf("listing note = %q", m.Notes[1])
	}
}

func TestCleanupEvictsOldest(t *testing.T) {
	s := NewStore()
	clock := time.Unix(0, 0)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	for i := 0; i < 250; i++ {
		s.Get(fmt.Sprintf("s%03d", i))
	}
	s.Cleanup()

	if s.Len() != 120 {
		t.Fatalf("Len after cleanup = %d, want 120", s.Len())
	}
	// The most recently used sessions survive.
	s.mu.Lock()
	_, oldest := s.sessions["s000"]
	_, newest := s.sessions["s249"]
	s.mu.Unlock()
	if oldest {
		t.Error("oldest session should have been evicted")
	}
	if !newest {
		t.Error("newest session should have survived")
	}
}

func TestCleanupBelowThresholdIsNoop(t *testing.T) {
	s := NewStore()
	for i := 0; i < 50; i++ {
		s.Get(fmt.Sprintf("s%d", i))
	}
	s.Cleanup()
	if s.Len() != 50 {
		t.Errorf("Len = %d, want 50", s.Len())
	}
}

package audit

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := NewLog(context.Background(), filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	events := []Event{
		{SessionID: "s1", Kind: KindProposed, Command: "rm notas.txt", Cwd: "/home/ana"},
		{SessionID: "s1", Kind: KindApproved, Command: "rm notas.txt", Cwd: "/home/ana", OK: true},
		{SessionID: "s2", Kind: KindAutoExecuted, Command: "ls -la", Cwd: "/home/ana", OK: true},
	}
	for _, e := range events {
		if err := l.Record(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := l.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Kind != KindAutoExecuted {
		t.Errorf("newest kind = %s", got[0].Kind)
	}
	if !got[0].OK {
		t.Error("ok flag lost")
	}
}

func TestBySession(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	l.Record(ctx, Event{SessionID: "s1", Kind: KindProposed, Command: "mv a b"})
	l.Record(ctx, Event{SessionID: "s2", Kind: KindBlocked, Command: "rm -rf /", Error: "bloqueado"})
	l.Record(ctx, Event{SessionID: "s1", Kind: KindRejected, Command: "mv a b"})

	got, err := l.BySession(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Kind != KindProposed || got[1].Kind != KindRejected {
		t.Errorf("order = %s, %s", got[0].Kind, got[1].Kind)
	}
	if got[0].CreatedAt == 0 {
		t.Error("created_at not set")
	}
}

func TestBlockedEventKeepsError(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	l.Record(ctx, Event{SessionID: "s1", Kind: KindBlocked, Command: "dd if=/dev/zero", Error: "Bloqueé ese comando por seguridad"})
	got, err := l.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Error == "" {
		t.Error("error message lost")
	}
}

// Package audit persists a log of command proposals and executions so
// a user can review what the agent did and when.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// EventKind classifies an audit entry.
type EventKind string

const (
	KindProposed     EventKind = "proposed"      // Command proposed, waiting for approval
	KindApproved     EventKind = "approved"      // User approved and the command ran
	KindRejected     EventKind = "rejected"      // User rejected the proposal
	KindAutoExecuted EventKind = "auto_executed" // Read-only command ran without approval
	KindBlocked      EventKind = "blocked"       // Command refused by the safety layer
)

// Event is one audit entry.
type Event struct {
	EventID   int64
	SessionID string
	Kind      EventKind
	Command   string
	Cwd       string
	OK        bool
	Error     string
	CreatedAt int64
}

// Log provides database operations for the audit trail.
type Log struct {
	db *sql.DB
}

// NewLog opens (or creates) the audit database and initializes the
// schema.
func NewLog(ctx context.Context, dbPath string) (*Log, error) {
	// WAL mode allows readers while the writer appends
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping audit database: %w", err)
	}

	l := &Log{db: db}
	if err := l.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize audit schema: %w", err)
	}
	return l, nil
}

// Close closes the database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

func (l *Log) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		event_id   INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		kind       TEXT NOT NULL,
		command    TEXT NOT NULL,
		cwd        TEXT NOT NULL DEFAULT '',
		ok         INTEGER NOT NULL DEFAULT 0,
		error      TEXT,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id);
	CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
	CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at);
	`
	_, err := l.db.ExecContext(ctx, schema)
	return err
}

// Record appends an event. The audit trail is append-only; there is no
// update or delete path.
func (l *Log) Record(ctx context.Context, e Event) error {
	okInt := 0
	if e.OK {
		okInt = 1
	}
	query := `
		INSERT INTO events (session_id, kind, command, cwd, ok, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := l.db.ExecContext(ctx, query,
		e.SessionID, string(e.Kind), e.Command, e.Cwd, okInt, e.Error, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Event, error) {
	query := `
		SELECT event_id, session_id, kind, command, cwd, ok, error, created_at
		FROM events
		ORDER BY event_id DESC
		LIMIT ?
	`
	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var okInt int
		var errMsg sql.NullString
		if err := rows.Scan(&e.EventID, &e.SessionID, &e.Kind, &e.Command, &e.Cwd, &okInt, &errMsg, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		e.OK = okInt == 1
		if errMsg.Valid {
			e.Error = errMsg.String
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit events: %w", err)
	}
	return events, nil
}

// BySession returns all events for a session, oldest first.
func (l *Log) BySession(ctx context.Context, sessionID string) ([]Event, error) {
	query := `
		SELECT event_id, session_id, kind, command, cwd, ok, error, created_at
		FROM events
		WHERE session_id = ?
		ORDER BY event_id
	`
	rows, err := l.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var okInt int
		var errMsg sql.NullString
		if err := rows.Scan(&e.EventID, &e.SessionID, &e.Kind, &e.Command, &e.Cwd, &okInt, &errMsg, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		e.OK = okInt == 1
		if errMsg.Valid {
			e.Error = errMsg.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

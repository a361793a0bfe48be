// Package audit records policy filter decisions in a SQLite store so that
// denied catalog access is traceable per request.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Decision outcomes.
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

// Object classes a decision applies to.
const (
	ObjectDataSource = "datasource"
	ObjectItem       = "item"
)

// Entry is one recorded filter decision.
type Entry struct {
	ID         string
	CreatedAt  time.Time
	RequestID  string
	UserID     string
	Role       string
	ObjectType string // ObjectDataSource or ObjectItem
	ObjectName string // database, table, or procedure name
	Decision   string // DecisionAllow or DecisionDeny
}

// Store persists filter decisions. Safe for concurrent use; all state lives
// in the underlying *sql.DB.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle. The caller owns the handle and is
// responsible for closing it.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init creates the decision table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS filter_decisions (
			id          TEXT PRIMARY KEY,
			created_at  TIMESTAMP NOT NULL,
			request_id  TEXT NOT NULL,
			user_id     TEXT NOT NULL,
			role        TEXT NOT NULL,
			object_type TEXT NOT NULL,
			object_name TEXT NOT NULL,
			decision    TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create filter_decisions: %w", err)
	}
	return nil
}

// Record inserts a decision. The entry ID and timestamp are assigned here.
func (s *Store) Record(ctx context.Context, e Entry) error {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO filter_decisions
			(id, created_at, request_id, user_id, role, object_type, object_name, decision)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt, e.RequestID, e.UserID, e.Role, e.ObjectType, e.ObjectName, e.Decision)
	if err != nil {
		return fmt.Errorf("insert filter decision: %w", err)
	}
	return nil
}

// ListRecent returns up to limit decisions, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, request_id, user_id, role, object_type, object_name, decision
		FROM filter_decisions
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list filter decisions: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.RequestID, &e.UserID, &e.Role,
			&e.ObjectType, &e.ObjectName, &e.Decision); err != nil {
			return nil, fmt.Errorf("scan filter decision: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

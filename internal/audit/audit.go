// Package audit records back-office actions (loads, exports, cache clears)
// in Postgres. Auditing is optional: a nil *Trail is a safe no-op so the
// service runs without a database.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS audit_trail (
    id         UUID PRIMARY KEY,
    action     TEXT NOT NULL,
    detail     TEXT NOT NULL DEFAULT '',
    actor      TEXT NOT NULL DEFAULT '',
    ip         TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_audit_trail_created_at ON audit_trail (created_at DESC);
`

// Entry is one recorded back-office action.
type Entry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Trail writes and reads the audit log.
type Trail struct {
	pool *pgxpool.Pool
}

// New creates a Trail and ensures the schema exists.
func New(ctx context.Context, pool *pgxpool.Pool) (*Trail, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure audit schema: %w", err)
	}
	return &Trail{pool: pool}, nil
}

// Enabled reports whether auditing is active.
func (t *Trail) Enabled() bool {
	return t != nil && t.pool != nil
}

// Record stores one action. Failures are logged, never returned: auditing
// must not interfere with the operation being audited.
func (t *Trail) Record(ctx context.Context, action, detail, actor, ip string) {
	if !t.Enabled() {
		return
	}
	_, err := t.pool.Exec(ctx,
		`INSERT INTO audit_trail (id, action, detail, actor, ip) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), action, detail, actor, ip,
	)
	if err != nil {
		slog.Error("audit record failed", "action", action, "error", err)
	}
}

// Recent returns the most recent entries, newest first.
func (t *Trail) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if !t.Enabled() {
		return nil, nil
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}

	rows, err := t.pool.Query(ctx,
		`SELECT id, action, detail, actor, ip, created_at
		 FROM audit_trail ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit trail: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.Detail, &e.Actor, &e.IP, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

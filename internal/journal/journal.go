// Package journal persists each replay session's output (orders and PnL
// marks) to SQLite for offline analysis. The engine never reads it back;
// engine state itself is not persisted.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"basketbot-go/internal/market"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    run_id     TEXT PRIMARY KEY,
    started_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    id     INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT    NOT NULL,
    ts     INTEGER NOT NULL,
    symbol TEXT    NOT NULL,
    price  INTEGER NOT NULL,
    qty    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS marks (
    id     INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT    NOT NULL,
    ts     INTEGER NOT NULL,
    pnl    REAL    NOT NULL,
    halted INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_orders_run ON orders(run_id, ts);
CREATE INDEX IF NOT EXISTS idx_marks_run  ON marks(run_id, ts);
`

// Store is a SQLite-backed session journal (pure Go driver, no CGo).
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at dsn and applies the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open %q: %w", dsn, err)
	}
	// SQLite is single-writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// StartSession registers a new run.
func (s *Store) StartSession(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (run_id, started_at) VALUES (?, ?)`,
		runID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("journal: start session: %w", err)
	}
	return nil
}

// RecordOrders writes every order emitted on one tick in a single
// transaction.
func (s *Store) RecordOrders(ctx context.Context, runID string, ts int64, orders []market.Order) error {
	if len(orders) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("journal: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO orders (run_id, ts, symbol, price, qty) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("journal: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range orders {
		if _, err := stmt.ExecContext(ctx, runID, ts, o.Symbol, o.Price, o.Qty); err != nil {
			tx.Rollback()
			return fmt.Errorf("journal: insert order: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("journal: commit: %w", err)
	}
	return nil
}

// RecordMark stores the cumulative PnL and halt state after one tick.
func (s *Store) RecordMark(ctx context.Context, runID string, ts int64, pnl float64, halted bool) error {
	h := 0
	if halted {
		h = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO marks (run_id, ts, pnl, halted) VALUES (?, ?, ?, ?)`,
		runID, ts, pnl, h)
	if err != nil {
		return fmt.Errorf("journal: insert mark: %w", err)
	}
	return nil
}

// OrderCount returns how many orders a run has journaled.
func (s *Store) OrderCount(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("journal: count orders: %w", err)
	}
	return n, nil
}

// LastMark returns the final PnL and halt state journaled for a run.
func (s *Store) LastMark(ctx context.Context, runID string) (float64, bool, error) {
	var pnl float64
	var halted int
	err := s.db.QueryRowContext(ctx,
		`SELECT pnl, halted FROM marks WHERE run_id = ? ORDER BY ts DESC, id DESC LIMIT 1`,
		runID).Scan(&pnl, &halted)
	if err != nil {
		return 0, false, fmt.Errorf("journal: last mark: %w", err)
	}
	return pnl, halted == 1, nil
}

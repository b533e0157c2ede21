// Package sqlite persists the transaction ledger in a local SQLite file so
// records and statistics survive restarts. Statistics are computed from the
// record set on read, which keeps them consistent with the records by
// construction.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentpay/agentpay/ledger"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("ledger sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create ledger db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger db: %w", err)
	}
	// One connection serializes writes, preserving the single-writer
	// discipline Append relies on.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable wal: %w", err)
	}
	if _, err := db.ExecContext(context.Background(), schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Append(ctx context.Context, entry ledger.Entry) (ledger.Record, error) {
	rec, err := ledger.NewRecord(entry)
	if err != nil {
		return ledger.Record{}, err
	}
	const q = `
INSERT INTO transactions (id, agent_id, payer, amount, token, tx_id, task, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`
	if _, err := s.db.ExecContext(
		ctx,
		q,
		rec.ID,
		rec.AgentID,
		rec.Payer,
		rec.Amount,
		rec.Token,
		rec.TxID,
		rec.Task,
		rec.Timestamp.Format(time.RFC3339Nano),
	); err != nil {
		return ledger.Record{}, fmt.Errorf("append transaction: %w", err)
	}
	return rec, nil
}

func (s *Store) Recent(ctx context.Context, limit int) ([]ledger.Record, error) {
	if limit <= 0 {
		limit = ledger.DefaultRecentLimit
	}
	const q = `
SELECT id, agent_id, payer, amount, token, tx_id, task, created_at
FROM transactions
ORDER BY rowid DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	defer rows.Close()
	out := []ledger.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) StatsFor(ctx context.Context, agentID string) (ledger.AgentStats, error) {
	const q = `
SELECT COUNT(*), COALESCE(SUM(amount), 0), MAX(created_at)
FROM transactions
WHERE agent_id = ?;
`
	var (
		stats    ledger.AgentStats
		lastUsed sql.NullString
	)
	if err := s.db.QueryRowContext(ctx, q, agentID).Scan(&stats.TotalCalls, &stats.TotalRevenue, &lastUsed); err != nil {
		return ledger.AgentStats{}, fmt.Errorf("agent stats: %w", err)
	}
	if lastUsed.Valid {
		ts, err := time.Parse(time.RFC3339Nano, lastUsed.String)
		if err != nil {
			return ledger.AgentStats{}, fmt.Errorf("parse last-used timestamp: %w", err)
		}
		stats.LastUsed = &ts
	}
	return stats, nil
}

func (s *Store) GlobalStats(ctx context.Context) (ledger.GlobalStats, error) {
	out := ledger.GlobalStats{AgentStats: map[string]ledger.AgentStats{}}

	const totals = `
SELECT COUNT(*), COALESCE(SUM(amount), 0), COUNT(DISTINCT payer)
FROM transactions;
`
	if err := s.db.QueryRowContext(ctx, totals).Scan(&out.TotalTransactions, &out.TotalRevenue, &out.UniquePayers); err != nil {
		return ledger.GlobalStats{}, fmt.Errorf("global totals: %w", err)
	}

	const perAgent = `
SELECT agent_id, COUNT(*), COALESCE(SUM(amount), 0), MAX(created_at)
FROM transactions
GROUP BY agent_id;
`
	rows, err := s.db.QueryContext(ctx, perAgent)
	if err != nil {
		return ledger.GlobalStats{}, fmt.Errorf("per-agent stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			agentID  string
			stats    ledger.AgentStats
			lastUsed sql.NullString
		)
		if err := rows.Scan(&agentID, &stats.TotalCalls, &stats.TotalRevenue, &lastUsed); err != nil {
			return ledger.GlobalStats{}, fmt.Errorf("scan per-agent stats: %w", err)
		}
		if lastUsed.Valid {
			ts, err := time.Parse(time.RFC3339Nano, lastUsed.String)
			if err != nil {
				return ledger.GlobalStats{}, fmt.Errorf("parse last-used timestamp: %w", err)
			}
			stats.LastUsed = &ts
		}
		out.AgentStats[agentID] = stats
	}
	if err := rows.Err(); err != nil {
		return ledger.GlobalStats{}, err
	}

	recent, err := s.Recent(ctx, ledger.RecentGlobalCount)
	if err != nil {
		return ledger.GlobalStats{}, err
	}
	out.RecentTransactions = recent
	return out, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func scanRecord(rows *sql.Rows) (ledger.Record, error) {
	var (
		rec       ledger.Record
		txID      sql.NullString
		createdAt string
	)
	if err := rows.Scan(&rec.ID, &rec.AgentID, &rec.Payer, &rec.Amount, &rec.Token, &txID, &rec.Task, &createdAt); err != nil {
		return ledger.Record{}, fmt.Errorf("scan transaction: %w", err)
	}
	if txID.Valid {
		rec.TxID = txID.String
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return ledger.Record{}, fmt.Errorf("parse transaction timestamp: %w", err)
	}
	rec.Timestamp = ts
	return rec, nil
}

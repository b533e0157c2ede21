// Package ledger is the append-only record of completed, paid runs and the
// source of all marketplace statistics. Records are immutable once
// appended; statistics are projections over the record set and are never
// edited independently.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultRecentLimit applies when Recent is called without a limit.
	DefaultRecentLimit = 50
	// taskMaxRunes bounds the stored task description so the log cannot
	// grow without bound on large inputs.
	taskMaxRunes = 100
	// RecentGlobalCount is how many records GlobalStats embeds.
	RecentGlobalCount = 10

	defaultPayer = "anonymous"
	defaultToken = "STX"
)

// Record is one completed, paid run. Immutable once appended.
type Record struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agentId"`
	Payer     string    `json:"payer"`
	Amount    float64   `json:"amount"`
	Token     string    `json:"token"`
	TxID      string    `json:"txId,omitempty"`
	Task      string    `json:"task"`
	Timestamp time.Time `json:"timestamp"`
}

// Entry is the caller-supplied portion of a Record. The store generates the
// id and timestamp.
type Entry struct {
	AgentID string
	Payer   string
	Amount  float64
	Token   string
	TxID    string
	Task    string
}

// AgentStats is derived per-agent state: call count and revenue track the
// record set exactly and only ever grow.
type AgentStats struct {
	TotalCalls   int64      `json:"totalCalls"`
	TotalRevenue float64    `json:"totalRevenue"`
	LastUsed     *time.Time `json:"lastUsed"`
}

// GlobalStats is a pure projection over the full record set.
type GlobalStats struct {
	TotalTransactions  int64                 `json:"totalTransactions"`
	TotalRevenue       float64               `json:"totalRevenue"`
	UniquePayers       int                   `json:"uniquePayers"`
	AgentStats         map[string]AgentStats `json:"agentStats"`
	RecentTransactions []Record              `json:"recentTransactions"`
}

// Store is the ledger contract. Append is the sole mutation; implementations
// must not lose a stats increment under concurrent appends.
type Store interface {
	Append(ctx context.Context, entry Entry) (Record, error)
	// Recent returns the most recently appended records, most-recent
	// first. limit <= 0 applies DefaultRecentLimit.
	Recent(ctx context.Context, limit int) ([]Record, error)
	// StatsFor returns zero-valued stats for an agent with no history,
	// never a not-found error.
	StatsFor(ctx context.Context, agentID string) (AgentStats, error)
	GlobalStats(ctx context.Context) (GlobalStats, error)
	Close() error
}

// NewRecord validates an entry and stamps it with a fresh id and timestamp.
// It is shared by every Store implementation.
func NewRecord(entry Entry) (Record, error) {
	entry.AgentID = strings.TrimSpace(entry.AgentID)
	if entry.AgentID == "" {
		return Record{}, fmt.Errorf("agent id is required")
	}
	if entry.Amount < 0 {
		return Record{}, fmt.Errorf("amount must not be negative")
	}
	payer := strings.TrimSpace(entry.Payer)
	if payer == "" {
		payer = defaultPayer
	}
	token := strings.TrimSpace(entry.Token)
	if token == "" {
		token = defaultToken
	}
	return Record{
		ID:        uuid.NewString(),
		AgentID:   entry.AgentID,
		Payer:     payer,
		Amount:    entry.Amount,
		Token:     token,
		TxID:      entry.TxID,
		Task:      truncateRunes(entry.Task, taskMaxRunes),
		Timestamp: time.Now().UTC(),
	}, nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	return limit
}

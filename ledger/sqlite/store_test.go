package sqlite

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/agentpay/agentpay/ledger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("new ledger store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_AppendAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Append(ctx, ledger.Entry{AgentID: "text-summarizer", Amount: 0.001, Task: "summarize"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	second, err := store.Append(ctx, ledger.Entry{
		AgentID: "code-reviewer",
		Payer:   "ST2PAYER",
		Amount:  0.005,
		TxID:    "0xabc",
		Task:    "review",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}
	if recent[0].ID != second.ID || recent[1].ID != first.ID {
		t.Fatalf("recent not most-recent-first: %v then %v", recent[0].ID, recent[1].ID)
	}
	if recent[0].TxID != "0xabc" || recent[0].Payer != "ST2PAYER" {
		t.Fatalf("record fields not persisted: %+v", recent[0])
	}
	if recent[1].Payer != "anonymous" {
		t.Fatalf("payer default not applied: %+v", recent[1])
	}

	bounded, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("recent bounded: %v", err)
	}
	if len(bounded) != 1 || bounded[0].ID != second.ID {
		t.Fatalf("limit not honored: %+v", bounded)
	}
}

func TestStore_StatsFor(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	zero, err := store.StatsFor(ctx, "never-ran")
	if err != nil {
		t.Fatalf("stats for unknown agent: %v", err)
	}
	if zero.TotalCalls != 0 || zero.TotalRevenue != 0 || zero.LastUsed != nil {
		t.Fatalf("expected zero stats, got %+v", zero)
	}

	for i := 0; i < 3; i++ {
		if _, err := store.Append(ctx, ledger.Entry{AgentID: "trading-signal", Amount: 0.005}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	stats, err := store.StatsFor(ctx, "trading-signal")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalCalls != 3 {
		t.Fatalf("totalCalls = %d, want 3", stats.TotalCalls)
	}
	if math.Abs(stats.TotalRevenue-0.015) > 1e-9 {
		t.Fatalf("totalRevenue = %v, want 0.015", stats.TotalRevenue)
	}
	if stats.LastUsed == nil {
		t.Fatal("lastUsed not set")
	}
}

func TestStore_GlobalStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if _, err := store.Append(ctx, ledger.Entry{AgentID: "seo-optimizer", Payer: "p1", Amount: 0.003}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if _, err := store.Append(ctx, ledger.Entry{AgentID: "resume-analyzer", Payer: "p2", Amount: 0.002}); err != nil {
		t.Fatalf("append: %v", err)
	}

	global, err := store.GlobalStats(ctx)
	if err != nil {
		t.Fatalf("global stats: %v", err)
	}
	if global.TotalTransactions != 13 || global.UniquePayers != 2 {
		t.Fatalf("unexpected totals: %+v", global)
	}
	if len(global.RecentTransactions) != ledger.RecentGlobalCount {
		t.Fatalf("expected %d recent transactions, got %d", ledger.RecentGlobalCount, len(global.RecentTransactions))
	}
	if global.AgentStats["seo-optimizer"].TotalCalls != 12 {
		t.Fatalf("per-agent stats wrong: %+v", global.AgentStats)
	}
	if math.Abs(global.TotalRevenue-(12*0.003+0.002)) > 1e-9 {
		t.Fatalf("unexpected revenue: %v", global.TotalRevenue)
	}
}

func TestStore_ReopenKeepsRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.db")
	ctx := context.Background()

	store, err := New(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Append(ctx, ledger.Entry{AgentID: "code-reviewer", Amount: 0.005}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	stats, err := reopened.StatsFor(ctx, "code-reviewer")
	if err != nil {
		t.Fatalf("stats after reopen: %v", err)
	}
	if stats.TotalCalls != 1 {
		t.Fatalf("records not persisted across reopen: %+v", stats)
	}
}

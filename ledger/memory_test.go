package ledger

import (
	"context"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryStore_AppendAndStats(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec, err := s.Append(ctx, Entry{AgentID: "text-summarizer", Amount: 0.001, Task: "summarize this"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rec.ID == "" || rec.Timestamp.IsZero() {
		t.Fatalf("record missing id or timestamp: %+v", rec)
	}
	if rec.Payer != "anonymous" || rec.Token != "STX" {
		t.Fatalf("defaults not applied: %+v", rec)
	}

	agg, err := s.StatsFor(ctx, "text-summarizer")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if agg.TotalCalls != 1 || agg.TotalRevenue != 0.001 || agg.LastUsed == nil {
		t.Fatalf("unexpected stats: %+v", agg)
	}
}

func TestMemoryStore_StatsForUnknownAgentIsZero(t *testing.T) {
	s := NewMemoryStore()
	agg, err := s.StatsFor(context.Background(), "never-ran")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if agg.TotalCalls != 0 || agg.TotalRevenue != 0 || agg.LastUsed != nil {
		t.Fatalf("expected zero stats, got %+v", agg)
	}
}

func TestMemoryStore_TaskTruncated(t *testing.T) {
	s := NewMemoryStore()
	long := strings.Repeat("x", 500)
	rec, err := s.Append(context.Background(), Entry{AgentID: "a", Amount: 0.001, Task: long})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len([]rune(rec.Task)) != 100 {
		t.Fatalf("task not truncated to 100 runes: len=%d", len([]rune(rec.Task)))
	}
}

func TestMemoryStore_RecentOrderAndBound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		rec, err := s.Append(ctx, Entry{AgentID: "a", Amount: 0.001})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		ids = append(ids, rec.ID)
	}

	recent, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("limit not honored: got %d records", len(recent))
	}
	want := []string{ids[4], ids[3], ids[2]}
	got := []string{recent[0].ID, recent[1].ID, recent[2].ID}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("recent order mismatch (-want +got):\n%s", diff)
	}

	all, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent default: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("default limit returned %d records", len(all))
	}
}

func TestMemoryStore_ConcurrentAppendsLoseNothing(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	const n = 100
	const price = 0.005

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Append(ctx, Entry{AgentID: "trading-signal", Payer: "payer-1", Amount: price}); err != nil {
				t.Errorf("append: %v", err)
			}
		}()
	}
	wg.Wait()

	agg, err := s.StatsFor(ctx, "trading-signal")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if agg.TotalCalls != n {
		t.Fatalf("lost appends: totalCalls=%d want %d", agg.TotalCalls, n)
	}
	if math.Abs(agg.TotalRevenue-n*price) > 1e-9 {
		t.Fatalf("lost revenue: %v want %v", agg.TotalRevenue, n*price)
	}

	seen := map[string]bool{}
	recent, err := s.Recent(ctx, n)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	for _, rec := range recent {
		if seen[rec.ID] {
			t.Fatalf("duplicate record id %q", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestMemoryStore_GlobalStatsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := s.Append(ctx, Entry{AgentID: "seo-optimizer", Payer: "p1", Amount: 0.003}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if _, err := s.Append(ctx, Entry{AgentID: "code-reviewer", Payer: "p2", Amount: 0.005}); err != nil {
		t.Fatalf("append: %v", err)
	}

	first, err := s.GlobalStats(ctx)
	if err != nil {
		t.Fatalf("global stats: %v", err)
	}
	second, err := s.GlobalStats(ctx)
	if err != nil {
		t.Fatalf("global stats again: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("global stats not idempotent (-first +second):\n%s", diff)
	}

	if first.TotalTransactions != 4 || first.UniquePayers != 2 {
		t.Fatalf("unexpected global stats: %+v", first)
	}
	if math.Abs(first.TotalRevenue-(3*0.003+0.005)) > 1e-9 {
		t.Fatalf("unexpected total revenue: %v", first.TotalRevenue)
	}
	if len(first.RecentTransactions) != 4 {
		t.Fatalf("expected 4 recent transactions, got %d", len(first.RecentTransactions))
	}
}

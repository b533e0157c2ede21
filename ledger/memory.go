package ledger

import (
	"context"
	"sync"
)

// MemoryStore keeps the ledger in process memory. All mutation goes through
// Append under one mutex, so a record insertion and its stats update are
// atomic with respect to concurrent appends.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
	stats   map[string]AgentStats
	payers  map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stats:  map[string]AgentStats{},
		payers: map[string]struct{}{},
	}
}

func (s *MemoryStore) Append(_ context.Context, entry Entry) (Record, error) {
	rec, err := NewRecord(entry)
	if err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	s.payers[rec.Payer] = struct{}{}

	agg := s.stats[rec.AgentID]
	agg.TotalCalls++
	agg.TotalRevenue += rec.Amount
	ts := rec.Timestamp
	agg.LastUsed = &ts
	s.stats[rec.AgentID] = agg

	return rec, nil
}

func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Record, error) {
	limit = normalizeLimit(limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recentLocked(limit), nil
}

func (s *MemoryStore) recentLocked(limit int) []Record {
	n := len(s.records)
	if limit > n {
		limit = n
	}
	out := make([]Record, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.records[i])
	}
	return out
}

func (s *MemoryStore) StatsFor(_ context.Context, agentID string) (AgentStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if agg, ok := s.stats[agentID]; ok {
		if agg.LastUsed != nil {
			ts := *agg.LastUsed
			agg.LastUsed = &ts
		}
		return agg, nil
	}
	return AgentStats{}, nil
}

func (s *MemoryStore) GlobalStats(_ context.Context) (GlobalStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := GlobalStats{
		TotalTransactions:  int64(len(s.records)),
		UniquePayers:       len(s.payers),
		AgentStats:         make(map[string]AgentStats, len(s.stats)),
		RecentTransactions: s.recentLocked(RecentGlobalCount),
	}
	for id, agg := range s.stats {
		if agg.LastUsed != nil {
			ts := *agg.LastUsed
			agg.LastUsed = &ts
		}
		out.AgentStats[id] = agg
		out.TotalRevenue += agg.TotalRevenue
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

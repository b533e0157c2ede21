package observe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recordingSink) Emit(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestMultiSinkFansOut(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	sink := NewMultiSink(a, nil, b)

	if err := sink.Emit(context.Background(), Event{Kind: KindRun}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if a.count() != 1 || b.count() != 1 {
		t.Fatalf("expected both sinks to receive the event, got %d/%d", a.count(), b.count())
	}
}

func TestMultiSinkDeliversPastFailures(t *testing.T) {
	failing := &recordingSink{err: errors.New("backend down")}
	healthy := &recordingSink{}
	sink := NewMultiSink(failing, healthy)

	err := sink.Emit(context.Background(), Event{Kind: KindPayment})
	if err == nil {
		t.Fatal("expected joined error from failing sink")
	}
	if healthy.count() != 1 {
		t.Fatal("healthy sink must still receive the event")
	}
}

func TestNewMultiSinkCollapses(t *testing.T) {
	if _, ok := NewMultiSink().(NoopSink); !ok {
		t.Error("no sinks should collapse to NoopSink")
	}
	only := &recordingSink{}
	if got := NewMultiSink(only, nil); got != Sink(only) {
		t.Error("single sink should be returned unwrapped")
	}
}

func TestSinkFunc(t *testing.T) {
	var got Event
	sink := SinkFunc(func(_ context.Context, event Event) error {
		got = event
		return nil
	})
	if err := sink.Emit(context.Background(), Event{RunID: "run-1"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got.RunID != "run-1" {
		t.Fatalf("event not delivered: %+v", got)
	}

	var nilSink SinkFunc
	if err := nilSink.Emit(context.Background(), Event{}); err != nil {
		t.Fatalf("nil SinkFunc should no-op, got %v", err)
	}
}

func TestAsyncSinkDrains(t *testing.T) {
	downstream := &recordingSink{}
	async := NewAsyncSink(downstream, 8)

	for i := 0; i < 3; i++ {
		if err := async.Emit(context.Background(), Event{Kind: KindRun}); err != nil {
			t.Fatalf("emit: %v", err)
		}
	}
	deadline := time.Now().Add(2 * time.Second)
	for downstream.count() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("drained %d of 3 events before timeout", downstream.count())
		}
		time.Sleep(5 * time.Millisecond)
	}
	async.Close()
}

// Package observe emits lifecycle events for paid runs. Events flow through
// a Sink; the otel subpackage bridges them to OpenTelemetry spans.
package observe

import "time"

type Kind string

type Status string

const (
	KindRun     Kind = "run"
	KindPayment Kind = "payment"
	KindHandler Kind = "handler"
	KindLedger  Kind = "ledger"
	KindCustom  Kind = "custom"
)

const (
	StatusStarted    Status = "started"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusChallenged Status = "challenged"
	StatusRejected   Status = "rejected"
)

type Event struct {
	ID         string         `json:"id,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	RunID      string         `json:"runId,omitempty"`
	AgentID    string         `json:"agentId,omitempty"`
	Payer      string         `json:"payer,omitempty"`
	Kind       Kind           `json:"kind"`
	Status     Status         `json:"status,omitempty"`
	Message    string         `json:"message,omitempty"`
	Error      string         `json:"error,omitempty"`
	DurationMs int64          `json:"durationMs,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

func (e *Event) Normalize() {
	if e == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Kind == "" {
		e.Kind = KindCustom
	}
	if e.Attributes == nil {
		e.Attributes = map[string]any{}
	}
}

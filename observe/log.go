package observe

import (
	"context"
	"log"
)

// NewLogSink reports failed and rejected events through the standard
// logger, so problems surface even when tracing is switched off.
func NewLogSink() Sink {
	return SinkFunc(func(_ context.Context, event Event) error {
		switch event.Status {
		case StatusFailed:
			log.Printf("⚠️ %s failed (run=%s agent=%s payer=%s): %s",
				event.Kind, event.RunID, event.AgentID, event.Payer, event.Error)
		case StatusRejected:
			log.Printf("🚫 payment rejected (run=%s agent=%s): %s",
				event.RunID, event.AgentID, event.Message)
		}
		return nil
	})
}

// Package gateway dispatches paid runs: it validates the request, enforces
// the payment precondition through a payment.Gate, executes the agent's
// handler, and appends the completed run to the ledger.
//
// Input validation happens before the gate so an invalid request never
// charges the caller. Once a payment is accepted the run executes on a
// context detached from the caller's, so a client disconnect after
// settlement cannot abort execution or recording.
package gateway

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agentpay/agentpay/agents"
	"github.com/agentpay/agentpay/catalog"
	"github.com/agentpay/agentpay/ledger"
	"github.com/agentpay/agentpay/observe"
	"github.com/agentpay/agentpay/payment"
)

// DefaultHandlerTimeout bounds a single handler execution.
const DefaultHandlerTimeout = 2 * time.Minute

// state tracks a run through its lifecycle. Transitions only move forward;
// Challenged, Rejected, and Failed are terminal.
type state string

const (
	stateReceived       state = "received"
	stateValidated      state = "validated"
	statePaymentChecked state = "payment_checked"
	stateChallenged     state = "challenged"
	stateRejected       state = "rejected"
	stateExecuting      state = "executing"
	stateRecorded       state = "recorded"
	stateFailed         state = "failed"
)

// HandlerResolver maps an agent id to its executable handler.
// *agents.Registry is the production implementation.
type HandlerResolver interface {
	Resolve(agentID string) (agents.Handler, bool)
}

type Config struct {
	Catalog *catalog.Catalog
	Agents  HandlerResolver
	Gate    payment.Gate
	Ledger  ledger.Store

	// PayTo is the settlement address quoted in challenges.
	PayTo string
	// Network names the settlement network, e.g. "testnet".
	Network string

	// HandlerTimeout bounds handler execution. Zero means
	// DefaultHandlerTimeout.
	HandlerTimeout time.Duration

	// Sink receives run lifecycle events. Nil means no events.
	Sink observe.Sink
}

type Gateway struct {
	catalog *catalog.Catalog
	agents  HandlerResolver
	gate    payment.Gate
	ledger  ledger.Store
	payTo   string
	network string
	timeout time.Duration
	sink    observe.Sink
}

func New(cfg Config) (*Gateway, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("gateway: catalog is required")
	}
	if cfg.Agents == nil {
		return nil, fmt.Errorf("gateway: handler resolver is required")
	}
	if cfg.Gate == nil {
		return nil, fmt.Errorf("gateway: payment gate is required")
	}
	if cfg.Ledger == nil {
		return nil, fmt.Errorf("gateway: ledger store is required")
	}
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = DefaultHandlerTimeout
	}
	if cfg.Sink == nil {
		cfg.Sink = observe.NoopSink{}
	}
	return &Gateway{
		catalog: cfg.Catalog,
		agents:  cfg.Agents,
		gate:    cfg.Gate,
		ledger:  cfg.Ledger,
		payTo:   cfg.PayTo,
		network: cfg.Network,
		timeout: cfg.HandlerTimeout,
		sink:    cfg.Sink,
	}, nil
}

// RunResult is a completed, recorded run.
type RunResult struct {
	Agent  catalog.Agent
	Payer  string
	TxID   string
	Output any
	Record ledger.Record
}

// RequirementsFor quotes the payment requirements for one agent. The same
// values appear in 402 challenges and at the price endpoint.
func (g *Gateway) RequirementsFor(agent catalog.Agent) payment.Requirements {
	return payment.Requirements{
		Amount:      agent.PriceMicroSTX,
		Asset:       agent.Token,
		Address:     g.payTo,
		Network:     g.network,
		Description: fmt.Sprintf("Payment for %s", agent.Name),
	}
}

// Run executes one paid run end to end. Failures are typed: ErrEmptyInput
// and ErrAgentNotFound precede the gate, PaymentRequiredError and
// PaymentRejectedError are gate outcomes, ExecutionError and
// PersistenceError happen after payment was accepted.
func (g *Gateway) Run(ctx context.Context, agentID, input string, proof *payment.Proof) (*RunResult, error) {
	runID := uuid.NewString()
	started := time.Now()
	st := stateReceived

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}
	agent, ok := g.catalog.Lookup(agentID)
	if !ok {
		return nil, ErrAgentNotFound
	}
	handler, ok := g.agents.Resolve(agent.ID)
	if !ok {
		log.Printf("⚠️ agent %s is listed in the catalog but has no handler", agent.ID)
		return nil, ErrNoHandler
	}
	st = stateValidated

	g.emit(ctx, observe.Event{
		RunID:      runID,
		AgentID:    agent.ID,
		Kind:       observe.KindRun,
		Status:     observe.StatusStarted,
		Attributes: map[string]any{"state": string(st)},
	})

	req := g.RequirementsFor(agent)
	decision, err := g.gate.Check(ctx, req, proof)
	if err != nil {
		st = stateFailed
		g.emitPayment(ctx, runID, agent.ID, "", observe.StatusFailed, err.Error(), st)
		return nil, &VerificationError{Err: err}
	}
	switch decision.Kind {
	case payment.KindChallenge:
		st = stateChallenged
		g.emitPayment(ctx, runID, agent.ID, "", observe.StatusChallenged, "", st)
		return nil, &PaymentRequiredError{Requirements: req}
	case payment.KindRejected:
		st = stateRejected
		g.emitPayment(ctx, runID, agent.ID, "", observe.StatusRejected, decision.Reason, st)
		return nil, &PaymentRejectedError{
			Reason:       decision.Reason,
			Retryable:    decision.Retryable,
			Requirements: req,
		}
	}
	st = statePaymentChecked
	g.emitPayment(ctx, runID, agent.ID, decision.Payer, observe.StatusCompleted, "", st)

	// Payment is settled. From here on the caller's context must not
	// cancel the run, or a disconnect would charge without delivering.
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
	defer cancel()

	st = stateExecuting
	handlerStart := time.Now()
	output, err := handler(runCtx, input)
	if err != nil {
		st = stateFailed
		log.Printf("❌ agent %s execution failed (payer=%s tx=%s): %v", agent.ID, decision.Payer, decision.Transaction, err)
		g.emit(runCtx, observe.Event{
			RunID:      runID,
			AgentID:    agent.ID,
			Payer:      decision.Payer,
			Kind:       observe.KindHandler,
			Status:     observe.StatusFailed,
			Error:      err.Error(),
			DurationMs: time.Since(handlerStart).Milliseconds(),
			Attributes: map[string]any{"state": string(st)},
		})
		return nil, &ExecutionError{AgentID: agent.ID, Err: err}
	}
	g.emit(runCtx, observe.Event{
		RunID:      runID,
		AgentID:    agent.ID,
		Payer:      decision.Payer,
		Kind:       observe.KindHandler,
		Status:     observe.StatusCompleted,
		DurationMs: time.Since(handlerStart).Milliseconds(),
		Attributes: map[string]any{"state": string(st)},
	})

	record, err := g.ledger.Append(runCtx, ledger.Entry{
		AgentID: agent.ID,
		Payer:   decision.Payer,
		Amount:  agent.PriceSTX,
		Token:   agent.Token,
		TxID:    decision.Transaction,
		Task:    input,
	})
	if err != nil {
		st = stateFailed
		log.Printf("❌ agent %s run not recorded (payer=%s amount=%g %s tx=%s): %v",
			agent.ID, decision.Payer, agent.PriceSTX, agent.Token, decision.Transaction, err)
		g.emit(runCtx, observe.Event{
			RunID:      runID,
			AgentID:    agent.ID,
			Payer:      decision.Payer,
			Kind:       observe.KindLedger,
			Status:     observe.StatusFailed,
			Error:      err.Error(),
			Attributes: map[string]any{"state": string(st)},
		})
		return nil, &PersistenceError{AgentID: agent.ID, Err: err}
	}
	st = stateRecorded
	g.emit(runCtx, observe.Event{
		RunID:      runID,
		AgentID:    agent.ID,
		Payer:      record.Payer,
		Kind:       observe.KindLedger,
		Status:     observe.StatusCompleted,
		Attributes: map[string]any{"state": string(st)},
	})

	g.emit(runCtx, observe.Event{
		RunID:      runID,
		AgentID:    agent.ID,
		Payer:      record.Payer,
		Kind:       observe.KindRun,
		Status:     observe.StatusCompleted,
		DurationMs: time.Since(started).Milliseconds(),
		Attributes: map[string]any{"state": string(st)},
	})

	return &RunResult{
		Agent:  agent,
		Payer:  record.Payer,
		TxID:   record.TxID,
		Output: output,
		Record: record,
	}, nil
}

func (g *Gateway) emit(ctx context.Context, event observe.Event) {
	if err := g.sink.Emit(ctx, event); err != nil {
		log.Printf("⚠️ observe sink error: %v", err)
	}
}

func (g *Gateway) emitPayment(ctx context.Context, runID, agentID, payer string, status observe.Status, reason string, st state) {
	g.emit(ctx, observe.Event{
		RunID:      runID,
		AgentID:    agentID,
		Payer:      payer,
		Kind:       observe.KindPayment,
		Status:     status,
		Message:    reason,
		Attributes: map[string]any{"state": string(st)},
	})
}

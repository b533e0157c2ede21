package gateway

import (
	"errors"
	"fmt"

	"github.com/agentpay/agentpay/payment"
)

// ErrAgentNotFound marks a run request for an agent id the catalog does not
// carry. Maps to 404 at the HTTP layer.
var ErrAgentNotFound = errors.New("agent not found")

// ErrEmptyInput marks a run request whose input is empty after trimming.
// Raised before the payment gate is consulted; maps to 400.
var ErrEmptyInput = errors.New("input is required")

// ErrNoHandler marks a configuration defect: the catalog lists an agent the
// handler registry cannot resolve. Maps to 500 and is logged loudly.
var ErrNoHandler = errors.New("no handler registered for agent")

// PaymentRequiredError carries the 402 challenge: the caller presented no
// proof and must pay the stated requirements, then retry.
type PaymentRequiredError struct {
	Requirements payment.Requirements
}

func (e *PaymentRequiredError) Error() string {
	return fmt.Sprintf("payment required: %s %s to %s", e.Requirements.Amount, e.Requirements.Asset, e.Requirements.Address)
}

// PaymentRejectedError carries a failed verification. Retryable means a new
// proof could succeed; the same proof never will.
type PaymentRejectedError struct {
	Reason       string
	Retryable    bool
	Requirements payment.Requirements
}

func (e *PaymentRejectedError) Error() string {
	return fmt.Sprintf("payment rejected: %s", e.Reason)
}

// VerificationError means the gate itself failed, typically a facilitator
// outage. The caller was not charged and may retry the same proof.
type VerificationError struct {
	Err error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("payment verification failed: %v", e.Err)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// ExecutionError means the handler failed after payment was accepted. No
// ledger record is written; the payment context is logged for
// reconciliation.
type ExecutionError struct {
	AgentID string
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("agent %s execution failed: %v", e.AgentID, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// PersistenceError means execution succeeded but the ledger append failed.
// The payment context is logged so the record can be reconstructed.
type PersistenceError struct {
	AgentID string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("agent %s result could not be recorded: %v", e.AgentID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Package payment decides whether a run request may proceed to execution.
//
// A request either carries a proof of settlement or it does not. Without a
// proof the gate answers with a challenge describing exactly what to pay;
// with an invalid proof it answers with a rejection that says whether a new
// proof could succeed. Verification talks to an external facilitator
// service; this package never creates payments.
package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// ProofHeader is the HTTP header a paying client presents its proof in.
const ProofHeader = "X-Payment"

// AnonymousPayer is recorded when no payer identity is available.
const AnonymousPayer = "anonymous"

// Requirements describes what a caller must pay before an agent runs.
// It is returned verbatim inside the 402 challenge so an automated client
// can construct a valid proof and retry.
type Requirements struct {
	Amount      string `json:"amount"`
	Asset       string `json:"asset"`
	Address     string `json:"address"`
	Network     string `json:"network"`
	Description string `json:"description,omitempty"`
}

// Proof is caller-supplied evidence of settlement: a signed transaction
// reference plus the payer identity and amount it settles.
type Proof struct {
	Payer       string `json:"payer"`
	Transaction string `json:"transaction"`
	Amount      string `json:"amount"`
	Network     string `json:"network"`
	Signature   string `json:"signature"`
}

// ParseProofHeader decodes the base64 JSON proof from the X-Payment header.
// An empty header yields (nil, nil): absence of proof is not an error.
func ParseProofHeader(header string) (*Proof, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return nil, fmt.Errorf("payment header is not valid base64: %w", err)
	}
	var p Proof
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("payment header is not valid JSON: %w", err)
	}
	return &p, nil
}

type DecisionKind string

const (
	// KindAllow permits dispatch; payer and transaction are extracted for
	// the ledger.
	KindAllow DecisionKind = "allow"
	// KindChallenge tells the caller to pay and retry. Terminal for this
	// request but not a failure.
	KindChallenge DecisionKind = "challenge"
	// KindRejected means a proof was presented and failed verification.
	// Retrying with the same proof will not succeed.
	KindRejected DecisionKind = "rejected"
)

type Decision struct {
	Kind        DecisionKind
	Payer       string
	Transaction string
	// Reason is a human-readable rejection cause.
	Reason string
	// Retryable distinguishes "retry with a new proof" from "fatal,
	// contact support".
	Retryable bool
}

// Gate enforces the payment precondition for one run request.
type Gate interface {
	Check(ctx context.Context, req Requirements, proof *Proof) (Decision, error)
}

func allow(payer, transaction string) Decision {
	if strings.TrimSpace(payer) == "" {
		payer = AnonymousPayer
	}
	return Decision{Kind: KindAllow, Payer: payer, Transaction: transaction}
}

func challenge() Decision {
	return Decision{Kind: KindChallenge}
}

func reject(reason string, retryable bool) Decision {
	return Decision{Kind: KindRejected, Reason: reason, Retryable: retryable}
}

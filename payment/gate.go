package payment

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// OpenGate bypasses verification entirely. Every request is allowed with an
// anonymous payer and no transaction reference. This is for non-production
// deployments only and must be switched on explicitly; enforced mode is
// the default.
type OpenGate struct{}

func (OpenGate) Check(_ context.Context, _ Requirements, _ *Proof) (Decision, error) {
	return allow(AnonymousPayer, ""), nil
}

// Verifier is the remote facilitator surface the enforced gate depends on.
type Verifier interface {
	Verify(ctx context.Context, proof Proof, req Requirements) (VerifyResult, error)
	Settle(ctx context.Context, proof Proof, req Requirements) (SettleResult, error)
}

// VerifierGate is the enforced gate: it validates the proof locally,
// refuses reused transaction references, and confirms settlement with the
// facilitator before allowing dispatch.
type VerifierGate struct {
	verifier Verifier
	spent    SpentRegistry
}

func NewVerifierGate(verifier Verifier, spent SpentRegistry) (*VerifierGate, error) {
	if verifier == nil {
		return nil, fmt.Errorf("verifier is required")
	}
	if spent == nil {
		spent = NewMemorySpentRegistry()
	}
	return &VerifierGate{verifier: verifier, spent: spent}, nil
}

func (g *VerifierGate) Check(ctx context.Context, req Requirements, proof *Proof) (Decision, error) {
	if proof == nil {
		return challenge(), nil
	}
	if strings.TrimSpace(proof.Signature) == "" {
		return reject("proof signature is missing or malformed", false), nil
	}
	if strings.TrimSpace(proof.Transaction) == "" {
		return reject("proof carries no transaction reference", false), nil
	}
	if proof.Amount != req.Amount {
		return reject(fmt.Sprintf("amount mismatch: proof settles %s, agent requires %s", proof.Amount, req.Amount), true), nil
	}
	if !strings.EqualFold(proof.Network, req.Network) {
		return reject(fmt.Sprintf("wrong network: proof is for %q, agent requires %q", proof.Network, req.Network), true), nil
	}

	// Claim the reference before talking to the facilitator so two
	// concurrent requests cannot both spend it.
	fresh, err := g.spent.MarkSpent(ctx, proof.Transaction)
	if err != nil {
		return Decision{}, fmt.Errorf("spent-reference check: %w", err)
	}
	if !fresh {
		return reject("transaction reference already spent", false), nil
	}

	vr, err := g.verifier.Verify(ctx, *proof, req)
	if err != nil {
		// The proof never reached a verdict; give the claim back so
		// the caller can retry once the facilitator recovers.
		g.release(ctx, proof.Transaction)
		return Decision{}, fmt.Errorf("facilitator verify: %w", err)
	}
	if !vr.Valid {
		reason := vr.Reason
		if reason == "" {
			reason = "facilitator rejected the proof"
		}
		return reject(reason, true), nil
	}

	sr, err := g.verifier.Settle(ctx, *proof, req)
	if err != nil {
		g.release(ctx, proof.Transaction)
		return Decision{}, fmt.Errorf("facilitator settle: %w", err)
	}

	payer := vr.Payer
	if payer == "" {
		payer = proof.Payer
	}
	txID := sr.Transaction
	if txID == "" {
		txID = proof.Transaction
	}
	return allow(payer, txID), nil
}

func (g *VerifierGate) release(ctx context.Context, ref string) {
	if err := g.spent.Release(ctx, ref); err != nil {
		log.Printf("⚠️ could not release spent claim for %s: %v", ref, err)
	}
}

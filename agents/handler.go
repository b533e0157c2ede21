// Package agents implements the analysis handlers behind the marketplace.
// Each handler renders a prompt, calls the configured inference provider,
// and parses the reply into a typed result. Provider failures and
// unparseable replies degrade to deterministic content instead of erroring,
// so a provider outage never reaches the caller.
package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/agentpay/agentpay/llm"
	"github.com/agentpay/agentpay/providers/mock"
)

// Handler executes one agent against trimmed, non-empty input.
type Handler func(ctx context.Context, input string) (any, error)

// Registry is the fixed agent-id → handler table consulted by the gateway.
type Registry struct {
	provider llm.Provider
	handlers map[string]Handler
}

func NewRegistry(provider llm.Provider) *Registry {
	if provider == nil {
		provider = mock.New()
	}
	r := &Registry{
		provider: provider,
		handlers: map[string]Handler{},
	}
	r.handlers["resume-analyzer"] = r.analyzeResume
	r.handlers["smart-contract-auditor"] = r.auditContract
	r.handlers["text-summarizer"] = r.summarizeText
	r.handlers["code-reviewer"] = r.reviewCode
	r.handlers["trading-signal"] = r.analyzeTradingSignal
	r.handlers["seo-optimizer"] = r.optimizeSEO
	return r
}

// Resolve returns the handler registered for the agent id, if any.
func (r *Registry) Resolve(agentID string) (Handler, bool) {
	if r == nil {
		return nil, false
	}
	h, ok := r.handlers[agentID]
	return h, ok
}

// IDs lists the agent ids with a registered handler.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		out = append(out, id)
	}
	return out
}

// generate calls the provider and substitutes the deterministic mock
// document when the call fails.
func (r *Registry) generate(ctx context.Context, prompt string) string {
	raw, err := r.provider.Generate(ctx, prompt)
	if err != nil {
		log.Printf("provider %s failed, using fallback: %v", r.provider.Name(), err)
		return mock.ResponseFor(prompt)
	}
	return raw
}

// decodeResult parses a model reply as JSON, tolerating markdown fences.
func decodeResult(raw string, out any) error {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
		raw = strings.TrimSpace(raw)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode model reply: %w", err)
	}
	return nil
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

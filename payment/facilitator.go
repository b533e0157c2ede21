package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FacilitatorClient talks to the external payment facilitator that verifies
// and settles proofs against a destination address and network.
type FacilitatorClient struct {
	baseURL    string
	httpClient *http.Client
}

type FacilitatorOption func(*FacilitatorClient)

func WithTimeout(d time.Duration) FacilitatorOption {
	return func(c *FacilitatorClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithFacilitatorHTTPClient(h *http.Client) FacilitatorOption {
	return func(c *FacilitatorClient) {
		if h != nil {
			c.httpClient = h
		}
	}
}

func NewFacilitatorClient(baseURL string, opts ...FacilitatorOption) (*FacilitatorClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("facilitator url is required")
	}
	c := &FacilitatorClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type VerifyResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Payer  string `json:"payer,omitempty"`
}

type SettleResult struct {
	Transaction string `json:"transaction,omitempty"`
}

type facilitatorRequest struct {
	Proof        Proof        `json:"proof"`
	Requirements Requirements `json:"requirements"`
}

func (c *FacilitatorClient) Verify(ctx context.Context, proof Proof, req Requirements) (VerifyResult, error) {
	var out VerifyResult
	if err := c.post(ctx, "/verify", facilitatorRequest{Proof: proof, Requirements: req}, &out); err != nil {
		return VerifyResult{}, err
	}
	return out, nil
}

func (c *FacilitatorClient) Settle(ctx context.Context, proof Proof, req Requirements) (SettleResult, error) {
	var out SettleResult
	if err := c.post(ctx, "/settle", facilitatorRequest{Proof: proof, Requirements: req}, &out); err != nil {
		return SettleResult{}, err
	}
	return out, nil
}

func (c *FacilitatorClient) post(ctx context.Context, path string, payload any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal facilitator request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to create facilitator request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("facilitator request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read facilitator response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("facilitator error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode facilitator response: %w", err)
	}
	return nil
}

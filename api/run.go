package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agentpay/agentpay/gateway"
	"github.com/agentpay/agentpay/payment"
)

type runRequest struct {
	Input string `json:"input"`
}

type runAgent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type runPayment struct {
	Amount        string `json:"amount"`
	TxID          string `json:"txId,omitempty"`
	Payer         string `json:"payer"`
	TransactionID string `json:"transactionId"`
}

type runResponse struct {
	Success   bool       `json:"success"`
	Agent     runAgent   `json:"agent"`
	Result    any        `json:"result"`
	Payment   runPayment `json:"payment"`
	Timestamp string     `json:"timestamp"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	proof, err := payment.ParseProofHeader(r.Header.Get(payment.ProofHeader))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err))
		return
	}

	res, err := s.cfg.Gateway.Run(r.Context(), r.PathValue("agentId"), req.Input, proof)
	if err != nil {
		s.writeRunError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, runResponse{
		Success: true,
		Agent: runAgent{
			ID:       res.Agent.ID,
			Name:     res.Agent.Name,
			Category: res.Agent.Category,
		},
		Result: res.Output,
		Payment: runPayment{
			Amount:        fmt.Sprintf("%g %s", res.Agent.PriceSTX, res.Agent.Token),
			TxID:          res.TxID,
			Payer:         res.Payer,
			TransactionID: res.Record.ID,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// writeRunError maps the gateway's error taxonomy onto HTTP statuses.
func (s *Server) writeRunError(w http.ResponseWriter, err error) {
	var (
		challenge *gateway.PaymentRequiredError
		rejected  *gateway.PaymentRejectedError
		verify    *gateway.VerificationError
		exec      *gateway.ExecutionError
		persist   *gateway.PersistenceError
	)
	switch {
	case errors.Is(err, gateway.ErrEmptyInput):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Input is required"})
	case errors.Is(err, gateway.ErrAgentNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Agent not found"})
	case errors.Is(err, gateway.ErrNoHandler):
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Agent handler not configured"})
	case errors.As(err, &challenge):
		writeJSON(w, http.StatusPaymentRequired, map[string]any{
			"error":               "Payment required",
			"paymentRequirements": challenge.Requirements,
		})
	case errors.As(err, &rejected):
		// A retryable rejection keeps the 402 shape so a paying client
		// can construct a fresh proof and try again.
		if rejected.Retryable {
			writeJSON(w, http.StatusPaymentRequired, map[string]any{
				"error":               "Payment rejected",
				"reason":              rejected.Reason,
				"retryable":           true,
				"paymentRequirements": rejected.Requirements,
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":     "Payment rejected",
			"reason":    rejected.Reason,
			"retryable": false,
		})
	case errors.As(err, &verify):
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": "Payment verification unavailable"})
	case errors.As(err, &exec):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Agent execution failed",
			"message": exec.Err.Error(),
		})
	case errors.As(err, &persist):
		// Store internals stay in the server log; the caller only needs
		// to know the run completed but was not recorded.
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Transaction could not be recorded",
			"message": "The run completed but could not be recorded. Contact the operator with your payment reference.",
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
	}
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	agent, ok := s.cfg.Catalog.Lookup(r.PathValue("agentId"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Agent not found"})
		return
	}
	req := s.cfg.Gateway.RequirementsFor(agent)
	writeJSON(w, http.StatusOK, map[string]any{
		"agentId":       agent.ID,
		"name":          agent.Name,
		"priceSTX":      agent.PriceSTX,
		"priceMicroSTX": agent.PriceMicroSTX,
		"token":         agent.Token,
		"network":       req.Network,
		"payTo":         req.Address,
	})
}

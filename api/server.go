// Package api exposes the marketplace over HTTP: catalog browsing, paid
// agent runs behind the 402 gate, pricing, and statistics.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/agentpay/agentpay/catalog"
	"github.com/agentpay/agentpay/gateway"
	"github.com/agentpay/agentpay/ledger"
)

const (
	serviceName    = "AgentPay API"
	serviceVersion = "1.0.0"

	// maxBodyBytes bounds run request bodies.
	maxBodyBytes = 10 << 20
)

type Config struct {
	Addr    string
	Catalog *catalog.Catalog
	Gateway *gateway.Gateway
	Ledger  ledger.Store

	// AllowedOrigin enables CORS for the given origin. Empty disables
	// the CORS headers entirely.
	AllowedOrigin string
}

type Server struct {
	cfg  Config
	mux  *http.ServeMux
	http *http.Server
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("api: catalog is required")
	}
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("api: gateway is required")
	}
	if cfg.Ledger == nil {
		return nil, fmt.Errorf("api: ledger store is required")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = ":4000"
	}
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}
	s.registerRoutes()
	s.http = &http.Server{Addr: cfg.Addr, Handler: s.Handler()}
	return s, nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /api/marketplace", s.handleMarketplace)
	s.mux.HandleFunc("GET /api/marketplace/categories", s.handleCategories)
	s.mux.HandleFunc("GET /api/marketplace/category/{category}", s.handleCategory)
	s.mux.HandleFunc("GET /api/marketplace/{agentId}", s.handleAgent)
	s.mux.HandleFunc("POST /api/agents/{agentId}/run", s.handleRun)
	s.mux.HandleFunc("GET /api/agents/{agentId}/price", s.handlePrice)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/stats/transactions", s.handleTransactions)
	s.mux.HandleFunc("GET /api/healthz", s.handleHealthz)
}

// Handler returns the full HTTP handler, CORS wrapper included.
func (s *Server) Handler() http.Handler {
	if s == nil {
		return http.NotFoundHandler()
	}
	if s.cfg.AllowedOrigin == "" {
		return s.mux
	}
	return s.withCORS(s.mux)
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Payment")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("server is nil")
	}
	errCh := make(chan error, 1)
	go func() {
		err := s.http.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		log.Println("\n⏳ Shutdown signal received, gracefully stopping...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			log.Printf("⚠️  HTTP shutdown error: %v", err)
		}
		log.Println("✅ Server stopped")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (s *Server) Close() error {
	if s == nil || s.http == nil {
		return nil
	}
	return s.http.Close()
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        serviceName,
		"version":     serviceVersion,
		"description": "Pay-Per-Use AI Agent Marketplace",
		"endpoints": map[string]string{
			"marketplace": "/api/marketplace",
			"agents":      "/api/agents",
			"stats":       "/api/stats",
		},
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, map[string]any{"error": msg})
}

package api

import (
	"fmt"
	"net/http"

	"github.com/agentpay/agentpay/catalog"
	"github.com/agentpay/agentpay/ledger"
)

// agentView is a catalog entry with its usage stats folded in, the shape
// the marketplace listing returns.
type agentView struct {
	catalog.Agent
	Stats ledger.AgentStats `json:"stats"`
}

func (s *Server) viewsFor(r *http.Request, agents []catalog.Agent) ([]agentView, error) {
	views := make([]agentView, 0, len(agents))
	for _, a := range agents {
		stats, err := s.cfg.Ledger.StatsFor(r.Context(), a.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, agentView{Agent: a, Stats: stats})
	}
	return views, nil
}

func (s *Server) handleMarketplace(w http.ResponseWriter, r *http.Request) {
	views, err := s.viewsFor(r, s.cfg.Catalog.All())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agents": views,
		"total":  len(views),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": s.cfg.Catalog.Categories(),
	})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	views, err := s.viewsFor(r, s.cfg.Catalog.ByCategory(r.PathValue("category")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agents": views,
		"total":  len(views),
	})
}

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	agent, ok := s.cfg.Catalog.Lookup(r.PathValue("agentId"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("Agent not found"))
		return
	}
	stats, err := s.cfg.Ledger.StatsFor(r.Context(), agent.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, agentView{Agent: agent, Stats: stats})
}

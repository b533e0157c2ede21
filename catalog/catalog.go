// Package catalog holds the static registry of purchasable agents.
//
// The catalog is built once at startup and never mutated afterwards, so
// lookups are safe from any goroutine without locking.
package catalog

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const microSTXPerSTX = 1_000_000

// STXToMicroSTX converts a decimal STX amount to its micro-STX string form,
// the unit payment requirements are expressed in.
func STXToMicroSTX(stx float64) string {
	return strconv.FormatInt(int64(math.Round(stx*microSTXPerSTX)), 10)
}

type Catalog struct {
	agents []Agent
	byID   map[string]int
}

// New builds an immutable catalog from the given agents. Order is preserved.
func New(agents []Agent) (*Catalog, error) {
	c := &Catalog{
		agents: make([]Agent, 0, len(agents)),
		byID:   make(map[string]int, len(agents)),
	}
	for _, a := range agents {
		a.ID = strings.TrimSpace(a.ID)
		if a.ID == "" {
			return nil, fmt.Errorf("agent id is required")
		}
		if _, exists := c.byID[a.ID]; exists {
			return nil, fmt.Errorf("duplicate agent id %q", a.ID)
		}
		if a.PriceSTX <= 0 {
			return nil, fmt.Errorf("agent %q: price must be positive", a.ID)
		}
		if a.Token == "" {
			a.Token = "STX"
		}
		a.PriceMicroSTX = STXToMicroSTX(a.PriceSTX)
		c.byID[a.ID] = len(c.agents)
		c.agents = append(c.agents, a)
	}
	return c, nil
}

// Lookup returns the agent with the given id. The second return is false
// for an unknown id; catalog misses are not errors.
func (c *Catalog) Lookup(id string) (Agent, bool) {
	if c == nil {
		return Agent{}, false
	}
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Agent{}, false
	}
	return c.agents[idx], true
}

// All returns every agent in catalog order.
func (c *Catalog) All() []Agent {
	if c == nil {
		return nil
	}
	out := make([]Agent, len(c.agents))
	copy(out, c.agents)
	return out
}

// ByCategory returns agents whose category matches, case-insensitively.
func (c *Catalog) ByCategory(category string) []Agent {
	if c == nil {
		return nil
	}
	out := []Agent{}
	for _, a := range c.agents {
		if strings.EqualFold(a.Category, strings.TrimSpace(category)) {
			out = append(out, a)
		}
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	seen := map[string]bool{}
	out := []string{}
	for _, a := range c.agents {
		if a.Category == "" || seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		out = append(out, a.Category)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.agents)
}

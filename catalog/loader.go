package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

type catalogFile struct {
	Agents []Agent `yaml:"agents"`
}

// LoadFile reads agent definitions from a YAML file and overlays them on the
// built-in set: entries with a known id replace the builtin, new ids are
// appended. An empty path yields the builtin catalog unchanged.
func LoadFile(path string) (*Catalog, error) {
	base := Builtin()
	path = strings.TrimSpace(path)
	if path == "" {
		return New(base)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %q: %w", absPath, err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %q: %w", absPath, err)
	}

	merged := make([]Agent, len(base))
	copy(merged, base)
	index := make(map[string]int, len(merged))
	for i, a := range merged {
		index[a.ID] = i
	}
	for _, a := range file.Agents {
		a.ID = strings.TrimSpace(a.ID)
		if a.ID == "" {
			return nil, fmt.Errorf("catalog file %q: agent id is required", absPath)
		}
		if i, ok := index[a.ID]; ok {
			merged[i] = a
			continue
		}
		index[a.ID] = len(merged)
		merged = append(merged, a)
	}
	return New(merged)
}

package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rulegraph/worldsim/internal/schema"
)

// LoadWorldFile reads and parses a World document from path, rejecting it up
// front if it does not match the World structural schema.
func LoadWorldFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read world %s: %w", path, err)
	}
	if err := schema.ValidateWorldDocument(data); err != nil {
		return nil, fmt.Errorf("model: %s: %w", path, err)
	}
	var w World
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("model: parse world %s: %w", path, err)
	}
	if w.Type != "" && !IsWorldType(w.Type) {
		return nil, fmt.Errorf("model: %s: unrecognized root type %q, want %q or %q", path, w.Type, TypeWorld, TypeWorldLegacy)
	}
	return &w, nil
}

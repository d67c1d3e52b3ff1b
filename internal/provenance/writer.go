// Package provenance writes the run lockfile: a small JSON document that
// pins the card versions and content hashes a run was produced against,
// alongside its drift summary, so the run can be audited or reproduced
// later.
package provenance

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rulegraph/worldsim/internal/model"
)

// CardEntry is one law card's pinned identity in the lockfile.
type CardEntry struct {
	Version string `json:"version"`
	SHA256  string `json:"sha256,omitempty"`
	Title   string `json:"title,omitempty"`
}

// Lockfile is the document written alongside a run.
type Lockfile struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	RunID       string               `json:"runId"`
	DtSeconds   float64              `json:"dtSeconds"`
	Steps       int                  `json:"steps"`
	Cards       map[string]CardEntry `json:"cards"`
	Drifts      map[string]float64   `json:"drifts"`
}

// Build assembles a Lockfile from a completed run result and the cards it
// was resolved against. generatedAt is passed in rather than read from the
// clock so callers control determinism in tests.
func Build(result model.RunResult, cards map[string]*model.LawCard, generatedAt time.Time) Lockfile {
	entries := make(map[string]CardEntry, len(cards))
	for _, c := range cards {
		entries[c.ID] = CardEntry{
			Version: c.Version,
			SHA256:  c.SHA256,
			Title:   c.Title,
		}
	}
	return Lockfile{
		GeneratedAt: generatedAt,
		RunID:       result.RunID,
		DtSeconds:   result.DtSeconds,
		Steps:       result.Steps,
		Cards:       entries,
		Drifts:      result.Drifts,
	}
}

// WriteFile renders lock as indented JSON and writes it to path.
func WriteFile(lock Lockfile, path string) error {
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return fmt.Errorf("provenance: marshal lockfile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("provenance: write lockfile: %w", err)
	}
	return nil
}

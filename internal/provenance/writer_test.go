package provenance

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulegraph/worldsim/internal/model"
)

func TestBuild_CollectsCardEntriesByID(t *testing.T) {
	result := model.RunResult{
		RunID:     "run-1",
		Steps:     10,
		DtSeconds: 60.0,
		Drifts:    map[string]float64{"Energy": 1e-6},
	}
	cards := map[string]*model.LawCard{
		"rg:law/physics.gravity.newton.v1": {
			ID:      "rg:law/physics.gravity.newton.v1",
			Version: "1.0.0",
			SHA256:  "deadbeef",
			Title:   "Newtonian gravity",
		},
	}

	lock := Build(result, cards, time.Unix(0, 0).UTC())
	entry, ok := lock.Cards["rg:law/physics.gravity.newton.v1"]
	require.True(t, ok)
	assert.Equal(t, "1.0.0", entry.Version)
	assert.Equal(t, "deadbeef", entry.SHA256)
	assert.Equal(t, "run-1", lock.RunID)
	assert.Equal(t, 10, lock.Steps)
}

func TestWriteFile_RoundTripsAsJSON(t *testing.T) {
	lock := Lockfile{
		GeneratedAt: time.Unix(0, 0).UTC(),
		RunID:       "run-2",
		DtSeconds:   120.0,
		Steps:       5,
		Cards:       map[string]CardEntry{"rg:law/a": {Version: "1.0.0"}},
		Drifts:      map[string]float64{"Energy": 0.0},
	}

	path := filepath.Join(t.TempDir(), "run.lock.json")
	require.NoError(t, WriteFile(lock, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Lockfile
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, lock.RunID, got.RunID)
	assert.Equal(t, lock.Steps, got.Steps)
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulegraph/worldsim/internal/canonicalize"
)

func writeGravityCard(t *testing.T, dir string) {
	t.Helper()
	card := map[string]interface{}{
		"type":       "rg:LawCard",
		"id":         "rg:law/physics.gravity.newton.v1",
		"version":    "1.0.0",
		"title":      "Newtonian gravity",
		"parameters": map[string]interface{}{"G": map[string]interface{}{"value": 1.0, "unit": "N*m^2/kg^2"}},
		"validity":   map[string]interface{}{},
		"invariants": map[string]interface{}{
			"driftBudget": map[string]interface{}{
				"Energy": map[string]interface{}{"rel": 0.5},
			},
		},
	}
	hash, err := canonicalize.CardHash(card)
	require.NoError(t, err)
	card["sha256"] = hash

	data, err := json.Marshal(card)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gravity.json"), data, 0o644))
}

func writeWorldFile(t *testing.T, path string) {
	t.Helper()
	doc := `{
		"type": "rg:World",
		"id": "w1",
		"frames": [{"id": "f", "kind": "inertial", "units": {"length": "m", "time": "s", "mass": "kg"}}],
		"entities": [
			{"id": "a", "mass": {"value": 1, "unit": "kg"}, "state": {"frame": "f", "t": "0", "position": {"value": [-1,0,0], "unit": "m"}, "velocity": {"value": [0,0.5,0], "unit": "m/s"}}},
			{"id": "b", "mass": {"value": 1, "unit": "kg"}, "state": {"frame": "f", "t": "0", "position": {"value": [1,0,0], "unit": "m"}, "velocity": {"value": [0,-0.5,0], "unit": "m/s"}}}
		],
		"dynamics": [{"ref": "rg:law/physics.gravity.newton.v1"}],
		"config": {"dtSeconds": 0.01, "steps": 20}
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
}

func TestRun_SuccessfulRunWritesLockfile(t *testing.T) {
	dir := t.TempDir()
	writeGravityCard(t, dir)
	t.Setenv("RULEGRAPH_CARD_PATHS", dir)

	worldPath := filepath.Join(dir, "world.json")
	writeWorldFile(t, worldPath)
	lockPath := filepath.Join(dir, "run.lock.json")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"worldsim", worldPath, "--lock", lockPath}, &stdout, &stderr)

	assert.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.FileExists(t, lockPath)
	assert.Contains(t, stdout.String(), "Steps=20")
}

func TestRun_RunAliasAcceptsSameInvocation(t *testing.T) {
	dir := t.TempDir()
	writeGravityCard(t, dir)
	t.Setenv("RULEGRAPH_CARD_PATHS", dir)

	worldPath := filepath.Join(dir, "world.json")
	writeWorldFile(t, worldPath)
	lockPath := filepath.Join(dir, "run.lock.json")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"worldsim", "run", worldPath, "--lock", lockPath}, &stdout, &stderr)

	assert.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.FileExists(t, lockPath)
}

func TestRun_WorldFlagIsAcceptedAsAlias(t *testing.T) {
	dir := t.TempDir()
	writeGravityCard(t, dir)
	t.Setenv("RULEGRAPH_CARD_PATHS", dir)

	worldPath := filepath.Join(dir, "world.json")
	writeWorldFile(t, worldPath)
	lockPath := filepath.Join(dir, "run.lock.json")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"worldsim", "--world", worldPath, "--lock", lockPath}, &stdout, &stderr)

	assert.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.FileExists(t, lockPath)
}

func TestRun_MissingWorldPathIsUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"worldsim", "--dt", "0.01"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
}

func TestRun_UnresolvableCardReturnsNonZero(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RULEGRAPH_CARD_PATHS", dir)

	worldPath := filepath.Join(dir, "world.json")
	writeWorldFile(t, worldPath)

	var stdout, stderr bytes.Buffer
	code := Run([]string{"worldsim", worldPath}, &stdout, &stderr)
	assert.NotEqual(t, 0, code)
}

func TestRun_NonexistentWorldFileIsRuntimeError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"worldsim", "/nonexistent/world.json"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
}

func TestRun_UnknownFlagIsUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"worldsim", "--bogus"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
}

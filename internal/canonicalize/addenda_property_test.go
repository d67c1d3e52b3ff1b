//go:build property
// +build property

package canonicalize_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/rulegraph/worldsim/internal/canonicalize"
)

// TestCardHashRoundTrip verifies: for any card with sha256 present,
// re-serializing to canonical JSON after stripping sha256 and hashing the
// result equals the stored value.
func TestCardHashRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("stripping and re-hashing a card reproduces its stored sha256", prop.ForAll(
		func(id, title string, g float64) bool {
			card := map[string]interface{}{
				"id":         id,
				"title":      title,
				"parameters": map[string]interface{}{"G": map[string]interface{}{"value": g}},
			}
			hash, err := canonicalize.CardHash(card)
			if err != nil {
				return false
			}
			card["sha256"] = hash

			recomputed, err := canonicalize.CardHash(card)
			if err != nil {
				return false
			}
			return recomputed == hash
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}

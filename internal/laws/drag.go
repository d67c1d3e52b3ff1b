// Package laws implements the external acceleration-law family: drag
// evaluators that contribute accelerations alongside gravity, selected per
// dynamic via body/pair selectors and parameter overrides.
package laws

import (
	"math"

	"github.com/rulegraph/worldsim/internal/model"
)

// Law ids recognized by the external evaluators. GravityNewtonianID is
// skipped by Accelerations so gravity is never double-applied.
const (
	GravityNewtonianID = "rg:law/physics.gravity.newton.v1"
	LinearDragID       = "rg:law/fluids.drag.linear.v1"
	QuadraticDragID    = "rg:law/fluids.drag.quadratic.v1"
)

// Accelerations sums the external (non-gravity) acceleration contribution of
// every dynamic in world order, evaluated at velocity v. Dynamics whose
// resolved card is unknown, or is the gravity law itself, are skipped.
func Accelerations(dynamics []model.Dynamic, cards map[string]*model.LawCard, bodyIDs []string, m []float64, v [][3]float64) [][3]float64 {
	n := len(v)
	out := make([][3]float64, n)

	for _, dyn := range dynamics {
		card := lookupCard(cards, dyn.Ref)
		if card == nil || card.ID == GravityNewtonianID {
			continue
		}

		mask := dyn.SelectorOrEmpty().Mask(bodyIDs)

		switch card.ID {
		case LinearDragID:
			gamma := param(dyn, card, "gamma")
			for i := 0; i < n; i++ {
				if !mask[i] {
					continue
				}
				factor := -gamma / m[i]
				out[i][0] += factor * v[i][0]
				out[i][1] += factor * v[i][1]
				out[i][2] += factor * v[i][2]
			}
		case QuadraticDragID:
			cq := param(dyn, card, "Cq")
			for i := 0; i < n; i++ {
				if !mask[i] {
					continue
				}
				speed := math.Sqrt(v[i][0]*v[i][0] + v[i][1]*v[i][1] + v[i][2]*v[i][2])
				factor := -cq / m[i] * speed
				out[i][0] += factor * v[i][0]
				out[i][1] += factor * v[i][1]
				out[i][2] += factor * v[i][2]
			}
		default:
			// Unknown card kinds are silently skipped: future laws may slot
			// in without the driver needing to know about them.
		}
	}
	return out
}

// param reads a dynamic's parameter override for name, falling back to the
// card's declared default.
func param(dyn model.Dynamic, card *model.LawCard, name string) float64 {
	if v, ok := dyn.ParamOverride(name); ok {
		return v
	}
	v, _ := card.Param(name)
	return v
}

func lookupCard(cards map[string]*model.LawCard, ref string) *model.LawCard {
	if c, ok := cards[ref]; ok {
		return c
	}
	for _, c := range cards {
		if c.ID == ref {
			return c
		}
	}
	return nil
}

// HasDissipativeLaw reports whether any of dynamics' resolved cards declare
// invariants.dissipative.
func HasDissipativeLaw(dynamics []model.Dynamic, cards map[string]*model.LawCard) bool {
	for _, dyn := range dynamics {
		card := lookupCard(cards, dyn.Ref)
		if card == nil || card.Invariants == nil {
			continue
		}
		if card.Invariants.Dissipative {
			return true
		}
	}
	return false
}

// Package config applies CLI-supplied overrides onto a loaded World's
// config block, the same way a server config layer merges environment
// variables over defaults: explicit overrides win, everything else is left
// exactly as the World document declared it.
package config

import "github.com/rulegraph/worldsim/internal/model"

// Overrides holds the optional --dt/--steps CLI flags. A zero value for
// either field means "not supplied, leave the World's own value".
type Overrides struct {
	DtSeconds float64
	Steps     int
}

// Apply merges non-zero overrides onto world.Config, mutating it in place.
func Apply(world *model.World, o Overrides) {
	if o.DtSeconds > 0 {
		world.SetDtSeconds(o.DtSeconds)
	}
	if o.Steps > 0 {
		world.SetSteps(o.Steps)
	}
}

package model

import "encoding/json"

// Recognized root `type` discriminators for World documents. "gw:World" is
// the legacy form.
const (
	TypeWorld       = "rg:World"
	TypeWorldLegacy = "gw:World"
)

// IsWorldType reports whether t is a recognized World root type.
func IsWorldType(t string) bool {
	return t == TypeWorld || t == TypeWorldLegacy
}

// DefaultDtSeconds is the step size used when config.dtSeconds is absent.
const DefaultDtSeconds = 60.0

// World is a declarative bundle of frames, bodies, and dynamics that,
// together with resolved LawCards, fully determines a simulation.
type World struct {
	Type            string                 `json:"type,omitempty"`
	ID              string                 `json:"id"`
	Version         string                 `json:"version"`
	Frames          []Frame                `json:"frames"`
	Entities        []*Body                `json:"entities"`
	Dynamics        []Dynamic              `json:"dynamics"`
	SolverOverrides map[string]interface{} `json:"solvers,omitempty"`
	Config          map[string]interface{} `json:"config,omitempty"`
}

// DtSeconds returns config.dtSeconds, defaulting to DefaultDtSeconds.
func (w *World) DtSeconds() float64 {
	if w.Config != nil {
		if v, ok := w.Config["dtSeconds"]; ok {
			if f, ok := toFloat(v); ok {
				return f
			}
		}
	}
	return DefaultDtSeconds
}

// Steps returns config.steps, or 0 if absent (callers must treat 0 as
// "not configured": callers must treat 0 as requiring an explicit step count).
func (w *World) Steps() int {
	if w.Config != nil {
		if v, ok := w.Config["steps"]; ok {
			if f, ok := toFloat(v); ok {
				return int(f)
			}
		}
	}
	return 0
}

// SetDtSeconds overrides config.dtSeconds, initializing Config if needed.
func (w *World) SetDtSeconds(dt float64) {
	if w.Config == nil {
		w.Config = make(map[string]interface{})
	}
	w.Config["dtSeconds"] = dt
}

// SetSteps overrides config.steps, initializing Config if needed.
func (w *World) SetSteps(steps int) {
	if w.Config == nil {
		w.Config = make(map[string]interface{})
	}
	w.Config["steps"] = steps
}

// BodyIDs returns the registration-order list of entity ids.
func (w *World) BodyIDs() []string {
	ids := make([]string, len(w.Entities))
	for i, b := range w.Entities {
		ids[i] = b.ID
	}
	return ids
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Package model defines the typed entities that make up a worldsim World:
// frames, bodies, law cards, and the scalar/vector quantities that carry
// physical units through the data model.
package model

// Quantity is a scalar value carrying a unit and an optional one-sigma
// uncertainty.
type Quantity struct {
	Value float64  `json:"value"`
	Unit  string   `json:"unit"`
	Sigma *float64 `json:"sigma,omitempty"`
}

// Vec3Quantity is a three-component numeric vector carrying a unit and an
// optional one-sigma uncertainty.
type Vec3Quantity struct {
	Value [3]float64 `json:"value"`
	Unit  string     `json:"unit"`
	Sigma *float64   `json:"sigma,omitempty"`
}

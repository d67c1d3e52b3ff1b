package model

// State is a body's kinematic state within a frame at a point in time.
type State struct {
	Frame     string       `json:"frame"`
	Timestamp string       `json:"t"`
	Position  Vec3Quantity `json:"position"`
	Velocity  Vec3Quantity `json:"velocity"`
}

// Body is a point mass: an identifier, a mass quantity, and a kinematic
// state.
type Body struct {
	ID    string   `json:"id"`
	Mass  Quantity `json:"mass"`
	State State    `json:"state"`
}

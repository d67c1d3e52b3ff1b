package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulegraph/worldsim/internal/model"
)

func twoBodyWorld() *model.World {
	mkBody := func(id string, mass float64) *model.Body {
		return &model.Body{
			ID:   id,
			Mass: model.Quantity{Value: mass, Unit: "kg"},
			State: model.State{
				Frame:    "f1",
				Position: model.Vec3Quantity{Unit: "m"},
				Velocity: model.Vec3Quantity{Unit: "m/s"},
			},
		}
	}
	return &model.World{
		ID:      "w1",
		Version: "1.0.0",
		Frames: []model.Frame{{
			ID:    "f1",
			Kind:  model.KindInertial,
			Units: map[string]string{"length": "m", "time": "s", "mass": "kg"},
		}},
		Entities: []*model.Body{mkBody("sun", 1.0), mkBody("earth", 1.0)},
		Dynamics: []model.Dynamic{{Ref: "rg:law/physics.gravity.newton.v1"}},
	}
}

func gravityCard() *model.LawCard {
	return &model.LawCard{
		ID:         "rg:law/physics.gravity.newton.v1",
		Version:    "1.0.0",
		Parameters: map[string]model.Parameter{"G": {Value: 6.674e-11}},
		Validity:   []byte(`{}`),
		Invariants: &model.Invariants{DriftBudget: map[string]model.DriftBudget{}},
	}
}

func TestValidate_OK(t *testing.T) {
	w := twoBodyWorld()
	cards := map[string]*model.LawCard{gravityCard().ID: gravityCard()}

	rep := Validate(w, cards)
	require.True(t, rep.OK)
	assert.Empty(t, rep.Issues)
}

func TestValidate_MissingVelocityUnit(t *testing.T) {
	w := twoBodyWorld()
	w.Entities[1].State.Velocity.Unit = ""
	cards := map[string]*model.LawCard{gravityCard().ID: gravityCard()}

	rep := Validate(w, cards)
	require.False(t, rep.OK)

	found := false
	for _, iss := range rep.Issues {
		if iss.Message == "Velocity unit required" {
			found = true
		}
	}
	assert.True(t, found, "expected a 'Velocity unit required' issue, got %+v", rep.Issues)
}

func TestValidate_MissingCard(t *testing.T) {
	w := twoBodyWorld()
	rep := Validate(w, map[string]*model.LawCard{})
	require.False(t, rep.OK)
	assert.Contains(t, rep.Issues[0].Message, "LawCard not resolved")
}

func TestValidate_EmptyWorld(t *testing.T) {
	rep := Validate(&model.World{}, map[string]*model.LawCard{})
	require.False(t, rep.OK)
	assert.GreaterOrEqual(t, len(rep.Issues), 3)
}

package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rulegraph/worldsim/internal/gravity"
	"github.com/rulegraph/worldsim/internal/laws"
	"github.com/rulegraph/worldsim/internal/model"
	"github.com/rulegraph/worldsim/internal/registry"
)

// auditEvery is the step cadence at which invariants are recomputed and
// checked against their drift budgets during a run.
const auditEvery = 100

// grossFactor is the multiple of a budget beyond which a run aborts early
// rather than continuing to drift.
const grossFactor = 10.0

// ErrNoDynamics is returned when a world declares no dynamics at all, so no
// gravitational (or other) law can be selected.
var ErrNoDynamics = errors.New("sim: world has no dynamics")

// ErrUnresolvedLaw is returned when the selected gravitational dynamic's ref
// cannot be found among the resolved cards.
var ErrUnresolvedLaw = errors.New("sim: law card not resolved")

// Simulate advances world in place by its configured step count and
// interval, using the gravity solver registered in reg for the gravitational
// dynamic and laws.Accelerations for everything else. It returns a summary
// of the run; ctx is checked for cancellation at each audit cadence.
func Simulate(ctx context.Context, world *model.World, cards map[string]*model.LawCard, reg *registry.Registry) (model.RunResult, error) {
	if reg == nil {
		reg = registry.NewDefault()
	}

	dyn := world.Dynamics
	if len(dyn) == 0 {
		return model.RunResult{}, ErrNoDynamics
	}

	lawRef := dyn[0].Ref
	for _, d := range dyn {
		if d.Ref == laws.GravityNewtonianID {
			lawRef = d.Ref
			break
		}
	}
	law := lookupCard(cards, lawRef)
	if law == nil {
		return model.RunResult{}, fmt.Errorf("%w: %s", ErrUnresolvedLaw, lawRef)
	}

	solver, err := reg.Get(law.ID)
	if err != nil {
		return model.RunResult{}, fmt.Errorf("sim: %w", err)
	}

	bodyIDs := world.BodyIDs()
	n := len(bodyIDs)
	m := make([]float64, n)
	r := make([][3]float64, n)
	v := make([][3]float64, n)
	for i, b := range world.Entities {
		m[i] = b.Mass.Value
		r[i] = b.State.Position.Value
		v[i] = b.State.Velocity.Value
	}

	g, _ := law.Param("G")

	budgetEnergy, budgetLinMom, budgetAngMom := 1.0, 1.0, 1.0
	if law.Invariants != nil {
		budgetEnergy = law.Invariants.Budget("Energy")
		budgetLinMom = law.Invariants.Budget("LinearMomentum")
		budgetAngMom = law.Invariants.Budget("AngularMomentum")
	}

	inv0 := AuditInvariants(g, m, r, v)

	dt := world.DtSeconds()
	steps := world.Steps()

	gravState := gravity.State{R: r, V: v, M: m}
	stepsRun := 0

	for i := 0; i < steps; i++ {
		aGrav := solver.Accelerations(gravState, law)
		aExt := laws.Accelerations(dyn, cards, bodyIDs, m, v)

		vHalf := make([][3]float64, n)
		rNew := make([][3]float64, n)
		for j := 0; j < n; j++ {
			for k := 0; k < 3; k++ {
				a1 := aGrav[j][k] + aExt[j][k]
				vHalf[j][k] = v[j][k] + 0.5*dt*a1
				rNew[j][k] = r[j][k] + dt*vHalf[j][k]
			}
		}

		aGrav2 := solver.Accelerations(gravity.State{R: rNew, M: m}, law)
		aExt2 := laws.Accelerations(dyn, cards, bodyIDs, m, vHalf)

		vNew := make([][3]float64, n)
		for j := 0; j < n; j++ {
			for k := 0; k < 3; k++ {
				a2 := aGrav2[j][k] + aExt2[j][k]
				vNew[j][k] = vHalf[j][k] + 0.5*dt*a2
			}
		}

		r, v = rNew, vNew
		gravState = gravity.State{R: r, V: v, M: m}
		stepsRun = i + 1

		if stepsRun%auditEvery == 0 || stepsRun == steps {
			if err := ctx.Err(); err != nil {
				return model.RunResult{}, err
			}
			inv := AuditInvariants(g, m, r, v)
			var dE, dP, dL float64
			if budgetEnergy < 1.0 {
				dE = RelDrift(inv.Energy, inv0.Energy)
			}
			if budgetLinMom < 1.0 {
				dP = RelDriftVec3(inv.LinearMomentum, inv0.LinearMomentum)
			}
			if budgetAngMom < 1.0 {
				dL = RelDriftVec3(inv.AngularMomentum, inv0.AngularMomentum)
			}
			if (budgetEnergy < 1.0 && dE > grossFactor*budgetEnergy) ||
				(budgetLinMom < 1.0 && dP > grossFactor*budgetLinMom) ||
				(budgetAngMom < 1.0 && dL > grossFactor*budgetAngMom) {
				break
			}
		}
	}

	invN := AuditInvariants(g, m, r, v)

	for i, b := range world.Entities {
		b.State.Position.Value = r[i]
		b.State.Velocity.Value = v[i]
	}

	return model.RunResult{
		RunID:     uuid.NewString(),
		Steps:     stepsRun,
		DtSeconds: dt,
		FinalState: model.FinalState{
			R: r,
			V: v,
		},
		InitialInvariants: inv0,
		FinalInvariants:   invN,
		Drifts: map[string]float64{
			"Energy":          RelDrift(invN.Energy, inv0.Energy),
			"LinearMomentum":  RelDriftVec3(invN.LinearMomentum, inv0.LinearMomentum),
			"AngularMomentum": RelDriftVec3(invN.AngularMomentum, inv0.AngularMomentum),
		},
	}, nil
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

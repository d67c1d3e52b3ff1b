// Package sim composes the registered solvers and external acceleration
// laws into the velocity-Verlet driver that advances a World and audits its
// conserved quantities along the way.
package sim

import (
	"math"

	"github.com/rulegraph/worldsim/internal/model"
)

// KineticEnergy is 1/2 * sum(m_i * |v_i|^2).
func KineticEnergy(m []float64, v [][3]float64) float64 {
	var ke float64
	for i := range m {
		ke += m[i] * (v[i][0]*v[i][0] + v[i][1]*v[i][1] + v[i][2]*v[i][2])
	}
	return 0.5 * ke
}

// PotentialEnergy is -G * sum_{i<j} m_i*m_j / |r_i - r_j|.
func PotentialEnergy(g float64, m []float64, r [][3]float64) float64 {
	n := len(r)
	var pe float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := r[i][0] - r[j][0]
			dy := r[i][1] - r[j][1]
			dz := r[i][2] - r[j][2]
			dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if dist == 0 {
				continue
			}
			pe -= g * m[i] * m[j] / dist
		}
	}
	return pe
}

// LinearMomentum is sum(m_i * v_i).
func LinearMomentum(m []float64, v [][3]float64) [3]float64 {
	var p [3]float64
	for i := range m {
		p[0] += m[i] * v[i][0]
		p[1] += m[i] * v[i][1]
		p[2] += m[i] * v[i][2]
	}
	return p
}

// AngularMomentum is sum(r_i x (m_i * v_i)).
func AngularMomentum(m []float64, r, v [][3]float64) [3]float64 {
	var l [3]float64
	for i := range m {
		px := m[i] * v[i][0]
		py := m[i] * v[i][1]
		pz := m[i] * v[i][2]
		l[0] += r[i][1]*pz - r[i][2]*py
		l[1] += r[i][2]*px - r[i][0]*pz
		l[2] += r[i][0]*py - r[i][1]*px
	}
	return l
}

// AuditInvariants computes the full conserved-quantity snapshot for the
// given gravitational parameter and state.
func AuditInvariants(g float64, m []float64, r, v [][3]float64) model.InvariantSnapshot {
	return model.InvariantSnapshot{
		Energy:          KineticEnergy(m, v) + PotentialEnergy(g, m, r),
		LinearMomentum:  LinearMomentum(m, v),
		AngularMomentum: AngularMomentum(m, r, v),
	}
}

func norm3(x [3]float64) float64 {
	return math.Sqrt(x[0]*x[0] + x[1]*x[1] + x[2]*x[2])
}

// RelDrift is the relative drift of current against baseline: |current -
// baseline| / |baseline|, or |current| when baseline is zero.
func RelDrift(current, baseline float64) float64 {
	if baseline == 0 {
		return math.Abs(current)
	}
	return math.Abs((current - baseline) / baseline)
}

// RelDriftVec3 is RelDrift generalized to vector quantities via their norms.
func RelDriftVec3(current, baseline [3]float64) float64 {
	denom := norm3(baseline)
	if denom == 0 {
		return norm3(current)
	}
	return math.Abs((norm3(current) - denom) / denom)
}

// Package gravity implements the pairwise Newtonian N-body acceleration
// solver and its standalone velocity-Verlet step.
package gravity

import "github.com/rulegraph/worldsim/internal/model"

const (
	// DefaultDenseThreshold is the body count at or above which the dense
	// pairwise kernel is considered, subject to the memory cap.
	DefaultDenseThreshold = 64
	// DefaultDenseMemCapBytes bounds the dense kernel's estimated working
	// set (~256 MiB).
	DefaultDenseMemCapBytes = 256 << 20
)

// State is the minimal (positions, masses) view the solver needs to compute
// accelerations. Velocity is carried for Step's full Verlet integration.
type State struct {
	R [][3]float64
	V [][3]float64
	M []float64
}

// Solver is a stateless, configured N-body gravity solver exposing
// accelerations (pure) and step (standalone gravity-only Verlet).
type Solver struct {
	// SofteningLength is the Plummer softening length epsilon; epsilon^2 is
	// added to every squared distance to avoid singularities at close
	// approach.
	SofteningLength float64
	// Vectorized toggles whether the dense pairwise kernel may be selected
	// at all.
	Vectorized bool
	// DenseThreshold is the body count at or above which the dense kernel is
	// considered.
	DenseThreshold int
	// DenseMemCapBytes bounds the dense kernel's estimated working set.
	DenseMemCapBytes int64
}

// NewSolver returns a Solver configured with the package defaults:
// unsoftened, vectorized, threshold 64, cap 256 MiB.
func NewSolver() *Solver {
	return &Solver{
		Vectorized:       true,
		DenseThreshold:   DefaultDenseThreshold,
		DenseMemCapBytes: DefaultDenseMemCapBytes,
	}
}

// useDense reports whether the dense pairwise kernel should be used for n
// bodies under this solver's configuration.
func (s *Solver) useDense(n int) bool {
	if !s.Vectorized || n < s.DenseThreshold {
		return false
	}
	return estimatedDenseBytes(n) < s.DenseMemCapBytes
}

// Accelerations is a pure function of positions and masses: it computes the
// gravitational acceleration on every body given the card's G parameter.
func (s *Solver) Accelerations(st State, card *model.LawCard) [][3]float64 {
	g, _ := card.Param("G")
	eps2 := s.SofteningLength * s.SofteningLength

	if s.useDense(len(st.R)) {
		return densePairwiseKernel(g, st.M, st.R, eps2)
	}
	return perBodyKernel(g, st.M, st.R, eps2)
}

// Step performs one standalone velocity-Verlet integration step for gravity
// alone (no external forces). It is not used by the composed simulation
// driver, which calls Accelerations directly and layers in external-law
// contributions itself.
func (s *Solver) Step(st State, card *model.LawCard, dt float64) State {
	a1 := s.Accelerations(st, card)

	n := len(st.R)
	vHalf := make([][3]float64, n)
	rNew := make([][3]float64, n)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			vHalf[i][k] = st.V[i][k] + 0.5*dt*a1[i][k]
			rNew[i][k] = st.R[i][k] + dt*vHalf[i][k]
		}
	}

	a2 := s.Accelerations(State{R: rNew, M: st.M}, card)
	vNew := make([][3]float64, n)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			vNew[i][k] = vHalf[i][k] + 0.5*dt*a2[i][k]
		}
	}

	return State{R: rNew, V: vNew, M: st.M}
}

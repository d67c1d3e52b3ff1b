package gravity

import "math"

// perBodyKernel computes a[i] = -G * sum_{j != i} m[j] * (r[i]-r[j]) / (|r[i]-r[j]|^2 + eps2)^1.5
// one body at a time. Its peak allocation is O(N); its time complexity is
// O(N^2). It is always available as the correctness baseline.
func perBodyKernel(g float64, m []float64, r [][3]float64, eps2 float64) [][3]float64 {
	n := len(r)
	a := make([][3]float64, n)

	for i := 0; i < n; i++ {
		var acc [3]float64
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			dx := r[i][0] - r[j][0]
			dy := r[i][1] - r[j][1]
			dz := r[i][2] - r[j][2]
			dist2 := dx*dx + dy*dy + dz*dz + eps2
			if dist2 == 0 {
				// Self-distance is excluded above; a genuine coincident pair
				// contributes nothing rather than diverging.
				continue
			}
			invR3 := 1.0 / math.Pow(dist2, 1.5)
			factor := m[j] * invR3
			acc[0] += dx * factor
			acc[1] += dy * factor
			acc[2] += dz * factor
		}
		a[i][0] = -g * acc[0]
		a[i][1] = -g * acc[1]
		a[i][2] = -g * acc[2]
	}
	return a
}

// densePairwiseKernel computes the same accelerations as perBodyKernel but
// by materializing the full N×N×3 difference tensor and N×N squared-distance
// matrix up front, setting the diagonal to +Inf before inversion (so the
// self term reduces to zero without a branch), then reducing over j. This
// trades O(N) peak allocation for O(N^2) allocation and better data
// locality for large, vectorizable N.
func densePairwiseKernel(g float64, m []float64, r [][3]float64, eps2 float64) [][3]float64 {
	n := len(r)

	// diff[i][j] = r[i] - r[j]
	diff := make([][][3]float64, n)
	dist2 := make([][]float64, n)
	for i := 0; i < n; i++ {
		diff[i] = make([][3]float64, n)
		dist2[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			dx := r[i][0] - r[j][0]
			dy := r[i][1] - r[j][1]
			dz := r[i][2] - r[j][2]
			diff[i][j] = [3]float64{dx, dy, dz}
			if i == j {
				dist2[i][j] = math.Inf(1)
			} else {
				dist2[i][j] = dx*dx + dy*dy + dz*dz + eps2
			}
		}
	}

	invR3 := make([][]float64, n)
	for i := range invR3 {
		invR3[i] = make([]float64, n)
		for j := range invR3[i] {
			invR3[i][j] = 1.0 / math.Pow(dist2[i][j], 1.5)
		}
	}

	a := make([][3]float64, n)
	for i := 0; i < n; i++ {
		var acc [3]float64
		for j := 0; j < n; j++ {
			factor := m[j] * invR3[i][j]
			acc[0] += diff[i][j][0] * factor
			acc[1] += diff[i][j][1] * factor
			acc[2] += diff[i][j][2] * factor
		}
		a[i][0] = -g * acc[0]
		a[i][1] = -g * acc[1]
		a[i][2] = -g * acc[2]
	}
	return a
}

// estimatedDenseBytes approximates the dense kernel's working-set size. The
// N×N×3 float64 diff tensor (24 bytes per body pair) and the N×N dist2 and
// invR3 matrices (8 bytes per pair each) come to 40 bytes per body pair; the
// estimate rounds this up to 48 bytes per pair.
func estimatedDenseBytes(n int) int64 {
	return 48 * int64(n) * int64(n)
}

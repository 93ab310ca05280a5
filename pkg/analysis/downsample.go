package analysis

import (
	"math"
	"sort"
)

// Downsample reduces a paired (x, y) sequence to at most target points for
// transport. The first index, the last index and the index of the maximum
// y value are always retained; the remaining slots are filled with evenly
// spaced indices so the overall shape is preserved. The selection is
// deterministic, so repeated calls on the same input agree.
func Downsample(x, y []float64, target int) ([]float64, []float64) {
	n := len(x)
	if n <= target {
		return x, y
	}
	if target < 3 {
		target = 3
	}

	peak := 0
	for i, v := range y {
		if v > y[peak] {
			peak = i
		}
	}

	keep := map[int]struct{}{
		0:     {},
		n - 1: {},
		peak:  {},
	}

	// Evenly spaced fill; collisions with the fixed indices are topped up
	// by a linear sweep afterwards.
	step := float64(n-1) / float64(target-1)
	for j := 1; j < target-1 && len(keep) < target; j++ {
		keep[int(math.Round(float64(j)*step))] = struct{}{}
	}
	for i := 0; i < n && len(keep) < target; i++ {
		keep[i] = struct{}{}
	}

	indices := make([]int, 0, len(keep))
	for i := range keep {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	xOut := make([]float64, len(indices))
	yOut := make([]float64, len(indices))
	for k, i := range indices {
		xOut[k] = x[i]
		yOut[k] = y[i]
	}
	return xOut, yOut
}

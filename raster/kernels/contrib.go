package kernels

import "math"

// Contribution represents a single source pixel's contribution to one output
// position along a resample axis.
type Contribution struct {
	// Pixel is the source pixel index.
	Pixel int
	// Weight is the contribution weight.
	Weight float64
}

// Contributions precomputes the weighted source ranges for every output
// position along one axis. The same table serves every row (horizontal pass)
// or every column (vertical pass), which keeps the kernel evaluations out of
// the inner pixel loops.
//
// Arguments:
// - srcSize: Source extent in pixels along the axis.
// - dstSize: Destination extent in pixels along the axis.
// - filter: The resampling filter whose kernel supplies the weights.
//
// Returns:
// - One normalized weight list per destination position.
func Contributions(srcSize, dstSize int, filter Filter) [][]Contribution {
	k := kernels[filter]

	// Calculate scaling ratio.
	scale := float64(srcSize) / float64(dstSize)

	// When downsampling, the filter support expands with the scale so that
	// every source pixel still lands under the kernel.
	filterScale := math.Max(scale, 1.0)
	support := k.Support * filterScale

	contributions := make([][]Contribution, dstSize)

	for d := 0; d < dstSize; d++ {
		// Calculate center position in the source.
		center := (float64(d) + 0.5) * scale

		// Calculate contributing pixel range.
		left := int(math.Floor(center - support))
		right := int(math.Ceil(center + support))

		// Clamp to valid range.
		if left < 0 {
			left = 0
		}
		if right >= srcSize {
			right = srcSize - 1
		}

		var weights []Contribution
		var sum float64

		for s := left; s <= right; s++ {
			// Calculate normalized distance from center.
			distance := math.Abs(float64(s) - center + 0.5)

			weight := k.At(distance / filterScale)
			if weight != 0 {
				weights = append(weights, Contribution{
					Pixel:  s,
					Weight: weight,
				})
				sum += weight
			}
		}

		// Normalize weights to sum to 1.0.
		// This ensures brightness preservation.
		if sum != 0 {
			for i := range weights {
				weights[i].Weight /= sum
			}
		}

		contributions[d] = weights
	}

	return contributions
}

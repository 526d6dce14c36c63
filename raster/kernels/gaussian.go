package kernels

import "github.com/chewxy/math32"

// maxBlurRadius bounds the radius so an extreme sigma cannot overflow the
// int conversion in BlurRadius. Callers narrow the radius further to the
// image extent, where clamp-to-edge sampling makes anything wider redundant.
const maxBlurRadius = 1 << 16

// BlurRadius returns the kernel radius used for a Gaussian blur of the given
// sigma. Three standard deviations capture 99.7% of the distribution. NaN
// and non-positive sigmas yield a zero radius; the result never exceeds
// maxBlurRadius.
func BlurRadius(sigma float32) int {
	if math32.IsNaN(sigma) || sigma <= 0 {
		return 0
	}
	r := math32.Ceil(sigma * 3.0)
	if r > maxBlurRadius { // a sigma whose tripling overflows lands here as +Inf
		return maxBlurRadius
	}
	return int(r)
}

// GaussianKernel creates a 1D Gaussian kernel for separable filtering.
// The kernel is normalized to sum to 1.0.
//
// Arguments:
// - radius: The kernel radius (kernel size will be 2*radius + 1).
// - sigma: Standard deviation of the Gaussian.
//
// Returns:
// - A normalized 1D Gaussian kernel.
func GaussianKernel(radius int, sigma float32) []float32 {
	// Kernel size is 2*radius + 1 (includes center pixel).
	size := 2*radius + 1
	kernel := make([]float32, size)

	// 1/(sqrt(2*pi)*sigma), the normalization factor for the Gaussian.
	factor := 1.0 / (math32.Sqrt(2.0*math32.Pi) * sigma)

	// 2*sigma^2, the denominator of the exponent.
	denom := 2.0 * sigma * sigma

	var sum float32
	for i := 0; i < size; i++ {
		// Distance from the kernel center.
		x := float32(i - radius)

		// Gaussian value: exp(-(x^2)/(2*sigma^2)).
		kernel[i] = factor * math32.Exp(-(x*x)/denom)

		sum += kernel[i]
	}

	// An extreme sigma can underflow every weight to zero; the kernel then
	// degrades to the identity instead of dividing zero by zero.
	if sum == 0 {
		kernel[radius] = 1
		return kernel
	}

	// Normalize the kernel to sum to 1.0 so the blur does not change the
	// overall image brightness.
	for i := range kernel {
		kernel[i] /= sum
	}

	return kernel
}

// BlurContributions expands a 1D convolution kernel into one weight table per
// position along an axis of the given size. Border positions sample the edge
// pixel again (clamp-to-edge), which prevents dark halos and keeps the total
// weight at 1.0 everywhere.
func BlurContributions(size int, kernel []float32) [][]Contribution {
	radius := len(kernel) / 2
	contributions := make([][]Contribution, size)

	for d := 0; d < size; d++ {
		weights := make([]Contribution, len(kernel))
		for i, w := range kernel {
			s := d + i - radius
			if s < 0 {
				s = 0
			} else if s >= size {
				s = size - 1
			}
			weights[i] = Contribution{Pixel: s, Weight: float64(w)}
		}
		contributions[d] = weights
	}

	return contributions
}

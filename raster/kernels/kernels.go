// Package kernels - resampling kernel functions and convolution tables used by
// the raster transform engine.
package kernels

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Filter selects the resampling kernel used for image scaling. The numeric
// values are part of the calling contract and must not be reordered.
type Filter uint32

const (
	// Nearest uses nearest-neighbor sampling (fastest, lowest quality).
	Nearest Filter = 0
	// Triangle uses linear interpolation (fast, good quality).
	Triangle Filter = 1
	// CatmullRom uses the Catmull-Rom cubic (slower, better quality).
	CatmullRom Filter = 2
	// Gaussian uses a Gaussian kernel (soft results, no ringing).
	Gaussian Filter = 3
	// Lanczos3 uses Lanczos resampling with a=3 (slowest, best quality).
	Lanczos3 Filter = 4
)

// Valid reports whether f names a known resampling kernel.
func (f Filter) Valid() bool {
	_, ok := kernels[f]
	return ok
}

// ParseFilter resolves a kernel name to its Filter value. Matching is
// case-insensitive.
func ParseFilter(name string) (Filter, error) {
	switch strings.ToLower(name) {
	case "nearest":
		return Nearest, nil
	case "triangle", "bilinear":
		return Triangle, nil
	case "catmullrom", "catmull-rom", "bicubic":
		return CatmullRom, nil
	case "gaussian":
		return Gaussian, nil
	case "lanczos3", "lanczos":
		return Lanczos3, nil
	}
	return Nearest, errors.Errorf("unknown resampling filter %q", name)
}

// String returns the lowercase kernel name, or "unknown" for invalid values.
func (f Filter) String() string {
	switch f {
	case Nearest:
		return "nearest"
	case Triangle:
		return "triangle"
	case CatmullRom:
		return "catmullrom"
	case Gaussian:
		return "gaussian"
	case Lanczos3:
		return "lanczos3"
	default:
		return "unknown"
	}
}

// kernel represents a resampling kernel function.
type kernel struct {
	// Support is the support radius which is the radius of the kernel in pixels.
	Support float64
	// At evaluates the kernel at distance x. This is the function that is used
	// to calculate the weight of the pixel at the given distance.
	At func(x float64) float64
}

// kernels maps each filter type to its kernel function.
var kernels = map[Filter]kernel{
	Nearest: {
		Support: 0.5,
		At: func(x float64) float64 {
			// Nearest neighbor returns 1.0 for distances within 0.5, 0.0 otherwise.
			// This ensures proper sampling of the closest pixel.
			if math.Abs(x) < 0.5 {
				return 1.0
			}
			return 0.0
		},
	},
	Triangle: {
		Support: 1.0,
		At: func(x float64) float64 {
			// Triangle kernel returns linear interpolation weight based on distance.
			x = math.Abs(x)
			if x < 1.0 {
				return 1.0 - x
			}
			return 0.0
		},
	},
	CatmullRom: {
		Support: 2.0,
		At: func(x float64) float64 {
			// Mitchell-Netravali cubic with B=0, C=0.5 (Catmull-Rom).
			// Provides smooth interpolation with minimal ringing.
			x = math.Abs(x)
			if x < 1.0 {
				return (1.5*x-2.5)*x*x + 1.0
			}
			if x < 2.0 {
				return ((-0.5*x+2.5)*x-4.0)*x + 2.0
			}
			return 0.0
		},
	},
	Gaussian: {
		Support: 2.0,
		At: func(x float64) float64 {
			// Gaussian kernel truncated at two pixels. Weight normalization
			// happens when contributions are built, so the constant factor of
			// the Gaussian is omitted here.
			x = math.Abs(x)
			if x < 2.0 {
				return math.Exp(-2.0 * x * x)
			}
			return 0.0
		},
	},
	Lanczos3: {
		Support: 3.0,
		At: func(x float64) float64 {
			// Lanczos kernel with a=3.
			// Provides excellent sharpness but can introduce ringing artifacts.
			if x == 0.0 {
				return 1.0
			}
			x = math.Abs(x)
			if x >= 3.0 {
				return 0.0
			}
			// sinc(x) * sinc(x/3)
			pix := math.Pi * x
			return (math.Sin(pix) / pix) * (math.Sin(pix/3.0) / (pix / 3.0))
		},
	},
}

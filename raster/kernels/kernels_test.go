package kernels

import (
	"math"
	"testing"
)

func TestContributionsWeightsNormalized(t *testing.T) {
	cases := []struct {
		src, dst int
		filter   Filter
	}{
		{100, 50, Lanczos3},
		{50, 100, Lanczos3},
		{640, 480, CatmullRom},
		{3, 7, Triangle},
		{7, 3, Gaussian},
		{1, 1, Nearest},
	}
	for _, c := range cases {
		contribs := Contributions(c.src, c.dst, c.filter)
		if len(contribs) != c.dst {
			t.Fatalf("%v: got %d positions, want %d", c, len(contribs), c.dst)
		}
		for d, weights := range contribs {
			var sum float64
			for _, w := range weights {
				if w.Pixel < 0 || w.Pixel >= c.src {
					t.Fatalf("%v: position %d references source pixel %d", c, d, w.Pixel)
				}
				sum += w.Weight
			}
			if math.Abs(sum-1.0) > 1e-9 {
				t.Fatalf("%v: position %d weights sum to %v", c, d, sum)
			}
		}
	}
}

func TestKernelCentersAtUnity(t *testing.T) {
	for _, f := range []Filter{Triangle, CatmullRom, Lanczos3} {
		if got := kernels[f].At(0); math.Abs(got-1.0) > 1e-12 {
			t.Fatalf("%s kernel at 0 = %v, want 1", f, got)
		}
	}
	// Outside the support radius every kernel must vanish.
	for f, k := range kernels {
		if got := k.At(k.Support + 0.25); got != 0 {
			t.Fatalf("%s kernel past support = %v, want 0", f, got)
		}
	}
}

func TestGaussianKernelNormalizedAndSymmetric(t *testing.T) {
	k := GaussianKernel(4, 1.5)
	if len(k) != 9 {
		t.Fatalf("kernel size = %d, want 9", len(k))
	}
	var sum float32
	for _, w := range k {
		sum += w
	}
	if math.Abs(float64(sum)-1.0) > 1e-5 {
		t.Fatalf("kernel sums to %v", sum)
	}
	for i := 0; i < len(k)/2; i++ {
		if k[i] != k[len(k)-1-i] {
			t.Fatalf("kernel asymmetric at %d: %v != %v", i, k[i], k[len(k)-1-i])
		}
	}
	if k[4] <= k[3] {
		t.Fatalf("kernel peak not at center: %v <= %v", k[4], k[3])
	}
}

func TestBlurRadius(t *testing.T) {
	if got := BlurRadius(1.0); got != 3 {
		t.Fatalf("BlurRadius(1) = %d, want 3", got)
	}
	if got := BlurRadius(1.5); got != 5 {
		t.Fatalf("BlurRadius(1.5) = %d, want 5", got)
	}
	if got := BlurRadius(0); got != 0 {
		t.Fatalf("BlurRadius(0) = %d, want 0", got)
	}
	if got := BlurRadius(-2); got != 0 {
		t.Fatalf("BlurRadius(-2) = %d, want 0", got)
	}
	if got := BlurRadius(float32(math.NaN())); got != 0 {
		t.Fatalf("BlurRadius(NaN) = %d, want 0", got)
	}
	// Sigmas whose tripling overflows float32 still map to a usable radius.
	if got := BlurRadius(3e38); got != maxBlurRadius {
		t.Fatalf("BlurRadius(3e38) = %d, want %d", got, maxBlurRadius)
	}
	if got := BlurRadius(float32(math.Inf(1))); got != maxBlurRadius {
		t.Fatalf("BlurRadius(+Inf) = %d, want %d", got, maxBlurRadius)
	}
}

func TestGaussianKernelUnderflowDegradesToIdentity(t *testing.T) {
	// At sigma this large every weight underflows to zero before
	// normalization; the kernel must fall back to the identity rather than
	// produce NaN weights.
	k := GaussianKernel(2, 3e38)
	if len(k) != 5 {
		t.Fatalf("kernel size = %d, want 5", len(k))
	}
	if k[2] != 1 {
		t.Fatalf("center weight = %v, want 1", k[2])
	}
	var sum float32
	for _, w := range k {
		sum += w
	}
	if sum != 1 {
		t.Fatalf("kernel sums to %v, want exactly 1", sum)
	}
}

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"nearest":    Nearest,
		"Triangle":   Triangle,
		"bilinear":   Triangle,
		"catmullrom": CatmullRom,
		"bicubic":    CatmullRom,
		"gaussian":   Gaussian,
		"LANCZOS3":   Lanczos3,
		"lanczos":    Lanczos3,
	}
	for name, want := range cases {
		got, err := ParseFilter(name)
		if err != nil {
			t.Fatalf("ParseFilter(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseFilter(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := ParseFilter("hermite"); err == nil {
		t.Fatalf("ParseFilter accepted unknown name")
	}
}

func TestFilterValues(t *testing.T) {
	// The numeric values cross the calling boundary and are fixed.
	values := map[Filter]uint32{
		Nearest:    0,
		Triangle:   1,
		CatmullRom: 2,
		Gaussian:   3,
		Lanczos3:   4,
	}
	for f, want := range values {
		if uint32(f) != want {
			t.Fatalf("%s = %d, want %d", f, uint32(f), want)
		}
		if !f.Valid() {
			t.Fatalf("%s reported invalid", f)
		}
	}
	if Filter(9).Valid() {
		t.Fatalf("Filter(9) reported valid")
	}
	if Filter(9).String() != "unknown" {
		t.Fatalf("Filter(9).String() = %q", Filter(9).String())
	}
}

package raster

import (
	"image"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/fastimage/go-fastimage/raster/kernels"
)

func benchImage(width, height int) *Image {
	return gradientImage(width, height, RGBA8)
}

func BenchmarkResizeDifferentSizes(b *testing.B) {
	src := benchImage(1024, 768)
	sizes := []struct {
		name string
		w, h int
	}{
		{"Thumb_64x48", 64, 48},
		{"Small_256x192", 256, 192},
		{"Half_512x384", 512, 384},
		{"Up_2048x1536", 2048, 1536},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out := Resize(src, size.w, size.h, kernels.Lanczos3)
				_ = out
			}
		})
	}
}

func BenchmarkResizeFilters(b *testing.B) {
	src := benchImage(1024, 768)

	for _, filter := range []kernels.Filter{
		kernels.Nearest, kernels.Triangle, kernels.CatmullRom,
		kernels.Gaussian, kernels.Lanczos3,
	} {
		b.Run(filter.String(), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out := Resize(src, 256, 192, filter)
				_ = out
			}
		})
	}
}

// Compare the engine resampler against the two common Go resize libraries on
// the same workload.
func BenchmarkResizeAgainstLibraries(b *testing.B) {
	src := benchImage(1024, 768)
	stdImg := ToImage(src).(*image.NRGBA)

	b.Run("Engine", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			out := Resize(src, 256, 192, kernels.Lanczos3)
			_ = out
		}
	})

	b.Run("NfntResize", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			out := resize.Resize(256, 192, stdImg, resize.Lanczos3)
			_ = out
		}
	})

	b.Run("Imaging", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			out := imaging.Resize(stdImg, 256, 192, imaging.Lanczos)
			_ = out
		}
	})
}

func BenchmarkBlurSigmas(b *testing.B) {
	src := benchImage(512, 512)
	sigmas := []struct {
		name  string
		sigma float32
	}{
		{"Light_0.8", 0.8},
		{"Medium_2.5", 2.5},
		{"Heavy_8.0", 8.0},
	}

	for _, s := range sigmas {
		b.Run(s.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out := Blur(src, s.sigma)
				_ = out
			}
		})
	}
}

func BenchmarkTransforms(b *testing.B) {
	src := benchImage(1024, 768)

	b.Run("Rotate90", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			out := Rotate90(src)
			_ = out
		}
	})

	b.Run("FlipHorizontal", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			out := FlipHorizontal(src)
			_ = out
		}
	})

	b.Run("Crop", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			out, err := Crop(src, 128, 96, 512, 384)
			if err != nil {
				b.Fatal(err)
			}
			_ = out
		}
	})

	b.Run("Grayscale", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			out := Grayscale(src)
			_ = out
		}
	})
}

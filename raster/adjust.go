package raster

import (
	"github.com/chewxy/math32"

	"github.com/fastimage/go-fastimage/raster/kernels"
)

// Channel midpoints used by the contrast adjustment. Exactly half of the
// channel maximum, so factor 1.0 maps every value onto itself.
const (
	midpoint8  float32 = 127.5
	midpoint16 float32 = 32767.5
)

// Blur applies Gaussian blur for noise reduction or smoothing, using
// separable filtering for efficiency. Sigma at or below zero is defined as a
// no-op; the caller still receives an independent copy.
//
// Arguments:
// - src: The source image to blur.
// - sigma: Standard deviation of the Gaussian kernel (controls blur strength).
//
// Returns:
// - A new blurred image with the same dimensions and layout.
func Blur(src *Image, sigma float32) *Image {
	// Kernel radius covers three standard deviations, narrowed to the image
	// extent: clamp-to-edge sampling makes anything wider redundant.
	radius := kernels.BlurRadius(sigma)
	if radius == 0 {
		return src.Clone()
	}
	m := src.Width
	if src.Height > m {
		m = src.Height
	}
	if radius > m {
		radius = m
	}
	kernel := kernels.GaussianKernel(radius, sigma)

	// Horizontal pass, then vertical pass over the intermediate.
	intermediate := New(src.Width, src.Height, src.Color)
	convolveHorizontal(src, intermediate, kernels.BlurContributions(src.Width, kernel))

	dst := New(src.Width, src.Height, src.Color)
	convolveVertical(intermediate, dst, kernels.BlurContributions(src.Height, kernel))

	return dst
}

// Brightness adds delta to every color channel in its native scale (0..255
// for 8-bit layouts, 0..65535 for 16-bit), clamping at the range bounds so
// values never wrap. The alpha channel is left untouched.
func Brightness(src *Image, delta int32) *Image {
	if src.Color.BytesPerChannel() == 1 {
		var lut [256]uint8
		for i := range lut {
			v := int32(i) + delta
			if v < 0 {
				v = 0
			} else if v > 0xFF {
				v = 0xFF
			}
			lut[i] = uint8(v)
		}
		return mapColor8(src, &lut)
	}

	return mapColor16(src, func(s uint32) uint32 {
		v := int64(s) + int64(delta)
		if v < 0 {
			v = 0
		} else if v > 0xFFFF {
			v = 0xFFFF
		}
		return uint32(v)
	})
}

// Contrast scales every color channel's deviation from the channel midpoint
// by factor, clamped to the channel range. Factor 1.0 is the identity;
// factor 0 collapses the image onto the midpoint; negative factors are
// treated as zero. The alpha channel is left untouched.
func Contrast(src *Image, factor float32) *Image {
	if factor < 0 {
		factor = 0
	}

	if src.Color.BytesPerChannel() == 1 {
		var lut [256]uint8
		for i := range lut {
			v := (float32(i)-midpoint8)*factor + midpoint8
			lut[i] = uint8(math32.Min(math32.Max(v, 0), 255) + 0.5)
		}
		return mapColor8(src, &lut)
	}

	return mapColor16(src, func(s uint32) uint32 {
		v := (float32(s)-midpoint16)*factor + midpoint16
		return uint32(math32.Min(math32.Max(v, 0), 65535) + 0.5)
	})
}

// Grayscale converts the image to a single luminance channel using ITU-R
// BT.709 luma coefficients, preserving the source depth: 8-bit sources yield
// Gray8, 16-bit sources Gray16. Alpha, when present, is discarded.
func Grayscale(src *Image) *Image {
	// Already grayscale.
	if src.Color == Gray8 || src.Color == Gray16 {
		return src.Clone()
	}

	out := Gray8
	if src.Color.BytesPerChannel() == 2 {
		out = Gray16
	}
	dst := New(src.Width, src.Height, out)

	// Gray plus alpha carries its luminance in channel zero already.
	if src.Color == GrayAlpha8 || src.Color == GrayAlpha16 {
		Parallel(src.Height, func(partStart, partEnd int) {
			for y := partStart; y < partEnd; y++ {
				for x := 0; x < src.Width; x++ {
					dst.SetSample(x, y, 0, src.Sample(x, y, 0))
				}
			}
		})
		return dst
	}

	// ITU-R BT.709 luma coefficients.
	// These weights reflect human eye sensitivity to different colors.
	const (
		redWeight   = 0.2126
		greenWeight = 0.7152
		blueWeight  = 0.0722
	)

	maxVal := float64(src.Color.MaxValue())
	Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < src.Width; x++ {
				luma := float64(src.Sample(x, y, 0))*redWeight +
					float64(src.Sample(x, y, 1))*greenWeight +
					float64(src.Sample(x, y, 2))*blueWeight
				dst.SetSample(x, y, 0, uint32(Clamp(luma, 0, maxVal)+0.5))
			}
		}
	})

	return dst
}

// Invert replaces every color sample with its complement, in place. This is
// the engine's only mutating transform: the image's storage changes and no
// copy is made. The alpha channel is left untouched.
func Invert(m *Image) {
	// Without alpha, complementing every byte complements every sample at
	// both depths (65535-v flips both bytes of a big-endian pair).
	if !m.Color.HasAlpha() {
		Parallel(len(m.Pix), func(partStart, partEnd int) {
			for i := partStart; i < partEnd; i++ {
				m.Pix[i] = ^m.Pix[i]
			}
		})
		return
	}

	bpp := m.Color.BytesPerPixel()
	colorBytes := bpp - m.Color.BytesPerChannel()
	stride := m.Stride()

	Parallel(m.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := m.Pix[y*stride : (y+1)*stride]
			for off := 0; off < len(row); off += bpp {
				for i := 0; i < colorBytes; i++ {
					row[off+i] = ^row[off+i]
				}
			}
		}
	})
}

// mapColor8 applies a lookup table to every color byte, leaving alpha bytes
// unchanged.
func mapColor8(src *Image, lut *[256]uint8) *Image {
	dst := src.Clone()
	channels := src.Color.Channels()
	colorCh := channels
	if src.Color.HasAlpha() {
		colorCh--
	}
	stride := src.Stride()

	Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := dst.Pix[y*stride : (y+1)*stride]
			for base := 0; base < len(row); base += channels {
				for ch := 0; ch < colorCh; ch++ {
					row[base+ch] = lut[row[base+ch]]
				}
			}
		}
	})

	return dst
}

// mapColor16 applies fn to every 16-bit color sample, leaving alpha samples
// unchanged.
func mapColor16(src *Image, fn func(uint32) uint32) *Image {
	dst := src.Clone()
	channels := src.Color.Channels()
	colorCh := channels
	if src.Color.HasAlpha() {
		colorCh--
	}
	stride := src.Stride()
	bpp := src.Color.BytesPerPixel()

	Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := dst.Pix[y*stride : (y+1)*stride]
			for base := 0; base < len(row); base += bpp {
				for ch := 0; ch < colorCh; ch++ {
					i := base + ch*2
					v := fn(uint32(row[i])<<8 | uint32(row[i+1]))
					row[i] = uint8(v >> 8)
					row[i+1] = uint8(v)
				}
			}
		}
	})

	return dst
}

package raster

import (
	"math"

	"github.com/fastimage/go-fastimage/raster/kernels"
)

// Resize performs high-quality scaling to exactly width x height using the
// specified resampling filter. This implementation uses separable filtering
// for efficiency, processing horizontal and vertical dimensions independently.
// The channel layout of the source is preserved.
//
// Arguments:
// - src: The source image to resize.
// - width: The target width in pixels.
// - height: The target height in pixels.
// - filter: The resampling filter to use for interpolation.
//
// Returns:
// - The resized image; the source is left unchanged.
func Resize(src *Image, width, height int, filter kernels.Filter) *Image {
	// Early return for invalid dimensions.
	if width < 1 || height < 1 {
		return New(1, 1, src.Color)
	}

	// Early return if no resizing is needed (the caller still gets a new image).
	if src.Width == width && src.Height == height {
		return src.Clone()
	}

	// Handle nearest neighbor separately for maximum performance.
	if filter == kernels.Nearest {
		return resizeNearest(src, width, height)
	}

	// Resize horizontally first, then vertically (separable filtering).
	intermediate := New(width, src.Height, src.Color)
	convolveHorizontal(src, intermediate, kernels.Contributions(src.Width, width, filter))

	dst := New(width, height, src.Color)
	convolveVertical(intermediate, dst, kernels.Contributions(src.Height, height, filter))

	return dst
}

// FitDimensions returns the largest dimensions that preserve the source
// aspect ratio while fitting entirely within boundWidth x boundHeight.
// Dimensions round to the nearest pixel and never drop below one.
func FitDimensions(srcWidth, srcHeight, boundWidth, boundHeight int) (int, int) {
	scale := math.Min(
		float64(boundWidth)/float64(srcWidth),
		float64(boundHeight)/float64(srcHeight),
	)
	return scaleDimensions(srcWidth, srcHeight, scale)
}

// FillDimensions returns the smallest dimensions that preserve the source
// aspect ratio while covering boundWidth x boundHeight completely. The excess
// along one axis is what a follow-up center crop removes.
func FillDimensions(srcWidth, srcHeight, boundWidth, boundHeight int) (int, int) {
	scale := math.Max(
		float64(boundWidth)/float64(srcWidth),
		float64(boundHeight)/float64(srcHeight),
	)
	return scaleDimensions(srcWidth, srcHeight, scale)
}

// scaleDimensions applies a uniform scale factor, rounding half away from
// zero and flooring at one pixel.
func scaleDimensions(width, height int, scale float64) (int, int) {
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// resizeNearest performs fast nearest-neighbor resizing by copying whole
// pixels. This is the fastest resampling method but produces blocky results.
func resizeNearest(src *Image, width, height int) *Image {
	dst := New(width, height, src.Color)
	bpp := src.Color.BytesPerPixel()
	srcStride := src.Stride()
	dstStride := dst.Stride()

	// Floating point ratios maintain precision during coordinate mapping.
	xRatio := float64(src.Width) / float64(width)
	yRatio := float64(src.Height) / float64(height)

	Parallel(height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			srcY := int(float64(y)*yRatio + 0.5)
			if srcY >= src.Height {
				srcY = src.Height - 1
			}
			srcRow := src.Pix[srcY*srcStride:]
			dstRow := dst.Pix[y*dstStride:]

			for x := 0; x < width; x++ {
				srcX := int(float64(x)*xRatio + 0.5)
				if srcX >= src.Width {
					srcX = src.Width - 1
				}
				copy(dstRow[x*bpp:(x+1)*bpp], srcRow[srcX*bpp:(srcX+1)*bpp])
			}
		}
	})

	return dst
}

// convolveHorizontal applies one weight table per output column across every
// row. dst must share the source's height and layout. Both the resize and the
// blur paths run through here; they differ only in how the contribution
// tables are built.
func convolveHorizontal(src, dst *Image, contribs [][]kernels.Contribution) {
	channels := src.Color.Channels()
	maxVal := float64(src.Color.MaxValue())
	srcStride := src.Stride()
	dstStride := dst.Stride()

	if src.Color.BytesPerChannel() == 1 {
		Parallel(src.Height, func(partStart, partEnd int) {
			for y := partStart; y < partEnd; y++ {
				srcRow := src.Pix[y*srcStride : (y+1)*srcStride]
				dstRow := dst.Pix[y*dstStride : (y+1)*dstStride]

				for x := 0; x < dst.Width; x++ {
					for ch := 0; ch < channels; ch++ {
						// Sum the weighted contributions from source pixels.
						var sum float64
						for _, c := range contribs[x] {
							sum += float64(srcRow[c.Pixel*channels+ch]) * c.Weight
						}
						// Clamp and round to the nearest integer.
						dstRow[x*channels+ch] = uint8(Clamp(sum, 0, maxVal) + 0.5)
					}
				}
			}
		})
		return
	}

	// 16-bit samples, big-endian byte pairs.
	Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			srcRow := src.Pix[y*srcStride : (y+1)*srcStride]
			dstRow := dst.Pix[y*dstStride : (y+1)*dstStride]

			for x := 0; x < dst.Width; x++ {
				for ch := 0; ch < channels; ch++ {
					var sum float64
					for _, c := range contribs[x] {
						i := (c.Pixel*channels + ch) * 2
						sum += float64(uint32(srcRow[i])<<8|uint32(srcRow[i+1])) * c.Weight
					}
					v := uint32(Clamp(sum, 0, maxVal) + 0.5)
					i := (x*channels + ch) * 2
					dstRow[i] = uint8(v >> 8)
					dstRow[i+1] = uint8(v)
				}
			}
		}
	})
}

// convolveVertical applies one weight table per output row across every
// column. src carries the intermediate image produced by the horizontal pass.
func convolveVertical(src, dst *Image, contribs [][]kernels.Contribution) {
	channels := src.Color.Channels()
	maxVal := float64(src.Color.MaxValue())
	srcStride := src.Stride()
	dstStride := dst.Stride()

	if src.Color.BytesPerChannel() == 1 {
		Parallel(dst.Width, func(partStart, partEnd int) {
			for x := partStart; x < partEnd; x++ {
				for y := 0; y < dst.Height; y++ {
					for ch := 0; ch < channels; ch++ {
						var sum float64
						for _, c := range contribs[y] {
							sum += float64(src.Pix[c.Pixel*srcStride+x*channels+ch]) * c.Weight
						}
						dst.Pix[y*dstStride+x*channels+ch] = uint8(Clamp(sum, 0, maxVal) + 0.5)
					}
				}
			}
		})
		return
	}

	// 16-bit samples, big-endian byte pairs.
	Parallel(dst.Width, func(partStart, partEnd int) {
		for x := partStart; x < partEnd; x++ {
			for y := 0; y < dst.Height; y++ {
				for ch := 0; ch < channels; ch++ {
					var sum float64
					for _, c := range contribs[y] {
						i := c.Pixel*srcStride + (x*channels+ch)*2
						sum += float64(uint32(src.Pix[i])<<8|uint32(src.Pix[i+1])) * c.Weight
					}
					v := uint32(Clamp(sum, 0, maxVal) + 0.5)
					i := y*dstStride + (x*channels+ch)*2
					dst.Pix[i] = uint8(v >> 8)
					dst.Pix[i+1] = uint8(v)
				}
			}
		}
	})
}

// Clamp restricts a value to the specified range [min, max].
// This is used to prevent overflow in sample calculations.
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

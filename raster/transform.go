package raster

import "github.com/pkg/errors"

// ErrCropBounds reports a crop rectangle that is empty or falls outside the
// source image.
var ErrCropBounds = errors.New("raster: crop rectangle outside source bounds")

// Crop extracts the sub-rectangle with origin (x, y) and the given size.
// The rectangle must be non-empty and fully contained in the source.
func Crop(src *Image, x, y, width, height int) (*Image, error) {
	if width < 1 || height < 1 || x < 0 || y < 0 || x+width > src.Width || y+height > src.Height {
		return nil, ErrCropBounds
	}

	dst := New(width, height, src.Color)
	bpp := src.Color.BytesPerPixel()
	srcStride := src.Stride()
	dstStride := dst.Stride()

	Parallel(height, func(partStart, partEnd int) {
		for row := partStart; row < partEnd; row++ {
			srcOff := (y+row)*srcStride + x*bpp
			copy(dst.Pix[row*dstStride:(row+1)*dstStride], src.Pix[srcOff:srcOff+dstStride])
		}
	})

	return dst, nil
}

// Rotate90 returns the image rotated a quarter turn clockwise. Width and
// height swap; pixels are moved, never resampled.
func Rotate90(src *Image) *Image {
	dst := New(src.Height, src.Width, src.Color)
	bpp := src.Color.BytesPerPixel()
	srcStride := src.Stride()
	dstStride := dst.Stride()

	Parallel(dst.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < dst.Width; x++ {
				// dst(x, y) takes src(y, srcHeight-1-x).
				srcOff := (src.Height-1-x)*srcStride + y*bpp
				dstOff := y*dstStride + x*bpp
				copy(dst.Pix[dstOff:dstOff+bpp], src.Pix[srcOff:srcOff+bpp])
			}
		}
	})

	return dst
}

// Rotate180 returns the image rotated a half turn. Dimensions are unchanged.
func Rotate180(src *Image) *Image {
	dst := New(src.Width, src.Height, src.Color)
	bpp := src.Color.BytesPerPixel()
	stride := src.Stride()

	Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < src.Width; x++ {
				srcOff := (src.Height-1-y)*stride + (src.Width-1-x)*bpp
				dstOff := y*stride + x*bpp
				copy(dst.Pix[dstOff:dstOff+bpp], src.Pix[srcOff:srcOff+bpp])
			}
		}
	})

	return dst
}

// Rotate270 returns the image rotated a quarter turn counter-clockwise.
// Width and height swap; pixels are moved, never resampled.
func Rotate270(src *Image) *Image {
	dst := New(src.Height, src.Width, src.Color)
	bpp := src.Color.BytesPerPixel()
	srcStride := src.Stride()
	dstStride := dst.Stride()

	Parallel(dst.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < dst.Width; x++ {
				// dst(x, y) takes src(srcWidth-1-y, x).
				srcOff := x*srcStride + (src.Width-1-y)*bpp
				dstOff := y*dstStride + x*bpp
				copy(dst.Pix[dstOff:dstOff+bpp], src.Pix[srcOff:srcOff+bpp])
			}
		}
	})

	return dst
}

// FlipHorizontal returns the image mirrored around its vertical axis.
func FlipHorizontal(src *Image) *Image {
	dst := New(src.Width, src.Height, src.Color)
	bpp := src.Color.BytesPerPixel()
	stride := src.Stride()

	Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			rowOff := y * stride
			for x := 0; x < src.Width; x++ {
				srcOff := rowOff + (src.Width-1-x)*bpp
				dstOff := rowOff + x*bpp
				copy(dst.Pix[dstOff:dstOff+bpp], src.Pix[srcOff:srcOff+bpp])
			}
		}
	})

	return dst
}

// FlipVertical returns the image mirrored around its horizontal axis. Rows
// move as whole blocks.
func FlipVertical(src *Image) *Image {
	dst := New(src.Width, src.Height, src.Color)
	stride := src.Stride()

	Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			srcOff := (src.Height - 1 - y) * stride
			copy(dst.Pix[y*stride:(y+1)*stride], src.Pix[srcOff:srcOff+stride])
		}
	})

	return dst
}

package raster

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// FromImage converts a decoded standard-library image into the engine
// representation, preserving channel depth where the source model allows it.
// Models without a direct mapping are normalized to RGBA8.
func FromImage(img image.Image) *Image {
	switch src := img.(type) {
	case *image.Gray:
		return fromRows(src.Pix, src.Stride, src.Bounds(), Gray8)
	case *image.Gray16:
		return fromRows(src.Pix, src.Stride, src.Bounds(), Gray16)
	case *image.NRGBA:
		return fromRows(src.Pix, src.Stride, src.Bounds(), RGBA8)
	case *image.NRGBA64:
		return fromRows(src.Pix, src.Stride, src.Bounds(), RGBA16)
	case *image.YCbCr:
		return fromYCbCr(src)
	case *image.CMYK:
		return fromCMYK(src)
	case *image.Paletted:
		return fromPaletted(src)
	}

	// Premultiplied and other exotic models go through imaging's normalizer,
	// which lands on non-premultiplied 8-bit RGBA.
	ni := imaging.Clone(img)
	return fromRows(ni.Pix, ni.Stride, ni.Bounds(), RGBA8)
}

// fromRows copies a row-padded pixel buffer into the dense engine layout.
func fromRows(pix []byte, stride int, bounds image.Rectangle, color ColorType) *Image {
	dst := New(bounds.Dx(), bounds.Dy(), color)
	rowLen := dst.Stride()
	for y := 0; y < dst.Height; y++ {
		srcOff := y * stride
		copy(dst.Pix[y*rowLen:(y+1)*rowLen], pix[srcOff:srcOff+rowLen])
	}
	return dst
}

// fromYCbCr converts JPEG-style luma/chroma planes to RGB8.
func fromYCbCr(src *image.YCbCr) *Image {
	bounds := src.Bounds()
	dst := New(bounds.Dx(), bounds.Dy(), RGB8)

	Parallel(dst.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			i := y * dst.Stride()
			for x := 0; x < dst.Width; x++ {
				c := src.YCbCrAt(bounds.Min.X+x, bounds.Min.Y+y)
				r, g, b := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
				dst.Pix[i] = r
				dst.Pix[i+1] = g
				dst.Pix[i+2] = b
				i += 3
			}
		}
	})

	return dst
}

// fromCMYK converts ink values to RGB8.
func fromCMYK(src *image.CMYK) *Image {
	bounds := src.Bounds()
	dst := New(bounds.Dx(), bounds.Dy(), RGB8)

	Parallel(dst.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			i := y * dst.Stride()
			for x := 0; x < dst.Width; x++ {
				c := src.CMYKAt(bounds.Min.X+x, bounds.Min.Y+y)
				r, g, b := color.CMYKToRGB(c.C, c.M, c.Y, c.K)
				dst.Pix[i] = r
				dst.Pix[i+1] = g
				dst.Pix[i+2] = b
				i += 3
			}
		}
	})

	return dst
}

// fromPaletted expands palette indices to RGBA8, keeping any palette
// transparency (the GIF case).
func fromPaletted(src *image.Paletted) *Image {
	// Resolve the palette once.
	palette := make([]color.NRGBA, len(src.Palette))
	for i, c := range src.Palette {
		palette[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}

	bounds := src.Bounds()
	dst := New(bounds.Dx(), bounds.Dy(), RGBA8)

	Parallel(dst.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			i := y * dst.Stride()
			for x := 0; x < dst.Width; x++ {
				c := palette[src.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y)]
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
				i += 4
			}
		}
	})

	return dst
}

// ToImage converts the engine representation back to a standard-library image
// for the encoders. Gray layouts map to Gray/Gray16; everything else maps to
// non-premultiplied RGBA at the source depth, expanding missing channels.
func ToImage(m *Image) image.Image {
	rect := image.Rect(0, 0, m.Width, m.Height)

	switch m.Color {
	case Gray8:
		dst := image.NewGray(rect)
		copy(dst.Pix, m.Pix)
		return dst
	case Gray16:
		dst := image.NewGray16(rect)
		copy(dst.Pix, m.Pix)
		return dst
	case RGBA8:
		dst := image.NewNRGBA(rect)
		copy(dst.Pix, m.Pix)
		return dst
	case RGBA16:
		dst := image.NewNRGBA64(rect)
		copy(dst.Pix, m.Pix)
		return dst
	case GrayAlpha8:
		dst := image.NewNRGBA(rect)
		expandPixels(m, dst.Pix, 4, [4]int{0, 0, 0, 1})
		return dst
	case RGB8:
		dst := image.NewNRGBA(rect)
		expandPixels(m, dst.Pix, 4, [4]int{0, 1, 2, -1})
		return dst
	case GrayAlpha16:
		dst := image.NewNRGBA64(rect)
		expandPixels16(m, dst.Pix, [4]int{0, 0, 0, 1})
		return dst
	default: // RGB16
		dst := image.NewNRGBA64(rect)
		expandPixels16(m, dst.Pix, [4]int{0, 1, 2, -1})
		return dst
	}
}

// expandPixels writes 8-bit RGBA output taking each output channel from the
// mapped source channel; -1 fills with opaque alpha.
func expandPixels(m *Image, out []byte, outCh int, chMap [4]int) {
	channels := m.Color.Channels()
	Parallel(m.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			src := y * m.Stride()
			dst := y * m.Width * outCh
			for x := 0; x < m.Width; x++ {
				for ch := 0; ch < outCh; ch++ {
					if chMap[ch] < 0 {
						out[dst+ch] = 0xFF
					} else {
						out[dst+ch] = m.Pix[src+chMap[ch]]
					}
				}
				src += channels
				dst += outCh
			}
		}
	})
}

// expandPixels16 is the 16-bit variant of expandPixels; samples stay
// big-endian byte pairs.
func expandPixels16(m *Image, out []byte, chMap [4]int) {
	channels := m.Color.Channels()
	Parallel(m.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			src := y * m.Stride()
			dst := y * m.Width * 8
			for x := 0; x < m.Width; x++ {
				for ch := 0; ch < 4; ch++ {
					if chMap[ch] < 0 {
						out[dst+ch*2] = 0xFF
						out[dst+ch*2+1] = 0xFF
					} else {
						out[dst+ch*2] = m.Pix[src+chMap[ch]*2]
						out[dst+ch*2+1] = m.Pix[src+chMap[ch]*2+1]
					}
				}
				src += channels * 2
				dst += 8
			}
		}
	})
}

// StripAlpha drops the alpha channel, returning the color channels unchanged
// (raw drop, no compositing). Layouts without alpha are returned as-is
// without copying.
func StripAlpha(src *Image) *Image {
	var out ColorType
	switch src.Color {
	case GrayAlpha8:
		out = Gray8
	case RGBA8:
		out = RGB8
	case GrayAlpha16:
		out = Gray16
	case RGBA16:
		out = RGB16
	default:
		return src
	}

	dst := New(src.Width, src.Height, out)
	srcBpp := src.Color.BytesPerPixel()
	dstBpp := out.BytesPerPixel()

	Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			srcOff := y * src.Stride()
			dstOff := y * dst.Stride()
			for x := 0; x < src.Width; x++ {
				copy(dst.Pix[dstOff:dstOff+dstBpp], src.Pix[srcOff:srcOff+dstBpp])
				srcOff += srcBpp
				dstOff += dstBpp
			}
		}
	})

	return dst
}

// To8Bit reduces 16-bit layouts to their 8-bit counterparts by keeping the
// high byte of each sample. 8-bit layouts are returned as-is without copying.
func To8Bit(src *Image) *Image {
	if src.Color.BytesPerChannel() == 1 {
		return src
	}

	var out ColorType
	switch src.Color {
	case Gray16:
		out = Gray8
	case GrayAlpha16:
		out = GrayAlpha8
	case RGB16:
		out = RGB8
	default:
		out = RGBA8
	}
	dst := New(src.Width, src.Height, out)

	Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			srcOff := y * src.Stride()
			dstOff := y * dst.Stride()
			rowEnd := srcOff + src.Stride()
			for i := srcOff; i < rowEnd; i += 2 {
				dst.Pix[dstOff] = src.Pix[i]
				dstOff++
			}
		}
	})

	return dst
}

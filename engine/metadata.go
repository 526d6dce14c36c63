package engine

import "github.com/fastimage/go-fastimage/raster"

// Channel layout kinds reported through Metadata. The values match the
// single-byte encoding used at the C boundary.
const (
	KindGray      uint8 = 0
	KindGrayAlpha uint8 = 1
	KindRGB       uint8 = 2
	KindRGBA      uint8 = 3
)

// Metadata describes the image behind a handle without exposing its pixels.
type Metadata struct {
	Width     uint32
	Height    uint32
	ColorKind uint8
}

func colorKind(c raster.ColorType) uint8 {
	switch c {
	case raster.Gray8, raster.Gray16:
		return KindGray
	case raster.GrayAlpha8, raster.GrayAlpha16:
		return KindGrayAlpha
	case raster.RGB8, raster.RGB16:
		return KindRGB
	}
	return KindRGBA
}

func metadataFor(m *raster.Image) Metadata {
	return Metadata{
		Width:     uint32(m.Width),
		Height:    uint32(m.Height),
		ColorKind: colorKind(m.Color),
	}
}

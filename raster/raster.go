// Package raster - pixel buffer representation and the transform engine that
// operates on it. Buffers are plain byte slices with an explicit channel
// layout, so every operation works uniformly across gray, RGB, and alpha
// variants at 8 and 16 bits per channel.
package raster

// ColorType describes the channel layout and depth of a pixel buffer.
type ColorType uint8

const (
	// Gray8 is a single 8-bit luminance channel.
	Gray8 ColorType = iota
	// GrayAlpha8 is 8-bit luminance with an 8-bit alpha channel.
	GrayAlpha8
	// RGB8 is 8-bit red, green, and blue channels.
	RGB8
	// RGBA8 is 8-bit red, green, blue, and alpha channels.
	RGBA8
	// Gray16 is a single 16-bit luminance channel.
	Gray16
	// GrayAlpha16 is 16-bit luminance with a 16-bit alpha channel.
	GrayAlpha16
	// RGB16 is 16-bit red, green, and blue channels.
	RGB16
	// RGBA16 is 16-bit red, green, blue, and alpha channels.
	RGBA16
)

// Channels returns the number of channels per pixel, alpha included.
func (c ColorType) Channels() int {
	switch c {
	case Gray8, Gray16:
		return 1
	case GrayAlpha8, GrayAlpha16:
		return 2
	case RGB8, RGB16:
		return 3
	default:
		return 4
	}
}

// BytesPerChannel returns 1 for 8-bit layouts and 2 for 16-bit layouts.
func (c ColorType) BytesPerChannel() int {
	if c >= Gray16 {
		return 2
	}
	return 1
}

// BytesPerPixel returns the storage size of one pixel.
func (c ColorType) BytesPerPixel() int {
	return c.Channels() * c.BytesPerChannel()
}

// HasAlpha reports whether the layout carries an alpha channel. Alpha is
// always the last channel.
func (c ColorType) HasAlpha() bool {
	switch c {
	case GrayAlpha8, RGBA8, GrayAlpha16, RGBA16:
		return true
	}
	return false
}

// MaxValue returns the largest sample value the layout can store.
func (c ColorType) MaxValue() uint32 {
	if c.BytesPerChannel() == 2 {
		return 0xFFFF
	}
	return 0xFF
}

// Valid reports whether c names a known layout.
func (c ColorType) Valid() bool {
	return c <= RGBA16
}

// String returns a short layout name.
func (c ColorType) String() string {
	switch c {
	case Gray8:
		return "gray8"
	case GrayAlpha8:
		return "grayalpha8"
	case RGB8:
		return "rgb8"
	case RGBA8:
		return "rgba8"
	case Gray16:
		return "gray16"
	case GrayAlpha16:
		return "grayalpha16"
	case RGB16:
		return "rgb16"
	case RGBA16:
		return "rgba16"
	default:
		return "unknown"
	}
}

// Image is a decoded raster held in a contiguous byte buffer.
//
// Pix stores rows top to bottom with no padding, so its length always equals
// Width*Height*Color.BytesPerPixel(). 16-bit samples are big-endian. Every
// constructor and transform in this package maintains that invariant.
type Image struct {
	// Width is the image width in pixels.
	Width int
	// Height is the image height in pixels.
	Height int
	// Color is the channel layout and depth of Pix.
	Color ColorType
	// Pix holds the samples in row-major order.
	Pix []byte
}

// New allocates a zeroed image of the given dimensions and layout.
// Dimensions smaller than one pixel are raised to one.
func New(width, height int, color ColorType) *Image {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Image{
		Width:  width,
		Height: height,
		Color:  color,
		Pix:    make([]byte, width*height*color.BytesPerPixel()),
	}
}

// Stride returns the number of bytes per row.
func (m *Image) Stride() int {
	return m.Width * m.Color.BytesPerPixel()
}

// PixOffset returns the byte index of the pixel at (x, y).
func (m *Image) PixOffset(x, y int) int {
	return y*m.Stride() + x*m.Color.BytesPerPixel()
}

// Clone returns a deep copy of the image. The copy shares no storage with
// the source.
func (m *Image) Clone() *Image {
	pix := make([]byte, len(m.Pix))
	copy(pix, m.Pix)
	return &Image{
		Width:  m.Width,
		Height: m.Height,
		Color:  m.Color,
		Pix:    pix,
	}
}

// Sample reads channel ch of the pixel at (x, y) in the channel's native
// scale (0..255 or 0..65535).
func (m *Image) Sample(x, y, ch int) uint32 {
	if m.Color.BytesPerChannel() == 2 {
		i := m.PixOffset(x, y) + ch*2
		return uint32(m.Pix[i])<<8 | uint32(m.Pix[i+1])
	}
	return uint32(m.Pix[m.PixOffset(x, y)+ch])
}

// SetSample writes channel ch of the pixel at (x, y). The value is truncated
// to the channel's native range.
func (m *Image) SetSample(x, y, ch int, v uint32) {
	if m.Color.BytesPerChannel() == 2 {
		i := m.PixOffset(x, y) + ch*2
		m.Pix[i] = uint8(v >> 8)
		m.Pix[i+1] = uint8(v)
		return
	}
	m.Pix[m.PixOffset(x, y)+ch] = uint8(v)
}

package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradientImage builds a deterministic test image whose samples vary with
// position and channel.
func gradientImage(width, height int, color ColorType) *Image {
	m := New(width, height, color)
	channels := color.Channels()
	maxVal := color.MaxValue()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for ch := 0; ch < channels; ch++ {
				v := uint32(x*7+y*13+ch*29) % (maxVal + 1)
				m.SetSample(x, y, ch, v)
			}
		}
	}
	return m
}

// solidImage builds a test image with every color sample set to value and
// alpha fully opaque.
func solidImage(width, height int, color ColorType, value uint32) *Image {
	m := New(width, height, color)
	channels := color.Channels()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for ch := 0; ch < channels; ch++ {
				m.SetSample(x, y, ch, value)
			}
			if color.HasAlpha() {
				m.SetSample(x, y, channels-1, color.MaxValue())
			}
		}
	}
	return m
}

var allColorTypes = []ColorType{
	Gray8, GrayAlpha8, RGB8, RGBA8,
	Gray16, GrayAlpha16, RGB16, RGBA16,
}

func TestColorTypeProperties(t *testing.T) {
	cases := []struct {
		color    ColorType
		channels int
		bpc      int
		alpha    bool
	}{
		{Gray8, 1, 1, false},
		{GrayAlpha8, 2, 1, true},
		{RGB8, 3, 1, false},
		{RGBA8, 4, 1, true},
		{Gray16, 1, 2, false},
		{GrayAlpha16, 2, 2, true},
		{RGB16, 3, 2, false},
		{RGBA16, 4, 2, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.channels, c.color.Channels(), "%s channels", c.color)
		assert.Equal(t, c.bpc, c.color.BytesPerChannel(), "%s bytes per channel", c.color)
		assert.Equal(t, c.channels*c.bpc, c.color.BytesPerPixel(), "%s bytes per pixel", c.color)
		assert.Equal(t, c.alpha, c.color.HasAlpha(), "%s alpha", c.color)
		assert.True(t, c.color.Valid())
		assert.NotEqual(t, "unknown", c.color.String())
	}
	assert.False(t, ColorType(42).Valid())
	assert.Equal(t, "unknown", ColorType(42).String())
}

func TestNewMaintainsStorageInvariant(t *testing.T) {
	for _, color := range allColorTypes {
		m := New(13, 7, color)
		require.Len(t, m.Pix, 13*7*color.BytesPerPixel(), "%s storage size", color)
		assert.Equal(t, 13*color.BytesPerPixel(), m.Stride())
	}

	// Degenerate dimensions are raised to one pixel.
	m := New(0, -3, RGBA8)
	assert.Equal(t, 1, m.Width)
	assert.Equal(t, 1, m.Height)
	assert.Len(t, m.Pix, 4)
}

func TestCloneIsIndependent(t *testing.T) {
	src := gradientImage(8, 5, RGBA8)
	dup := src.Clone()

	require.Equal(t, src.Pix, dup.Pix)
	dup.Pix[0] ^= 0xFF
	assert.NotEqual(t, src.Pix[0], dup.Pix[0], "clone must not share storage")
}

func TestSampleRoundTrip(t *testing.T) {
	m8 := New(4, 4, RGBA8)
	m8.SetSample(2, 3, 1, 200)
	assert.Equal(t, uint32(200), m8.Sample(2, 3, 1))

	m16 := New(4, 4, RGBA16)
	m16.SetSample(1, 2, 3, 0xABCD)
	assert.Equal(t, uint32(0xABCD), m16.Sample(1, 2, 3))

	// Big-endian byte order within a 16-bit sample.
	off := m16.PixOffset(1, 2) + 3*2
	assert.Equal(t, byte(0xAB), m16.Pix[off])
	assert.Equal(t, byte(0xCD), m16.Pix[off+1])
}

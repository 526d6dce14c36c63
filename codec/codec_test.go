package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The numeric values are frozen: existing callers select formats by value.
func TestFormatValuesAreStable(t *testing.T) {
	assert.Equal(t, Format(0), FormatPNG)
	assert.Equal(t, Format(1), FormatJPEG)
	assert.Equal(t, Format(2), FormatGIF)
	assert.Equal(t, Format(3), FormatWebP)
	assert.Equal(t, Format(4), FormatBMP)
	assert.Equal(t, Format(5), FormatICO)
	assert.Equal(t, Format(6), FormatTIFF)
	assert.Equal(t, Format(-1), FormatUnknown)
}

func TestParseFormatAcceptsAliases(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"png", FormatPNG},
		{"PNG", FormatPNG},
		{"jpeg", FormatJPEG},
		{"jpg", FormatJPEG},
		{"gif", FormatGIF},
		{"webp", FormatWebP},
		{"bmp", FormatBMP},
		{"ico", FormatICO},
		{"tiff", FormatTIFF},
		{"Tif", FormatTIFF},
	}
	for _, c := range cases {
		got, err := ParseFormat(c.in)
		require.NoError(t, err, "ParseFormat(%q)", c.in)
		assert.Equal(t, c.want, got, "ParseFormat(%q)", c.in)
	}

	_, err := ParseFormat("heic")
	assert.Error(t, err)
	_, err = ParseFormat("")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJPEG, FormatFromPath("/tmp/photos/cat.JPG"))
	assert.Equal(t, FormatPNG, FormatFromPath("out.png"))
	assert.Equal(t, FormatTIFF, FormatFromPath("scan.tif"))
	assert.Equal(t, FormatUnknown, FormatFromPath("archive.tar.gz"))
	assert.Equal(t, FormatUnknown, FormatFromPath("noextension"))
	assert.Equal(t, FormatUnknown, FormatFromPath(""))
}

func TestSniffRecognizesSignatures(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Format
	}{
		{"png signature", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, FormatPNG},
		{"jpeg jfif", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, FormatJPEG},
		{"gif87a", []byte("GIF87a-trailing"), FormatGIF},
		{"gif89a", []byte("GIF89a-trailing"), FormatGIF},
		{"webp riff", []byte("RIFF\x24\x00\x00\x00WEBPVP8 "), FormatWebP},
		{"bmp", []byte("BM\x76\x00\x00\x00"), FormatBMP},
		{"ico", []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00}, FormatICO},
		{"tiff little endian", []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00}, FormatTIFF},
		{"tiff big endian", []byte{0x4D, 0x4D, 0x00, 0x2A, 0x00, 0x08}, FormatTIFF},

		{"empty", nil, FormatUnknown},
		{"single byte", []byte{0x89}, FormatUnknown},
		{"truncated png signature", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A}, FormatUnknown},
		{"riff but not webp", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), FormatUnknown},
		{"cursor resource", []byte{0x00, 0x00, 0x02, 0x00, 0x01, 0x00}, FormatUnknown},
		{"noise", []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x11, 0x22, 0x33}, FormatUnknown},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Sniff(c.data), "Sniff(%q)", c.data)
		})
	}
}

func TestSniffIsDeterministic(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 1, 2, 3}
	first := Sniff(data)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, Sniff(data))
	}
}

func TestFormatStringNames(t *testing.T) {
	assert.Equal(t, "png", FormatPNG.String())
	assert.Equal(t, "jpeg", FormatJPEG.String())
	assert.Equal(t, "webp", FormatWebP.String())
	assert.Equal(t, "unknown", FormatUnknown.String())
	assert.Equal(t, "unknown", Format(42).String())

	assert.True(t, FormatTIFF.Valid())
	assert.False(t, FormatUnknown.Valid())
	assert.False(t, Format(7).Valid())
}

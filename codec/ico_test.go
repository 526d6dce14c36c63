package codec

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastimage/go-fastimage/raster"
)

type icoFixtureEntry struct {
	widthByte, heightByte byte
	payload               []byte
}

// buildICO assembles an icon container around prepared payloads.
func buildICO(entries []icoFixtureEntry) []byte {
	var buf bytes.Buffer
	var header [icoDirSize]byte
	binary.LittleEndian.PutUint16(header[2:4], 1)
	binary.LittleEndian.PutUint16(header[4:6], uint16(len(entries)))
	buf.Write(header[:])

	offset := icoDirSize + icoEntrySize*len(entries)
	for _, e := range entries {
		var rec [icoEntrySize]byte
		rec[0] = e.widthByte
		rec[1] = e.heightByte
		binary.LittleEndian.PutUint16(rec[4:6], 1)
		binary.LittleEndian.PutUint16(rec[6:8], 32)
		binary.LittleEndian.PutUint32(rec[8:12], uint32(len(e.payload)))
		binary.LittleEndian.PutUint32(rec[12:16], uint32(offset))
		buf.Write(rec[:])
		offset += len(e.payload)
	}
	for _, e := range entries {
		buf.Write(e.payload)
	}
	return buf.Bytes()
}

// buildDIB assembles a headerless bitmap payload: info header, optional
// palette, bottom-up pixel rows, AND mask rows.
func buildDIB(width, height, bitCount int, palette, pixelRows, maskRows []byte) []byte {
	var buf bytes.Buffer
	var h [bmpHeaderSize]byte
	binary.LittleEndian.PutUint32(h[0:4], bmpHeaderSize)
	binary.LittleEndian.PutUint32(h[4:8], uint32(width))
	binary.LittleEndian.PutUint32(h[8:12], uint32(height*2))
	binary.LittleEndian.PutUint16(h[12:14], 1)
	binary.LittleEndian.PutUint16(h[14:16], uint16(bitCount))
	if len(palette) > 0 {
		binary.LittleEndian.PutUint32(h[32:36], uint32(len(palette)/4))
	}
	buf.Write(h[:])
	buf.Write(palette)
	buf.Write(pixelRows)
	buf.Write(maskRows)
	return buf.Bytes()
}

func TestICOEncodeDecodeRoundTrip(t *testing.T) {
	src := testRaster(19, 7, raster.RGBA8)

	data, err := Encode(src, FormatICO, EncodeOptions{})
	require.NoError(t, err)
	require.Equal(t, FormatICO, Sniff(data))

	decoded, sniffed, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, FormatICO, sniffed)
	require.Equal(t, raster.RGBA8, decoded.Color)
	require.Equal(t, 19, decoded.Width)
	require.Equal(t, 7, decoded.Height)
	assert.Equal(t, src.Pix, decoded.Pix, "png payload keeps icons pixel-exact")
}

func TestICOEncodeEnforcesSideLimit(t *testing.T) {
	_, err := Encode(testRaster(300, 10, raster.RGBA8), FormatICO, EncodeOptions{})
	assert.Error(t, err)
	_, err = Encode(testRaster(10, 257, raster.RGBA8), FormatICO, EncodeOptions{})
	assert.Error(t, err)

	// 256 is the maximum and is stored as a zero side byte.
	data, err := Encode(testRaster(256, 4, raster.Gray8), FormatICO, EncodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, byte(0), data[icoDirSize], "256 encodes as width byte zero")

	cfg, _, err := DecodeConfig(data)
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Width)
	assert.Equal(t, 4, cfg.Height)
}

func TestICODecodePicksLargestEntry(t *testing.T) {
	small := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	large := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range large.Pix {
		large.Pix[i] = 0x77
	}

	var smallPNG, largePNG bytes.Buffer
	require.NoError(t, png.Encode(&smallPNG, small))
	require.NoError(t, png.Encode(&largePNG, large))

	data := buildICO([]icoFixtureEntry{
		{widthByte: 2, heightByte: 2, payload: smallPNG.Bytes()},
		{widthByte: 4, heightByte: 4, payload: largePNG.Bytes()},
	})
	require.Equal(t, FormatICO, Sniff(data))

	decoded, _, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Width)
	assert.Equal(t, 4, decoded.Height)
	assert.Equal(t, uint32(0x77), decoded.Sample(0, 0, 0))

	cfg, _, err := DecodeConfig(data)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
}

func TestICODecodesThirtyTwoBitBitmap(t *testing.T) {
	// 2x2, stored bottom-up as BGRA.
	pixelRows := []byte{
		9, 8, 7, 64, 12, 11, 10, 255, // image row 1
		3, 2, 1, 255, 6, 5, 4, 128, // image row 0
	}
	maskRows := make([]byte, 8) // ignored: the alpha channel is in use
	dib := buildDIB(2, 2, 32, nil, pixelRows, maskRows)
	data := buildICO([]icoFixtureEntry{{widthByte: 2, heightByte: 2, payload: dib}})

	decoded, _, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, raster.RGBA8, decoded.Color)
	assert.Equal(t, []byte{1, 2, 3, 255}, decoded.Pix[:4])
	assert.Equal(t, uint32(128), decoded.Sample(1, 0, 3))
	assert.Equal(t, uint32(64), decoded.Sample(0, 1, 3))
	assert.Equal(t, uint32(7), decoded.Sample(0, 1, 0))
}

func TestICODecodesTwentyFourBitBitmapWithMask(t *testing.T) {
	// 2x1: left pixel opaque, right pixel cut out by the AND mask.
	pixelRows := []byte{120, 110, 100, 60, 50, 40, 0, 0} // padded to 8 bytes
	maskRows := []byte{0x40, 0, 0, 0}                    // bit set for x=1
	dib := buildDIB(2, 1, 24, nil, pixelRows, maskRows)
	data := buildICO([]icoFixtureEntry{{widthByte: 2, heightByte: 1, payload: dib}})

	decoded, _, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{100, 110, 120, 255}, decoded.Pix[:4])
	assert.Equal(t, uint32(0), decoded.Sample(1, 0, 3), "masked pixel is transparent")
	assert.Equal(t, uint32(40), decoded.Sample(1, 0, 0), "color survives under the mask")
}

func TestICODecodesPalettedBitmap(t *testing.T) {
	palette := []byte{
		30, 20, 10, 0, // index 0, BGRX
		60, 50, 40, 0, // index 1
	}
	pixelRows := []byte{0, 1, 0, 0} // two indexes plus row padding
	maskRows := []byte{0, 0, 0, 0}
	dib := buildDIB(2, 1, 8, palette, pixelRows, maskRows)
	data := buildICO([]icoFixtureEntry{{widthByte: 2, heightByte: 1, payload: dib}})

	decoded, _, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30, 255}, decoded.Pix[:4])
	assert.Equal(t, []byte{40, 50, 60, 255}, decoded.Pix[4:8])
}

func TestICODecodeRejectsMalformedFiles(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"truncated directory", []byte{0x00, 0x00, 0x01, 0x00}},
		{"cursor resource type", []byte{0x00, 0x00, 0x02, 0x00, 0x01, 0x00, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"empty directory", []byte{0x00, 0x00, 0x01, 0x00, 0x00, 0x00}},
		{"missing entries", []byte{0x00, 0x00, 0x01, 0x00, 0x02, 0x00, 1, 2, 3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := decodeICO(c.data)
			assert.Error(t, err)
		})
	}

	t.Run("entry points outside the file", func(t *testing.T) {
		data := buildICO([]icoFixtureEntry{{widthByte: 1, heightByte: 1, payload: []byte{1, 2, 3, 4}}})
		// Inflate the recorded size past the end of the file.
		binary.LittleEndian.PutUint32(data[icoDirSize+8:icoDirSize+12], 4096)
		_, err := decodeICO(data)
		assert.Error(t, err)
	})

	t.Run("truncated pixel data", func(t *testing.T) {
		dib := buildDIB(2, 2, 32, nil, []byte{1, 2, 3}, nil)
		data := buildICO([]icoFixtureEntry{{widthByte: 2, heightByte: 2, payload: dib}})
		_, err := decodeICO(data)
		assert.Error(t, err)
	})

	t.Run("unsupported bit depth", func(t *testing.T) {
		dib := buildDIB(2, 1, 4, nil, []byte{0, 0, 0, 0}, nil)
		data := buildICO([]icoFixtureEntry{{widthByte: 2, heightByte: 1, payload: dib}})
		_, err := decodeICO(data)
		assert.Error(t, err)
	})

	t.Run("compressed bitmap", func(t *testing.T) {
		dib := buildDIB(2, 1, 32, nil, make([]byte, 8), nil)
		binary.LittleEndian.PutUint32(dib[16:20], 1) // BI_RLE8
		data := buildICO([]icoFixtureEntry{{widthByte: 2, heightByte: 1, payload: dib}})
		_, err := decodeICO(data)
		assert.Error(t, err)
	})
}

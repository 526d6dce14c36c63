package codec

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/pkg/errors"

	"github.com/fastimage/go-fastimage/raster"
)

// Icon container layout: a 6-byte ICONDIR (reserved, resource type, image
// count) followed by 16-byte ICONDIRENTRY records and the image payloads.
// Payloads are either PNG streams or headerless BMP bitmaps whose stored
// height covers both the color plane and the 1-bit transparency mask.

const (
	icoDirSize    = 6
	icoEntrySize  = 16
	bmpHeaderSize = 40
)

type icoEntry struct {
	width, height int
	offset, size  uint32
}

// decodeICO decodes the largest image in the icon directory.
func decodeICO(data []byte) (image.Image, error) {
	entries, err := parseICODir(data)
	if err != nil {
		return nil, err
	}
	entry := largestICOEntry(entries)

	payload := data[entry.offset : entry.offset+entry.size]
	if bytes.HasPrefix(payload, pngMagic) {
		return png.Decode(bytes.NewReader(payload))
	}
	return decodeICOBitmap(payload)
}

// decodeICOConfig reads geometry from the directory alone.
func decodeICOConfig(data []byte) (image.Config, error) {
	entries, err := parseICODir(data)
	if err != nil {
		return image.Config{}, err
	}
	entry := largestICOEntry(entries)
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      entry.width,
		Height:     entry.height,
	}, nil
}

func parseICODir(data []byte) ([]icoEntry, error) {
	if len(data) < icoDirSize {
		return nil, errors.New("codec: ico: directory truncated")
	}
	if binary.LittleEndian.Uint16(data[0:2]) != 0 || binary.LittleEndian.Uint16(data[2:4]) != 1 {
		return nil, errors.New("codec: ico: not an icon resource")
	}
	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if count == 0 {
		return nil, errors.New("codec: ico: empty directory")
	}
	if len(data) < icoDirSize+count*icoEntrySize {
		return nil, errors.New("codec: ico: directory truncated")
	}

	entries := make([]icoEntry, 0, count)
	for i := 0; i < count; i++ {
		e := data[icoDirSize+i*icoEntrySize:]

		// A zero side byte means 256 pixels.
		width, height := int(e[0]), int(e[1])
		if width == 0 {
			width = 256
		}
		if height == 0 {
			height = 256
		}

		size := binary.LittleEndian.Uint32(e[8:12])
		offset := binary.LittleEndian.Uint32(e[12:16])
		if uint64(offset)+uint64(size) > uint64(len(data)) {
			return nil, errors.New("codec: ico: entry points outside the file")
		}
		entries = append(entries, icoEntry{width: width, height: height, offset: offset, size: size})
	}
	return entries, nil
}

func largestICOEntry(entries []icoEntry) icoEntry {
	best := entries[0]
	for _, e := range entries[1:] {
		if e.width*e.height > best.width*best.height {
			best = e
		}
	}
	return best
}

// decodeICOBitmap decodes a headerless BMP payload: a 40-byte info header,
// an optional palette, the bottom-up color plane, then the AND mask.
func decodeICOBitmap(dib []byte) (image.Image, error) {
	if len(dib) < bmpHeaderSize {
		return nil, errors.New("codec: ico: bitmap header truncated")
	}
	if binary.LittleEndian.Uint32(dib[0:4]) != bmpHeaderSize {
		return nil, errors.New("codec: ico: unsupported bitmap header")
	}
	width := int(int32(binary.LittleEndian.Uint32(dib[4:8])))
	height := int(int32(binary.LittleEndian.Uint32(dib[8:12]))) / 2
	bitCount := int(binary.LittleEndian.Uint16(dib[14:16]))
	if compression := binary.LittleEndian.Uint32(dib[16:20]); compression != 0 {
		return nil, errors.Errorf("codec: ico: unsupported bitmap compression %d", compression)
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New("codec: ico: invalid bitmap dimensions")
	}
	switch bitCount {
	case 32, 24, 8:
	default:
		return nil, errors.Errorf("codec: ico: unsupported bit depth %d", bitCount)
	}

	var palette []byte
	dataOff := bmpHeaderSize
	if bitCount <= 8 {
		n := int(binary.LittleEndian.Uint32(dib[32:36]))
		if n == 0 {
			n = 1 << bitCount
		}
		if len(dib) < dataOff+n*4 {
			return nil, errors.New("codec: ico: palette truncated")
		}
		palette = dib[dataOff : dataOff+n*4]
		dataOff += n * 4
	}

	// Rows are padded to 32-bit boundaries.
	xorStride := (width*bitCount + 31) / 32 * 4
	andStride := (width + 31) / 32 * 4
	if len(dib) < dataOff+xorStride*height {
		return nil, errors.New("codec: ico: pixel data truncated")
	}
	xor := dib[dataOff:]
	var mask []byte
	if rest := xor[xorStride*height:]; len(rest) >= andStride*height {
		mask = rest
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	alphaUsed := false

	for y := 0; y < height; y++ {
		row := xor[(height-1-y)*xorStride:]
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < width; x++ {
			var r, g, b, a uint8
			switch bitCount {
			case 32:
				p := row[x*4 : x*4+4]
				b, g, r, a = p[0], p[1], p[2], p[3]
				if a != 0 {
					alphaUsed = true
				}
			case 24:
				p := row[x*3 : x*3+3]
				b, g, r, a = p[0], p[1], p[2], 0xFF
			case 8:
				idx := int(row[x]) * 4
				if idx+4 > len(palette) {
					return nil, errors.New("codec: ico: palette index out of range")
				}
				b, g, r, a = palette[idx], palette[idx+1], palette[idx+2], 0xFF
			}
			out[x*4] = r
			out[x*4+1] = g
			out[x*4+2] = b
			out[x*4+3] = a
		}
	}

	// The mask supplies transparency whenever the color plane carries no
	// alpha of its own: always for 24- and 8-bit entries, and for 32-bit
	// entries whose alpha channel is entirely zero.
	if mask != nil && (bitCount != 32 || !alphaUsed) {
		for y := 0; y < height; y++ {
			maskRow := mask[(height-1-y)*andStride:]
			out := dst.Pix[y*dst.Stride:]
			for x := 0; x < width; x++ {
				if maskRow[x/8]>>(7-x%8)&1 == 1 {
					out[x*4+3] = 0
				} else {
					out[x*4+3] = 0xFF
				}
			}
		}
	} else if bitCount == 32 && !alphaUsed {
		// Malformed file: zeroed alpha and no mask. Treat as opaque.
		for i := 3; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = 0xFF
		}
	}

	return dst, nil
}

// encodeICO writes a single-image icon with a PNG-compressed payload, the
// form modern toolchains emit. Icon sides cap at 256 pixels.
func encodeICO(w io.Writer, m *raster.Image) error {
	if m.Width > 256 || m.Height > 256 {
		return errors.Errorf("codec: ico: %dx%d exceeds the 256 pixel side limit", m.Width, m.Height)
	}

	var payload bytes.Buffer
	if err := png.Encode(&payload, raster.ToImage(m)); err != nil {
		return errors.Wrap(err, "codec: ico: compress entry")
	}

	sideByte := func(n int) byte {
		if n >= 256 {
			return 0
		}
		return byte(n)
	}

	var header [icoDirSize + icoEntrySize]byte
	binary.LittleEndian.PutUint16(header[2:4], 1) // resource type: icon
	binary.LittleEndian.PutUint16(header[4:6], 1) // image count
	header[6] = sideByte(m.Width)
	header[7] = sideByte(m.Height)
	binary.LittleEndian.PutUint16(header[10:12], 1)  // color planes
	binary.LittleEndian.PutUint16(header[12:14], 32) // bit depth hint
	binary.LittleEndian.PutUint32(header[14:18], uint32(payload.Len()))
	binary.LittleEndian.PutUint32(header[18:22], uint32(len(header)))

	if _, err := w.Write(header[:]); err != nil {
		return errors.Wrap(err, "codec: ico: write directory")
	}
	_, err := w.Write(payload.Bytes())
	return errors.Wrap(err, "codec: ico: write entry")
}

package codec

import (
	"bytes"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/fastimage/go-fastimage/raster"
)

// Default qualities for the lossy encoders.
const (
	DefaultJPEGQuality = 85
	DefaultWebPQuality = 85
)

// EncodeOptions tunes the per-format encoders. The zero value selects the
// defaults, so callers can pass EncodeOptions{} without thinking about it.
type EncodeOptions struct {
	// JPEGQuality on the encoder's 1..100 scale; 0 selects DefaultJPEGQuality.
	JPEGQuality int
	// WebPQuality on a 0..100 scale; 0 selects DefaultWebPQuality.
	WebPQuality float32
	// PNGCompression maps directly onto the standard encoder's levels; the
	// zero value is the encoder's default level.
	PNGCompression png.CompressionLevel
	// GIFNumColors is the palette size, 1..256; 0 selects 256.
	GIFNumColors int
}

// Encode serializes the raster into the target container format.
//
// Formats that cannot represent the source layout get a lossy, documented
// coercion instead of an error: JPEG drops alpha and reduces to 8 bits per
// channel, WebP/BMP/ICO reduce to 8 bits and keep alpha, GIF reduces to 8
// bits and quantizes onto an opaque palette, PNG and TIFF represent every
// layout as-is.
//
// Arguments:
// - m: The raster to serialize.
// - format: The target container format.
// - opts: Encoder tuning; EncodeOptions{} selects defaults.
//
// Returns:
// - The encoded file bytes.
// - An error if the format is unknown or the encoder rejects the image.
func Encode(m *raster.Image, format Format, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case FormatPNG:
		enc := &png.Encoder{CompressionLevel: opts.PNGCompression}
		err = enc.Encode(&buf, raster.ToImage(m))
	case FormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		flat := raster.To8Bit(raster.StripAlpha(m))
		err = jpeg.Encode(&buf, raster.ToImage(flat), &jpeg.Options{Quality: quality})
	case FormatGIF:
		colors := opts.GIFNumColors
		if colors <= 0 || colors > 256 {
			colors = 256
		}
		err = gif.Encode(&buf, raster.ToImage(raster.To8Bit(m)), &gif.Options{NumColors: colors})
	case FormatWebP:
		quality := opts.WebPQuality
		if quality <= 0 {
			quality = DefaultWebPQuality
		}
		err = webp.Encode(&buf, raster.ToImage(raster.To8Bit(m)), &webp.Options{Quality: quality})
	case FormatBMP:
		err = bmp.Encode(&buf, raster.ToImage(raster.To8Bit(m)))
	case FormatICO:
		err = encodeICO(&buf, raster.To8Bit(m))
	case FormatTIFF:
		err = tiff.Encode(&buf, raster.ToImage(m), &tiff.Options{Compression: tiff.Deflate})
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, errors.Wrapf(err, "codec: encode %s", format)
	}
	return buf.Bytes(), nil
}

package codec

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/fastimage/go-fastimage/raster"
)

// Decode sniffs the container format and decodes the buffer into the engine
// representation. Returns ErrUnknownFormat when no signature matches.
func Decode(data []byte) (*raster.Image, Format, error) {
	format := Sniff(data)
	if format == FormatUnknown {
		return nil, FormatUnknown, ErrUnknownFormat
	}
	m, err := DecodeAs(data, format)
	if err != nil {
		return nil, format, err
	}
	return m, format, nil
}

// DecodeAs decodes the buffer assuming the given container format, without
// sniffing. Bytes that are not valid for that format fail with a decode
// error.
func DecodeAs(data []byte, format Format) (*raster.Image, error) {
	var (
		img image.Image
		err error
	)
	switch format {
	case FormatPNG:
		img, err = png.Decode(bytes.NewReader(data))
	case FormatJPEG:
		img, err = jpeg.Decode(bytes.NewReader(data))
	case FormatGIF:
		img, err = gif.Decode(bytes.NewReader(data))
	case FormatWebP:
		img, err = webp.Decode(bytes.NewReader(data))
	case FormatBMP:
		img, err = bmp.Decode(bytes.NewReader(data))
	case FormatICO:
		img, err = decodeICO(data)
	case FormatTIFF:
		img, err = tiff.Decode(bytes.NewReader(data))
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, errors.Wrapf(err, "codec: decode %s", format)
	}
	return raster.FromImage(img), nil
}

// DecodeConfig sniffs the format and reads the container header, returning
// pixel geometry without decoding the pixel data. Used to reject oversized
// inputs before committing memory to them.
func DecodeConfig(data []byte) (image.Config, Format, error) {
	format := Sniff(data)

	var (
		cfg image.Config
		err error
	)
	switch format {
	case FormatPNG:
		cfg, err = png.DecodeConfig(bytes.NewReader(data))
	case FormatJPEG:
		cfg, err = jpeg.DecodeConfig(bytes.NewReader(data))
	case FormatGIF:
		cfg, err = gif.DecodeConfig(bytes.NewReader(data))
	case FormatWebP:
		cfg, err = webp.DecodeConfig(bytes.NewReader(data))
	case FormatBMP:
		cfg, err = bmp.DecodeConfig(bytes.NewReader(data))
	case FormatICO:
		cfg, err = decodeICOConfig(data)
	case FormatTIFF:
		cfg, err = tiff.DecodeConfig(bytes.NewReader(data))
	default:
		return image.Config{}, FormatUnknown, ErrUnknownFormat
	}
	if err != nil {
		return image.Config{}, format, errors.Wrapf(err, "codec: read %s header", format)
	}
	return cfg, format, nil
}

// Package codec - container format detection, decoding, and encoding on top
// of the raster representation.
package codec

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Format represents supported container formats. The numeric values are part
// of the binary interface and must not be reordered.
type Format int32

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatGIF
	FormatWebP
	FormatBMP
	FormatICO
	FormatTIFF
)

// FormatUnknown is the sentinel for undetected formats. It never crosses the
// binary interface; callers receive an error code instead.
const FormatUnknown Format = -1

// ErrUnknownFormat reports bytes that match no supported container signature.
var ErrUnknownFormat = errors.New("codec: unrecognized image format")

// Valid reports whether f names a supported container format.
func (f Format) Valid() bool {
	return f >= FormatPNG && f <= FormatTIFF
}

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatWebP:
		return "webp"
	case FormatBMP:
		return "bmp"
	case FormatICO:
		return "ico"
	case FormatTIFF:
		return "tiff"
	}
	return "unknown"
}

// ParseFormat resolves a format name or file extension, accepting the common
// aliases ("jpg", "tif").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "webp":
		return FormatWebP, nil
	case "bmp":
		return FormatBMP, nil
	case "ico":
		return FormatICO, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	}
	return FormatUnknown, errors.Errorf("codec: unknown format %q", name)
}

// FormatFromPath infers the container format from a file name's extension,
// returning FormatUnknown when the extension names no supported format.
func FormatFromPath(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return FormatUnknown
	}
	format, err := ParseFormat(ext)
	if err != nil {
		return FormatUnknown
	}
	return format
}

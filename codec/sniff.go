package codec

import "bytes"

// Container signatures, checked against the buffer prefix.
var (
	pngMagic    = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	jpegMagic   = []byte{0xFF, 0xD8, 0xFF}
	gif87Magic  = []byte("GIF87a")
	gif89Magic  = []byte("GIF89a")
	riffMagic   = []byte("RIFF")
	webpFourCC  = []byte("WEBP")
	bmpMagic    = []byte("BM")
	icoMagic    = []byte{0x00, 0x00, 0x01, 0x00}
	tiffLEMagic = []byte{0x49, 0x49, 0x2A, 0x00}
	tiffBEMagic = []byte{0x4D, 0x4D, 0x00, 0x2A}
)

// Sniff identifies the container format from a buffer prefix without
// decoding anything. Deterministic; buffers shorter than a signature simply
// do not match it, and unmatched bytes yield FormatUnknown.
func Sniff(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG
	case bytes.HasPrefix(data, gif87Magic), bytes.HasPrefix(data, gif89Magic):
		return FormatGIF
	case isWebP(data):
		return FormatWebP
	case bytes.HasPrefix(data, bmpMagic):
		return FormatBMP
	case bytes.HasPrefix(data, icoMagic):
		return FormatICO
	case bytes.HasPrefix(data, tiffLEMagic), bytes.HasPrefix(data, tiffBEMagic):
		return FormatTIFF
	}
	return FormatUnknown
}

// isWebP checks the RIFF wrapper plus the WEBP chunk type at offset 8.
func isWebP(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	return bytes.HasPrefix(data, riffMagic) && bytes.Equal(data[8:12], webpFourCC)
}

package engine

import (
	"os"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/fastimage/go-fastimage/codec"
	"github.com/fastimage/go-fastimage/raster"
	"github.com/fastimage/go-fastimage/raster/kernels"
	"github.com/fastimage/go-fastimage/util"
)

// Load reads and decodes an image file into a new handle.
//
// Arguments:
// - path: Filesystem path of the image. The format is detected from the
//   file contents, not the extension.
//
// Returns:
// - The handle of the decoded image, or the null handle on failure.
// - InvalidPath for an empty path or a file that does not exist, IOFailed
//   for any other read failure, OutOfMemory when the file or its pixel area
//   exceeds the engine bounds, UnsupportedFormat when no codec recognizes
//   the data, and DecodeFailed when a recognized stream is corrupt.
func (e *Engine) Load(path string) (Handle, Code) {
	if path == "" {
		return 0, e.report(InvalidPath)
	}
	data, err := util.ReadFileCapped(path, e.opts.MaxFileBytes)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTooLarge):
			return 0, e.report(OutOfMemory)
		case errors.Is(err, os.ErrNotExist):
			return 0, e.report(InvalidPath)
		}
		return 0, e.report(IOFailed)
	}
	return e.decode(data, codec.FormatUnknown)
}

// LoadFromMemory decodes an in-memory encoded image, detecting its format
// from the leading bytes.
func (e *Engine) LoadFromMemory(data []byte) (Handle, Code) {
	return e.decode(data, codec.FormatUnknown)
}

// LoadFromMemoryWithFormat decodes an in-memory image as the given format,
// bypassing detection. A format value outside the known set reports
// InvalidArgument.
func (e *Engine) LoadFromMemoryWithFormat(data []byte, format codec.Format) (Handle, Code) {
	if !format.Valid() {
		return 0, e.report(InvalidArgument)
	}
	return e.decode(data, format)
}

// decode turns encoded bytes into an issued handle. FormatUnknown selects
// content detection; any other value forces that codec.
func (e *Engine) decode(data []byte, format codec.Format) (Handle, Code) {
	// Check declared geometry against the pixel bound before committing to
	// a full decode. Detection failures fall through to the decoder, which
	// reports them with the right code.
	if max := e.maxPixels(); max > 0 {
		if cfg, _, err := codec.DecodeConfig(data); err == nil {
			if int64(cfg.Width)*int64(cfg.Height) > max {
				return 0, e.report(OutOfMemory)
			}
		}
	}

	var (
		img *raster.Image
		err error
	)
	if format == codec.FormatUnknown {
		img, _, err = codec.Decode(data)
	} else {
		img, err = codec.DecodeAs(data, format)
	}
	if err != nil {
		if errors.Is(err, codec.ErrUnknownFormat) {
			return 0, e.report(UnsupportedFormat)
		}
		return 0, e.report(DecodeFailed)
	}
	return e.issue(img), e.report(Success)
}

// GuessFormat detects the container format of encoded bytes without
// decoding them. Empty input reports InvalidArgument; unrecognized data
// reports UnsupportedFormat. Both return FormatUnknown.
func (e *Engine) GuessFormat(data []byte) (codec.Format, Code) {
	if len(data) == 0 {
		return codec.FormatUnknown, e.report(InvalidArgument)
	}
	format := codec.Sniff(data)
	if format == codec.FormatUnknown {
		return codec.FormatUnknown, e.report(UnsupportedFormat)
	}
	return format, e.report(Success)
}

// Metadata reports the dimensions and channel layout of the image behind h.
func (e *Engine) Metadata(h Handle) (Metadata, Code) {
	img, ok := e.lookup(h)
	if !ok {
		return Metadata{}, e.report(InvalidHandle)
	}
	return metadataFor(img), e.report(Success)
}

// derive resolves h and issues a new handle for fn(src). The source image is
// never modified.
func (e *Engine) derive(h Handle, fn func(*raster.Image) *raster.Image) (Handle, Code) {
	src, ok := e.lookup(h)
	if !ok {
		return 0, e.report(InvalidHandle)
	}
	return e.issue(fn(src)), e.report(Success)
}

// checkTarget applies the engine pixel bound to a derived image's target
// dimensions before any storage is allocated, so an absurd resize reports
// OutOfMemory instead of faulting in the allocator. The same bound gates the
// decode path.
func (e *Engine) checkTarget(width, height int) Code {
	max := e.maxPixels()
	if max <= 0 {
		return Success
	}
	w, h := int64(width), int64(height)
	if w > max || h > max/w {
		return OutOfMemory
	}
	return Success
}

// Resize scales the image to fit within width x height while preserving its
// aspect ratio. The result is at most the requested size along each axis and
// matches it exactly along at least one. Zero dimensions and invalid filters
// report InvalidArgument; targets past the engine pixel bound report
// OutOfMemory.
func (e *Engine) Resize(h Handle, width, height uint32, filter kernels.Filter) (Handle, Code) {
	if width == 0 || height == 0 || !filter.Valid() {
		return 0, e.report(InvalidArgument)
	}
	src, ok := e.lookup(h)
	if !ok {
		return 0, e.report(InvalidHandle)
	}
	w, ht := raster.FitDimensions(src.Width, src.Height, int(width), int(height))
	if c := e.checkTarget(w, ht); c != Success {
		return 0, e.report(c)
	}
	return e.issue(raster.Resize(src, w, ht, filter)), e.report(Success)
}

// ResizeExact scales the image to exactly width x height, ignoring the
// source aspect ratio. Targets past the engine pixel bound report
// OutOfMemory.
func (e *Engine) ResizeExact(h Handle, width, height uint32, filter kernels.Filter) (Handle, Code) {
	if width == 0 || height == 0 || !filter.Valid() {
		return 0, e.report(InvalidArgument)
	}
	src, ok := e.lookup(h)
	if !ok {
		return 0, e.report(InvalidHandle)
	}
	if c := e.checkTarget(int(width), int(height)); c != Success {
		return 0, e.report(c)
	}
	return e.issue(raster.Resize(src, int(width), int(height), filter)), e.report(Success)
}

// ResizeToFit scales the image to fit within width x height preserving the
// aspect ratio. It is the bounded counterpart of ResizeExact and shares
// Resize's semantics.
func (e *Engine) ResizeToFit(h Handle, width, height uint32, filter kernels.Filter) (Handle, Code) {
	return e.Resize(h, width, height, filter)
}

// ResizeToFill scales the image to cover width x height completely, then
// crops the overflow evenly from both sides so the result is exactly the
// requested size.
func (e *Engine) ResizeToFill(h Handle, width, height uint32, filter kernels.Filter) (Handle, Code) {
	if width == 0 || height == 0 || !filter.Valid() {
		return 0, e.report(InvalidArgument)
	}
	src, ok := e.lookup(h)
	if !ok {
		return 0, e.report(InvalidHandle)
	}
	w, ht := raster.FillDimensions(src.Width, src.Height, int(width), int(height))
	if c := e.checkTarget(w, ht); c != Success {
		return 0, e.report(c)
	}
	scaled := raster.Resize(src, w, ht, filter)
	out, err := raster.Crop(scaled, (w-int(width))/2, (ht-int(height))/2, int(width), int(height))
	if err != nil {
		return 0, e.report(Unknown)
	}
	return e.issue(out), e.report(Success)
}

// Crop extracts the rectangle at (x, y) with the given size into a new
// handle. Rectangles that are empty or extend past the source report
// InvalidArgument.
func (e *Engine) Crop(h Handle, x, y, width, height uint32) (Handle, Code) {
	src, ok := e.lookup(h)
	if !ok {
		return 0, e.report(InvalidHandle)
	}
	out, err := raster.Crop(src, int(x), int(y), int(width), int(height))
	if err != nil {
		return 0, e.report(InvalidArgument)
	}
	return e.issue(out), e.report(Success)
}

// Rotate90 returns a new image turned a quarter turn clockwise.
func (e *Engine) Rotate90(h Handle) (Handle, Code) {
	return e.derive(h, raster.Rotate90)
}

// Rotate180 returns a new image turned a half turn.
func (e *Engine) Rotate180(h Handle) (Handle, Code) {
	return e.derive(h, raster.Rotate180)
}

// Rotate270 returns a new image turned a quarter turn counter-clockwise.
func (e *Engine) Rotate270(h Handle) (Handle, Code) {
	return e.derive(h, raster.Rotate270)
}

// FlipHorizontal returns a new image mirrored left to right.
func (e *Engine) FlipHorizontal(h Handle) (Handle, Code) {
	return e.derive(h, raster.FlipHorizontal)
}

// FlipVertical returns a new image mirrored top to bottom.
func (e *Engine) FlipVertical(h Handle) (Handle, Code) {
	return e.derive(h, raster.FlipVertical)
}

// Blur returns a new image softened by a Gaussian kernel. Sigma at or below
// zero degrades to a plain copy; NaN and infinite sigmas report
// InvalidArgument.
func (e *Engine) Blur(h Handle, sigma float32) (Handle, Code) {
	if math32.IsNaN(sigma) || math32.IsInf(sigma, 0) {
		return 0, e.report(InvalidArgument)
	}
	return e.derive(h, func(src *raster.Image) *raster.Image {
		return raster.Blur(src, sigma)
	})
}

// Brightness returns a new image with delta added to every color sample in
// the channel's native scale, clamped at the range bounds; alpha is
// untouched.
func (e *Engine) Brightness(h Handle, delta int32) (Handle, Code) {
	return e.derive(h, func(src *raster.Image) *raster.Image {
		return raster.Brightness(src, delta)
	})
}

// Contrast returns a new image with color samples stretched around the
// midpoint by factor. A factor of 1 is the identity; negative and NaN
// factors report InvalidArgument.
func (e *Engine) Contrast(h Handle, factor float32) (Handle, Code) {
	if math32.IsNaN(factor) || factor < 0 {
		return 0, e.report(InvalidArgument)
	}
	return e.derive(h, func(src *raster.Image) *raster.Image {
		return raster.Contrast(src, factor)
	})
}

// Grayscale returns a new single-channel image weighted for perceived
// luminance. Alpha is dropped; sample depth is preserved.
func (e *Engine) Grayscale(h Handle) (Handle, Code) {
	return e.derive(h, raster.Grayscale)
}

// Invert flips every color sample of the image in place. It is the only
// transform that modifies the image behind its handle instead of deriving a
// new one.
func (e *Engine) Invert(h Handle) Code {
	img, ok := e.lookup(h)
	if !ok {
		return e.report(InvalidHandle)
	}
	raster.Invert(img)
	return e.report(Success)
}

// Encode serializes the image behind h into the given format.
//
// Arguments:
// - h: The image to encode.
// - format: The target container format.
// - opts: Per-format tuning; the zero value selects the documented defaults.
//
// Returns:
// - A buffer handle owning the encoded bytes, released with FreeBuffer.
// - InvalidHandle for a dead handle, InvalidArgument for a format value
//   outside the known set, and EncodeFailed when the codec rejects the
//   image.
func (e *Engine) Encode(h Handle, format codec.Format, opts codec.EncodeOptions) (Buffer, Code) {
	img, ok := e.lookup(h)
	if !ok {
		return 0, e.report(InvalidHandle)
	}
	data, err := codec.Encode(img, format, opts)
	if err != nil {
		if errors.Is(err, codec.ErrUnknownFormat) {
			return 0, e.report(InvalidArgument)
		}
		return 0, e.report(EncodeFailed)
	}
	return e.issueBuffer(data), e.report(Success)
}

// Save encodes the image behind h and writes it to path atomically. The
// format comes from the path extension; an extension no codec claims
// reports UnsupportedFormat.
func (e *Engine) Save(h Handle, path string) Code {
	img, ok := e.lookup(h)
	if !ok {
		return e.report(InvalidHandle)
	}
	if path == "" {
		return e.report(InvalidPath)
	}
	format := codec.FormatFromPath(path)
	if format == codec.FormatUnknown {
		return e.report(UnsupportedFormat)
	}
	data, err := codec.Encode(img, format, codec.EncodeOptions{})
	if err != nil {
		return e.report(EncodeFailed)
	}
	if err := util.WriteFileAtomic(path, data, 0o644); err != nil {
		return e.report(IOFailed)
	}
	return e.report(Success)
}

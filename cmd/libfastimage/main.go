// Command libfastimage exports the image engine as a C shared library.
//
// Build with:
//
//	go build -buildmode=c-shared -o libfastimage.so ./cmd/libfastimage
//
// Handles cross the boundary as opaque 64-bit ids; zero is the null handle.
// Every function records its status, so callers that only receive a null
// handle can recover the cause through fast_image_last_error.
package main

/*
#include <stdint.h>
#include <stdlib.h>

typedef struct {
	uint32_t width;
	uint32_t height;
	uint8_t  color_type;
} fast_image_metadata_t;
*/
import "C"

import (
	"unsafe"

	"github.com/fastimage/go-fastimage/codec"
	"github.com/fastimage/go-fastimage/engine"
	"github.com/fastimage/go-fastimage/raster/kernels"
)

func eng() *engine.Engine {
	return engine.Default()
}

// view wraps caller memory as a byte slice. The slice is only valid for the
// duration of the exported call; nothing in the engine retains it.
func view(data *C.uint8_t, n C.size_t) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(data)), int(n))
}

// fast_image_last_error returns the status code recorded by the most recent
// call, including successes.
//
//export fast_image_last_error
func fast_image_last_error() C.uint32_t {
	return C.uint32_t(eng().LastError())
}

// fast_image_last_error_message returns a readable description of the last
// recorded status. Free the returned string with fast_image_free_string.
//
//export fast_image_last_error_message
func fast_image_last_error_message() *C.char {
	return C.CString(eng().LastError().String())
}

// fast_image_free_string frees a string allocated by this library. Null is
// ignored.
//
//export fast_image_free_string
func fast_image_free_string(ptr *C.char) {
	if ptr != nil {
		C.free(unsafe.Pointer(ptr))
	}
}

// fast_image_free_buffer frees an encoded buffer returned by
// fast_image_encode. Null pointers and zero lengths are ignored.
//
//export fast_image_free_buffer
func fast_image_free_buffer(ptr *C.uint8_t, len C.size_t) {
	if ptr != nil && len > 0 {
		C.free(unsafe.Pointer(ptr))
	}
}

// fast_image_free releases the image behind a handle. Freeing a dead or null
// handle returns invalid handle instead of corrupting a reused slot.
//
//export fast_image_free
func fast_image_free(handle C.uint64_t) C.uint32_t {
	return C.uint32_t(eng().Free(engine.Handle(handle)))
}

// fast_image_load decodes an image file. It returns the null handle on
// failure.
//
//export fast_image_load
func fast_image_load(path *C.char) C.uint64_t {
	if path == nil {
		eng().Reject(engine.InvalidPath)
		return 0
	}
	h, _ := eng().Load(C.GoString(path))
	return C.uint64_t(h)
}

// fast_image_load_from_memory decodes an encoded image held in caller
// memory, detecting the format from its leading bytes.
//
//export fast_image_load_from_memory
func fast_image_load_from_memory(data *C.uint8_t, len C.size_t) C.uint64_t {
	if data == nil || len == 0 {
		eng().Reject(engine.InvalidHandle)
		return 0
	}
	h, _ := eng().LoadFromMemory(view(data, len))
	return C.uint64_t(h)
}

// fast_image_load_from_memory_with_format decodes caller memory as a
// specific format, bypassing detection.
//
//export fast_image_load_from_memory_with_format
func fast_image_load_from_memory_with_format(data *C.uint8_t, len C.size_t, format C.uint32_t) C.uint64_t {
	if data == nil || len == 0 {
		eng().Reject(engine.InvalidHandle)
		return 0
	}
	h, _ := eng().LoadFromMemoryWithFormat(view(data, len), codec.Format(int32(format)))
	return C.uint64_t(h)
}

// fast_image_guess_format detects the container format of encoded bytes and
// writes its enum value to out_format.
//
//export fast_image_guess_format
func fast_image_guess_format(data *C.uint8_t, len C.size_t, outFormat *C.uint32_t) C.uint32_t {
	if data == nil || len == 0 || outFormat == nil {
		return C.uint32_t(eng().Reject(engine.InvalidHandle))
	}
	format, code := eng().GuessFormat(view(data, len))
	if code == engine.Success {
		*outFormat = C.uint32_t(format)
	}
	return C.uint32_t(code)
}

// fast_image_save encodes the image in the format implied by the path
// extension and writes it to disk.
//
//export fast_image_save
func fast_image_save(handle C.uint64_t, path *C.char) C.uint32_t {
	if path == nil {
		return C.uint32_t(eng().Reject(engine.InvalidHandle))
	}
	return C.uint32_t(eng().Save(engine.Handle(handle), C.GoString(path)))
}

// fast_image_encode serializes the image into format. On success *out_data
// receives a malloc'd buffer of *out_len bytes owned by the caller; release
// it with fast_image_free_buffer.
//
//export fast_image_encode
func fast_image_encode(handle C.uint64_t, format C.uint32_t, outData **C.uint8_t, outLen *C.size_t) C.uint32_t {
	if outData == nil || outLen == nil {
		return C.uint32_t(eng().Reject(engine.InvalidHandle))
	}
	buf, code := eng().Encode(engine.Handle(handle), codec.Format(int32(format)), codec.EncodeOptions{})
	if code != engine.Success {
		return C.uint32_t(code)
	}
	data, code := eng().BufferBytes(buf)
	if code != engine.Success {
		return C.uint32_t(code)
	}

	p := C.malloc(C.size_t(len(data)))
	if p == nil {
		eng().FreeBuffer(buf)
		return C.uint32_t(eng().Reject(engine.OutOfMemory))
	}
	copy(unsafe.Slice((*byte)(p), len(data)), data)
	eng().FreeBuffer(buf)

	*outData = (*C.uint8_t)(p)
	*outLen = C.size_t(len(data))
	return C.uint32_t(engine.Success)
}

// fast_image_get_metadata writes the dimensions and channel layout of the
// image to out_metadata. color_type is 0 gray, 1 gray+alpha, 2 rgb, 3 rgba.
//
//export fast_image_get_metadata
func fast_image_get_metadata(handle C.uint64_t, outMetadata *C.fast_image_metadata_t) C.uint32_t {
	if outMetadata == nil {
		return C.uint32_t(eng().Reject(engine.InvalidHandle))
	}
	meta, code := eng().Metadata(engine.Handle(handle))
	if code != engine.Success {
		return C.uint32_t(code)
	}
	outMetadata.width = C.uint32_t(meta.Width)
	outMetadata.height = C.uint32_t(meta.Height)
	outMetadata.color_type = C.uint8_t(meta.ColorKind)
	return C.uint32_t(engine.Success)
}

// fast_image_resize scales the image to fit within width x height while
// preserving its aspect ratio.
//
//export fast_image_resize
func fast_image_resize(handle C.uint64_t, width, height C.uint32_t, filter C.uint32_t) C.uint64_t {
	h, _ := eng().Resize(engine.Handle(handle), uint32(width), uint32(height), kernels.Filter(filter))
	return C.uint64_t(h)
}

// fast_image_resize_exact scales the image to exactly width x height.
//
//export fast_image_resize_exact
func fast_image_resize_exact(handle C.uint64_t, width, height C.uint32_t, filter C.uint32_t) C.uint64_t {
	h, _ := eng().ResizeExact(engine.Handle(handle), uint32(width), uint32(height), kernels.Filter(filter))
	return C.uint64_t(h)
}

// fast_image_resize_to_fit scales the image to fit within width x height,
// preserving its aspect ratio.
//
//export fast_image_resize_to_fit
func fast_image_resize_to_fit(handle C.uint64_t, width, height C.uint32_t, filter C.uint32_t) C.uint64_t {
	h, _ := eng().ResizeToFit(engine.Handle(handle), uint32(width), uint32(height), kernels.Filter(filter))
	return C.uint64_t(h)
}

// fast_image_resize_to_fill scales the image to cover width x height and
// center-crops the overflow, returning exactly the requested size.
//
//export fast_image_resize_to_fill
func fast_image_resize_to_fill(handle C.uint64_t, width, height C.uint32_t, filter C.uint32_t) C.uint64_t {
	h, _ := eng().ResizeToFill(engine.Handle(handle), uint32(width), uint32(height), kernels.Filter(filter))
	return C.uint64_t(h)
}

// fast_image_crop extracts the rectangle at (x, y) with the given size.
//
//export fast_image_crop
func fast_image_crop(handle C.uint64_t, x, y, width, height C.uint32_t) C.uint64_t {
	h, _ := eng().Crop(engine.Handle(handle), uint32(x), uint32(y), uint32(width), uint32(height))
	return C.uint64_t(h)
}

// fast_image_rotate_90 turns the image a quarter turn clockwise.
//
//export fast_image_rotate_90
func fast_image_rotate_90(handle C.uint64_t) C.uint64_t {
	h, _ := eng().Rotate90(engine.Handle(handle))
	return C.uint64_t(h)
}

// fast_image_rotate_180 turns the image a half turn.
//
//export fast_image_rotate_180
func fast_image_rotate_180(handle C.uint64_t) C.uint64_t {
	h, _ := eng().Rotate180(engine.Handle(handle))
	return C.uint64_t(h)
}

// fast_image_rotate_270 turns the image a quarter turn counter-clockwise.
//
//export fast_image_rotate_270
func fast_image_rotate_270(handle C.uint64_t) C.uint64_t {
	h, _ := eng().Rotate270(engine.Handle(handle))
	return C.uint64_t(h)
}

// fast_image_flip_horizontal mirrors the image left to right.
//
//export fast_image_flip_horizontal
func fast_image_flip_horizontal(handle C.uint64_t) C.uint64_t {
	h, _ := eng().FlipHorizontal(engine.Handle(handle))
	return C.uint64_t(h)
}

// fast_image_flip_vertical mirrors the image top to bottom.
//
//export fast_image_flip_vertical
func fast_image_flip_vertical(handle C.uint64_t) C.uint64_t {
	h, _ := eng().FlipVertical(engine.Handle(handle))
	return C.uint64_t(h)
}

// fast_image_blur softens the image with a Gaussian kernel of the given
// sigma.
//
//export fast_image_blur
func fast_image_blur(handle C.uint64_t, sigma C.float) C.uint64_t {
	h, _ := eng().Blur(engine.Handle(handle), float32(sigma))
	return C.uint64_t(h)
}

// fast_image_brightness adds value to every color sample in the channel's
// native scale, clamped at the range bounds.
//
//export fast_image_brightness
func fast_image_brightness(handle C.uint64_t, value C.int32_t) C.uint64_t {
	h, _ := eng().Brightness(engine.Handle(handle), int32(value))
	return C.uint64_t(h)
}

// fast_image_contrast stretches color samples around the midpoint by c.
//
//export fast_image_contrast
func fast_image_contrast(handle C.uint64_t, c C.float) C.uint64_t {
	h, _ := eng().Contrast(engine.Handle(handle), float32(c))
	return C.uint64_t(h)
}

// fast_image_grayscale reduces the image to perceived luminance.
//
//export fast_image_grayscale
func fast_image_grayscale(handle C.uint64_t) C.uint64_t {
	h, _ := eng().Grayscale(engine.Handle(handle))
	return C.uint64_t(h)
}

// fast_image_invert flips every color sample in place. Unlike the other
// transforms it modifies the image behind the handle.
//
//export fast_image_invert
func fast_image_invert(handle C.uint64_t) C.uint32_t {
	return C.uint32_t(eng().Invert(engine.Handle(handle)))
}

func main() {}

// Package engine owns every image and encoded buffer that crosses the
// library boundary. Callers hold opaque integer handles instead of pointers;
// the engine maps them to live objects through a generation-tagged slot
// arena, so a stale or fabricated handle is detected instead of dereferenced.
//
// Operations report a Code rather than a Go error. Each call also records its
// code as the engine's last error, which keeps the side-channel query used by
// foreign callers accurate even for factories that can only signal failure by
// returning a null handle.
package engine

import (
	"sync"
	"sync/atomic"

	"github.com/fastimage/go-fastimage/raster"
)

// Handle identifies a live image owned by the engine. The zero Handle is
// never issued and acts as the null sentinel at every boundary.
type Handle uint64

// Buffer identifies an encoded byte buffer owned by the engine. Buffers and
// image handles live in separate arenas; a value from one domain is rejected
// by the other.
type Buffer uint64

// DefaultMaxPixels bounds decoded image area when Options.MaxPixels is zero.
// 2^28 pixels is a 16384x16384 square, ~1 GiB as RGBA8.
const DefaultMaxPixels = 1 << 28

// bufferTag marks the low word of Buffer values so the two id spaces stay
// disjoint even when slot indexes collide.
const bufferTag = 1 << 31

// Options bound the resources a single engine will commit to one image.
type Options struct {
	// MaxPixels caps the pixel area accepted from a decoder and the target
	// area of resize operations. Zero selects DefaultMaxPixels; negative
	// disables the cap.
	MaxPixels int64

	// MaxFileBytes caps the size of files opened by Load. Zero or negative
	// disables the cap.
	MaxFileBytes int64
}

type slot struct {
	img *raster.Image // nil while the slot is free
	gen uint32
}

type bufSlot struct {
	data []byte // nil while the slot is free
	gen  uint32
}

// Engine is a handle table for images and encoded buffers. The zero value is
// not usable; construct with New or use the shared Default instance.
type Engine struct {
	opts Options

	mu      sync.RWMutex
	slots   []slot
	free    []int
	buffers []bufSlot
	bufFree []int

	lastErr atomic.Uint32
}

// New returns an empty engine with the given resource bounds.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

var (
	defaultEngine *Engine
	defaultOnce   sync.Once
)

// Default returns the process-wide engine the exported C surface binds to.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = New(Options{})
	})
	return defaultEngine
}

func (e *Engine) maxPixels() int64 {
	switch {
	case e.opts.MaxPixels == 0:
		return DefaultMaxPixels
	case e.opts.MaxPixels < 0:
		return 0
	}
	return e.opts.MaxPixels
}

// report records c as the engine's last error and returns it unchanged.
// Every operation funnels its result through here.
func (e *Engine) report(c Code) Code {
	e.lastErr.Store(uint32(c))
	return c
}

// Reject records a failure that was detected before any operation could run,
// such as a null pointer at the C boundary, so LastError still reflects it.
func (e *Engine) Reject(c Code) Code {
	return e.report(c)
}

// LastError returns the code recorded by the most recent operation on this
// engine, including Success. Factories that returned a null handle leave
// their failure code here.
func (e *Engine) LastError() Code {
	return Code(e.lastErr.Load())
}

// issue stores img in a free slot and returns its handle. Generations bump
// on every issue, so handles into previously freed slots stay invalid.
func (e *Engine) issue(img *raster.Image) Handle {
	e.mu.Lock()
	defer e.mu.Unlock()

	var idx int
	if n := len(e.free); n > 0 {
		idx = e.free[n-1]
		e.free = e.free[:n-1]
	} else {
		e.slots = append(e.slots, slot{})
		idx = len(e.slots) - 1
	}
	e.slots[idx].img = img
	e.slots[idx].gen++
	return Handle(uint64(e.slots[idx].gen)<<32 | uint64(idx+1))
}

// lookup resolves a handle to its image. It returns false for the null
// handle, out-of-range indexes, freed slots, and stale generations.
func (e *Engine) lookup(h Handle) (*raster.Image, bool) {
	low := uint32(h)
	if low == 0 || low&bufferTag != 0 {
		return nil, false
	}
	idx, gen := int(low)-1, uint32(h>>32)

	e.mu.RLock()
	defer e.mu.RUnlock()
	if idx >= len(e.slots) {
		return nil, false
	}
	s := e.slots[idx]
	if s.img == nil || s.gen != gen {
		return nil, false
	}
	return s.img, true
}

// Free releases the image behind h. Freeing the null handle, a foreign
// value, or a handle that was already freed reports InvalidHandle; the
// generation check makes a double free a detected error rather than a
// release of whatever reused the slot.
func (e *Engine) Free(h Handle) Code {
	low := uint32(h)
	if low == 0 || low&bufferTag != 0 {
		return e.report(InvalidHandle)
	}
	idx, gen := int(low)-1, uint32(h>>32)

	e.mu.Lock()
	defer e.mu.Unlock()
	if idx >= len(e.slots) || e.slots[idx].img == nil || e.slots[idx].gen != gen {
		return e.report(InvalidHandle)
	}
	e.slots[idx].img = nil
	e.free = append(e.free, idx)
	return e.report(Success)
}

func (e *Engine) issueBuffer(data []byte) Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()

	var idx int
	if n := len(e.bufFree); n > 0 {
		idx = e.bufFree[n-1]
		e.bufFree = e.bufFree[:n-1]
	} else {
		e.buffers = append(e.buffers, bufSlot{})
		idx = len(e.buffers) - 1
	}
	e.buffers[idx].data = data
	e.buffers[idx].gen++
	return Buffer(uint64(e.buffers[idx].gen)<<32 | uint64(idx+1) | bufferTag)
}

// BufferBytes returns the encoded bytes behind b. The slice stays valid
// until FreeBuffer releases it and must not be modified.
func (e *Engine) BufferBytes(b Buffer) ([]byte, Code) {
	low := uint32(b)
	if low&bufferTag == 0 {
		return nil, e.report(InvalidHandle)
	}
	idx, gen := int(low&^bufferTag)-1, uint32(b>>32)

	e.mu.RLock()
	defer e.mu.RUnlock()
	if idx < 0 || idx >= len(e.buffers) {
		return nil, e.report(InvalidHandle)
	}
	s := e.buffers[idx]
	if s.data == nil || s.gen != gen {
		return nil, e.report(InvalidHandle)
	}
	return s.data, e.report(Success)
}

// FreeBuffer releases the bytes behind b. Image handles and already freed
// buffers report InvalidHandle.
func (e *Engine) FreeBuffer(b Buffer) Code {
	low := uint32(b)
	if low&bufferTag == 0 {
		return e.report(InvalidHandle)
	}
	idx, gen := int(low&^bufferTag)-1, uint32(b>>32)

	e.mu.Lock()
	defer e.mu.Unlock()
	if idx < 0 || idx >= len(e.buffers) || e.buffers[idx].data == nil || e.buffers[idx].gen != gen {
		return e.report(InvalidHandle)
	}
	e.buffers[idx].data = nil
	e.bufFree = append(e.bufFree, idx)
	return e.report(Success)
}

// Live returns the number of images currently held by the engine. It exists
// for tests and diagnostics.
func (e *Engine) Live() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.slots) - len(e.free)
}

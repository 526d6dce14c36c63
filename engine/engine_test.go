package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastimage/go-fastimage/codec"
	"github.com/fastimage/go-fastimage/raster"
)

// loadFixture decodes a small gradient PNG into e and fails the test if the
// engine rejects it.
func loadFixture(t *testing.T, e *Engine, width, height int) Handle {
	t.Helper()
	h, code := e.LoadFromMemory(fixturePNG(t, width, height))
	require.Equal(t, Success, code, "fixture should decode")
	require.NotEqual(t, Handle(0), h, "fixture should produce a live handle")
	return h
}

// fixturePNG encodes a width x height RGBA gradient with varying alpha.
func fixturePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	m := raster.New(width, height, raster.RGBA8)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for ch := 0; ch < 4; ch++ {
				m.SetSample(x, y, ch, uint32((x*31+y*17+ch*101)%256))
			}
		}
	}
	data, err := codec.Encode(m, codec.FormatPNG, codec.EncodeOptions{})
	require.NoError(t, err, "fixture encode should succeed")
	return data
}

func TestLoadFromMemoryIssuesLiveHandle(t *testing.T) {
	e := New(Options{})
	h := loadFixture(t, e, 12, 7)

	meta, code := e.Metadata(h)
	assert.Equal(t, Success, code)
	assert.Equal(t, uint32(12), meta.Width)
	assert.Equal(t, uint32(7), meta.Height)
	assert.Equal(t, KindRGBA, meta.ColorKind)
	assert.Equal(t, 1, e.Live())
}

func TestNullHandleIsRejected(t *testing.T) {
	e := New(Options{})

	_, code := e.Metadata(0)
	assert.Equal(t, InvalidHandle, code, "null handle should never resolve")
	assert.Equal(t, InvalidHandle, e.Free(0))
	assert.Equal(t, InvalidHandle, e.LastError())
}

func TestFreeInvalidatesHandle(t *testing.T) {
	e := New(Options{})
	h := loadFixture(t, e, 4, 4)

	assert.Equal(t, Success, e.Free(h))
	assert.Equal(t, 0, e.Live())

	_, code := e.Metadata(h)
	assert.Equal(t, InvalidHandle, code, "freed handle should be dead")
	assert.Equal(t, InvalidHandle, e.Free(h), "double free should be reported, not absorbed")
}

func TestSlotReuseKeepsStaleHandlesDead(t *testing.T) {
	e := New(Options{})

	h1 := loadFixture(t, e, 4, 4)
	require.Equal(t, Success, e.Free(h1))

	// The freed slot is the only one, so the next decode must reuse it.
	h2 := loadFixture(t, e, 8, 8)
	assert.NotEqual(t, h1, h2, "reissued slot should carry a new generation")

	_, code := e.Metadata(h1)
	assert.Equal(t, InvalidHandle, code, "stale handle should not see the new occupant")

	meta, code := e.Metadata(h2)
	assert.Equal(t, Success, code)
	assert.Equal(t, uint32(8), meta.Width)
}

func TestFabricatedHandlesAreRejected(t *testing.T) {
	e := New(Options{})
	loadFixture(t, e, 4, 4)

	for _, h := range []Handle{
		Handle(999),               // index far past the table
		Handle(7) << 32,           // generation with a zero index
		Handle(7)<<32 | Handle(1), // live index, wrong generation
	} {
		_, code := e.Metadata(h)
		assert.Equal(t, InvalidHandle, code, "handle %#x should be rejected", uint64(h))
	}
}

func TestBufferAndImageDomainsAreDisjoint(t *testing.T) {
	e := New(Options{})
	h := loadFixture(t, e, 6, 6)

	buf, code := e.Encode(h, codec.FormatPNG, codec.EncodeOptions{})
	require.Equal(t, Success, code)

	assert.Equal(t, InvalidHandle, e.Free(Handle(buf)), "buffer value should not free an image")
	assert.Equal(t, InvalidHandle, e.FreeBuffer(Buffer(h)), "image value should not free a buffer")

	// Both objects survived the cross-domain attempts.
	data, code := e.BufferBytes(buf)
	assert.Equal(t, Success, code)
	assert.NotEmpty(t, data)
	_, code = e.Metadata(h)
	assert.Equal(t, Success, code)

	assert.Equal(t, Success, e.FreeBuffer(buf))
	_, code = e.BufferBytes(buf)
	assert.Equal(t, InvalidHandle, code, "freed buffer should be dead")
	assert.Equal(t, InvalidHandle, e.FreeBuffer(buf))
}

func TestLastErrorTracksEachOperation(t *testing.T) {
	e := New(Options{})

	_, code := e.LoadFromMemory([]byte("not an image at all"))
	require.Equal(t, UnsupportedFormat, code)
	assert.Equal(t, UnsupportedFormat, e.LastError())

	h := loadFixture(t, e, 4, 4)
	assert.Equal(t, Success, e.LastError(), "successful load should clear the last error")

	_, code = e.Metadata(Handle(12345))
	require.Equal(t, InvalidHandle, code)
	assert.Equal(t, InvalidHandle, e.LastError())

	assert.Equal(t, InvalidArgument, e.Reject(InvalidArgument))
	assert.Equal(t, InvalidArgument, e.LastError(), "rejections should land in the side channel")

	_, code = e.Metadata(h)
	require.Equal(t, Success, code)
	assert.Equal(t, Success, e.LastError())
}

func TestDefaultEngineIsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestConcurrentDerivesFromOneHandle(t *testing.T) {
	e := New(Options{})
	h := loadFixture(t, e, 32, 16)

	const workers = 16
	derived := make([]Handle, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, code := e.Rotate90(h)
			if code == Success {
				derived[i] = out
			}
		}(i)
	}
	wg.Wait()

	for i, d := range derived {
		require.NotEqual(t, Handle(0), d, "worker %d should have derived a handle", i)
		meta, code := e.Metadata(d)
		require.Equal(t, Success, code)
		assert.Equal(t, uint32(16), meta.Width)
		assert.Equal(t, uint32(32), meta.Height)
		assert.Equal(t, Success, e.Free(d))
	}
	assert.Equal(t, 1, e.Live(), "only the source should remain")
}

func TestColorKindMapping(t *testing.T) {
	cases := []struct {
		color raster.ColorType
		kind  uint8
	}{
		{raster.Gray8, KindGray},
		{raster.Gray16, KindGray},
		{raster.GrayAlpha8, KindGrayAlpha},
		{raster.GrayAlpha16, KindGrayAlpha},
		{raster.RGB8, KindRGB},
		{raster.RGB16, KindRGB},
		{raster.RGBA8, KindRGBA},
		{raster.RGBA16, KindRGBA},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, colorKind(tc.color), "layout %v", tc.color)
	}
}

func TestCodeStrings(t *testing.T) {
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "invalid handle", InvalidHandle.String())
	assert.Equal(t, "out of memory", OutOfMemory.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "unknown", Code(42).String())
}

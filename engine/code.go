package engine

// Code is the 32-bit status every boundary operation reports. Zero is
// success; the other values are frozen for existing callers and must not be
// renumbered.
type Code uint32

const (
	Success           Code = 0
	InvalidPath       Code = 1
	UnsupportedFormat Code = 2
	DecodeFailed      Code = 3
	EncodeFailed      Code = 4
	IOFailed          Code = 5
	InvalidArgument   Code = 6
	InvalidHandle     Code = 7
	OutOfMemory       Code = 8
	Unknown           Code = 99
)

func (c Code) String() string {
	switch c {
	case Success:
		return "success"
	case InvalidPath:
		return "invalid path"
	case UnsupportedFormat:
		return "unsupported format"
	case DecodeFailed:
		return "decode failed"
	case EncodeFailed:
		return "encode failed"
	case IOFailed:
		return "io failed"
	case InvalidArgument:
		return "invalid argument"
	case InvalidHandle:
		return "invalid handle"
	case OutOfMemory:
		return "out of memory"
	}
	return "unknown"
}

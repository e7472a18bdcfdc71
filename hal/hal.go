package hal

import (
	"errors"
	"io"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Size is a surface size in character cells.
type Size struct {
	Cols int
	Rows int
}

// Surface receives the rendered VT100 stream.
type Surface interface {
	io.Writer

	// Size reports the current size in cells.
	Size() Size

	// Resized delivers size changes. It may be nil when the surface never
	// changes size.
	Resized() <-chan Size

	Close() error
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// discard is a Logger that drops everything.
type discard struct{}

func (discard) WriteLineString(string) {}
func (discard) WriteLineBytes([]byte)  {}

// Discard is a Logger that drops every line.
var Discard Logger = discard{}

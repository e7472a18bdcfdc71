package hal

import (
	"sync"

	"ief/engine/vt"
)

// HeadlessSurface renders into an in-memory VT screen.
type HeadlessSurface struct {
	mu      sync.Mutex
	screen  *vt.Screen
	resized chan Size
}

// NewHeadless returns a surface of the given size.
func NewHeadless(size Size) *HeadlessSurface {
	return &HeadlessSurface{
		screen:  vt.New(size.Cols, size.Rows),
		resized: make(chan Size, 1),
	}
}

func (h *HeadlessSurface) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.screen.Write(p)
}

func (h *HeadlessSurface) Size() Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	cols, rows := h.screen.Size()
	return Size{Cols: cols, Rows: rows}
}

func (h *HeadlessSurface) Resized() <-chan Size { return h.resized }

// Resize changes the screen size and notifies the reader of Resized. Only the
// latest pending size is kept.
func (h *HeadlessSurface) Resize(size Size) {
	h.mu.Lock()
	h.screen.Resize(size.Cols, size.Rows)
	h.mu.Unlock()
	offerSize(h.resized, size)
}

// View calls fn with the screen locked.
func (h *HeadlessSurface) View(fn func(s *vt.Screen)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.screen)
}

func (h *HeadlessSurface) Close() error { return nil }

// offerSize replaces any undelivered size in ch with sz.
func offerSize(ch chan Size, sz Size) {
	for {
		select {
		case ch <- sz:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

//go:build !unix

package hal

import "os"

// TerminalSurface writes to a console of fixed size.
type TerminalSurface struct {
	out  *os.File
	size Size
}

// NewTerminal wraps out. Size queries are not available on this platform, so
// fallback is always reported.
func NewTerminal(out *os.File, fallback Size) *TerminalSurface {
	return &TerminalSurface{out: out, size: fallback}
}

func (t *TerminalSurface) Write(p []byte) (int, error) { return t.out.Write(p) }
func (t *TerminalSurface) Size() Size                  { return t.size }
func (t *TerminalSurface) Resized() <-chan Size        { return nil }
func (t *TerminalSurface) Close() error                { return nil }

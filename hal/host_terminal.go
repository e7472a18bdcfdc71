//go:build unix

package hal

import (
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"
)

// TerminalSurface writes to a terminal and reports its size from TIOCGWINSZ,
// re-reading it on every SIGWINCH.
type TerminalSurface struct {
	out      *os.File
	fd       int
	fallback Size

	sig     chan os.Signal
	resized chan Size
	done    chan struct{}
	once    sync.Once
}

// NewTerminal wraps out. fallback is reported when out is not a terminal.
func NewTerminal(out *os.File, fallback Size) *TerminalSurface {
	t := &TerminalSurface{
		out:      out,
		fd:       int(out.Fd()),
		fallback: fallback,
		sig:      make(chan os.Signal, 1),
		resized:  make(chan Size, 1),
		done:     make(chan struct{}),
	}
	signal.Notify(t.sig, unix.SIGWINCH)
	go t.watch()
	return t
}

func (t *TerminalSurface) Write(p []byte) (int, error) { return t.out.Write(p) }

func (t *TerminalSurface) Size() Size {
	ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return t.fallback
	}
	return Size{Cols: int(ws.Col), Rows: int(ws.Row)}
}

func (t *TerminalSurface) Resized() <-chan Size { return t.resized }

func (t *TerminalSurface) watch() {
	for {
		select {
		case <-t.done:
			return
		case <-t.sig:
			offerSize(t.resized, t.Size())
		}
	}
}

func (t *TerminalSurface) Close() error {
	t.once.Do(func() {
		signal.Stop(t.sig)
		close(t.done)
	})
	return nil
}

// Package driver runs the frame loop: clear, rasterise the scene, invoke the
// animation hook, emit the diff. It owns the grids and is the only writer to
// the output stream.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"ief/engine/framebuf"
	"ief/engine/geom"
	"ief/engine/palette"
	"ief/engine/scene"
	"ief/hal"
)

var (
	ErrNotStarted = errors.New("driver not started")
	ErrReentrant  = errors.New("tick already in progress")
)

// Frame describes the tick being rendered.
type Frame struct {
	// Seq counts ticks from 1.
	Seq uint64
	// Elapsed is the time since Start.
	Elapsed time.Duration
	// Delta is the time since the previous tick.
	Delta time.Duration
}

// Hook is the per-tick animation callback. It runs after the scene has been
// rasterised and before the diff is emitted; its mutations show from the next
// tick on.
type Hook func(f Frame, s *scene.Scene)

// Config controls the run loop.
type Config struct {
	// Title is written as the window title on start. Empty skips it.
	Title string
	// Hz is the tick rate. Zero means 60.
	Hz int
	// Ticks stops Run after this many ticks. Zero runs until cancelled.
	Ticks uint64
	// Clock overrides time.Now.
	Clock func() time.Time
}

// Driver renders a scene to an output stream.
type Driver struct {
	cfg   Config
	out   io.Writer
	log   hal.Logger
	scene *scene.Scene
	buf   *framebuf.Buffer
	hook  Hook

	started bool
	ticking bool
	seq     uint64
	start   time.Time
	last    time.Time
	scratch []byte
}

// New prepares a driver. Nothing is written until Start.
func New(s *scene.Scene, out io.Writer, log hal.Logger, cfg Config) *Driver {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if log == nil {
		log = hal.Discard
	}
	return &Driver{
		cfg:   cfg,
		out:   out,
		log:   log,
		scene: s,
		buf:   framebuf.New(0, 0),
	}
}

// SetHook registers the animation hook, replacing any previous one. nil
// removes it.
func (d *Driver) SetHook(h Hook) { d.hook = h }

func (d *Driver) Scene() *scene.Scene      { return d.scene }
func (d *Driver) Buffer() *framebuf.Buffer { return d.buf }

// Seq returns the number of completed ticks.
func (d *Driver) Seq() uint64 { return d.seq }

func (d *Driver) logf(format string, args ...any) {
	d.log.WriteLineString("driver: " + fmt.Sprintf(format, args...))
}

// Start sizes the grids for a surface, writes the title and draws the whole
// grid once.
func (d *Driver) Start(size hal.Size) error {
	now := d.cfg.Clock()
	d.start, d.last = now, now
	d.started = true

	d.scratch = d.scratch[:0]
	if d.cfg.Title != "" {
		d.scratch = appendTitle(d.scratch, d.cfg.Title)
	}
	if len(d.scratch) > 0 {
		if _, err := d.out.Write(d.scratch); err != nil {
			return fmt.Errorf("driver: write title: %w", err)
		}
	}
	return d.Resize(size)
}

// Resize rebuilds both grids for a new surface size and emits a full draw of
// the current scene. The animation hook does not run.
func (d *Driver) Resize(size hal.Size) error {
	if !d.started {
		return ErrNotStarted
	}
	if d.ticking {
		return ErrReentrant
	}
	w, h := geom.GridSize(size.Cols, size.Rows)
	d.buf.Reset(w, h)
	if err := d.scene.Render(d.buf); err != nil {
		d.logf("resize %dx%d: %v", w, h, err)
	}
	if _, err := d.buf.FlushFull(d.out); err != nil {
		return fmt.Errorf("driver: full draw: %w", err)
	}
	return nil
}

// Tick renders one frame. A render error aborts the tick before anything is
// emitted; the grid keeps its cleared state and the next tick starts over.
func (d *Driver) Tick() error {
	if !d.started {
		return ErrNotStarted
	}
	if d.ticking {
		return ErrReentrant
	}
	d.ticking = true
	defer func() { d.ticking = false }()

	now := d.cfg.Clock()
	d.seq++
	f := Frame{Seq: d.seq, Elapsed: now.Sub(d.start), Delta: now.Sub(d.last)}
	d.last = now

	d.buf.Clear()
	if err := d.scene.Render(d.buf); err != nil {
		d.logf("tick %d: %v", f.Seq, err)
		return err
	}
	d.runHook(f)
	if _, err := d.buf.Flush(d.out); err != nil {
		d.logf("tick %d: write: %v", f.Seq, err)
		return err
	}
	return nil
}

func (d *Driver) runHook(f Frame) {
	if d.hook == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logf("tick %d: animation hook panic: %v", f.Seq, r)
		}
	}()
	d.hook(f, d.scene)
}

// Stop restores the terminal: colours reset, cursor shown and parked below the
// grid.
func (d *Driver) Stop() error {
	if !d.started {
		return nil
	}
	d.started = false
	_, h := d.buf.Size()
	out := append(d.scratch[:0], palette.Reset...)
	out = append(out, framebuf.ShowCursor...)
	out = framebuf.AppendCursor(out, 0, h)
	out = append(out, '\r', '\n')
	d.scratch = out
	if _, err := d.out.Write(out); err != nil {
		return fmt.Errorf("driver: stop: %w", err)
	}
	return nil
}

// Run starts the driver and ticks it at the configured rate until ctx is done
// or the tick limit is reached. Size changes from resized are applied between
// ticks. Tick errors are logged and the loop carries on.
func (d *Driver) Run(ctx context.Context, size hal.Size, resized <-chan hal.Size) error {
	if err := d.Start(size); err != nil {
		return err
	}
	defer func() {
		if err := d.Stop(); err != nil {
			d.logf("%v", err)
		}
	}()

	interval := time.Second / time.Duration(d.cfg.Hz)
	if interval <= 0 {
		return fmt.Errorf("driver: invalid hz: %d", d.cfg.Hz)
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	var ticks uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sz, ok := <-resized:
			if !ok {
				resized = nil
				continue
			}
			if err := d.Resize(sz); err != nil {
				return err
			}
		case <-t.C:
			// Tick already logged the failure.
			_ = d.Tick()
			ticks++
			if d.cfg.Ticks > 0 && ticks >= d.cfg.Ticks {
				return nil
			}
		}
	}
}

func appendTitle(dst []byte, title string) []byte {
	dst = append(dst, "\x1b]0;"...)
	for _, r := range title {
		if r < 0x20 || r == 0x7f {
			continue
		}
		dst = append(dst, string(r)...)
	}
	return append(dst, '\a')
}

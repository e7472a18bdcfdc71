// Package app wires a surface, a scene, its script and the frame driver.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"ief/engine/driver"
	"ief/engine/scene"
	"ief/engine/script"
	"ief/hal"
	"ief/internal/buildinfo"
)

const (
	ModeTerminal = "terminal"
	ModeHeadless = "headless"
	ModeWindow   = "window"
)

var (
	ErrUnknownMode = errors.New("unknown mode")
	ErrUnknownDemo = errors.New("unknown demo")
)

// Config is the runtime configuration of the ief binary.
type Config struct {
	// Mode is terminal, headless or window.
	Mode string
	// Dimension overrides the active scene dimension after the script ran.
	Dimension string
	// Script is a line script or YAML scene file. It takes precedence over Demo.
	Script string
	// Demo names a built-in scene.
	Demo  string
	Title string
	Hz    int
	// Ticks stops after N ticks. Zero runs until interrupted.
	Ticks uint64
	// LogPath receives diagnostics. Terminal mode never logs to the
	// rendering stream and defaults to ief.log.
	LogPath string
	// Cols and Rows size headless and window surfaces, and stand in when the
	// terminal size is unknown.
	Cols int
	Rows int
	// LogLines is the window log pane height.
	LogLines int
	// Scale multiplies the window size.
	Scale int
}

func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = ModeTerminal
	}
	c.Mode = strings.ToLower(c.Mode)
	if c.Script == "" && c.Demo == "" {
		c.Demo = "cube"
	}
	if c.Title == "" {
		c.Title = "ief (" + buildinfo.Short() + ")"
	}
	if c.Hz <= 0 {
		c.Hz = 60
	}
	if c.Cols <= 0 {
		c.Cols = 80
	}
	if c.Rows <= 0 {
		c.Rows = 40
	}
	if c.LogPath == "" && c.Mode == ModeTerminal {
		c.LogPath = "ief.log"
	}
	return c
}

// Load builds the configured scene. The returned hook drives the script's
// animations and may be nil.
func Load(cfg Config, log hal.Logger) (*scene.Scene, driver.Hook, error) {
	cfg = cfg.withDefaults()

	var prog *script.Program
	var err error
	if cfg.Script != "" {
		prog, err = script.Load(cfg.Script)
	} else {
		src, ok := demos[strings.ToLower(cfg.Demo)]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownDemo, cfg.Demo, strings.Join(Demos(), ", "))
		}
		prog, err = script.ParseString(src)
	}
	if err != nil {
		return nil, nil, err
	}

	s := scene.New(log)
	hook, err := prog.Apply(s)
	if err != nil {
		// Failed commands were skipped; the rest of the scene still runs.
		log.WriteLineString(fmt.Sprintf("app: %v", err))
	}
	if cfg.Dimension != "" {
		d, err := scene.ParseDimension(cfg.Dimension)
		if err != nil {
			return nil, nil, err
		}
		s.SetActive(d)
	}
	return s, hook, nil
}

// Play drives the configured scene on surf until ctx is done or the tick
// limit is reached.
func Play(ctx context.Context, cfg Config, surf hal.Surface, log hal.Logger) error {
	cfg = cfg.withDefaults()
	if log == nil {
		log = hal.Discard
	}
	s, hook, err := Load(cfg, log)
	if err != nil {
		return err
	}

	d := driver.New(s, surf, log, driver.Config{Title: cfg.Title, Hz: cfg.Hz, Ticks: cfg.Ticks})
	d.SetHook(hook)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	resized := make(chan hal.Size, 1)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return guard(log, "driver", func() error {
			return d.Run(ctx, surf.Size(), resized)
		})
	})
	g.Go(func() error {
		return guard(log, "resize watcher", func() error {
			watchResize(ctx, surf.Size(), surf.Resized(), resized, log)
			return nil
		})
	})
	return g.Wait()
}

// watchResize forwards size changes that differ from the last one seen.
func watchResize(ctx context.Context, last hal.Size, in <-chan hal.Size, out chan<- hal.Size, log hal.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case sz, ok := <-in:
			if !ok {
				return
			}
			if sz == last || sz.Cols <= 0 || sz.Rows <= 0 {
				continue
			}
			last = sz
			log.WriteLineString(fmt.Sprintf("app: resize %dx%d", sz.Cols, sz.Rows))
			select {
			case out <- sz:
			case <-ctx.Done():
				return
			}
		}
	}
}

// playHeadless plays on an in-memory screen and dumps the final frame to w.
func playHeadless(ctx context.Context, cfg Config, size hal.Size, log hal.Logger, w io.Writer) error {
	surf := hal.NewHeadless(size)
	err := Play(ctx, cfg, surf, log)
	if dumpErr := DumpScreen(w, surf); dumpErr != nil {
		err = errors.Join(err, fmt.Errorf("app: dump screen: %w", dumpErr))
	}
	return err
}

// Run plays the configured scene on the surface selected by cfg.Mode.
func Run(ctx context.Context, cfg Config) error {
	cfg = cfg.withDefaults()

	log, closer, err := hal.OpenLog(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closer.Close()
	log.WriteLineString(fmt.Sprintf("app: start %s mode, build %s", cfg.Mode, buildinfo.Short()))

	size := hal.Size{Cols: cfg.Cols, Rows: cfg.Rows}
	switch cfg.Mode {
	case ModeTerminal:
		surf := hal.NewTerminal(os.Stdout, size)
		defer surf.Close()
		return Play(ctx, cfg, surf, log)

	case ModeHeadless:
		return playHeadless(ctx, cfg, size, log, os.Stdout)

	case ModeWindow:
		wcfg := hal.WindowConfig{Title: cfg.Title, Size: size, LogLines: cfg.LogLines, Scale: cfg.Scale}
		return hal.RunWindow(ctx, wcfg, func(ctx context.Context, surf hal.Surface, pane hal.Logger) error {
			return Play(ctx, cfg, surf, hal.Tee(log, pane))
		})
	}
	return fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
}

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"

	"ief/app"
	"ief/engine/driver"
	"ief/engine/palette"
	"ief/engine/vt"
	"ief/hal"
)

// Cell metrics of basicfont.Face7x13.
const (
	cellW      = 7
	cellH      = 13
	cellAscent = 11
)

// fallbackGlyph replaces runes the face has no glyph for.
const fallbackGlyph = '*'

type options struct {
	Script    string
	Demo      string
	Dimension string
	Cols      int
	Rows      int
	Hz        int
	Ticks     int
	Every     int
	Scale     int
	Out       string
	LogPath   string
}

func run(opts options) error {
	log, closer, err := hal.OpenLog(opts.LogPath)
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg := app.Config{Mode: app.ModeHeadless, Script: opts.Script, Demo: opts.Demo, Dimension: opts.Dimension}
	s, hook, err := app.Load(cfg, log)
	if err != nil {
		return err
	}
	if opts.Hz <= 0 {
		opts.Hz = 60
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}

	size := hal.Size{Cols: opts.Cols, Rows: opts.Rows}
	surf := hal.NewHeadless(size)
	d := driver.New(s, surf, log, driver.Config{Title: "iefsnap", Hz: opts.Hz, Clock: steppedClock(opts.Hz)})
	d.SetHook(hook)
	if err := d.Start(size); err != nil {
		return err
	}

	// Frames are captured in order and encoded concurrently.
	var g errgroup.Group
	g.SetLimit(4)
	write := func(path string, img *image.RGBA) {
		g.Go(func() error { return writePNG(path, img, opts.Scale) })
	}

	for i := 1; i <= opts.Ticks; i++ {
		// Tick already logged the failure.
		_ = d.Tick()
		if opts.Every > 0 && i%opts.Every == 0 {
			write(framePath(opts.Out, i), capture(surf, d))
		}
	}
	write(opts.Out, capture(surf, d))
	return g.Wait()
}

// steppedClock advances exactly one frame interval per call.
func steppedClock(hz int) func() time.Time {
	t := time.Unix(0, 0)
	step := time.Second / time.Duration(hz)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

// framePath turns snap.png into snap-0012.png.
func framePath(out string, frame int) string {
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(out, ext), frame, ext)
}

func capture(surf *hal.HeadlessSurface, d *driver.Driver) *image.RGBA {
	cols, rows := d.Buffer().Size()
	var img *image.RGBA
	surf.View(func(s *vt.Screen) {
		img = render(s, cols, rows)
	})
	return img
}

// render draws the top-left cols x rows cells of s, one basicfont cell each.
func render(s *vt.Screen, cols, rows int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Face: face}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c, ok := s.Cell(x, y)
			if !ok {
				continue
			}
			r := image.Rect(x*cellW, y*cellH, (x+1)*cellW, (y+1)*cellH)
			draw.Draw(img, r, image.NewUniform(rgba(c.BG)), image.Point{}, draw.Src)
			if c.Glyph == ' ' {
				continue
			}
			glyph := c.Glyph
			if _, ok := face.GlyphAdvance(glyph); !ok {
				glyph = fallbackGlyph
			}
			dr.Src = image.NewUniform(rgba(c.FG))
			dr.Dot = fixed.P(x*cellW, y*cellH+cellAscent)
			dr.DrawString(string(glyph))
		}
	}
	return img
}

func rgba(c palette.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

func writePNG(path string, img *image.RGBA, scale int) error {
	if scale > 1 {
		b := img.Bounds()
		img = transform.Resize(img, b.Dx()*scale, b.Dy()*scale, transform.NearestNeighbor)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

//go:build cgo

package hal

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ief/engine/vt"
)

// RunWindow opens a desktop window showing a VT screen and calls run on a
// separate goroutine with a Surface that writes to it. Lines written to the
// Logger passed to run appear in the window's log pane. It blocks until the
// window is closed (Escape closes it too) or run returns.
func RunWindow(ctx context.Context, cfg WindowConfig, run func(ctx context.Context, s Surface, log Logger) error) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g := newWindowGame(ctx, cfg)
	errc := make(chan error, 1)
	go func() {
		errc <- run(ctx, g.surface, g.pane)
		cancel()
	}()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(g.fb.width*cfg.Scale, g.fb.height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	cancel()
	runErr := <-errc
	if err != nil {
		return err
	}
	return runErr
}

type windowGame struct {
	ctx     context.Context
	cfg     WindowConfig
	surface *HeadlessSurface
	pane    *logPane
	painter *cellPainter
	fb      *hostFramebuffer
	disp    *fbDisplay
	size    Size

	img *ebiten.Image
	pix []byte
}

func newWindowGame(ctx context.Context, cfg WindowConfig) *windowGame {
	g := &windowGame{
		ctx:     ctx,
		cfg:     cfg,
		surface: NewHeadless(cfg.Size),
		pane:    newLogPane(),
		painter: newCellPainter(),
		fb:      newHostFramebuffer(0, 0),
	}
	g.disp = newFBDisplay(g.fb)
	g.layoutFor(cfg.Size)
	return g
}

// layoutFor sizes the framebuffer for a grid and restarts the log pane.
func (g *windowGame) layoutFor(sz Size) {
	g.size = sz
	w, h := g.painter.pixels(sz, g.cfg.LogLines)
	g.fb.resize(w, h)
	if g.cfg.LogLines > 0 {
		g.pane.attach(&paneDisplay{
			base:   g.disp,
			top:    int16(sz.Rows) * g.painter.h,
			height: int16(g.cfg.LogLines) * g.painter.h,
		})
	}
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	g.surface.View(func(s *vt.Screen) { g.painter.paint(g.disp, s) })
	g.pane.flush()

	if n := g.fb.width * g.fb.height * 4; len(g.pix) != n {
		g.pix = make([]byte, n)
	}
	if g.img == nil || g.img.Bounds().Dx() != g.fb.width || g.img.Bounds().Dy() != g.fb.height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(g.fb.width, g.fb.height)
	}
	g.fb.snapshotRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	sz := g.painter.gridFor(outsideWidth, outsideHeight, g.cfg.Scale, g.cfg.LogLines)
	if sz != g.size {
		g.layoutFor(sz)
		g.surface.Resize(sz)
	}
	return g.fb.width, g.fb.height
}

package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ief/engine/palette"
	"ief/engine/scene"
	"ief/engine/vt"
	"ief/hal"
)

type captureLogger struct {
	lines []string
}

func (l *captureLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *captureLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func TestDemosLoadCleanly(t *testing.T) {
	for _, name := range Demos() {
		log := &captureLogger{}
		s, _, err := Load(Config{Demo: name}, log)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if len(log.lines) != 0 {
			t.Fatalf("Load(%q) diagnostics: %q", name, log.lines)
		}
		if s.Len(s.Active()) == 0 {
			t.Fatalf("demo %q has no objects in the active dimension", name)
		}
	}
}

func TestLoadUnknownDemo(t *testing.T) {
	_, _, err := Load(Config{Demo: "teapot"}, hal.Discard)
	if !errors.Is(err, ErrUnknownDemo) {
		t.Fatalf("err=%v, want ErrUnknownDemo", err)
	}
}

func TestLoadDimensionOverride(t *testing.T) {
	s, _, err := Load(Config{Demo: "cube", Dimension: "2d"}, hal.Discard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Active() != scene.Dim2D {
		t.Fatalf("active=%v, want 2d", s.Active())
	}
	if _, _, err := Load(Config{Demo: "cube", Dimension: "4d"}, hal.Discard); err == nil {
		t.Fatalf("expected error for 4d")
	}
}

func TestLoadScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.ief")
	src := "create 2d square s\nscene 2d\nbogus\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, _, err := Load(Config{Script: path}, hal.Discard)
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("err=%v, want a line 3 parse error", err)
	}

	if err := os.WriteFile(path, []byte("create 2d square s\nscene 2d\nposition ghost 1 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	log := &captureLogger{}
	s, _, err := Load(Config{Script: path}, log)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len(scene.Dim2D) != 1 {
		t.Fatalf("2d objects=%d, want 1", s.Len(scene.Dim2D))
	}
	if len(log.lines) == 0 {
		t.Fatalf("failed command was not logged")
	}
}

func TestPlayHeadlessCube(t *testing.T) {
	surf := hal.NewHeadless(hal.Size{Cols: 40, Rows: 24})
	cfg := Config{Mode: ModeHeadless, Demo: "cube", Hz: 1000, Ticks: 3, Title: "t"}
	if err := Play(context.Background(), cfg, surf, hal.Discard); err != nil {
		t.Fatalf("Play: %v", err)
	}
	surf.View(func(s *vt.Screen) {
		if s.Title() != "t" {
			t.Fatalf("title=%q", s.Title())
		}
		c, _ := s.Cell(20, 10)
		if c.BG != palette.BrightGreen {
			t.Fatalf("centre cell=%+v, want bright green", c)
		}
		if !s.CursorVisible() {
			t.Fatalf("cursor still hidden after stop")
		}
	})
}

func TestPlayAppliesResize(t *testing.T) {
	surf := hal.NewHeadless(hal.Size{Cols: 40, Rows: 24})
	var logBuf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Play(ctx, Config{Demo: "cube", Hz: 200}, surf, hal.NewLogger(&logBuf))
	}()
	surf.Resize(hal.Size{Cols: 20, Rows: 24})
	time.Sleep(100 * time.Millisecond)
	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("Play: %v", err)
	}
	if !strings.Contains(logBuf.String(), "app: resize 20x24") {
		t.Fatalf("log=%q", logBuf.String())
	}
}

func TestWatchResizeFilters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in := make(chan hal.Size, 4)
	out := make(chan hal.Size, 4)
	log := &captureLogger{}

	in <- hal.Size{Cols: 40, Rows: 24}
	in <- hal.Size{Cols: 0, Rows: 24}
	in <- hal.Size{Cols: 30, Rows: 24}
	close(in)
	watchResize(ctx, hal.Size{Cols: 40, Rows: 24}, in, out, log)

	if len(out) != 1 {
		t.Fatalf("forwarded %d sizes, want 1", len(out))
	}
	if sz := <-out; sz != (hal.Size{Cols: 30, Rows: 24}) {
		t.Fatalf("forwarded %+v", sz)
	}
	if len(log.lines) != 1 || log.lines[0] != "app: resize 30x24" {
		t.Fatalf("log=%q", log.lines)
	}
}

func TestGuardRecoversPanic(t *testing.T) {
	log := &captureLogger{}
	err := guard(log, "boom", func() error { panic("bad") })
	if err == nil || !strings.Contains(err.Error(), "boom panicked: bad") {
		t.Fatalf("err=%v", err)
	}
	if len(log.lines) < 2 || log.lines[0] != "app: panic in boom: bad" {
		t.Fatalf("log=%q", log.lines)
	}
}

func TestDumpScreen(t *testing.T) {
	surf := hal.NewHeadless(hal.Size{Cols: 4, Rows: 2})
	surf.Write([]byte("\x1b[1;1Hab\x1b[42m \x1b[0m"))
	var out bytes.Buffer
	if err := DumpScreen(&out, surf); err != nil {
		t.Fatalf("DumpScreen: %v", err)
	}
	if got := out.String(); got != "ab#\n\n" {
		t.Fatalf("dump=%q", got)
	}
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestPlayHeadlessReportsDumpError(t *testing.T) {
	cfg := Config{Mode: ModeHeadless, Demo: "cube", Hz: 1000, Ticks: 1}
	err := playHeadless(context.Background(), cfg, hal.Size{Cols: 20, Rows: 12}, hal.Discard, failingWriter{})
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("err=%v, want the dump write error", err)
	}

	var out bytes.Buffer
	if err := playHeadless(context.Background(), cfg, hal.Size{Cols: 20, Rows: 12}, hal.Discard, &out); err != nil {
		t.Fatalf("playHeadless: %v", err)
	}
	if strings.Count(out.String(), "\n") != 12 {
		t.Fatalf("dump has %d lines, want 12", strings.Count(out.String(), "\n"))
	}
}

func TestRunUnknownMode(t *testing.T) {
	cfg := Config{Mode: "fax", LogPath: filepath.Join(t.TempDir(), "ief.log")}
	if err := Run(context.Background(), cfg); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("err=%v, want ErrUnknownMode", err)
	}
}

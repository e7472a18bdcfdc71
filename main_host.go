package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ief/app"
	"ief/engine/script"
	"ief/internal/buildinfo"
)

func main() {
	var cfg app.Config
	var version, list bool
	flag.StringVar(&cfg.Mode, "mode", app.ModeTerminal, "Surface: terminal, headless or window.")
	flag.StringVar(&cfg.Script, "script", "", "Line script or YAML scene file to load.")
	flag.StringVar(&cfg.Demo, "demo", "cube", "Built-in scene when no -script is given.")
	flag.StringVar(&cfg.Dimension, "dimension", "", "Override the active dimension (2d or 3d).")
	flag.StringVar(&cfg.Title, "title", "", "Window title.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Frames per second.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N frames (0 = run until interrupted).")
	flag.StringVar(&cfg.LogPath, "log", "", "Diagnostics file, - for stderr (terminal mode default: ief.log).")
	flag.IntVar(&cfg.Cols, "cols", 80, "Columns for headless and window surfaces.")
	flag.IntVar(&cfg.Rows, "rows", 40, "Rows for headless and window surfaces.")
	flag.IntVar(&cfg.LogLines, "log-lines", 6, "Log pane height in window mode.")
	flag.IntVar(&cfg.Scale, "scale", 2, "Window scale factor.")
	flag.BoolVar(&list, "list", false, "List demos and script commands, then exit.")
	flag.BoolVar(&version, "version", false, "Print the build identifier and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}
	if list {
		fmt.Println("demos:   ", strings.Join(app.Demos(), " "))
		fmt.Println("commands:", strings.Join(script.Commands(), " "))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

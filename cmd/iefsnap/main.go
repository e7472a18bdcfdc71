// Command iefsnap plays a scene headlessly and writes the frame grid as PNG.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	var opts options
	flag.StringVar(&opts.Script, "script", "", "Line script or YAML scene file.")
	flag.StringVar(&opts.Demo, "demo", "cube", "Built-in scene when no -script is given.")
	flag.StringVar(&opts.Dimension, "dimension", "", "Override the active dimension (2d or 3d).")
	flag.IntVar(&opts.Cols, "cols", 80, "Surface columns.")
	flag.IntVar(&opts.Rows, "rows", 40, "Surface rows.")
	flag.IntVar(&opts.Hz, "hz", 60, "Simulated frames per second.")
	flag.IntVar(&opts.Ticks, "ticks", 30, "Frames to play before the final snapshot.")
	flag.IntVar(&opts.Every, "every", 0, "Also write out-NNNN.png every N frames (0 = final only).")
	flag.IntVar(&opts.Scale, "scale", 1, "Nearest-neighbour upscale factor.")
	flag.StringVar(&opts.Out, "out", "snap.png", "Output PNG path.")
	flag.StringVar(&opts.LogPath, "log", "-", "Diagnostics file, - for stderr.")
	flag.Parse()

	if opts.Ticks < 0 || opts.Every < 0 || opts.Scale < 1 {
		fatalf("usage: iefsnap [-script file | -demo name] [-ticks N] [-every N] [-scale K] [-out snap.png]")
	}
	if err := run(opts); err != nil {
		fatalf("iefsnap: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

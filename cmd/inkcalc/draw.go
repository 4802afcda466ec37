package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"

	"github.com/example/inkcalc/internal/canvas"
	"github.com/example/inkcalc/internal/platform"
	"github.com/example/inkcalc/internal/ui"
)

// fallbackCanvas is used when neither flags nor the screen give a size.
var fallbackCanvas = image.Pt(1024, 640)

// drawCmd opens the drawing window.
type drawCmd struct {
	*root
	fs        *flag.FlagSet
	width     int
	height    int
	colorSpec string
	lineWidth int
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseColor(s string) (color.RGBA, error) {
	return canvas.ParseColor(s)
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.IntVar(&d.width, "width", r.config.Canvas.Width, "canvas width in pixels (0 sizes from the screen)")
	fs.IntVar(&d.height, "height", r.config.Canvas.Height, "canvas height in pixels (0 sizes from the screen)")
	fs.StringVar(&d.colorSpec, "color", r.config.Canvas.Color, "pen color name or hex value")
	fs.IntVar(&d.lineWidth, "line-width", r.config.Canvas.LineWidth, "pen width in pixels")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: d}
	}
	if d.width < 0 || d.height < 0 {
		return nil, fmt.Errorf("canvas size must not be negative")
	}
	if _, err := parseColor(d.colorSpec); err != nil {
		return nil, err
	}
	if d.lineWidth < 1 {
		d.lineWidth = canvas.DefaultWidth
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	size := platform.WindowSize(image.Pt(d.width, d.height), fallbackCanvas)
	if d.height <= 0 {
		size.Y -= d.toolbarHeight()
		if size.Y < 1 {
			size.Y = fallbackCanvas.Y
		}
	}
	s, err := d.newSession(size)
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	defer s.Close()
	col, _ := parseColor(d.colorSpec)
	s.SetColor(col)
	s.SetWidth(d.lineWidth)

	app := ui.New(s,
		ui.WithTheme(d.currentTheme()),
		ui.WithNotifier(d.notifier),
		ui.WithTitle(windowTitle(titleOptions{Mode: "draw", Endpoint: d.apiURL, Theme: d.currentTheme().Name})),
		ui.WithToolbarHeight(d.toolbarHeight()),
		ui.WithTouchOffset(d.config.Canvas.TouchOffset),
		ui.WithTextSize(d.config.Results.TextSize),
		ui.WithRunTimeout(d.config.Results.Timeout),
		ui.WithOnClose(s.Close),
	)
	app.Run()
	return nil
}

func (d *drawCmd) toolbarHeight() int {
	if h := d.config.Canvas.ToolbarHeight; h > 0 {
		return h
	}
	return ui.DefaultToolbarHeight
}

package main

import (
	"flag"
	"fmt"

	"github.com/example/inkcalc/internal/canvas"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ContinueOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	palette := canvas.Palette()
	if len(palette) == 0 {
		fmt.Fprintln(c.stdout, "no colors available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available palette colors (* marks the pen color):")
	pen := c.pen().Color
	for idx, entry := range palette {
		marker := " "
		if entry.Color == pen {
			marker = "*"
		}
		hex := canvas.Hex(entry.Color)
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.stdout, "%s %2d: %-12s %s %s\n", marker, idx+1, entry.Name, hex, block)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

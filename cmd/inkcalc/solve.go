package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/example/inkcalc/internal/calc"
	"github.com/example/inkcalc/internal/clipboard"
	"github.com/example/inkcalc/internal/overlay"
)

// varList collects repeated -var name=value flags.
type varList map[string]string

func (v varList) String() string {
	parts := make([]string, 0, len(v))
	for k, val := range v {
		parts = append(parts, k+"="+val)
	}
	return strings.Join(parts, ",")
}

func (v varList) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("variable %q must be name=value", s)
	}
	v[name] = strings.TrimSpace(value)
	return nil
}

// solveCmd sends one image to the backend and prints the reply.
type solveCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	vars   varList
	toClip bool
}

func (s *solveCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSolveCmd(args []string, r *root) (*solveCmd, error) {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	s := &solveCmd{root: r, fs: fs, vars: varList{}}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.file, "file", "", "PNG image to solve")
	fs.Var(s.vars, "var", "known variable as name=value (may be specified multiple times)")
	fs.BoolVar(&s.toClip, "to-clipboard", false, "copy the results to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: s}
	}
	if s.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	return s, nil
}

func (s *solveCmd) Run() error {
	img, err := loadPNG(s.file)
	if err != nil {
		return fmt.Errorf("solve %s: %w", s.file, err)
	}
	timeout := s.config.Results.Timeout
	if timeout <= 0 {
		timeout = calc.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	outcome, err := s.client().Calculate(ctx, img, s.vars)
	if err != nil {
		return fmt.Errorf("solve %s: %w", s.file, err)
	}
	switch o := outcome.(type) {
	case calc.Failure:
		return fmt.Errorf("solve %s: %s", s.file, o.Message)
	case calc.Empty:
		fmt.Fprintln(s.stdout, "No result found")
		return nil
	case calc.Success:
		records := make([]overlay.Record, len(o.Entries))
		for i, e := range o.Entries {
			records[i] = overlay.Record{Expression: e.Expr, Answer: e.Result}
			marker := ""
			if e.Assign {
				marker = " (assigned)"
			}
			fmt.Fprintf(s.stdout, "%s%s\n", records[i].Text(), marker)
		}
		if s.toClip {
			if err := clipboard.WriteResults(records); err != nil {
				return fmt.Errorf("copy results: %w", err)
			}
			s.notifier.Copy("results")
		}
		return nil
	}
	return errors.New("solve: unexpected reply")
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

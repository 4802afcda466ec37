package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/example/inkcalc/internal/calc"
	"github.com/example/inkcalc/internal/canvas"
	"github.com/example/inkcalc/internal/clipboard"
	"github.com/example/inkcalc/internal/input"
	"github.com/example/inkcalc/internal/notify"
	"github.com/example/inkcalc/internal/session"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, "; ")
}

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

// consoleCmd drives a session from text commands. Results are shown
// immediately rather than staggered.
type consoleCmd struct {
	*root
	fs     *flag.FlagSet
	execs  commandList
	width  int
	height int

	session *session.Session
}

func (c *consoleCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConsoleCmd(args []string, r *root) (*consoleCmd, error) {
	fs := flag.NewFlagSet("console", flag.ContinueOnError)
	c := &consoleCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.Var(&c.execs, "e", "execute a console command (may be specified multiple times)")
	fs.IntVar(&c.width, "width", 800, "canvas width in pixels")
	fs.IntVar(&c.height, "height", 600, "canvas height in pixels")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.width < 1 || c.height < 1 {
		return nil, fmt.Errorf("canvas size must be positive")
	}
	return c, nil
}

func (c *consoleCmd) Run() error {
	s, err := c.newSession(image.Pt(c.width, c.height), session.WithStagger(0))
	if err != nil {
		return fmt.Errorf("console: %w", err)
	}
	defer s.Close()
	c.session = s
	c.notifier.AddSink(func(event notify.Event, text string) {
		if event == notify.EventError {
			fmt.Fprintf(c.stderr, "error: %s\n", text)
			return
		}
		fmt.Fprintln(c.stdout, text)
	})

	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := c.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(c.stdout, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := c.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command and reports whether the console should stop.
func (c *consoleCmd) executeLine(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return false, nil
	}
	s := c.session
	name, rest := strings.ToLower(args[0]), args[1:]
	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprint(c.stdout, (&UsageError{of: c}).Error())
	case "stroke":
		points, err := parsePoints(rest)
		if err != nil {
			return false, err
		}
		c.stroke(points)
	case "color":
		if len(rest) != 1 {
			return false, errors.New("color requires a name or hex value")
		}
		col, err := parseColor(rest[0])
		if err != nil {
			return false, err
		}
		s.SetColor(col)
	case "width":
		if len(rest) != 1 {
			return false, errors.New("width requires a value")
		}
		w, err := strconv.Atoi(rest[0])
		if err != nil {
			return false, fmt.Errorf("invalid width %q", rest[0])
		}
		s.SetWidth(w)
	case "undo":
		if !s.Undo() {
			fmt.Fprintln(c.stdout, "nothing to undo")
		}
		s.Sync()
	case "redo":
		if !s.Redo() {
			fmt.Fprintln(c.stdout, "nothing to redo")
		}
		s.Sync()
	case "reset":
		s.Reset()
	case "run":
		ctx, cancel := context.WithTimeout(context.Background(), c.runTimeout())
		defer cancel()
		if _, err := s.Run(ctx); err != nil && !errors.Is(err, calc.ErrTransport) {
			return false, err
		}
	case "vars":
		c.printVars()
	case "results":
		for _, r := range s.Results() {
			fmt.Fprintln(c.stdout, r.Text())
		}
	case "save":
		if len(rest) != 1 {
			return false, errors.New("save requires a file name")
		}
		s.Sync()
		if err := savePNG(rest[0], s.Flatten()); err != nil {
			return false, err
		}
		fmt.Fprintf(c.stdout, "saved %s\n", rest[0])
	case "copy":
		return false, c.copy(rest)
	case "status":
		s.Sync()
		pen := s.Pen()
		fmt.Fprintf(c.stdout, "history %d, redo %d, pen %s width %d, results %d, vars %d, anchor %v\n",
			s.HistoryLen(), s.RedoLen(), canvas.Hex(pen.Color), pen.Width, len(s.Results()), len(s.Bindings()), s.Anchor())
	default:
		return false, fmt.Errorf("unknown command %q", args[0])
	}
	return false, nil
}

// stroke replays points as a single pointer gesture.
func (c *consoleCmd) stroke(points []image.Point) {
	first, last := points[0], points[len(points)-1]
	c.session.Pointer(input.Event{X: first.X, Y: first.Y, Phase: input.PhaseDown})
	for _, p := range points[1:] {
		c.session.Pointer(input.Event{X: p.X, Y: p.Y, Phase: input.PhaseMove})
	}
	c.session.Pointer(input.Event{X: last.X, Y: last.Y, Phase: input.PhaseUp})
}

func (c *consoleCmd) copy(args []string) error {
	s := c.session
	if len(args) > 0 && args[0] == "results" {
		if err := clipboard.WriteResults(s.Results()); err != nil {
			return fmt.Errorf("copy results: %w", err)
		}
		c.notifier.Copy("results")
		return nil
	}
	s.Sync()
	if err := clipboard.WriteImage(s.Flatten()); err != nil {
		return fmt.Errorf("copy canvas: %w", err)
	}
	c.notifier.Copy("canvas")
	return nil
}

func (c *consoleCmd) printVars() {
	vars := c.session.Bindings()
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(c.stdout, "%s = %s\n", k, vars[k])
	}
}

func (c *consoleCmd) runTimeout() time.Duration {
	if t := c.config.Results.Timeout; t > 0 {
		return t
	}
	return calc.DefaultTimeout
}

func parsePoints(args []string) ([]image.Point, error) {
	if len(args) < 4 || len(args)%2 != 0 {
		return nil, errors.New("stroke requires at least two x y pairs")
	}
	points := make([]image.Point, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", args[i])
		}
		y, err := strconv.Atoi(args[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", args[i+1])
		}
		points = append(points, image.Pt(x, y))
	}
	return points, nil
}

func savePNG(path string, img image.Image) error {
	if img == nil {
		return errors.New("nothing to save")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

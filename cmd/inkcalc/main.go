package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/example/inkcalc/internal/calc"
	"github.com/example/inkcalc/internal/canvas"
	"github.com/example/inkcalc/internal/config"
	"github.com/example/inkcalc/internal/notify"
	"github.com/example/inkcalc/internal/session"
	"github.com/example/inkcalc/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	apiURL      string
	themeName   string
	activeTheme *theme.Theme

	errorAlerts  bool
	emptyAlerts  bool
	resultAlerts bool
	copyAlerts   bool

	// calculator replaces the HTTP client when set.
	calculator calc.Calculator

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	sub := *r
	sub.fs = nil
	sub.program = strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &sub
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
		cfg.ApplyEnv()
	}
	return newRootWithConfig(cfg)
}

func newRootWithConfig(cfg *config.Config) *root {
	prefs := notify.LoadPreferences(notify.DefaultPreferences())
	r := &root{
		fs:       flag.NewFlagSet("inkcalc", flag.ContinueOnError),
		program:  "inkcalc",
		notifier: notify.New(prefs),
		config:   cfg,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	// Precedence: CLI > Env > Config > Default. The loader has already
	// folded the environment into cfg.
	r.fs.StringVar(&r.apiURL, "api", cfg.APIURL, "base URL of the recognition backend")
	r.fs.StringVar(&r.themeName, "theme", cfg.Theme, "color theme to use ("+strings.Join(theme.Names(), ", ")+")")
	r.fs.BoolVar(&r.errorAlerts, "notify-error", cfg.Notify.Error, "show a desktop notification when a run fails")
	r.fs.BoolVar(&r.emptyAlerts, "notify-empty", cfg.Notify.Empty, "show a desktop notification when nothing was recognised")
	r.fs.BoolVar(&r.resultAlerts, "notify-result", cfg.Notify.Result, "show a desktop notification with each result")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Enable(notify.EventError, r.errorAlerts)
	r.notifier.Enable(notify.EventEmpty, r.emptyAlerts)
	r.notifier.Enable(notify.EventResult, r.resultAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	r.activeTheme = r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r.subcommand("draw"))
	case "console":
		cmd, err = parseConsoleCmd(subArgs, r.subcommand("console"))
	case "solve":
		cmd, err = parseSolveCmd(subArgs, r.subcommand("solve"))
	case "serve":
		cmd, err = parseServeCmd(subArgs, r.subcommand("serve"))
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r.subcommand("colors"))
	case "config":
		cmd, err = parseConfigCmd(subArgs, r.subcommand("config"))
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// loadTheme resolves the theme named on the command line or in the config,
// falling back to the default with a warning when it cannot be loaded.
func (r *root) loadTheme() *theme.Theme {
	r.config.Theme = r.themeName
	t, err := r.config.ResolveTheme(theme.NewLoader())
	if err != nil {
		if r.themeName != "default" {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", r.themeName, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) currentTheme() *theme.Theme {
	if r.activeTheme == nil {
		return theme.Default()
	}
	return r.activeTheme
}

func (r *root) client() calc.Calculator {
	if r.calculator != nil {
		return r.calculator
	}
	url := r.apiURL
	if url == "" {
		url = r.config.APIURL
	}
	c := calc.NewClient(url)
	if r.config.Results.Timeout > 0 {
		c.HTTP.Timeout = r.config.Results.Timeout
	}
	return c
}

func (r *root) pen() canvas.Pen {
	pen := canvas.DefaultPen()
	if c, err := canvas.ParseColor(r.config.Canvas.Color); err == nil {
		pen.Color = c
	} else if r.config.Canvas.Color != "" {
		fmt.Fprintf(r.stderr, "warning: %v\n", err)
	}
	if r.config.Canvas.LineWidth > 0 {
		pen.Width = r.config.Canvas.LineWidth
	}
	return pen
}

// newSession creates a drawing session of the given size wired to the
// configured backend and notifier.
func (r *root) newSession(size image.Point, opts ...session.Option) (*session.Session, error) {
	surface := canvas.NewSurface(size.X, size.Y, r.currentTheme().Canvas)
	base := []session.Option{
		session.WithStagger(r.config.Results.Stagger),
		session.WithSpacing(r.config.Results.Spacing),
		session.WithHistoryLimit(r.config.Canvas.HistoryLimit),
		session.WithNotifier(r.notifier),
		session.WithPen(r.pen()),
	}
	return session.New(surface, r.client(), append(base, opts...)...)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.As(err, &uerr):
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		case errors.Is(err, flag.ErrHelp):
			os.Exit(0)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/example/inkcalc/internal/theme"
)

// DefaultAPIURL is the base URL of a locally running backend.
const DefaultAPIURL = "http://localhost:8900"

// Canvas holds drawing settings.
type Canvas struct {
	Width         int // 0 picks a size from the screen
	Height        int
	LineWidth     int
	Color         string
	TouchOffset   int
	ToolbarHeight int
	HistoryLimit  int // 0 keeps every stroke
}

// Results holds settings for the backend round-trip and result labels.
type Results struct {
	Stagger  time.Duration
	Spacing  int
	Timeout  time.Duration
	TextSize float64
}

// Notify selects which events also raise desktop notifications.
type Notify struct {
	Error  bool
	Empty  bool
	Result bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	APIURL  string
	Theme   string
	Canvas  Canvas
	Results Results
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		APIURL: DefaultAPIURL,
		Canvas: Canvas{
			LineWidth:     3,
			Color:         "#ffffff",
			TouchOffset:   20,
			ToolbarHeight: 80,
		},
		Results: Results{
			Stagger:  time.Second,
			Spacing:  40,
			Timeout:  30 * time.Second,
			TextSize: 24,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ApplyEnv overrides fields from INKCALC_* environment variables.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("INKCALC_API_URL")); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("INKCALC_THEME")); v != "" {
		c.Theme = v
	}
}

// ResolveTheme returns the named theme, looking at themes declared in the
// config before asking the loader.
func (c *Config) ResolveTheme(l *theme.Loader) (*theme.Theme, error) {
	if t, ok := c.Themes[c.Theme]; ok {
		return t, nil
	}
	return l.Load(c.Theme)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.APIURL != "" {
		fmt.Fprintf(&sb, "api_url = %s\n", c.APIURL)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	fmt.Fprintf(&sb, "line_width = %d\n", c.Canvas.LineWidth)
	fmt.Fprintf(&sb, "color = %s\n", c.Canvas.Color)
	fmt.Fprintf(&sb, "touch_offset = %d\n", c.Canvas.TouchOffset)
	fmt.Fprintf(&sb, "toolbar_height = %d\n", c.Canvas.ToolbarHeight)
	fmt.Fprintf(&sb, "history_limit = %d\n", c.Canvas.HistoryLimit)
	sb.WriteString("\n")

	sb.WriteString("[results]\n")
	fmt.Fprintf(&sb, "stagger = %s\n", c.Results.Stagger)
	fmt.Fprintf(&sb, "spacing = %d\n", c.Results.Spacing)
	fmt.Fprintf(&sb, "timeout = %s\n", c.Results.Timeout)
	fmt.Fprintf(&sb, "text_size = %g\n", c.Results.TextSize)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "error = %v\n", c.Notify.Error)
	fmt.Fprintf(&sb, "empty = %v\n", c.Notify.Empty)
	fmt.Fprintf(&sb, "result = %v\n", c.Notify.Result)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

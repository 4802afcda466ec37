package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	input := `
api_url = http://calc.local:9000/api
theme = my_custom_theme

[canvas]
width = 800
height = 600
line_width = 5
color = teal
touch_offset = 12
history_limit = 20

[results]
stagger = 250ms
spacing = 32
timeout = 5000

[notify]
error = true
empty = false
copy = true

[theme.my_custom_theme]
Canvas = #111111
Label: #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.APIURL != "http://calc.local:9000/api" {
		t.Errorf("api_url = %q", cfg.APIURL)
	}
	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	want := Canvas{Width: 800, Height: 600, LineWidth: 5, Color: "teal", TouchOffset: 12, ToolbarHeight: 80, HistoryLimit: 20}
	if cfg.Canvas != want {
		t.Errorf("canvas = %+v, want %+v", cfg.Canvas, want)
	}
	if cfg.Results.Stagger != 250*time.Millisecond || cfg.Results.Spacing != 32 || cfg.Results.Timeout != 5*time.Second {
		t.Errorf("results = %+v", cfg.Results)
	}
	if cfg.Notify != (Notify{Error: true, Copy: true}) {
		t.Errorf("notify = %+v", cfg.Notify)
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Canvas.R != 0x11 || theme.Canvas.G != 0x11 || theme.Canvas.B != 0x11 {
		t.Errorf("Unexpected Canvas color: %+v", theme.Canvas)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"bad bool":     "[notify]\nerror = maybe\n",
		"bad number":   "[canvas]\nwidth = wide\n",
		"negative":     "[canvas]\nline_width = -2\n",
		"bad duration": "[results]\nstagger = soon\n",
		"bad colour":   "[theme.x]\nCanvas = black\n",
	}
	for name, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
api_url = http://localhost:8900

[canvas]
history_limit = 7

[results]
stagger = 1.5s

[notify]
error = true
result = true

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
ToastBackground = #10203040
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme || cfg.APIURL != cfg2.APIURL {
		t.Errorf("root mismatch: %q/%q vs %q/%q", cfg.Theme, cfg.APIURL, cfg2.Theme, cfg2.APIURL)
	}
	if cfg.Canvas != cfg2.Canvas {
		t.Errorf("Canvas mismatch: %+v vs %+v", cfg.Canvas, cfg2.Canvas)
	}
	if cfg.Results != cfg2.Results {
		t.Errorf("Results mismatch: %+v vs %+v", cfg.Results, cfg2.Results)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderPrefersOverrideAndAppliesEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("api_url = http://file\ntheme = light\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INKCALC_API_URL", "http://env")
	t.Setenv("INKCALC_THEME", "")

	l := NewLoader("v1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("config path = %q", got)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://env" {
		t.Errorf("env did not override api_url: %q", cfg.APIURL)
	}
	if cfg.Theme != "light" {
		t.Errorf("theme = %q", cfg.Theme)
	}
}

func TestLoaderDevDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("INKCALC_THEME", "")
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".inkcalcrc"), []byte("theme = chalkboard\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := NewLoader("v1", "").GetConfigPath(); got != "" {
		t.Fatalf("release build picked up %q", got)
	}
	cfg, err := NewLoader("dev", "").Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "chalkboard" {
		t.Fatalf("theme = %q", cfg.Theme)
	}
}

func TestResolveThemePrefersConfigThemes(t *testing.T) {
	cfg, err := Parse(strings.NewReader("theme = mine\n[theme.mine]\nCanvas = #010101\n"))
	if err != nil {
		t.Fatal(err)
	}
	th, err := cfg.ResolveTheme(nil)
	if err != nil || th.Name != "mine" {
		t.Fatalf("resolve: %v %v", th, err)
	}
}

package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/example/inkcalc/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if themeName, ok := strings.CutPrefix(currentSection, "theme."); ok {
				// start from defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.SetField(currentTheme, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		case currentSection == "canvas":
			err = setCanvasField(&cfg.Canvas, key, value)
		case currentSection == "results":
			err = setResultsField(&cfg.Results, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

// splitKeyValue accepts "key = value" and "Key: value". The first separator
// wins so URLs in values survive.
func splitKeyValue(line string) (string, string, bool) {
	i := strings.IndexAny(line, "=:")
	if i < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:i])
	value := strings.TrimSpace(line[i+1:])
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "api_url":
		cfg.APIURL = value
	case "theme":
		cfg.Theme = value
	}
	return nil
}

func setCanvasField(c *Canvas, key, value string) error {
	if strings.EqualFold(key, "color") {
		c.Color = value
		return nil
	}
	var dst *int
	switch strings.ToLower(key) {
	case "width":
		dst = &c.Width
	case "height":
		dst = &c.Height
	case "line_width":
		dst = &c.LineWidth
	case "touch_offset":
		dst = &c.TouchOffset
	case "toolbar_height":
		dst = &c.ToolbarHeight
	case "history_limit":
		dst = &c.HistoryLimit
	default:
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid number for key %s: %q", key, value)
	}
	*dst = n
	return nil
}

func setResultsField(r *Results, key, value string) error {
	switch strings.ToLower(key) {
	case "stagger", "timeout":
		d, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for key %s: %w", key, err)
		}
		if strings.EqualFold(key, "stagger") {
			r.Stagger = d
		} else {
			r.Timeout = d
		}
	case "spacing":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid number for key %s: %q", key, value)
		}
		r.Spacing = n
	case "text_size":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid size for key %s: %q", key, value)
		}
		r.TextSize = f
	}
	return nil
}

// parseDuration accepts Go durations and bare integers as milliseconds.
func parseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative duration %d", n)
		}
		return time.Duration(n) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "error":
		n.Error = b
	case "empty":
		n.Empty = b
	case "result":
		n.Result = b
	case "copy":
		n.Copy = b
	}
	return nil
}

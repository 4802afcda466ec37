package main

import (
	"fmt"
	"strings"
)

type titleOptions struct {
	Mode     string
	Endpoint string
	Theme    string
	Extras   []string
}

func windowTitle(opts titleOptions) string {
	parts := []string{"inkcalc"}

	mode := strings.TrimSpace(opts.Mode)
	if mode != "" {
		parts = append(parts, mode)
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	extras := make([]string, 0, len(opts.Extras)+3)

	if t := strings.TrimSpace(opts.Theme); t != "" {
		extras = append(extras, fmt.Sprintf("theme %s", t))
	}

	if strings.TrimSpace(version) != "" {
		extras = append(extras, fmt.Sprintf("v%s", strings.TrimSpace(version)))
	}

	if strings.TrimSpace(commit) != "" {
		extras = append(extras, fmt.Sprintf("commit %s", strings.TrimSpace(commit)))
	}

	if len(opts.Extras) > 0 {
		extras = append(extras, opts.Extras...)
	}

	if len(extras) > 0 {
		parts = append(parts, extras...)
	}

	return strings.Join(parts, " - ")
}

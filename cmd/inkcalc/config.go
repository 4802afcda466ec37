package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/inkcalc/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		return c.runPrint()
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

// effective returns the loaded configuration with command line overrides.
func (c *configCmd) effective() *config.Config {
	cfg := *c.config
	cfg.APIURL = c.apiURL
	cfg.Theme = c.themeName
	cfg.Notify = config.Notify{Error: c.errorAlerts, Empty: c.emptyAlerts, Result: c.resultAlerts, Copy: c.copyAlerts}
	return &cfg
}

func (c *configCmd) runPrint() error {
	fmt.Fprint(c.stdout, c.effective().String())
	return nil
}

func (c *configCmd) runSave() error {
	loader := config.NewLoader(version, configPathOverride)
	path := loader.GetConfigPath()
	if path == "" {
		path = loader.DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(c.effective().String()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(c.stderr, "Configuration saved to %s\n", path)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/lpforge/lpforge/internal/config"
	"github.com/lpforge/lpforge/internal/render"
)

// loadConfig loads and validates the config, providing a user-friendly
// error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `lpforge init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newRenderer builds the page renderer from config, honoring a custom
// template path when one is set.
func newRenderer(cfg *config.Config) (*render.Renderer, error) {
	r, err := render.NewFromFile(cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	return r, nil
}

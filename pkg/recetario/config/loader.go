package config

import (
	"fmt"

	"github.com/cognicore/recetario/pkg/recetario/section"
	"github.com/cognicore/recetario/pkg/recetario/units"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	UnitsPath   string
	HeadersPath string
}

// Components holds all loaded configuration components
type Components struct {
	Units   *units.Table
	Headers *section.Headers
}

// Load reads all configuration files and returns initialized
// components. Missing paths fall back to the built-in defaults.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.UnitsPath != "" {
		cfg, err := LoadUnits(l.UnitsPath)
		if err != nil {
			return nil, fmt.Errorf("load units: %w", err)
		}
		comp.Units = units.NewTable(cfg.Units)
	} else {
		comp.Units = units.DefaultTable()
	}

	if l.HeadersPath != "" {
		cfg, err := LoadHeaders(l.HeadersPath)
		if err != nil {
			return nil, fmt.Errorf("load headers: %w", err)
		}
		comp.Headers = section.NewHeaders(cfg.Ingredients, cfg.Preparation, cfg.Notes)
	} else {
		comp.Headers = section.DefaultHeaders()
	}

	return comp, nil
}

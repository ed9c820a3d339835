package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/recetario/pkg/recetario/internalerr"
)

// Units represents the unit table configuration: canonical tag →
// surface form list.
type Units struct {
	Units map[string][]string `yaml:"units"`
}

// LoadUnits loads a unit table from a YAML file
func LoadUnits(path string) (*Units, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var u Units
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	if len(u.Units) == 0 {
		return nil, fmt.Errorf("%w: %s defines no units", internalerr.ErrInvalidConfig, path)
	}

	return &u, nil
}

// Headers represents the section header vocabulary configuration
type Headers struct {
	Ingredients []string `yaml:"ingredients"`
	Preparation []string `yaml:"preparation"`
	Notes       []string `yaml:"notes"`
}

// LoadHeaders loads header vocabularies from a YAML file
func LoadHeaders(path string) (*Headers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var h Headers
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	if len(h.Ingredients)+len(h.Preparation)+len(h.Notes) == 0 {
		return nil, fmt.Errorf("%w: %s defines no header words", internalerr.ErrInvalidConfig, path)
	}

	return &h, nil
}

// Package config loads scenario files. Scenarios are written in YAML (JSON
// works too, being a YAML subset), validated on load, and handed to the
// engine as immutable domain values.
package config

import (
	"fmt"
	"os"

	"github.com/nwgo/networth-simulator/internal/domain"
	"github.com/nwgo/networth-simulator/internal/simulation"
	"gopkg.in/yaml.v3"
)

// DefaultNumSimulations is used when a scenario omits n_simulations.
const DefaultNumSimulations = 1000

// ScenarioLoader parses and validates scenario configuration files.
type ScenarioLoader struct{}

// NewScenarioLoader creates a new scenario loader.
func NewScenarioLoader() *ScenarioLoader {
	return &ScenarioLoader{}
}

// LoadFromFile loads a scenario from a YAML or JSON file.
func (l *ScenarioLoader) LoadFromFile(filename string) (*domain.ScenarioConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	sc, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sc, nil
}

// Parse unmarshals scenario bytes, applies defaults and validates the
// result. Validation failures come back as the engine's typed
// *simulation.InvalidConfigurationError.
func (l *ScenarioLoader) Parse(data []byte) (*domain.ScenarioConfig, error) {
	var sc domain.ScenarioConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.applyDefaults(&sc)

	if err := simulation.ValidateScenario(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// applyDefaults fills the fields a scenario may omit.
func (l *ScenarioLoader) applyDefaults(sc *domain.ScenarioConfig) {
	if sc.NumSimulations == 0 {
		sc.NumSimulations = DefaultNumSimulations
	}
}

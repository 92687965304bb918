// Package settings loads and saves the tunables of a simulation: the movement config shared by
// every controller, the stamina pool and the host loop.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/sim"
	"github.com/oomph-ac/locomotion/stamina"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Settings contains everything that can be configured in a settings file.
type Settings struct {
	Movement   locomotion.Config `toml:"movement" yaml:"movement"`
	Stamina    stamina.Config    `toml:"stamina" yaml:"stamina"`
	Simulation sim.Config        `toml:"simulation" yaml:"simulation"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Movement:   locomotion.DefaultConfig(),
		Stamina:    stamina.DefaultConfig(),
		Simulation: sim.DefaultConfig(),
	}
}

// Validate checks every section of the settings.
func (s Settings) Validate() error {
	if err := s.Movement.Validate(); err != nil {
		return fmt.Errorf("movement: %w", err)
	}
	if err := s.Stamina.Validate(); err != nil {
		return fmt.Errorf("stamina: %w", err)
	}
	if err := s.Simulation.Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	return nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
// The format is picked from the file extension: .yaml and .yml files are written as YAML, anything else as TOML.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := encode(path, DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %v", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist or holds
// invalid values. Values missing from the file keep their defaults.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %v", err)
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, &settings)
	} else {
		err = toml.Unmarshal(data, &settings)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %v", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return settings, nil
}

// LoadOrCreate loads the settings at path, writing the defaults there first if the file does not exist yet.
func LoadOrCreate(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveDefault(path); err != nil {
			return Settings{}, err
		}
	}
	return Load(path)
}

func encode(path string, s Settings) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(s)
	}
	return toml.Marshal(s)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

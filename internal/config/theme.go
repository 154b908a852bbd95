package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// themeFile is the layout of a theme YAML file
type themeFile struct {
	Commander *ColorsConfig `yaml:"mm3commander"`
}

// LoadTheme reads a YAML theme. Colors the file leaves out keep their
// defaults. An empty path returns the defaults.
func LoadTheme(path string) (*ColorsConfig, error) {
	colors := DefaultColors()
	if path == "" {
		return colors, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	theme := themeFile{Commander: colors}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if theme.Commander == nil {
		return nil, fmt.Errorf("invalid theme file: missing mm3commander section")
	}
	return theme.Commander, nil
}

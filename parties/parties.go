// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package parties maps party and candidate labels to chart colors.
package parties

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed parties.yaml
var defaultYAML []byte

// FallbackColor is used for labels nobody assigned a color to
const FallbackColor = "#808080"

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type paletteFile struct {
	Default string            `yaml:"default"`
	Colors  map[string]string `yaml:"colors"`
}

// Palette resolves labels to hex colors
type Palette struct {
	fallback string
	colors   map[string]string
}

// Default returns the built-in palette
func Default() (*Palette, error) {
	p := &Palette{fallback: FallbackColor, colors: make(map[string]string)}
	if err := p.merge(defaultYAML); err != nil {
		return nil, fmt.Errorf("built-in palette: %w", err)
	}
	return p, nil
}

// Load returns the built-in palette with the colors from path merged over it.
// An empty path returns the built-in palette.
func Load(path string) (*Palette, error) {
	p, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette: %w", err)
	}
	if err := p.merge(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func (p *Palette) merge(data []byte) error {
	var file paletteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse palette: %w", err)
	}

	if file.Default != "" {
		if !hexColor.MatchString(file.Default) {
			return fmt.Errorf("invalid default color %q", file.Default)
		}
		p.fallback = strings.ToUpper(file.Default)
	}

	for label, color := range file.Colors {
		if !hexColor.MatchString(color) {
			return fmt.Errorf("invalid color %q for %s", color, label)
		}
		p.colors[norm.NFC.String(label)] = strings.ToUpper(color)
	}
	return nil
}

// Color returns the color of a label, or the fallback
func (p *Palette) Color(label string) string {
	if c, ok := p.colors[norm.NFC.String(label)]; ok {
		return c
	}
	return p.fallback
}

// Colors resolves every label, as a chart's discrete color map
func (p *Palette) Colors(labels []string) map[string]string {
	out := make(map[string]string, len(labels))
	for _, label := range labels {
		out[label] = p.Color(label)
	}
	return out
}

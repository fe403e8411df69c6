// Package styles holds the semantic lipgloss styles used by slinky's
// terminal output. Styles are defined in an embedded YAML file and looked up
// by name, so commands never hard-code colors.
package styles

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/slinky/pkg/errors"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	MarginTop  int    `yaml:"marginTop,omitempty"`
	MarginLeft int    `yaml:"marginLeft,omitempty"`
}

// Config is the YAML document
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

// Registry maps semantic names to lipgloss styles
type Registry struct {
	styles map[string]lipgloss.Style
}

// Default returns the registry built from the embedded styles. The embedded
// file is part of the binary, so failing to parse it is a programming error.
func Default() *Registry {
	r, err := Parse(embeddedStyles)
	if err != nil {
		panic(err)
	}
	return r
}

// Parse builds a registry from YAML data.
func Parse(data []byte) (*Registry, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	r := &Registry{styles: make(map[string]lipgloss.Style, len(cfg.Styles))}
	for name, def := range cfg.Styles {
		style, err := build(def, colors)
		if err != nil {
			return nil, err.WithDetail("style", name)
		}
		r.styles[name] = style
	}
	return r, nil
}

func build(def StyleDef, colors map[string]lipgloss.AdaptiveColor) (lipgloss.Style, *errors.SlinkyError) {
	style := lipgloss.NewStyle().
		Bold(def.Bold).
		Italic(def.Italic).
		Underline(def.Underline)

	if def.Foreground != "" {
		c, ok := colors[def.Foreground]
		if !ok {
			return style, errors.Newf(errors.ErrConfigParse, "unknown color %q", def.Foreground)
		}
		style = style.Foreground(c)
	}
	if def.Background != "" {
		c, ok := colors[def.Background]
		if !ok {
			return style, errors.Newf(errors.ErrConfigParse, "unknown color %q", def.Background)
		}
		style = style.Background(c)
	}
	if def.MarginTop > 0 {
		style = style.MarginTop(def.MarginTop)
	}
	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	return style, nil
}

// Get returns the named style, or an empty style for unknown names.
func (r *Registry) Get(name string) lipgloss.Style {
	if s, ok := r.styles[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Has reports whether name is defined.
func (r *Registry) Has(name string) bool {
	_, ok := r.styles[name]
	return ok
}

// Render applies the named style to text.
func (r *Registry) Render(name, text string) string {
	return r.Get(name).Render(text)
}

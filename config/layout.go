package config

// layout.go - alternate key layouts read from TOML, YAML or JSON.
//
//	name = "nordic"
//	[keys]
//	2 = "ABCÅÄ"
//	6 = "MNOÖ"

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"t9pad/internal/errors"
	"t9pad/keypad"
)

// Format identifies a layout file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatAuto Format = ""
)

// Layout is the on-disk representation of a key map.
type Layout struct {
	Name string            `toml:"name" yaml:"name" json:"name"`
	Keys map[string]string `toml:"keys" yaml:"keys" json:"keys"`
}

// LoadLayout reads and parses the layout at path.  The format follows
// the file extension; files without one are auto-detected.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	format, ok := formatOf(path)
	if !ok {
		if extOf(path) != "" {
			return nil, &errors.ConfigError{
				Field:   "layout",
				Value:   path,
				Message: "unsupported layout format",
				Hint:    "use a .toml, .yaml or .json file",
			}
		}
		format = FormatAuto
	}
	l, err := ParseLayout(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return l, nil
}

// LoadKeyMap loads the layout at path and builds its KeyMap.
func LoadKeyMap(path string) (*keypad.KeyMap, error) {
	l, err := LoadLayout(path)
	if err != nil {
		return nil, err
	}
	km, err := l.KeyMap()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return km, nil
}

// ParseLayout decodes data in the given format.  FormatAuto tries TOML,
// then YAML, then JSON.
func ParseLayout(data []byte, format Format) (*Layout, error) {
	l := &Layout{}
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), l); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, l); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, l); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case FormatAuto:
		if err := autoDetectAndParse(data, l); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown layout format %q", format)
	}
	return l, nil
}

// KeyMap validates the layout and converts it to a keypad.KeyMap.
func (l *Layout) KeyMap() (*keypad.KeyMap, error) {
	table := make(map[rune]string, len(l.Keys))
	for k, letters := range l.Keys {
		key, size := utf8.DecodeRuneInString(k)
		if size == 0 || size != len(k) {
			return nil, &errors.LayoutError{Key: k, Message: "must be a single key"}
		}
		table[key] = letters
	}
	return keypad.NewKeyMap(table)
}

// autoDetectAndParse attempts each supported format in turn and keeps
// the first one that yields keys.
func autoDetectAndParse(data []byte, l *Layout) error {
	var (
		attempts []error
		parsed   bool
	)
	for _, f := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		candidate, err := ParseLayout(data, f)
		if err != nil {
			attempts = append(attempts, err)
			continue
		}
		parsed = true
		if len(candidate.Keys) == 0 {
			continue
		}
		*l = *candidate
		return nil
	}
	if parsed {
		return &errors.LayoutError{Message: "no keys defined"}
	}
	return fmt.Errorf("unrecognised layout format: %w", errors.Join(attempts...))
}

func extOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func formatOf(path string) (Format, bool) {
	switch extOf(path) {
	case "toml":
		return FormatTOML, true
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	}
	return FormatAuto, false
}

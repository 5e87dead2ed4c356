// Package level loads and saves level files. A level file overrides the
// default rooftop level section by section, so a file that only sets
// tuning keeps the stock platforms, coins and beats.
package level

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/maxwellsmart84/portfolio-2025/internal/game"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for a file extension that is neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown level format")

// Format is a level file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Load reads a level file and validates the result.
func Load(path string) (game.Level, error) {
	format, err := FormatOf(path)
	if err != nil {
		return game.Level{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return game.Level{}, fmt.Errorf("reading level file: %w", err)
	}
	lvl, err := Decode(data, format)
	if err != nil {
		return game.Level{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return lvl, nil
}

// Decode parses data over the default level and validates it.
func Decode(data []byte, format Format) (game.Level, error) {
	lvl := game.DefaultLevel()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &lvl); err != nil {
			return game.Level{}, fmt.Errorf("parsing level yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &lvl); err != nil {
			return game.Level{}, fmt.Errorf("parsing level toml: %w", err)
		}
	default:
		return game.Level{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := lvl.Validate(); err != nil {
		return game.Level{}, err
	}
	return lvl, nil
}

// Encode writes lvl in the given format.
func Encode(lvl game.Level, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(&lvl)
		if err != nil {
			return nil, fmt.Errorf("marshaling level: %w", err)
		}
		return out, nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(lvl); err != nil {
			return nil, fmt.Errorf("marshaling level: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes lvl to path, choosing the format from the extension.
func Save(path string, lvl game.Level) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	out, err := Encode(lvl, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing level file: %w", err)
	}
	return nil
}

// LoadOrDefault loads path, or returns the default level when path is empty.
func LoadOrDefault(path string) (game.Level, error) {
	if path == "" {
		return game.DefaultLevel(), nil
	}
	return Load(path)
}

package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for scene files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported scene format")

// ReadFile loads a scene from path, choosing the decoder by file extension.
// Supported extensions: .toml, .json, .yaml, .yml.
func ReadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}

	var s Scene
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse TOML scene %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse JSON scene %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse YAML scene %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q (expected .toml, .json, .yaml)", ErrUnsupportedFormat, ext)
	}
	return &s, nil
}

// DecodeJSON reads a JSON scene from r. Used by the HTTP API, where the
// request body has no file extension to dispatch on.
func DecodeJSON(r io.Reader) (*Scene, error) {
	var s Scene
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &s, nil
}

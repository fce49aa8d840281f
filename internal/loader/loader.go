// Package loader reads compliance documents from disk and deserializes them
// into generic mappings based on file extension.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/alevsk/oscal-ops/internal/model"
)

// Format represents the serialization format of a document
type Format int

const (
	// FormatUnknown is an unrecognized format
	FormatUnknown Format = iota
	// FormatJSON is a JSON document
	FormatJSON
	// FormatYAML is a YAML document
	FormatYAML
)

// Error types for loading operations
var (
	ErrUnsupportedExtension = fmt.Errorf("unsupported file extension")
	ErrFileNotFound         = fmt.Errorf("file not found or not readable")
	ErrParseFailure         = fmt.Errorf("malformed document")
)

// supportedExtensions maps recognized file extensions to their format.
var supportedExtensions = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatForPath returns the format implied by the path's extension.
// The extension comparison is case-insensitive.
func FormatForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := supportedExtensions[ext]; ok {
		return f, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q (supported: .json, .yaml, .yml)", ErrUnsupportedExtension, ext)
}

// Load reads the file at path and deserializes it into a raw document.
// The document root must be a mapping; anything else is a parse failure.
func Load(path string) (model.RawDocument, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}

	var obj interface{}
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &obj)
	case FormatYAML:
		err = yaml.Unmarshal(data, &obj)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, path, err)
	}

	raw, ok := obj.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s: document root must be a mapping, got %T", ErrParseFailure, path, obj)
	}

	return model.RawDocument(raw), nil
}

// Marshal serializes v in the given format for persistence. JSON output is
// indented; both formats end with a newline.
func Marshal(format Format, v interface{}) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("error encoding as JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("error encoding as YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("cannot marshal format: %v", format)
	}
}

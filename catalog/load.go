package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a catalog file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// LoadFile reads and builds the catalog at path.
func LoadFile(path string, opts Options) (*Catalog, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	data, err := Decode(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return New(data, opts), nil
}

// Decode reads raw catalog data in the given format.
func Decode(r io.Reader, format Format, opts Options) (Data, error) {
	var data Data
	switch format {
	case FormatTOML:
		meta, err := toml.NewDecoder(r).Decode(&data)
		if err != nil {
			return Data{}, err
		}
		for _, key := range meta.Undecoded() {
			opts.Logger.Warn("unknown catalog key", "key", key.String())
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&data); err != nil && err != io.EOF {
			return Data{}, err
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&data); err != nil && err != io.EOF {
			return Data{}, err
		}
	default:
		return Data{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return data, nil
}

package model

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a program model.
type File struct {
	Module   string          `yaml:"module" json:"module"`
	Packages []*PackageModel `yaml:"packages" json:"packages"`
}

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the decoder for a model file by extension.
func FormatFromPath(path string) (Format, error) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.Newf("unsupported model file extension: %s (expected .yaml, .yml or .json)", filepath.Ext(path))
}

// Decode reads one model file.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, "decode json")
		}
	default:
		return nil, errors.Newf("unknown model format %q", format)
	}
	return &f, nil
}

// ReadFile decodes the model file at path.
func ReadFile(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read model %s", path)
	}
	f, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrapf(err, "parse model %s", path)
	}
	return f, nil
}

// LoadFiles reads and merges model files into one validated program.
// Packages with the same name in different files are merged. The module
// name is taken from the first file that sets one, unless module is
// non-empty.
func LoadFiles(module string, paths ...string) (*Program, error) {
	var files []*File
	for _, path := range paths {
		f, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return Merge(module, files...)
}

// Merge combines decoded files into one program.
func Merge(module string, files ...*File) (*Program, error) {
	byName := make(map[string]*PackageModel)
	var pkgs []*PackageModel
	for _, f := range files {
		if module == "" {
			module = f.Module
		}
		for _, pkg := range f.Packages {
			existing, ok := byName[pkg.Name]
			if !ok {
				byName[pkg.Name] = pkg
				pkgs = append(pkgs, pkg)
				continue
			}
			existing.Classes = append(existing.Classes, pkg.Classes...)
			existing.Functions = append(existing.Functions, pkg.Functions...)
			existing.Properties = append(existing.Properties, pkg.Properties...)
		}
	}
	if module == "" {
		return nil, errors.WithHint(errors.New("module name is not set"), "set `module:` in a model file or pass --module")
	}
	return NewProgram(module, pkgs...)
}

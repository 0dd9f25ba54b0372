// Package project handles objcexport.toml project configuration.
package project

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"github.com/dhamidi/objcexport/model"
)

// FileName is the name of the configuration file looked up by FindAndLoad.
const FileName = "objcexport.toml"

// Project is an objcexport.toml project configuration.
type Project struct {
	Module  Module  `toml:"module"`
	Input   Input   `toml:"input"`
	Output  Output  `toml:"output"`
	Mapping Mapping `toml:"mapping"`

	// Path and Dir locate the configuration file (set at load time).
	Path string `toml:"-"`
	Dir  string `toml:"-"`
}

type Module struct {
	Name   string `toml:"name"`
	Prefix string `toml:"prefix"`
}

// Input lists the model files, relative to the project directory.
type Input struct {
	Models []string `toml:"models"`
}

type Output struct {
	Header string `toml:"header"`
}

type Mapping struct {
	MaxFunctionArity int `toml:"max-function-arity"`
}

// Load parses objcexport.toml from the given directory.
func Load(dir string) (*Project, error) {
	return LoadFrom(filepath.Join(dir, FileName))
}

// LoadFrom parses the configuration file at path.
func LoadFrom(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	var p Project
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.WithHintf(
			errors.Newf("%s: unknown key %s", path, undecoded[0]),
			"known sections are [module], [input], [output] and [mapping]",
		)
	}

	p.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve path %s", path)
	}
	p.Dir = filepath.Dir(p.Path)

	if p.Module.Prefix == "" {
		p.Module.Prefix = p.Module.Name
	}
	if p.Mapping.MaxFunctionArity == 0 {
		p.Mapping.MaxFunctionArity = model.MaxFunctionArity
	}
	if p.Mapping.MaxFunctionArity < 0 || p.Mapping.MaxFunctionArity > model.MaxFunctionArity {
		return nil, errors.Newf("%s: max-function-arity must be between 0 and %d, got %d",
			path, model.MaxFunctionArity, p.Mapping.MaxFunctionArity)
	}

	return &p, nil
}

// FindAndLoad walks up from startDir to find an objcexport.toml file,
// then loads and returns the project. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Project, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return LoadFrom(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// ModelPaths returns the configured model files resolved against the
// project directory.
func (p *Project) ModelPaths() []string {
	var paths []string
	for _, m := range p.Input.Models {
		paths = append(paths, p.resolve(m))
	}
	return paths
}

// HeaderPath returns the configured header output path, or "" to write to
// standard output.
func (p *Project) HeaderPath() string {
	if p.Output.Header == "" {
		return ""
	}
	return p.resolve(p.Output.Header)
}

// Program loads and merges the configured model files.
func (p *Project) Program() (*model.Program, error) {
	paths := p.ModelPaths()
	if len(paths) == 0 {
		return nil, errors.WithHint(
			errors.Newf("%s: no model files configured", p.Path),
			"add `models = [...]` to the [input] section",
		)
	}
	return model.LoadFiles(p.Module.Name, paths...)
}

func (p *Project) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Dir, path)
}

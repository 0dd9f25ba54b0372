package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/objcexport/export"
	"github.com/dhamidi/objcexport/model"
	"github.com/dhamidi/objcexport/project"
)

// inputFlags are shared by every command that reads a program model. Flags
// override the values of objcexport.toml.
type inputFlags struct {
	config string
	module string
	prefix string
	arity  int
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "path to objcexport.toml (default: search upwards from the working directory)")
	cmd.Flags().StringVar(&f.module, "module", "", "module name")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "prefix of every Objective-C name (default: module name)")
	cmd.Flags().IntVar(&f.arity, "max-function-arity", model.MaxFunctionArity, "largest function type arity mapped to a block")
}

func (f *inputFlags) project() (*project.Project, error) {
	if f.config != "" {
		return project.LoadFrom(f.config)
	}
	return project.FindAndLoad(".")
}

// load reads the model files named in args, or the ones configured in
// objcexport.toml when args is empty.
func (f *inputFlags) load(cmd *cobra.Command, args []string) (*model.Program, []export.Option, *project.Project, error) {
	proj, err := f.project()
	if err != nil {
		return nil, nil, nil, err
	}

	module := f.module
	if module == "" && proj != nil {
		module = proj.Module.Name
	}

	var program *model.Program
	switch {
	case len(args) > 0:
		program, err = model.LoadFiles(module, args...)
	case proj != nil:
		proj.Module.Name = module
		program, err = proj.Program()
	default:
		err = errors.WithHint(
			errors.New("no model files given"),
			"pass model files as arguments or create an objcexport.toml with an [input] section",
		)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	var opts []export.Option
	// A module given on the command line also replaces the configured
	// prefix, which defaults to the configured module name.
	prefix := f.prefix
	if prefix == "" && proj != nil && f.module == "" {
		prefix = proj.Module.Prefix
	}
	if prefix != "" {
		opts = append(opts, export.WithPrefix(prefix))
	}
	arity := f.arity
	if !cmd.Flags().Changed("max-function-arity") && proj != nil {
		arity = proj.Mapping.MaxFunctionArity
	}
	if arity < 0 || arity > model.MaxFunctionArity {
		return nil, nil, nil, errors.Newf("--max-function-arity must be between 0 and %d", model.MaxFunctionArity)
	}
	opts = append(opts, export.WithMaxFunctionArity(arity))

	return program, opts, proj, nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/objcexport/export"
	"github.com/dhamidi/objcexport/project"
)

func newHeaderCmd() *cobra.Command {
	var flags inputFlags
	var output string
	var watch bool

	cmd := &cobra.Command{
		Use:   "header [model files...]",
		Short: "Generate the Objective-C header for a program model",
		Long: `Generate the Objective-C header for a program model.

Model files are .yaml, .yml or .json files. Without arguments the files
listed in objcexport.toml are used.

The header is written to stdout unless -o is given or objcexport.toml
names an output file.

With --watch the header is regenerated whenever one of the model files or
objcexport.toml changes, until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			generate := func() error {
				return writeHeader(cmd, &flags, args, output)
			}
			if !watch {
				return generate()
			}
			return watchHeader(cmd, &flags, args, generate)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the header to this file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate the header whenever a model file or the configuration changes")

	return cmd
}

func writeHeader(cmd *cobra.Command, flags *inputFlags, args []string, output string) error {
	program, opts, proj, err := flags.load(cmd, args)
	if err != nil {
		return err
	}

	g := export.New(program, opts...)
	header, err := g.Translate()
	if err != nil {
		return errors.Wrap(err, "translate")
	}
	for _, w := range g.Warnings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	path := output
	if path == "" && proj != nil && len(args) == 0 {
		path = proj.HeaderPath()
	}
	if path == "" || path == "-" {
		_, err = header.WriteTo(cmd.OutOrStdout())
		return err
	}
	return writeFile(path, header)
}

func watchHeader(cmd *cobra.Command, flags *inputFlags, args []string, generate func() error) error {
	proj, err := flags.project()
	if err != nil {
		return err
	}
	paths := args
	if proj != nil {
		if len(args) == 0 {
			paths = proj.ModelPaths()
		}
		paths = append(paths[:len(paths):len(paths)], proj.Path)
	}

	w, err := project.NewWatcher(paths, project.DefaultDebounce)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report := func() {
		if err := generate(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		log.Infof("header regenerated")
	}
	report()
	return w.Run(ctx, report)
}

func writeFile(path string, w io.WriterTo) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output file")
	}
	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return f.Close()
}

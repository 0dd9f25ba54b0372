package main

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/objcexport/export"
)

func newNamesCmd() *cobra.Command {
	var flags inputFlags

	cmd := &cobra.Command{
		Use:   "names [model files...]",
		Short: "List the Objective-C name of every exported declaration",
		Long: `List the Objective-C name of every exported declaration.

Each line holds the kind of the emitted block (class, protocol or
category), the declaration or package it was produced from and its
Objective-C name, separated by tabs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			program, opts, _, err := flags.load(cmd, args)
			if err != nil {
				return err
			}

			g := export.New(program, opts...)
			if _, err := g.Translate(); err != nil {
				return errors.Wrap(err, "translate")
			}

			stubs := append([]*export.Stub(nil), g.Stubs()...)
			sort.SliceStable(stubs, func(i, j int) bool {
				if stubs[i].Source != stubs[j].Source {
					return stubs[i].Source < stubs[j].Source
				}
				return stubs[i].Kind < stubs[j].Kind
			})
			for _, s := range stubs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", s.Kind, s.Source, s.Name)
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

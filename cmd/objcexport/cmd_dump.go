package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/objcexport/export"
	"github.com/dhamidi/objcexport/format"
	"github.com/dhamidi/objcexport/model"
)

func newDumpCmd() *cobra.Command {
	var flags inputFlags
	var dumpFormat string
	var all bool

	cmd := &cobra.Command{
		Use:   "dump [model files...]",
		Short: "Dump the program model with the exported name of each class",
		RunE: func(cmd *cobra.Command, args []string) error {
			program, opts, _, err := flags.load(cmd, args)
			if err != nil {
				return err
			}

			g := export.New(program, opts...)
			namer := func(c *model.ClassModel) (string, error) {
				if c.IsInterface() {
					return g.ProtocolName(c)
				}
				return g.ClassName(c)
			}

			var encoder format.Encoder
			switch dumpFormat {
			case "json":
				encoder = format.NewJSONEncoder(cmd.OutOrStdout()).WithNamer(namer)
			case "line":
				encoder = format.NewLineEncoder(cmd.OutOrStdout()).WithNamer(namer)
			default:
				return errors.Newf("unknown format: %s (expected json or line)", dumpFormat)
			}

			classes := program.ModuleClasses()
			if all {
				classes = program.Classes()
			}
			for _, c := range classes {
				if err := encoder.Encode(c); err != nil {
					return errors.Wrapf(err, "encode %s", dumpFormat)
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (json, line)")
	cmd.Flags().BoolVar(&all, "all", false, "include built-in and external declarations")

	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/objcexport/export"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("objcexport")

func main() {
	var verbosity int
	var logPath string

	rootCmd := &cobra.Command{
		Use:           "objcexport",
		Short:         "Generate Objective-C headers from a program model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logPath != "" {
				commonlog.Configure(verbosity, &logPath)
			} else {
				commonlog.Configure(verbosity, nil)
			}
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log more (repeat for debug output)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write log output to this file instead of stderr")

	rootCmd.AddCommand(newHeaderCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newNamesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when translation stopped on a broken model invariant and 1
// for every other failure.
func exitCode(err error) int {
	if export.IsFatal(err) {
		return 2
	}
	return 1
}

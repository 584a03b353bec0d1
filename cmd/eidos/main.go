package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"eidos/internal/version"
)

// errCheckFailed is returned when diagnostics were already printed; main
// only sets the exit code.
var errCheckFailed = errors.New("check failed")

func newRootCmd() *cobra.Command {
	var cleanups []func()
	root := &cobra.Command{
		Use:           "eidos",
		Short:         "Eidos semantic checker",
		Long:          `Eidos resolves names and checks types of program dumps produced by the front end`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			stopProfiling, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopProfiling)
			stopTracing, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopTracing)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			for i := len(cleanups) - 1; i >= 0; i-- {
				cleanups[i]()
			}
			cleanups = nil
		},
	}

	// Глобальные флаги
	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per unit (0 = no limit)")
	flags.String("trace", "", "trace output file (\"-\" for stderr; .ndjson selects NDJSON)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.String("cpuprofile", "", "write a CPU profile to file")
	flags.String("memprofile", "", "write a heap profile to file on exit")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newExtensionsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

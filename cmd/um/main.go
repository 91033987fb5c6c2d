package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ghost-in-a-Jar/universal-machine/pkg/um"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "um <program>",
		Short:   "Run a Universal Machine program image",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(args[0])
		},
		SilenceUsage: true,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func runImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening program image: %w", err)
	}
	defer f.Close()

	program, err := um.LoadImage(f)
	if err != nil {
		return fmt.Errorf("loading program image: %w", err)
	}

	machine := um.New(program, os.Stdin, os.Stdout, os.Stderr)
	return machine.Run()
}

// exitCodeFor maps a run's terminal error to a process exit code. Every
// failure exits non-zero; the exact value groups errors by family for
// operator convenience, not as a documented contract.
func exitCodeFor(err error) int {
	var f *um.Fault
	if !errors.As(err, &f) {
		return 1
	}
	switch f.Kind {
	case um.MalformedImage:
		return 3
	case um.InvalidInstruction, um.InvalidOperation:
		return 4
	case um.IOError:
		return 5
	default:
		return 1
	}
}

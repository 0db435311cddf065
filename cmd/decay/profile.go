package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"decay/internal/prof"
)

var activeProfile *prof.Session

func registerProfileFlags(root *cobra.Command) {
	root.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

func readProfileOptions(cmd *cobra.Command) (prof.Options, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return opts, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return opts, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return opts, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return opts, nil
}

// setupProfiling starts the profilers requested on the command line.
func setupProfiling(cmd *cobra.Command) error {
	opts, err := readProfileOptions(cmd)
	if err != nil || !opts.Enabled() {
		return err
	}
	s, err := prof.Start(opts)
	if err != nil {
		return err
	}
	activeProfile = s
	return nil
}

func finishProfiling(errOut io.Writer) {
	if err := activeProfile.Stop(); err != nil {
		fmt.Fprintf(errOut, "profiling: %v\n", err)
	}
	activeProfile = nil
}

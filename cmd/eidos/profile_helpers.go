package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eidos/internal/prof"
)

// setupProfiling enables the profilers requested by the persistent flags.
// The returned cleanup is safe to call more than once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpuprofile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("memprofile")
	if err != nil {
		return nil, fmt.Errorf("failed to get memprofile flag: %w", err)
	}

	stopCPU := func() {}
	writeMem := func() {}

	if cpuProfile != "" {
		if err := prof.StartCPU(cpuProfile); err != nil {
			return nil, err
		}
		stopCPU = prof.StopCPU
	}
	if memProfile != "" {
		writeMem = func() {
			if err := prof.WriteMem(memProfile); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to write heap profile: %v\n", err)
			}
		}
	}

	cleaned := false
	cleanup := func() {
		if cleaned {
			return
		}
		cleaned = true
		stopCPU()
		writeMem()
	}
	return cleanup, nil
}

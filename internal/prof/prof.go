// Package prof wires runtime profiling behind the --cpuprofile and
// --memprofile flags.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

var cpuFile *os.File

// StartCPU begins CPU profiling into path.
func StartCPU(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("cpu profile: %w", err)
	}
	cpuFile = f
	return nil
}

// StopCPU stops an active CPU profile. Calling it without StartCPU is a no-op.
func StopCPU() {
	if cpuFile == nil {
		return
	}
	pprof.StopCPUProfile()
	_ = cpuFile.Close()
	cpuFile = nil
}

// WriteMem writes a heap profile to path after forcing a GC.
func WriteMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mem profile: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}

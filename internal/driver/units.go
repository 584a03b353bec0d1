package driver

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"eidos/internal/ast"
)

// DumpExt is the extension of program dumps picked up from directories.
const DumpExt = ".east"

// CollectUnits expands directories into the program dumps they contain.
// Files named explicitly are kept whatever their extension. The result is
// sorted and free of duplicates.
func CollectUnits(paths []string) ([]string, error) {
	seen := make(map[string]bool, len(paths))
	var units []string
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			units = append(units, clean)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, DumpExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(units)
	return units, nil
}

// LoadProgram decodes a program dump from path.
func LoadProgram(path string) (*ast.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	prog, err := ast.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// EmitPath is where the annotated dump of unit goes when dir is set; next
// to the unit otherwise.
func EmitPath(unit, dir string) string {
	base := strings.TrimSuffix(filepath.Base(unit), DumpExt) + ".checked" + DumpExt
	if dir == "" {
		return filepath.Join(filepath.Dir(unit), base)
	}
	return filepath.Join(dir, base)
}

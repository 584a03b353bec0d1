package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"eidos/internal/stdlib"
)

// ManifestName is the project file looked up from the working directory.
const ManifestName = "eidos.toml"

// Manifest is a parsed eidos.toml.
type Manifest struct {
	Path   string
	Root   string
	Config ProjectConfig
}

type ProjectConfig struct {
	Check CheckConfig `toml:"check"`
}

// CheckConfig holds the [check] table. Zero values mean "use the CLI default".
type CheckConfig struct {
	Catalogs       []string `toml:"catalogs"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Jobs           int      `toml:"jobs"`
	Warnings       *bool    `toml:"warnings"`
	Units          []string `toml:"units"`
}

// FindManifest walks up from startDir looking for eidos.toml.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and parses the nearest manifest. ok is false when none
// exists; that is not an error.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

func loadProjectConfig(path string) (ProjectConfig, error) {
	var cfg ProjectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return ProjectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return ProjectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Check.validate(); err != nil {
		return ProjectConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c CheckConfig) validate() error {
	var errs []error
	if c.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("[check].max_diagnostics must be >= 0, got %d", c.MaxDiagnostics))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("[check].jobs must be >= 0, got %d", c.Jobs))
	}
	for i, p := range c.Catalogs {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Errorf("[check].catalogs[%d] is empty", i))
		}
	}
	return errors.Join(errs...)
}

// CatalogPaths resolves [check].catalogs against the manifest directory.
func (m *Manifest) CatalogPaths() []string {
	return m.resolve(m.Config.Check.Catalogs)
}

// UnitPaths resolves [check].units against the manifest directory.
func (m *Manifest) UnitPaths() []string {
	return m.resolve(m.Config.Check.Units)
}

func (m *Manifest) resolve(paths []string) []string {
	if m == nil || len(paths) == 0 {
		return nil
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = filepath.FromSlash(strings.TrimSpace(p))
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		out = append(out, p)
	}
	return out
}

// LoadCatalog returns the built-in catalog extended with every file in
// paths. With no paths the shared built-in catalog is returned as is.
func LoadCatalog(paths []string) (*stdlib.Catalog, error) {
	if len(paths) == 0 {
		return stdlib.Builtin(), nil
	}
	cat := stdlib.NewCatalog()
	if err := cat.Merge(stdlib.Builtin()); err != nil {
		return nil, err
	}
	for _, p := range paths {
		extra, err := stdlib.LoadFile(p)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
		if err := cat.Merge(extra); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	return cat, nil
}

package stdlib

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrCatalogFormat reports an unsupported catalog file extension.
var ErrCatalogFormat = errors.New("unsupported catalog format")

type catalogFile struct {
	Modules []moduleSpec `toml:"module" yaml:"modules"`
}

type moduleSpec struct {
	Name      string         `toml:"name" yaml:"name"`
	Types     []typeSpec     `toml:"type" yaml:"types"`
	Functions []functionSpec `toml:"function" yaml:"functions"`
}

type typeSpec struct {
	Name   string   `toml:"name" yaml:"name"`
	Kind   string   `toml:"kind" yaml:"kind"` // opaque, struct, alias
	Fields []string `toml:"fields" yaml:"fields"`
	Target string   `toml:"target" yaml:"target"`
}

type functionSpec struct {
	Name      string `toml:"name" yaml:"name"`
	Params    string `toml:"params" yaml:"params"`
	Result    string `toml:"result" yaml:"result"`
	Effectful bool   `toml:"effectful" yaml:"effectful"`
	Doc       string `toml:"doc" yaml:"doc"`
}

// LoadFile reads a catalog from a .toml, .yaml or .yml file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return DecodeTOML(f)
	case ".yaml", ".yml":
		return DecodeYAML(f)
	}
	return nil, fmt.Errorf("%w: %s", ErrCatalogFormat, path)
}

// DecodeTOML reads a catalog in TOML form.
func DecodeTOML(r io.Reader) (*Catalog, error) {
	var file catalogFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode catalog: unknown key %s", undecoded[0])
	}
	return file.build()
}

// DecodeYAML reads a catalog in YAML form.
func DecodeYAML(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return file.build()
}

func (file *catalogFile) build() (*Catalog, error) {
	c := NewCatalog()
	for _, m := range file.Modules {
		if m.Name == "" {
			return nil, errors.New("catalog module without name")
		}
		for _, ts := range m.Types {
			decl, err := ts.decl(m.Name)
			if err != nil {
				return nil, err
			}
			if err := c.RegisterType(decl); err != nil {
				return nil, err
			}
		}
		for _, fs := range m.Functions {
			e := entry{name: fs.Name, params: fs.Params, result: fs.Result, doc: fs.Doc}
			if fs.Effectful {
				e.purity = Effectful
			}
			if e.name == "" {
				return nil, fmt.Errorf("module %s: function without name", m.Name)
			}
			fn, err := e.function(m.Name)
			if err != nil {
				return nil, err
			}
			if err := c.Register(fn); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (ts typeSpec) decl(moduleName string) (TypeDecl, error) {
	decl := TypeDecl{Module: moduleName, Name: ts.Name}
	if ts.Name == "" {
		return decl, fmt.Errorf("module %s: type without name", moduleName)
	}
	switch ts.Kind {
	case "", "opaque":
		decl.Kind = TypeOpaque
	case "struct":
		decl.Kind = TypeStruct
		fields, err := parseParams(strings.Join(ts.Fields, ", "))
		if err != nil {
			return decl, fmt.Errorf("%s::%s: %w", moduleName, ts.Name, err)
		}
		decl.Fields = fields
	case "alias":
		decl.Kind = TypeAlias
		target, err := ParseType(ts.Target)
		if err != nil {
			return decl, fmt.Errorf("%s::%s: %w", moduleName, ts.Name, err)
		}
		decl.Target = target
	default:
		return decl, fmt.Errorf("%s::%s: unknown type kind %q", moduleName, ts.Name, ts.Kind)
	}
	return decl, nil
}

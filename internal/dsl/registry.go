package dsl

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
)

var (
	ErrUnknownExtension = errors.New("unknown extension")
	ErrInvalidExtension = errors.New("invalid extension")
)

// Registry is a name-keyed table of extensions. Lookups take a shared lock,
// registration and removal take it exclusively.
type Registry struct {
	mu   sync.RWMutex
	exts map[string]Extension
}

func NewRegistry() *Registry {
	return &Registry{exts: make(map[string]Extension)}
}

// Default is the process-wide registry, preloaded with the bundled extensions.
var Default = newDefault()

func newDefault() *Registry {
	r := NewRegistry()
	for _, ext := range Bundled() {
		if err := r.Register(ext); err != nil {
			panic(err)
		}
	}
	return r
}

// Register installs ext under its name, replacing a previous registration.
func (r *Registry) Register(ext Extension) error {
	if ext == nil {
		return fmt.Errorf("%w: nil", ErrInvalidExtension)
	}
	name := ext.Name()
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidExtension)
	}
	r.mu.Lock()
	r.exts[name] = ext
	r.mu.Unlock()
	return nil
}

// Unregister removes name and reports whether it was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exts[name]; !ok {
		return false
	}
	delete(r.exts, name)
	return true
}

func (r *Registry) Get(name string) (Extension, bool) {
	r.mu.RLock()
	ext, ok := r.exts[name]
	r.mu.RUnlock()
	return ext, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.exts))
	for name := range r.exts {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Extensions returns a snapshot of the registered extensions sorted by name.
func (r *Registry) Extensions() []Extension {
	r.mu.RLock()
	out := make([]Extension, 0, len(r.exts))
	for _, ext := range r.exts {
		out = append(out, ext)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

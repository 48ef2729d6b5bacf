// Package pack provides the pack registry implementation.
package pack

import (
	"fmt"
	"sort"
	"sync"

	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/pack"
)

// Registry is an in-memory pack registry.
type Registry struct {
	packs map[string]*pack.Pack
	mu    sync.RWMutex
}

// NewRegistry creates a registry holding packs.
func NewRegistry(packs ...*pack.Pack) (*Registry, error) {
	r := &Registry{
		packs: make(map[string]*pack.Pack),
	}
	for _, p := range packs {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a pack to the registry.
func (r *Registry) Register(p *pack.Pack) error {
	if p == nil {
		return pack.ErrInvalidPack
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %s", err, p.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.packs[p.Name]; exists {
		return fmt.Errorf("%w: %s", pack.ErrPackExists, p.Name)
	}

	r.packs[p.Name] = p
	return nil
}

// Get retrieves a pack by name.
func (r *Registry) Get(name string) (*pack.Pack, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.packs[name]
	return p, ok
}

// List returns all registered packs sorted by name.
func (r *Registry) List() []*pack.Pack {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*pack.Pack, 0, len(r.packs))
	for _, p := range r.packs {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Unregister removes a pack from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.packs[name]; !exists {
		return pack.ErrPackNotFound
	}

	delete(r.packs, name)
	return nil
}

// Install installs a pack and its dependencies into a formula registry.
// Formulas already present are skipped.
func (r *Registry) Install(name string, formulas formula.Registry) error {
	return r.install(name, formulas, map[string]bool{})
}

func (r *Registry) install(name string, formulas formula.Registry, visiting map[string]bool) error {
	if visiting[name] {
		return nil
	}
	visiting[name] = true

	p, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", pack.ErrPackNotFound, name)
	}

	for _, dep := range p.Dependencies {
		if _, found := r.Get(dep); !found {
			return fmt.Errorf("%w: %s requires %s", pack.ErrDependencyNotFound, name, dep)
		}
		if err := r.install(dep, formulas, visiting); err != nil {
			return err
		}
	}

	for _, f := range p.Formulas {
		if formulas.Has(f.Name()) {
			continue
		}
		if err := formulas.Register(f); err != nil {
			return fmt.Errorf("install %s: %w", name, err)
		}
	}
	return nil
}

// Select returns the names of the packs to install for cfg. An empty
// Enabled list selects every registered pack; Disabled always wins.
// Unknown names in Enabled are reported as ErrPackNotFound.
func (r *Registry) Select(cfg domainconfig.PacksConfig) ([]string, error) {
	disabled := make(map[string]bool, len(cfg.Disabled))
	for _, n := range cfg.Disabled {
		disabled[n] = true
	}

	var names []string
	if len(cfg.Enabled) == 0 {
		for _, p := range r.List() {
			names = append(names, p.Name)
		}
	} else {
		for _, n := range cfg.Enabled {
			if _, ok := r.Get(n); !ok {
				return nil, fmt.Errorf("%w: %s", pack.ErrPackNotFound, n)
			}
			names = append(names, n)
		}
		sort.Strings(names)
	}

	out := names[:0]
	for _, n := range names {
		if !disabled[n] {
			out = append(out, n)
		}
	}
	return out, nil
}

// InstallSelected installs the packs cfg selects and returns their names.
func (r *Registry) InstallSelected(cfg domainconfig.PacksConfig, formulas formula.Registry) ([]string, error) {
	names, err := r.Select(cfg)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if err := r.Install(n, formulas); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// PackOf returns the name of the pack that provides formula.
func (r *Registry) PackOf(formulaName string) (string, bool) {
	for _, p := range r.List() {
		if _, ok := p.GetFormula(formulaName); ok {
			return p.Name, true
		}
	}
	return "", false
}

// Len returns the number of registered packs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.packs)
}

var _ pack.Registry = (*Registry)(nil)

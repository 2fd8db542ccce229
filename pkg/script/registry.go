// pkg/script/registry.go
package script

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/opd-ai/mason/pkg/validation"
)

var (
	// ErrUnknownScript is returned for names or ids nobody registered
	ErrUnknownScript = errors.New("unknown script")
	// ErrDuplicateScript is returned when a name or id is registered twice
	ErrDuplicateScript = errors.New("duplicate script")
)

// Factory creates a fresh script instance
type Factory func() Script

// Registration describes a script type
type Registration struct {
	ID      uuid.UUID
	Name    string
	Factory Factory
}

// Registry maps script names and type ids to factories
type Registry struct {
	byName map[string]Registration
	byID   map[uuid.UUID]Registration
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Registration),
		byID:   make(map[uuid.UUID]Registration),
	}
}

// Register adds a script type
func (r *Registry) Register(id uuid.UUID, name string, factory Factory) error {
	normalized, err := validation.ValidateScriptName(name)
	if err != nil {
		return err
	}
	if id == uuid.Nil {
		return fmt.Errorf("script %q: nil type id", normalized)
	}
	if factory == nil {
		return fmt.Errorf("script %q: nil factory", normalized)
	}
	if _, ok := r.byName[normalized]; ok {
		return fmt.Errorf("%w: name %q", ErrDuplicateScript, normalized)
	}
	if existing, ok := r.byID[id]; ok {
		return fmt.Errorf("%w: id %s already used by %q", ErrDuplicateScript, id, existing.Name)
	}

	reg := Registration{ID: id, Name: normalized, Factory: factory}
	r.byName[normalized] = reg
	r.byID[id] = reg
	return nil
}

// MustRegister is Register that panics on error
func (r *Registry) MustRegister(id uuid.UUID, name string, factory Factory) {
	if err := r.Register(id, name, factory); err != nil {
		panic(err)
	}
}

// New instantiates the script registered under name
func (r *Registry) New(name string) (Instance, error) {
	normalized, err := validation.ValidateScriptName(name)
	if err != nil {
		return Instance{}, fmt.Errorf("%w: %v", ErrUnknownScript, err)
	}
	reg, ok := r.byName[normalized]
	if !ok {
		return Instance{}, fmt.Errorf("%w: %q", ErrUnknownScript, name)
	}
	return Instance{Registration: reg, Script: reg.Factory()}, nil
}

// Lookup finds a registration by type id
func (r *Registry) Lookup(id uuid.UUID) (Registration, bool) {
	reg, ok := r.byID[id]
	return reg, ok
}

// Names returns the registered names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instance is a live script together with its registration
type Instance struct {
	Registration
	Script Script
}

package partition

import (
	"sort"

	"github.com/teranos/partgen/errors"
)

// GeneratorFactory builds a fresh generator.
type GeneratorFactory func() Generator

// VisitorFactory builds a fresh visitor.
type VisitorFactory func() Visitor

// Registry maps algorithm and visitor names to factories.
//
// Lookups are exact, case-sensitive string matches. A Registry is built once
// at startup and only read afterwards; it holds no locks because partgen
// never touches it from more than one goroutine.
type Registry struct {
	generators map[Mode]map[string]GeneratorFactory
	visitors   map[string]VisitorFactory
}

// Option configures the built-in entries of a Registry.
type Option func(*registryOptions)

type registryOptions struct {
	sampleSize int
}

// WithSampleSize sets how many partitions the Sample visitor keeps.
func WithSampleSize(size int) Option {
	return func(o *registryOptions) {
		o.sampleSize = size
	}
}

// NewRegistry creates a registry holding every built-in generator and
// visitor.
func NewRegistry(opts ...Option) *Registry {
	o := registryOptions{sampleSize: DefaultSampleSize}
	for _, opt := range opts {
		opt(&o)
	}

	r := NewEmptyRegistry()
	r.generators[ModeInteger][AlgorithmSimpleBacktracking] = func() Generator { return NewIntegerBacktracking() }
	r.generators[ModeInteger][AlgorithmHindenburg] = func() Generator { return NewIntegerHindenburg() }
	r.generators[ModeSet][AlgorithmSimpleBacktracking] = func() Generator { return NewSetBacktracking() }
	r.generators[ModeSet][AlgorithmLexicographic] = func() Generator { return NewSetLexicographic() }

	r.visitors[VisitorCounter] = func() Visitor { return NewCounter() }
	r.visitors[VisitorChecksum] = func() Visitor { return NewChecksum() }
	r.visitors[VisitorSample] = func() Visitor { return NewSample(o.sampleSize) }
	r.visitors[VisitorHistogram] = func() Visitor { return NewHistogram() }
	return r
}

// NewEmptyRegistry creates a registry with no entries.
func NewEmptyRegistry() *Registry {
	return &Registry{
		generators: map[Mode]map[string]GeneratorFactory{
			ModeInteger: {},
			ModeSet:     {},
		},
		visitors: make(map[string]VisitorFactory),
	}
}

// RegisterGenerator adds a generator for mode under name.
// Returns error if the mode is unknown or the name is taken.
func (r *Registry) RegisterGenerator(mode Mode, name string, factory GeneratorFactory) error {
	table, ok := r.generators[mode]
	if !ok {
		return errors.Newf("cannot register generator %q: unknown mode %d", name, int(mode))
	}
	if _, exists := table[name]; exists {
		return errors.Newf("generator already registered for mode %s: %s", mode, name)
	}
	table[name] = factory
	return nil
}

// RegisterVisitor adds a visitor under name.
// Returns error if the name is taken.
func (r *Registry) RegisterVisitor(name string, factory VisitorFactory) error {
	if _, exists := r.visitors[name]; exists {
		return errors.Newf("visitor already registered: %s", name)
	}
	r.visitors[name] = factory
	return nil
}

// Generator builds the generator registered for mode under name.
// Returns false if there is none.
func (r *Registry) Generator(mode Mode, name string) (Generator, bool) {
	factory, ok := r.generators[mode][name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Visitor builds the visitor registered under name.
// Returns false if there is none.
func (r *Registry) Visitor(name string) (Visitor, bool) {
	factory, ok := r.visitors[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Algorithms returns the generator names for mode in sorted order
func (r *Registry) Algorithms(mode Mode) []string {
	return sortedKeys(r.generators[mode])
}

// Visitors returns all visitor names in sorted order
func (r *Registry) Visitors() []string {
	return sortedKeys(r.visitors)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

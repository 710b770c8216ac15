package followthemoney

import (
	"embed"
	"sort"
	"sync"
)

//go:embed schema/*.yaml
var defaultDefinitions embed.FS

// Model holds the full set of schema definitions and is the only way
// schemata should be accessed. A model is built in phases by NewModel:
// construct, generate, reverse synthesis, finalize. Once NewModel returns,
// the model and every schema it holds are frozen and safe for concurrent
// readers.
type Model struct {
	schemata map[string]*Schema
}

// NewModel builds a model from raw schema definitions. The whole load fails
// with a ModelError on the first broken definition: an unresolvable or
// cyclic extends, a dangling featured/required/caption or edge endpoint
// reference, an unknown property type, or an unnamed reverse.
func NewModel(specs map[string]*SchemaSpec) (*Model, error) {
	m := &Model{schemata: make(map[string]*Schema, len(specs))}
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	// Phase 1: construct every schema with its local properties only.
	for _, name := range names {
		schema, err := newSchema(m, name, specs[name])
		if err != nil {
			return nil, err
		}
		m.schemata[name] = schema
	}

	// Phase 2: resolve the hierarchy and merge inherited properties. The
	// recursion handles parents in any declaration order.
	for _, name := range names {
		if err := m.schemata[name].generate(m); err != nil {
			return nil, err
		}
	}

	// Phase 3: synthesize reverse stubs for every declared relation
	// inverse. Runs over declaring schemata in sorted order so that the
	// outcome does not depend on map iteration.
	for _, name := range names {
		if err := m.synthesizeReverses(m.schemata[name]); err != nil {
			return nil, err
		}
	}

	// Phase 4: precompute derived sets and freeze.
	for _, name := range names {
		m.schemata[name].computeMatchable()
	}
	return m, nil
}

// synthesizeReverses walks the schema's locally declared entity properties
// and materializes their inverse stubs on the range schemata. This runs
// after every schema has generated, so a stub lands exactly on the range
// schema and never disturbs already-merged hierarchy sets.
func (m *Model) synthesizeReverses(s *Schema) error {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		prop := s.Properties[name]
		if prop.schema != s || prop.Stub || !prop.Type.IsEntity() {
			continue
		}
		spec := prop.ReverseSpec()
		if spec == nil {
			continue
		}
		if prop.Range == nil {
			return NewModelError(s.Name, prop.Name, "reverse on property without range")
		}
		stub, err := prop.Range.addReverse(spec, prop)
		if err != nil {
			return err
		}
		stub.Reverse = prop
		prop.Reverse = stub
	}
	return nil
}

// Get returns the schema with the given name, or nil when it is not defined.
func (m *Model) Get(name string) *Schema {
	return m.schemata[name]
}

// Schemata returns all schemata of the model, sorted by name.
func (m *Model) Schemata() []*Schema {
	return sortedSchemata(m.schemata)
}

// Properties returns every property declared by any schema in the model,
// sorted by qualified name.
func (m *Model) Properties() []*Property {
	var props []*Property
	for _, schema := range m.schemata {
		for _, prop := range schema.Properties {
			if prop.schema == schema {
				props = append(props, prop)
			}
		}
	}
	sort.Slice(props, func(i, j int) bool { return props[i].QName < props[j].QName })
	return props
}

// IsA reports whether the named schema exists and is derived from the
// candidate schema (or is the candidate itself).
func (m *Model) IsA(name, candidate string) bool {
	schema := m.Get(name)
	return schema != nil && schema.IsA(candidate)
}

// Specs returns the sparse serialized form of every schema, keyed by name.
// Feeding the result back into NewModel reconstructs an equivalent model.
func (m *Model) Specs() map[string]*SchemaSpec {
	specs := make(map[string]*SchemaSpec, len(m.schemata))
	for name, schema := range m.schemata {
		specs[name] = schema.Spec()
	}
	return specs
}

var (
	defaultOnce  sync.Once
	defaultModel *Model
)

// Default returns the model built from the schema definitions embedded in
// the package. It panics when the embedded definitions fail to load, which
// is covered by the package tests.
func Default() *Model {
	defaultOnce.Do(func() {
		m, err := LoadModel(defaultDefinitions, "schema")
		if err != nil {
			panic(err)
		}
		defaultModel = m
	})
	return defaultModel
}

package followthemoney

import (
	"encoding/json"
	"sort"

	"github.com/arp242/followthemoney/internal/locale"
	"github.com/arp242/followthemoney/types"
)

// Namespace is the base URI under which schemata without an explicit RDF
// override are identified.
const Namespace = "https://w3id.org/ftm#"

// genState tracks the hierarchy resolution state of a schema during the
// model load. Re-entering a schema that is still resolving means the
// extends graph is cyclic.
type genState uint8

const (
	stateUnresolved genState = iota
	stateResolving
	stateResolved
)

// Schema is a type definition for a class of entities that share a set of
// properties.
//
// Schemata are arranged in a multi-rooted hierarchy: each schema can extend
// multiple parent schemata from which it inherits all of their properties.
// Schema identity is the name alone; two lookups of the same name through a
// model always return the same instance, and all hierarchy sets are keyed by
// name.
type Schema struct {
	model *Model
	state genState

	// Name is the unique, machine-readable identifier of the schema.
	Name string
	// URI identifies the schema when it is transformed to an RDF term.
	URI string

	// Abstract schemata are never instantiated directly, they exist only
	// to be extended.
	Abstract bool
	// Hidden schemata are suppressed from listings. Always false for
	// abstract schemata.
	Hidden bool
	// Generated schemata are created by the system and should not be
	// offered for manual creation.
	Generated bool
	// Matchable indicates that entities of this schema are eligible for
	// fuzzy cross-entity comparison.
	Matchable bool

	// Featured properties should be shown first, or in abridged views.
	Featured []string
	// Required properties must carry a value when an entity is created by
	// a user. Bulk-generated entities may slip through.
	Required []string
	// Caption properties are checked in order and the first value found is
	// used as the entity's display title.
	Caption []string

	// EdgeSource and EdgeTarget name the entity-typed properties used as
	// the endpoints when the schema is rendered as a graph edge.
	EdgeSource string
	EdgeTarget string
	// EdgeCaption lists the properties used to caption a rendered edge.
	EdgeCaption []string
	// EdgeDirected indicates whether the rendered edge is directed.
	EdgeDirected bool

	// Properties is the full property map of the schema, locally declared
	// properties plus references to the properties inherited from every
	// ancestor. Local declarations are never overwritten by inherited
	// ones.
	Properties map[string]*Property

	extendsNames []string // declared parent order, merge tie-break
	extends      map[string]*Schema
	schemata     map[string]*Schema // ancestor closure, including self
	descendants  map[string]*Schema
	matchable    map[string]*Schema // precomputed during finalize

	label       string
	plural      string
	description string
	edgeLabel   string
}

// newSchema constructs a schema from its raw definition. Only locally
// declared properties are created here; the hierarchy and everything derived
// from it is resolved by generate.
func newSchema(m *Model, name string, spec *SchemaSpec) (*Schema, error) {
	if spec == nil {
		spec = &SchemaSpec{}
	}
	s := &Schema{
		model:        m,
		Name:         name,
		URI:          Namespace + name,
		Abstract:     spec.Abstract,
		Hidden:       spec.Hidden && !spec.Abstract,
		Generated:    spec.Generated,
		Matchable:    true,
		Featured:     spec.Featured,
		Required:     spec.Required,
		Caption:      spec.Caption,
		EdgeDirected: true,
		Properties:   make(map[string]*Property, len(spec.Properties)),
		extendsNames: spec.Extends,
		extends:      make(map[string]*Schema),
		schemata:     make(map[string]*Schema),
		descendants:  make(map[string]*Schema),
		label:        spec.Label,
		plural:       spec.Plural,
		description:  spec.Description,
	}
	if spec.RDF != "" {
		s.URI = spec.RDF
	}
	if spec.Matchable != nil {
		s.Matchable = *spec.Matchable
	}
	if s.label == "" {
		s.label = name
	}
	if s.plural == "" {
		s.plural = s.label
	}
	s.edgeLabel = s.label
	if edge := spec.Edge; edge != nil {
		s.EdgeSource = edge.Source
		s.EdgeTarget = edge.Target
		s.EdgeCaption = edge.Caption
		if edge.Label != "" {
			s.edgeLabel = edge.Label
		}
		if edge.Directed != nil {
			s.EdgeDirected = *edge.Directed
		}
	}
	s.schemata[name] = s
	for propName, propSpec := range spec.Properties {
		prop, err := newProperty(s, propName, propSpec)
		if err != nil {
			return nil, err
		}
		s.Properties[propName] = prop
	}
	return s, nil
}

// generate resolves the schema's inheritance closure and merged property
// set. Parents are resolved recursively in declared order, so a schema may
// be generated before or after its parents; re-running on a resolved schema
// is a no-op and diamond hierarchies merge each ancestor exactly once.
//
// When two parents declare a property of the same name that the schema does
// not declare locally, the first parent in declared order wins. The
// tie-break is deterministic for a given load, but callers should not attach
// meaning to which parent's definition is chosen.
func (s *Schema) generate(m *Model) error {
	switch s.state {
	case stateResolved:
		return nil
	case stateResolving:
		return NewModelError(s.Name, s.Name, "cyclic extends")
	}
	s.state = stateResolving
	for _, name := range s.extendsNames {
		parent := m.Get(name)
		if parent == nil {
			return NewModelError(s.Name, name, "invalid extends")
		}
		if err := parent.generate(m); err != nil {
			return err
		}
		for propName, prop := range parent.Properties {
			if _, ok := s.Properties[propName]; !ok {
				s.Properties[propName] = prop
			}
		}
		s.extends[parent.Name] = parent
		for _, ancestor := range parent.schemata {
			s.schemata[ancestor.Name] = ancestor
			ancestor.descendants[s.Name] = s
		}
	}
	for _, prop := range s.Properties {
		if err := prop.generate(m); err != nil {
			return err
		}
	}
	for _, featured := range s.Featured {
		if s.Get(featured) == nil {
			return NewModelError(s.Name, featured, "missing featured property")
		}
	}
	for _, caption := range s.Caption {
		if s.Get(caption) == nil {
			return NewModelError(s.Name, caption, "missing caption property")
		}
	}
	for _, required := range s.Required {
		if s.Get(required) == nil {
			return NewModelError(s.Name, required, "missing required property")
		}
	}
	if s.IsEdge() {
		if s.SourceProp() == nil {
			return NewModelError(s.Name, s.EdgeSource, "missing edge source")
		}
		if s.TargetProp() == nil {
			return NewModelError(s.Name, s.EdgeTarget, "missing edge target")
		}
	}
	s.state = stateResolved
	return nil
}

// addReverse synthesizes a stub property on this schema representing the
// inverse direction of the given entity-typed property declared elsewhere.
// A property that already exists under the reverse name wins over the
// synthesized stub. The stub is declared on this schema and made visible on
// its descendants, keeping property maps closed under inheritance; the
// previously computed schemata and descendants sets are untouched.
func (s *Schema) addReverse(spec *ReverseSpec, other *Property) (*Property, error) {
	if spec.Name == "" {
		return nil, NewModelError(s.Name, other.QName, "unnamed reverse")
	}
	prop := s.Get(spec.Name)
	if prop == nil {
		hidden := other.Hidden
		if spec.Hidden != nil {
			hidden = *spec.Hidden
		}
		var err error
		prop, err = newProperty(s, spec.Name, &PropertySpec{
			Label:  spec.Label,
			Type:   types.Entity,
			Range:  other.schema.Name,
			Hidden: hidden,
			Stub:   true,
		})
		if err != nil {
			return nil, err
		}
		if err := prop.generate(s.model); err != nil {
			return nil, err
		}
		s.Properties[spec.Name] = prop
		for _, descendant := range s.descendants {
			if _, ok := descendant.Properties[spec.Name]; !ok {
				descendant.Properties[spec.Name] = prop
			}
		}
	}
	return prop, nil
}

// computeMatchable precomputes the matchable schema set during finalize. The
// set is empty for non-matchable schemata, otherwise it holds every
// matchable schema in the ancestor and descendant closures.
func (s *Schema) computeMatchable() {
	s.matchable = make(map[string]*Schema)
	if !s.Matchable {
		return
	}
	for _, candidate := range s.schemata {
		if candidate.Matchable {
			s.matchable[candidate.Name] = candidate
		}
	}
	for _, candidate := range s.descendants {
		if candidate.Matchable {
			s.matchable[candidate.Name] = candidate
		}
	}
}

// Label returns the user-facing name of the schema.
func (s *Schema) Label() string {
	return locale.Get(s.label)
}

// Plural returns the name of the schema for plural constructions.
func (s *Schema) Plural() string {
	return locale.Get(s.plural)
}

// Description returns a longer description of the semantics of the schema,
// or an empty string.
func (s *Schema) Description() string {
	return locale.Get(s.description)
}

// EdgeLabel returns the display label for edges derived from entities of
// this schema.
func (s *Schema) EdgeLabel() string {
	return locale.Get(s.edgeLabel)
}

// IsEdge reports whether entities of this schema are represented as an edge
// in a property graph, i.e. both edge endpoints are configured.
func (s *Schema) IsEdge() bool {
	return s.EdgeSource != "" && s.EdgeTarget != ""
}

// SourceProp returns the property used as the edge source, or nil.
func (s *Schema) SourceProp() *Property {
	return s.Get(s.EdgeSource)
}

// TargetProp returns the property used as the edge target, or nil.
func (s *Schema) TargetProp() *Property {
	return s.Get(s.EdgeTarget)
}

// Get retrieves a property visible on this schema by name, or nil.
func (s *Schema) Get(name string) *Property {
	if name == "" {
		return nil
	}
	return s.Properties[name]
}

// Extends returns the direct parent schemata, sorted by name.
func (s *Schema) Extends() []*Schema {
	return sortedSchemata(s.extends)
}

// Schemata returns the full ancestor closure of the schema, including the
// schema itself, sorted by name.
func (s *Schema) Schemata() []*Schema {
	return sortedSchemata(s.schemata)
}

// Names returns the names of all schemata in the ancestor closure, sorted.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.schemata))
	for name := range s.schemata {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descendants returns all schemata derived from this schema, directly or
// transitively, sorted by name.
func (s *Schema) Descendants() []*Schema {
	return sortedSchemata(s.descendants)
}

// IsA reports whether the schema or one of its ancestors has the given name.
func (s *Schema) IsA(name string) bool {
	_, ok := s.schemata[name]
	return ok
}

// MatchableSchemata returns the schemata against which entities of this
// schema can reasonably be compared: every matchable schema in the ancestor
// and descendant closures. Empty when the schema itself is not matchable.
// It makes sense to compare a company to a legal entity, but not to an
// aircraft.
func (s *Schema) MatchableSchemata() []*Schema {
	return sortedSchemata(s.matchable)
}

// CanMatch reports whether entities of this schema can be compared with
// entities of the other schema. Not necessarily symmetric: it is false
// whenever either schema is not matchable.
func (s *Schema) CanMatch(other *Schema) bool {
	if other == nil {
		return false
	}
	_, ok := s.matchable[other.Name]
	return ok
}

// SortedProperties returns all properties of the schema in display order:
// caption properties first, then featured ones, then the rest sorted by
// label.
func (s *Schema) SortedProperties() []*Property {
	props := make([]*Property, 0, len(s.Properties))
	for _, prop := range s.Properties {
		props = append(props, prop)
	}
	caption := make(map[string]bool, len(s.Caption))
	for _, name := range s.Caption {
		caption[name] = true
	}
	featured := make(map[string]bool, len(s.Featured))
	for _, name := range s.Featured {
		featured[name] = true
	}
	sort.Slice(props, func(i, j int) bool {
		a, b := props[i], props[j]
		if caption[a.Name] != caption[b.Name] {
			return caption[a.Name]
		}
		if featured[a.Name] != featured[b.Name] {
			return featured[a.Name]
		}
		if la, lb := a.Label(), b.Label(); la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
	return props
}

// Validate checks a bag of property values against the schema's merged
// property set. Every property is checked, errors are aggregated and
// returned as a single ValidationError; input keys that are not recognized
// property names are silently dropped. Required properties with no value
// produce a "Required" error. Returns nil when the data is valid.
func (s *Schema) Validate(data map[string][]string) error {
	errs := make(map[string]string)
	for name, prop := range s.Properties {
		values := data[name]
		msg := prop.Validate(values)
		if msg == "" && len(values) == 0 {
			for _, required := range s.Required {
				if required == name {
					msg = locale.Get("Required")
					break
				}
			}
		}
		if msg != "" {
			errs[name] = msg
		}
	}
	if len(errs) > 0 {
		return NewValidationError(s.Name, errs)
	}
	return nil
}

// Spec returns the schema's metadata in the sparse serialized form: lists,
// flags and the description are omitted when they hold their default value,
// the edge block is emitted only when both endpoints and a non-empty label
// resolve, and only locally declared properties are included. Resolving
// Extends over the spec map of a whole model reconstructs the full merged
// property view.
func (s *Schema) Spec() *SchemaSpec {
	extends := make([]string, 0, len(s.extends))
	for name := range s.extends {
		extends = append(extends, name)
	}
	sort.Strings(extends)
	spec := &SchemaSpec{
		Label:       s.Label(),
		Plural:      s.Plural(),
		Schemata:    s.Names(),
		Extends:     extends,
		Description: s.Description(),
	}
	if s.EdgeSource != "" && s.EdgeTarget != "" && s.EdgeLabel() != "" {
		directed := s.EdgeDirected
		spec.Edge = &EdgeSpec{
			Source:   s.EdgeSource,
			Target:   s.EdgeTarget,
			Caption:  s.EdgeCaption,
			Label:    s.EdgeLabel(),
			Directed: &directed,
		}
	}
	if len(s.Featured) > 0 {
		spec.Featured = s.Featured
	}
	if len(s.Required) > 0 {
		spec.Required = s.Required
	}
	if len(s.Caption) > 0 {
		spec.Caption = s.Caption
	}
	spec.Abstract = s.Abstract
	spec.Hidden = s.Hidden
	spec.Generated = s.Generated
	if !s.Matchable {
		matchable := false
		spec.Matchable = &matchable
	}
	properties := make(map[string]*PropertySpec)
	for name, prop := range s.Properties {
		if prop.schema == s {
			properties[name] = prop.Spec()
		}
	}
	if len(properties) > 0 {
		spec.Properties = properties
	}
	return spec
}

// MarshalJSON implements json.Marshaler using the sparse spec form.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Spec())
}

// String returns the schema name.
func (s *Schema) String() string {
	return s.Name
}

func sortedSchemata(set map[string]*Schema) []*Schema {
	out := make([]*Schema, 0, len(set))
	for _, schema := range set {
		out = append(out, schema)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

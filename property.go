package followthemoney

import (
	"github.com/arp242/followthemoney/internal/locale"
	"github.com/arp242/followthemoney/types"
)

// Property is a named, typed attribute definition. A property is declared by
// exactly one schema but shared by reference with every schema that inherits
// it, so the merged property maps of a hierarchy all point at the same
// Property values.
type Property struct {
	schema *Schema
	spec   *PropertySpec

	// Name is the machine-readable name of the property, unique within its
	// schema's merged property map.
	Name string
	// QName is the qualified name, "Schema:property", unique per model.
	QName string
	// Type holds the value type of the property.
	Type *types.Type
	// Hidden properties are suppressed from display listings.
	Hidden bool
	// Deprecated properties should no longer be written by clients.
	Deprecated bool
	// Matchable indicates that values are usable for cross-entity
	// comparison. Defaults to the type's matchable flag.
	Matchable bool
	// Stub marks a synthesized or declared reverse: the property is
	// readable but rejects writes.
	Stub bool
	// MaxLength caps the byte length of a single value; falls back to the
	// type's cap when 0.
	MaxLength int
	// Range is the schema that entity-typed values must conform to.
	// Resolved during generation, nil for non-entity properties.
	Range *Schema
	// Reverse is the property representing the inverse direction of this
	// relation, resolved during the reverse synthesis phase.
	Reverse *Property

	label       string
	description string
}

// newProperty constructs a property from its raw definition. Cross-schema
// references (range, reverse) stay unresolved until generate runs.
func newProperty(schema *Schema, name string, spec *PropertySpec) (*Property, error) {
	if spec == nil {
		spec = &PropertySpec{}
	}
	typeName := spec.Type
	if typeName == "" {
		typeName = types.String
	}
	typ := types.Get(typeName)
	if typ == nil {
		return nil, NewModelError(schema.Name, typeName, "unknown property type for "+name)
	}
	p := &Property{
		schema:      schema,
		spec:        spec,
		Name:        name,
		QName:       schema.Name + ":" + name,
		Type:        typ,
		Hidden:      spec.Hidden,
		Deprecated:  spec.Deprecated,
		Matchable:   typ.Matchable,
		Stub:        spec.Stub,
		MaxLength:   spec.MaxLength,
		label:       spec.Label,
		description: spec.Description,
	}
	if spec.Matchable != nil {
		p.Matchable = *spec.Matchable
	}
	if p.MaxLength == 0 {
		p.MaxLength = typ.MaxLength
	}
	if p.label == "" {
		p.label = name
	}
	return p, nil
}

// generate resolves the range schema of entity-typed properties. It is
// idempotent: re-running on a resolved property is a no-op.
func (p *Property) generate(m *Model) error {
	if !p.Type.IsEntity() {
		return nil
	}
	if p.spec.Range == "" {
		return nil
	}
	rng := m.Get(p.spec.Range)
	if rng == nil {
		return NewModelError(p.schema.Name, p.spec.Range, "invalid range on property "+p.Name)
	}
	p.Range = rng
	return nil
}

// Schema returns the schema that declares this property.
func (p *Property) Schema() *Schema {
	return p.schema
}

// Label returns the user-facing name of the property.
func (p *Property) Label() string {
	return locale.Get(p.label)
}

// Description returns a longer description of the property's semantics, or
// an empty string.
func (p *Property) Description() string {
	return locale.Get(p.description)
}

// ReverseSpec returns the declared inverse of the property, or nil.
func (p *Property) ReverseSpec() *ReverseSpec {
	return p.spec.Reverse
}

// Validate checks a list of raw values against the property and returns an
// error message, or an empty string when the values are acceptable. Stub
// properties reject any write.
func (p *Property) Validate(values []string) string {
	if len(values) == 0 {
		return ""
	}
	if p.Stub {
		return locale.Get("Property cannot be written")
	}
	for _, value := range values {
		if !p.Type.Validate(value) {
			return locale.Get("Invalid value")
		}
		if p.MaxLength > 0 && len(value) > p.MaxLength {
			return locale.Get("Invalid value")
		}
	}
	return ""
}

// Spec returns the sparse serialized form of the property. Fields holding
// their default value are omitted.
func (p *Property) Spec() *PropertySpec {
	spec := &PropertySpec{
		Label:       p.Label(),
		Description: p.Description(),
		Type:        p.Type.Name,
		Hidden:      p.Hidden,
		Deprecated:  p.Deprecated,
		Stub:        p.Stub,
	}
	if p.Matchable != p.Type.Matchable {
		matchable := p.Matchable
		spec.Matchable = &matchable
	}
	if p.MaxLength != p.Type.MaxLength {
		spec.MaxLength = p.MaxLength
	}
	if p.Range != nil {
		spec.Range = p.Range.Name
	}
	if p.Reverse != nil {
		spec.Reverse = &ReverseSpec{Name: p.Reverse.Name}
	}
	return spec
}

// String returns the qualified name of the property.
func (p *Property) String() string {
	return p.QName
}

package followthemoney

// SchemaSpec is the raw definition of a schema as declared in the YAML
// definition files. It is also the sparse serialized form produced by
// Schema.Spec: fields are omitted when they hold their default value, and
// only locally declared properties are included. The full merged view can be
// reconstructed from the sparse form by resolving Extends at read time.
type SchemaSpec struct {
	Label       string                   `json:"label,omitempty" yaml:"label,omitempty"`
	Plural      string                   `json:"plural,omitempty" yaml:"plural,omitempty"`
	Schemata    []string                 `json:"schemata,omitempty" yaml:"schemata,omitempty"`
	Extends     []string                 `json:"extends,omitempty" yaml:"extends,omitempty"`
	Properties  map[string]*PropertySpec `json:"properties,omitempty" yaml:"properties,omitempty"`
	Featured    []string                 `json:"featured,omitempty" yaml:"featured,omitempty"`
	Required    []string                 `json:"required,omitempty" yaml:"required,omitempty"`
	Caption     []string                 `json:"caption,omitempty" yaml:"caption,omitempty"`
	Edge        *EdgeSpec                `json:"edge,omitempty" yaml:"edge,omitempty"`
	Description string                   `json:"description,omitempty" yaml:"description,omitempty"`
	RDF         string                   `json:"rdf,omitempty" yaml:"rdf,omitempty"`
	Abstract    bool                     `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Hidden      bool                     `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Generated   bool                     `json:"generated,omitempty" yaml:"generated,omitempty"`
	// Matchable defaults to true when unset, hence the pointer.
	Matchable *bool `json:"matchable,omitempty" yaml:"matchable,omitempty"`
}

// EdgeSpec configures the representation of a schema as an edge in a
// property graph: entities of the schema are rendered as a link between the
// values of the source and target properties instead of as a node.
type EdgeSpec struct {
	Source  string   `json:"source,omitempty" yaml:"source,omitempty"`
	Target  string   `json:"target,omitempty" yaml:"target,omitempty"`
	Caption []string `json:"caption,omitempty" yaml:"caption,omitempty"`
	Label   string   `json:"label,omitempty" yaml:"label,omitempty"`
	// Directed defaults to true when unset.
	Directed *bool `json:"directed,omitempty" yaml:"directed,omitempty"`
}

// PropertySpec is the raw definition of a single property, and the sparse
// serialized form produced by Property.Spec.
type PropertySpec struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Type names one of the registered value types; empty means string.
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Hidden bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	// Matchable overrides the type-level matchable default when set.
	Matchable  *bool `json:"matchable,omitempty" yaml:"matchable,omitempty"`
	Deprecated bool  `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	// Stub marks a property that only exists as the inverse of a relation
	// declared on another schema. Stubs cannot be written.
	Stub      bool `json:"stub,omitempty" yaml:"stub,omitempty"`
	MaxLength int  `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	// Range names the schema that entity-typed values must conform to.
	Range   string       `json:"range,omitempty" yaml:"range,omitempty"`
	Reverse *ReverseSpec `json:"reverse,omitempty" yaml:"reverse,omitempty"`
	RDF     string       `json:"rdf,omitempty" yaml:"rdf,omitempty"`
}

// ReverseSpec declares the inverse of an entity-typed property: a stub
// property with the given name is synthesized on the range schema, pointing
// back at the declaring schema.
type ReverseSpec struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	// Hidden defaults to the hidden flag of the forward property.
	Hidden *bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// Package types defines the value types that properties can hold, such as
// names, dates, countries or references to other entities. Types carry
// display metadata and matching hints for downstream comparison logic;
// format-specific validation (date parsing, address normalisation, etc.) is
// out of scope and handled by consumers of the parsed values.
package types

import (
	"sort"
	"strings"
)

// Well-known type names.
const (
	// Entity is the type of properties that reference another entity. It is
	// the only type with schema-level semantics: entity-typed properties
	// have a range schema and may declare a reverse.
	Entity = "entity"

	// String is the default type for properties that do not declare one.
	String = "string"
)

// Type describes the value type of a property.
type Type struct {
	// Name is the machine-readable identifier of the type.
	Name string
	// Group is the name under which values of this type are aggregated
	// across all properties of an entity (e.g. "countries"). Empty for
	// types that are not aggregated.
	Group string
	// Label and Plural are user-facing names of the type.
	Label  string
	Plural string
	// Matchable indicates that values of this type are usable for
	// cross-entity comparison. Properties default their own matchable
	// flag to this.
	Matchable bool
	// Pivot marks types whose values connect entities across datasets,
	// such as identifiers or contact details.
	Pivot bool
	// MaxLength caps the byte length of a single value, 0 means no cap.
	MaxLength int
}

// IsEntity reports whether this is the entity reference type.
func (t *Type) IsEntity() bool {
	return t.Name == Entity
}

// Validate checks a single raw value against the type. Values must be
// non-empty after whitespace trimming and within the type's length cap.
func (t *Type) Validate(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	if t.MaxLength > 0 && len(value) > t.MaxLength {
		return false
	}
	return true
}

// registry holds all known types, keyed by name.
var registry = map[string]*Type{}

func register(types ...*Type) {
	for _, t := range types {
		registry[t.Name] = t
	}
}

func init() {
	register(
		&Type{Name: Entity, Group: "entities", Label: "Entity", Plural: "Entities", Matchable: true},
		&Type{Name: "address", Group: "addresses", Label: "Address", Plural: "Addresses", Matchable: true, Pivot: true},
		&Type{Name: "checksum", Group: "checksums", Label: "Checksum", Plural: "Checksums", Matchable: true, Pivot: true, MaxLength: 128},
		&Type{Name: "country", Group: "countries", Label: "Country", Plural: "Countries", Matchable: true, MaxLength: 16},
		&Type{Name: "date", Group: "dates", Label: "Date", Plural: "Dates", Matchable: true, MaxLength: 32},
		&Type{Name: "email", Group: "emails", Label: "E-Mail Address", Plural: "E-Mail Addresses", Matchable: true, Pivot: true},
		&Type{Name: "identifier", Group: "identifiers", Label: "Identifier", Plural: "Identifiers", Matchable: true, Pivot: true, MaxLength: 64},
		&Type{Name: "ip", Group: "ips", Label: "IP Address", Plural: "IP Addresses", Matchable: true, Pivot: true, MaxLength: 64},
		&Type{Name: "json", Label: "Nested data", Plural: "Nested data"},
		&Type{Name: "language", Group: "languages", Label: "Language", Plural: "Languages", MaxLength: 16},
		&Type{Name: "mimetype", Group: "mimetypes", Label: "MIME-Type", Plural: "MIME-Types", MaxLength: 128},
		&Type{Name: "name", Group: "names", Label: "Name", Plural: "Names", Matchable: true, Pivot: true},
		&Type{Name: "number", Label: "Number", Plural: "Numbers", MaxLength: 64},
		&Type{Name: "phone", Group: "phones", Label: "Phone number", Plural: "Phone numbers", Matchable: true, Pivot: true, MaxLength: 64},
		&Type{Name: String, Label: "Label", Plural: "Labels", MaxLength: 1024},
		&Type{Name: "text", Label: "Text", Plural: "Texts"},
		&Type{Name: "topic", Group: "topics", Label: "Topic", Plural: "Topics", MaxLength: 64},
		&Type{Name: "url", Group: "urls", Label: "URL", Plural: "URLs", Matchable: true, Pivot: true},
	)
}

// Get returns the type with the given name, or nil if it is unknown.
func Get(name string) *Type {
	return registry[name]
}

// All returns all registered types, sorted by name.
func All() []*Type {
	all := make([]*Type, 0, len(registry))
	for _, t := range registry {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

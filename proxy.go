package followthemoney

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// idNamespace is the UUID namespace for deterministic entity IDs.
var idNamespace = uuid.MustParse("8c620792-7b4f-4cbe-a3fd-6b63bd2dcc91")

// MakeID derives a deterministic entity ID from the given key parts. Empty
// parts are skipped; the same parts always produce the same ID.
func MakeID(parts ...string) string {
	key := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			key = append(key, part)
		}
	}
	if len(key) == 0 {
		return ""
	}
	return uuid.NewSHA1(idNamespace, []byte(strings.Join(key, "."))).String()
}

// GenerateID returns a random entity ID.
func GenerateID() string {
	return uuid.NewString()
}

// EntityProxy is an in-memory bag of property values bound to a schema. It
// performs no storage; it exists to assemble, inspect and validate entity
// data before it is handed to downstream systems.
type EntityProxy struct {
	// Schema the entity conforms to.
	Schema *Schema
	// ID of the entity, possibly empty for fragments.
	ID string

	properties map[string][]string
}

// NewEntityProxy creates an empty entity of the given schema. Abstract
// schemata cannot be instantiated.
func NewEntityProxy(schema *Schema, id string) (*EntityProxy, error) {
	if schema == nil {
		return nil, NewModelError("", "", "entity without schema")
	}
	if schema.Abstract {
		return nil, NewModelError(schema.Name, "", "cannot instantiate abstract schema")
	}
	return &EntityProxy{
		Schema:     schema,
		ID:         id,
		properties: make(map[string][]string),
	}, nil
}

// prop resolves a property name against the entity's schema, rejecting
// unknown names and, for writes, stubs.
func (e *EntityProxy) prop(name string, write bool) (*Property, error) {
	prop := e.Schema.Get(name)
	if prop == nil {
		return nil, NewModelError(e.Schema.Name, name, "unknown property")
	}
	if write && prop.Stub {
		return nil, NewModelError(e.Schema.Name, name, "stub property cannot be written")
	}
	return prop, nil
}

// Add appends values to a property, skipping empty and duplicate values.
func (e *EntityProxy) Add(name string, values ...string) error {
	prop, err := e.prop(name, true)
	if err != nil {
		return err
	}
	current := e.properties[prop.Name]
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		exists := false
		for _, have := range current {
			if have == value {
				exists = true
				break
			}
		}
		if !exists {
			current = append(current, value)
		}
	}
	e.properties[prop.Name] = current
	return nil
}

// Set replaces all values of a property.
func (e *EntityProxy) Set(name string, values ...string) error {
	prop, err := e.prop(name, true)
	if err != nil {
		return err
	}
	delete(e.properties, prop.Name)
	return e.Add(name, values...)
}

// Get returns the values of a property, or nil.
func (e *EntityProxy) Get(name string) []string {
	return e.properties[name]
}

// Has reports whether the property carries at least one value.
func (e *EntityProxy) Has(name string) bool {
	return len(e.properties[name]) > 0
}

// Remove drops all values of a property.
func (e *EntityProxy) Remove(name string) {
	delete(e.properties, name)
}

// Properties returns a snapshot of the entity's property values.
func (e *EntityProxy) Properties() map[string][]string {
	out := make(map[string][]string, len(e.properties))
	for name, values := range e.properties {
		out[name] = append([]string(nil), values...)
	}
	return out
}

// GetTypeGroup returns all values of properties whose type belongs to the
// given group (e.g. "countries"), sorted and de-duplicated.
func (e *EntityProxy) GetTypeGroup(group string) []string {
	seen := make(map[string]bool)
	var out []string
	for name, values := range e.properties {
		prop := e.Schema.Get(name)
		if prop == nil || prop.Type.Group != group {
			continue
		}
		for _, value := range values {
			if !seen[value] {
				seen[value] = true
				out = append(out, value)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Caption returns the first value of the schema's caption properties, or the
// schema label when no caption value is set.
func (e *EntityProxy) Caption() string {
	for _, name := range e.Schema.Caption {
		if values := e.properties[name]; len(values) > 0 {
			return values[0]
		}
	}
	return e.Schema.Label()
}

// Validate checks the entity's property bag against its schema, returning a
// ValidationError with the full per-property error mapping on failure.
func (e *EntityProxy) Validate() error {
	return e.Schema.Validate(e.properties)
}

// entityData is the wire form of an entity for both the JSON and the binary
// codec.
type entityData struct {
	ID         string              `json:"id,omitempty" msgpack:"id,omitempty"`
	Schema     string              `json:"schema" msgpack:"schema"`
	Properties map[string][]string `json:"properties,omitempty" msgpack:"properties,omitempty"`
}

// ToDict returns the entity in its serializable wire form.
func (e *EntityProxy) ToDict() map[string]any {
	data := map[string]any{
		"id":     e.ID,
		"schema": e.Schema.Name,
	}
	if len(e.properties) > 0 {
		data["properties"] = e.Properties()
	}
	return data
}

// MarshalJSON implements json.Marshaler.
func (e *EntityProxy) MarshalJSON() ([]byte, error) {
	return json.Marshal(entityData{
		ID:         e.ID,
		Schema:     e.Schema.Name,
		Properties: e.properties,
	})
}

// MarshalBinary encodes the entity with the compact msgpack codec.
func (e *EntityProxy) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal(entityData{
		ID:         e.ID,
		Schema:     e.Schema.Name,
		Properties: e.properties,
	})
}

// FromDict builds an entity from its decoded wire form, resolving the schema
// through the given model. Unknown schema or property names fail with a
// ModelError rather than being dropped.
func FromDict(m *Model, data map[string]any) (*EntityProxy, error) {
	name, _ := data["schema"].(string)
	schema := m.Get(name)
	if schema == nil {
		return nil, NewModelError(name, "", "unknown schema")
	}
	id, _ := data["id"].(string)
	e, err := NewEntityProxy(schema, id)
	if err != nil {
		return nil, err
	}
	props, _ := data["properties"].(map[string]any)
	names := make([]string, 0, len(props))
	for prop := range props {
		names = append(names, prop)
	}
	sort.Strings(names)
	for _, prop := range names {
		for _, value := range anyValues(props[prop]) {
			if err := e.Add(prop, value); err != nil {
				return nil, err
			}
		}
	}
	return e, nil
}

// FromJSON decodes an entity from its JSON wire form.
func FromJSON(m *Model, buf []byte) (*EntityProxy, error) {
	var data entityData
	if err := json.Unmarshal(buf, &data); err != nil {
		return nil, err
	}
	return fromData(m, data)
}

// FromBytes decodes an entity from its msgpack wire form.
func FromBytes(m *Model, buf []byte) (*EntityProxy, error) {
	var data entityData
	if err := msgpack.Unmarshal(buf, &data); err != nil {
		return nil, err
	}
	return fromData(m, data)
}

func fromData(m *Model, data entityData) (*EntityProxy, error) {
	schema := m.Get(data.Schema)
	if schema == nil {
		return nil, NewModelError(data.Schema, "", "unknown schema")
	}
	e, err := NewEntityProxy(schema, data.ID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(data.Properties))
	for prop := range data.Properties {
		names = append(names, prop)
	}
	sort.Strings(names)
	for _, prop := range names {
		if err := e.Add(prop, data.Properties[prop]...); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func anyValues(v any) []string {
	switch v := v.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

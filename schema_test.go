package followthemoney

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequired(t *testing.T) {
	require := require.New(t)
	m, err := NewModel(testSpecs())
	require.NoError(err)

	company := m.Get("Company")
	err = company.Validate(map[string][]string{})
	require.Error(err)
	require.True(IsValidationError(err))
	require.ErrorIs(err, ErrInvalidData)

	var verr *ValidationError
	require.ErrorAs(err, &verr)
	require.Equal("Company", verr.Schema)
	require.Equal(map[string]string{"name": "Required"}, verr.Properties)

	require.NoError(company.Validate(map[string][]string{
		"name": {"Siemens AG"},
	}))
}

func TestValidateAggregatesAllErrors(t *testing.T) {
	require := require.New(t)
	m, err := NewModel(map[string]*SchemaSpec{
		"Company": {
			Required: []string{"name", "country"},
			Properties: map[string]*PropertySpec{
				"name":    {Type: "name"},
				"country": {Type: "country", MaxLength: 2},
			},
		},
	})
	require.NoError(err)

	// One missing required value, one invalid value: both must be
	// reported in a single pass.
	err = m.Get("Company").Validate(map[string][]string{
		"country": {"much too long"},
	})
	var verr *ValidationError
	require.ErrorAs(err, &verr)
	require.Len(verr.Properties, 2)
	require.Equal("Required", verr.Properties["name"])
	require.Equal("Invalid value", verr.Properties["country"])
}

func TestValidateDropsUnknownKeys(t *testing.T) {
	require := require.New(t)
	m, err := NewModel(testSpecs())
	require.NoError(err)

	// Unknown keys are not reported as errors.
	require.NoError(m.Get("Company").Validate(map[string][]string{
		"name":        {"Siemens AG"},
		"unknownProp": {""},
	}))
}

func TestValidateStub(t *testing.T) {
	require := require.New(t)
	m, err := NewModel(map[string]*SchemaSpec{
		"Person": {},
		"Passport": {
			Properties: map[string]*PropertySpec{
				"holder": {
					Type:    "entity",
					Range:   "Person",
					Reverse: &ReverseSpec{Name: "passports"},
				},
			},
		},
	})
	require.NoError(err)

	err = m.Get("Person").Validate(map[string][]string{
		"passports": {"some-entity-id"},
	})
	var verr *ValidationError
	require.ErrorAs(err, &verr)
	require.Equal("Property cannot be written", verr.Properties["passports"])
}

func TestMatchableSchemata(t *testing.T) {
	require := require.New(t)
	m, err := NewModel(map[string]*SchemaSpec{
		"Thing":       {Abstract: true},
		"LegalEntity": {Extends: []string{"Thing"}},
		"Company":     {Extends: []string{"LegalEntity"}},
		"Plot":        {Extends: []string{"Thing"}, Matchable: boolPtr(false)},
	})
	require.NoError(err)

	thing := m.Get("Thing")
	legal := m.Get("LegalEntity")
	company := m.Get("Company")
	plot := m.Get("Plot")

	// Ancestors and descendants, filtered to matchable schemata.
	require.ElementsMatch([]*Schema{thing, legal, company}, legal.MatchableSchemata())
	require.ElementsMatch([]*Schema{thing, legal, company}, company.MatchableSchemata())

	// Matchable within one hierarchy is symmetric.
	require.True(company.CanMatch(legal))
	require.True(legal.CanMatch(company))

	// A non-matchable schema matches nothing, in either direction.
	require.Empty(plot.MatchableSchemata())
	require.False(plot.CanMatch(thing))
	require.False(thing.CanMatch(plot))
	require.False(plot.CanMatch(plot))
}

func TestSortedProperties(t *testing.T) {
	require := require.New(t)
	m, err := NewModel(map[string]*SchemaSpec{
		"Person": {
			Featured: []string{"birthDate"},
			Caption:  []string{"name"},
			Properties: map[string]*PropertySpec{
				"name":      {Label: "Name", Type: "name"},
				"birthDate": {Label: "Birth date", Type: "date"},
				"country":   {Label: "Country", Type: "country"},
				"alias":     {Label: "Also known as", Type: "name"},
			},
		},
	})
	require.NoError(err)

	var names []string
	for _, prop := range m.Get("Person").SortedProperties() {
		names = append(names, prop.Name)
	}
	// Caption first, then featured, then the rest by label.
	require.Equal([]string{"name", "birthDate", "alias", "country"}, names)
}

func TestSchemaSpecSparse(t *testing.T) {
	require := require.New(t)
	m, err := NewModel(map[string]*SchemaSpec{
		"Bare": {},
	})
	require.NoError(err)

	buf, err := json.Marshal(m.Get("Bare"))
	require.NoError(err)

	var data map[string]any
	require.NoError(json.Unmarshal(buf, &data))
	require.Equal("Bare", data["label"])
	require.Equal("Bare", data["plural"])
	require.Equal([]any{"Bare"}, data["schemata"])
	for _, key := range []string{
		"featured", "required", "caption", "description", "edge",
		"abstract", "hidden", "generated", "matchable", "properties", "extends",
	} {
		assert.NotContains(t, data, key)
	}
}

func TestSchemaSpecEdge(t *testing.T) {
	require := require.New(t)
	m := Default()

	spec := m.Get("Ownership").Spec()
	require.NotNil(spec.Edge)
	require.Equal("owner", spec.Edge.Source)
	require.Equal("asset", spec.Edge.Target)
	require.Equal("owns", spec.Edge.Label)
	require.NotNil(spec.Edge.Directed)
	require.True(*spec.Edge.Directed)

	family := m.Get("Family").Spec()
	require.NotNil(family.Edge)
	require.False(*family.Edge.Directed)

	// Non-edge schemata carry no edge block.
	require.Nil(m.Get("Company").Spec().Edge)
}

func TestSchemaSpecOwnPropertiesOnly(t *testing.T) {
	require := require.New(t)
	m, err := NewModel(testSpecs())
	require.NoError(err)

	spec := m.Get("Company").Spec()
	// name and country are inherited: they serialize on their declaring
	// schemata, not on every descendant.
	require.Empty(spec.Properties)
	require.Contains(m.Get("Thing").Spec().Properties, "name")
	require.Contains(m.Get("LegalEntity").Spec().Properties, "country")
	require.Equal([]string{"LegalEntity"}, spec.Extends)
	require.Equal([]string{"Company", "LegalEntity", "Thing"}, spec.Schemata)
}

func TestSchemaDisplay(t *testing.T) {
	require := require.New(t)
	m := Default()

	person := m.Get("Person")
	require.Equal("Person", person.Label())
	require.Equal("People", person.Plural())
	require.Equal("Person", person.String())
	require.Equal(Namespace+"Person", person.URI)
	require.Equal("owns", m.Get("Ownership").EdgeLabel())
}

func boolPtr(v bool) *bool { return &v }

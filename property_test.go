package followthemoney

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPropertyDefaults(t *testing.T) {
	require := require.New(t)
	m, err := NewModel(map[string]*SchemaSpec{
		"Note": {
			Properties: map[string]*PropertySpec{
				"text": {},
			},
		},
	})
	require.NoError(err)

	prop := m.Get("Note").Get("text")
	require.Equal("string", prop.Type.Name)
	require.Equal("text", prop.Label(), "label defaults to the property name")
	require.Equal("Note:text", prop.QName)
	require.Equal("Note:text", prop.String())
	require.False(prop.Matchable, "matchable defaults to the type's flag")
	require.Equal(1024, prop.MaxLength, "length cap defaults to the type's cap")
}

func TestPropertyUnknownType(t *testing.T) {
	_, err := NewModel(map[string]*SchemaSpec{
		"Note": {
			Properties: map[string]*PropertySpec{
				"weird": {Type: "hologram"},
			},
		},
	})
	require.Error(t, err)
	require.True(t, IsModelError(err))
	require.Contains(t, err.Error(), "unknown property type")
}

func TestPropertyInvalidRange(t *testing.T) {
	_, err := NewModel(map[string]*SchemaSpec{
		"Note": {
			Properties: map[string]*PropertySpec{
				"about": {Type: "entity", Range: "Nope"},
			},
		},
	})
	require.Error(t, err)
	require.True(t, IsModelError(err))
	require.Contains(t, err.Error(), "invalid range")
}

func TestPropertyValidate(t *testing.T) {
	require := require.New(t)
	m, err := NewModel(map[string]*SchemaSpec{
		"Note": {
			Properties: map[string]*PropertySpec{
				"code": {Type: "identifier", MaxLength: 4},
			},
		},
	})
	require.NoError(err)
	code := m.Get("Note").Get("code")

	require.Empty(code.Validate(nil))
	require.Empty(code.Validate([]string{"ab12"}))
	require.Equal("Invalid value", code.Validate([]string{"   "}))
	require.Equal("Invalid value", code.Validate([]string{"toolong"}))
	require.Equal("Invalid value", code.Validate([]string{"ok", ""}))
}

func TestPropertyMatchableOverride(t *testing.T) {
	require := require.New(t)
	m, err := NewModel(map[string]*SchemaSpec{
		"Note": {
			Properties: map[string]*PropertySpec{
				"title": {Type: "name", Matchable: boolPtr(false)},
			},
		},
	})
	require.NoError(err)

	title := m.Get("Note").Get("title")
	require.False(title.Matchable)
	spec := title.Spec()
	require.NotNil(spec.Matchable)
	require.False(*spec.Matchable)
}

func TestPropertySpec(t *testing.T) {
	require := require.New(t)
	m := Default()

	owner := m.Get("Ownership").Get("owner")
	spec := owner.Spec()
	require.Equal("Owner", spec.Label)
	require.Equal("entity", spec.Type)
	require.Equal("LegalEntity", spec.Range)
	require.NotNil(spec.Reverse)
	require.Equal("ownershipOwner", spec.Reverse.Name)
	require.False(spec.Stub)

	stub := m.Get("LegalEntity").Get("ownershipOwner").Spec()
	require.True(stub.Stub)
	require.Equal("Ownership", stub.Range)
}

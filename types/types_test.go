package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	require := require.New(t)
	entity := Get(Entity)
	require.NotNil(entity)
	require.True(entity.IsEntity())
	require.True(entity.Matchable)

	str := Get(String)
	require.NotNil(str)
	require.False(str.IsEntity())
	require.False(str.Matchable)

	require.Nil(Get("hologram"))
}

func TestAll(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Name, all[i].Name, "sorted by name")
	}
	names := make(map[string]bool)
	for _, typ := range all {
		names[typ.Name] = true
	}
	for _, want := range []string{"entity", "name", "country", "date", "identifier", "url"} {
		assert.True(t, names[want], want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		typ   string
		value string
		want  bool
	}{
		{"name", "Siemens AG", true},
		{"name", "", false},
		{"name", "   ", false},
		{"country", "de", true},
		{"country", strings.Repeat("x", 17), false},
		{"identifier", strings.Repeat("1", 64), true},
		{"identifier", strings.Repeat("1", 65), false},
		{"text", strings.Repeat("a", 100000), true},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.value[:min(len(tt.value), 12)], func(t *testing.T) {
			require.Equal(t, tt.want, Get(tt.typ).Validate(tt.value))
		})
	}
}

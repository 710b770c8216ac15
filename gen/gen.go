// Package gen renders Go constants for the schema and property names of a
// loaded model, so downstream code can reference them without string
// literals.
package gen

import (
	"bytes"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	ftm "github.com/arp242/followthemoney"
)

// Generate renders a single Go source file for the given package name with
// one constant per schema and one per locally declared property.
func Generate(m *ftm.Model, pkg string) ([]byte, error) {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by ftm generate. DO NOT EDIT.")

	f.Comment("Schema names.")
	f.Const().DefsFunc(func(group *jen.Group) {
		for _, schema := range m.Schemata() {
			group.Id("Schema" + schema.Name).Op("=").Lit(schema.Name)
		}
	})

	for _, schema := range m.Schemata() {
		var own []*ftm.Property
		for _, prop := range schema.SortedProperties() {
			if prop.Schema() == schema {
				own = append(own, prop)
			}
		}
		if len(own) == 0 {
			continue
		}
		f.Comment("Properties declared by " + schema.Name + ".")
		f.Const().DefsFunc(func(group *jen.Group) {
			for _, prop := range own {
				group.Id(schema.Name + export(prop.Name)).Op("=").Lit(prop.Name)
			}
		})
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders the constants file and writes it to path.
func WriteFile(m *ftm.Model, pkg, path string) error {
	buf, err := Generate(m, pkg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// export upper-cases the first rune of a property name so it forms an
// exported identifier when prefixed with the schema name.
func export(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

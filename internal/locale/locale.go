// Package locale resolves user-facing strings such as schema labels and
// validation messages into the active display language. Translations are
// bundled for a small set of languages; unknown keys and untranslated
// languages fall back to the key itself, so English text passes through
// unchanged.
package locale

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// supported lists the languages with bundled translations. The first entry
// is the fallback.
var supported = []language.Tag{
	language.English,
	language.German,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

var translations = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for lang, msgs := range map[language.Tag]map[string]string{
		language.German: {
			"Required":                   "Pflichtfeld",
			"Invalid value":              "Ungültiger Wert",
			"Property cannot be written": "Eigenschaft kann nicht geschrieben werden",
			"Name":                       "Name",
			"Country":                    "Land",
			"Person":                     "Person",
			"Company":                    "Unternehmen",
			"Organization":               "Organisation",
			"Address":                    "Adresse",
		},
		language.Spanish: {
			"Required":                   "Obligatorio",
			"Invalid value":              "Valor no válido",
			"Property cannot be written": "La propiedad no se puede escribir",
			"Name":                       "Nombre",
			"Country":                    "País",
			"Person":                     "Persona",
			"Company":                    "Empresa",
			"Organization":               "Organización",
			"Address":                    "Dirección",
		},
	} {
		for key, msg := range msgs {
			if err := b.SetString(lang, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}()

var (
	mu      sync.RWMutex
	printer = message.NewPrinter(language.English, message.Catalog(translations))
)

// Set switches the active display language. The given BCP 47 tag is matched
// against the supported languages; unsupported languages resolve to the
// closest match or to English.
func Set(lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return err
	}
	tag, _, _ = matcher.Match(tag)
	mu.Lock()
	printer = message.NewPrinter(tag, message.Catalog(translations))
	mu.Unlock()
	return nil
}

// Get returns the translation of the given key in the active language, or
// the key itself when no translation exists.
func Get(key string) string {
	if key == "" {
		return ""
	}
	mu.RLock()
	p := printer
	mu.RUnlock()
	return p.Sprintf(key)
}

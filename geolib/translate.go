package geolib

import "fmt"

// Diagnostic keys used by this package and the bundled providers.
const (
	TranslateMissingChannel  = "missing_channel"
	TranslateNoCountryResult = "no_country_result"
	TranslateCheckFailed     = "check_failed"
)

type mapTranslator map[string]string

func (m mapTranslator) Translate(key string, args ...interface{}) string {
	format, ok := m[key]
	if !ok {
		return key
	}

	return fmt.Sprintf(format, args...)
}

// NewMapTranslator builds a Translator from a plain key-to-format map.
// Unknown keys translate to themselves so a missing entry is visible
// instead of silent.
func NewMapTranslator(formats map[string]string) Translator {
	rv := make(mapTranslator, len(formats))

	for k, v := range formats {
		rv[k] = v
	}

	return rv
}

// DefaultTranslator carries the builtin English diagnostic texts.
var DefaultTranslator = NewMapTranslator(map[string]string{
	TranslateMissingChannel:  "cannot find expected channel %s",
	TranslateNoCountryResult: "provider did not return a country code for %s",
	TranslateCheckFailed:     "check lookup of %s has failed",
})

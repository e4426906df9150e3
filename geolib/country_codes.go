package geolib

import (
	"strings"

	"github.com/pariz/gountries"
)

var countryQuery = gountries.New()

// Continent names as gountries reports them, mapped to 2-letter codes.
var continentCodes = map[string]string{
	"Africa":        "AF",
	"Antarctica":    "AN",
	"Asia":          "AS",
	"Australia":     "OC",
	"Oceania":       "OC",
	"Europe":        "EU",
	"North America": "NA",
	"South America": "SA",
}

// NormalizeAlpha2Code returns a normalized 2-letter ISO3166 code.
// Normalized code is uppercased with some additional mapping. Some
// backends return ZZ as 'unknown country', some report reserved blocks
// as AP or EU, some still know Serbia as YU. Whenever a 2-letter code
// comes from an unknown source, pass it through this function first.
func NormalizeAlpha2Code(alpha2 string) string {
	alpha2 = strings.ToUpper(alpha2)

	if len(alpha2) != 2 {
		return ""
	}

	switch alpha2 {
	case "ZZ", "AP", "EU":
		return ""
	case "YU":
		return "CS"
	case "FX":
		return "FR"
	case "UK":
		return "GB"
	default:
		return alpha2
	}
}

// CountryName returns a common English name for a 2-letter country
// code, or an empty string for an unknown code.
func CountryName(alpha2 string) string {
	country, err := countryQuery.FindCountryByAlpha(NormalizeAlpha2Code(alpha2))
	if err != nil {
		return ""
	}

	return country.Name.BaseLang.Common
}

// ContinentOf returns a continent code and name for a 2-letter country
// code. Continents are always derivable from a country code, so
// backends which do not ship continent columns still produce them.
func ContinentOf(alpha2 string) (code, name string, ok bool) {
	country, err := countryQuery.FindCountryByAlpha(NormalizeAlpha2Code(alpha2))
	if err != nil {
		return "", "", false
	}

	name = country.Geo.Continent
	code, ok = continentCodes[name]

	if !ok {
		return "", "", false
	}

	return code, name, true
}

// Normalize brings a raw provider answer to the canonical form: the
// country code is normalized, the country name and continent fields are
// derived from it when a backend did not supply them. Every provider
// runs its output through this helper, so delegated answers stay
// identical no matter which provider in a chain produced them.
func Normalize(result LocationResult) {
	code, ok := result[FieldCountryCode]
	if !ok {
		return
	}

	code = NormalizeAlpha2Code(code)
	if code == "" {
		delete(result, FieldCountryCode)

		return
	}

	result[FieldCountryCode] = code

	if !result.Has(FieldCountryName) {
		if name := CountryName(code); name != "" {
			result[FieldCountryName] = name
		}
	}

	if !result.Has(FieldContinentCode) || !result.Has(FieldContinentName) {
		continentCode, continentName, ok := ContinentOf(code)
		if !ok {
			return
		}

		if !result.Has(FieldContinentCode) {
			result[FieldContinentCode] = continentCode
		}

		if !result.Has(FieldContinentName) {
			result[FieldContinentName] = continentName
		}
	}
}

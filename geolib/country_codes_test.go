package geolib_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pelorus-geo/pelorus/geolib"
)

type CountryCodesTestSuite struct {
	suite.Suite
}

func (suite *CountryCodesTestSuite) TestNormalizeAlpha2Code() {
	suite.Equal("RU", geolib.NormalizeAlpha2Code("ru"))
	suite.Equal("", geolib.NormalizeAlpha2Code("zz"))
	suite.Equal("", geolib.NormalizeAlpha2Code("Eu"))
	suite.Equal("", geolib.NormalizeAlpha2Code("ap"))
	suite.Equal("", geolib.NormalizeAlpha2Code("RUS"))
	suite.Equal("FR", geolib.NormalizeAlpha2Code("FX"))
	suite.Equal("FR", geolib.NormalizeAlpha2Code("FR"))
	suite.Equal("GB", geolib.NormalizeAlpha2Code("UK"))
}

func (suite *CountryCodesTestSuite) TestCountryName() {
	suite.Equal("Russia", geolib.CountryName("ru"))
	suite.Equal("United States", geolib.CountryName("US"))
	suite.Equal("", geolib.CountryName("zz"))
}

func (suite *CountryCodesTestSuite) TestContinentOf() {
	code, name, ok := geolib.ContinentOf("US")

	suite.True(ok)
	suite.Equal("NA", code)
	suite.Equal("North America", name)

	code, _, ok = geolib.ContinentOf("DE")

	suite.True(ok)
	suite.Equal("EU", code)

	_, _, ok = geolib.ContinentOf("zz")

	suite.False(ok)
}

func (suite *CountryCodesTestSuite) TestNormalizeDerivesContinent() {
	result := geolib.LocationResult{
		geolib.FieldCountryCode: "us",
		geolib.FieldCity:        "Mountain View",
	}

	geolib.Normalize(result)

	suite.Equal("US", result[geolib.FieldCountryCode])
	suite.Equal("United States", result[geolib.FieldCountryName])
	suite.Equal("NA", result[geolib.FieldContinentCode])
	suite.Equal("North America", result[geolib.FieldContinentName])
	suite.Equal("Mountain View", result[geolib.FieldCity])
}

func (suite *CountryCodesTestSuite) TestNormalizeKeepsBackendValues() {
	result := geolib.LocationResult{
		geolib.FieldCountryCode:   "US",
		geolib.FieldCountryName:   "USA",
		geolib.FieldContinentCode: "NA",
		geolib.FieldContinentName: "North America",
	}

	geolib.Normalize(result)

	suite.Equal("USA", result[geolib.FieldCountryName])
}

func (suite *CountryCodesTestSuite) TestNormalizeDropsBogusCountry() {
	result := geolib.LocationResult{
		geolib.FieldCountryCode: "ZZ",
	}

	geolib.Normalize(result)

	suite.False(result.Has(geolib.FieldCountryCode))
	suite.False(result.Has(geolib.FieldContinentCode))
}

func (suite *CountryCodesTestSuite) TestNormalizeNoCountry() {
	result := geolib.LocationResult{
		geolib.FieldCity: "London",
	}

	geolib.Normalize(result)

	suite.Equal(geolib.LocationResult{geolib.FieldCity: "London"}, result)
}

func (suite *CountryCodesTestSuite) TestNormalizeIsIdempotent() {
	result := geolib.LocationResult{
		geolib.FieldCountryCode: "us",
	}

	geolib.Normalize(result)

	snapshot := geolib.LocationResult{}
	for k, v := range result {
		snapshot[k] = v
	}

	geolib.Normalize(result)

	suite.Equal(snapshot, result)
}

func TestCountryCodes(t *testing.T) {
	suite.Run(t, &CountryCodesTestSuite{})
}

package geolib_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pelorus-geo/pelorus/geolib"
)

type FieldsTestSuite struct {
	suite.Suite
}

func (suite *FieldsTestSuite) TestString() {
	suite.Equal("country_code", geolib.FieldCountryCode.String())
	suite.Equal("country_name", geolib.FieldCountryName.String())
	suite.Equal("latitude", geolib.FieldLatitude.String())
	suite.Equal("continent_name", geolib.FieldContinentName.String())
}

func (suite *FieldsTestSuite) TestFieldsAreUnique() {
	seen := map[string]bool{}

	for _, f := range geolib.Fields() {
		suite.False(seen[f.String()])

		seen[f.String()] = true
	}

	suite.Len(seen, 13)
}

func (suite *FieldsTestSuite) TestFieldSetHas() {
	set := geolib.FieldSet{
		geolib.FieldCity: true,
	}

	suite.True(set.Has(geolib.FieldCity))
	suite.False(set.Has(geolib.FieldISP))
}

func (suite *FieldsTestSuite) TestFieldSetMarshalJSON() {
	set := geolib.FieldSet{
		geolib.FieldCity:        true,
		geolib.FieldCountryCode: false,
	}

	data, err := json.Marshal(set)

	suite.NoError(err)

	parsed := map[string]bool{}

	suite.NoError(json.Unmarshal(data, &parsed))
	suite.Equal(map[string]bool{"city": true, "country_code": false}, parsed)
}

func TestFields(t *testing.T) {
	suite.Run(t, &FieldsTestSuite{})
}

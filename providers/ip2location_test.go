package providers_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pelorus-geo/pelorus/geolib"
	"github.com/pelorus-geo/pelorus/providers"
)

type IP2LocationTestSuite struct {
	suite.Suite
}

func (suite *IP2LocationTestSuite) TestNoDatabaseConfigured() {
	prov, err := providers.NewIP2Location("", nil)

	suite.Require().NoError(err)
	suite.Equal(providers.NameIP2Location, prov.Name())
	suite.False(prov.Available(geolib.Environ{}))
	suite.Empty(prov.SupportedFields(geolib.Environ{}))

	_, err = prov.Lookup(context.Background(), geolib.Request{
		IP: net.ParseIP("81.2.69.142"),
	})
	suite.ErrorIs(err, geolib.ErrNotAvailable)
}

func (suite *IP2LocationTestSuite) TestMissingDatabaseFile() {
	_, err := providers.NewIP2Location("/nowhere/IP2LOCATION-LITE-DB11.BIN", nil)

	suite.Error(err)
}

func TestIP2Location(t *testing.T) {
	suite.Run(t, &IP2LocationTestSuite{})
}

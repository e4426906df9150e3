package providers_test

import (
	"context"
	"net"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/pelorus-geo/pelorus/geolib"
	"github.com/pelorus-geo/pelorus/providers"
)

type MaxmindTestSuite struct {
	suite.Suite

	fs afero.Fs
}

func (suite *MaxmindTestSuite) SetupTest() {
	suite.fs = afero.NewMemMapFs()
}

func (suite *MaxmindTestSuite) TestNoDatabaseConfigured() {
	prov, err := providers.NewMaxmind(suite.fs, "", nil)

	suite.Require().NoError(err)
	suite.Equal(providers.NameMaxmind, prov.Name())
	suite.False(prov.Available(geolib.Environ{}))
	suite.Empty(prov.SupportedFields(geolib.Environ{}))

	_, err = prov.Lookup(context.Background(), geolib.Request{
		IP: net.ParseIP("81.2.69.142"),
	})
	suite.ErrorIs(err, geolib.ErrNotAvailable)

	suite.Error(prov.Check(context.Background(), geolib.Environ{}))
}

func (suite *MaxmindTestSuite) TestMissingDatabaseFile() {
	_, err := providers.NewMaxmind(suite.fs, "/nowhere/GeoLite2-City.mmdb", nil)

	suite.Error(err)
}

func (suite *MaxmindTestSuite) TestGarbageDatabaseFile() {
	path := "/geoip/GeoLite2-City.mmdb"

	suite.NoError(afero.WriteFile(suite.fs, path, []byte("certainly not mmdb"), 0o644))

	_, err := providers.NewMaxmind(suite.fs, path, nil)

	suite.Error(err)
}

func TestMaxmind(t *testing.T) {
	suite.Run(t, &MaxmindTestSuite{})
}

package geolib_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pelorus-geo/pelorus/geolib"
)

type ResolverTestSuite struct {
	suite.Suite

	provider *ProviderMock
	logger   *LoggerMock
	resolver *geolib.Resolver
}

func (suite *ResolverTestSuite) SetupTest() {
	suite.provider = &ProviderMock{}
	suite.logger = &LoggerMock{}

	suite.provider.On("Name").Return("mock").Maybe()

	registry, err := geolib.NewRegistry(suite.provider)
	if err != nil {
		panic(err)
	}

	resolver, err := geolib.NewResolver(registry, suite.logger, 16)
	if err != nil {
		panic(err)
	}

	suite.resolver = resolver
}

func (suite *ResolverTestSuite) TearDownTest() {
	suite.resolver.Shutdown()

	suite.provider.AssertExpectations(suite.T())
	suite.logger.AssertExpectations(suite.T())
}

func (suite *ResolverTestSuite) TestUnknownProvider() {
	_, err := suite.resolver.Resolve(context.Background(), "missing", geolib.Request{
		IP: net.ParseIP("1.2.3.4"),
	})

	suite.ErrorIs(err, geolib.ErrUnknownProvider)
}

func (suite *ResolverTestSuite) TestNotAvailable() {
	suite.provider.On("Available", mock.Anything).Return(false).Once()

	_, err := suite.resolver.Resolve(context.Background(), "mock", geolib.Request{
		IP: net.ParseIP("1.2.3.4"),
	})

	suite.ErrorIs(err, geolib.ErrNotAvailable)
}

func (suite *ResolverTestSuite) TestResolve() {
	expected := geolib.LocationResult{
		geolib.FieldCountryCode: "NL",
	}

	suite.provider.On("Available", mock.Anything).Return(true).Once()
	suite.provider.On("Lookup", mock.Anything, mock.Anything).Return(expected, nil).Once()

	location, err := suite.resolver.Resolve(context.Background(), "mock", geolib.Request{
		IP: net.ParseIP("1.2.3.4"),
	})

	suite.NoError(err)
	suite.Equal(expected, location)
}

func (suite *ResolverTestSuite) TestLookupErrorIsLogged() {
	lookupErr := errors.New("database has exploded")

	suite.provider.On("Available", mock.Anything).Return(true).Once()
	suite.provider.On("Lookup", mock.Anything, mock.Anything).Return(nil, lookupErr).Once()
	suite.logger.On("LookupError", mock.Anything, "mock", lookupErr).Once()

	_, err := suite.resolver.Resolve(context.Background(), "mock", geolib.Request{
		IP: net.ParseIP("1.2.3.4"),
	})

	suite.ErrorIs(err, lookupErr)
}

func (suite *ResolverTestSuite) TestNotAvailableLookupIsNotLogged() {
	suite.provider.On("Available", mock.Anything).Return(true).Once()
	suite.provider.On("Lookup", mock.Anything, mock.Anything).
		Return(nil, geolib.ErrNotAvailable).Once()

	_, err := suite.resolver.Resolve(context.Background(), "mock", geolib.Request{
		IP: net.ParseIP("1.2.3.4"),
	})

	suite.ErrorIs(err, geolib.ErrNotAvailable)
	suite.logger.AssertNotCalled(suite.T(), "LookupError",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ResolverTestSuite) TestResolveAllKeepsOrder() {
	ips := []net.IP{
		net.ParseIP("1.1.1.1"),
		net.ParseIP("2.2.2.2"),
		net.ParseIP("3.3.3.3"),
	}

	suite.provider.On("Available", mock.Anything).Return(true).Once()
	suite.provider.On("Lookup", mock.Anything, mock.Anything).
		Return(geolib.LocationResult{}, nil).Times(len(ips))

	results, err := suite.resolver.ResolveAll(context.Background(),
		"mock", ips, geolib.Environ{})

	suite.NoError(err)
	suite.Len(results, len(ips))

	for i, result := range results {
		suite.True(ips[i].Equal(result.IP))
		suite.Equal("mock", result.Provider)
	}
}

func (suite *ResolverTestSuite) TestResolveAllFailedLookup() {
	ips := []net.IP{net.ParseIP("1.1.1.1")}
	lookupErr := errors.New("nope")

	suite.provider.On("Available", mock.Anything).Return(true).Once()
	suite.provider.On("Lookup", mock.Anything, mock.Anything).Return(nil, lookupErr).Once()
	suite.logger.On("LookupError", mock.Anything, "mock", lookupErr).Once()

	results, err := suite.resolver.ResolveAll(context.Background(),
		"mock", ips, geolib.Environ{})

	suite.NoError(err)
	suite.Len(results, 1)
	suite.Nil(results[0].Location)
}

func (suite *ResolverTestSuite) TestShutdown() {
	suite.resolver.Shutdown()

	_, err := suite.resolver.Resolve(context.Background(), "mock", geolib.Request{
		IP: net.ParseIP("1.2.3.4"),
	})

	suite.ErrorIs(err, geolib.ErrResolverShutdown)

	_, err = suite.resolver.ResolveAll(context.Background(),
		"mock", nil, geolib.Environ{})

	suite.ErrorIs(err, geolib.ErrResolverShutdown)
}

func TestResolver(t *testing.T) {
	suite.Run(t, &ResolverTestSuite{})
}

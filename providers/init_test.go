package providers_test

import (
	"context"
	"net/http"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"

	"github.com/pelorus-geo/pelorus/geolib"
)

type ProviderTestSuite struct {
	suite.Suite

	http geolib.HTTPClient
}

func (suite *ProviderTestSuite) SetupTest() {
	suite.http = geolib.NewHTTPClient(&http.Client{},
		"test-agent",
		time.Millisecond,
		100,
		1)
}

type MockedProviderTestSuite struct {
	ProviderTestSuite
}

func (suite *MockedProviderTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedProviderTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedProviderTestSuite) TearDownTest() {
	httpmock.Reset()
}

// stubProvider is a registrable provider with canned answers. Fallback
// tests need to observe the exact request the server module delegates,
// which is awkward to express with mockery-style expectations.
type stubProvider struct {
	name     string
	result   geolib.LocationResult
	err      error
	lastReq  *geolib.Request
	requests int
}

func (s *stubProvider) Name() string {
	return s.name
}

func (s *stubProvider) Info(env geolib.Environ) geolib.ProviderInfo {
	return geolib.ProviderInfo{ID: s.name}
}

func (s *stubProvider) Lookup(ctx context.Context, req geolib.Request) (geolib.LocationResult, error) {
	s.requests++
	s.lastReq = &req

	return s.result, s.err
}

func (s *stubProvider) SupportedFields(env geolib.Environ) geolib.FieldSet {
	return geolib.FieldSet{}
}

func (s *stubProvider) Available(env geolib.Environ) bool {
	return true
}

func (s *stubProvider) Check(ctx context.Context, env geolib.Environ) error {
	return nil
}

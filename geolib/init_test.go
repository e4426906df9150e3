package geolib_test

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"

	"github.com/pelorus-geo/pelorus/geolib"
)

type ProviderMock struct {
	mock.Mock
}

func (m *ProviderMock) Name() string {
	return m.Called().String(0)
}

func (m *ProviderMock) Info(env geolib.Environ) geolib.ProviderInfo {
	args := m.Called(env)

	return args.Get(0).(geolib.ProviderInfo)
}

func (m *ProviderMock) Lookup(ctx context.Context, req geolib.Request) (geolib.LocationResult, error) {
	args := m.Called(ctx, req)

	var location geolib.LocationResult

	if v := args.Get(0); v != nil {
		location = v.(geolib.LocationResult)
	}

	return location, args.Error(1)
}

func (m *ProviderMock) SupportedFields(env geolib.Environ) geolib.FieldSet {
	args := m.Called(env)

	return args.Get(0).(geolib.FieldSet)
}

func (m *ProviderMock) Available(env geolib.Environ) bool {
	return m.Called(env).Bool(0)
}

func (m *ProviderMock) Check(ctx context.Context, env geolib.Environ) error {
	return m.Called(ctx, env).Error(0)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(ip net.IP, name string, err error) {
	m.Called(ip, name, err)
}

func (m *LoggerMock) CheckError(name string, err error) {
	m.Called(name, err)
}

package geolib

import "errors"

var (
	// ErrNotAvailable is returned when a provider cannot answer a
	// request at all: a forced lookup with no fallback registered, or a
	// backend which is not installed. It is an explicit 'no result'
	// outcome, distinct from an empty LocationResult.
	ErrNotAvailable = errors.New("provider cannot answer this request")

	// ErrUnknownProvider is returned by the Resolver when a requested
	// provider identifier is not present in the registry.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrProviderRegistered is returned on an attempt to register two
	// providers under the same identifier.
	ErrProviderRegistered = errors.New("provider is already registered")

	// ErrResolverShutdown is returned by a Resolver which was shut
	// down.
	ErrResolverShutdown = errors.New("resolver was shutdown")

	// ErrContextIsClosed is returned when a bulk resolution is aborted
	// because its context was cancelled.
	ErrContextIsClosed = errors.New("context is closed")
)

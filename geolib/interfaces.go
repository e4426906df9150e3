package geolib

import (
	"context"
	"net"
	"net/http"
)

// Provider is an adapter around a single source of geolocation facts.
// All methods take the current environment explicitly so there is no
// hidden global state anywhere in the implementation.
type Provider interface {
	// Name returns a stable identifier used for registry lookups and
	// fallback chains.
	Name() string

	// Info returns descriptive metadata. It may consult the
	// environment (to detect a host server, for example) but only for
	// display purposes.
	Info(env Environ) ProviderInfo

	// Lookup resolves the location of the requested IP address.
	// Ordinary absence of data is not an error: a partially filled or
	// even empty LocationResult is a successful answer. ErrNotAvailable
	// is returned when the provider structurally cannot answer this
	// request at all. Any other error means a genuine malfunction.
	Lookup(ctx context.Context, req Request) (LocationResult, error)

	// SupportedFields reports which canonical fields are currently
	// obtainable. The answer reflects the present runtime state, not a
	// constant of the provider kind.
	SupportedFields(env Environ) FieldSet

	// Available is a cheap, side-effect-free check that the backend is
	// installed and configured at all. It is distinct from 'can answer
	// right now'.
	Available(env Environ) bool

	// Check verifies the backend actually produces usable data. A nil
	// return means the provider is working; otherwise the error carries
	// a human-readable reason for operators. Check never interrupts
	// lookups running elsewhere.
	Check(ctx context.Context, env Environ) error
}

// Logger is a minimal logging surface the library needs. The binary
// wires a real structured logger behind it.
type Logger interface {
	LookupError(ip net.IP, name string, err error)
	CheckError(name string, err error)
}

// HTTPClient is an interface of *http.Client. Remote providers take it
// instead of a concrete client so rate limiting, retries and mocks can
// be slotted in.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Translator turns an internal diagnostic key and interpolation
// arguments into a human-readable string. The library treats the
// return value opaquely.
type Translator interface {
	Translate(key string, args ...interface{}) string
}

package geolib

import (
	"encoding/json"
	"net"
	"strconv"
)

// LocationResult is a canonical, backend-agnostic record of resolved
// location fields. A missing key means 'not obtainable from this
// backend under current configuration'. Never treat an absent field as
// an empty string: partial results are the expected common case, not an
// error.
type LocationResult map[Field]string

// Get returns a field value and whether it was resolved at all.
func (r LocationResult) Get(f Field) (string, bool) {
	value, ok := r[f]

	return value, ok
}

// Has tells if a field was resolved.
func (r LocationResult) Has(f Field) bool {
	_, ok := r[f]

	return ok
}

// Coordinates returns parsed latitude and longitude. ok is false if
// either coordinate is missing or malformed.
func (r LocationResult) Coordinates() (lat, lon float64, ok bool) {
	latValue, okLat := r[FieldLatitude]
	lonValue, okLon := r[FieldLongitude]

	if !okLat || !okLon {
		return 0, 0, false
	}

	lat, errLat := strconv.ParseFloat(latValue, 64)
	lon, errLon := strconv.ParseFloat(lonValue, 64)

	if errLat != nil || errLon != nil {
		return 0, 0, false
	}

	return lat, lon, true
}

// MarshalJSON renders the result as an object keyed by canonical field
// names. Unresolved fields are omitted.
func (r LocationResult) MarshalJSON() ([]byte, error) {
	rv := make(map[string]string, len(r))

	for f, value := range r {
		rv[f.String()] = value
	}

	return json.Marshal(rv)
}

// ProviderInfo is static descriptive metadata of a provider. It is
// purely for display: nothing in this package makes decisions based on
// it.
type ProviderInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Environ is an explicit per-request snapshot of everything the host
// environment publishes for the current connection: precomputed
// geolocation variables (channels), the real client IP, the list of
// loaded server modules and a cosmetic host description.
//
// It is passed into every provider call instead of being read from
// ambient global state, which makes the forced-IP comparison and tests
// trivial to set up.
type Environ struct {
	// RemoteIP is the IP address which actually connected. It is the
	// reference point of the forced lookup detection. Nil means the
	// real client address is unknown.
	RemoteIP net.IP

	// Vars are host-published channel variables. Presence of a key
	// means the channel is wired up, even when its value is empty.
	Vars map[string]string

	// Modules is a list of server modules reported by the host
	// integration. Nil means no module introspection is available,
	// which is not an error.
	Modules []string

	// ServerDescription is a host description string ("Apache" and the
	// like). Cosmetic only.
	ServerDescription string
}

// Var returns a channel value and whether the channel is present.
func (e Environ) Var(name string) (string, bool) {
	value, ok := e.Vars[name]

	return value, ok
}

// HasVar tells if a channel is present at all, even with an empty
// value.
func (e Environ) HasVar(name string) bool {
	_, ok := e.Vars[name]

	return ok
}

// HasModule tells if a server module is reported as loaded. Absent
// module introspection simply yields false.
func (e Environ) HasModule(name string) bool {
	for _, v := range e.Modules {
		if v == name {
			return true
		}
	}

	return false
}

// Request describes a single location question: which IP to resolve and
// under which environment. Requests are created per call and never
// shared.
type Request struct {
	// IP is the target address. It does not have to be the connecting
	// one.
	IP net.IP

	// NoFallback disables the fallback chain for providers which
	// cannot answer forced lookups themselves. Such a provider then
	// reports ErrNotAvailable instead of delegating.
	NoFallback bool

	// Env is the host environment snapshot for this request.
	Env Environ
}

// Forced tells if this request asks about an address other than the
// connecting one. An unknown client address counts as forced: a
// provider must never pretend the requested IP is local when it cannot
// verify that.
func (r Request) Forced() bool {
	return r.Env.RemoteIP == nil || !r.Env.RemoteIP.Equal(r.IP)
}

// ResolveResult is a single entry of a bulk resolution.
type ResolveResult struct {
	IP       net.IP         `json:"ip"`
	Provider string         `json:"provider"`
	Location LocationResult `json:"location"`
}

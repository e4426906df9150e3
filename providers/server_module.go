package providers

import (
	"context"
	"errors"

	"github.com/pelorus-geo/pelorus/geolib"
)

// Channels the host server publishes precomputed geolocation facts
// through. This table is the single source of truth for both lookups
// and capability probing of the server module provider.
var serverModuleChannels = map[geolib.Field]string{
	geolib.FieldCountryCode:  "GEOIP_COUNTRY_CODE",
	geolib.FieldCountryName:  "GEOIP_COUNTRY_NAME",
	geolib.FieldRegionCode:   "GEOIP_REGION",
	geolib.FieldRegionName:   "GEOIP_REGION_NAME",
	geolib.FieldCity:         "GEOIP_CITY",
	geolib.FieldAreaCode:     "GEOIP_AREA_CODE",
	geolib.FieldLatitude:     "GEOIP_LATITUDE",
	geolib.FieldLongitude:    "GEOIP_LONGITUDE",
	geolib.FieldPostalCode:   "GEOIP_POSTAL_CODE",
	geolib.FieldISP:          "GEOIP_ISP",
	geolib.FieldOrganization: "GEOIP_ORGANIZATION",
}

// Server modules which indicate a geolocation integration is loaded on
// the host.
var serverGeoModules = []string{
	"mod_geoip",
	"mod_maxminddb",
	"ngx_http_geoip_module",
	"ngx_http_geoip2_module",
}

// DefaultFallbackChain is the documented order of providers the server
// module delegates forced lookups to. Operators may override it but no
// extra semantics is attached to the order beyond 'first registered
// wins'.
var DefaultFallbackChain = []string{NameMaxmind, NameIP2Location}

type serverModuleProvider struct {
	registry   *geolib.Registry
	fallback   []string
	translator geolib.Translator
}

func (s serverModuleProvider) Name() string {
	return NameServerModule
}

func (s serverModuleProvider) Info(env geolib.Environ) geolib.ProviderInfo {
	server := env.ServerDescription
	if server == "" {
		server = "HTTP server"
	}

	return geolib.ProviderInfo{
		ID:    NameServerModule,
		Title: "Server Module (" + server + ")",
		Description: "Uses geolocation variables published by the hosting " +
			"server for the current connection. Fast and free, but it only " +
			"ever knows about the connecting address.",
	}
}

// Lookup reads host-published channels for the connecting client. A
// server module only ever sees its own connection, so a forced lookup
// (an IP other than the connecting one) is delegated to the first
// registered provider of the fallback chain. Without a fallback such a
// request is answered with ErrNotAvailable: pretending to answer for
// the wrong IP is worse than not answering.
func (s serverModuleProvider) Lookup(ctx context.Context, req geolib.Request) (geolib.LocationResult, error) {
	if req.Forced() {
		if req.NoFallback {
			return nil, geolib.ErrNotAvailable
		}

		for _, name := range s.fallback {
			if provider, ok := s.registry.Get(name); ok {
				return provider.Lookup(ctx, req)
			}
		}

		return nil, geolib.ErrNotAvailable
	}

	result := geolib.LocationResult{}

	for field, channel := range serverModuleChannels {
		if value, ok := req.Env.Var(channel); ok && value != "" {
			result[field] = value
		}
	}

	geolib.Normalize(result)

	return result, nil
}

// SupportedFields marks a field as obtainable iff its channel is
// currently present, even with an empty value: presence means the host
// module is at least wired up for it. Country and continent fields are
// always marked supported. A working country channel is a hard
// requirement of this provider, so its absence is a Check diagnostic,
// not a missing capability.
func (s serverModuleProvider) SupportedFields(env geolib.Environ) geolib.FieldSet {
	rv := geolib.FieldSet{}

	for field, channel := range serverModuleChannels {
		rv[field] = env.HasVar(channel)
	}

	rv[geolib.FieldCountryCode] = true
	rv[geolib.FieldCountryName] = true
	rv[geolib.FieldContinentCode] = true
	rv[geolib.FieldContinentName] = true

	return rv
}

// Available reports true if the host declares a known geolocation
// module, or, when module introspection is absent, if the country code
// channel carries a value. Either signal alone is sufficient.
func (s serverModuleProvider) Available(env geolib.Environ) bool {
	for _, name := range serverGeoModules {
		if env.HasModule(name) {
			return true
		}
	}

	value, _ := env.Var(serverModuleChannels[geolib.FieldCountryCode])

	return value != ""
}

func (s serverModuleProvider) Check(ctx context.Context, env geolib.Environ) error {
	channel := serverModuleChannels[geolib.FieldCountryCode]

	if value, _ := env.Var(channel); value == "" {
		return errors.New(s.translator.Translate(geolib.TranslateMissingChannel, channel))
	}

	return geolib.CheckLookup(ctx, s, env, env.RemoteIP, s.translator)
}

// ServerModuleChannels returns the channel names in no particular
// order. The HTTP frontend uses it to know which header variables to
// lift into the request environment.
func ServerModuleChannels() []string {
	rv := make([]string, 0, len(serverModuleChannels))

	for _, channel := range serverModuleChannels {
		rv = append(rv, channel)
	}

	return rv
}

// NewServerModule returns a provider which reads geolocation facts the
// hosting server publishes for the current connection.
//
//	Identifier: server_module
//	Provider type: host integration
//
// The registry is consulted at lookup time to walk the fallback chain,
// so the server module may be registered before the providers it falls
// back to. A nil fallback picks DefaultFallbackChain, a nil translator
// picks geolib.DefaultTranslator.
func NewServerModule(registry *geolib.Registry,
	fallback []string,
	translator geolib.Translator) geolib.Provider {
	if fallback == nil {
		fallback = DefaultFallbackChain
	}

	if translator == nil {
		translator = geolib.DefaultTranslator
	}

	return serverModuleProvider{
		registry:   registry,
		fallback:   fallback,
		translator: translator,
	}
}

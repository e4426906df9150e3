package geolib

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// checkIP belongs to a MaxMind demo network and is present in every
// sane geolocation database, which makes it a good reference point for
// health checks.
var checkIP = net.ParseIP("81.2.69.142")

// CheckLookup is the generic health check shared by providers: resolve
// a reference address and require at least a country code in the
// answer. A backend which cannot produce a country is misconfigured
// whatever else it returns.
//
// ip overrides the reference address; pass nil to use the builtin one.
// A nil translator picks DefaultTranslator.
func CheckLookup(ctx context.Context, provider Provider, env Environ, ip net.IP, translator Translator) error {
	if ip == nil {
		ip = checkIP
	}

	if translator == nil {
		translator = DefaultTranslator
	}

	req := Request{
		IP:         ip,
		NoFallback: true,
		Env:        env,
	}

	location, err := provider.Lookup(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", translator.Translate(TranslateCheckFailed, ip.String()), err)
	}

	if !location.Has(FieldCountryCode) {
		return errors.New(translator.Translate(TranslateNoCountryResult, ip.String()))
	}

	return nil
}

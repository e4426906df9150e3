package providers

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/ip2location/ip2location-go/v9"

	"github.com/pelorus-geo/pelorus/geolib"
)

// An address used to probe which columns the opened BIN product
// actually carries. Same demo network the shared health check uses.
const ip2locationProbeIP = "81.2.69.142"

// Values the ip2location package substitutes for columns which are not
// part of the opened data product.
var ip2locationPlaceholders = map[string]bool{
	"This parameter is unavailable for selected data file. Please upgrade the data file.": true,
	"Invalid IP address.": true,
	"-": true,
	"":  true,
}

func ip2locationValue(raw string) (string, bool) {
	if ip2locationPlaceholders[raw] {
		return "", false
	}

	return raw, true
}

type ip2locationProvider struct {
	db         *ip2location.DB
	dbLock     sync.RWMutex
	translator geolib.Translator
}

func (i *ip2locationProvider) Name() string {
	return NameIP2Location
}

func (i *ip2locationProvider) Info(env geolib.Environ) geolib.ProviderInfo {
	return geolib.ProviderInfo{
		ID:    NameIP2Location,
		Title: "IP2Location Database",
		Description: "A pure in-process reader of IP2Location BIN files. " +
			"Answers for any IP address; available columns depend on the " +
			"purchased data product.",
	}
}

func (i *ip2locationProvider) Lookup(ctx context.Context, req geolib.Request) (geolib.LocationResult, error) {
	i.dbLock.RLock()
	defer i.dbLock.RUnlock()

	if i.db == nil {
		return nil, geolib.ErrNotAvailable
	}

	record, err := i.db.Get_all(req.IP.String())
	if err != nil {
		return nil, fmt.Errorf("cannot lookup this ip address: %w", err)
	}

	result := geolib.LocationResult{}

	if value, ok := ip2locationValue(record.Country_short); ok {
		result[geolib.FieldCountryCode] = value
	}

	if value, ok := ip2locationValue(record.Country_long); ok {
		result[geolib.FieldCountryName] = value
	}

	if value, ok := ip2locationValue(record.Region); ok {
		result[geolib.FieldRegionName] = value
	}

	if value, ok := ip2locationValue(record.City); ok {
		result[geolib.FieldCity] = value
	}

	if value, ok := ip2locationValue(record.Zipcode); ok {
		result[geolib.FieldPostalCode] = value
	}

	if value, ok := ip2locationValue(record.Isp); ok {
		result[geolib.FieldISP] = value
	}

	if value, ok := ip2locationValue(record.Areacode); ok {
		result[geolib.FieldAreaCode] = value
	}

	if record.Latitude != 0 || record.Longitude != 0 {
		result[geolib.FieldLatitude] = strconv.FormatFloat(float64(record.Latitude), 'f', -1, 32)
		result[geolib.FieldLongitude] = strconv.FormatFloat(float64(record.Longitude), 'f', -1, 32)
	}

	geolib.Normalize(result)

	return result, nil
}

// SupportedFields is probed from a reference lookup: BIN products
// differ in which columns they carry and the package reports missing
// ones with placeholder values instead of metadata.
func (i *ip2locationProvider) SupportedFields(env geolib.Environ) geolib.FieldSet {
	i.dbLock.RLock()
	defer i.dbLock.RUnlock()

	rv := geolib.FieldSet{}

	if i.db == nil {
		return rv
	}

	record, err := i.db.Get_all(ip2locationProbeIP)
	if err != nil {
		return rv
	}

	_, hasCountry := ip2locationValue(record.Country_short)

	rv[geolib.FieldCountryCode] = hasCountry
	rv[geolib.FieldCountryName] = hasCountry

	// Continents are derived from the country code.
	rv[geolib.FieldContinentCode] = hasCountry
	rv[geolib.FieldContinentName] = hasCountry

	_, rv[geolib.FieldRegionName] = ip2locationValue(record.Region)
	_, rv[geolib.FieldCity] = ip2locationValue(record.City)
	_, rv[geolib.FieldPostalCode] = ip2locationValue(record.Zipcode)
	_, rv[geolib.FieldISP] = ip2locationValue(record.Isp)
	_, rv[geolib.FieldAreaCode] = ip2locationValue(record.Areacode)

	hasCoordinates := record.Latitude != 0 || record.Longitude != 0
	rv[geolib.FieldLatitude] = hasCoordinates
	rv[geolib.FieldLongitude] = hasCoordinates

	return rv
}

func (i *ip2locationProvider) Available(env geolib.Environ) bool {
	i.dbLock.RLock()
	defer i.dbLock.RUnlock()

	return i.db != nil
}

func (i *ip2locationProvider) Check(ctx context.Context, env geolib.Environ) error {
	return geolib.CheckLookup(ctx, i, env, nil, i.translator)
}

// Shutdown closes the database.
func (i *ip2locationProvider) Shutdown() {
	i.dbLock.Lock()
	defer i.dbLock.Unlock()

	if i.db != nil {
		i.db.Close()
		i.db = nil
	}
}

// NewIP2Location returns a provider reading an IP2Location BIN file.
//
//	Identifier: ip2location
//	Provider type: offline database
//	Website: https://www.ip2location.com
//
// As with NewMaxmind, an empty path builds a not-available provider and
// an unreadable file fails construction.
func NewIP2Location(path string, translator geolib.Translator) (geolib.Provider, error) {
	if translator == nil {
		translator = geolib.DefaultTranslator
	}

	rv := &ip2locationProvider{
		translator: translator,
	}

	if path == "" {
		return rv, nil
	}

	db, err := ip2location.OpenDB(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open ip2location database: %w", err)
	}

	rv.db = db

	return rv, nil
}

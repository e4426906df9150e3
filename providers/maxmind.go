package providers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/oschwald/maxminddb-golang"
	"github.com/spf13/afero"

	"github.com/pelorus-geo/pelorus/geolib"
)

type maxmindRecord struct {
	City struct {
		Names struct {
			En string `maxminddb:"en"`
		} `maxminddb:"names"`
	} `maxminddb:"city"`
	Continent struct {
		Code  string `maxminddb:"code"`
		Names struct {
			En string `maxminddb:"en"`
		} `maxminddb:"names"`
	} `maxminddb:"continent"`
	Country struct {
		IsoCode string `maxminddb:"iso_code"`
		Names   struct {
			En string `maxminddb:"en"`
		} `maxminddb:"names"`
	} `maxminddb:"country"`
	Location struct {
		Latitude  float64 `maxminddb:"latitude"`
		Longitude float64 `maxminddb:"longitude"`
	} `maxminddb:"location"`
	Postal struct {
		Code string `maxminddb:"code"`
	} `maxminddb:"postal"`
	Subdivisions []struct {
		IsoCode string `maxminddb:"iso_code"`
		Names   struct {
			En string `maxminddb:"en"`
		} `maxminddb:"names"`
	} `maxminddb:"subdivisions"`
}

type maxmindProvider struct {
	dbReader     *maxminddb.Reader
	dbReaderLock sync.RWMutex
	translator   geolib.Translator
}

func (m *maxmindProvider) Name() string {
	return NameMaxmind
}

func (m *maxmindProvider) Info(env geolib.Environ) geolib.ProviderInfo {
	title := "MaxMind Database"

	m.dbReaderLock.RLock()
	if m.dbReader != nil {
		title = fmt.Sprintf("MaxMind Database (%s)", m.dbReader.Metadata.DatabaseType)
	}
	m.dbReaderLock.RUnlock()

	return geolib.ProviderInfo{
		ID:    NameMaxmind,
		Title: title,
		Description: "A pure in-process reader of MaxMind mmdb files. " +
			"Answers for any IP address, not only the connecting one.",
	}
}

func (m *maxmindProvider) Lookup(ctx context.Context, req geolib.Request) (geolib.LocationResult, error) {
	m.dbReaderLock.RLock()
	defer m.dbReaderLock.RUnlock()

	if m.dbReader == nil {
		return nil, geolib.ErrNotAvailable
	}

	record := maxmindRecord{}

	if err := m.dbReader.Lookup(req.IP, &record); err != nil {
		return nil, fmt.Errorf("cannot lookup this ip address: %w", err)
	}

	result := geolib.LocationResult{}

	if record.Country.IsoCode != "" {
		result[geolib.FieldCountryCode] = strings.ToUpper(record.Country.IsoCode)
	}

	if record.Country.Names.En != "" {
		result[geolib.FieldCountryName] = record.Country.Names.En
	}

	if record.Continent.Code != "" {
		result[geolib.FieldContinentCode] = record.Continent.Code
	}

	if record.Continent.Names.En != "" {
		result[geolib.FieldContinentName] = record.Continent.Names.En
	}

	if record.City.Names.En != "" {
		result[geolib.FieldCity] = record.City.Names.En
	}

	if len(record.Subdivisions) > 0 {
		if code := record.Subdivisions[0].IsoCode; code != "" {
			result[geolib.FieldRegionCode] = code
		}

		if name := record.Subdivisions[0].Names.En; name != "" {
			result[geolib.FieldRegionName] = name
		}
	}

	if record.Postal.Code != "" {
		result[geolib.FieldPostalCode] = record.Postal.Code
	}

	if record.Location.Latitude != 0 || record.Location.Longitude != 0 {
		result[geolib.FieldLatitude] = strconv.FormatFloat(record.Location.Latitude, 'f', -1, 64)
		result[geolib.FieldLongitude] = strconv.FormatFloat(record.Location.Longitude, 'f', -1, 64)
	}

	geolib.Normalize(result)

	return result, nil
}

// SupportedFields depends on which database edition is opened: a
// Country edition has no city-level columns while City editions carry
// the full set. ISP and organization live in commercial editions this
// reader does not special-case, so they are never announced.
func (m *maxmindProvider) SupportedFields(env geolib.Environ) geolib.FieldSet {
	m.dbReaderLock.RLock()
	defer m.dbReaderLock.RUnlock()

	rv := geolib.FieldSet{}

	if m.dbReader == nil {
		return rv
	}

	rv[geolib.FieldCountryCode] = true
	rv[geolib.FieldCountryName] = true
	rv[geolib.FieldContinentCode] = true
	rv[geolib.FieldContinentName] = true

	if strings.Contains(m.dbReader.Metadata.DatabaseType, "City") {
		rv[geolib.FieldRegionCode] = true
		rv[geolib.FieldRegionName] = true
		rv[geolib.FieldCity] = true
		rv[geolib.FieldPostalCode] = true
		rv[geolib.FieldLatitude] = true
		rv[geolib.FieldLongitude] = true
	}

	return rv
}

func (m *maxmindProvider) Available(env geolib.Environ) bool {
	m.dbReaderLock.RLock()
	defer m.dbReaderLock.RUnlock()

	return m.dbReader != nil
}

func (m *maxmindProvider) Check(ctx context.Context, env geolib.Environ) error {
	return geolib.CheckLookup(ctx, m, env, nil, m.translator)
}

// Open reads a database file and swaps it in. It may be called again
// later to pick up a refreshed file.
func (m *maxmindProvider) Open(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("cannot read a database file: %w", err)
	}

	reader, err := maxminddb.FromBytes(data)
	if err != nil {
		return fmt.Errorf("cannot initialize a reader of maxminddb: %w", err)
	}

	m.dbReaderLock.Lock()
	defer m.dbReaderLock.Unlock()

	if m.dbReader != nil {
		m.dbReader.Close()
	}

	m.dbReader = reader

	return nil
}

// Shutdown closes the database reader.
func (m *maxmindProvider) Shutdown() {
	m.dbReaderLock.Lock()
	defer m.dbReaderLock.Unlock()

	if m.dbReader != nil {
		m.dbReader.Close()
		m.dbReader = nil
	}
}

// NewMaxmind returns a provider reading a MaxMind mmdb file.
//
//	Identifier: maxmind
//	Provider type: offline database
//	Website: https://maxmind.com
//
// An empty path builds a provider without a database: it reports itself
// as not available instead of failing, so a deployment without the file
// still starts. A present but unreadable file is a configuration error
// and fails construction.
func NewMaxmind(fs afero.Fs, path string, translator geolib.Translator) (geolib.Provider, error) {
	if translator == nil {
		translator = geolib.DefaultTranslator
	}

	rv := &maxmindProvider{
		translator: translator,
	}

	if path == "" {
		return rv, nil
	}

	if err := rv.Open(fs, path); err != nil {
		return nil, fmt.Errorf("cannot open maxmind database: %w", err)
	}

	return rv, nil
}

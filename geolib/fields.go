package geolib

import (
	"encoding/json"
	"strconv"
)

// Field is a canonical location attribute. Every provider output is
// normalized into this closed set, whatever a backend natively calls
// its columns.
type Field uint8

const (
	FieldCountryCode Field = iota
	FieldCountryName
	FieldRegionCode
	FieldRegionName
	FieldCity
	FieldAreaCode
	FieldLatitude
	FieldLongitude
	FieldPostalCode
	FieldISP
	FieldOrganization
	FieldContinentCode
	FieldContinentName

	fieldCount
)

var fieldNames = [fieldCount]string{
	"country_code",
	"country_name",
	"region_code",
	"region_name",
	"city",
	"area_code",
	"latitude",
	"longitude",
	"postal_code",
	"isp",
	"organization",
	"continent_code",
	"continent_name",
}

// String returns a stable snake_case name of the field. This name is
// used in JSON documents produced by the HTTP handler.
func (f Field) String() string {
	if f >= fieldCount {
		return "field_" + strconv.Itoa(int(f))
	}

	return fieldNames[f]
}

// MarshalText is to conform encoding.TextMarshaler so fields can be
// used as JSON object keys.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Fields returns all canonical fields in their declaration order.
func Fields() []Field {
	rv := make([]Field, 0, fieldCount)

	for f := Field(0); f < fieldCount; f++ {
		rv = append(rv, f)
	}

	return rv
}

// FieldSet is a capability map: which canonical fields a provider can
// currently obtain. It is computed per call because availability of a
// field may depend on runtime configuration, not only on the provider
// kind.
type FieldSet map[Field]bool

// Has tells if a field is marked as obtainable. Missing entries mean
// 'not obtainable'.
func (s FieldSet) Has(f Field) bool {
	return s[f]
}

// MarshalJSON renders the set as an object keyed by field names.
func (s FieldSet) MarshalJSON() ([]byte, error) {
	rv := make(map[string]bool, len(s))

	for f, ok := range s {
		rv[f.String()] = ok
	}

	return json.Marshal(rv)
}

package providers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/pelorus-geo/pelorus/geolib"
)

type ipinfoResponse struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
	Loc     string `json:"loc"`
	Org     string `json:"org"`
	Postal  string `json:"postal"`
}

type ipinfoProvider struct {
	authToken  string
	client     geolib.HTTPClient
	translator geolib.Translator
}

func (i ipinfoProvider) Name() string {
	return NameIPInfo
}

func (i ipinfoProvider) Info(env geolib.Environ) geolib.ProviderInfo {
	return geolib.ProviderInfo{
		ID:    NameIPInfo,
		Title: "IPinfo Web Service",
		Description: "Asks ipinfo.io over HTTP. Answers for any IP " +
			"address but every lookup is a network roundtrip.",
	}
}

func (i ipinfoProvider) Lookup(ctx context.Context, req geolib.Request) (geolib.LocationResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx,
		http.MethodGet, "https://ipinfo.io/"+req.IP.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build a request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if i.authToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+i.authToken)
	}

	resp, err := i.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("cannot send a request: %w", err)
	}

	defer func() {
		io.Copy(ioutil.Discard, resp.Body) // nolint: errcheck
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	jsonResponse := ipinfoResponse{}
	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&jsonResponse); err != nil {
		return nil, fmt.Errorf("cannot parse a response: %w", err)
	}

	result := geolib.LocationResult{}

	if jsonResponse.Country != "" {
		result[geolib.FieldCountryCode] = jsonResponse.Country
	}

	if jsonResponse.Region != "" {
		result[geolib.FieldRegionName] = jsonResponse.Region
	}

	if jsonResponse.City != "" {
		result[geolib.FieldCity] = jsonResponse.City
	}

	if jsonResponse.Postal != "" {
		result[geolib.FieldPostalCode] = jsonResponse.Postal
	}

	if jsonResponse.Org != "" {
		result[geolib.FieldOrganization] = jsonResponse.Org
	}

	if lat, lon, ok := splitLoc(jsonResponse.Loc); ok {
		result[geolib.FieldLatitude] = lat
		result[geolib.FieldLongitude] = lon
	}

	geolib.Normalize(result)

	return result, nil
}

func (i ipinfoProvider) SupportedFields(env geolib.Environ) geolib.FieldSet {
	// The response schema of ipinfo.io is fixed for the plans this
	// provider speaks.
	return geolib.FieldSet{
		geolib.FieldCountryCode:   true,
		geolib.FieldCountryName:   true,
		geolib.FieldContinentCode: true,
		geolib.FieldContinentName: true,
		geolib.FieldRegionName:    true,
		geolib.FieldCity:          true,
		geolib.FieldPostalCode:    true,
		geolib.FieldOrganization:  true,
		geolib.FieldLatitude:      true,
		geolib.FieldLongitude:     true,
	}
}

func (i ipinfoProvider) Available(env geolib.Environ) bool {
	return true
}

func (i ipinfoProvider) Check(ctx context.Context, env geolib.Environ) error {
	return geolib.CheckLookup(ctx, i, env, nil, i.translator)
}

func splitLoc(loc string) (lat, lon string, ok bool) {
	parts := strings.SplitN(loc, ",", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	return parts[0], parts[1], true
}

// NewIPInfo returns a provider asking ipinfo.io.
//
//	Identifier: ipinfo
//	Provider type: remote web service
//	Website: https://ipinfo.io
//
// An empty auth token is fine: the anonymous plan answers with the same
// schema, just with tighter limits.
func NewIPInfo(client geolib.HTTPClient, authToken string, translator geolib.Translator) geolib.Provider {
	if translator == nil {
		translator = geolib.DefaultTranslator
	}

	return ipinfoProvider{
		authToken:  authToken,
		client:     client,
		translator: translator,
	}
}

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pelorus-geo/pelorus/providers"
)

func TestConfigOk(t *testing.T) {
	text := `{
		listen: "0.0.0.0:9000"
		provider: maxmind
		worker_pool_size: 64

		server_module: {
			// first registered provider of this list answers forced lookups
			fallback: ["ip2location", "maxmind"]
			modules: ["mod_geoip"]
			description: "Apache/2.4"
		}

		maxmind: {
			database: "/geoip/GeoLite2-City.mmdb"
		}

		ipinfo: {
			enabled: true
			auth_token: "token"
			cache_ttl: "30m"
			http_timeout: "5s"
		}
	}`

	conf, err := parseConfig(strings.NewReader(text))
	assert.Nil(t, err)
	assert.NotNil(t, conf)

	assert.Equal(t, "0.0.0.0:9000", conf.GetListen())
	assert.Equal(t, "maxmind", conf.GetProvider())
	assert.Equal(t, 64, conf.WorkerPoolSize)
	assert.Equal(t, []string{"ip2location", "maxmind"}, conf.GetFallback())
	assert.Equal(t, []string{"mod_geoip"}, conf.ServerModule.Modules)
	assert.Equal(t, "Apache/2.4", conf.ServerModule.Description)
	assert.Equal(t, "/geoip/GeoLite2-City.mmdb", conf.Maxmind.Database)
	assert.True(t, conf.IPInfo.Enabled)
	assert.Equal(t, "token", conf.IPInfo.AuthToken)
	assert.Equal(t, 30*time.Minute, conf.IPInfo.GetCacheTTL())
	assert.Equal(t, 5*time.Second, conf.IPInfo.GetHTTPTimeout())
}

func TestConfigDefaults(t *testing.T) {
	conf, err := parseConfig(strings.NewReader("{}"))
	assert.Nil(t, err)
	assert.NotNil(t, conf)

	assert.Equal(t, DefaultListen, conf.GetListen())
	assert.Equal(t, providers.NameServerModule, conf.GetProvider())
	assert.Nil(t, conf.GetFallback())
	assert.False(t, conf.IPInfo.Enabled)
	assert.Equal(t, DefaultHTTPTimeout, conf.IPInfo.GetHTTPTimeout())
	assert.Equal(t, DefaultRateLimitInterval, conf.IPInfo.GetRateLimitInterval())
	assert.Equal(t, DefaultRateLimitBurst, conf.IPInfo.GetRateLimitBurst())
	assert.Equal(t, uint64(DefaultMaxRetries), conf.IPInfo.GetMaxRetries())
	assert.Equal(t, DefaultCacheTTL, conf.IPInfo.GetCacheTTL())
}

func TestConfigBrokenDuration(t *testing.T) {
	text := `{ipinfo: {cache_ttl: "bogus"}}`

	_, err := parseConfig(strings.NewReader(text))
	assert.NotNil(t, err)
}

func TestConfigNotHJSON(t *testing.T) {
	_, err := parseConfig(strings.NewReader("]["))
	assert.NotNil(t, err)
}

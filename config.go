package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"time"

	"github.com/hjson/hjson-go"

	"github.com/pelorus-geo/pelorus/providers"
)

const (
	DefaultListen            = "127.0.0.1:8000"
	DefaultHTTPTimeout       = 10 * time.Second
	DefaultRateLimitInterval = 100 * time.Millisecond
	DefaultRateLimitBurst    = 10
	DefaultMaxRetries        = 3
	DefaultCacheTTL          = time.Hour
)

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	dur, err := time.ParseDuration(vv)
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	d.Duration = dur

	return nil
}

type configServerModule struct {
	Fallback    []string `json:"fallback"`
	Modules     []string `json:"modules"`
	Description string   `json:"description"`
}

type configDatabase struct {
	Database string `json:"database"`
}

type configIPInfo struct {
	Enabled           bool     `json:"enabled"`
	AuthToken         string   `json:"auth_token"`
	CacheSize         uint     `json:"cache_size"`
	CacheTTL          duration `json:"cache_ttl"`
	HTTPTimeout       duration `json:"http_timeout"`
	RateLimitInterval duration `json:"rate_limit_interval"`
	RateLimitBurst    int      `json:"rate_limit_burst"`
	MaxRetries        uint64   `json:"max_retries"`
}

type configBasicAuth struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type config struct {
	Listen         string             `json:"listen"`
	Provider       string             `json:"provider"`
	WorkerPoolSize int                `json:"worker_pool_size"`
	BasicAuth      configBasicAuth    `json:"basic_auth"`
	ServerModule   configServerModule `json:"server_module"`
	Maxmind        configDatabase     `json:"maxmind"`
	IP2Location    configDatabase     `json:"ip2location"`
	IPInfo         configIPInfo       `json:"ipinfo"`
}

func (c config) GetListen() string {
	if c.Listen != "" {
		return c.Listen
	}

	return DefaultListen
}

func (c config) GetProvider() string {
	if c.Provider != "" {
		return c.Provider
	}

	return providers.NameServerModule
}

func (c config) GetFallback() []string {
	if len(c.ServerModule.Fallback) > 0 {
		return c.ServerModule.Fallback
	}

	return nil
}

func (c configIPInfo) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout.Duration > 0 {
		return c.HTTPTimeout.Duration
	}

	return DefaultHTTPTimeout
}

func (c configIPInfo) GetRateLimitInterval() time.Duration {
	if c.RateLimitInterval.Duration > 0 {
		return c.RateLimitInterval.Duration
	}

	return DefaultRateLimitInterval
}

func (c configIPInfo) GetRateLimitBurst() int {
	if c.RateLimitBurst > 0 {
		return c.RateLimitBurst
	}

	return DefaultRateLimitBurst
}

func (c configIPInfo) GetMaxRetries() uint64 {
	if c.MaxRetries > 0 {
		return c.MaxRetries
	}

	return DefaultMaxRetries
}

func (c configIPInfo) GetCacheTTL() time.Duration {
	if c.CacheTTL.Duration > 0 {
		return c.CacheTTL.Duration
	}

	return DefaultCacheTTL
}

func parseConfig(source io.Reader) (*config, error) {
	data, err := ioutil.ReadAll(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	raw := map[string]interface{}{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse hjson: %w", err)
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("cannot convert config to json: %w", err)
	}

	conf := &config{}
	if err := json.Unmarshal(jsonData, conf); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}

	return conf, nil
}

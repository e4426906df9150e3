package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/pelorus-geo/pelorus/geolib"
	"github.com/pelorus-geo/pelorus/providers"
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

func makeRegistry(conf *config) (*geolib.Registry, error) {
	registry, err := geolib.NewRegistry()
	if err != nil {
		return nil, err
	}

	serverModule := providers.NewServerModule(registry, conf.GetFallback(), nil)
	if err := registry.Register(serverModule); err != nil {
		return nil, err
	}

	maxmind, err := providers.NewMaxmind(afero.NewOsFs(), conf.Maxmind.Database, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create maxmind provider: %w", err)
	}

	if err := registry.Register(maxmind); err != nil {
		return nil, err
	}

	ip2loc, err := providers.NewIP2Location(conf.IP2Location.Database, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create ip2location provider: %w", err)
	}

	if err := registry.Register(ip2loc); err != nil {
		return nil, err
	}

	if conf.IPInfo.Enabled {
		ipinfo := providers.NewIPInfo(makeHTTPClient(conf.IPInfo),
			conf.IPInfo.AuthToken, nil)

		if conf.IPInfo.CacheSize > 0 {
			ipinfo = geolib.NewCachingProvider(ipinfo,
				conf.IPInfo.CacheSize,
				conf.IPInfo.GetCacheTTL())
		}

		if err := registry.Register(ipinfo); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

func makeHTTPClient(conf configIPInfo) geolib.HTTPClient {
	jar, err := cookiejar.New(nil)
	if err != nil {
		panic(err)
	}

	httpClient := &http.Client{
		Timeout: conf.GetHTTPTimeout(),
		Jar:     jar,
	}

	return geolib.NewHTTPClient(httpClient,
		"pelorus/"+version,
		conf.GetRateLimitInterval(),
		conf.GetRateLimitBurst(),
		conf.GetMaxRetries())
}

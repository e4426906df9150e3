package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/pelorus-geo/pelorus/geolib"
	"github.com/pelorus-geo/pelorus/providers"
)

const version = "0.1.0"

var (
	app = kingpin.New(
		"pelorus",
		"Visitor geolocation service with interchangeable providers")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("PELORUS_DEBUG").
		Bool()
	configFile = app.Arg("config-path", "Path to the config.").
			Required().
			File()
)

func init() {
	app.Version(version)
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	conf, err := parseConfig(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot parse a config file")
	}

	rootCtx, cancel := makeRootContext()
	defer cancel()

	registry, err := makeRegistry(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot initialize providers")
	}

	resolver, err := geolib.NewResolver(registry, newLogger(), conf.WorkerPoolSize)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot initialize a resolver")
	}

	defer resolver.Shutdown()

	handler := geolib.NewHTTPHandler(resolver, registry, geolib.HandlerOpts{
		DefaultProvider:   conf.GetProvider(),
		ChannelVars:       providers.ServerModuleChannels(),
		Modules:           conf.ServerModule.Modules,
		ServerDescription: conf.ServerModule.Description,
	})

	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)

	router.Mount("/", handler)

	var rootHandler http.Handler = router

	if conf.BasicAuth.User != "" || conf.BasicAuth.Password != "" {
		rootHandler = newBasicAuthMiddleware(router,
			conf.BasicAuth.User, conf.BasicAuth.Password)
	}

	srv := &http.Server{
		Addr:    conf.GetListen(),
		Handler: rootHandler,
	}

	go func() {
		<-rootCtx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		srv.Shutdown(shutdownCtx) // nolint: errcheck
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Server has failed")
	}
}

package main

import (
	"net"
	"os"

	"github.com/rs/zerolog"

	"github.com/pelorus-geo/pelorus/geolib"
)

type logger struct {
	lookupLog zerolog.Logger
	checkLog  zerolog.Logger
}

func (l *logger) LookupError(ip net.IP, name string, err error) {
	l.lookupLog.Error().Str("provider", name).Stringer("ip", ip).Err(err).Msg("")
}

func (l *logger) CheckError(name string, err error) {
	l.checkLog.Error().Str("provider", name).Err(err).Msg("")
}

func newLogger() geolib.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return &logger{
		lookupLog: zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "lookup").Logger(),
		checkLog:  zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "check").Logger(),
	}
}

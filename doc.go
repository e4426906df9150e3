// Pelorus is a service to resolve a geographic location of a visitor
// identified by an IP address.
//
// The idea is simple: a request comes from 1.2.3.4 and you want to know
// the country, the city and who owns that network. Several
// interchangeable backends can answer: variables published by the
// hosting HTTP server, database files read in-process, a remote web
// service. They differ in which fields they supply and whether they can
// answer for an address other than the connecting one; pelorus hides
// the difference behind one interface and handles the fallback when a
// backend structurally cannot answer.
//
// The tool is organized into 3 logical parts:
//
// Geolib
//
// geolib is the main package: canonical location fields, the provider
// interface, the registry, the resolver and an http.Handler exposing
// them.
//
// Providers
//
// This package has the backend implementations: the server module
// reader, MaxMind and IP2Location database readers and the ipinfo.io
// client.
//
// Pelorus
//
// The main package itself wires geolib and providers into a binary: it
// reads an hjson config and starts an HTTP server.
package main

// geolib is a main package of pelorus which contains the provider
// abstraction and everything required to answer a single question:
// where does this IP address come from?
//
// The central concept is a Provider: an adapter around some source of
// geolocation facts (a database file on disk, a remote web service, a
// set of variables published by the hosting HTTP server). Providers
// differ in which canonical fields they can supply and whether they can
// answer for an IP address other than the connecting one. Both things
// are runtime properties, so a provider reports them per call, not as
// constants.
//
// Providers are collected into a Registry (an ordered catalog with
// cheap lookups by name) and driven by a Resolver. The Resolver itself
// is a thin request/response orchestration; the only branching logic in
// the whole package lives in the server module provider which walks a
// fallback chain of registered providers when it is asked about an IP
// address it structurally cannot answer for.
package geolib

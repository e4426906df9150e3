package geolib

import (
	"encoding/json"
	"net"
	"net/http"
)

// HandlerOpts configures the HTTP frontend of a Resolver.
type HandlerOpts struct {
	// DefaultProvider answers requests which do not name a provider
	// explicitly.
	DefaultProvider string

	// ChannelVars lists header names which are lifted into
	// Environ.Vars. These are the channels a hosting server publishes
	// precomputed geolocation facts through.
	ChannelVars []string

	// Modules is a static list of server modules reported by the host
	// integration, if any.
	Modules []string

	// ServerDescription is a cosmetic host description.
	ServerDescription string
}

type httpHandler struct {
	resolver *Resolver
	registry *Registry
	opts     HandlerOpts
}

func (h httpHandler) handleRoot(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet, http.MethodHead:
		h.handleGetSelf(w, req)
	case http.MethodPost:
		h.handlePost(w, req)
	default:
		h.sendError(w, nil, "This HTTP method is not allowed", http.StatusMethodNotAllowed)
	}
}

func (h httpHandler) environ(req *http.Request) Environ {
	vars := map[string]string{}

	for _, name := range h.opts.ChannelVars {
		if values := req.Header.Values(name); len(values) > 0 {
			vars[name] = values[0]
		}
	}

	return Environ{
		RemoteIP:          remoteIP(req),
		Vars:              vars,
		Modules:           h.opts.Modules,
		ServerDescription: h.opts.ServerDescription,
	}
}

func (h httpHandler) providerName(req *http.Request) string {
	if name := req.URL.Query().Get("provider"); name != "" {
		return name
	}

	return h.opts.DefaultProvider
}

func (h httpHandler) encodeJSON(w http.ResponseWriter, data interface{}) {
	encoder := json.NewEncoder(w)

	w.Header().Add("Content-Type", "application/json")
	encoder.SetEscapeHTML(false)
	encoder.Encode(data) // nolint: errcheck
}

func (h httpHandler) sendError(w http.ResponseWriter, err error, message string, statusCode int) {
	e := &httpError{
		message:    message,
		statusCode: statusCode,
		err:        err,
	}

	w.WriteHeader(e.StatusCode())
	h.encodeJSON(w, e)
}

func remoteIP(req *http.Request) net.IP {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		// RealIP-style middlewares rewrite RemoteAddr to a bare
		// address without a port.
		host = req.RemoteAddr
	}

	return net.ParseIP(host)
}

// NewHTTPHandler builds an HTTP frontend:
//
//	GET  /          - resolve a location of the connecting client
//	POST /          - resolve a batch of arbitrary IP addresses
//	GET  /providers - metadata, capabilities and health of providers
func NewHTTPHandler(resolver *Resolver, registry *Registry, opts HandlerOpts) http.Handler {
	handler := httpHandler{
		resolver: resolver,
		registry: registry,
		opts:     opts,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/", handler.handleRoot)
	mux.HandleFunc("/providers", handler.handleGetProviders)

	return mux
}

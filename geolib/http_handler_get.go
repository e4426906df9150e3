package geolib

import (
	"errors"
	"net/http"
)

func (h httpHandler) handleGetSelf(w http.ResponseWriter, req *http.Request) {
	env := h.environ(req)

	if env.RemoteIP == nil {
		h.sendError(w, nil, "Cannot detect your IP address", http.StatusBadRequest)

		return
	}

	request := Request{
		IP:  env.RemoteIP,
		Env: env,
	}

	location, err := h.resolver.Resolve(req.Context(), h.providerName(req), request)

	switch {
	case errors.Is(err, ErrUnknownProvider):
		h.sendError(w, err, "Unknown provider", http.StatusNotFound)

		return
	case errors.Is(err, ErrNotAvailable):
		h.sendError(w, err, "Provider cannot resolve your IP address", http.StatusServiceUnavailable)

		return
	case err != nil:
		h.sendError(w, err, "Cannot resolve IP address", 0)

		return
	}

	respEnvelope := struct {
		Result ResolveResult `json:"result"`
	}{
		Result: ResolveResult{
			IP:       request.IP,
			Provider: h.providerName(req),
			Location: location,
		},
	}

	h.encodeJSON(w, respEnvelope)
}

type providerStatus struct {
	Info            ProviderInfo `json:"info"`
	Available       bool         `json:"available"`
	SupportedFields FieldSet     `json:"supported_fields"`
	Check           *string      `json:"check"`
}

func (h httpHandler) handleGetProviders(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		h.sendError(w, nil, "This HTTP method is not allowed", http.StatusMethodNotAllowed)

		return
	}

	env := h.environ(req)
	results := make([]providerStatus, 0, len(h.registry.Names()))

	for _, provider := range h.registry.Providers() {
		status := providerStatus{
			Info:            provider.Info(env),
			Available:       provider.Available(env),
			SupportedFields: provider.SupportedFields(env),
		}

		if err := provider.Check(req.Context(), env); err != nil {
			message := err.Error()
			status.Check = &message
		}

		results = append(results, status)
	}

	respEnvelope := struct {
		Results []providerStatus `json:"results"`
	}{
		Results: results,
	}

	h.encodeJSON(w, respEnvelope)
}

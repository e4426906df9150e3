package geolib

import (
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http"
	"strings"

	"github.com/qri-io/jsonschema"
)

var handlePostRequestJSONSchema = func() *jsonschema.Schema {
	data := `{
        "type": "object",
        "required": [
            "ips"
        ],
        "additionalProperties": false,
        "properties": {
            "ips": {
                "type": "array",
                "minItems": 1,
                "items": {
                    "anyOf": [
                        {
                            "type": "string",
                            "format": "ipv4",
                            "minLength": 7,
                            "maxLength": 15
                        },
                        {
                            "type": "string",
                            "format": "ipv6",
                            "minLength": 2,
                            "maxLength": 39
                        }
                    ]
                }
            },
            "provider": {
                "type": "string",
                "minLength": 1
            }
        }
    }`

	rv := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(data), rv); err != nil {
		panic(err)
	}

	return rv
}()

type handlePostRequest struct {
	IPs      []net.IP `json:"ips"`
	Provider string   `json:"provider"`
}

type handlePostResponse struct {
	Results []ResolveResult `json:"results"`
}

func (h httpHandler) handlePost(w http.ResponseWriter, req *http.Request) {
	if !strings.Contains(req.Header.Get("Content-Type"), "application/json") {
		h.sendError(w, nil, "Incorrect content type", http.StatusUnsupportedMediaType)

		return
	}

	bodyBytes, err := ioutil.ReadAll(req.Body)

	req.Body.Close()

	if err != nil {
		h.sendError(w, err, "Cannot read request body", http.StatusBadRequest)

		return
	}

	errs, err := handlePostRequestJSONSchema.ValidateBytes(req.Context(), bodyBytes)
	if err != nil {
		h.sendError(w, err, "Cannot validate body", http.StatusInternalServerError)

		return
	}

	if len(errs) > 0 {
		h.sendError(w, errs[0], "Invalid request body", http.StatusBadRequest)

		return
	}

	parsedRequest := &handlePostRequest{}
	if err := json.Unmarshal(bodyBytes, parsedRequest); err != nil {
		h.sendError(w, err, "Cannot parse request JSON", http.StatusBadRequest)

		return
	}

	providerName := parsedRequest.Provider
	if providerName == "" {
		providerName = h.opts.DefaultProvider
	}

	resolved, err := h.resolver.ResolveAll(req.Context(),
		providerName,
		handlePostUniqueIPs(parsedRequest.IPs),
		h.environ(req))
	if err != nil {
		h.sendError(w, err, "Cannot resolve given IPs", http.StatusInternalServerError)

		return
	}

	respEnvelope := handlePostResponse{
		Results: resolved,
	}

	h.encodeJSON(w, respEnvelope)
}

func handlePostUniqueIPs(ips []net.IP) []net.IP {
	uniques := map[string]bool{}

	for _, v := range ips {
		uniques[string(v)] = true
	}

	rv := make([]net.IP, 0, len(uniques))

	for k := range uniques {
		rv = append(rv, net.IP(k))
	}

	return rv
}

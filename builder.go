package networkingx

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/prashantLalShrestha/NetworkingX/internal/flatten"
)

// buildRequest deterministically turns (Config, Endpoint) into a
// transport-ready *http.Request. It never retries; every failure is a
// *NetworkError describing the step that failed.
func buildRequest(ctx context.Context, config *Config, endpoint *Endpoint) (*http.Request, error) {
	method := endpoint.method()
	if !method.IsValid() {
		return nil, urlGenerationError("unsupported method "+string(method), nil, method, endpoint.Path)
	}

	address := endpoint.Path
	if !endpoint.IsFullPath {
		address = joinURL(config.BaseURL(), endpoint.Path)
	}

	parsed, err := url.Parse(address)
	if err != nil {
		return nil, urlGenerationError("address is not parseable", err, method, address)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, urlGenerationError("address is missing scheme or host", nil, method, address)
	}

	query, err := mergeQuery(endpoint, config)
	if err != nil {
		return nil, urlGenerationError("query parameters are not serializable", err, method, address)
	}
	parsed.RawQuery = query

	req, err := http.NewRequestWithContext(ctx, string(method), parsed.String(), nil)
	if err != nil {
		return nil, urlGenerationError("request construction failed", err, method, address)
	}

	// Config defaults first, endpoint headers overlay: last-write-wins.
	for key, value := range config.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	for key, value := range endpoint.Headers {
		req.Header.Set(key, value)
	}

	body, err := endpoint.resolvedBody()
	if err != nil {
		return nil, &NetworkError{
			Kind:      ErrorKindJSONEncoding,
			Message:   "structured body parameters are not serializable",
			Method:    string(method),
			URL:       address,
			Timestamp: time.Now(),
			Cause:     err,
		}
	}
	if len(body) > 0 {
		if err := endpoint.bodyEncoder().Encode(req, body); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// joinURL appends path to base with exactly one separating slash.
func joinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}

// mergeQuery builds the final query string: endpoint parameters (structured
// when present, else freeform) first, then the Config defaults appended as
// additional items. Nothing is overwritten; duplicate keys are legal.
func mergeQuery(endpoint *Endpoint, config *Config) (string, error) {
	endpointQuery, err := endpoint.resolvedQuery()
	if err != nil {
		return "", err
	}

	items := url.Values{}
	for _, key := range sortedKeys(endpointQuery) {
		items.Add(key, stringifyValue(endpointQuery[key]))
	}
	defaults := config.DefaultQuery()
	for _, key := range sortedKeys(defaults) {
		items.Add(key, defaults[key])
	}

	if len(items) == 0 {
		return "", nil
	}
	return items.Encode(), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func urlGenerationError(message string, cause error, method Method, address string) *NetworkError {
	return &NetworkError{
		Kind:      ErrorKindURLGeneration,
		Message:   message,
		Method:    string(method),
		URL:       address,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// flattenValue converts a structured parameter value into a flat mapping.
func flattenValue(value any) (map[string]any, error) {
	return flatten.Flatten(value)
}

package networkingx

// Method is an HTTP request method. Methods are compared by exact
// case-sensitive identity; only the nine canonical values are valid.
type Method string

// Canonical HTTP methods.
const (
	MethodConnect Method = "CONNECT"
	MethodDelete  Method = "DELETE"
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodPatch   Method = "PATCH"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodTrace   Method = "TRACE"
)

// IsValid reports whether m is one of the canonical methods.
func (m Method) IsValid() bool {
	switch m {
	case MethodConnect, MethodDelete, MethodGet, MethodHead, MethodOptions,
		MethodPatch, MethodPost, MethodPut, MethodTrace:
		return true
	}
	return false
}

// hasQueryStyleBody reports whether URL-encoded body parameters for this
// method belong in the query string rather than the request body.
func (m Method) hasQueryStyleBody() bool {
	switch m {
	case MethodGet, MethodHead, MethodDelete:
		return true
	}
	return false
}

// Endpoint is the declarative description of one API call. The zero value is
// not useful; fill Path and Method, or use one of the factories below.
//
// Structured vs freeform parameters: when QueryStruct (resp. BodyStruct) is
// non-nil it is flattened to a mapping and Query (resp. Body) is ignored
// entirely; the two are never merged.
//
// The concrete response type is bound at the call site via Fetch[T]; the
// endpoint's ResponseDecoding strategy must be able to produce that type or
// decoding fails.
type Endpoint struct {
	// Path is the resource path appended to the Config base URL, or the
	// full address when IsFullPath is set.
	Path string

	// IsFullPath makes Path be used verbatim as the complete address.
	IsFullPath bool

	// Method is the HTTP method. Defaults to GET when empty.
	Method Method

	// Headers are per-call headers overlaid on the Config defaults
	// (last-write-wins for overlapping keys).
	Headers map[string]string

	// QueryStruct is an optional serializable value flattened into query
	// parameters. Takes precedence over Query when non-nil.
	QueryStruct any

	// Query holds freeform query parameters.
	Query map[string]any

	// BodyStruct is an optional serializable value flattened into body
	// parameters. Takes precedence over Body when non-nil.
	BodyStruct any

	// Body holds freeform body parameters.
	Body map[string]any

	// BodyEncoding serializes the resolved body mapping onto the request.
	// Defaults to JSONEncoding.
	BodyEncoding BodyEncoder

	// ResponseDecoding decodes the raw response bytes into the caller's
	// type. Defaults to JSONDecoding.
	ResponseDecoding ResponseDecoder
}

// method returns the endpoint method, defaulting to GET.
func (e *Endpoint) method() Method {
	if e.Method == "" {
		return MethodGet
	}
	return e.Method
}

// bodyEncoder returns the configured body encoder, defaulting to JSON.
func (e *Endpoint) bodyEncoder() BodyEncoder {
	if e.BodyEncoding == nil {
		return JSONEncoding{}
	}
	return e.BodyEncoding
}

// responseDecoder returns the configured response decoder, defaulting to JSON.
func (e *Endpoint) responseDecoder() ResponseDecoder {
	if e.ResponseDecoding == nil {
		return JSONDecoding{}
	}
	return e.ResponseDecoding
}

// resolvedBody returns the body mapping to encode: the flattened structured
// value when present, else the freeform mapping.
func (e *Endpoint) resolvedBody() (map[string]any, error) {
	if e.BodyStruct != nil {
		return flattenValue(e.BodyStruct)
	}
	return e.Body, nil
}

// resolvedQuery returns the query mapping to append before the Config
// defaults: the flattened structured value when present, else the freeform
// mapping.
func (e *Endpoint) resolvedQuery() (map[string]any, error) {
	if e.QueryStruct != nil {
		return flattenValue(e.QueryStruct)
	}
	return e.Query, nil
}

// GetEndpoint is a convenience factory for a GET call expecting a JSON
// response.
func GetEndpoint(path string) *Endpoint {
	return &Endpoint{
		Path:   path,
		Method: MethodGet,
	}
}

// PostEndpoint is a convenience factory for a POST call sending the given
// serializable value as a JSON body and expecting a JSON response.
func PostEndpoint(path string, body any) *Endpoint {
	return &Endpoint{
		Path:       path,
		Method:     MethodPost,
		BodyStruct: body,
	}
}

// DeleteEndpoint is a convenience factory for a DELETE call.
func DeleteEndpoint(path string) *Endpoint {
	return &Endpoint{
		Path:   path,
		Method: MethodDelete,
	}
}

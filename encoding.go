package networkingx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"time"

	"github.com/clbanning/mxj/v2"
	"github.com/google/uuid"
)

// BodyEncoder serializes a resolved body mapping onto a draft request. An
// encoder must not keep state between calls; implementations are pure over
// (mapping, draft request) and safe for concurrent use.
type BodyEncoder interface {
	Encode(req *http.Request, params map[string]any) error
}

// FilePart is a file attachment inside a multipart body mapping. Any body
// value that is a FilePart (or *FilePart) becomes a file part; every other
// value becomes a plain form field.
type FilePart struct {
	FileName    string
	ContentType string
	Data        []byte
}

// URLEncoding serializes parameters as percent-encoded key=value pairs. For
// GET/HEAD/DELETE the pairs are folded into the URL query; for every other
// method they become the request body with Content-Type
// application/x-www-form-urlencoded.
type URLEncoding struct{}

// Encode implements BodyEncoder.
func (URLEncoding) Encode(req *http.Request, params map[string]any) error {
	values := url.Values{}
	for key, value := range params {
		values.Add(key, stringifyValue(value))
	}

	if Method(req.Method).hasQueryStyleBody() {
		existing, err := url.ParseQuery(req.URL.RawQuery)
		if err != nil {
			return &NetworkError{
				Kind:      ErrorKindURLParameterEncoding,
				Message:   "existing query is not parseable",
				Method:    req.Method,
				URL:       req.URL.String(),
				Timestamp: time.Now(),
				Cause:     err,
			}
		}
		for key, vals := range values {
			for _, v := range vals {
				existing.Add(key, v)
			}
		}
		req.URL.RawQuery = existing.Encode()
		return nil
	}

	setRequestBody(req, []byte(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return nil
}

// JSONEncoding serializes parameters as a JSON object body with Content-Type
// application/json.
type JSONEncoding struct{}

// Encode implements BodyEncoder.
func (JSONEncoding) Encode(req *http.Request, params map[string]any) error {
	data, err := json.Marshal(params)
	if err != nil {
		return &NetworkError{
			Kind:      ErrorKindJSONEncoding,
			Message:   "body parameters are not JSON serializable",
			Method:    req.Method,
			URL:       req.URL.String(),
			Timestamp: time.Now(),
			Cause:     err,
		}
	}
	setRequestBody(req, data)
	req.Header.Set("Content-Type", "application/json")
	return nil
}

// XMLEncoding serializes parameters as an XML document body with Content-Type
// application/xml. The mapping is encoded with the mxj codec, which mirrors
// the JSON codec's supported value subset.
type XMLEncoding struct{}

// Encode implements BodyEncoder.
func (XMLEncoding) Encode(req *http.Request, params map[string]any) error {
	data, err := mxj.Map(params).Xml()
	if err != nil {
		return &NetworkError{
			Kind:      ErrorKindXMLEncoding,
			Message:   "body parameters are not XML serializable",
			Method:    req.Method,
			URL:       req.URL.String(),
			Timestamp: time.Now(),
			Cause:     err,
		}
	}
	setRequestBody(req, data)
	req.Header.Set("Content-Type", "application/xml")
	return nil
}

// MultipartEncoding serializes parameters as a multipart/form-data body with
// a generated boundary.
type MultipartEncoding struct{}

// Encode implements BodyEncoder.
func (MultipartEncoding) Encode(req *http.Request, params map[string]any) error {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	if err := writer.SetBoundary("networkingx" + uuid.NewString()); err != nil {
		return multipartError(req, err)
	}

	// Deterministic part order keeps payloads reproducible.
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := writeMultipartValue(writer, key, params[key]); err != nil {
			return multipartError(req, err)
		}
	}
	if err := writer.Close(); err != nil {
		return multipartError(req, err)
	}

	setRequestBody(req, buffer.Bytes())
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return nil
}

func writeMultipartValue(writer *multipart.Writer, key string, value any) error {
	var file *FilePart
	switch v := value.(type) {
	case FilePart:
		file = &v
	case *FilePart:
		file = v
	default:
		return writer.WriteField(key, stringifyValue(value))
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, key, file.FileName))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(file.Data)
	return err
}

func multipartError(req *http.Request, cause error) *NetworkError {
	return &NetworkError{
		Kind:      ErrorKindMultipartEncoding,
		Message:   "multipart body encoding failed",
		Method:    req.Method,
		URL:       req.URL.String(),
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// stringifyValue renders a parameter value as its query/form representation.
// JSON-flattened numbers arrive as float64; integral ones print without a
// fractional part.
func stringifyValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// setRequestBody installs data as the request body of a draft request.
func setRequestBody(req *http.Request, data []byte) {
	req.Body = io.NopCloser(bytes.NewReader(data))
	req.ContentLength = int64(len(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

package networkingx

import (
	"encoding/json"
	"fmt"

	"github.com/clbanning/mxj/v2"
)

// ResponseDecoder turns raw response bytes into a caller-supplied target
// value. Decoding is stateless and side-effect-free per call.
type ResponseDecoder interface {
	Decode(data []byte, target any) error
}

// JSONDecoding decodes the response body as JSON.
type JSONDecoding struct{}

// Decode implements ResponseDecoder.
func (JSONDecoding) Decode(data []byte, target any) error {
	return json.Unmarshal(data, target)
}

// RawDecoding passes the response body through untouched. The target must be
// exactly *[]byte; any other type is a mismatch.
type RawDecoding struct{}

// Decode implements ResponseDecoder.
func (RawDecoding) Decode(data []byte, target any) error {
	raw, ok := target.(*[]byte)
	if !ok {
		return fmt.Errorf("networkingx: raw decoding requires a *[]byte target, got %T", target)
	}
	*raw = append([]byte(nil), data...)
	return nil
}

// XMLDecoding decodes the response body as XML using the mxj codec. The
// document's single root element is stripped so that its children populate
// the target, and leaf text is cast the way the JSON codec would decode it
// (numbers as float64, booleans as bool); XMLEncoding and XMLDecoding
// therefore round-trip a mapping.
type XMLDecoding struct{}

// Decode implements ResponseDecoder.
func (XMLDecoding) Decode(data []byte, target any) error {
	doc, err := mxj.NewMapXml(data, true)
	if err != nil {
		return err
	}

	object := map[string]any(doc)
	if len(object) == 1 {
		for _, rootValue := range object {
			if inner, ok := rootValue.(map[string]any); ok {
				object = inner
			}
		}
	}

	if mapTarget, ok := target.(*map[string]any); ok {
		*mapTarget = object
		return nil
	}

	// Bridge into arbitrary struct targets through the JSON codec.
	bridged, err := json.Marshal(object)
	if err != nil {
		return err
	}
	return json.Unmarshal(bridged, target)
}

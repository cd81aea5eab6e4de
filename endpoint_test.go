package networkingx

import "testing"

func TestMethodIsValid(t *testing.T) {
	valid := []Method{MethodConnect, MethodDelete, MethodGet, MethodHead,
		MethodOptions, MethodPatch, MethodPost, MethodPut, MethodTrace}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", m)
		}
	}
	for _, m := range []Method{"get", "Get", "FETCH", ""} {
		if m.IsValid() {
			t.Errorf("IsValid(%q) = true, methods are case-sensitive", m)
		}
	}
}

func TestMethodHasQueryStyleBody(t *testing.T) {
	for _, m := range []Method{MethodGet, MethodHead, MethodDelete} {
		if !m.hasQueryStyleBody() {
			t.Errorf("hasQueryStyleBody(%q) = false, want true", m)
		}
	}
	for _, m := range []Method{MethodPost, MethodPut, MethodPatch} {
		if m.hasQueryStyleBody() {
			t.Errorf("hasQueryStyleBody(%q) = true, want false", m)
		}
	}
}

func TestEndpointDefaults(t *testing.T) {
	endpoint := &Endpoint{Path: "ping"}

	if got := endpoint.method(); got != MethodGet {
		t.Errorf("method() = %q, want GET default", got)
	}
	if _, ok := endpoint.bodyEncoder().(JSONEncoding); !ok {
		t.Errorf("bodyEncoder() = %T, want JSONEncoding default", endpoint.bodyEncoder())
	}
	if _, ok := endpoint.responseDecoder().(JSONDecoding); !ok {
		t.Errorf("responseDecoder() = %T, want JSONDecoding default", endpoint.responseDecoder())
	}
}

func TestEndpointFactories(t *testing.T) {
	get := GetEndpoint("/users")
	if get.Method != MethodGet || get.Path != "/users" {
		t.Errorf("GetEndpoint() = %+v", get)
	}

	post := PostEndpoint("/users", map[string]any{"name": "Jane"})
	if post.Method != MethodPost || post.BodyStruct == nil {
		t.Errorf("PostEndpoint() = %+v", post)
	}

	del := DeleteEndpoint("/users/1")
	if del.Method != MethodDelete {
		t.Errorf("DeleteEndpoint() = %+v", del)
	}
}

func TestEndpointResolvedBodyPrecedence(t *testing.T) {
	endpoint := &Endpoint{
		BodyStruct: map[string]any{"x": 1},
		Body:       map[string]any{"y": 2},
	}
	body, err := endpoint.resolvedBody()
	if err != nil {
		t.Fatalf("resolvedBody() returned error: %v", err)
	}
	if _, ok := body["x"]; !ok {
		t.Error("structured body field missing")
	}
	if _, ok := body["y"]; ok {
		t.Error("freeform body used even though structured body is present")
	}
}

func TestEndpointResolvedQueryFallsBackToFreeform(t *testing.T) {
	endpoint := &Endpoint{Query: map[string]any{"q": "term"}}
	query, err := endpoint.resolvedQuery()
	if err != nil {
		t.Fatalf("resolvedQuery() returned error: %v", err)
	}
	if query["q"] != "term" {
		t.Errorf("resolvedQuery() = %v, want freeform mapping", query)
	}
}

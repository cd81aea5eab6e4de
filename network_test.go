package networkingx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fakeResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func newTestService(t *testing.T, baseURL string, options ...Option) *NetworkService {
	t.Helper()
	return NewNetworkService(mustConfig(t, baseURL), options...)
}

func TestNetworkServiceDoSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/42" {
			t.Errorf("path = %q, want /users/42", r.URL.Path)
		}
		w.Write([]byte(`{"id":42}`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)
	data, err := svc.Do(context.Background(), GetEndpoint("users/42"))
	if err != nil {
		t.Fatalf("Do() returned error: %v", err)
	}
	if string(data) != `{"id":42}` {
		t.Errorf("body = %q, want %q", data, `{"id":42}`)
	}
}

func TestNetworkServiceDoUnacceptableStatusWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"missing"}`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)
	_, err := svc.Do(context.Background(), GetEndpoint("users/42"))
	if err == nil {
		t.Fatal("Do() succeeded on a 404 response")
	}

	netErr, ok := AsNetworkError(err)
	if !ok {
		t.Fatalf("error is %T, want *NetworkError", err)
	}
	if netErr.Kind != ErrorKindHTTPStatus {
		t.Errorf("kind = %q, want %q", netErr.Kind, ErrorKindHTTPStatus)
	}
	if netErr.StatusCode != 404 {
		t.Errorf("status = %d, want 404", netErr.StatusCode)
	}
	if string(netErr.Body) != `{"error":"missing"}` {
		t.Errorf("error body = %q, response body must be preserved", netErr.Body)
	}
	if !IsNotFoundError(err) {
		t.Error("IsNotFoundError() = false, want true for a 404 classification")
	}
}

func TestNetworkServiceDoUnacceptableStatusWithoutBody(t *testing.T) {
	transport := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return fakeResponse(http.StatusInternalServerError, ""), nil
	})

	svc := newTestService(t, "https://api.example.com", WithTransport(transport))
	_, err := svc.Do(context.Background(), GetEndpoint("users"))

	netErr, ok := AsNetworkError(err)
	if !ok {
		t.Fatalf("error is %T, want *NetworkError", err)
	}
	if netErr.Kind != ErrorKindUnacceptableStatus {
		t.Errorf("kind = %q, want %q", netErr.Kind, ErrorKindUnacceptableStatus)
	}
	if !HasStatusCode(err, 500) {
		t.Error("HasStatusCode(err, 500) = false, want true")
	}
}

func TestNetworkServiceAcceptableStatusWinsOverCause(t *testing.T) {
	// Some transports return a stale error object alongside a valid 2xx
	// response; the status code decides.
	transport := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return fakeResponse(http.StatusOK, "payload"), errors.New("stale transport error")
	})

	svc := newTestService(t, "https://api.example.com", WithTransport(transport))
	data, err := svc.Do(context.Background(), GetEndpoint("users"))
	if err != nil {
		t.Fatalf("Do() returned error %v, want success for acceptable status", err)
	}
	if string(data) != "payload" {
		t.Errorf("body = %q, want %q", data, "payload")
	}
}

func TestNetworkServiceUnacceptableStatusNoBodyWithCause(t *testing.T) {
	transport := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return fakeResponse(http.StatusBadGateway, ""), errors.New("upstream hiccup")
	})

	svc := newTestService(t, "https://api.example.com", WithTransport(transport))
	_, err := svc.Do(context.Background(), GetEndpoint("users"))

	netErr, ok := AsNetworkError(err)
	if !ok {
		t.Fatalf("error is %T, want *NetworkError", err)
	}
	if netErr.Kind != ErrorKindMessage {
		t.Errorf("kind = %q, want cause classification %q", netErr.Kind, ErrorKindMessage)
	}
}

func TestNetworkServiceNoStatusMetadata(t *testing.T) {
	t.Run("cause present is classified", func(t *testing.T) {
		transport := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("boom")
		})
		svc := newTestService(t, "https://api.example.com", WithTransport(transport))
		_, err := svc.Do(context.Background(), GetEndpoint("users"))
		if netErr, ok := AsNetworkError(err); !ok || netErr.Kind != ErrorKindMessage {
			t.Errorf("error = %v, want Message classification", err)
		}
	})

	t.Run("no cause is success with empty bytes", func(t *testing.T) {
		transport := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return nil, nil
		})
		svc := newTestService(t, "https://api.example.com", WithTransport(transport))
		data, err := svc.Do(context.Background(), GetEndpoint("users"))
		if err != nil {
			t.Fatalf("Do() returned error: %v", err)
		}
		if len(data) != 0 {
			t.Errorf("body = %q, want empty", data)
		}
	})
}

func TestNetworkServiceClassifiesCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(t, server.URL)
	_, err := svc.Do(ctx, GetEndpoint("users"))
	if !IsCancelledError(err) {
		t.Errorf("error = %v, want Cancelled classification", err)
	}
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "deadline exceeded" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestNetworkServiceClassifiesTimeout(t *testing.T) {
	transport := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, timeoutError{}
	})

	svc := newTestService(t, "https://api.example.com", WithTransport(transport))
	_, err := svc.Do(context.Background(), GetEndpoint("slow"))
	if !IsTimeoutError(err) {
		t.Errorf("error = %v, want TimedOut classification", err)
	}
}

func TestNetworkServiceBuildFailureSkipsTransport(t *testing.T) {
	transportCalls := 0
	transport := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		transportCalls++
		return fakeResponse(http.StatusOK, "ok"), nil
	})

	svc := newTestService(t, "https://api.example.com", WithTransport(transport))
	endpoint := &Endpoint{Path: "://bad", IsFullPath: true, Method: MethodGet}

	_, err := svc.Do(context.Background(), endpoint)
	if netErr, ok := AsNetworkError(err); !ok || netErr.Kind != ErrorKindURLGeneration {
		t.Errorf("error = %v, want URLGeneration kind", err)
	}
	if transportCalls != 0 {
		t.Errorf("transport called %d times, want 0 on build failure", transportCalls)
	}
}

func TestNetworkServiceCustomAcceptableRange(t *testing.T) {
	transport := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return fakeResponse(http.StatusNotFound, "gone"), nil
	})

	svc := newTestService(t, "https://api.example.com",
		WithTransport(transport),
		WithAcceptableStatusRange(200, 500),
	)
	data, err := svc.Do(context.Background(), GetEndpoint("users"))
	if err != nil {
		t.Fatalf("Do() returned error %v, 404 is acceptable in [200,500)", err)
	}
	if string(data) != "gone" {
		t.Errorf("body = %q, want %q", data, "gone")
	}
}

func TestNetworkServiceGoDeliversExactlyOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("async"))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	completions := 0
	var gotData []byte
	var gotErr error
	call := svc.Go(context.Background(), GetEndpoint("users"), func(data []byte, err error) {
		completions++
		gotData, gotErr = data, err
	})
	if call == nil {
		t.Fatal("Go() returned no handle for a well-formed endpoint")
	}

	select {
	case <-call.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("completion did not fire")
	}

	if completions != 1 {
		t.Errorf("completion fired %d times, want exactly once", completions)
	}
	if gotErr != nil {
		t.Errorf("completion error = %v, want nil", gotErr)
	}
	if string(gotData) != "async" {
		t.Errorf("completion data = %q, want %q", gotData, "async")
	}
}

func TestNetworkServiceGoBuildFailureIsSynchronous(t *testing.T) {
	svc := newTestService(t, "https://api.example.com")

	var gotErr error
	call := svc.Go(context.Background(), &Endpoint{Path: "://bad", IsFullPath: true}, func(data []byte, err error) {
		gotErr = err
	})
	if call != nil {
		t.Error("Go() returned a handle despite a build failure")
	}
	if netErr, ok := AsNetworkError(gotErr); !ok || netErr.Kind != ErrorKindURLGeneration {
		t.Errorf("completion error = %v, want URLGeneration kind", gotErr)
	}
}

func TestNetworkServiceCallCancel(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	var gotErr error
	call := svc.Go(context.Background(), GetEndpoint("slow"), func(data []byte, err error) {
		gotErr = err
	})
	<-started
	call.Cancel()

	select {
	case <-call.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("completion did not fire after cancellation")
	}
	if !IsCancelledError(gotErr) {
		t.Errorf("completion error = %v, want Cancelled classification", gotErr)
	}
}

func TestNetworkServiceCloseStopsOwnedDispatcher(t *testing.T) {
	transport := RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		return fakeResponse(200, "ok"), nil
	})
	svc := newTestService(t, "https://api.example.com", WithTransport(transport))

	call := svc.Go(context.Background(), GetEndpoint("ping"), func([]byte, error) {})
	select {
	case <-call.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("completion did not fire before Close")
	}

	svc.Close()
	svc.Close() // idempotent
}

func TestNetworkServiceCloseLeavesCustomDispatcherRunning(t *testing.T) {
	transport := RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		return fakeResponse(200, "ok"), nil
	})
	shared := NewSerialDispatcher()
	defer shared.Close()

	svc := newTestService(t, "https://api.example.com",
		WithTransport(transport), WithDispatcher(shared))
	svc.Close()

	call := svc.Go(context.Background(), GetEndpoint("ping"), func([]byte, error) {})
	select {
	case <-call.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("completion was not delivered through the caller's dispatcher")
	}
}

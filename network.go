package networkingx

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RoundTripper is the injected transport capability that actually sends
// bytes over the network. net/http transports satisfy it directly.
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc adapts a function to the RoundTripper interface.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements RoundTripper.
func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Call is the handle for an in-flight asynchronous request. Cancelling it
// makes the eventual completion report a Cancelled classification.
type Call struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel aborts the in-flight request.
func (c *Call) Cancel() { c.cancel() }

// Done is closed once the completion callback has run.
func (c *Call) Done() <-chan struct{} { return c.done }

// NetworkService builds requests from endpoint descriptions, executes them
// through the injected transport and classifies every outcome into the
// NetworkError taxonomy. It holds no per-request state and is safe for
// concurrent use.
type NetworkService struct {
	config          *Config
	transport       RoundTripper
	logger          Logger
	metrics         *MetricsCollector
	dispatcher      Dispatcher
	ownedDispatcher *SerialDispatcher
	acceptable      func(statusCode int) bool
}

// NewNetworkService constructs a NetworkService using the provided
// functional options. The default transport is http.DefaultTransport and the
// default acceptable status range is [200, 300).
func NewNetworkService(config *Config, options ...Option) *NetworkService {
	owned := NewSerialDispatcher()
	service := &NetworkService{
		config:          config,
		transport:       http.DefaultTransport,
		logger:          DiscardLogger{},
		metrics:         nil,
		dispatcher:      owned,
		ownedDispatcher: owned,
		acceptable:      defaultAcceptableStatus,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// Close stops the dispatcher the service created for itself. Services
// configured through WithDispatcher leave that dispatcher's lifecycle to the
// caller. Close is idempotent; completions dispatched afterwards are dropped.
func (s *NetworkService) Close() {
	if s.ownedDispatcher != nil {
		s.ownedDispatcher.Close()
	}
}

func defaultAcceptableStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// Config returns the service's shared base configuration.
func (s *NetworkService) Config() *Config { return s.config }

// Do builds and executes the endpoint's request synchronously, returning the
// raw response bytes (possibly empty) or a *NetworkError. Build failures
// return before any transport call.
func (s *NetworkService) Do(ctx context.Context, endpoint *Endpoint) ([]byte, error) {
	req, err := buildRequest(ctx, s.config, endpoint)
	if err != nil {
		s.logger.Error("request build failed", "path", endpoint.Path, "error", err.Error())
		if s.metrics != nil {
			s.recordError(err, string(endpoint.method()), endpoint.Path)
		}
		return nil, err
	}
	return s.execute(req, endpoint.Path)
}

// Go builds and executes the endpoint's request asynchronously. The
// completion callback fires exactly once, redelivered through the service's
// Dispatcher. A build failure invokes the completion synchronously and
// returns no handle.
func (s *NetworkService) Go(ctx context.Context, endpoint *Endpoint, completion func([]byte, error)) *Call {
	ctx, cancel := context.WithCancel(ctx)
	req, err := buildRequest(ctx, s.config, endpoint)
	if err != nil {
		cancel()
		s.logger.Error("request build failed", "path", endpoint.Path, "error", err.Error())
		if s.metrics != nil {
			s.recordError(err, string(endpoint.method()), endpoint.Path)
		}
		completion(nil, err)
		return nil
	}

	call := &Call{cancel: cancel, done: make(chan struct{})}
	go func() {
		data, execErr := s.execute(req, endpoint.Path)
		cancel()
		s.dispatcher.Dispatch(func() {
			defer close(call.done)
			completion(data, execErr)
		})
	}()
	return call
}

// execute runs one prepared request through the transport and classifies the
// outcome.
func (s *NetworkService) execute(req *http.Request, endpointPath string) ([]byte, error) {
	s.logger.Debug("sending request", "method", req.Method, "url", req.URL.String())
	start := time.Now()
	if s.metrics != nil {
		s.metrics.RecordRequestStart(req.Method, endpointPath)
		defer s.metrics.RecordRequestEnd(req.Method, endpointPath)
	}

	resp, cause := s.transport.RoundTrip(req)

	var body []byte
	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
		if resp.Body != nil {
			data, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			body = data
			if readErr != nil && cause == nil {
				cause = readErr
			}
		}
	}

	data, netErr := s.classify(req, resp, body, cause)

	duration := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordRequest(req.Method, endpointPath, statusCode, duration)
	}
	if netErr != nil {
		s.logger.Error("request failed", "method", req.Method, "url", req.URL.String(),
			"kind", netErr.Kind, "status", statusCode)
		if s.metrics != nil {
			s.metrics.RecordError(netErr.Kind, req.Method, endpointPath)
		}
		return nil, netErr
	}

	s.logger.Debug("request completed", "method", req.Method, "url", req.URL.String(),
		"status", statusCode, "bytes", len(data))
	return data, nil
}

// classify applies the outcome classification policy to a completed attempt.
// An acceptable status code wins over a simultaneously returned transport
// cause: some transports surface stale errors next to a valid response.
func (s *NetworkService) classify(req *http.Request, resp *http.Response, body []byte, cause error) ([]byte, *NetworkError) {
	if resp != nil {
		if s.acceptable(resp.StatusCode) {
			return body, nil
		}
		if len(body) > 0 {
			return nil, &NetworkError{
				Kind:       ErrorKindHTTPStatus,
				Message:    "server returned an unacceptable status",
				StatusCode: resp.StatusCode,
				Body:       body,
				Method:     req.Method,
				URL:        req.URL.String(),
				Timestamp:  time.Now(),
			}
		}
		if cause != nil {
			return nil, classifyCause(cause, req.Method, req.URL.String())
		}
		return nil, &NetworkError{
			Kind:       ErrorKindUnacceptableStatus,
			Message:    "server returned an unacceptable status with no body",
			StatusCode: resp.StatusCode,
			Method:     req.Method,
			URL:        req.URL.String(),
			Timestamp:  time.Now(),
		}
	}

	if cause != nil {
		return nil, classifyCause(cause, req.Method, req.URL.String())
	}
	// No status metadata and no cause: success with possibly empty bytes.
	return body, nil
}

func (s *NetworkService) recordError(err error, method, endpointPath string) {
	kind := ErrorKindMessage
	if netErr, ok := AsNetworkError(err); ok {
		kind = netErr.Kind
	}
	s.metrics.RecordError(kind, method, endpointPath)
}

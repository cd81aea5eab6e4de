package networkingx

import "net/http"

// Option configures a NetworkService.
type Option func(*NetworkService)

// WithTransport sets the transport capability executing requests.
func WithTransport(transport RoundTripper) Option {
	return func(s *NetworkService) {
		s.transport = transport
	}
}

// WithHTTPClient routes requests through the given *http.Client, inheriting
// its timeout, redirect and TLS behavior.
func WithHTTPClient(client *http.Client) Option {
	return func(s *NetworkService) {
		s.transport = RoundTripperFunc(client.Do)
	}
}

// WithLogger sets a custom logger for request/response diagnostics.
func WithLogger(logger Logger) Option {
	return func(s *NetworkService) {
		s.logger = logger
	}
}

// WithSimpleLogger enables diagnostics with a simple console logger.
func WithSimpleLogger() Option {
	return func(s *NetworkService) {
		s.logger = NewSimpleLogger()
	}
}

// WithMetricsCollector enables Prometheus metrics collection.
func WithMetricsCollector(metrics *MetricsCollector) Option {
	return func(s *NetworkService) {
		s.metrics = metrics
	}
}

// WithDispatcher sets the dispatcher that completion callbacks are
// redelivered on. Its lifecycle stays with the caller; NetworkService.Close
// leaves it running.
func WithDispatcher(dispatcher Dispatcher) Option {
	return func(s *NetworkService) {
		s.dispatcher = dispatcher
		s.ownedDispatcher = nil
	}
}

// WithAcceptableStatus overrides the predicate deciding which status codes
// count as success. The default accepts [200, 300).
func WithAcceptableStatus(accept func(statusCode int) bool) Option {
	return func(s *NetworkService) {
		s.acceptable = accept
	}
}

// WithAcceptableStatusRange accepts status codes in [low, high).
func WithAcceptableStatusRange(low, high int) Option {
	return WithAcceptableStatus(func(statusCode int) bool {
		return statusCode >= low && statusCode < high
	})
}

// TransferOption configures a DataTransferService.
type TransferOption func(*DataTransferService)

// WithErrorResolver sets the resolver applied to network failures before
// they are wrapped into TransferErrors.
func WithErrorResolver(resolver ErrorResolver) TransferOption {
	return func(s *DataTransferService) {
		s.resolver = resolver
	}
}

// WithTransferLogger sets the logger used for decode diagnostics.
func WithTransferLogger(logger Logger) TransferOption {
	return func(s *DataTransferService) {
		s.logger = logger
	}
}

// Package networkingx provides a thin, composable REST layer over net/http:
//
//   - Declarative endpoint descriptions (path, method, parameters, encoding,
//     expected response shape) instead of hand-built *http.Request values
//   - A deterministic request builder that merges an immutable base Config
//     (base URL, default headers, default query) with each endpoint
//   - Pluggable body encoders (URL-encoded, JSON, XML, multipart) and
//     response decoders (JSON, XML, raw bytes)
//   - A two-tier error taxonomy: NetworkError for transport/HTTP
//     classification, TransferError for decoding and error resolution
//   - Prometheus metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - Pure transformations around a single suspension point (the transport)
//   - Safe concurrent use of a single service instance; Config is read-only
//   - Extensibility via injected Transport, Logger, ErrorResolver, Dispatcher
//
// Typical usage:
//
//	cfg, _ := networkingx.NewConfig("https://api.example.com",
//	    networkingx.WithDefaultHeaders(map[string]string{"Authorization": "Bearer ..."}),
//	)
//	svc := networkingx.NewNetworkService(cfg,
//	    networkingx.WithSimpleLogger(),
//	)
//	dts := networkingx.NewDataTransferService(svc)
//	user, err := networkingx.Fetch[User](ctx, dts, networkingx.GetEndpoint("/users/42"))
//
// The library does not retry, cache, pool, or rate limit: a request either
// completes or fails with a classified error value, and the retry decision
// belongs to the caller. Failures are always values delivered through the
// single per-call result surface, never panics.
package networkingx

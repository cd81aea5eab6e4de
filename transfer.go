package networkingx

import (
	"context"
)

// ErrorResolver lets the embedding application substitute its own error for
// a NetworkError before the transfer layer wraps it. The default resolver is
// the identity mapping. Resolvers must be pure and safe for concurrent use.
type ErrorResolver interface {
	Resolve(err error) error
}

// ErrorResolverFunc adapts a function to the ErrorResolver interface.
type ErrorResolverFunc func(error) error

// Resolve implements ErrorResolver.
func (f ErrorResolverFunc) Resolve(err error) error { return f(err) }

// identityResolver returns errors unchanged.
var identityResolver = ErrorResolverFunc(func(err error) error { return err })

// Empty marks calls whose response payload is irrelevant: Fetch[Empty] skips
// decoding entirely and succeeds even when the body is absent.
type Empty struct{}

// DataTransferService wraps NetworkService results into typed values: it
// decodes successful payloads with the endpoint's response decoder and maps
// failures into the TransferError taxonomy.
type DataTransferService struct {
	network  *NetworkService
	resolver ErrorResolver
	logger   Logger
}

// NewDataTransferService constructs a DataTransferService on top of the
// given NetworkService.
func NewDataTransferService(network *NetworkService, options ...TransferOption) *DataTransferService {
	service := &DataTransferService{
		network:  network,
		resolver: identityResolver,
		logger:   DiscardLogger{},
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// Fetch calls the endpoint and decodes the response into T using the
// endpoint's response decoding strategy.
//
// T == Empty returns success without looking at the body. For any other T,
// an absent body fails with the NoResponseBody classification and a decode
// failure wraps the decoder's error. Network failures pass through the
// service's ErrorResolver and come back as TransferError values.
func Fetch[T any](ctx context.Context, service *DataTransferService, endpoint *Endpoint) (T, error) {
	var zero T

	data, err := service.network.Do(ctx, endpoint)
	if err != nil {
		return zero, service.resolveError(err)
	}

	if _, isEmpty := any(zero).(Empty); isEmpty {
		return zero, nil
	}
	if len(data) == 0 {
		return zero, &TransferError{Kind: ErrorKindNoResponseBody}
	}

	var out T
	if decodeErr := endpoint.responseDecoder().Decode(data, &out); decodeErr != nil {
		service.logger.Error("response decoding failed", "path", endpoint.Path, "error", decodeErr.Error())
		return zero, &TransferError{Kind: ErrorKindDecodingFailed, Cause: decodeErr}
	}
	return out, nil
}

// FetchAsync is the asynchronous form of Fetch. The typed completion fires
// exactly once on the network service's Dispatcher; a request build failure
// invokes it synchronously and returns no handle.
func FetchAsync[T any](ctx context.Context, service *DataTransferService, endpoint *Endpoint, completion func(T, error)) *Call {
	return service.network.Go(ctx, endpoint, func(data []byte, err error) {
		var zero T

		if err != nil {
			completion(zero, service.resolveError(err))
			return
		}
		if _, isEmpty := any(zero).(Empty); isEmpty {
			completion(zero, nil)
			return
		}
		if len(data) == 0 {
			completion(zero, &TransferError{Kind: ErrorKindNoResponseBody})
			return
		}

		var out T
		if decodeErr := endpoint.responseDecoder().Decode(data, &out); decodeErr != nil {
			service.logger.Error("response decoding failed", "path", endpoint.Path, "error", decodeErr.Error())
			completion(zero, &TransferError{Kind: ErrorKindDecodingFailed, Cause: decodeErr})
			return
		}
		completion(out, nil)
	})
}

// resolveError passes a network failure through the resolver and wraps the
// result: still-recognizable NetworkErrors wrap as Network, anything else as
// ResolvedFailure.
func (s *DataTransferService) resolveError(err error) error {
	resolved := s.resolver.Resolve(err)
	if _, ok := AsNetworkError(resolved); ok {
		return &TransferError{Kind: ErrorKindNetwork, Cause: resolved}
	}
	return &TransferError{Kind: ErrorKindResolvedFailure, Cause: resolved}
}

package networkingx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"
)

// NetworkError kinds produced by request building and outcome classification.
const (
	ErrorKindCancelled            = "Cancelled"
	ErrorKindHTTPStatus           = "HTTPStatus"
	ErrorKindTransportFailure     = "TransportFailure"
	ErrorKindMessage              = "Message"
	ErrorKindNotConnected         = "NotConnected"
	ErrorKindTimedOut             = "TimedOut"
	ErrorKindUnacceptableStatus   = "UnacceptableStatus"
	ErrorKindURLGeneration        = "URLGeneration"
	ErrorKindJSONEncoding         = "JSONEncoding"
	ErrorKindXMLEncoding          = "XMLEncoding"
	ErrorKindMultipartEncoding    = "MultipartEncoding"
	ErrorKindURLParameterEncoding = "URLParameterEncoding"
)

// TransferError kinds produced by the data-transfer layer.
const (
	ErrorKindNoResponseBody  = "NoResponseBody"
	ErrorKindDecodingFailed  = "DecodingFailed"
	ErrorKindNetwork         = "Network"
	ErrorKindResolvedFailure = "ResolvedFailure"
)

// NetworkError classifies a failed request attempt at the transport/HTTP
// level. It is always returned as a value, never raised.
type NetworkError struct {
	Kind       string
	Message    string
	StatusCode int
	Body       []byte
	Method     string
	URL        string
	Timestamp  time.Time
	Cause      error
}

// Error implements error.
func (e *NetworkError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error kinds for errors.Is.
func (e *NetworkError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*NetworkError); ok {
		return e.Kind == targetErr.Kind
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *NetworkError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Kind: %s\n", e.Kind)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.Method != "" {
		info += fmt.Sprintf("Method: %s\n", e.Method)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.StatusCode > 0 {
		info += fmt.Sprintf("Status Code: %d\n", e.StatusCode)
	}
	if len(e.Body) > 0 {
		info += fmt.Sprintf("Body Length: %d\n", len(e.Body))
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}

// TransferError classifies a failure at the decoding/application layer,
// one level above NetworkError.
type TransferError struct {
	Kind  string
	Cause error
}

// Error implements error.
func (e *TransferError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	return e.Kind
}

// Unwrap returns the underlying cause.
func (e *TransferError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error kinds for errors.Is.
func (e *TransferError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*TransferError); ok {
		return e.Kind == targetErr.Kind
	}
	return false
}

// AsNetworkError extracts a *NetworkError from err's chain, if any.
func AsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	return nil, false
}

// HasStatusCode reports whether err carries the given HTTP status code.
func HasStatusCode(err error, code int) bool {
	if netErr, ok := AsNetworkError(err); ok {
		switch netErr.Kind {
		case ErrorKindHTTPStatus, ErrorKindUnacceptableStatus:
			return netErr.StatusCode == code
		}
	}
	return false
}

// IsNotFoundError reports whether err is an HTTP 404 classification.
func IsNotFoundError(err error) bool {
	return HasStatusCode(err, 404)
}

// IsCancelledError reports whether err classifies a cancelled attempt.
func IsCancelledError(err error) bool {
	if netErr, ok := AsNetworkError(err); ok {
		return netErr.Kind == ErrorKindCancelled
	}
	return false
}

// IsTimeoutError reports whether err classifies a timed-out attempt.
func IsTimeoutError(err error) bool {
	if netErr, ok := AsNetworkError(err); ok {
		return netErr.Kind == ErrorKindTimedOut
	}
	return false
}

// IsNotConnectedError reports whether err classifies a connectivity failure.
func IsNotConnectedError(err error) bool {
	if netErr, ok := AsNetworkError(err); ok {
		return netErr.Kind == ErrorKindNotConnected
	}
	return false
}

// IsNoResponseBodyError reports whether err is the transfer-level
// missing-body classification.
func IsNoResponseBodyError(err error) bool {
	var transferErr *TransferError
	if errors.As(err, &transferErr) {
		return transferErr.Kind == ErrorKindNoResponseBody
	}
	return false
}

// IsDecodingError reports whether err is the transfer-level decode failure.
func IsDecodingError(err error) bool {
	var transferErr *TransferError
	if errors.As(err, &transferErr) {
		return transferErr.Kind == ErrorKindDecodingFailed
	}
	return false
}

// classifyCause maps a transport-level cause onto the NetworkError taxonomy.
// Known conditions become NotConnected / Cancelled / TimedOut; transport
// machinery errors (url.Error, net.OpError) become TransportFailure and
// anything else becomes Message, with the original cause preserved.
func classifyCause(cause error, method, rawURL string) *NetworkError {
	netErr := &NetworkError{
		Method:    method,
		URL:       rawURL,
		Timestamp: time.Now(),
		Cause:     cause,
	}

	switch {
	case errors.Is(cause, context.Canceled):
		netErr.Kind = ErrorKindCancelled
		netErr.Message = "request cancelled"
	case errors.Is(cause, context.DeadlineExceeded):
		netErr.Kind = ErrorKindTimedOut
		netErr.Message = "request timed out"
	case isTimeoutCause(cause):
		netErr.Kind = ErrorKindTimedOut
		netErr.Message = "request timed out"
	case isNotConnectedCause(cause):
		netErr.Kind = ErrorKindNotConnected
		netErr.Message = "no network connection"
	case isTransportCause(cause):
		netErr.Kind = ErrorKindTransportFailure
		netErr.Message = "transport failure"
	default:
		netErr.Kind = ErrorKindMessage
		netErr.Message = cause.Error()
	}
	return netErr
}

func isTimeoutCause(cause error) bool {
	var timeoutErr interface{ Timeout() bool }
	return errors.As(cause, &timeoutErr) && timeoutErr.Timeout()
}

func isNotConnectedCause(cause error) bool {
	var dnsErr *net.DNSError
	if errors.As(cause, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(cause, &opErr) {
		// Dial failures mean we never reached the remote.
		return opErr.Op == "dial"
	}
	return false
}

func isTransportCause(cause error) bool {
	var urlErr *url.Error
	if errors.As(cause, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(cause, &netErr)
}

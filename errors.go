package telegram

import (
	"errors"
	"fmt"
	"time"
)

// ErrAlreadyRunning is returned by Poller.Start when the poller is not
// stopped, and by Poller.ResetOffset while the loop is live.
var ErrAlreadyRunning = errors.New("poller is already running")

// APIError is an error containing extra information returned by the
// Bot API when a request fails (ok=false in the response envelope).
type APIError struct {
	// Code is the HTTP-style error code reported by the platform.
	Code int
	// Description is the human-readable error description.
	Description string
	// Parameters carries optional recovery hints such as retry_after.
	Parameters *ResponseParameters
}

// Error message string.
func (e *APIError) Error() string {
	return fmt.Sprintf("telegram: %d %s", e.Code, e.Description)
}

// ErrorKind labels the broad class of a failure observed by the engine.
type ErrorKind string

const (
	// ErrorKindTransport covers network failures, timeouts and
	// responses that could not be decoded.
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindService covers structured remote failures: rate limits,
	// bad requests, authorization failures, server errors.
	ErrorKindService ErrorKind = "service"
	// ErrorKindProtocol covers well-formed responses that violate the
	// one-variant update invariant.
	ErrorKindProtocol ErrorKind = "protocol"
	// ErrorKindHandler covers failures raised by observer code during
	// dispatch.
	ErrorKindHandler ErrorKind = "handler"
)

// BotError is the error envelope emitted on the Poller's observer
// channel. Kind, Message and Fatal carry the classification; Err holds
// the underlying cause when there is one.
type BotError struct {
	Kind    ErrorKind
	Message string
	Err     error
	// Fatal reports that the loop stopped because of this error.
	Fatal bool
	// RetryAfter is the server-requested wait before the next attempt,
	// set on rate-limit errors.
	RetryAfter time.Duration
	// UpdateID identifies the update being processed when the error
	// occurred, for handler and protocol errors. Zero otherwise.
	UpdateID int64
}

func (e BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e BotError) Unwrap() error { return e.Err }

// IsFatal reports whether err is (or wraps) a BotError that stopped
// the polling loop.
func IsFatal(err error) bool {
	var be BotError
	return errors.As(err, &be) && be.Fatal
}

func newTransportError(err error) BotError {
	return BotError{
		Kind:    ErrorKindTransport,
		Message: "request failed",
		Err:     err,
	}
}

func newServiceError(apiErr *APIError) BotError {
	be := BotError{
		Kind:    ErrorKindService,
		Message: apiErr.Description,
		Err:     apiErr,
	}
	switch {
	case apiErr.Code == 401 || apiErr.Code == 403:
		be.Fatal = true
	case apiErr.Code == 429:
		if apiErr.Parameters != nil && apiErr.Parameters.RetryAfter > 0 {
			be.RetryAfter = time.Duration(apiErr.Parameters.RetryAfter) * time.Second
		}
	}
	return be
}

func newProtocolError(updateID int64, variants int) BotError {
	return BotError{
		Kind:     ErrorKindProtocol,
		Message:  fmt.Sprintf("update has %d populated variants, want 1", variants),
		UpdateID: updateID,
	}
}

func newHandlerError(updateID int64, err error) BotError {
	return BotError{
		Kind:     ErrorKindHandler,
		Message:  "handler failed",
		Err:      err,
		UpdateID: updateID,
	}
}

// classifyFetchError maps a getUpdates failure onto the taxonomy.
// Structured API errors become service errors, fatal for authorization
// failures; everything else (network, timeout, decode) is transport.
func classifyFetchError(err error) BotError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return newServiceError(apiErr)
	}
	return newTransportError(err)
}

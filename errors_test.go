package telegram

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestClassifyFetchError_NetworkIsTransport(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	be := classifyFetchError(fmt.Errorf("getUpdates: %w", cause))

	if be.Kind != ErrorKindTransport {
		t.Fatalf("expected transport, got %s", be.Kind)
	}
	if be.Fatal {
		t.Fatal("transport errors must not be fatal")
	}
	if !errors.Is(be, cause) {
		t.Fatal("expected the cause to be reachable through Unwrap")
	}
}

func TestClassifyFetchError_APIErrorIsService(t *testing.T) {
	be := classifyFetchError(&APIError{Code: 400, Description: "Bad Request"})

	if be.Kind != ErrorKindService {
		t.Fatalf("expected service, got %s", be.Kind)
	}
	if be.Fatal {
		t.Fatal("a 400 must not be fatal")
	}
}

func TestClassifyFetchError_WrappedAPIError(t *testing.T) {
	apiErr := &APIError{Code: 401, Description: "Unauthorized"}
	be := classifyFetchError(fmt.Errorf("getUpdates: %w", apiErr))

	if be.Kind != ErrorKindService {
		t.Fatalf("expected service, got %s", be.Kind)
	}
	if !be.Fatal {
		t.Fatal("401 must be fatal even when wrapped")
	}
}

func TestServiceError_FatalCodes(t *testing.T) {
	cases := []struct {
		code  int
		fatal bool
	}{
		{400, false},
		{401, true},
		{403, true},
		{404, false},
		{429, false},
		{500, false},
		{502, false},
	}
	for _, tc := range cases {
		be := newServiceError(&APIError{Code: tc.code, Description: "x"})
		if be.Fatal != tc.fatal {
			t.Fatalf("code %d: expected fatal=%v, got %v", tc.code, tc.fatal, be.Fatal)
		}
	}
}

func TestServiceError_RetryAfter(t *testing.T) {
	be := newServiceError(&APIError{
		Code:        429,
		Description: "Too Many Requests",
		Parameters:  &ResponseParameters{RetryAfter: 7},
	})
	if be.RetryAfter != 7*time.Second {
		t.Fatalf("expected 7s, got %s", be.RetryAfter)
	}

	// 429 without parameters carries no wait hint.
	be = newServiceError(&APIError{Code: 429, Description: "Too Many Requests"})
	if be.RetryAfter != 0 {
		t.Fatalf("expected no retry hint, got %s", be.RetryAfter)
	}
}

func TestIsFatal(t *testing.T) {
	fatal := newServiceError(&APIError{Code: 403, Description: "Forbidden"})
	if !IsFatal(fatal) {
		t.Fatal("expected fatal")
	}
	if !IsFatal(fmt.Errorf("wrapped: %w", fatal)) {
		t.Fatal("expected fatal through wrapping")
	}
	if IsFatal(newTransportError(errors.New("x"))) {
		t.Fatal("transport error reported fatal")
	}
	if IsFatal(errors.New("plain")) {
		t.Fatal("plain error reported fatal")
	}
	if IsFatal(nil) {
		t.Fatal("nil reported fatal")
	}
}

func TestBotError_MessageFormat(t *testing.T) {
	be := newHandlerError(12, errors.New("boom"))
	want := "handler: handler failed: boom"
	if got := be.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	be = newProtocolError(5, 2)
	if got := be.Error(); got != "protocol: update has 2 populated variants, want 1" {
		t.Fatalf("unexpected message: %q", got)
	}
	if be.UpdateID != 5 {
		t.Fatalf("expected update id 5, got %d", be.UpdateID)
	}
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{Code: 409, Description: "Conflict: terminated by other getUpdates request"}
	want := "telegram: 409 Conflict: terminated by other getUpdates request"
	if got := err.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

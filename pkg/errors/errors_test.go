package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
		hidden    bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeProvider, status: http.StatusBadGateway, publicMsg: "payment provider request failed", retryable: true, hidden: true},
		{code: CodeWebhookSignature, status: http.StatusBadRequest, publicMsg: "invalid webhook signature", hidden: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true, hidden: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
		if meta.HideMessage != tt.hidden {
			t.Fatalf("code %s expected hide message %v got %v", tt.code, tt.hidden, meta.HideMessage)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestWrapKeepsCauseInChain(t *testing.T) {
	cause := stdErrors.New("card_declined")
	wrapped := Wrap(CodeProvider, cause, "create payment intent")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if !strings.Contains(wrapped.Error(), "card_declined") {
		t.Fatalf("expected cause in error string, got %q", wrapped.Error())
	}

	outer := fmt.Errorf("payments: %w", wrapped)
	if !IsCode(outer, CodeProvider) {
		t.Fatalf("expected IsCode to see provider code through fmt wrapping")
	}
	if IsCode(outer, CodeInternal) {
		t.Fatalf("unexpected internal code match")
	}
}

func TestNotFoundNamesResource(t *testing.T) {
	err := NotFound("package")
	if err.Code() != CodeNotFound || err.Message() != "package not found" {
		t.Fatalf("unexpected error %v", err)
	}
	details, ok := err.Details().(map[string]any)
	if !ok || details["resource"] != "package" {
		t.Fatalf("unexpected details %#v", err.Details())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeForbidden, "no entry")
	if got := As(err); got == nil || got.Code() != CodeForbidden {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatalf("As should not type plain errors")
	}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/framehouse-studio/booking-backend/pkg/auth"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
)

const intentsPath = "/api/v1/payments/intents"

func intentRequest(actor pkgAuth.Actor, key, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, intentsPath, strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	return req.WithContext(WithActor(req.Context(), actor))
}

func customer() pkgAuth.Actor {
	return pkgAuth.Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	mw := Idempotency(newRedisLimiter(t), time.Hour, nil)
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, intentRequest(customer(), "", `{"quoteId":"q"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if handlerCalled {
		t.Fatalf("handler should not run without idempotency key")
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	mw := Idempotency(newRedisLimiter(t), time.Hour, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	actor := customer()

	first := httptest.NewRecorder()
	mw(handler).ServeHTTP(first, intentRequest(actor, "abc", `{"quoteId":"q"}`))
	if first.Code != http.StatusCreated {
		t.Fatalf("expected first response 201 got %d", first.Code)
	}

	replay := httptest.NewRecorder()
	mw(handler).ServeHTTP(replay, intentRequest(actor, "abc", `{"quoteId":"q"}`))
	if replay.Code != http.StatusCreated {
		t.Fatalf("expected replay status 201 got %d", replay.Code)
	}
	if replay.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected content-type header preserved")
	}
	if replay.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("expected replay marker header")
	}
	if strings.TrimSpace(replay.Body.String()) != `{"ok":true}` {
		t.Fatalf("expected stored body got %s", replay.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler executed %d times, expected 1", calls)
	}

	other := httptest.NewRecorder()
	mw(handler).ServeHTTP(other, intentRequest(customer(), "abc", `{"quoteId":"q"}`))
	if calls != 2 {
		t.Fatalf("expected keys to be scoped per caller, handler ran %d times", calls)
	}
}

func TestIdempotencyDetectsBodyChange(t *testing.T) {
	mw := Idempotency(newRedisLimiter(t), time.Hour, nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	actor := customer()

	mw(handler).ServeHTTP(httptest.NewRecorder(), intentRequest(actor, "xyz", `{"paymentType":"deposit"}`))

	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, intentRequest(actor, "xyz", `{"paymentType":"full"}`))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeIdempotency) {
		t.Fatalf("expected error code %s got %s", pkgerrors.CodeIdempotency, payload.Error.Code)
	}
}

func TestIdempotencySkipsServerErrors(t *testing.T) {
	mw := Idempotency(newRedisLimiter(t), time.Hour, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})
	actor := customer()

	mw(handler).ServeHTTP(httptest.NewRecorder(), intentRequest(actor, "retry-me", `{}`))
	mw(handler).ServeHTTP(httptest.NewRecorder(), intentRequest(actor, "retry-me", `{}`))
	if calls != 2 {
		t.Fatalf("expected a 5xx response to be retried, handler ran %d times", calls)
	}
}

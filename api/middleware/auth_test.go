package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/auth"
	"github.com/framehouse-studio/booking-backend/pkg/auth/session"
	"github.com/framehouse-studio/booking-backend/pkg/config"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/google/uuid"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func bearerRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthRejectsMissingToken(t *testing.T) {
	resp := httptest.NewRecorder()
	Auth(testJWT, stubSessionVerifier{ok: true}, nil)(okHandler()).ServeHTTP(resp, bearerRequest(""))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	resp := httptest.NewRecorder()
	Auth(testJWT, stubSessionVerifier{ok: true}, nil)(okHandler()).ServeHTTP(resp, bearerRequest("invalid"))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSeedsActor(t *testing.T) {
	userID := uuid.New()
	token := mintTestToken(t, userID, enums.UserRoleCustomer)

	var captured auth.Actor
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			t.Fatal("expected actor in context")
		}
		captured = actor
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, bearerRequest(token))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.UserID != userID || captured.Role != enums.UserRoleCustomer {
		t.Fatalf("unexpected actor %+v", captured)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	token := mintTestToken(t, uuid.New(), enums.UserRoleCustomer)
	resp := httptest.NewRecorder()
	Auth(testJWT, stubSessionVerifier{ok: false}, nil)(okHandler()).ServeHTTP(resp, bearerRequest(token))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSessionStoreFailure(t *testing.T) {
	token := mintTestToken(t, uuid.New(), enums.UserRoleCustomer)
	resp := httptest.NewRecorder()
	Auth(testJWT, stubSessionVerifier{err: errors.New("redis down")}, nil)(okHandler()).ServeHTTP(resp, bearerRequest(token))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name   string
		actor  *auth.Actor
		status int
	}{
		{"no actor", nil, http.StatusUnauthorized},
		{"customer", &auth.Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}, http.StatusForbidden},
		{"admin", &auth.Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.actor != nil {
				req = req.WithContext(WithActor(req.Context(), *tc.actor))
			}
			resp := httptest.NewRecorder()
			RequireRole(enums.UserRoleAdmin, nil)(okHandler()).ServeHTTP(resp, req)
			if resp.Code != tc.status {
				t.Fatalf("expected %d got %d", tc.status, resp.Code)
			}
		})
	}
}

func mintTestToken(t *testing.T, userID uuid.UUID, role enums.UserRole) string {
	t.Helper()
	token, err := auth.MintAccessToken(testJWT, time.Now(), auth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

type stubSessionVerifier struct {
	ok  bool
	err error
}

func (s stubSessionVerifier) HasSession(ctx context.Context, accessID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.ok, nil
}

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/framehouse-studio/booking-backend/pkg/auth"
	"github.com/framehouse-studio/booking-backend/pkg/config"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	redisclient "github.com/framehouse-studio/booking-backend/pkg/redis"
	"github.com/google/uuid"
)

func newTestManager(t *testing.T) (*Manager, *redisclient.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redisclient.NewFromAddr(srv.Addr())
	t.Cleanup(func() { _ = client.Close() })
	manager, err := NewManager(client, config.JWTConfig{ExpirationMinutes: 15, RefreshTokenTTLMinutes: 60})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return manager, client
}

func TestManagerGenerateAndRotate(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()
	actor := auth.Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}

	token, err := manager.Generate(ctx, "access-123", actor)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if ok, err := manager.HasSession(ctx, "access-123"); err != nil || !ok {
		t.Fatalf("expected session to exist, got %v %v", ok, err)
	}

	if _, err := manager.Rotate(ctx, "access-123", "wrong"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected invalid refresh token error, got %v", err)
	}

	rotation, err := manager.Rotate(ctx, "access-123", token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if rotation.Actor != actor {
		t.Fatalf("expected actor to carry over, got %+v", rotation.Actor)
	}
	if ok, _ := manager.HasSession(ctx, "access-123"); ok {
		t.Fatalf("old access session left behind")
	}
	if ok, _ := manager.HasSession(ctx, rotation.AccessID); !ok {
		t.Fatalf("new access session missing")
	}

	if _, err := manager.Rotate(ctx, "access-123", token); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("reusing a rotated token must fail, got %v", err)
	}
}

func TestManagerRevoke(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()
	if _, err := manager.Generate(ctx, "access-9", auth.Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := manager.Revoke(ctx, "access-9"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := manager.HasSession(ctx, "access-9"); ok {
		t.Fatalf("expected session revoked")
	}
}

func TestNewManagerRejectsShortRefreshTTL(t *testing.T) {
	client := redisclient.NewFromAddr("127.0.0.1:0")
	defer client.Close()
	if _, err := NewManager(client, config.JWTConfig{ExpirationMinutes: 60, RefreshTokenTTLMinutes: 30}); err == nil {
		t.Fatalf("expected ttl validation error")
	}
}

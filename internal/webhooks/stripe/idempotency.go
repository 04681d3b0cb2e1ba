package stripewebhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/redis"
)

// DefaultGuardScope namespaces Stripe event ids in the idempotency keyspace.
const DefaultGuardScope = "stripe-webhook"

// EventGuard remembers processed Stripe event ids so exact redeliveries are
// acknowledged without touching the database. It is an optimization only; the
// conditional status updates keep processing correct when the guard is cold.
type EventGuard struct {
	store redis.IdempotencyStore
	ttl   time.Duration
	scope string
}

func NewEventGuard(store redis.IdempotencyStore, ttl time.Duration, scope string) (*EventGuard, error) {
	if store == nil {
		return nil, errors.New("idempotency store is required")
	}
	if ttl < 0 {
		return nil, errors.New("ttl must be non-negative")
	}
	if scope == "" {
		scope = DefaultGuardScope
	}
	return &EventGuard{store: store, ttl: ttl, scope: scope}, nil
}

// Claim marks eventID as in flight. It reports true when the id was already
// claimed by an earlier delivery.
func (g *EventGuard) Claim(ctx context.Context, eventID string) (bool, error) {
	if eventID == "" {
		return false, errors.New("event id is required")
	}
	set, err := g.store.SetNX(ctx, g.store.IdempotencyKey(g.scope, eventID), "1", g.ttl)
	if err != nil {
		return false, fmt.Errorf("claim stripe event: %w", err)
	}
	return !set, nil
}

// Release forgets eventID so a redelivery is processed again.
func (g *EventGuard) Release(ctx context.Context, eventID string) error {
	if eventID == "" {
		return errors.New("event id is required")
	}
	return g.store.Del(ctx, g.store.IdempotencyKey(g.scope, eventID))
}

package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/framehouse-studio/booking-backend/pkg/db/dbtest"
	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
)

func TestEmitWritesEnvelopeInTransaction(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	svc := NewService(repo, nil)
	quoteID := uuid.New()
	userID := uuid.New()

	err := conn.Transaction(func(tx *gorm.DB) error {
		return svc.Emit(context.Background(), tx, DomainEvent{
			EventType:     enums.EventQuoteCreated,
			AggregateType: enums.AggregateWeddingQuote,
			AggregateID:   quoteID,
			Actor:         &ActorRef{UserID: userID, Role: enums.UserRoleCustomer},
			Data:          map[string]any{"totalPriceCents": 220000},
		})
	})
	require.NoError(t, err)

	var rows []models.OutboxEvent
	require.NoError(t, conn.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, quoteID, rows[0].AggregateID)

	var envelope PayloadEnvelope
	require.NoError(t, json.Unmarshal(rows[0].Payload, &envelope))
	assert.Equal(t, 1, envelope.Version)
	assert.NotEmpty(t, envelope.EventID)
	require.NotNil(t, envelope.Actor)
	assert.Equal(t, userID, envelope.Actor.UserID)
	assert.JSONEq(t, `{"totalPriceCents":220000}`, string(envelope.Data))
}

func TestEmitRolledBackWithTransaction(t *testing.T) {
	conn := dbtest.Open(t)
	svc := NewService(NewRepository(conn), nil)

	_ = conn.Transaction(func(tx *gorm.DB) error {
		require.NoError(t, svc.Emit(context.Background(), tx, DomainEvent{
			EventType:     enums.EventQuoteDecided,
			AggregateType: enums.AggregateWeddingQuote,
			AggregateID:   uuid.New(),
			Data:          struct{}{},
		}))
		return errors.New("abort")
	})

	var count int64
	require.NoError(t, conn.Model(&models.OutboxEvent{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEmitRejectsUnknownType(t *testing.T) {
	conn := dbtest.Open(t)
	svc := NewService(NewRepository(conn), nil)
	err := svc.Emit(context.Background(), conn, DomainEvent{
		EventType:     enums.OutboxEventType("order_created"),
		AggregateType: enums.AggregateWeddingQuote,
		AggregateID:   uuid.New(),
	})
	assert.Error(t, err)
}

func TestRepositoryPublishLifecycle(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)

	first := &models.OutboxEvent{EventType: enums.EventQuoteCreated, AggregateType: enums.AggregateWeddingQuote, AggregateID: uuid.New(), Payload: json.RawMessage(`{}`)}
	second := &models.OutboxEvent{EventType: enums.EventQuoteCreated, AggregateType: enums.AggregateWeddingQuote, AggregateID: uuid.New(), Payload: json.RawMessage(`{}`)}
	require.NoError(t, repo.Insert(conn, first))
	require.NoError(t, repo.Insert(conn, second))

	rows, err := repo.FetchUnpublishedForPublish(conn, 10, 3)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.NoError(t, repo.MarkPublishedTx(conn, first.ID))
	require.NoError(t, repo.MarkFailedTx(conn, second.ID, errors.New("pubsub unavailable")))

	rows, err = repo.FetchUnpublishedForPublish(conn, 10, 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, 1, rows[0].AttemptCount)
	require.NotNil(t, rows[0].LastError)
	assert.Equal(t, "pubsub unavailable", *rows[0].LastError)

	require.NoError(t, repo.MarkTerminalTx(conn, second.ID, errors.New("gave up"), 3))
	rows, err = repo.FetchUnpublishedForPublish(conn, 10, 3)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryDeleteSettledBefore(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	old := time.Now().UTC().Add(-40 * 24 * time.Hour)
	cutoff := time.Now().UTC().Add(-30 * 24 * time.Hour)

	newRow := func(createdAt time.Time) *models.OutboxEvent {
		row := &models.OutboxEvent{
			EventType:     enums.EventQuoteDecided,
			AggregateType: enums.AggregateWeddingQuote,
			AggregateID:   uuid.New(),
			Payload:       json.RawMessage(`{}`),
			CreatedAt:     createdAt,
		}
		require.NoError(t, repo.Insert(conn, row))
		return row
	}
	publishedOld := newRow(old)
	terminalOld := newRow(old)
	pendingOld := newRow(old)
	publishedRecent := newRow(time.Now().UTC())

	require.NoError(t, repo.MarkPublishedTx(conn, publishedOld.ID))
	require.NoError(t, repo.MarkPublishedTx(conn, publishedRecent.ID))
	require.NoError(t, repo.MarkTerminalTx(conn, terminalOld.ID, errors.New("gave up"), 5))

	deleted, err := repo.DeleteSettledBefore(context.Background(), conn, cutoff, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var remaining []models.OutboxEvent
	require.NoError(t, conn.Order("created_at ASC").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, pendingOld.ID, remaining[0].ID)
	assert.Equal(t, publishedRecent.ID, remaining[1].ID)
}

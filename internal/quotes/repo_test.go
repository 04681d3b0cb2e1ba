package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/db/dbtest"
	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/framehouse-studio/booking-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedQuote(t *testing.T, conn *gorm.DB, userID uuid.UUID, status *enums.PaymentStatus) *models.WeddingQuote {
	t.Helper()
	name := "Backyard"
	q := &models.WeddingQuote{
		UserID:            userID,
		PackageID:         uuid.New(),
		PackageName:       "Basic Wedding Package",
		PackagePriceCents: 150000,
		EventDate:         time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC),
		EventTime:         "15:00",
		VenueName:         &name,
		TotalPriceCents:   150000,
		Status:            enums.QuoteStatusPending,
		PaymentStatus:     status,
		CreatedAt:         time.Now().UTC(),
		Addons: []models.QuoteAddon{
			{AddonID: uuid.New(), AddonName: "Second", PriceAtSelectionCents: 100, Position: 1},
			{AddonID: uuid.New(), AddonName: "First", PriceAtSelectionCents: 200, Position: 0},
		},
	}
	require.NoError(t, NewRepository(conn).Create(context.Background(), q))
	return q
}

func TestRepositoryFindByIDOrdersAddons(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	q := seedQuote(t, conn, uuid.New(), nil)

	got, err := repo.FindByID(context.Background(), q.ID)
	require.NoError(t, err)
	require.Len(t, got.Addons, 2)
	assert.Equal(t, "First", got.Addons[0].AddonName)
	assert.Equal(t, "Second", got.Addons[1].AddonName)
	assert.Nil(t, got.PaymentStatus)
	assert.Nil(t, got.Venue)
}

// Every (from, to) pair: only the forward edges apply and paid absorbs.
func TestRepositoryTransitionPaymentStatusIsForwardOnly(t *testing.T) {
	statuses := []*enums.PaymentStatus{nil}
	for _, s := range []enums.PaymentStatus{
		enums.PaymentStatusDepositPaid,
		enums.PaymentStatusPaid,
		enums.PaymentStatusFailed,
		enums.PaymentStatusCanceled,
	} {
		s := s
		statuses = append(statuses, &s)
	}

	for _, from := range statuses {
		for _, toPtr := range statuses[1:] {
			to := *toPtr
			name := "null"
			if from != nil {
				name = string(*from)
			}
			t.Run(name+"->"+string(to), func(t *testing.T) {
				conn := dbtest.Open(t)
				repo := NewRepository(conn)
				q := seedQuote(t, conn, uuid.New(), from)

				applied, err := repo.TransitionPaymentStatus(context.Background(), q.ID, to, "pi_123", time.Now().UTC())
				require.NoError(t, err)
				assert.Equal(t, enums.CanTransitionPayment(from, to), applied)

				got, err := repo.FindByID(context.Background(), q.ID)
				require.NoError(t, err)
				if applied {
					require.NotNil(t, got.PaymentStatus)
					assert.Equal(t, to, *got.PaymentStatus)
					assert.Equal(t, enums.QuoteStatusPending, got.Status)
				} else if from == nil {
					assert.Nil(t, got.PaymentStatus)
				} else {
					assert.Equal(t, *from, *got.PaymentStatus)
				}
			})
		}
	}

	paid := enums.PaymentStatusPaid
	for _, to := range []enums.PaymentStatus{enums.PaymentStatusDepositPaid, enums.PaymentStatusPaid, enums.PaymentStatusFailed, enums.PaymentStatusCanceled} {
		assert.False(t, enums.CanTransitionPayment(&paid, to), "paid must not move to %s", to)
	}
}

func TestRepositoryUpdateStatusCompareAndSwap(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	q := seedQuote(t, conn, uuid.New(), nil)
	ctx := context.Background()

	applied, err := repo.UpdateStatus(ctx, q.ID, enums.QuoteStatusPending, enums.QuoteStatusApproved, nil)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.UpdateStatus(ctx, q.ID, enums.QuoteStatusPending, enums.QuoteStatusRejected, nil)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestRepositoryListPaginates(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	owner := uuid.New()
	for i := 0; i < 3; i++ {
		seedQuote(t, conn, owner, nil)
	}
	seedQuote(t, conn, uuid.New(), nil)
	ctx := context.Background()

	first, err := repo.List(ctx, ListFilter{UserID: &owner}, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := repo.List(ctx, ListFilter{UserID: &owner}, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Empty(t, second.NextCursor)

	seen := map[uuid.UUID]bool{}
	for _, q := range append(first.Items, second.Items...) {
		assert.Equal(t, owner, q.UserID)
		assert.False(t, seen[q.ID])
		seen[q.ID] = true
	}
}

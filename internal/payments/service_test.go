package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/auth"
	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type stubQuotes struct {
	quotes   map[uuid.UUID]*models.WeddingQuote
	intentID map[uuid.UUID]string
	setErr   error
}

func (s *stubQuotes) FindByID(_ context.Context, id uuid.UUID) (*models.WeddingQuote, error) {
	q, ok := s.quotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (s *stubQuotes) SetPaymentIntent(_ context.Context, id uuid.UUID, intentID string) error {
	if s.setErr != nil {
		return s.setErr
	}
	if s.intentID == nil {
		s.intentID = map[uuid.UUID]string{}
	}
	s.intentID[id] = intentID
	return nil
}

func newQuote(owner uuid.UUID, total int64, status *enums.PaymentStatus) *models.WeddingQuote {
	return &models.WeddingQuote{
		ID:              uuid.New(),
		UserID:          owner,
		PackageID:       uuid.New(),
		PackageName:     "Premium Wedding Package",
		EventDate:       time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC),
		EventTime:       "15:00",
		TotalPriceCents: total,
		Status:          enums.QuoteStatusPending,
		PaymentStatus:   status,
	}
}

func newTestService(t *testing.T, quotes *stubQuotes, provider IntentProvider) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Quotes: quotes, Provider: provider, Currency: "USD"})
	require.NoError(t, err)
	return svc
}

func customer() auth.Actor {
	return auth.Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}
}

func TestCreateIntent_DepositOnScenarioQuote(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := NewMockIntentProvider(ctrl)
	actor := customer()
	quote := newQuote(actor.UserID, 220000, nil)
	store := &stubQuotes{quotes: map[uuid.UUID]*models.WeddingQuote{quote.ID: quote}}

	provider.EXPECT().
		CreatePaymentIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
			assert.Equal(t, int64(110000), *params.Amount)
			assert.Equal(t, "usd", *params.Currency)
			assert.Equal(t, "Deposit for Premium Wedding Package", *params.Description)
			assert.Equal(t, quote.ID.String(), params.Metadata[MetadataQuoteID])
			assert.Equal(t, "deposit", params.Metadata[MetadataPaymentType])
			assert.Equal(t, "2026-06-14", params.Metadata[MetadataEventDate])
			return &stripe.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil
		})

	res, err := newTestService(t, store, provider).CreateIntent(context.Background(), actor, IntentInput{QuoteID: quote.ID.String(), PaymentType: "deposit"})
	require.NoError(t, err)
	assert.Equal(t, int64(110000), res.Amount)
	assert.Equal(t, "$1,100.00", res.AmountFormatted)
	assert.Equal(t, "pi_123_secret", res.ClientSecret)
	assert.Equal(t, "pi_123", store.intentID[quote.ID])
	assert.Nil(t, quote.PaymentStatus, "intent creation must not write payment status")
}

func TestCreateIntent_DepositRounding(t *testing.T) {
	for total, want := range map[int64]int64{10000: 5000, 10001: 5001, 101: 51} {
		ctrl := gomock.NewController(t)
		provider := NewMockIntentProvider(ctrl)
		actor := customer()
		quote := newQuote(actor.UserID, total, nil)
		store := &stubQuotes{quotes: map[uuid.UUID]*models.WeddingQuote{quote.ID: quote}}
		provider.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(&stripe.PaymentIntent{ID: "pi_x"}, nil)

		res, err := newTestService(t, store, provider).CreateIntent(context.Background(), actor, IntentInput{QuoteID: quote.ID.String(), PaymentType: "deposit"})
		require.NoError(t, err)
		assert.Equal(t, want, res.Amount, "deposit of %d", total)
	}
}

func TestCreateIntent_FullAfterDepositChargesTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := NewMockIntentProvider(ctrl)
	actor := customer()
	deposit := enums.PaymentStatusDepositPaid
	quote := newQuote(actor.UserID, 220000, &deposit)
	store := &stubQuotes{quotes: map[uuid.UUID]*models.WeddingQuote{quote.ID: quote}}
	provider.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(&stripe.PaymentIntent{ID: "pi_full"}, nil)

	res, err := newTestService(t, store, provider).CreateIntent(context.Background(), actor, IntentInput{QuoteID: quote.ID.String(), PaymentType: "full"})
	require.NoError(t, err)
	assert.Equal(t, int64(220000), res.Amount)
}

func TestCreateIntent_NonOwnerMakesNoProviderCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := NewMockIntentProvider(ctrl)
	quote := newQuote(uuid.New(), 220000, nil)
	store := &stubQuotes{quotes: map[uuid.UUID]*models.WeddingQuote{quote.ID: quote}}

	_, err := newTestService(t, store, provider).CreateIntent(context.Background(), customer(), IntentInput{QuoteID: quote.ID.String(), PaymentType: "full"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden), "got %v", err)
	assert.Empty(t, store.intentID)
}

func TestCreateIntent_Rejections(t *testing.T) {
	paid := enums.PaymentStatusPaid
	deposit := enums.PaymentStatusDepositPaid
	failed := enums.PaymentStatusFailed

	cases := []struct {
		name        string
		paymentType string
		quote       func(owner uuid.UUID) *models.WeddingQuote
		missing     bool
		want        pkgerrors.Code
	}{
		{name: "invalid type", paymentType: "installment", want: pkgerrors.CodeValidation},
		{name: "unknown quote", paymentType: "full", missing: true, want: pkgerrors.CodeNotFound},
		{name: "already paid", paymentType: "full", quote: func(o uuid.UUID) *models.WeddingQuote { return newQuote(o, 100, &paid) }, want: pkgerrors.CodeStateConflict},
		{name: "second deposit", paymentType: "deposit", quote: func(o uuid.UUID) *models.WeddingQuote { return newQuote(o, 100, &deposit) }, want: pkgerrors.CodeStateConflict},
		{name: "failed quote", paymentType: "full", quote: func(o uuid.UUID) *models.WeddingQuote { return newQuote(o, 100, &failed) }, want: pkgerrors.CodeStateConflict},
		{name: "rejected quote", paymentType: "deposit", quote: func(o uuid.UUID) *models.WeddingQuote {
			q := newQuote(o, 100, nil)
			q.Status = enums.QuoteStatusRejected
			return q
		}, want: pkgerrors.CodeStateConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			provider := NewMockIntentProvider(ctrl)
			actor := customer()
			store := &stubQuotes{quotes: map[uuid.UUID]*models.WeddingQuote{}}
			quoteID := uuid.New()
			if tc.quote != nil {
				q := tc.quote(actor.UserID)
				store.quotes[q.ID] = q
				quoteID = q.ID
			}

			_, err := newTestService(t, store, provider).CreateIntent(context.Background(), actor, IntentInput{QuoteID: quoteID.String(), PaymentType: tc.paymentType})
			require.True(t, pkgerrors.IsCode(err, tc.want), "expected %s, got %v", tc.want, err)
		})
	}
}

func TestCreateIntent_ProviderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := NewMockIntentProvider(ctrl)
	actor := customer()
	quote := newQuote(actor.UserID, 220000, nil)
	store := &stubQuotes{quotes: map[uuid.UUID]*models.WeddingQuote{quote.ID: quote}}
	provider.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(nil, errors.New("card_declined: your card was declined"))

	_, err := newTestService(t, store, provider).CreateIntent(context.Background(), actor, IntentInput{QuoteID: quote.ID.String(), PaymentType: "full"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeProvider), "got %v", err)
	meta := pkgerrors.MetadataFor(pkgerrors.CodeProvider)
	assert.Equal(t, 502, meta.HTTPStatus)
	assert.True(t, meta.HideMessage)
	assert.Empty(t, store.intentID)
}

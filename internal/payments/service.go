package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/framehouse-studio/booking-backend/pkg/auth"
	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/framehouse-studio/booking-backend/pkg/logger"
	"github.com/framehouse-studio/booking-backend/pkg/metrics"
	"github.com/framehouse-studio/booking-backend/pkg/money"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"
)

// Metadata keys written on every payment intent and read back by the webhook.
const (
	MetadataQuoteID     = "quote_id"
	MetadataPackageID   = "package_id"
	MetadataUserID      = "user_id"
	MetadataPaymentType = "payment_type"
	MetadataEventDate   = "event_date"
	MetadataEventTime   = "event_time"
)

const (
	defaultCurrency       = "usd"
	defaultDepositPercent = 50
)

type quoteStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.WeddingQuote, error)
	SetPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error
}

// Service bridges quotes to payment intents. It never writes payment status;
// only confirmed webhook events move a quote through its payment lifecycle.
type Service interface {
	CreateIntent(ctx context.Context, actor auth.Actor, input IntentInput) (*IntentResult, error)
}

type IntentInput struct {
	QuoteID     string
	PaymentType string
}

type IntentResult struct {
	ClientSecret    string            `json:"client_secret"`
	PaymentIntentID string            `json:"payment_intent_id"`
	Amount          int64             `json:"amount"`
	AmountFormatted string            `json:"amount_formatted"`
	Currency        string            `json:"currency"`
	PaymentType     enums.PaymentType `json:"payment_type"`
}

// ServiceParams groups dependencies for the payments service.
type ServiceParams struct {
	Quotes         quoteStore
	Provider       IntentProvider
	Metrics        *metrics.BookingMetrics
	Logger         *logger.Logger
	Currency       string
	DepositPercent int
}

type service struct {
	quotes         quoteStore
	provider       IntentProvider
	metrics        *metrics.BookingMetrics
	logg           *logger.Logger
	currency       string
	depositPercent int
}

// NewService builds the payment intent service.
func NewService(params ServiceParams) (Service, error) {
	if params.Quotes == nil {
		return nil, errors.New("quote store required")
	}
	if params.Provider == nil {
		return nil, errors.New("intent provider required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	currency := strings.ToLower(strings.TrimSpace(params.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	percent := params.DepositPercent
	if percent <= 0 {
		percent = defaultDepositPercent
	}
	return &service{
		quotes:         params.Quotes,
		provider:       params.Provider,
		metrics:        params.Metrics,
		logg:           logg,
		currency:       currency,
		depositPercent: percent,
	}, nil
}

func (s *service) CreateIntent(ctx context.Context, actor auth.Actor, input IntentInput) (*IntentResult, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	paymentType, err := enums.ParsePaymentType(strings.TrimSpace(input.PaymentType))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment type must be deposit or full")
	}
	quoteID, err := uuid.Parse(strings.TrimSpace(input.QuoteID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quote id")
	}

	quote, err := s.quotes.FindByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("quote")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	if quote.UserID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "quote belongs to another customer")
	}
	if err := checkPayable(quote, paymentType); err != nil {
		return nil, err
	}

	amount := quote.TotalPriceCents
	if paymentType == enums.PaymentTypeDeposit {
		amount = money.Percentage(quote.TotalPriceCents, s.depositPercent)
	}
	if amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quote has nothing to pay")
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(s.currency),
		Description: stripe.String(describe(paymentType, quote.PackageName)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata(MetadataQuoteID, quote.ID.String())
	params.AddMetadata(MetadataPackageID, quote.PackageID.String())
	params.AddMetadata(MetadataUserID, quote.UserID.String())
	params.AddMetadata(MetadataPaymentType, string(paymentType))
	params.AddMetadata(MetadataEventDate, quote.EventDate.Format("2006-01-02"))
	params.AddMetadata(MetadataEventTime, quote.EventTime)

	logCtx := s.logg.WithFields(s.logg.WithQuoteID(ctx, quote.ID.String()), map[string]any{
		"payment_type": paymentType,
		"amount_cents": amount,
	})

	intent, err := s.provider.CreatePaymentIntent(ctx, params)
	if err != nil {
		s.logg.Error(logCtx, "payment intent creation failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeProvider, err, "create payment intent")
	}
	if intent == nil || intent.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeProvider, "payment provider returned no intent")
	}

	if err := s.quotes.SetPaymentIntent(ctx, quote.ID, intent.ID); err != nil {
		s.logg.Error(s.logg.WithField(logCtx, "payment_intent_id", intent.ID), "store payment intent id", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store payment intent")
	}

	s.metrics.IncIntentCreated(string(paymentType))
	s.logg.Info(s.logg.WithField(logCtx, "payment_intent_id", intent.ID), "payment intent created")

	return &IntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          amount,
		AmountFormatted: money.Format(amount),
		Currency:        s.currency,
		PaymentType:     paymentType,
	}, nil
}

// checkPayable rejects intents that no webhook could ever apply.
func checkPayable(quote *models.WeddingQuote, paymentType enums.PaymentType) error {
	if quote.Status == enums.QuoteStatusRejected {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "quote was rejected").
			WithDetails(map[string]any{"status": quote.Status})
	}
	if !enums.CanTransitionPayment(quote.PaymentStatus, paymentType.SettledStatus()) {
		details := map[string]any{"payment_type": paymentType}
		if quote.PaymentStatus != nil {
			details["payment_status"] = *quote.PaymentStatus
		}
		return pkgerrors.New(pkgerrors.CodeStateConflict, "quote cannot accept this payment").WithDetails(details)
	}
	return nil
}

func describe(paymentType enums.PaymentType, packageName string) string {
	if paymentType == enums.PaymentTypeDeposit {
		return fmt.Sprintf("Deposit for %s", packageName)
	}
	return fmt.Sprintf("Full payment for %s", packageName)
}

package stripewebhook

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/framehouse-studio/booking-backend/internal/bookings"
	"github.com/framehouse-studio/booking-backend/internal/payments"
	"github.com/framehouse-studio/booking-backend/internal/quotes"
	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/framehouse-studio/booking-backend/pkg/logger"
	"github.com/framehouse-studio/booking-backend/pkg/metrics"
	"github.com/framehouse-studio/booking-backend/pkg/outbox"
	"github.com/framehouse-studio/booking-backend/pkg/outbox/payloads"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// errUnknownQuote marks deliveries that reference no stored quote. They are
// acknowledged so the provider stops redelivering.
var errUnknownQuote = errors.New("quote not found")

type ServiceParams struct {
	Quotes            *quotes.Repository
	Bookings          bookings.Promoter
	Outbox            outbox.Emitter
	TransactionRunner txRunner
	Metrics           *metrics.BookingMetrics
	Logger            *logger.Logger
}

// Service applies Stripe payment intent events to quotes. Every status write
// is a conditional update, so redelivered or reordered events cannot move a
// quote backwards.
type Service struct {
	quotes   *quotes.Repository
	bookings bookings.Promoter
	outbox   outbox.Emitter
	txRunner txRunner
	metrics  *metrics.BookingMetrics
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Quotes == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "quotes repo required")
	}
	if params.Bookings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "booking promoter required")
	}
	if params.Outbox == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "outbox emitter required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{
		quotes:   params.Quotes,
		bookings: params.Bookings,
		outbox:   params.Outbox,
		txRunner: params.TransactionRunner,
		metrics:  params.Metrics,
		logg:     logg,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// HandleEvent processes a verified event. A nil error means the event can be
// acknowledged, including ignored and duplicate deliveries.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"stripe_event_id":   event.ID,
		"stripe_event_type": string(event.Type),
	})

	var (
		outcome string
		err     error
	)
	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		outcome, err = s.handleIntent(ctx, event, nil)
	case stripe.EventTypePaymentIntentPaymentFailed:
		failed := enums.PaymentStatusFailed
		outcome, err = s.handleIntent(ctx, event, &failed)
	case stripe.EventTypePaymentIntentCanceled:
		canceled := enums.PaymentStatusCanceled
		outcome, err = s.handleIntent(ctx, event, &canceled)
	default:
		s.logg.Info(ctx, "stripe event type ignored")
		outcome = metrics.OutcomeIgnored
	}
	if err != nil {
		outcome = metrics.OutcomeError
	}
	s.metrics.IncWebhookEvent(string(event.Type), outcome)
	return err
}

// handleIntent moves the quote named in the intent metadata. A nil target
// means "the status a successful payment of this type settles to".
func (s *Service) handleIntent(ctx context.Context, event *stripe.Event, target *enums.PaymentStatus) (string, error) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "undecodable payment intent payload")
		return metrics.OutcomeIgnored, nil
	}
	ctx = s.logg.WithField(ctx, "payment_intent_id", intent.ID)

	quoteID, err := uuid.Parse(strings.TrimSpace(intent.Metadata[payments.MetadataQuoteID]))
	if err != nil {
		s.logg.Warn(ctx, "payment intent has no usable quote id")
		return metrics.OutcomeIgnored, nil
	}
	ctx = s.logg.WithQuoteID(ctx, quoteID.String())

	paymentType, typeErr := enums.ParsePaymentType(strings.TrimSpace(intent.Metadata[payments.MetadataPaymentType]))
	if target == nil {
		if typeErr != nil {
			s.logg.Warn(ctx, "payment intent has no usable payment type")
			return metrics.OutcomeIgnored, nil
		}
		settled := paymentType.SettledStatus()
		target = &settled
	}

	var (
		outcome   = metrics.OutcomeIgnored
		confirmed bool
	)
	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.quotes.WithTx(tx)
		quote, err := repo.FindByID(ctx, quoteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUnknownQuote
			}
			return err
		}
		from := quote.PaymentStatus

		at := s.now()
		applied, err := repo.TransitionPaymentStatus(ctx, quoteID, *target, intent.ID, at)
		if err != nil {
			return err
		}

		if !applied {
			current, err := repo.FindByID(ctx, quoteID)
			if err != nil {
				return err
			}
			if current.PaymentStatus == nil || *current.PaymentStatus != *target {
				logCtx := s.logg.WithField(ctx, "target_status", *target)
				if current.PaymentStatus != nil {
					logCtx = s.logg.WithField(logCtx, "current_status", *current.PaymentStatus)
				}
				s.logg.Warn(logCtx, "payment status transition not allowed")
				return nil
			}
			outcome = metrics.OutcomeDuplicate
			if *target == enums.PaymentStatusPaid {
				confirmed, err = s.promote(ctx, tx, current, intent.ID)
				return err
			}
			return nil
		}

		outcome = metrics.OutcomeApplied
		change := outbox.DomainEvent{
			EventType:     enums.EventPaymentStatusChanged,
			AggregateType: enums.AggregateWeddingQuote,
			AggregateID:   quoteID,
			OccurredAt:    at,
			Data: payloads.PaymentStatusChangedEvent{
				QuoteID:         quoteID,
				UserID:          quote.UserID,
				From:            from,
				To:              *target,
				PaymentType:     paymentTypeOrEmpty(paymentType, typeErr),
				PaymentIntentID: intent.ID,
				AmountCents:     intent.Amount,
				StripeEventID:   event.ID,
			},
		}
		if err := s.outbox.Emit(ctx, tx, change); err != nil {
			return err
		}
		if *target != enums.PaymentStatusPaid {
			return nil
		}

		quote.PaymentStatus = target
		confirmed, err = s.promote(ctx, tx, quote, intent.ID)
		return err
	})
	if errors.Is(err, errUnknownQuote) {
		s.logg.Warn(ctx, "payment intent references unknown quote")
		return metrics.OutcomeIgnored, nil
	}
	if err != nil {
		s.logg.Error(ctx, "apply payment intent event", err)
		return metrics.OutcomeError, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "apply payment event")
	}

	if confirmed {
		s.metrics.IncEventConfirmed()
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"target_status": *target,
		"outcome":       outcome,
	}), "payment intent event handled")
	return outcome, nil
}

// promote ensures the wedding event exists for a paid quote and emits the
// confirmation the first time it is created.
func (s *Service) promote(ctx context.Context, tx *gorm.DB, quote *models.WeddingQuote, intentID string) (bool, error) {
	event, created, err := s.bookings.Promote(ctx, tx, quote, intentID)
	if err != nil || !created {
		return false, err
	}
	confirmed := outbox.DomainEvent{
		EventType:     enums.EventWeddingEventConfirmed,
		AggregateType: enums.AggregateWeddingEvent,
		AggregateID:   event.ID,
		Data: payloads.WeddingEventConfirmedEvent{
			EventID:         event.ID,
			QuoteID:         quote.ID,
			UserID:          quote.UserID,
			EventDate:       event.EventDate.Format("2006-01-02"),
			EventTime:       event.EventTime,
			TotalPriceCents: event.TotalPriceCents,
			ConfirmedAt:     event.CreatedAt,
		},
	}
	if err := s.outbox.Emit(ctx, tx, confirmed); err != nil {
		return false, err
	}
	return true, nil
}

func paymentTypeOrEmpty(paymentType enums.PaymentType, err error) enums.PaymentType {
	if err != nil {
		return ""
	}
	return paymentType
}

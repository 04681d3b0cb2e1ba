package webhooks

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/framehouse-studio/booking-backend/api/responses"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/framehouse-studio/booking-backend/pkg/logger"
	"github.com/stripe/stripe-go/v84"
)

// maxStripePayload bounds the webhook body. Payment intent events are a few KiB.
const maxStripePayload = 64 << 10

type StripeWebhookService interface {
	HandleEvent(ctx context.Context, event *stripe.Event) error
}

type StripeEventGuard interface {
	Claim(ctx context.Context, eventID string) (bool, error)
	Release(ctx context.Context, eventID string) error
}

type StripeVerifier interface {
	VerifyEvent(payload []byte, signature string) (stripe.Event, error)
}

// StripeWebhook verifies and dispatches Stripe payment intent events. Anything
// that verifies is acknowledged with 200 unless processing fails, in which case
// the event id is released and a 500 lets Stripe redeliver.
func StripeWebhook(svc StripeWebhookService, verifier StripeVerifier, guard StripeEventGuard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil || verifier == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}

		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxStripePayload))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "payload too large"))
				return
			}
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body"))
			return
		}

		sigHeader := r.Header.Get("Stripe-Signature")
		if sigHeader == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeWebhookSignature, "stripe signature missing"))
			return
		}

		event, err := verifier.VerifyEvent(payload, sigHeader)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeWebhookSignature, err, "verify signature"))
			return
		}

		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"stripe_event_id":   event.ID,
				"stripe_event_type": string(event.Type),
			})
		}

		if guard != nil {
			duplicate, err := guard.Claim(ctx, event.ID)
			if err != nil {
				// Processing stays correct without the guard; the status
				// updates are conditional.
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "stripe.webhook.guard_unavailable")
				}
			} else if duplicate {
				if logg != nil {
					logg.Info(ctx, "stripe.webhook.duplicate_delivery")
				}
				responses.WriteAck(w)
				return
			}
		}

		if err := svc.HandleEvent(ctx, &event); err != nil {
			if guard != nil {
				if relErr := guard.Release(ctx, event.ID); relErr != nil && logg != nil {
					logg.Error(ctx, "stripe.webhook.release_failed", relErr)
				}
			}
			if pkgerrors.As(err) == nil {
				err = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "process stripe event")
			}
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteAck(w)
	}
}

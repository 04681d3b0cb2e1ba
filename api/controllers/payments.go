package controllers

import (
	"net/http"

	"github.com/framehouse-studio/booking-backend/api/responses"
	"github.com/framehouse-studio/booking-backend/api/validators"
	"github.com/framehouse-studio/booking-backend/internal/payments"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/framehouse-studio/booking-backend/pkg/logger"
)

type createIntentRequest struct {
	QuoteID     string `json:"quoteId" validate:"required"`
	PaymentType string `json:"paymentType" validate:"required"`
}

// CreatePaymentIntent opens a provider intent for a deposit or full payment.
func CreatePaymentIntent(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}
		actor, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body createIntentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.CreateIntent(r.Context(), actor, payments.IntentInput{
			QuoteID:     body.QuoteID,
			PaymentType: body.PaymentType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

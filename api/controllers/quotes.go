package controllers

import (
	"net/http"
	"strings"

	"github.com/framehouse-studio/booking-backend/api/responses"
	"github.com/framehouse-studio/booking-backend/api/validators"
	"github.com/framehouse-studio/booking-backend/internal/quotes"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/framehouse-studio/booking-backend/pkg/logger"
)

type quoteAddonRequest struct {
	AddonID string `json:"addonId"`
}

// createQuoteRequest is the public quote payload. Required fields are checked
// by the service so every missing field maps to the same validation error.
type createQuoteRequest struct {
	PackageID       string              `json:"packageId"`
	EventDate       string              `json:"eventDate"`
	EventTime       string              `json:"eventTime"`
	VenueID         string              `json:"venueId"`
	VenueName       string              `json:"venueName"`
	GuestCount      *int                `json:"guestCount"`
	SpecialRequests *string             `json:"specialRequests"`
	Addons          []quoteAddonRequest `json:"addons" validate:"max=50"`
}

func (c createQuoteRequest) toInput() quotes.CreateInput {
	ids := make([]string, 0, len(c.Addons))
	for _, a := range c.Addons {
		ids = append(ids, a.AddonID)
	}
	return quotes.CreateInput{
		PackageID:       c.PackageID,
		EventDate:       c.EventDate,
		EventTime:       c.EventTime,
		VenueID:         c.VenueID,
		VenueName:       c.VenueName,
		GuestCount:      c.GuestCount,
		SpecialRequests: c.SpecialRequests,
		AddonIDs:        ids,
	}
}

type decisionRequest struct {
	Decision string  `json:"decision" validate:"required"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

func quotesUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
}

// CreateQuote prices and stores a quote for the caller.
func CreateQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			quotesUnavailable(w, r, logg)
			return
		}
		actor, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body createQuoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.Create(r.Context(), actor, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// ListQuotes lists the caller's quotes, or every quote for admins.
func ListQuotes(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			quotesUnavailable(w, r, logg)
			return
		}
		actor, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q := r.URL.Query()
		page, err := svc.List(r.Context(), actor, quotes.ListInput{
			Status:        strings.TrimSpace(q.Get("status")),
			PaymentStatus: strings.TrimSpace(q.Get("paymentStatus")),
		}, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func GetQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			quotesUnavailable(w, r, logg)
			return
		}
		actor, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := uuidParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// AdminDecideQuote approves or rejects a pending quote.
func AdminDecideQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			quotesUnavailable(w, r, logg)
			return
		}
		actor, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := uuidParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body decisionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.Decide(r.Context(), actor, id, quotes.DecisionInput{Decision: body.Decision, Notes: body.Notes})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

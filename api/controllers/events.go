package controllers

import (
	"net/http"
	"strings"

	"github.com/framehouse-studio/booking-backend/api/responses"
	"github.com/framehouse-studio/booking-backend/api/validators"
	"github.com/framehouse-studio/booking-backend/internal/bookings"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/framehouse-studio/booking-backend/pkg/logger"
)

func bookingsUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
}

// ListMyEvents returns the caller's confirmed wedding events.
func ListMyEvents(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			bookingsUnavailable(w, r, logg)
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
		page, err := svc.ListForUser(r.Context(), actor, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func AdminListEvents(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			bookingsUnavailable(w, r, logg)
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
		page, err := svc.ListAll(r.Context(), actor, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// CalendarAvailability reports open start times on a day for a package.
func CalendarAvailability(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			bookingsUnavailable(w, r, logg)
			return
		}
		q := r.URL.Query()
		result, err := svc.Availability(r.Context(), strings.TrimSpace(q.Get("date")), strings.TrimSpace(q.Get("packageId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

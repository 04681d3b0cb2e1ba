package controllers

import (
	"net/http"
	"strings"

	"github.com/framehouse-studio/booking-backend/api/responses"
	"github.com/framehouse-studio/booking-backend/api/validators"
	"github.com/framehouse-studio/booking-backend/internal/catalog"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/framehouse-studio/booking-backend/pkg/logger"
)

const maxSearchLength = 100

func catalogUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
}

// ListPackages returns wedding packages ordered for display.
func ListPackages(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(w, r, logg)
			return
		}
		activeOnly, err := validators.ParseQueryBool(r, "active", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.ListPackages(r.Context(), activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func ListAddons(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(w, r, logg)
			return
		}
		activeOnly, err := validators.ParseQueryBool(r, "active", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter := catalog.AddonFilter{ActiveOnly: activeOnly}
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseAddonCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			filter.Category = &category
		}
		items, err := svc.ListAddons(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func ListVenues(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(w, r, logg)
			return
		}
		activeOnly, err := validators.ParseQueryBool(r, "active", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q := r.URL.Query()
		items, err := svc.ListVenues(r.Context(), catalog.VenueFilter{
			Search:     validators.SanitizeString(q.Get("search"), maxSearchLength),
			City:       validators.SanitizeString(q.Get("city"), maxSearchLength),
			State:      validators.SanitizeString(q.Get("state"), maxSearchLength),
			ActiveOnly: activeOnly,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

type packageRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Description   string   `json:"description" validate:"max=5000"`
	PriceCents    int64    `json:"price_cents" validate:"gte=0"`
	DurationHours int      `json:"duration_hours" validate:"gte=1,max=24"`
	Features      []string `json:"features"`
	SortOrder     int      `json:"sort_order"`
}

type packagePatchRequest struct {
	Name          *string   `json:"name" validate:"omitempty,max=200"`
	Description   *string   `json:"description" validate:"omitempty,max=5000"`
	PriceCents    *int64    `json:"price_cents" validate:"omitempty,gte=0"`
	DurationHours *int      `json:"duration_hours" validate:"omitempty,gte=1,max=24"`
	Features      *[]string `json:"features"`
	IsActive      *bool     `json:"is_active"`
	SortOrder     *int      `json:"sort_order"`
}

func AdminCreatePackage(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(w, r, logg)
			return
		}
		var body packageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreatePackage(r.Context(), catalog.PackageInput{
			Name:          body.Name,
			Description:   body.Description,
			PriceCents:    body.PriceCents,
			DurationHours: body.DurationHours,
			Features:      body.Features,
			SortOrder:     body.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUpdatePackage(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(w, r, logg)
			return
		}
		id, err := uuidParam(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body packagePatchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdatePackage(r.Context(), id, catalog.PackagePatch{
			Name:          body.Name,
			Description:   body.Description,
			PriceCents:    body.PriceCents,
			DurationHours: body.DurationHours,
			Features:      body.Features,
			IsActive:      body.IsActive,
			SortOrder:     body.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

type addonRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	Category    string `json:"category" validate:"required"`
	SortOrder   int    `json:"sort_order"`
}

type addonPatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	PriceCents  *int64  `json:"price_cents" validate:"omitempty,gte=0"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

func AdminCreateAddon(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(w, r, logg)
			return
		}
		var body addonRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := enums.ParseAddonCategory(body.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}
		created, err := svc.CreateAddon(r.Context(), catalog.AddonInput{
			Name:        body.Name,
			Description: body.Description,
			PriceCents:  body.PriceCents,
			Category:    category,
			SortOrder:   body.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUpdateAddon(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(w, r, logg)
			return
		}
		id, err := uuidParam(r, "addonId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body addonPatchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		patch := catalog.AddonPatch{
			Name:        body.Name,
			Description: body.Description,
			PriceCents:  body.PriceCents,
			IsActive:    body.IsActive,
			SortOrder:   body.SortOrder,
		}
		if body.Category != nil {
			category, err := enums.ParseAddonCategory(*body.Category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			patch.Category = &category
		}
		updated, err := svc.UpdateAddon(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

type venueRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Address     string  `json:"address" validate:"required,max=300"`
	City        string  `json:"city" validate:"required,max=100"`
	State       string  `json:"state" validate:"required,max=100"`
	ZipCode     string  `json:"zip_code" validate:"max=20"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=0"`
	Phone       *string `json:"phone" validate:"omitempty,max=40"`
	Website     *string `json:"website" validate:"omitempty,max=300"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

type venuePatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Address     *string `json:"address" validate:"omitempty,max=300"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	State       *string `json:"state" validate:"omitempty,max=100"`
	ZipCode     *string `json:"zip_code" validate:"omitempty,max=20"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=0"`
	Phone       *string `json:"phone" validate:"omitempty,max=40"`
	Website     *string `json:"website" validate:"omitempty,max=300"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	IsActive    *bool   `json:"is_active"`
}

func AdminCreateVenue(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(w, r, logg)
			return
		}
		var body venueRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateVenue(r.Context(), catalog.VenueInput{
			Name:        body.Name,
			Address:     body.Address,
			City:        body.City,
			State:       body.State,
			ZipCode:     body.ZipCode,
			Capacity:    body.Capacity,
			Phone:       body.Phone,
			Website:     body.Website,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUpdateVenue(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(w, r, logg)
			return
		}
		id, err := uuidParam(r, "venueId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body venuePatchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateVenue(r.Context(), id, catalog.VenuePatch{
			Name:        body.Name,
			Address:     body.Address,
			City:        body.City,
			State:       body.State,
			ZipCode:     body.ZipCode,
			Capacity:    body.Capacity,
			Phone:       body.Phone,
			Website:     body.Website,
			Description: body.Description,
			IsActive:    body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

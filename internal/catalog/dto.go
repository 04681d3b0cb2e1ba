package catalog

import (
	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/framehouse-studio/booking-backend/pkg/money"
	"github.com/google/uuid"
)

type PackageDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	PriceCents     int64     `json:"price_cents"`
	PriceFormatted string    `json:"price_formatted"`
	DurationHours  int       `json:"duration_hours"`
	Features       []string  `json:"features"`
	IsActive       bool      `json:"is_active"`
}

type AddonDTO struct {
	ID             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	PriceCents     int64               `json:"price_cents"`
	PriceFormatted string              `json:"price_formatted"`
	Category       enums.AddonCategory `json:"category"`
	IsActive       bool                `json:"is_active"`
}

type VenueDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ZipCode     string    `json:"zip_code"`
	FullAddress string    `json:"full_address"`
	Capacity    *int      `json:"capacity,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Website     *string   `json:"website,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
}

func PackageFromModel(p models.WeddingPackage) PackageDTO {
	features := []string(p.Features)
	if features == nil {
		features = []string{}
	}
	return PackageDTO{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		PriceCents:     p.PriceCents,
		PriceFormatted: money.Format(p.PriceCents),
		DurationHours:  p.DurationHours,
		Features:       features,
		IsActive:       p.IsActive,
	}
}

func AddonFromModel(a models.WeddingAddon) AddonDTO {
	return AddonDTO{
		ID:             a.ID,
		Name:           a.Name,
		Description:    a.Description,
		PriceCents:     a.PriceCents,
		PriceFormatted: money.Format(a.PriceCents),
		Category:       a.Category,
		IsActive:       a.IsActive,
	}
}

func VenueFromModel(v models.Venue) VenueDTO {
	return VenueDTO{
		ID:          v.ID,
		Name:        v.Name,
		Address:     v.Address,
		City:        v.City,
		State:       v.State,
		ZipCode:     v.ZipCode,
		FullAddress: v.Address + ", " + v.City + ", " + v.State + " " + v.ZipCode,
		Capacity:    v.Capacity,
		Phone:       v.Phone,
		Website:     v.Website,
		Description: v.Description,
		IsActive:    v.IsActive,
	}
}

func mapSlice[M any, D any](rows []M, fn func(M) D) []D {
	out := make([]D, 0, len(rows))
	for _, row := range rows {
		out = append(out, fn(row))
	}
	return out
}

package bookings

import (
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/framehouse-studio/booking-backend/pkg/money"
	"github.com/google/uuid"
)

type EventDTO struct {
	ID              uuid.UUID                `json:"id"`
	QuoteID         uuid.UUID                `json:"quote_id"`
	UserID          uuid.UUID                `json:"user_id"`
	PackageID       uuid.UUID                `json:"package_id"`
	PackageName     string                   `json:"package_name,omitempty"`
	VenueID         *uuid.UUID               `json:"venue_id,omitempty"`
	VenueName       string                   `json:"venue_name"`
	EventDate       string                   `json:"event_date"`
	EventTime       string                   `json:"event_time"`
	GuestCount      *int                     `json:"guest_count,omitempty"`
	SpecialRequests *string                  `json:"special_requests,omitempty"`
	TotalPriceCents int64                    `json:"total_price_cents"`
	TotalFormatted  string                   `json:"total_formatted"`
	Status          enums.WeddingEventStatus `json:"status"`
	PaymentIntentID string                   `json:"payment_intent_id"`
	CreatedAt       time.Time                `json:"created_at"`
}

func EventFromModel(e models.WeddingEvent) EventDTO {
	dto := EventDTO{
		ID:              e.ID,
		QuoteID:         e.QuoteID,
		UserID:          e.UserID,
		PackageID:       e.PackageID,
		VenueID:         e.VenueID,
		EventDate:       e.EventDate.Format(dateLayout),
		EventTime:       e.EventTime,
		GuestCount:      e.GuestCount,
		SpecialRequests: e.SpecialRequests,
		TotalPriceCents: e.TotalPriceCents,
		TotalFormatted:  money.Format(e.TotalPriceCents),
		Status:          e.Status,
		PaymentIntentID: e.PaymentIntentID,
		CreatedAt:       e.CreatedAt,
	}
	if e.Package != nil {
		dto.PackageName = e.Package.Name
	}
	switch {
	case e.VenueName != nil:
		dto.VenueName = *e.VenueName
	case e.Venue != nil:
		dto.VenueName = e.Venue.Name
	}
	return dto
}

// AvailabilityDTO lists the start times on a date and whether a package of
// the requested length fits at each one.
type AvailabilityDTO struct {
	Date           string        `json:"date"`
	PackageID      uuid.UUID     `json:"package_id"`
	DurationHours  int           `json:"duration_hours"`
	Slots          []SlotDTO     `json:"slots"`
	AvailableSlots []string      `json:"available_slots"`
	Conflicts      []ConflictDTO `json:"conflicts"`
}

type SlotDTO struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type ConflictDTO struct {
	EventID   uuid.UUID `json:"event_id"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

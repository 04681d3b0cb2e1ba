package quotes

import (
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/framehouse-studio/booking-backend/pkg/money"
	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// QuoteView is the shaped quote returned to customers and admins.
type QuoteView struct {
	ID               uuid.UUID            `json:"id"`
	UserID           uuid.UUID            `json:"user_id"`
	Customer         *CustomerView        `json:"customer,omitempty"`
	Package          PackageSummary       `json:"package"`
	Addons           []AddonLine          `json:"addons"`
	EventDate        string               `json:"event_date"`
	EventTime        string               `json:"event_time"`
	Venue            VenueView            `json:"venue"`
	GuestCount       *int                 `json:"guest_count,omitempty"`
	SpecialRequests  *string              `json:"special_requests,omitempty"`
	TotalPriceCents  int64                `json:"total_price_cents"`
	TotalFormatted   string               `json:"total_formatted"`
	DepositCents     int64                `json:"deposit_cents"`
	DepositFormatted string               `json:"deposit_formatted"`
	Status           enums.QuoteStatus    `json:"status"`
	PaymentStatus    *enums.PaymentStatus `json:"payment_status"`
	PaymentIntentID  *string              `json:"payment_intent_id,omitempty"`
	AdminNotes       *string              `json:"admin_notes,omitempty"`
	PaidAt           *time.Time           `json:"paid_at,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

type CustomerView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone *string   `json:"phone,omitempty"`
}

type PackageSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	PriceCents     int64     `json:"price_cents"`
	PriceFormatted string    `json:"price_formatted"`
	DurationHours  int       `json:"duration_hours,omitempty"`
}

type AddonLine struct {
	AddonID        uuid.UUID `json:"addon_id"`
	Name           string    `json:"name"`
	PriceCents     int64     `json:"price_cents"`
	PriceFormatted string    `json:"price_formatted"`
}

// VenueView renders a preset venue with its address, or a custom venue by
// name only.
type VenueView struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Name        string     `json:"name"`
	Custom      bool       `json:"custom"`
	FullAddress string     `json:"full_address,omitempty"`
}

// ViewFromModel shapes a stored quote. depositPercent controls the deposit
// preview shown alongside the total.
func ViewFromModel(q models.WeddingQuote, depositPercent int) QuoteView {
	view := QuoteView{
		ID:     q.ID,
		UserID: q.UserID,
		Package: PackageSummary{
			ID:             q.PackageID,
			Name:           q.PackageName,
			PriceCents:     q.PackagePriceCents,
			PriceFormatted: money.Format(q.PackagePriceCents),
		},
		Addons:          make([]AddonLine, 0, len(q.Addons)),
		EventDate:       q.EventDate.Format(dateLayout),
		EventTime:       q.EventTime,
		Venue:           venueView(q),
		GuestCount:      q.GuestCount,
		SpecialRequests: q.SpecialRequests,
		TotalPriceCents: q.TotalPriceCents,
		TotalFormatted:  money.Format(q.TotalPriceCents),
		Status:          q.Status,
		PaymentStatus:   q.PaymentStatus,
		PaymentIntentID: q.PaymentIntentID,
		AdminNotes:      q.AdminNotes,
		PaidAt:          q.PaidAt,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
		DepositCents:    money.Percentage(q.TotalPriceCents, depositPercent),
	}
	view.DepositFormatted = money.Format(view.DepositCents)
	if q.Package != nil {
		view.Package.DurationHours = q.Package.DurationHours
	}
	for _, addon := range q.Addons {
		view.Addons = append(view.Addons, AddonLine{
			AddonID:        addon.AddonID,
			Name:           addon.AddonName,
			PriceCents:     addon.PriceAtSelectionCents,
			PriceFormatted: money.Format(addon.PriceAtSelectionCents),
		})
	}
	return view
}

func venueView(q models.WeddingQuote) VenueView {
	venue, ok := VenueFromColumns(q.VenueID, q.VenueName)
	if !ok {
		return VenueView{}
	}
	if name, custom := venue.CustomName(); custom {
		return VenueView{Name: name, Custom: true}
	}
	id, _ := venue.PresetID()
	view := VenueView{ID: &id}
	if q.Venue != nil {
		view.Name = q.Venue.Name
		view.FullAddress = q.Venue.Address + ", " + q.Venue.City + ", " + q.Venue.State + " " + q.Venue.ZipCode
	}
	return view
}

func customerView(u models.User) *CustomerView {
	return &CustomerView{
		ID:    u.ID,
		Name:  u.FullName(),
		Email: u.Email,
		Phone: u.Phone,
	}
}

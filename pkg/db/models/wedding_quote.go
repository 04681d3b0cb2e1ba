package models

import (
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeddingQuote is a priced booking request. PackagePriceCents and
// TotalPriceCents are frozen when the quote is created.
type WeddingQuote struct {
	ID                uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	UserID            uuid.UUID            `gorm:"column:user_id;type:uuid;not null"`
	PackageID         uuid.UUID            `gorm:"column:package_id;type:uuid;not null"`
	PackageName       string               `gorm:"column:package_name;not null"`
	PackagePriceCents int64                `gorm:"column:package_price_cents;not null"`
	EventDate         time.Time            `gorm:"column:event_date;type:date;not null"`
	EventTime         string               `gorm:"column:event_time;not null"`
	VenueID           *uuid.UUID           `gorm:"column:venue_id;type:uuid"`
	VenueName         *string              `gorm:"column:venue_name"`
	GuestCount        *int                 `gorm:"column:guest_count"`
	SpecialRequests   *string              `gorm:"column:special_requests"`
	TotalPriceCents   int64                `gorm:"column:total_price_cents;not null"`
	Status            enums.QuoteStatus    `gorm:"column:status;type:text;not null"`
	PaymentStatus     *enums.PaymentStatus `gorm:"column:payment_status;type:text"`
	PaymentIntentID   *string              `gorm:"column:payment_intent_id"`
	AdminNotes        *string              `gorm:"column:admin_notes"`
	PaidAt            *time.Time           `gorm:"column:paid_at"`
	CreatedAt         time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	Addons  []QuoteAddon    `gorm:"foreignKey:QuoteID;references:ID"`
	Package *WeddingPackage `gorm:"foreignKey:PackageID;references:ID"`
	Venue   *Venue          `gorm:"foreignKey:VenueID;references:ID"`
}

func (WeddingQuote) TableName() string { return "wedding_quotes" }

func (q *WeddingQuote) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// QuoteAddon is an add-on selection with its price captured at quote time.
type QuoteAddon struct {
	ID                    uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	QuoteID               uuid.UUID `gorm:"column:quote_id;type:uuid;not null"`
	AddonID               uuid.UUID `gorm:"column:addon_id;type:uuid;not null"`
	AddonName             string    `gorm:"column:addon_name;not null"`
	PriceAtSelectionCents int64     `gorm:"column:price_at_selection_cents;not null"`
	Position              int       `gorm:"column:position;not null"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (QuoteAddon) TableName() string { return "quote_addons" }

func (a *QuoteAddon) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

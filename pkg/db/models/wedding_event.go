package models

import (
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeddingEvent is a confirmed booking derived from a fully paid quote. At most
// one exists per quote.
type WeddingEvent struct {
	ID              uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	QuoteID         uuid.UUID                `gorm:"column:quote_id;type:uuid;not null;uniqueIndex"`
	UserID          uuid.UUID                `gorm:"column:user_id;type:uuid;not null"`
	PackageID       uuid.UUID                `gorm:"column:package_id;type:uuid;not null"`
	VenueID         *uuid.UUID               `gorm:"column:venue_id;type:uuid"`
	VenueName       *string                  `gorm:"column:venue_name"`
	EventDate       time.Time                `gorm:"column:event_date;type:date;not null"`
	EventTime       string                   `gorm:"column:event_time;not null"`
	GuestCount      *int                     `gorm:"column:guest_count"`
	SpecialRequests *string                  `gorm:"column:special_requests"`
	TotalPriceCents int64                    `gorm:"column:total_price_cents;not null"`
	Status          enums.WeddingEventStatus `gorm:"column:status;type:text;not null"`
	PaymentIntentID string                   `gorm:"column:payment_intent_id;not null"`
	CreatedAt       time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                `gorm:"column:updated_at;autoUpdateTime"`

	Package *WeddingPackage `gorm:"foreignKey:PackageID;references:ID"`
	Venue   *Venue          `gorm:"foreignKey:VenueID;references:ID"`
}

func (WeddingEvent) TableName() string { return "wedding_events" }

func (e *WeddingEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

package payloads

import (
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/google/uuid"
)

// QuoteCreatedEvent lets the studio follow up on a new inquiry.
type QuoteCreatedEvent struct {
	QuoteID         uuid.UUID `json:"quoteId"`
	UserID          uuid.UUID `json:"userId"`
	PackageID       uuid.UUID `json:"packageId"`
	PackageName     string    `json:"packageName"`
	EventDate       string    `json:"eventDate"`
	EventTime       string    `json:"eventTime"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	AddonCount      int       `json:"addonCount"`
}

// QuoteDecidedEvent is emitted when an admin approves or rejects a quote.
type QuoteDecidedEvent struct {
	QuoteID   uuid.UUID         `json:"quoteId"`
	UserID    uuid.UUID         `json:"userId"`
	Decision  string            `json:"decision"`
	Status    enums.QuoteStatus `json:"status"`
	Notes     *string           `json:"notes,omitempty"`
	DecidedBy uuid.UUID         `json:"decidedBy"`
}

// PaymentStatusChangedEvent records an applied payment transition.
type PaymentStatusChangedEvent struct {
	QuoteID         uuid.UUID            `json:"quoteId"`
	UserID          uuid.UUID            `json:"userId"`
	From            *enums.PaymentStatus `json:"from,omitempty"`
	To              enums.PaymentStatus  `json:"to"`
	PaymentType     enums.PaymentType    `json:"paymentType,omitempty"`
	PaymentIntentID string               `json:"paymentIntentId"`
	AmountCents     int64                `json:"amountCents"`
	StripeEventID   string               `json:"stripeEventId"`
}

// WeddingEventConfirmedEvent is emitted once per quote when it becomes a booking.
type WeddingEventConfirmedEvent struct {
	EventID         uuid.UUID `json:"eventId"`
	QuoteID         uuid.UUID `json:"quoteId"`
	UserID          uuid.UUID `json:"userId"`
	EventDate       string    `json:"eventDate"`
	EventTime       string    `json:"eventTime"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	ConfirmedAt     time.Time `json:"confirmedAt"`
}

package bookings

import (
	"context"
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/framehouse-studio/booking-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists confirmed wedding events.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) FindByQuoteID(ctx context.Context, quoteID uuid.UUID) (*models.WeddingEvent, error) {
	var event models.WeddingEvent
	if err := r.db.WithContext(ctx).Where("quote_id = ?", quoteID).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateIfAbsent inserts event unless one already exists for its quote. It
// reports whether a row was written.
func (r *Repository) CreateIfAbsent(ctx context.Context, event *models.WeddingEvent) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit("Package", "Venue").
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "quote_id"}}, DoNothing: true}).
		Create(event)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// List returns events newest first. A nil userID lists every customer.
func (r *Repository) List(ctx context.Context, userID *uuid.UUID, params pagination.Params) (*pagination.Page[models.WeddingEvent], error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).Model(&models.WeddingEvent{}).Preload("Package").Preload("Venue")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if cursor != nil {
		q = q.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}
	var rows []models.WeddingEvent
	if err := q.Order("created_at DESC").Order("id DESC").Limit(pagination.LimitWithBuffer(params.Limit)).Find(&rows).Error; err != nil {
		return nil, err
	}
	page := pagination.Trim(rows, params.Limit, func(e models.WeddingEvent) pagination.Cursor {
		return pagination.Cursor{CreatedAt: e.CreatedAt, ID: e.ID}
	})
	return &page, nil
}

// BookedSlot is a confirmed event occupying part of a day.
type BookedSlot struct {
	ID            uuid.UUID
	EventTime     string
	DurationHours int
}

// ConfirmedOn returns the confirmed events held on day with the coverage
// length of their package.
func (r *Repository) ConfirmedOn(ctx context.Context, day time.Time) ([]BookedSlot, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	var rows []BookedSlot
	err := r.db.WithContext(ctx).
		Table("wedding_events AS e").
		Select("e.id AS id, e.event_time AS event_time, COALESCE(p.duration_hours, 0) AS duration_hours").
		Joins("LEFT JOIN wedding_packages p ON p.id = e.package_id").
		Where("e.status = ?", enums.WeddingEventStatusConfirmed).
		Where("e.event_date >= ? AND e.event_date < ?", start, start.AddDate(0, 0, 1)).
		Order("e.event_time ASC").
		Scan(&rows).Error
	return rows, err
}

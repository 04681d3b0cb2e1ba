package quotes

import (
	"context"
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/framehouse-studio/booking-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter narrows quote listings. A nil UserID lists every customer.
type ListFilter struct {
	UserID        *uuid.UUID
	Status        *enums.QuoteStatus
	PaymentStatus *enums.PaymentStatus
}

// Repository persists wedding quotes and their add-on snapshots.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a quotes repo bound to the provided GORM DB.
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

// Create inserts the quote together with its Addons rows.
func (r *Repository) Create(ctx context.Context, quote *models.WeddingQuote) error {
	return r.db.WithContext(ctx).Omit("Package", "Venue").Create(quote).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.WeddingQuote, error) {
	var quote models.WeddingQuote
	err := r.withDetails(r.db.WithContext(ctx)).First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// List returns one page of quotes, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) (*pagination.Page[models.WeddingQuote], error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	q := r.withDetails(r.db.WithContext(ctx).Model(&models.WeddingQuote{}))
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.PaymentStatus != nil {
		q = q.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if cursor != nil {
		q = q.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.WeddingQuote
	if err := q.Order("created_at DESC").Order("id DESC").Limit(pagination.LimitWithBuffer(params.Limit)).Find(&rows).Error; err != nil {
		return nil, err
	}
	page := pagination.Trim(rows, params.Limit, func(q models.WeddingQuote) pagination.Cursor {
		return pagination.Cursor{CreatedAt: q.CreatedAt, ID: q.ID}
	})
	return &page, nil
}

// SetPaymentIntent records the most recent intent created for the quote.
func (r *Repository) SetPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error {
	return r.db.WithContext(ctx).
		Model(&models.WeddingQuote{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payment_intent_id": intentID,
			"updated_at":        time.Now().UTC(),
		}).Error
}

// TransitionPaymentStatus moves the quote to target only when its current
// payment status is one of the allowed sources. It reports whether the row
// changed; concurrent deliveries race on this single UPDATE.
func (r *Repository) TransitionPaymentStatus(ctx context.Context, id uuid.UUID, target enums.PaymentStatus, intentID string, at time.Time) (bool, error) {
	allowNull := false
	var sources []enums.PaymentStatus
	for _, src := range enums.PaymentStatusSources(target) {
		if src == "" {
			allowNull = true
			continue
		}
		sources = append(sources, src)
	}

	q := r.db.WithContext(ctx).Model(&models.WeddingQuote{}).Where("id = ?", id)
	switch {
	case allowNull && len(sources) > 0:
		q = q.Where("(payment_status IS NULL OR payment_status IN ?)", sources)
	case allowNull:
		q = q.Where("payment_status IS NULL")
	case len(sources) > 0:
		q = q.Where("payment_status IN ?", sources)
	default:
		return false, nil
	}

	updates := map[string]any{
		"payment_status": target,
		"updated_at":     at,
	}
	if intentID != "" {
		updates["payment_intent_id"] = intentID
	}
	if target == enums.PaymentStatusDepositPaid || target == enums.PaymentStatusPaid {
		updates["paid_at"] = at
	}
	res := q.Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// UpdateStatus applies an admin decision when the quote still holds from.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.QuoteStatus, notes *string) (bool, error) {
	updates := map[string]any{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if notes != nil {
		updates["admin_notes"] = *notes
	}
	res := r.db.WithContext(ctx).
		Model(&models.WeddingQuote{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *Repository) withDetails(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Addons", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Package").
		Preload("Venue")
}

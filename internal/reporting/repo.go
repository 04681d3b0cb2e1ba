package reporting

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const (
	overviewSQL = `
SELECT
  COUNT(*) AS total_quotes,
  COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0) AS approved_quotes,
  COALESCE(SUM(CASE WHEN status = 'approved' THEN total_price_cents ELSE 0 END), 0) AS approved_revenue_cents
FROM wedding_quotes
WHERE created_at >= ? AND created_at < ?
`

	packagesSQL = `
SELECT package_name AS label, COUNT(*) AS count, COALESCE(SUM(total_price_cents), 0) AS revenue_cents
FROM wedding_quotes
WHERE created_at >= ? AND created_at < ?
GROUP BY package_id, package_name
ORDER BY count DESC, label ASC
`

	addonsSQL = `
SELECT qa.addon_name AS label, COUNT(*) AS count, COALESCE(SUM(qa.price_at_selection_cents), 0) AS revenue_cents
FROM quote_addons qa
JOIN wedding_quotes q ON q.id = qa.quote_id
WHERE q.created_at >= ? AND q.created_at < ?
GROUP BY qa.addon_id, qa.addon_name
ORDER BY count DESC, label ASC
`

	venuesSQL = `
SELECT
  CASE WHEN q.venue_id IS NULL THEN 'Custom' ELSE COALESCE(v.name, 'Unknown venue') END AS label,
  COUNT(*) AS count,
  COALESCE(SUM(q.total_price_cents), 0) AS revenue_cents
FROM wedding_quotes q
LEFT JOIN venues v ON v.id = q.venue_id
WHERE q.created_at >= ? AND q.created_at < ?
GROUP BY label
ORDER BY count DESC, label ASC
`

	paymentStatusSQL = `
SELECT COALESCE(payment_status, 'unpaid') AS label, COUNT(*) AS count, COALESCE(SUM(total_price_cents), 0) AS revenue_cents
FROM wedding_quotes
WHERE created_at >= ? AND created_at < ?
GROUP BY label
ORDER BY label ASC
`

	dailyTrendSQL = `
SELECT %s AS day,
  COUNT(*) AS quotes,
  COALESCE(SUM(CASE WHEN status = 'approved' THEN total_price_cents ELSE 0 END), 0) AS revenue_cents
FROM wedding_quotes
WHERE created_at >= ? AND created_at < ?
GROUP BY day
ORDER BY day ASC
`
)

type overviewRow struct {
	TotalQuotes          int64
	ApprovedQuotes       int64
	ApprovedRevenueCents int64
}

type breakdownRow struct {
	Label        string
	Count        int64
	RevenueCents int64
}

// Repository runs read-only aggregations over quotes.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Overview(ctx context.Context, rng Range) (overviewRow, error) {
	var row overviewRow
	err := r.db.WithContext(ctx).Raw(overviewSQL, rng.Start, rng.End).Scan(&row).Error
	return row, err
}

func (r *Repository) Packages(ctx context.Context, rng Range) ([]breakdownRow, error) {
	return r.breakdown(ctx, packagesSQL, rng)
}

func (r *Repository) Addons(ctx context.Context, rng Range) ([]breakdownRow, error) {
	return r.breakdown(ctx, addonsSQL, rng)
}

func (r *Repository) Venues(ctx context.Context, rng Range) ([]breakdownRow, error) {
	return r.breakdown(ctx, venuesSQL, rng)
}

func (r *Repository) PaymentStatuses(ctx context.Context, rng Range) ([]breakdownRow, error) {
	return r.breakdown(ctx, paymentStatusSQL, rng)
}

func (r *Repository) DailyTrend(ctx context.Context, rng Range) ([]DailyPoint, error) {
	var rows []DailyPoint
	query := fmt.Sprintf(dailyTrendSQL, r.dayExpr())
	err := r.db.WithContext(ctx).Raw(query, rng.Start, rng.End).Scan(&rows).Error
	return rows, err
}

func (r *Repository) breakdown(ctx context.Context, query string, rng Range) ([]breakdownRow, error) {
	var rows []breakdownRow
	err := r.db.WithContext(ctx).Raw(query, rng.Start, rng.End).Scan(&rows).Error
	return rows, err
}

// dayExpr renders created_at as YYYY-MM-DD in the connected dialect.
func (r *Repository) dayExpr() string {
	if r.db.Dialector != nil && r.db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m-%d', created_at)"
	}
	return "to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
}

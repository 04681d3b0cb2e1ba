package reporting

import "time"

// Range bounds a dashboard query. End is exclusive.
type Range struct {
	Start time.Time
	End   time.Time
}

type Overview struct {
	TotalQuotes           int64   `json:"total_quotes"`
	ApprovedQuotes        int64   `json:"approved_quotes"`
	ConversionRate        float64 `json:"conversion_rate"`
	ApprovedRevenueCents  int64   `json:"approved_revenue_cents"`
	ApprovedRevenue       string  `json:"approved_revenue"`
	AverageApprovedCents  int64   `json:"average_approved_cents"`
	AverageApprovedAmount string  `json:"average_approved"`
}

// Breakdown is one grouped row: a package, add-on, venue or payment status.
type Breakdown struct {
	Label        string `json:"label"`
	Count        int64  `json:"count"`
	RevenueCents int64  `json:"revenue_cents"`
	Revenue      string `json:"revenue"`
}

type DailyPoint struct {
	Date         string `json:"date" gorm:"column:day"`
	Quotes       int64  `json:"quotes"`
	RevenueCents int64  `json:"revenue_cents"`
}

type Dashboard struct {
	StartDate      string       `json:"start_date"`
	EndDate        string       `json:"end_date"`
	Overview       Overview     `json:"overview"`
	Packages       []Breakdown  `json:"packages"`
	Addons         []Breakdown  `json:"addons"`
	Venues         []Breakdown  `json:"venues"`
	PaymentStatus  []Breakdown  `json:"payment_status"`
	DailyTrend     []DailyPoint `json:"daily_trend"`
	GeneratedAtUTC time.Time    `json:"generated_at"`
}

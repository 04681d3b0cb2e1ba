package reporting

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/auth"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/framehouse-studio/booking-backend/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	dateLayout       = "2006-01-02"
	defaultRangeDays = 30
	maxRangeDays     = 366
)

type reportRepository interface {
	Overview(ctx context.Context, rng Range) (overviewRow, error)
	Packages(ctx context.Context, rng Range) ([]breakdownRow, error)
	Addons(ctx context.Context, rng Range) ([]breakdownRow, error)
	Venues(ctx context.Context, rng Range) ([]breakdownRow, error)
	PaymentStatuses(ctx context.Context, rng Range) ([]breakdownRow, error)
	DailyTrend(ctx context.Context, rng Range) ([]DailyPoint, error)
}

// Service builds the admin dashboard from read-only aggregations.
type Service interface {
	Dashboard(ctx context.Context, actor auth.Actor, input DashboardInput) (*Dashboard, error)
}

// DashboardInput carries optional inclusive YYYY-MM-DD bounds.
type DashboardInput struct {
	StartDate string
	EndDate   string
}

type service struct {
	repo reportRepository
	now  func() time.Time
}

func NewService(repo reportRepository) (Service, error) {
	if repo == nil {
		return nil, errors.New("reporting repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) Dashboard(ctx context.Context, actor auth.Actor, input DashboardInput) (*Dashboard, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	rng, err := s.resolveRange(input)
	if err != nil {
		return nil, err
	}

	overview, err := s.repo.Overview(ctx, rng)
	if err != nil {
		return nil, dependency(err, "overview")
	}
	packages, err := s.repo.Packages(ctx, rng)
	if err != nil {
		return nil, dependency(err, "package breakdown")
	}
	addons, err := s.repo.Addons(ctx, rng)
	if err != nil {
		return nil, dependency(err, "addon breakdown")
	}
	venues, err := s.repo.Venues(ctx, rng)
	if err != nil {
		return nil, dependency(err, "venue breakdown")
	}
	statuses, err := s.repo.PaymentStatuses(ctx, rng)
	if err != nil {
		return nil, dependency(err, "payment status breakdown")
	}
	trend, err := s.repo.DailyTrend(ctx, rng)
	if err != nil {
		return nil, dependency(err, "daily trend")
	}
	if trend == nil {
		trend = []DailyPoint{}
	}

	return &Dashboard{
		StartDate:      rng.Start.Format(dateLayout),
		EndDate:        rng.End.AddDate(0, 0, -1).Format(dateLayout),
		Overview:       buildOverview(overview),
		Packages:       shape(packages),
		Addons:         shape(addons),
		Venues:         shape(venues),
		PaymentStatus:  shape(statuses),
		DailyTrend:     trend,
		GeneratedAtUTC: s.now(),
	}, nil
}

// resolveRange turns inclusive day bounds into a half-open UTC range. The
// default is the 30 days ending today.
func (s *service) resolveRange(input DashboardInput) (Range, error) {
	today := truncateDay(s.now())
	end := today
	if raw := strings.TrimSpace(input.EndDate); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Range{}, pkgerrors.New(pkgerrors.CodeValidation, "endDate must be YYYY-MM-DD")
		}
		end = parsed
	}
	start := end.AddDate(0, 0, -(defaultRangeDays - 1))
	if raw := strings.TrimSpace(input.StartDate); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Range{}, pkgerrors.New(pkgerrors.CodeValidation, "startDate must be YYYY-MM-DD")
		}
		start = parsed
	}
	if start.After(end) {
		return Range{}, pkgerrors.New(pkgerrors.CodeValidation, "startDate must not be after endDate")
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return Range{}, pkgerrors.New(pkgerrors.CodeValidation, "date range is too long")
	}
	return Range{Start: start, End: end.AddDate(0, 0, 1)}, nil
}

func buildOverview(row overviewRow) Overview {
	out := Overview{
		TotalQuotes:          row.TotalQuotes,
		ApprovedQuotes:       row.ApprovedQuotes,
		ApprovedRevenueCents: row.ApprovedRevenueCents,
	}
	if row.TotalQuotes > 0 {
		rate := decimal.NewFromInt(row.ApprovedQuotes).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(row.TotalQuotes)).
			Round(1)
		out.ConversionRate = rate.InexactFloat64()
	}
	if row.ApprovedQuotes > 0 {
		out.AverageApprovedCents = decimal.NewFromInt(row.ApprovedRevenueCents).
			Div(decimal.NewFromInt(row.ApprovedQuotes)).
			Round(0).
			IntPart()
	}
	out.ApprovedRevenue = money.Format(out.ApprovedRevenueCents)
	out.AverageApprovedAmount = money.Format(out.AverageApprovedCents)
	return out
}

func shape(rows []breakdownRow) []Breakdown {
	out := make([]Breakdown, 0, len(rows))
	for _, r := range rows {
		out = append(out, Breakdown{
			Label:        r.Label,
			Count:        r.Count,
			RevenueCents: r.RevenueCents,
			Revenue:      money.Format(r.RevenueCents),
		})
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dependency(err error, what string) error {
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+what)
}

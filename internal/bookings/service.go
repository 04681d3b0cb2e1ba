package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/auth"
	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/framehouse-studio/booking-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	defaultSlotStartHour = 10
	defaultSlotEndHour   = 18
)

type packageLookup interface {
	GetPackage(ctx context.Context, id uuid.UUID) (*models.WeddingPackage, error)
}

// Promoter turns a fully paid quote into a confirmed wedding event.
type Promoter interface {
	Promote(ctx context.Context, tx *gorm.DB, quote *models.WeddingQuote, intentID string) (*models.WeddingEvent, bool, error)
}

// Service manages confirmed wedding events and the booking calendar.
type Service interface {
	Promoter
	ListForUser(ctx context.Context, actor auth.Actor, params pagination.Params) (*pagination.Page[EventDTO], error)
	ListAll(ctx context.Context, actor auth.Actor, params pagination.Params) (*pagination.Page[EventDTO], error)
	Availability(ctx context.Context, date, packageID string) (*AvailabilityDTO, error)
}

// ServiceParams groups dependencies for the bookings service.
type ServiceParams struct {
	Repo          *Repository
	Packages      packageLookup
	SlotStartHour int
	SlotEndHour   int
}

type service struct {
	repo      *Repository
	packages  packageLookup
	startHour int
	endHour   int
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("bookings repository required")
	}
	if params.Packages == nil {
		return nil, errors.New("package lookup required")
	}
	start, end := params.SlotStartHour, params.SlotEndHour
	if start == 0 && end == 0 {
		start, end = defaultSlotStartHour, defaultSlotEndHour
	}
	if start < 0 || end > 23 || start > end {
		return nil, fmt.Errorf("invalid slot window %d-%d", start, end)
	}
	return &service{repo: params.Repo, packages: params.Packages, startHour: start, endHour: end}, nil
}

// Promote derives the confirmed event for quote inside tx. When an event
// already exists for the quote it is returned with created=false.
func (s *service) Promote(ctx context.Context, tx *gorm.DB, quote *models.WeddingQuote, intentID string) (*models.WeddingEvent, bool, error) {
	if tx == nil {
		return nil, false, errors.New("transaction required")
	}
	if quote == nil {
		return nil, false, errors.New("quote required")
	}
	repo := s.repo.WithTx(tx)

	existing, err := repo.FindByQuoteID(ctx, quote.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	event := deriveEvent(quote, intentID)
	created, err := repo.CreateIfAbsent(ctx, event)
	if err != nil {
		return nil, false, err
	}
	if !created {
		// lost the race to a concurrent delivery
		existing, err := repo.FindByQuoteID(ctx, quote.ID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return event, true, nil
}

func deriveEvent(quote *models.WeddingQuote, intentID string) *models.WeddingEvent {
	return &models.WeddingEvent{
		QuoteID:         quote.ID,
		UserID:          quote.UserID,
		PackageID:       quote.PackageID,
		VenueID:         quote.VenueID,
		VenueName:       quote.VenueName,
		EventDate:       quote.EventDate,
		EventTime:       quote.EventTime,
		GuestCount:      quote.GuestCount,
		SpecialRequests: quote.SpecialRequests,
		TotalPriceCents: quote.TotalPriceCents,
		Status:          enums.WeddingEventStatusConfirmed,
		PaymentIntentID: intentID,
	}
}

func (s *service) ListForUser(ctx context.Context, actor auth.Actor, params pagination.Params) (*pagination.Page[EventDTO], error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	userID := actor.UserID
	return s.list(ctx, &userID, params)
}

func (s *service) ListAll(ctx context.Context, actor auth.Actor, params pagination.Params) (*pagination.Page[EventDTO], error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	return s.list(ctx, nil, params)
}

func (s *service) list(ctx context.Context, userID *uuid.UUID, params pagination.Params) (*pagination.Page[EventDTO], error) {
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	page, err := s.repo.List(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wedding events")
	}
	out := pagination.Page[EventDTO]{
		Items:      make([]EventDTO, 0, len(page.Items)),
		NextCursor: page.NextCursor,
	}
	for _, e := range page.Items {
		out.Items = append(out.Items, EventFromModel(e))
	}
	return &out, nil
}

// Availability checks every hourly start time on date against the confirmed
// events of that day. Quote creation does not consult it.
func (s *service) Availability(ctx context.Context, date, packageID string) (*AvailabilityDTO, error) {
	day, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
	}
	pkgID, err := uuid.Parse(strings.TrimSpace(packageID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid package id")
	}
	pkg, err := s.packages.GetPackage(ctx, pkgID)
	if err != nil {
		return nil, err
	}

	booked, err := s.repo.ConfirmedOn(ctx, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booked events")
	}

	out := &AvailabilityDTO{
		Date:           day.Format(dateLayout),
		PackageID:      pkg.ID,
		DurationHours:  pkg.DurationHours,
		Slots:          make([]SlotDTO, 0, s.endHour-s.startHour+1),
		AvailableSlots: []string{},
		Conflicts:      []ConflictDTO{},
	}
	conflicting := map[uuid.UUID]bool{}
	length := pkg.DurationHours * 60
	for hour := s.startHour; hour <= s.endHour; hour++ {
		start := hour * 60
		free := true
		for _, b := range booked {
			bStart, ok := minutesOf(b.EventTime)
			if !ok {
				continue
			}
			if overlaps(start, start+length, bStart, bStart+b.DurationHours*60) {
				free = false
				conflicting[b.ID] = true
			}
		}
		label := clock(start)
		out.Slots = append(out.Slots, SlotDTO{Time: label, Available: free})
		if free {
			out.AvailableSlots = append(out.AvailableSlots, label)
		}
	}
	for _, b := range booked {
		if !conflicting[b.ID] {
			continue
		}
		bStart, _ := minutesOf(b.EventTime)
		out.Conflicts = append(out.Conflicts, ConflictDTO{
			EventID:   b.ID,
			StartTime: clock(bStart),
			EndTime:   clock(bStart + b.DurationHours*60),
		})
	}
	return out, nil
}

// overlaps treats both ranges as half-open.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

func minutesOf(value string) (int, bool) {
	t, err := time.Parse(timeLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

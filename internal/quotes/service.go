package quotes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/auth"
	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/framehouse-studio/booking-backend/pkg/logger"
	"github.com/framehouse-studio/booking-backend/pkg/metrics"
	"github.com/framehouse-studio/booking-backend/pkg/outbox"
	"github.com/framehouse-studio/booking-backend/pkg/outbox/payloads"
	"github.com/framehouse-studio/booking-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultDepositPercent = 50
	maxSpecialRequestsLen = 2000
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type catalogLookup interface {
	GetPackage(ctx context.Context, id uuid.UUID) (*models.WeddingPackage, error)
	FindAddons(ctx context.Context, ids []uuid.UUID) ([]models.WeddingAddon, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error)
}

type customerLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error)
}

// Service owns the quote aggregate: pricing, persistence and admin review.
type Service interface {
	Create(ctx context.Context, actor auth.Actor, input CreateInput) (*QuoteView, error)
	List(ctx context.Context, actor auth.Actor, filter ListInput, params pagination.Params) (*pagination.Page[QuoteView], error)
	Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (*QuoteView, error)
	Decide(ctx context.Context, actor auth.Actor, id uuid.UUID, input DecisionInput) (*QuoteView, error)
}

// CreateInput is the raw quote request. Venue is given by exactly one of
// VenueID and VenueName.
type CreateInput struct {
	PackageID       string
	EventDate       string
	EventTime       string
	VenueID         string
	VenueName       string
	GuestCount      *int
	SpecialRequests *string
	AddonIDs        []string
}

// ListInput holds the optional list filters as received from the query string.
type ListInput struct {
	Status        string
	PaymentStatus string
}

type DecisionInput struct {
	Decision string
	Notes    *string
}

// ServiceParams groups dependencies for the quotes service.
type ServiceParams struct {
	Repo           *Repository
	Tx             txRunner
	Catalog        catalogLookup
	Customers      customerLookup
	Outbox         outbox.Emitter
	Metrics        *metrics.BookingMetrics
	Logger         *logger.Logger
	DepositPercent int
}

type service struct {
	repo           *Repository
	tx             txRunner
	catalog        catalogLookup
	customers      customerLookup
	outbox         outbox.Emitter
	metrics        *metrics.BookingMetrics
	logg           *logger.Logger
	depositPercent int
}

// NewService builds a quotes service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("quotes repository required")
	}
	if params.Tx == nil {
		return nil, errors.New("tx runner required")
	}
	if params.Catalog == nil {
		return nil, errors.New("catalog lookup required")
	}
	if params.Outbox == nil {
		return nil, errors.New("outbox emitter required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	percent := params.DepositPercent
	if percent <= 0 {
		percent = defaultDepositPercent
	}
	return &service{
		repo:           params.Repo,
		tx:             params.Tx,
		catalog:        params.Catalog,
		customers:      params.Customers,
		outbox:         params.Outbox,
		metrics:        params.Metrics,
		logg:           logg,
		depositPercent: percent,
	}, nil
}

type validatedQuote struct {
	packageID       uuid.UUID
	eventDate       time.Time
	eventTime       string
	venue           Venue
	guestCount      *int
	specialRequests *string
	addonIDs        []uuid.UUID
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateInput) (*QuoteView, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	req, err := validateCreate(input)
	if err != nil {
		return nil, err
	}

	pkg, err := s.catalog.GetPackage(ctx, req.packageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, pkgerrors.NotFound("package")
	}

	addons, err := s.resolveAddons(ctx, req.addonIDs)
	if err != nil {
		return nil, err
	}

	if venueID, ok := req.venue.PresetID(); ok {
		venue, err := s.catalog.GetVenue(ctx, venueID)
		if err != nil {
			return nil, err
		}
		if !venue.IsActive {
			return nil, pkgerrors.NotFound("venue")
		}
	}

	pricing := PriceSelection(*pkg, addons)
	venueID, venueName := req.venue.Columns()
	quote := &models.WeddingQuote{
		UserID:            actor.UserID,
		PackageID:         pkg.ID,
		PackageName:       pkg.Name,
		PackagePriceCents: pricing.PackagePriceCents,
		EventDate:         req.eventDate,
		EventTime:         req.eventTime,
		VenueID:           venueID,
		VenueName:         venueName,
		GuestCount:        req.guestCount,
		SpecialRequests:   req.specialRequests,
		TotalPriceCents:   pricing.TotalCents,
		Status:            enums.QuoteStatusPending,
		Addons:            make([]models.QuoteAddon, 0, len(pricing.Addons)),
	}
	for i, addon := range pricing.Addons {
		quote.Addons = append(quote.Addons, models.QuoteAddon{
			AddonID:               addon.AddonID,
			AddonName:             addon.Name,
			PriceAtSelectionCents: addon.PriceCents,
			Position:              i,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, quote); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create quote")
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventQuoteCreated,
			AggregateType: enums.AggregateWeddingQuote,
			AggregateID:   quote.ID,
			Actor:         &outbox.ActorRef{UserID: actor.UserID, Role: actor.Role},
			Data: payloads.QuoteCreatedEvent{
				QuoteID:         quote.ID,
				UserID:          quote.UserID,
				PackageID:       quote.PackageID,
				PackageName:     quote.PackageName,
				EventDate:       quote.EventDate.Format(dateLayout),
				EventTime:       quote.EventTime,
				TotalPriceCents: quote.TotalPriceCents,
				AddonCount:      len(quote.Addons),
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit quote created")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncQuoteCreated()
	logCtx := s.logg.WithFields(s.logg.WithQuoteID(ctx, quote.ID.String()), map[string]any{
		"total_price_cents": quote.TotalPriceCents,
		"addon_count":       len(quote.Addons),
	})
	s.logg.Info(logCtx, "quote created")

	return s.load(ctx, quote.ID)
}

func (s *service) List(ctx context.Context, actor auth.Actor, input ListInput, params pagination.Params) (*pagination.Page[QuoteView], error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	filter, err := parseListFilter(input)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		userID := actor.UserID
		filter.UserID = &userID
	}
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	page, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}

	var customers map[uuid.UUID]models.User
	if actor.IsAdmin() && s.customers != nil && len(page.Items) > 0 {
		ids := make([]uuid.UUID, 0, len(page.Items))
		for _, q := range page.Items {
			ids = append(ids, q.UserID)
		}
		customers, err = s.customers.FindByIDs(ctx, uniqueIDs(ids))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customers")
		}
	}

	out := pagination.Page[QuoteView]{
		Items:      make([]QuoteView, 0, len(page.Items)),
		NextCursor: page.NextCursor,
	}
	for _, q := range page.Items {
		view := ViewFromModel(q, s.depositPercent)
		if u, ok := customers[q.UserID]; ok {
			view.Customer = customerView(u)
		}
		out.Items = append(out.Items, view)
	}
	return &out, nil
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (*QuoteView, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err)
	}
	if !actor.CanAccess(quote.UserID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "quote belongs to another customer")
	}
	view := ViewFromModel(*quote, s.depositPercent)
	if actor.IsAdmin() {
		s.attachCustomer(ctx, &view)
	}
	return &view, nil
}

// Decide approves or rejects a pending quote. Payment status is left alone.
func (s *service) Decide(ctx context.Context, actor auth.Actor, id uuid.UUID, input DecisionInput) (*QuoteView, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	decision := enums.QuoteDecision(strings.ToLower(strings.TrimSpace(input.Decision)))
	target, err := decision.Status()
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be approve or reject")
	}
	notes := trimOptional(input.Notes)

	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err)
	}
	if quote.Status != enums.QuoteStatusPending {
		return nil, stateConflict(quote.Status)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		applied, err := s.repo.WithTx(tx).UpdateStatus(ctx, id, enums.QuoteStatusPending, target, notes)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote status")
		}
		if !applied {
			return stateConflict("")
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventQuoteDecided,
			AggregateType: enums.AggregateWeddingQuote,
			AggregateID:   id,
			Actor:         &outbox.ActorRef{UserID: actor.UserID, Role: actor.Role},
			Data: payloads.QuoteDecidedEvent{
				QuoteID:   id,
				UserID:    quote.UserID,
				Decision:  string(decision),
				Status:    target,
				Notes:     notes,
				DecidedBy: actor.UserID,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit quote decided")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logCtx := s.logg.WithFields(s.logg.WithQuoteID(ctx, id.String()), map[string]any{
		"decision": decision,
		"admin_id": actor.UserID.String(),
	})
	s.logg.Info(logCtx, "quote decided")

	view, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachCustomer(ctx, view)
	return view, nil
}

func (s *service) resolveAddons(ctx context.Context, requested []uuid.UUID) ([]models.WeddingAddon, error) {
	if len(requested) == 0 {
		return nil, nil
	}
	rows, err := s.catalog.FindAddons(ctx, uniqueIDs(requested))
	if err != nil {
		return nil, err
	}
	active := make([]models.WeddingAddon, 0, len(rows))
	for _, row := range rows {
		if row.IsActive {
			active = append(active, row)
		}
	}
	selected, dropped := resolveSelections(requested, active)
	if len(dropped) > 0 {
		ids := make([]string, 0, len(dropped))
		for _, id := range dropped {
			ids = append(ids, id.String())
		}
		s.logg.Warn(s.logg.WithField(ctx, "dropped_addon_ids", ids), "unknown addons dropped from quote")
	}
	return selected, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*QuoteView, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err)
	}
	view := ViewFromModel(*quote, s.depositPercent)
	return &view, nil
}

func (s *service) attachCustomer(ctx context.Context, view *QuoteView) {
	if s.customers == nil || view == nil {
		return
	}
	found, err := s.customers.FindByIDs(ctx, []uuid.UUID{view.UserID})
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "customer lookup failed")
		return
	}
	if u, ok := found[view.UserID]; ok {
		view.Customer = customerView(u)
	}
}

func validateCreate(input CreateInput) (validatedQuote, error) {
	var out validatedQuote

	rawPackage := strings.TrimSpace(input.PackageID)
	rawDate := strings.TrimSpace(input.EventDate)
	rawTime := strings.TrimSpace(input.EventTime)
	if rawPackage == "" || rawDate == "" || rawTime == "" {
		return out, pkgerrors.New(pkgerrors.CodeValidation, "package, event date and event time are required")
	}

	pkgID, err := uuid.Parse(rawPackage)
	if err != nil {
		return out, pkgerrors.New(pkgerrors.CodeValidation, "invalid package id")
	}
	out.packageID = pkgID

	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return out, pkgerrors.New(pkgerrors.CodeValidation, "event date must be YYYY-MM-DD")
	}
	out.eventDate = date

	clock, err := time.Parse(timeLayout, rawTime)
	if err != nil {
		return out, pkgerrors.New(pkgerrors.CodeValidation, "event time must be HH:MM")
	}
	out.eventTime = clock.Format(timeLayout)

	venue, err := ParseVenue(input.VenueID, input.VenueName)
	if err != nil {
		return out, err
	}
	out.venue = venue

	if input.GuestCount != nil && *input.GuestCount < 0 {
		return out, pkgerrors.New(pkgerrors.CodeValidation, "guest count cannot be negative")
	}
	out.guestCount = input.GuestCount

	out.specialRequests = trimOptional(input.SpecialRequests)
	if out.specialRequests != nil && len(*out.specialRequests) > maxSpecialRequestsLen {
		return out, pkgerrors.New(pkgerrors.CodeValidation, "special requests are too long")
	}

	out.addonIDs = make([]uuid.UUID, 0, len(input.AddonIDs))
	for _, raw := range input.AddonIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return out, pkgerrors.New(pkgerrors.CodeValidation, "invalid addon id").WithDetails(map[string]any{"addon_id": raw})
		}
		out.addonIDs = append(out.addonIDs, id)
	}
	return out, nil
}

func parseListFilter(input ListInput) (ListFilter, error) {
	var filter ListFilter
	if raw := strings.TrimSpace(input.Status); raw != "" {
		status, err := enums.ParseQuoteStatus(raw)
		if err != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
		filter.Status = &status
	}
	if raw := strings.TrimSpace(input.PaymentStatus); raw != "" {
		status, err := enums.ParsePaymentStatus(raw)
		if err != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status filter")
		}
		filter.PaymentStatus = &status
	}
	return filter, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func stateConflict(current enums.QuoteStatus) error {
	err := pkgerrors.New(pkgerrors.CodeStateConflict, "quote has already been reviewed")
	if current != "" {
		err = err.WithDetails(map[string]any{"status": current})
	}
	return err
}

func lookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.NotFound("quote")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
}

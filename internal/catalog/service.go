package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type catalogRepository interface {
	ListPackages(ctx context.Context, activeOnly bool) ([]models.WeddingPackage, error)
	FindPackage(ctx context.Context, id uuid.UUID) (*models.WeddingPackage, error)
	CreatePackage(ctx context.Context, pkg *models.WeddingPackage) error
	SavePackage(ctx context.Context, pkg *models.WeddingPackage) error
	ListAddons(ctx context.Context, filter AddonFilter) ([]models.WeddingAddon, error)
	FindAddons(ctx context.Context, ids []uuid.UUID) ([]models.WeddingAddon, error)
	FindAddon(ctx context.Context, id uuid.UUID) (*models.WeddingAddon, error)
	CreateAddon(ctx context.Context, addon *models.WeddingAddon) error
	SaveAddon(ctx context.Context, addon *models.WeddingAddon) error
	ListVenues(ctx context.Context, filter VenueFilter) ([]models.Venue, error)
	FindVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error)
	CreateVenue(ctx context.Context, venue *models.Venue) error
	SaveVenue(ctx context.Context, venue *models.Venue) error
}

// Service exposes catalog reads for customers and catalog edits for admins.
// Edits never reach existing quotes; those carry their own price snapshot.
type Service interface {
	ListPackages(ctx context.Context, activeOnly bool) ([]PackageDTO, error)
	ListAddons(ctx context.Context, filter AddonFilter) ([]AddonDTO, error)
	ListVenues(ctx context.Context, filter VenueFilter) ([]VenueDTO, error)

	GetPackage(ctx context.Context, id uuid.UUID) (*models.WeddingPackage, error)
	FindAddons(ctx context.Context, ids []uuid.UUID) ([]models.WeddingAddon, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error)

	CreatePackage(ctx context.Context, input PackageInput) (*PackageDTO, error)
	UpdatePackage(ctx context.Context, id uuid.UUID, patch PackagePatch) (*PackageDTO, error)
	CreateAddon(ctx context.Context, input AddonInput) (*AddonDTO, error)
	UpdateAddon(ctx context.Context, id uuid.UUID, patch AddonPatch) (*AddonDTO, error)
	CreateVenue(ctx context.Context, input VenueInput) (*VenueDTO, error)
	UpdateVenue(ctx context.Context, id uuid.UUID, patch VenuePatch) (*VenueDTO, error)
}

type PackageInput struct {
	Name          string
	Description   string
	PriceCents    int64
	DurationHours int
	Features      []string
	SortOrder     int
}

type PackagePatch struct {
	Name          *string
	Description   *string
	PriceCents    *int64
	DurationHours *int
	Features      *[]string
	IsActive      *bool
	SortOrder     *int
}

type AddonInput struct {
	Name        string
	Description string
	PriceCents  int64
	Category    enums.AddonCategory
	SortOrder   int
}

type AddonPatch struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Category    *enums.AddonCategory
	IsActive    *bool
	SortOrder   *int
}

type VenueInput struct {
	Name        string
	Address     string
	City        string
	State       string
	ZipCode     string
	Capacity    *int
	Phone       *string
	Website     *string
	Description *string
}

type VenuePatch struct {
	Name        *string
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	Capacity    *int
	Phone       *string
	Website     *string
	Description *string
	IsActive    *bool
}

type service struct {
	repo catalogRepository
}

// NewService builds a catalog service backed by repo.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPackages(ctx context.Context, activeOnly bool) ([]PackageDTO, error) {
	rows, err := s.repo.ListPackages(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list packages")
	}
	return mapSlice(rows, PackageFromModel), nil
}

func (s *service) ListAddons(ctx context.Context, filter AddonFilter) ([]AddonDTO, error) {
	if filter.Category != nil && !filter.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid addon category")
	}
	rows, err := s.repo.ListAddons(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addons")
	}
	return mapSlice(rows, AddonFromModel), nil
}

func (s *service) ListVenues(ctx context.Context, filter VenueFilter) ([]VenueDTO, error) {
	rows, err := s.repo.ListVenues(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list venues")
	}
	return mapSlice(rows, VenueFromModel), nil
}

func (s *service) GetPackage(ctx context.Context, id uuid.UUID) (*models.WeddingPackage, error) {
	pkg, err := s.repo.FindPackage(ctx, id)
	if err != nil {
		return nil, lookupError(err, "package")
	}
	return pkg, nil
}

func (s *service) FindAddons(ctx context.Context, ids []uuid.UUID) ([]models.WeddingAddon, error) {
	rows, err := s.repo.FindAddons(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load addons")
	}
	return rows, nil
}

func (s *service) GetVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	venue, err := s.repo.FindVenue(ctx, id)
	if err != nil {
		return nil, lookupError(err, "venue")
	}
	return venue, nil
}

func (s *service) CreatePackage(ctx context.Context, input PackageInput) (*PackageDTO, error) {
	pkg := &models.WeddingPackage{
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		PriceCents:    input.PriceCents,
		DurationHours: input.DurationHours,
		Features:      pq.StringArray(cleanFeatures(input.Features)),
		IsActive:      true,
		SortOrder:     input.SortOrder,
	}
	if err := validatePackage(pkg); err != nil {
		return nil, err
	}
	if err := s.repo.CreatePackage(ctx, pkg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create package")
	}
	dto := PackageFromModel(*pkg)
	return &dto, nil
}

func (s *service) UpdatePackage(ctx context.Context, id uuid.UUID, patch PackagePatch) (*PackageDTO, error) {
	pkg, err := s.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		pkg.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		pkg.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.PriceCents != nil {
		pkg.PriceCents = *patch.PriceCents
	}
	if patch.DurationHours != nil {
		pkg.DurationHours = *patch.DurationHours
	}
	if patch.Features != nil {
		pkg.Features = pq.StringArray(cleanFeatures(*patch.Features))
	}
	if patch.IsActive != nil {
		pkg.IsActive = *patch.IsActive
	}
	if patch.SortOrder != nil {
		pkg.SortOrder = *patch.SortOrder
	}
	if err := validatePackage(pkg); err != nil {
		return nil, err
	}
	if err := s.repo.SavePackage(ctx, pkg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update package")
	}
	dto := PackageFromModel(*pkg)
	return &dto, nil
}

func (s *service) CreateAddon(ctx context.Context, input AddonInput) (*AddonDTO, error) {
	addon := &models.WeddingAddon{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		PriceCents:  input.PriceCents,
		Category:    input.Category,
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}
	if err := validateAddon(addon); err != nil {
		return nil, err
	}
	if err := s.repo.CreateAddon(ctx, addon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create addon")
	}
	dto := AddonFromModel(*addon)
	return &dto, nil
}

func (s *service) UpdateAddon(ctx context.Context, id uuid.UUID, patch AddonPatch) (*AddonDTO, error) {
	addon, err := s.repo.FindAddon(ctx, id)
	if err != nil {
		return nil, lookupError(err, "addon")
	}
	if patch.Name != nil {
		addon.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		addon.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.PriceCents != nil {
		addon.PriceCents = *patch.PriceCents
	}
	if patch.Category != nil {
		addon.Category = *patch.Category
	}
	if patch.IsActive != nil {
		addon.IsActive = *patch.IsActive
	}
	if patch.SortOrder != nil {
		addon.SortOrder = *patch.SortOrder
	}
	if err := validateAddon(addon); err != nil {
		return nil, err
	}
	if err := s.repo.SaveAddon(ctx, addon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update addon")
	}
	dto := AddonFromModel(*addon)
	return &dto, nil
}

func (s *service) CreateVenue(ctx context.Context, input VenueInput) (*VenueDTO, error) {
	venue := &models.Venue{
		Name:        strings.TrimSpace(input.Name),
		Address:     strings.TrimSpace(input.Address),
		City:        strings.TrimSpace(input.City),
		State:       strings.ToUpper(strings.TrimSpace(input.State)),
		ZipCode:     strings.TrimSpace(input.ZipCode),
		Capacity:    input.Capacity,
		Phone:       input.Phone,
		Website:     input.Website,
		Description: input.Description,
		IsActive:    true,
	}
	if err := validateVenue(venue); err != nil {
		return nil, err
	}
	if err := s.repo.CreateVenue(ctx, venue); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create venue")
	}
	dto := VenueFromModel(*venue)
	return &dto, nil
}

func (s *service) UpdateVenue(ctx context.Context, id uuid.UUID, patch VenuePatch) (*VenueDTO, error) {
	venue, err := s.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setString(&venue.Name, patch.Name)
	setString(&venue.Address, patch.Address)
	setString(&venue.City, patch.City)
	setString(&venue.ZipCode, patch.ZipCode)
	if patch.State != nil {
		venue.State = strings.ToUpper(strings.TrimSpace(*patch.State))
	}
	if patch.Capacity != nil {
		venue.Capacity = patch.Capacity
	}
	if patch.Phone != nil {
		venue.Phone = patch.Phone
	}
	if patch.Website != nil {
		venue.Website = patch.Website
	}
	if patch.Description != nil {
		venue.Description = patch.Description
	}
	if patch.IsActive != nil {
		venue.IsActive = *patch.IsActive
	}
	if err := validateVenue(venue); err != nil {
		return nil, err
	}
	if err := s.repo.SaveVenue(ctx, venue); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update venue")
	}
	dto := VenueFromModel(*venue)
	return &dto, nil
}

func validatePackage(pkg *models.WeddingPackage) error {
	switch {
	case pkg.Name == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "package name is required")
	case pkg.PriceCents < 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "package price must not be negative")
	case pkg.DurationHours <= 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "package duration must be positive")
	}
	return nil
}

func validateAddon(addon *models.WeddingAddon) error {
	switch {
	case addon.Name == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "addon name is required")
	case addon.PriceCents < 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "addon price must not be negative")
	case !addon.Category.IsValid():
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid addon category")
	}
	return nil
}

func validateVenue(venue *models.Venue) error {
	switch {
	case venue.Name == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "venue name is required")
	case venue.Address == "" || venue.City == "" || venue.State == "" || venue.ZipCode == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "venue address, city, state and zip code are required")
	case venue.Capacity != nil && *venue.Capacity <= 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "venue capacity must be positive")
	}
	return nil
}

func cleanFeatures(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func lookupError(err error, kind string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.NotFound(kind)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+kind)
}

package catalog

import (
	"context"
	"strings"

	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddonFilter narrows the add-on listing.
type AddonFilter struct {
	Category   *enums.AddonCategory
	ActiveOnly bool
}

// VenueFilter narrows the venue listing. Search matches name, address or city.
type VenueFilter struct {
	Search     string
	City       string
	State      string
	ActiveOnly bool
}

// Repository persists the package, add-on and venue catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListPackages(ctx context.Context, activeOnly bool) ([]models.WeddingPackage, error) {
	q := r.db.WithContext(ctx).Model(&models.WeddingPackage{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var rows []models.WeddingPackage
	if err := q.Order("sort_order ASC").Order("price_cents ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindPackage(ctx context.Context, id uuid.UUID) (*models.WeddingPackage, error) {
	var pkg models.WeddingPackage
	if err := r.db.WithContext(ctx).First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *Repository) CreatePackage(ctx context.Context, pkg *models.WeddingPackage) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *Repository) SavePackage(ctx context.Context, pkg *models.WeddingPackage) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

func (r *Repository) ListAddons(ctx context.Context, filter AddonFilter) ([]models.WeddingAddon, error) {
	q := r.db.WithContext(ctx).Model(&models.WeddingAddon{})
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	var rows []models.WeddingAddon
	if err := q.Order("sort_order ASC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindAddons loads the add-ons whose ids are in ids. Unknown ids are simply
// absent from the result.
func (r *Repository) FindAddons(ctx context.Context, ids []uuid.UUID) ([]models.WeddingAddon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.WeddingAddon
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindAddon(ctx context.Context, id uuid.UUID) (*models.WeddingAddon, error) {
	var addon models.WeddingAddon
	if err := r.db.WithContext(ctx).First(&addon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &addon, nil
}

func (r *Repository) CreateAddon(ctx context.Context, addon *models.WeddingAddon) error {
	return r.db.WithContext(ctx).Create(addon).Error
}

func (r *Repository) SaveAddon(ctx context.Context, addon *models.WeddingAddon) error {
	return r.db.WithContext(ctx).Save(addon).Error
}

func (r *Repository) ListVenues(ctx context.Context, filter VenueFilter) ([]models.Venue, error) {
	q := r.db.WithContext(ctx).Model(&models.Venue{})
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if term := strings.ToLower(strings.TrimSpace(filter.Search)); term != "" {
		like := "%" + term + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(city) LIKE ?)", like, like, like)
	}
	if city := strings.ToLower(strings.TrimSpace(filter.City)); city != "" {
		q = q.Where("LOWER(city) LIKE ?", "%"+city+"%")
	}
	if state := strings.TrimSpace(filter.State); state != "" {
		q = q.Where("UPPER(state) = ?", strings.ToUpper(state))
	}
	var rows []models.Venue
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.WithContext(ctx).First(&venue, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *Repository) CreateVenue(ctx context.Context, venue *models.Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *Repository) SaveVenue(ctx context.Context, venue *models.Venue) error {
	return r.db.WithContext(ctx).Save(venue).Error
}

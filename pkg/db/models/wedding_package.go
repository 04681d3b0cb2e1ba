package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// WeddingPackage is a purchasable coverage tier in the catalog.
type WeddingPackage struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name          string         `gorm:"column:name;not null"`
	Description   string         `gorm:"column:description;not null;default:''"`
	PriceCents    int64          `gorm:"column:price_cents;not null"`
	DurationHours int            `gorm:"column:duration_hours;not null"`
	Features      pq.StringArray `gorm:"column:features;type:text[];not null"`
	IsActive      bool           `gorm:"column:is_active;not null"`
	SortOrder     int            `gorm:"column:sort_order;not null;default:0"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (WeddingPackage) TableName() string { return "wedding_packages" }

func (p *WeddingPackage) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

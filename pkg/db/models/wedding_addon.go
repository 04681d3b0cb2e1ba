package models

import (
	"time"

	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeddingAddon is an optional extra that can be attached to a quote.
type WeddingAddon struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Name        string              `gorm:"column:name;not null"`
	Description string              `gorm:"column:description;not null;default:''"`
	PriceCents  int64               `gorm:"column:price_cents;not null"`
	Category    enums.AddonCategory `gorm:"column:category;type:text;not null"`
	IsActive    bool                `gorm:"column:is_active;not null"`
	SortOrder   int                 `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (WeddingAddon) TableName() string { return "wedding_addons" }

func (a *WeddingAddon) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Venue is a preset location customers can pick instead of typing one in.
type Venue struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Address     string    `gorm:"column:address;not null"`
	City        string    `gorm:"column:city;not null"`
	State       string    `gorm:"column:state;not null"`
	ZipCode     string    `gorm:"column:zip_code;not null"`
	Capacity    *int      `gorm:"column:capacity"`
	Phone       *string   `gorm:"column:phone"`
	Website     *string   `gorm:"column:website"`
	Description *string   `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *Venue) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

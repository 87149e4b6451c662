package site

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Site is a physical deployment location employees are assigned to.
type Site struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"size:255;not null"`
	Code      string         `gorm:"size:20;uniqueIndex:uq_site_code"`
	Location  string         `gorm:"size:255"`
	Active    bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

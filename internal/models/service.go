package models

import "time"

// Service is an entry of the garage's service catalogue.
type Service struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	DurationMin int     `gorm:"default:60" json:"duration"`
	Price       float64 `gorm:"type:decimal(10,2);default:0" json:"price"`
	Active      bool    `gorm:"not null;index" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Medication represents a medication that can be loaned between
// hospitals. Same soft-delete discipline as Hospital.
type Medication struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	NationalCode     string    `gorm:"size:50;index" json:"national_code,omitempty"`
	Presentation     string    `gorm:"size:255" json:"presentation,omitempty"`
	ActiveIngredient string    `gorm:"size:255" json:"active_ingredient,omitempty"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for Medication model
func (Medication) TableName() string {
	return "medications"
}

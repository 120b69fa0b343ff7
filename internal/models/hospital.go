package models

import "time"

// Hospital represents an external hospital the pharmacy exchanges
// medication loans with. Hospitals are never physically removed because
// loans keep referencing them; deletion flips IsActive.
type Hospital struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospitals"
}

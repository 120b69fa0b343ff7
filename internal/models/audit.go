package models

import "time"

// AuditLog represents the audit_logs table. Feeds the dashboard
// activity feed and keeps a trail of who-did-what on loans and master
// data (the pharmacy shares a single login, so no user reference).
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:100;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}

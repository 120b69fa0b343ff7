package models

// SmtpSettingsID is the fixed primary key of the singleton settings row.
const SmtpSettingsID = "default"

// SmtpSettings is the outbound email transport configuration managed
// from the settings screen. When no row exists the mailer falls back to
// environment variables.
type SmtpSettings struct {
	ID        string `gorm:"primaryKey;size:50" json:"id"`
	Host      string `gorm:"size:255;not null" json:"host"`
	Port      int    `gorm:"not null" json:"port"`
	Secure    bool   `gorm:"default:false" json:"secure"`
	User      string `gorm:"size:255;not null" json:"user"`
	Password  string `gorm:"size:255;not null" json:"-"`
	FromName  string `gorm:"size:255;not null" json:"from_name"`
	FromEmail string `gorm:"size:255;not null" json:"from_email"`
}

// TableName specifies the table name for SmtpSettings model
func (SmtpSettings) TableName() string {
	return "smtp_settings"
}

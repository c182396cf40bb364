package model

import "time"

// PasswordOTP is a short-lived one-time code for the password reset flow.
// At most one active code per email; issuing a new one clears older rows.
type PasswordOTP struct {
	BaseModel
	Email     string    `gorm:"type:varchar(255);not null;index" json:"email"`
	Code      string    `gorm:"type:varchar(6);not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// Expired reports whether the code is past its expiry.
func (o *PasswordOTP) Expired() bool {
	return time.Now().After(o.ExpiresAt)
}

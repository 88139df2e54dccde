package models

import "time"

// PasswordResetTTL is how long a reset token stays valid
const PasswordResetTTL = time.Hour

// PasswordReset holds a single-use token letting a user choose a new password
type PasswordReset struct {
	ID        string    `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Token     string    `gorm:"type:varchar(255);not null;unique" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the token is older than PasswordResetTTL
func (p PasswordReset) Expired(now time.Time) bool {
	return now.Sub(p.CreatedAt) > PasswordResetTTL
}

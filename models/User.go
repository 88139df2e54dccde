package models

import "time"

// User represents an account that owns decks
type User struct {
	ID            string     `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Email         string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	Username      string     `gorm:"type:varchar(50);not null" json:"username"`
	Password      string     `gorm:"type:varchar(255);not null" json:"-"`
	Blocked       bool       `gorm:"not null;default:false" json:"blocked"`
	LastConnected *time.Time `gorm:"column:last_connected" json:"last_connected"`
	CreatedAt     time.Time  `json:"created_at"`
	Decks         []*Deck    `gorm:"foreignKey:UserID" json:"decks,omitempty"`
}

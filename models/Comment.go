package models

import "time"

// Comment is a message left by a user on a public deck
type Comment struct {
	ID        string    `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	DeckID    string    `gorm:"type:uuid;not null;index;column:deck_id" json:"deck_id"`
	UserID    string    `gorm:"type:uuid;not null;column:user_id" json:"user_id"`
	Body      string    `gorm:"type:varchar(1000);not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

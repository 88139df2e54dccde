package models

import (
	"time"

	"gorm.io/datatypes"
)

// Deck represents a named, ordered collection of spells owned by a user
type Deck struct {
	ID            string                        `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Name          string                        `gorm:"type:varchar(100);not null" json:"name"`
	UserID        string                        `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	School        School                        `gorm:"type:varchar(20);not null" json:"school"`
	Level         int                           `gorm:"type:integer;not null;default:1" json:"level"`
	WeavingSchool *School                       `gorm:"type:varchar(20);column:weaving_school" json:"weaving_school"`
	Description   *string                       `gorm:"type:text" json:"description"`
	IsPve         bool                          `gorm:"not null;default:true;column:is_pve" json:"is_pve"`
	IsPublic      bool                          `gorm:"not null;default:false;column:is_public" json:"is_public"`
	CanComment    bool                          `gorm:"not null;default:false;column:can_comment" json:"can_comment"`
	Spells        datatypes.JSONSlice[SpellRef] `gorm:"type:jsonb;not null;default:'[]'" json:"spells"`
	CreatedAt     time.Time                     `json:"created_at"`
	UpdatedAt     time.Time                     `json:"updated_at"`
	User          *User                         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments      []*Comment                    `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

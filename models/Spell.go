package models

import (
	"strings"

	"gorm.io/datatypes"
)

// School is one of the nine thematic categories a spell belongs to
type School string

const (
	SchoolFire    School = "Fire"
	SchoolIce     School = "Ice"
	SchoolStorm   School = "Storm"
	SchoolMyth    School = "Myth"
	SchoolLife    School = "Life"
	SchoolDeath   School = "Death"
	SchoolBalance School = "Balance"
	SchoolAstral  School = "Astral"
	SchoolShadow  School = "Shadow"
)

// Schools lists every school in display order
var Schools = []School{
	SchoolFire, SchoolIce, SchoolStorm, SchoolMyth, SchoolLife,
	SchoolDeath, SchoolBalance, SchoolAstral, SchoolShadow,
}

// ParseSchool resolves a school name case-insensitively
func ParseSchool(name string) (School, bool) {
	name = strings.TrimSpace(name)
	for _, s := range Schools {
		if strings.EqualFold(string(s), name) {
			return s, true
		}
	}
	return "", false
}

// Spell represents a card of the static game catalog
type Spell struct {
	ID          string                      `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Name        string                      `gorm:"type:varchar(100);unique;not null" json:"name"`
	School      School                      `gorm:"type:varchar(20);not null;index" json:"school"`
	PipCost     string                      `gorm:"type:varchar(20);not null;column:pip_cost" json:"pip_cost"`
	CardType    string                      `gorm:"type:varchar(50);column:card_type" json:"card_type"`
	CardEffects datatypes.JSONSlice[string] `gorm:"type:jsonb;column:card_effects" json:"card_effects"`
	Accuracy    string                      `gorm:"type:varchar(10)" json:"accuracy"`
	Description string                      `gorm:"type:text" json:"description"`
	WikiURL     string                      `gorm:"type:varchar(255);column:wiki_url" json:"wiki_url"`
	ImageURL    string                      `gorm:"type:varchar(255);column:image_url" json:"image_url"`
}

// Ref returns the snapshot of the spell stored inside a deck
func (s Spell) Ref() SpellRef {
	effects := make([]string, len(s.CardEffects))
	copy(effects, s.CardEffects)
	return SpellRef{
		Name:        s.Name,
		School:      s.School,
		PipCost:     s.PipCost,
		CardEffects: effects,
		ImageURL:    s.ImageURL,
	}
}

// SpellRef is a spell reference as it is persisted in a deck sequence
type SpellRef struct {
	Name        string   `json:"name"`
	School      School   `json:"school"`
	PipCost     string   `json:"pip_cost"`
	CardEffects []string `json:"card_effects,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

package composer

import (
	"deckbuilder/config"
	"deckbuilder/models"
)

// Slot is one cell of the 8x8 deck grid
type Slot struct {
	Index int              `json:"index"`
	Row   int              `json:"row"`
	Col   int              `json:"col"`
	Spell *models.SpellRef `json:"spell"`
}

// SlotPosition maps a sequence index to its grid row and column
func SlotPosition(index int) (row, col int) {
	return index / config.DeckGridSize, index % config.DeckGridSize
}

// Grid returns every slot of the deck, empty slots included
func (c *Composer) Grid() []Slot {
	slots := make([]Slot, config.DeckCapacity)
	for i := range slots {
		row, col := SlotPosition(i)
		slots[i] = Slot{Index: i, Row: row, Col: col}
		if i < len(c.spells) {
			spell := c.spells[i]
			slots[i].Spell = &spell
		}
	}
	return slots
}

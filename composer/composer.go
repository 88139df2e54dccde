// Package composer holds the in-memory composition state of a deck: an ordered
// spell sequence that never grows past config.DeckCapacity.
package composer

import (
	"errors"
	"sort"

	"deckbuilder/config"
	"deckbuilder/models"
)

var (
	ErrDeckFull         = errors.New("deck is full")
	ErrSlotOutOfRange   = errors.New("slot index out of range")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrUnknownSortKey   = errors.New("unknown sort key")
	ErrUnknownDirection = errors.New("unknown sort direction")
	ErrEmptySpell       = errors.New("spell name is required")
)

// Result reports how much of a capacity-bound operation was applied
type Result struct {
	Requested int `json:"requested"`
	Applied   int `json:"applied"`
}

// Partial reports whether fewer items than requested were applied
func (r Result) Partial() bool {
	return r.Applied < r.Requested
}

// Composer is the state holder of one deck's spell sequence. It is not safe for
// concurrent use; autosave sessions serialize access to it.
type Composer struct {
	spells []models.SpellRef
}

// New copies spells into a composer, dropping anything past the capacity
func New(spells []models.SpellRef) *Composer {
	n := len(spells)
	if n > config.DeckCapacity {
		n = config.DeckCapacity
	}
	c := &Composer{spells: make([]models.SpellRef, n, config.DeckCapacity)}
	copy(c.spells, spells[:n])
	return c
}

// ValidateSequence checks a full sequence pushed by a client before it replaces a deck
func ValidateSequence(spells []models.SpellRef) error {
	if len(spells) > config.DeckCapacity {
		return ErrDeckFull
	}
	for _, s := range spells {
		if s.Name == "" {
			return ErrEmptySpell
		}
	}
	return nil
}

// Spells returns a copy of the current sequence
func (c *Composer) Spells() []models.SpellRef {
	out := make([]models.SpellRef, len(c.spells))
	copy(out, c.spells)
	return out
}

// Len returns the number of spells in the deck
func (c *Composer) Len() int {
	return len(c.spells)
}

// Remaining returns how many spells can still be added
func (c *Composer) Remaining() int {
	return config.DeckCapacity - len(c.spells)
}

// At returns the spell at index
func (c *Composer) At(index int) (models.SpellRef, error) {
	if index < 0 || index >= len(c.spells) {
		return models.SpellRef{}, ErrSlotOutOfRange
	}
	return c.spells[index], nil
}

// AddSpell appends qty copies of spell, capped by the remaining capacity
func (c *Composer) AddSpell(spell models.SpellRef, qty int) (Result, error) {
	if qty <= 0 {
		return Result{Requested: qty}, ErrInvalidQuantity
	}
	if spell.Name == "" {
		return Result{Requested: qty}, ErrEmptySpell
	}
	n := qty
	if n > c.Remaining() {
		n = c.Remaining()
	}
	for i := 0; i < n; i++ {
		c.spells = append(c.spells, spell)
	}
	return Result{Requested: qty, Applied: n}, nil
}

// AddSpells appends spells in order until the deck is full
func (c *Composer) AddSpells(spells []models.SpellRef) (Result, error) {
	res := Result{Requested: len(spells)}
	for _, s := range spells {
		if s.Name == "" {
			return res, ErrEmptySpell
		}
	}
	for _, s := range spells {
		if c.Remaining() == 0 {
			break
		}
		c.spells = append(c.spells, s)
		res.Applied++
	}
	return res, nil
}

// AddSpellToSlot puts spell into a grid slot. An occupied slot is replaced, an
// empty slot appends the spell at the end of the sequence.
func (c *Composer) AddSpellToSlot(index int, spell models.SpellRef) error {
	if spell.Name == "" {
		return ErrEmptySpell
	}
	if index < 0 || index >= config.DeckCapacity {
		return ErrSlotOutOfRange
	}
	// index < DeckCapacity, so a full deck always lands in the replace branch
	if index < len(c.spells) {
		c.spells[index] = spell
		return nil
	}
	c.spells = append(c.spells, spell)
	return nil
}

// ReplaceSpell swaps the spell at index for another one
func (c *Composer) ReplaceSpell(index int, spell models.SpellRef) error {
	if spell.Name == "" {
		return ErrEmptySpell
	}
	if index < 0 || index >= len(c.spells) {
		return ErrSlotOutOfRange
	}
	c.spells[index] = spell
	return nil
}

// RemoveSpell deletes the spell at index, shifting the following spells left
func (c *Composer) RemoveSpell(index int) error {
	if index < 0 || index >= len(c.spells) {
		return ErrSlotOutOfRange
	}
	c.spells = append(c.spells[:index], c.spells[index+1:]...)
	return nil
}

// BulkRemove deletes every valid index of the set, highest index first so earlier
// removals never shift a pending index.
func (c *Composer) BulkRemove(indices []int) Result {
	valid := c.validIndices(indices)
	res := Result{Requested: len(indices)}
	sort.Sort(sort.Reverse(sort.IntSlice(valid)))
	for _, i := range valid {
		c.spells = append(c.spells[:i], c.spells[i+1:]...)
		res.Applied++
	}
	return res
}

// BulkReplace puts spell in every valid index of the set
func (c *Composer) BulkReplace(indices []int, spell models.SpellRef) (Result, error) {
	res := Result{Requested: len(indices)}
	if spell.Name == "" {
		return res, ErrEmptySpell
	}
	for _, i := range c.validIndices(indices) {
		c.spells[i] = spell
		res.Applied++
	}
	return res, nil
}

// Move takes the spell at from and reinserts it at to
func (c *Composer) Move(from, to int) error {
	if from < 0 || from >= len(c.spells) || to < 0 || to >= len(c.spells) {
		return ErrSlotOutOfRange
	}
	if from == to {
		return nil
	}
	spell := c.spells[from]
	c.spells = append(c.spells[:from], c.spells[from+1:]...)
	c.spells = append(c.spells[:to], append([]models.SpellRef{spell}, c.spells[to:]...)...)
	return nil
}

// Reset replaces the whole sequence, as when a client pushes its full deck
func (c *Composer) Reset(spells []models.SpellRef) error {
	if err := ValidateSequence(spells); err != nil {
		return err
	}
	c.spells = append(c.spells[:0], spells...)
	return nil
}

// Clear empties the deck
func (c *Composer) Clear() int {
	n := len(c.spells)
	c.spells = c.spells[:0]
	return n
}

// validIndices dedupes the set and drops indices outside the sequence
func (c *Composer) validIndices(indices []int) []int {
	seen := make(map[int]struct{}, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(c.spells) {
			continue
		}
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	return out
}

package config

import "time"

const (
	// DeckCapacity is the maximum number of spells a deck can hold
	DeckCapacity = 64
	// DeckGridSize is the width and height of the slot grid
	DeckGridSize = 8
	// DefaultAutosaveDelay is the quiet period before a composition session is saved
	DefaultAutosaveDelay = 3 * time.Second
	// SaveTimeout bounds a single autosave write
	SaveTimeout = 5 * time.Second
	// MinDeckLevel and MaxDeckLevel bound the character level of a deck
	MinDeckLevel = 1
	MaxDeckLevel = 170
	// StarterDeckName is the deck every new account starts with
	StarterDeckName = "My First Deck"
)

package spells

const (
	ErrSpellNotFound    = "Spell not found"
	ErrFailedToSearch   = "Failed to search spells"
	ErrFailedToGetSpell = "Failed to get spell"
)

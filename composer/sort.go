package composer

import (
	"sort"
	"strings"

	"deckbuilder/models"
)

// SortKey selects the primary ordering of a deck sort
type SortKey string

const (
	SortBySchool  SortKey = "school"
	SortByPips    SortKey = "pips"
	SortByUtility SortKey = "utility"
)

// Direction applies to the primary key only; ties always fall back to pip cost ascending
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type sortEntry struct {
	spell   models.SpellRef
	primary string
	rank    int
	pips    int
}

// Sort reorders the deck. The sort is stable, so spells equal on both keys keep
// their relative order.
func (c *Composer) Sort(key SortKey, dir Direction) error {
	if dir == "" {
		dir = Ascending
	}
	if dir != Ascending && dir != Descending {
		return ErrUnknownDirection
	}
	if key != SortBySchool && key != SortByPips && key != SortByUtility {
		return ErrUnknownSortKey
	}

	entries := make([]sortEntry, len(c.spells))
	for i, s := range c.spells {
		entries[i] = sortEntry{spell: s, pips: pipSortKey(s.PipCost)}
		switch key {
		case SortBySchool:
			entries[i].primary = strings.ToLower(string(s.School))
		case SortByPips:
			entries[i].rank = entries[i].pips
		case SortByUtility:
			entries[i].rank = UtilityRank(Utility(s.CardEffects))
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		cmp := strings.Compare(a.primary, b.primary)
		if cmp == 0 {
			cmp = compareInts(a.rank, b.rank)
		}
		if dir == Descending {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
		return a.pips < b.pips
	})

	for i, e := range entries {
		c.spells[i] = e.spell
	}
	return nil
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

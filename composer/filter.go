package composer

import (
	"strings"

	"deckbuilder/models"
)

// Filter selects spells of the deck. Empty fields match everything.
type Filter struct {
	Schools   []models.School `json:"schools"`
	Utilities []UtilityType   `json:"utilities"`
	Effects   []string        `json:"effects"`
	MinPips   *int            `json:"min_pips"`
	MaxPips   *int            `json:"max_pips"`
	VariableX *bool           `json:"variable_x"`
	FreeWords string          `json:"free_words"`
}

// Match returns the indices of the spells accepted by the filter, in sequence order
func (c *Composer) Match(f Filter) []int {
	out := []int{}
	for i, s := range c.spells {
		if f.accepts(s) {
			out = append(out, i)
		}
	}
	return out
}

func (f Filter) accepts(s models.SpellRef) bool {
	if len(f.Schools) > 0 {
		matched := false
		for _, school := range f.Schools {
			if strings.EqualFold(string(school), string(s.School)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if len(f.Utilities) > 0 {
		u := Utility(s.CardEffects)
		matched := false
		for _, want := range f.Utilities {
			if want == u {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if len(f.Effects) > 0 && !containsAny(s.CardEffects, f.Effects) {
		return false
	}

	pips, fixed := PipValue(s.PipCost)
	if f.VariableX != nil && *f.VariableX == fixed {
		return false
	}
	if f.MinPips != nil && (!fixed || pips < *f.MinPips) {
		return false
	}
	if f.MaxPips != nil && (!fixed || pips > *f.MaxPips) {
		return false
	}

	if f.FreeWords != "" {
		hay := strings.ToLower(s.Name + " " + strings.Join(s.CardEffects, " "))
		for _, kw := range strings.Fields(strings.ToLower(f.FreeWords)) {
			if !strings.Contains(hay, kw) {
				return false
			}
		}
	}
	return true
}

func containsAny(hay []string, needles []string) bool {
	for _, n := range needles {
		for _, h := range hay {
			if strings.EqualFold(h, n) {
				return true
			}
		}
	}
	return false
}

package composer

import (
	"math"

	"deckbuilder/config"
	"deckbuilder/models"
)

// SchoolCount is the number of spells of one school in a deck
type SchoolCount struct {
	School  models.School `json:"school"`
	Count   int           `json:"count"`
	Percent float64       `json:"percent"`
}

// UtilityCount is the number of spells of one utility type in a deck
type UtilityCount struct {
	Utility UtilityType `json:"utility"`
	Count   int         `json:"count"`
}

// Breakdown holds the statistics derived from a deck sequence
type Breakdown struct {
	Total          int            `json:"total"`
	Capacity       int            `json:"capacity"`
	Remaining      int            `json:"remaining"`
	DistinctSpells int            `json:"distinct_spells"`
	AveragePips    float64        `json:"average_pips"`
	VariableCost   int            `json:"variable_cost"`
	Schools        []SchoolCount  `json:"schools"`
	Utilities      []UtilityCount `json:"utilities"`
}

// Breakdown computes the deck statistics. Schools and utilities with no spell are
// omitted; the slices follow models.Schools and UtilityOrder.
func (c *Composer) Breakdown() Breakdown {
	b := Breakdown{
		Total:     len(c.spells),
		Capacity:  config.DeckCapacity,
		Remaining: c.Remaining(),
		Schools:   []SchoolCount{},
		Utilities: []UtilityCount{},
	}

	schools := map[models.School]int{}
	utilities := map[UtilityType]int{}
	distinct := map[string]struct{}{}
	pipTotal, fixedCount := 0, 0

	for _, s := range c.spells {
		schools[s.School]++
		utilities[Utility(s.CardEffects)]++
		distinct[s.Name] = struct{}{}
		if v, ok := PipValue(s.PipCost); ok {
			pipTotal += v
			fixedCount++
		} else {
			b.VariableCost++
		}
	}

	b.DistinctSpells = len(distinct)
	if fixedCount > 0 {
		b.AveragePips = round2(float64(pipTotal) / float64(fixedCount))
	}
	for _, school := range models.Schools {
		if n := schools[school]; n > 0 {
			b.Schools = append(b.Schools, SchoolCount{
				School:  school,
				Count:   n,
				Percent: round2(float64(n) * 100 / float64(b.Total)),
			})
		}
	}
	for _, u := range UtilityOrder {
		if n := utilities[u]; n > 0 {
			b.Utilities = append(b.Utilities, UtilityCount{Utility: u, Count: n})
		}
	}
	return b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

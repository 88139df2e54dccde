package composer

import (
	"testing"

	"deckbuilder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdown(t *testing.T) {
	c := New([]models.SpellRef{
		spell("Fire Cat", models.SchoolFire, "1", "Damage"),
		spell("Fire Cat", models.SchoolFire, "1", "Damage"),
		spell("Fireblade", models.SchoolFire, "0", "Blade"),
		spell("Tempest", models.SchoolStorm, "X", "AoE", "Damage"),
	})

	b := c.Breakdown()
	assert.Equal(t, 4, b.Total)
	assert.Equal(t, 60, b.Remaining)
	assert.Equal(t, 3, b.DistinctSpells)
	assert.Equal(t, 1, b.VariableCost)
	assert.InDelta(t, 0.67, b.AveragePips, 0.001)
	assert.Equal(t, []SchoolCount{
		{School: models.SchoolFire, Count: 3, Percent: 75},
		{School: models.SchoolStorm, Count: 1, Percent: 25},
	}, b.Schools)
	assert.Equal(t, []UtilityCount{
		{Utility: UtilityDamage, Count: 3},
		{Utility: UtilityBlade, Count: 1},
	}, b.Utilities)
}

func TestBreakdownEmptyDeck(t *testing.T) {
	b := New(nil).Breakdown()
	assert.Equal(t, 0, b.Total)
	assert.Zero(t, b.AveragePips)
	assert.Empty(t, b.Schools)
}

func TestGrid(t *testing.T) {
	c := New(numbered(10))
	grid := c.Grid()
	require.Len(t, grid, 64)

	assert.Equal(t, Slot{Index: 9, Row: 1, Col: 1, Spell: grid[9].Spell}, grid[9])
	require.NotNil(t, grid[9].Spell)
	assert.Equal(t, "spell-09", grid[9].Spell.Name)
	assert.Nil(t, grid[10].Spell)
	assert.Equal(t, 7, grid[63].Row)
	assert.Equal(t, 7, grid[63].Col)
}

func TestMatch(t *testing.T) {
	c := utilityDeck()
	minPips := 2
	variable := false

	assert.Equal(t, []int{0, 4}, c.Match(Filter{Schools: []models.School{"fire"}}))
	assert.Equal(t, []int{0, 2, 5}, c.Match(Filter{Utilities: []UtilityType{UtilityBlade}}))
	assert.Equal(t, []int{0, 1, 3}, c.Match(Filter{MinPips: &minPips, VariableX: &variable}))
	assert.Equal(t, []int{1, 3, 4}, c.Match(Filter{FreeWords: "damage"}))
	assert.Equal(t, []int{}, c.Match(Filter{Effects: []string{"Heal"}}))
}

package composer

import (
	"testing"

	"deckbuilder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utilityDeck() *Composer {
	return New([]models.SpellRef{
		spell("A", models.SchoolFire, "2", "Blade"),
		spell("B", models.SchoolStorm, "3", "Damage"),
		spell("C", models.SchoolIce, "1", "Blade"),
		spell("D", models.SchoolMyth, "3", "Damage"),
		spell("E", models.SchoolFire, "X", "Damage"),
		spell("F", models.SchoolLife, "1", "Blade"),
	})
}

func TestSortByUtilityBreaksTiesOnPipsStably(t *testing.T) {
	c := utilityDeck()
	require.NoError(t, c.Sort(SortByUtility, Ascending))
	assert.Equal(t, []string{"B", "D", "E", "C", "F", "A"}, names(c.Spells()))
}

func TestSortByUtilityDescendingKeepsPipsAscending(t *testing.T) {
	c := utilityDeck()
	require.NoError(t, c.Sort(SortByUtility, Descending))
	assert.Equal(t, []string{"C", "F", "A", "B", "D", "E"}, names(c.Spells()))
}

func TestSortBySchoolName(t *testing.T) {
	c := New([]models.SpellRef{
		spell("fire-3", models.SchoolFire, "3"),
		spell("balance-1", models.SchoolBalance, "1"),
		spell("fire-1", models.SchoolFire, "1"),
		spell("death-2", models.SchoolDeath, "2"),
	})
	require.NoError(t, c.Sort(SortBySchool, Ascending))
	assert.Equal(t, []string{"balance-1", "death-2", "fire-1", "fire-3"}, names(c.Spells()))

	require.NoError(t, c.Sort(SortBySchool, Descending))
	assert.Equal(t, []string{"fire-1", "fire-3", "death-2", "balance-1"}, names(c.Spells()))
}

func TestSortByPipsPutsVariableCostLast(t *testing.T) {
	c := New([]models.SpellRef{
		spell("x", models.SchoolStorm, "X"),
		spell("four", models.SchoolStorm, "4"),
		spell("zero", models.SchoolStorm, "0"),
		spell("four-again", models.SchoolStorm, "4"),
	})
	require.NoError(t, c.Sort(SortByPips, ""))
	assert.Equal(t, []string{"zero", "four", "four-again", "x"}, names(c.Spells()))

	require.NoError(t, c.Sort(SortByPips, Descending))
	assert.Equal(t, []string{"x", "four", "four-again", "zero"}, names(c.Spells()))
}

func TestSortRejectsUnknownKeyAndDirection(t *testing.T) {
	c := New(nil)
	assert.ErrorIs(t, c.Sort("color", Ascending), ErrUnknownSortKey)
	assert.ErrorIs(t, c.Sort(SortByPips, "sideways"), ErrUnknownDirection)
}

func TestPipValue(t *testing.T) {
	tests := []struct {
		cost  string
		value int
		ok    bool
	}{
		{"3", 3, true},
		{" 4 ", 4, true},
		{"2 + 1 Shadow", 2, true},
		{"X", 0, false},
		{"x", 0, false},
		{"", 0, false},
		{"Shadow", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.cost, func(t *testing.T) {
			v, ok := PipValue(tt.cost)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestUtility(t *testing.T) {
	assert.Equal(t, UtilityDamage, Utility([]string{"Trap", "damage"}))
	assert.Equal(t, UtilityTrap, Utility([]string{"Trap"}))
	assert.Equal(t, UtilityOther, Utility(nil))
	assert.Equal(t, UtilityOther, Utility([]string{"sparkles"}))

	u, ok := ParseUtility("aoe")
	assert.True(t, ok)
	assert.Equal(t, UtilityAoE, u)
}

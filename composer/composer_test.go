package composer

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"deckbuilder/config"
	"deckbuilder/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spell(name string, school models.School, pips string, effects ...string) models.SpellRef {
	return models.SpellRef{Name: name, School: school, PipCost: pips, CardEffects: effects}
}

func names(spells []models.SpellRef) []string {
	out := make([]string, len(spells))
	for i, s := range spells {
		out[i] = s.Name
	}
	return out
}

func numbered(n int) []models.SpellRef {
	out := make([]models.SpellRef, n)
	for i := range out {
		out[i] = spell(fmt.Sprintf("spell-%02d", i), models.SchoolFire, "1", "Damage")
	}
	return out
}

func TestNewTruncatesToCapacity(t *testing.T) {
	c := New(numbered(70))
	assert.Equal(t, config.DeckCapacity, c.Len())
	assert.Equal(t, 0, c.Remaining())
}

func TestAddSpellCapsAtCapacity(t *testing.T) {
	c := New(numbered(60))

	res, err := c.AddSpell(spell("Fire Cat", models.SchoolFire, "1", "Damage"), 10)
	require.NoError(t, err)
	assert.Equal(t, Result{Requested: 10, Applied: 4}, res)
	assert.True(t, res.Partial())
	assert.Equal(t, 64, c.Len())

	res, err = c.AddSpell(spell("Fire Cat", models.SchoolFire, "1", "Damage"), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Applied)
	assert.Equal(t, 64, c.Len())
}

func TestAddSpellRejectsBadInput(t *testing.T) {
	c := New(nil)

	_, err := c.AddSpell(spell("Fire Cat", models.SchoolFire, "1"), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = c.AddSpell(models.SpellRef{}, 2)
	assert.ErrorIs(t, err, ErrEmptySpell)
	assert.Equal(t, 0, c.Len())
}

func TestAddSpellsStopsAtCapacity(t *testing.T) {
	c := New(numbered(62))

	res, err := c.AddSpells(numbered(5))
	require.NoError(t, err)
	assert.Equal(t, Result{Requested: 5, Applied: 2}, res)
	assert.Equal(t, []string{"spell-00", "spell-01"}, names(c.Spells())[62:])
}

func TestCapacityNeverExceeded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := New(nil)

	for step := 0; step < 2000; step++ {
		s := spell(fmt.Sprintf("s%d", step), models.SchoolIce, "2", "Ward")
		switch rng.Intn(5) {
		case 0:
			_, _ = c.AddSpell(s, rng.Intn(20)+1)
		case 1:
			_, _ = c.AddSpells(numbered(rng.Intn(30)))
		case 2:
			_ = c.AddSpellToSlot(rng.Intn(config.DeckCapacity), s)
		case 3:
			c.BulkRemove([]int{rng.Intn(70), rng.Intn(70)})
		case 4:
			_ = c.RemoveSpell(rng.Intn(70))
		}
		require.LessOrEqual(t, c.Len(), config.DeckCapacity, "step %d", step)
	}
}

func TestAddSpellToSlot(t *testing.T) {
	c := New(numbered(3))
	bolt := spell("Storm Bolt", models.SchoolStorm, "1", "Damage")

	require.NoError(t, c.AddSpellToSlot(1, bolt))
	assert.Equal(t, "Storm Bolt", c.Spells()[1].Name)
	assert.Equal(t, 3, c.Len())

	// an empty slot appends at the end of the dense sequence
	require.NoError(t, c.AddSpellToSlot(40, bolt))
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, "Storm Bolt", c.Spells()[3].Name)

	assert.ErrorIs(t, c.AddSpellToSlot(64, bolt), ErrSlotOutOfRange)
	assert.ErrorIs(t, c.AddSpellToSlot(-1, bolt), ErrSlotOutOfRange)

	assert.ErrorIs(t, c.AddSpellToSlot(0, models.SpellRef{}), ErrEmptySpell)
}

func TestAddSpellToSlotOnFullDeckReplaces(t *testing.T) {
	c := New(numbered(63))
	require.NoError(t, c.AddSpellToSlot(63, spell("Last", models.SchoolLife, "0", "Heal")))
	assert.Equal(t, 0, c.Remaining())

	require.NoError(t, c.AddSpellToSlot(63, spell("Storm Bolt", models.SchoolStorm, "1", "Damage")))
	assert.Equal(t, 64, c.Len())
	assert.Equal(t, "Storm Bolt", c.Spells()[63].Name)
}

func TestValidateSequence(t *testing.T) {
	assert.NoError(t, ValidateSequence(numbered(64)))
	assert.ErrorIs(t, ValidateSequence(numbered(65)), ErrDeckFull)
	assert.ErrorIs(t, ValidateSequence([]models.SpellRef{{School: models.SchoolFire}}), ErrEmptySpell)
}

func TestReplaceAndRemoveBounds(t *testing.T) {
	c := New(numbered(2))
	heal := spell("Satyr", models.SchoolLife, "4", "Heal")

	require.NoError(t, c.ReplaceSpell(0, heal))
	assert.Equal(t, "Satyr", c.Spells()[0].Name)
	assert.ErrorIs(t, c.ReplaceSpell(2, heal), ErrSlotOutOfRange)

	require.NoError(t, c.RemoveSpell(0))
	assert.Equal(t, []string{"spell-01"}, names(c.Spells()))
	assert.ErrorIs(t, c.RemoveSpell(1), ErrSlotOutOfRange)
}

func TestBulkRemoveMatchesSingleRemovesHighestFirst(t *testing.T) {
	indices := []int{3, 17, 3, 0, 42, -1, 19}

	bulk := New(numbered(20))
	res := bulk.BulkRemove(indices)

	single := New(numbered(20))
	for _, i := range []int{19, 17, 3, 0} {
		require.NoError(t, single.RemoveSpell(i))
	}

	if diff := cmp.Diff(names(single.Spells()), names(bulk.Spells())); diff != "" {
		t.Fatalf("bulk remove mismatch (-single +bulk):\n%s", diff)
	}
	assert.Equal(t, Result{Requested: 7, Applied: 4}, res)
}

func TestBulkRemoveProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		size := rng.Intn(config.DeckCapacity + 1)
		indices := make([]int, rng.Intn(12))
		for i := range indices {
			indices[i] = rng.Intn(size+4) - 2
		}

		bulk := New(numbered(size))
		bulk.BulkRemove(indices)

		single := New(numbered(size))
		ordered := append([]int(nil), indices...)
		sort.Sort(sort.Reverse(sort.IntSlice(ordered)))
		last := -1 << 31
		for _, i := range ordered {
			if i == last {
				continue
			}
			last = i
			_ = single.RemoveSpell(i)
		}

		require.Empty(t, cmp.Diff(names(single.Spells()), names(bulk.Spells())), "round %d", round)
	}
}

func TestBulkReplace(t *testing.T) {
	c := New(numbered(4))
	res, err := c.BulkReplace([]int{0, 2, 2, 9}, spell("Tower Shield", models.SchoolIce, "0", "Shield"))
	require.NoError(t, err)
	assert.Equal(t, Result{Requested: 4, Applied: 2}, res)
	assert.Equal(t, []string{"Tower Shield", "spell-01", "Tower Shield", "spell-03"}, names(c.Spells()))
}

func TestMove(t *testing.T) {
	c := New(numbered(4))
	require.NoError(t, c.Move(0, 3))
	assert.Equal(t, []string{"spell-01", "spell-02", "spell-03", "spell-00"}, names(c.Spells()))

	require.NoError(t, c.Move(3, 1))
	assert.Equal(t, []string{"spell-01", "spell-00", "spell-02", "spell-03"}, names(c.Spells()))

	assert.ErrorIs(t, c.Move(0, 4), ErrSlotOutOfRange)
}

func TestClear(t *testing.T) {
	c := New(numbered(5))
	assert.Equal(t, 5, c.Clear())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, config.DeckCapacity, c.Remaining())
}

func TestSpellsReturnsCopy(t *testing.T) {
	c := New(numbered(2))
	out := c.Spells()
	out[0].Name = "changed"
	assert.Equal(t, "spell-00", c.Spells()[0].Name)
}

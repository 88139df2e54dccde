package export

import (
	"bytes"
	"strings"
	"testing"

	"deckbuilder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func ref(name string, school models.School, pips string, effects ...string) models.SpellRef {
	return models.SpellRef{Name: name, School: school, PipCost: pips, CardEffects: effects}
}

func sampleSpells() []models.SpellRef {
	cat := ref("Fire Cat", models.SchoolFire, "1", "Damage")
	feint := ref("Feint", models.SchoolBalance, "1", "Charm")
	return []models.SpellRef{cat, feint, cat, cat, feint, ref("Tempest", models.SchoolStorm, "X", "AoE")}
}

func TestTextGroupsInFirstAppearanceOrder(t *testing.T) {
	got := Text("Fire PvP", sampleSpells())
	assert.Equal(t, "# Fire PvP\n3x Fire Cat\n2x Feint\n1x Tempest\n", got)
	assert.Equal(t, "", Text("", nil))
}

func TestParseTextRoundTrip(t *testing.T) {
	names, err := ParseText(strings.NewReader(Text("Deck", sampleSpells())))
	require.NoError(t, err)
	assert.Equal(t, []string{"Fire Cat", "Fire Cat", "Fire Cat", "Feint", "Feint", "Tempest"}, names)
}

func TestParseTextFormats(t *testing.T) {
	names, err := ParseText(strings.NewReader("\n# comment\n2 Feint\nTower Shield\n3X Fire Cat\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Feint", "Feint", "Tower Shield", "Fire Cat", "Fire Cat", "Fire Cat"}, names)

	_, err = ParseText(strings.NewReader("65x Fire Cat\n"))
	assert.Error(t, err)

	_, err = ParseText(strings.NewReader("40x Fire Cat\n30x Feint\n"))
	assert.Error(t, err)

	_, err = ParseText(strings.NewReader("1x Feint\n9223372036854775807x Fire Cat\n"))
	assert.Error(t, err, "huge counts must not wrap around the capacity check")

	_, err = ParseText(strings.NewReader("0x Feint\n"))
	assert.Error(t, err)
}

func TestWorkbook(t *testing.T) {
	deck := &models.Deck{Name: "Fire PvP", School: models.SchoolFire, Level: 150}
	data, err := WorkbookBytes(deck, sampleSpells())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{deckSheet, breakdownSheet}, f.GetSheetList())

	rows, err := f.GetRows(deckSheet)
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, "Spell", rows[0][3])
	assert.Equal(t, []string{"6", "1", "6", "Tempest", "Storm", "X", "AoE", "AoE"}, rows[6])

	value, err := f.GetCellValue(breakdownSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "6", value)
}

func TestReadWorkbookRoundTrip(t *testing.T) {
	deck := &models.Deck{Name: "Fire PvP", School: models.SchoolFire, Level: 150}
	data, err := WorkbookBytes(deck, sampleSpells())
	require.NoError(t, err)

	names, err := ReadWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Fire Cat", "Feint", "Fire Cat", "Fire Cat", "Feint", "Tempest"}, names)
}

package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"deckbuilder/composer"
	"deckbuilder/models"

	"github.com/xuri/excelize/v2"
)

const (
	deckSheet      = "Deck"
	breakdownSheet = "Breakdown"
)

var deckHeader = []interface{}{"Slot", "Row", "Column", "Spell", "School", "Pips", "Utility", "Effects"}

// Workbook builds a spreadsheet with one row per occupied slot and a breakdown sheet
func Workbook(deck *models.Deck, spells []models.SpellRef) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", deckSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(breakdownSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(deckSheet, "A1", &deckHeader); err != nil {
		f.Close()
		return nil, err
	}
	for i, s := range spells {
		row, col := composer.SlotPosition(i)
		values := []interface{}{
			i + 1, row + 1, col + 1, s.Name, string(s.School), s.PipCost,
			string(composer.Utility(s.CardEffects)), strings.Join(s.CardEffects, ", "),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(deckSheet, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := writeBreakdown(f, deck, composer.New(spells).Breakdown()); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeBreakdown(f *excelize.File, deck *models.Deck, b composer.Breakdown) error {
	rows := [][]interface{}{
		{"Deck", deck.Name},
		{"School", string(deck.School)},
		{"Level", deck.Level},
		{"Spells", b.Total},
		{"Remaining", b.Remaining},
		{"Distinct spells", b.DistinctSpells},
		{"Average pips", b.AveragePips},
		{"X cost spells", b.VariableCost},
		{},
		{"School", "Count", "Percent"},
	}
	for _, s := range b.Schools {
		rows = append(rows, []interface{}{string(s.School), s.Count, s.Percent})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Utility", "Count"})
	for _, u := range b.Utilities {
		rows = append(rows, []interface{}{string(u.Utility), u.Count})
	}

	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(breakdownSheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// WorkbookBytes renders the workbook to xlsx bytes
func WorkbookBytes(deck *models.Deck, spells []models.SpellRef) ([]byte, error) {
	f, err := Workbook(deck, spells)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadWorkbook extracts spell names from the first sheet that has a "Spell" header column
func ReadWorkbook(r io.Reader) ([]string, error) {
	xlsx, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer xlsx.Close()

	for _, sheet := range xlsx.GetSheetList() {
		rows, err := xlsx.GetRows(sheet)
		if err != nil {
			return nil, err
		}
		if len(rows) < 1 {
			continue
		}

		nameIdx := -1
		for i, cell := range rows[0] {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "spell", "name", "spell name":
				nameIdx = i
			}
		}
		if nameIdx == -1 {
			continue
		}

		names := []string{}
		for _, row := range rows[1:] {
			if len(row) <= nameIdx || strings.TrimSpace(row[nameIdx]) == "" {
				continue
			}
			names = append(names, strings.TrimSpace(row[nameIdx]))
		}
		return names, nil
	}
	return nil, fmt.Errorf("no sheet with a spell column found")
}

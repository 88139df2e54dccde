// Package catalog loads spell catalog seed files and upserts them into the database.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"deckbuilder/models"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrMissingColumn     = errors.New("missing required column")
)

// Entry is one spell as written in a seed file
type Entry struct {
	Name        string   `yaml:"name"`
	School      string   `yaml:"school"`
	PipCost     string   `yaml:"pip_cost"`
	CardType    string   `yaml:"card_type"`
	CardEffects []string `yaml:"card_effects"`
	Accuracy    string   `yaml:"accuracy"`
	Description string   `yaml:"description"`
	WikiURL     string   `yaml:"wiki_url"`
	ImageURL    string   `yaml:"image_url"`
}

// LoadFile reads a .csv, .yaml or .yml seed file
func LoadFile(path string) ([]models.Spell, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(fp)
	case ".yaml", ".yml":
		return LoadYAML(fp)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// LoadCSV parses a catalog with a header row. Column order is free.
func LoadCSV(r io.Reader) ([]models.Spell, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("catalog csv has no header")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"name", "school", "pip_cost"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	entries := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		entries = append(entries, Entry{
			Name:        get(row, "name"),
			School:      get(row, "school"),
			PipCost:     get(row, "pip_cost"),
			CardType:    get(row, "card_type"),
			CardEffects: parseListCell(get(row, "card_effects")),
			Accuracy:    get(row, "accuracy"),
			Description: get(row, "description"),
			WikiURL:     get(row, "wiki_url"),
			ImageURL:    get(row, "image_url"),
		})
	}
	return toSpells(entries, 2)
}

// LoadYAML parses a catalog written as a list of entries
func LoadYAML(r io.Reader) ([]models.Spell, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return []models.Spell{}, nil
		}
		return nil, err
	}
	return toSpells(entries, 1)
}

// toSpells validates entries; firstLine is used to number them in errors
func toSpells(entries []Entry, firstLine int) ([]models.Spell, error) {
	spells := make([]models.Spell, 0, len(entries))
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		line := firstLine + i
		spell, err := e.Spell()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", line, err)
		}
		key := strings.ToLower(spell.Name)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("entry %d: duplicate spell %q (first at entry %d)", line, spell.Name, prev)
		}
		seen[key] = line
		spells = append(spells, spell)
	}
	return spells, nil
}

// Spell validates the entry and converts it to a catalog row
func (e Entry) Spell() (models.Spell, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return models.Spell{}, fmt.Errorf("spell name is required")
	}
	school, ok := models.ParseSchool(e.School)
	if !ok {
		return models.Spell{}, fmt.Errorf("spell %q: unknown school %q", name, e.School)
	}
	pip := strings.ToUpper(strings.TrimSpace(e.PipCost))
	if pip == "" {
		return models.Spell{}, fmt.Errorf("spell %q: pip cost is required", name)
	}

	effects := make([]string, 0, len(e.CardEffects))
	for _, eff := range e.CardEffects {
		if t := strings.TrimSpace(eff); t != "" {
			effects = append(effects, t)
		}
	}

	return models.Spell{
		Name:        name,
		School:      school,
		PipCost:     pip,
		CardType:    strings.TrimSpace(e.CardType),
		CardEffects: datatypes.NewJSONSlice(effects),
		Accuracy:    strings.TrimSpace(e.Accuracy),
		Description: strings.TrimSpace(e.Description),
		WikiURL:     strings.TrimSpace(e.WikiURL),
		ImageURL:    strings.TrimSpace(e.ImageURL),
	}, nil
}

// parseListCell splits "Damage / Trap; Shield" style cells
func parseListCell(s string) []string {
	s = strings.NewReplacer(";", "/", "|", "/", ",", "/").Replace(s)
	out := []string{}
	for _, p := range strings.Split(s, "/") {
		t := strings.TrimSpace(p)
		if t != "" && t != "-" {
			out = append(out, t)
		}
	}
	return out
}

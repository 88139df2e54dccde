// Package export writes decks as shareable text lists and spreadsheets, and reads them back.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"deckbuilder/config"
	"deckbuilder/models"
)

// Line is one "Nx Spell" entry of a text deck list
type Line struct {
	Count int
	Name  string
}

// Group collapses a sequence into counts in first-appearance order
func Group(spells []models.SpellRef) []Line {
	index := map[string]int{}
	lines := []Line{}
	for _, s := range spells {
		if i, ok := index[s.Name]; ok {
			lines[i].Count++
			continue
		}
		index[s.Name] = len(lines)
		lines = append(lines, Line{Count: 1, Name: s.Name})
	}
	return lines
}

// Text renders the deck as "# name" followed by "Nx Spell" lines
func Text(name string, spells []models.SpellRef) string {
	var b strings.Builder
	if name != "" {
		b.WriteString("# ")
		b.WriteString(name)
		b.WriteByte('\n')
	}
	for _, l := range Group(spells) {
		fmt.Fprintf(&b, "%dx %s\n", l.Count, l.Name)
	}
	return b.String()
}

// ParseText reads a text deck list back into spell names, one per copy.
// Blank lines and "#" lines are skipped; a line without a count means one copy.
func ParseText(r io.Reader) ([]string, error) {
	names := []string{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		count, name := parseLine(line)
		if name == "" {
			return nil, fmt.Errorf("line %d: missing spell name", lineNo)
		}
		if count < 1 || count > config.DeckCapacity-len(names) {
			return nil, fmt.Errorf("line %d: deck would hold more than %d spells", lineNo, config.DeckCapacity)
		}
		for i := 0; i < count; i++ {
			names = append(names, name)
		}
	}
	return names, scanner.Err()
}

func parseLine(line string) (int, string) {
	head, rest, found := strings.Cut(line, " ")
	if !found {
		return 1, line
	}
	n := strings.TrimSuffix(strings.ToLower(head), "x")
	count, err := strconv.Atoi(n)
	if err != nil {
		return 1, line
	}
	return count, strings.TrimSpace(rest)
}

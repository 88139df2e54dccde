package composer

import (
	"strconv"
	"strings"
	"unicode"
)

// PipValue parses a catalog pip cost. Costs containing "X" are variable and
// report ok=false; otherwise the leading number is returned ("2 + 1 Shadow" is 2).
func PipValue(cost string) (value int, ok bool) {
	cost = strings.TrimSpace(cost)
	if cost == "" || strings.ContainsAny(cost, "xX") {
		return 0, false
	}
	end := strings.IndexFunc(cost, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == 0 {
		return 0, false
	}
	if end > 0 {
		cost = cost[:end]
	}
	v, err := strconv.Atoi(cost)
	if err != nil {
		return 0, false
	}
	return v, true
}

// variablePipRank sorts variable costs after every fixed cost
const variablePipRank = 1 << 20

// pipSortKey orders fixed costs numerically and variable costs after all of them
func pipSortKey(cost string) int {
	if v, ok := PipValue(cost); ok {
		return v
	}
	return variablePipRank
}

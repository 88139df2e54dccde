package composer

import "strings"

// UtilityType is the role a spell plays in a deck, derived from its card effects
type UtilityType string

const (
	UtilityDamage       UtilityType = "Damage"
	UtilityAoE          UtilityType = "AoE"
	UtilityDoT          UtilityType = "Damage over time"
	UtilityHeal         UtilityType = "Heal"
	UtilityBlade        UtilityType = "Blade"
	UtilityTrap         UtilityType = "Trap"
	UtilityCharm        UtilityType = "Charm"
	UtilityWard         UtilityType = "Ward"
	UtilityShield       UtilityType = "Shield"
	UtilityAura         UtilityType = "Aura"
	UtilityGlobal       UtilityType = "Global"
	UtilityMinion       UtilityType = "Minion"
	UtilityManipulation UtilityType = "Manipulation"
	UtilityOther        UtilityType = "Other"
)

// UtilityOrder is the rank order used when sorting by utility
var UtilityOrder = []UtilityType{
	UtilityDamage, UtilityAoE, UtilityDoT, UtilityHeal, UtilityBlade, UtilityTrap, UtilityCharm,
	UtilityWard, UtilityShield, UtilityAura, UtilityGlobal, UtilityMinion, UtilityManipulation,
	UtilityOther,
}

// effect tag aliases, matched case-insensitively
var utilityAliases = map[string]UtilityType{
	"damage":           UtilityDamage,
	"single target":    UtilityDamage,
	"aoe":              UtilityAoE,
	"all enemies":      UtilityAoE,
	"dot":              UtilityDoT,
	"damage over time": UtilityDoT,
	"heal":             UtilityHeal,
	"healing":          UtilityHeal,
	"hot":              UtilityHeal,
	"blade":            UtilityBlade,
	"trap":             UtilityTrap,
	"charm":            UtilityCharm,
	"weakness":         UtilityCharm,
	"ward":             UtilityWard,
	"shield":           UtilityShield,
	"absorb":           UtilityShield,
	"aura":             UtilityAura,
	"global":           UtilityGlobal,
	"bubble":           UtilityGlobal,
	"minion":           UtilityMinion,
	"summon":           UtilityMinion,
	"manipulation":     UtilityManipulation,
	"dispel":           UtilityManipulation,
	"stun":             UtilityManipulation,
	"pip gain":         UtilityManipulation,
}

var utilityRanks = func() map[UtilityType]int {
	ranks := make(map[UtilityType]int, len(UtilityOrder))
	for i, u := range UtilityOrder {
		ranks[u] = i
	}
	return ranks
}()

// Utility returns the best ranked utility type among the spell's effects
func Utility(effects []string) UtilityType {
	best := UtilityOther
	for _, e := range effects {
		u, ok := utilityAliases[strings.ToLower(strings.TrimSpace(e))]
		if ok && utilityRanks[u] < utilityRanks[best] {
			best = u
		}
	}
	return best
}

// UtilityRank returns the position of the utility type in UtilityOrder
func UtilityRank(u UtilityType) int {
	if r, ok := utilityRanks[u]; ok {
		return r
	}
	return utilityRanks[UtilityOther]
}

// ParseUtility resolves a utility type name case-insensitively
func ParseUtility(name string) (UtilityType, bool) {
	for _, u := range UtilityOrder {
		if strings.EqualFold(string(u), strings.TrimSpace(name)) {
			return u, true
		}
	}
	return "", false
}

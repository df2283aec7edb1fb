package models

import (
	"fmt"
	"strings"
)

// ResourceType represents the resources a unit costs
type ResourceType string

const (
	Food ResourceType = "food"
	Wood ResourceType = "wood"
	Gold ResourceType = "gold"
)

// AllResourceTypes returns all resource types in deterministic order
func AllResourceTypes() []ResourceType {
	return []ResourceType{Food, Wood, Gold}
}

// Side identifies one of the two armies in a matchup
type Side string

const (
	SideA Side = "side_a"
	SideB Side = "side_b"
)

// AllSides returns both sides in evaluation order
func AllSides() []Side {
	return []Side{SideA, SideB}
}

// Ruleset selects the unit catalog and the damage model used for a run.
//
// The flat ruleset uses melee/pierce attack and armor pairs with an optional
// bonus attack. The armor-class ruleset sums per-class attack minus armor and
// enables trample and accuracy.
type Ruleset string

const (
	RulesetFlat       Ruleset = "flat"
	RulesetArmorClass Ruleset = "armor-class"
)

// AllRulesets returns all rulesets
func AllRulesets() []Ruleset {
	return []Ruleset{RulesetFlat, RulesetArmorClass}
}

// ParseRuleset parses a ruleset name. Empty means flat; "v1" and "v2" are
// accepted as aliases.
func ParseRuleset(s string) (Ruleset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flat", "v1":
		return RulesetFlat, nil
	case "armor-class", "armor_class", "armorclass", "v2":
		return RulesetArmorClass, nil
	}
	return "", Validationf("unknown ruleset: %s", s)
}

// String returns the ruleset name
func (r Ruleset) String() string {
	if r == "" {
		return string(RulesetFlat)
	}
	return string(r)
}

// Winner is the side that won an engagement. The zero value means a draw and
// encodes as null.
type Winner Side

// NoWinner is reported for draws
const NoWinner Winner = ""

// IsDraw reports whether no side won
func (w Winner) IsDraw() bool {
	return w == NoWinner
}

// String returns the side name or "draw"
func (w Winner) String() string {
	if w == NoWinner {
		return "draw"
	}
	return string(w)
}

// MarshalJSON encodes draws as null
func (w Winner) MarshalJSON() ([]byte, error) {
	if w == NoWinner {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", string(w))), nil
}

// UnmarshalJSON accepts a side name or null
func (w *Winner) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*w = NoWinner
		return nil
	}
	*w = Winner(strings.Trim(s, `"`))
	return nil
}

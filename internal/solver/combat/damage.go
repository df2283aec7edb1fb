// Package combat runs the tick-based engagement between two unit groups
package combat

import (
	"math"

	"github.com/napolitain/battlesim/internal/units"
)

// MinDamage is the floor on every hit
const MinDamage = 1.0

// Damage returns the per-hit damage of one attacker unit against one
// defender unit
func Damage(attacker, defender *units.Unit) float64 {
	if attacker.Formula == units.FormulaArmorClass {
		return armorClassDamage(attacker, defender)
	}
	return flatDamage(attacker, defender)
}

// flatDamage uses melee or pierce attack against the matching armor. Bonus
// attack is reduced by the defender's bonus reduction.
func flatDamage(attacker, defender *units.Unit) float64 {
	var base float64
	if attacker.IsMelee() {
		base = attacker.Matk - defender.Marm
	} else {
		base = attacker.Patk - defender.Parm
	}
	bonus := attacker.BonusAtk * (1 - defender.BonusReduction)
	return math.Max(MinDamage, math.Max(0, base)+bonus)
}

// armorClassDamage sums attack minus armor over classes present on both
// sides. Individual terms may be negative; only the total is floored.
func armorClassDamage(attacker, defender *units.Unit) float64 {
	total := 0.0
	for _, class := range attacker.AttackClasses() {
		armor, ok := defender.Armors[class]
		if !ok {
			continue
		}
		total += attacker.Attacks[class] - armor
	}
	return math.Max(MinDamage, total)
}

// accuracyFactor scales ranged volleys by hit chance under the armor-class
// ruleset when accuracy is enabled
func accuracyFactor(attacker *units.Unit, enabled bool) float64 {
	if !enabled || attacker.IsMelee() {
		return 1
	}
	return attacker.Accuracy / 100
}

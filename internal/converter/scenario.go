// Package converter translates scenario data into army specs
package converter

import (
	"github.com/napolitain/battlesim/internal/models"
)

// ScenarioToArmySpec converts a scenario side into an army spec. Unset army
// fields take the scenario defaults: one unit, one building, full
// engagement, no micro.
func ScenarioToArmySpec(side models.ScenarioSide) models.ArmySpec {
	key := side.Preset
	if key == "" {
		key = side.Unit
	}

	spec := models.ArmySpec{
		Unit:          models.KeyRef(key),
		Count:         orDefault(side.Count, 1),
		Delay:         orDefault(side.Delay, 0),
		TechDelay:     orDefault(side.Tech, 0),
		UnitsBefore:   orDefault(side.Pre, 0),
		Buildings:     orDefault(side.Buildings, 1),
		EngagementPct: orDefault(side.Eng, 100),
		Micro:         orDefault(side.Micro, 0),
	}
	if key == "" {
		spec.Unit = models.UnitRef{Kind: models.RefMissing}
	}

	o := &models.Overrides{
		HP:     copyNumber(side.HP),
		Matk:   copyNumber(side.Matk),
		Patk:   copyNumber(side.Patk),
		Marm:   copyNumber(side.Marm),
		Parm:   copyNumber(side.Parm),
		Reload: copyNumber(side.Reload),
		Range:  copyNumber(side.Range),
		F:      copyNumber(side.F),
		W:      copyNumber(side.W),
		G:      copyNumber(side.G),
	}
	if side.Name != nil {
		name := *side.Name
		o.Name = &name
	}
	if side.Bbn != nil {
		o.BonusAtk = copyNumber(side.Bbn)
	}
	if side.Abr != nil {
		o.BonusReduction = models.NewNumber(side.Abr.Value(0) / 100)
	}

	if !emptyOverrides(o) {
		spec.Overrides = o
	}
	return spec
}

// ScenarioSpecs converts both sides of a scenario
func ScenarioSpecs(s models.Scenario) (models.ArmySpec, models.ArmySpec) {
	return ScenarioToArmySpec(s.A), ScenarioToArmySpec(s.B)
}

func orDefault(n *models.Number, def float64) *models.Number {
	return models.NewNumber(n.Value(def))
}

func copyNumber(n *models.Number) *models.Number {
	if n == nil {
		return nil
	}
	return models.NewNumber(float64(*n))
}

func emptyOverrides(o *models.Overrides) bool {
	return o.Name == nil && o.HP == nil && o.Matk == nil && o.Patk == nil &&
		o.Marm == nil && o.Parm == nil && o.Reload == nil && o.Range == nil &&
		o.F == nil && o.W == nil && o.G == nil &&
		o.BonusAtk == nil && o.BonusReduction == nil
}

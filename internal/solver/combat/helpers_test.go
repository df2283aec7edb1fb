package combat

import (
	"github.com/napolitain/battlesim/internal/models"
	"github.com/napolitain/battlesim/internal/units"
)

func archerFeudal(count float64) models.StatBlock {
	return models.StatBlock{
		Name: "Archer", HP: 30, Patk: 5, Parm: 1, Marm: 1,
		Reload: 2.0, Range: 5, W: 25, G: 45,
		Count: models.NewNumber(count),
	}
}

func skirmFeudal(count float64) models.StatBlock {
	return models.StatBlock{
		Name: "Skirmisher", HP: 30, Patk: 3, Parm: 4, Marm: 1,
		Reload: 3.0, Range: 5, BonusAtk: 3, F: 25, W: 35,
		Count: models.NewNumber(count),
	}
}

func halberdier(count float64) models.StatBlock {
	return models.StatBlock{
		Name: "Halberdier", HP: 60, Reload: 3.0, Range: 0,
		Attacks: models.ClassMap{4: 10, 8: 32, 5: 28, 29: 1, 21: 3, 15: 0, 27: 0, 1: 0},
		Armors:  models.ClassMap{1: 0, 4: 3, 3: 4, 27: 0},
		Cost:    &models.Cost{Food: 35, Wood: 25},
		Count:   models.NewNumber(count),
	}
}

func cavalier(count float64) models.StatBlock {
	return models.StatBlock{
		Name: "Cavalier", HP: 120, Reload: 1.8, Range: 0,
		Attacks: models.ClassMap{4: 12},
		Armors:  models.ClassMap{4: 5, 3: 6, 8: 0},
		Cost:    &models.Cost{Food: 60, Gold: 75},
		Count:   models.NewNumber(count),
	}
}

// run builds fresh units and simulates with full engagement and no micro
func run(a, b models.StatBlock, rs models.Ruleset, opts models.Options) (Outcome, *units.Unit, *units.Unit) {
	ua, ub := units.New(a, rs), units.New(b, rs)
	res := NewSim(ua, ub, DefaultSideConfig(), DefaultSideConfig(), opts).Run()
	return Summarize(res, ua, ub, opts.IncludeHistory), ua, ub
}

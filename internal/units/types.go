package units

import (
	"github.com/napolitain/battlesim/internal/models"
)

// Unit defaults
const (
	DefaultHP        = 1.0
	DefaultReload    = 2.0
	DefaultAccuracy  = 100.0
	DefaultTrainTime = 30.0
	DefaultBuildings = 1.0

	// TrampleBlastLevel marks a melee attack that splashes onto nearby units
	TrampleBlastLevel = 2
)

// Formula selects how a unit's per-hit damage is computed
type Formula int

const (
	// FormulaFlat uses melee/pierce attack against the matching armor plus a bonus
	FormulaFlat Formula = iota
	// FormulaArmorClass sums attack minus armor over shared armor classes
	FormulaArmorClass
)

func (f Formula) String() string {
	if f == FormulaArmorClass {
		return "armor-class"
	}
	return "flat"
}

// Cost is a discounted per-unit price
type Cost struct {
	F, W, G float64
	Total   float64
}

// Unit is one side's group of identical units during a single run.
// HP is pooled: the front unit carries CurrentUnitHP, the rest are full.
type Unit struct {
	Name    string
	Ruleset models.Ruleset
	Formula Formula

	InitialCount  float64
	CurrentCount  float64
	HPPerUnit     float64
	CurrentUnitHP float64

	Matk, Patk float64
	Marm, Parm float64

	Attacks map[int]float64
	Armors  map[int]float64
	// attack class ids in ascending order, for a stable damage sum
	attackClasses []int

	ReloadBase     float64
	Reload         float64
	Range          float64
	AtkSpeedBonus  float64 // fraction
	BonusAtk       float64
	BonusReduction float64 // fraction

	BlastWidth  float64
	BlastDamage float64
	BlastLevel  float64
	Accuracy    float64 // percent

	AttackCooldown float64

	TrainTime   float64
	Buildings   float64
	StartDelay  float64
	TechDelay   float64
	UnitsBefore float64

	BaseF, BaseW, BaseG          float64
	DiscAll, DiscF, DiscW, DiscG float64 // fractions
}

// New builds a fresh unit from a resolved stat block
func New(stat models.StatBlock, rs models.Ruleset) *Unit {
	u := &Unit{
		Name:    stat.Name,
		Ruleset: rs,
	}
	if u.Name == "" {
		u.Name = "Unit"
	}

	countDefault := 0.0
	if rs == models.RulesetArmorClass {
		countDefault = 1
	}
	u.InitialCount = max(0, stat.Count.Value(countDefault))
	u.CurrentCount = u.InitialCount
	u.HPPerUnit = stat.HP.Or(DefaultHP)
	if u.HPPerUnit < 0 {
		u.HPPerUnit = DefaultHP
	}
	u.CurrentUnitHP = u.HPPerUnit

	u.Matk = stat.Matk.OrZero()
	u.Patk = stat.Patk.OrZero()
	u.Marm = stat.Marm.OrZero()
	u.Parm = stat.Parm.OrZero()

	u.Attacks = classValues(stat.Attacks)
	u.Armors = classValues(stat.Armors)
	u.attackClasses = stat.Attacks.Classes()

	u.ReloadBase = stat.Reload.Or(DefaultReload)
	u.Range = stat.Range.OrZero()
	u.AtkSpeedBonus = stat.AtkSpeed.OrZero() / 100
	u.Reload = u.ReloadBase / (1 + u.AtkSpeedBonus)
	u.BonusAtk = stat.BonusAtk.OrZero()
	u.BonusReduction = stat.BonusReduct.OrZero() / 100

	u.BlastWidth = stat.BlastWidth.OrZero()
	u.BlastDamage = stat.BlastDamage.OrZero()
	u.BlastLevel = stat.BlastLevel.OrZero()
	u.Accuracy = stat.Accuracy.Value(DefaultAccuracy)

	u.TrainTime = stat.TrainTime.Or(DefaultTrainTime)
	u.Buildings = stat.Buildings.Or(DefaultBuildings)
	u.StartDelay = stat.Delay.OrZero()
	u.TechDelay = stat.TechDelay.OrZero()
	u.UnitsBefore = stat.UnitsBefore.OrZero()

	base := stat.BaseCost()
	u.BaseF = base.Food.OrZero()
	u.BaseW = base.Wood.OrZero()
	u.BaseG = base.Gold.OrZero()
	u.DiscAll = stat.DiscAll.OrZero() / 100
	u.DiscF = stat.DiscF.OrZero() / 100
	u.DiscW = stat.DiscW.OrZero() / 100
	u.DiscG = stat.DiscG.OrZero() / 100

	u.Formula = FormulaFlat
	if rs == models.RulesetArmorClass && len(u.Attacks) > 0 {
		u.Formula = FormulaArmorClass
	}
	return u
}

func classValues(m models.ClassMap) map[int]float64 {
	out := make(map[int]float64, len(m))
	for k, v := range m {
		out[k] = v.OrZero()
	}
	return out
}

// AttackClasses returns the attack class ids in ascending order
func (u *Unit) AttackClasses() []int {
	return u.attackClasses
}

// IsMelee reports range <= 1
func (u *Unit) IsMelee() bool {
	return u.Range <= 1
}

// Alive reports whether any units remain
func (u *Unit) Alive() bool {
	return u.CurrentCount > 0
}

// HasTrample reports whether the unit's attack splashes a second time
func (u *Unit) HasTrample() bool {
	return u.BlastLevel == TrampleBlastLevel && u.BlastDamage > 0 && u.BlastWidth > 0
}

// InitialTotalHP returns the pool size at the start of the run
func (u *Unit) InitialTotalHP() float64 {
	return u.InitialCount * u.HPPerUnit
}

// ParsedCost returns the per-unit cost after discounts
func (u *Unit) ParsedCost() Cost {
	m := 1 - u.DiscAll
	c := Cost{
		F: u.BaseF * (1 - u.DiscF) * m,
		W: u.BaseW * (1 - u.DiscW) * m,
		G: u.BaseG * (1 - u.DiscG) * m,
	}
	c.Total = c.F + c.W + c.G
	return c
}

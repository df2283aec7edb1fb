package combat

import (
	"github.com/napolitain/battlesim/internal/models"
	"github.com/napolitain/battlesim/internal/units"
)

// SideOutcome is one side's share of the response
type SideOutcome struct {
	RemainingCount         float64 `json:"remaining_count"`
	RemainingHP            float64 `json:"remaining_hp"`
	InitialCount           float64 `json:"initial_count"`
	HPPctRemaining         float64 `json:"hp_pct_remaining"`
	ResourceValueInitial   float64 `json:"resource_value_initial"`
	ResourceValueRemaining float64 `json:"resource_value_remaining"`
	ResourceValueLost      float64 `json:"resource_value_lost"`
}

// Efficiency is opponent value destroyed per unit of own value lost. Nil
// when the side lost nothing.
type Efficiency struct {
	SideA *float64 `json:"side_a_per_resource_spent"`
	SideB *float64 `json:"side_b_per_resource_spent"`
}

// Outcome is the caller-facing summary of a run
type Outcome struct {
	Winner     models.Winner `json:"winner"`
	Draw       bool          `json:"draw"`
	DurationS  float64       `json:"duration_s"`
	SideA      SideOutcome   `json:"side_a"`
	SideB      SideOutcome   `json:"side_b"`
	Efficiency Efficiency    `json:"efficiency"`
	History    []Snapshot    `json:"history"`
	State      State         `json:"-"`
}

// Summarize converts a raw result into winner, value and efficiency
// figures. History is kept only when includeHistory is set.
func Summarize(res Result, a, b *units.Unit, includeHistory bool) Outcome {
	sideA := sideOutcome(res.ArmyA, a)
	sideB := sideOutcome(res.ArmyB, b)

	out := Outcome{
		DurationS: res.Duration,
		SideA:     sideA,
		SideB:     sideB,
		Efficiency: Efficiency{
			SideA: ratio(sideB.ResourceValueLost, sideA.ResourceValueLost),
			SideB: ratio(sideA.ResourceValueLost, sideB.ResourceValueLost),
		},
		State: res.State,
	}

	switch {
	case sideA.RemainingCount > sideB.RemainingCount:
		out.Winner = models.Winner(models.SideA)
	case sideB.RemainingCount > sideA.RemainingCount:
		out.Winner = models.Winner(models.SideB)
	default:
		out.Winner = models.NoWinner
		out.Draw = true
	}

	if includeHistory {
		out.History = res.History
		if out.History == nil {
			out.History = []Snapshot{}
		}
	}
	return out
}

func sideOutcome(army ArmyResult, u *units.Unit) SideOutcome {
	initial := u.InitialCount * u.ParsedCost().Total
	pct := hpFraction(army.TotalHP, army.InitialTotalHP)
	remaining := pct * initial
	return SideOutcome{
		RemainingCount:         army.Remaining,
		RemainingHP:            army.TotalHP,
		InitialCount:           u.InitialCount,
		HPPctRemaining:         pct,
		ResourceValueInitial:   initial,
		ResourceValueRemaining: remaining,
		ResourceValueLost:      initial - remaining,
	}
}

func ratio(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	r := num / den
	return &r
}

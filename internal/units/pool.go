package units

import "math"

// TotalHP returns the pooled HP, never negative
func (u *Unit) TotalHP() float64 {
	return math.Max(0, (u.CurrentCount-1)*u.HPPerUnit+u.CurrentUnitHP)
}

// EffectiveDamage returns how much of dmg lands when the attackers split
// their volley into micro groups. Each group can overkill at most one unit,
// so split fire wastes damage on the front unit and on every extra target.
// micro 0 means all damage lands on the pool. Only whole group counts are
// meaningful; fractions are truncated and anything below one is treated as 0.
func (u *Unit) EffectiveDamage(dmg, micro float64) float64 {
	micro = math.Floor(micro)
	if !(micro >= 1) {
		return dmg
	}
	chunk := dmg / micro
	groups := math.Min(micro, math.Ceil(u.CurrentCount))
	effective := math.Min(u.CurrentUnitHP, chunk)
	if groups > 1 {
		effective += (groups - 1) * math.Min(u.HPPerUnit, chunk)
	}
	return effective
}

// ApplyDamage removes damage from the pool and recomputes the count and the
// front unit's HP. It returns the damage actually applied.
func (u *Unit) ApplyDamage(dmg, micro float64) float64 {
	effective := u.EffectiveDamage(dmg, micro)
	pool := math.Max(0, u.TotalHP()-effective)

	u.CurrentCount = math.Ceil(pool / u.HPPerUnit)
	rem := math.Mod(pool, u.HPPerUnit)
	switch {
	case rem != 0:
		u.CurrentUnitHP = rem
	case u.CurrentCount > 0:
		u.CurrentUnitHP = u.HPPerUnit
	default:
		u.CurrentUnitHP = 0
	}
	return effective
}

// CountCeil returns the remaining count rounded up, used to detect losses
func (u *Unit) CountCeil() float64 {
	return math.Ceil(u.CurrentCount)
}

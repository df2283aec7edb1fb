package catalog

import (
	"github.com/napolitain/battlesim/internal/models"
)

// Resolve turns an army spec into a stat block: catalog lookup or inline
// object, then overrides, then army-level fields. The catalog is never
// modified.
//
// Under the armor-class ruleset attacks, armors and cost overrides are
// merged key by key; under the flat ruleset they replace the base maps.
func (c *Catalog) Resolve(spec *models.ArmySpec, rs models.Ruleset) (models.StatBlock, error) {
	if spec == nil {
		return models.StatBlock{}, models.Validationf("army spec must be present and have a unit field")
	}

	var base models.StatBlock
	switch spec.Unit.Kind {
	case models.RefKey:
		sb, err := c.Lookup(spec.Unit.Key, rs)
		if err != nil {
			return models.StatBlock{}, err
		}
		base = sb
	case models.RefInline:
		if field := spec.Unit.MissingField(); field != "" {
			return models.StatBlock{}, &models.InlineSpecIncompleteError{Field: field}
		}
		base = spec.Unit.Inline.Clone()
	case models.RefMissing:
		return models.StatBlock{}, models.Validationf("army spec must be present and have a unit field")
	default:
		return models.StatBlock{}, models.ErrInvalidUnit
	}

	if spec.Overrides != nil {
		applyOverrides(&base, spec.Overrides, rs == models.RulesetArmorClass)
	}

	if spec.Count != nil {
		base.Count = models.NewNumber(float64(*spec.Count))
	}
	if spec.Delay != nil {
		base.Delay = *spec.Delay
	}
	if spec.TechDelay != nil {
		base.TechDelay = *spec.TechDelay
	}
	if spec.UnitsBefore != nil {
		base.UnitsBefore = *spec.UnitsBefore
	}
	if spec.Buildings != nil {
		base.Buildings = *spec.Buildings
	}

	if d := spec.ResourceDiscounts; d != nil {
		if d.All != nil {
			base.DiscAll = *d.All
		}
		if d.Food != nil {
			base.DiscF = *d.Food
		}
		if d.Wood != nil {
			base.DiscW = *d.Wood
		}
		if d.Gold != nil {
			base.DiscG = *d.Gold
		}
	}

	return base, nil
}

func setNumber(dst *models.Number, src *models.Number) {
	if src != nil {
		*dst = *src
	}
}

func applyOverrides(sb *models.StatBlock, o *models.Overrides, deep bool) {
	if o.Name != nil {
		sb.Name = *o.Name
	}
	setNumber(&sb.HP, o.HP)
	setNumber(&sb.Matk, o.Matk)
	setNumber(&sb.Patk, o.Patk)
	setNumber(&sb.Marm, o.Marm)
	setNumber(&sb.Parm, o.Parm)
	setNumber(&sb.Reload, o.Reload)
	setNumber(&sb.Range, o.Range)
	setNumber(&sb.AtkSpeed, o.AtkSpeed)
	setNumber(&sb.BlastWidth, o.BlastWidth)
	setNumber(&sb.BlastDamage, o.BlastDamage)
	setNumber(&sb.BlastLevel, o.BlastLevel)
	setNumber(&sb.F, o.F)
	setNumber(&sb.W, o.W)
	setNumber(&sb.G, o.G)
	setNumber(&sb.TrainTime, o.TrainTime)
	if o.Accuracy != nil {
		sb.Accuracy = models.NewNumber(float64(*o.Accuracy))
	}

	// caller-facing names and scale
	setNumber(&sb.BonusAtk, o.BonusAtk)
	if o.BonusReduction != nil {
		sb.BonusReduct = models.Number(o.BonusReduction.Value(0) * 100)
	}

	if deep {
		if o.Attacks != nil {
			sb.Attacks = sb.Attacks.Merge(o.Attacks)
		}
		if o.Armors != nil {
			sb.Armors = sb.Armors.Merge(o.Armors)
		}
		if o.Cost != nil {
			c := models.Cost{}
			if sb.Cost != nil {
				c = *sb.Cost
			}
			for _, rt := range models.AllResourceTypes() {
				if v := o.Cost.Get(rt); v.Valid() && v != 0 {
					c.Set(rt, v)
				}
			}
			sb.Cost = &c
		}
		return
	}

	if o.Attacks != nil {
		sb.Attacks = o.Attacks.Clone()
	}
	if o.Armors != nil {
		sb.Armors = o.Armors.Clone()
	}
	if o.Cost != nil {
		c := *o.Cost
		sb.Cost = &c
	}
}

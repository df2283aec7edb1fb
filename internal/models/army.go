package models

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// RefKind tells how an army names its unit
type RefKind int

const (
	RefMissing RefKind = iota
	RefKey
	RefInline
	RefInvalid
)

// InlineRequiredFields must be present on an inline stat object
var InlineRequiredFields = []string{"name", "hp", "reload", "range"}

// UnitRef is either a catalog key or an inline stat object
type UnitRef struct {
	Kind   RefKind
	Key    string
	Inline *StatBlock

	// fields present in the decoded inline object; nil means all present
	fields map[string]bool
}

// KeyRef references a catalog entry
func KeyRef(key string) UnitRef {
	return UnitRef{Kind: RefKey, Key: key}
}

// InlineRef wraps a stat block built in code. Every field counts as present.
func InlineRef(sb StatBlock) UnitRef {
	return UnitRef{Kind: RefInline, Inline: &sb}
}

// MissingField returns the first required inline field the decoded object
// did not carry, or "".
func (r *UnitRef) MissingField() string {
	if r.Kind != RefInline || r.fields == nil {
		return ""
	}
	for _, f := range InlineRequiredFields {
		if !r.fields[f] {
			return f
		}
	}
	return ""
}

// Clone returns a deep copy
func (r UnitRef) Clone() UnitRef {
	out := r
	if r.Inline != nil {
		sb := r.Inline.Clone()
		out.Inline = &sb
	}
	if r.fields != nil {
		out.fields = make(map[string]bool, len(r.fields))
		for k, v := range r.fields {
			out.fields[k] = v
		}
	}
	return out
}

// UnmarshalJSON decodes a string key or an inline object
func (r *UnitRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*r = UnitRef{Kind: RefMissing}
	case b[0] == '"':
		var key string
		if err := json.Unmarshal(b, &key); err != nil {
			return err
		}
		*r = KeyRef(key)
	case b[0] == '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		var sb StatBlock
		if err := json.Unmarshal(b, &sb); err != nil {
			return err
		}
		fields := make(map[string]bool, len(raw))
		for k, v := range raw {
			fields[k] = string(bytes.TrimSpace(v)) != "null"
		}
		*r = UnitRef{Kind: RefInline, Inline: &sb, fields: fields}
	default:
		*r = UnitRef{Kind: RefInvalid}
	}
	return nil
}

// MarshalJSON writes the key or the inline object
func (r UnitRef) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RefKey:
		return json.Marshal(r.Key)
	case RefInline:
		return json.Marshal(r.Inline)
	}
	return []byte("null"), nil
}

// UnmarshalYAML decodes a string key or an inline mapping
func (r *UnitRef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*r = UnitRef{Kind: RefMissing}
			return nil
		}
		if value.Tag != "!!str" {
			*r = UnitRef{Kind: RefInvalid}
			return nil
		}
		*r = KeyRef(value.Value)
	case yaml.MappingNode:
		var sb StatBlock
		if err := value.Decode(&sb); err != nil {
			return err
		}
		fields := make(map[string]bool, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			fields[value.Content[i].Value] = value.Content[i+1].Tag != "!!null"
		}
		*r = UnitRef{Kind: RefInline, Inline: &sb, fields: fields}
	default:
		*r = UnitRef{Kind: RefInvalid}
	}
	return nil
}

// MarshalYAML writes the key or the inline object
func (r UnitRef) MarshalYAML() (interface{}, error) {
	switch r.Kind {
	case RefKey:
		return r.Key, nil
	case RefInline:
		return r.Inline, nil
	}
	return nil, nil
}

// Overrides patches stat fields of a resolved unit. Nil fields are left alone.
type Overrides struct {
	Name           *string  `json:"name,omitempty" yaml:"name,omitempty"`
	HP             *Number  `json:"hp,omitempty" yaml:"hp,omitempty"`
	Matk           *Number  `json:"matk,omitempty" yaml:"matk,omitempty"`
	Patk           *Number  `json:"patk,omitempty" yaml:"patk,omitempty"`
	Marm           *Number  `json:"marm,omitempty" yaml:"marm,omitempty"`
	Parm           *Number  `json:"parm,omitempty" yaml:"parm,omitempty"`
	Reload         *Number  `json:"reload,omitempty" yaml:"reload,omitempty"`
	Range          *Number  `json:"range,omitempty" yaml:"range,omitempty"`
	AtkSpeed       *Number  `json:"atkSpeed,omitempty" yaml:"atkSpeed,omitempty"`
	BonusAtk       *Number  `json:"bonus_atk,omitempty" yaml:"bonus_atk,omitempty"`
	BonusReduction *Number  `json:"bonus_reduction,omitempty" yaml:"bonus_reduction,omitempty"` // 0-1
	Accuracy       *Number  `json:"accuracy,omitempty" yaml:"accuracy,omitempty"`
	BlastWidth     *Number  `json:"blastWidth,omitempty" yaml:"blastWidth,omitempty"`
	BlastDamage    *Number  `json:"blastDamage,omitempty" yaml:"blastDamage,omitempty"`
	BlastLevel     *Number  `json:"blastLevel,omitempty" yaml:"blastLevel,omitempty"`
	F              *Number  `json:"f,omitempty" yaml:"f,omitempty"`
	W              *Number  `json:"w,omitempty" yaml:"w,omitempty"`
	G              *Number  `json:"g,omitempty" yaml:"g,omitempty"`
	TrainTime      *Number  `json:"trainTime,omitempty" yaml:"trainTime,omitempty"`
	Attacks        ClassMap `json:"attacks,omitempty" yaml:"attacks,omitempty"`
	Armors         ClassMap `json:"armors,omitempty" yaml:"armors,omitempty"`
	Cost           *Cost    `json:"cost,omitempty" yaml:"cost,omitempty"`
}

func cloneNumber(n *Number) *Number {
	if n == nil {
		return nil
	}
	return NewNumber(float64(*n))
}

func pickNumber(base, patch *Number) *Number {
	if patch != nil {
		return cloneNumber(patch)
	}
	return cloneNumber(base)
}

// Clone returns a deep copy
func (o *Overrides) Clone() *Overrides {
	if o == nil {
		return nil
	}
	return o.Merge(nil)
}

// Merge returns a copy of o with every set field of patch applied over it.
// Class maps and cost are merged key-wise.
func (o *Overrides) Merge(patch *Overrides) *Overrides {
	base := o
	if base == nil {
		base = &Overrides{}
	}
	if patch == nil {
		patch = &Overrides{}
	}
	out := &Overrides{
		HP:             pickNumber(base.HP, patch.HP),
		Matk:           pickNumber(base.Matk, patch.Matk),
		Patk:           pickNumber(base.Patk, patch.Patk),
		Marm:           pickNumber(base.Marm, patch.Marm),
		Parm:           pickNumber(base.Parm, patch.Parm),
		Reload:         pickNumber(base.Reload, patch.Reload),
		Range:          pickNumber(base.Range, patch.Range),
		AtkSpeed:       pickNumber(base.AtkSpeed, patch.AtkSpeed),
		BonusAtk:       pickNumber(base.BonusAtk, patch.BonusAtk),
		BonusReduction: pickNumber(base.BonusReduction, patch.BonusReduction),
		Accuracy:       pickNumber(base.Accuracy, patch.Accuracy),
		BlastWidth:     pickNumber(base.BlastWidth, patch.BlastWidth),
		BlastDamage:    pickNumber(base.BlastDamage, patch.BlastDamage),
		BlastLevel:     pickNumber(base.BlastLevel, patch.BlastLevel),
		F:              pickNumber(base.F, patch.F),
		W:              pickNumber(base.W, patch.W),
		G:              pickNumber(base.G, patch.G),
		TrainTime:      pickNumber(base.TrainTime, patch.TrainTime),
	}
	switch {
	case patch.Name != nil:
		name := *patch.Name
		out.Name = &name
	case base.Name != nil:
		name := *base.Name
		out.Name = &name
	}
	if base.Attacks != nil || patch.Attacks != nil {
		out.Attacks = base.Attacks.Merge(patch.Attacks)
	}
	if base.Armors != nil || patch.Armors != nil {
		out.Armors = base.Armors.Merge(patch.Armors)
	}
	if base.Cost != nil || patch.Cost != nil {
		c := Cost{}
		if base.Cost != nil {
			c = *base.Cost
		}
		if patch.Cost != nil {
			for _, rt := range AllResourceTypes() {
				if v := patch.Cost.Get(rt); v.Valid() && v != 0 {
					c.Set(rt, v)
				}
			}
		}
		out.Cost = &c
	}
	return out
}

// ResourceDiscounts are percent reductions applied to unit cost
type ResourceDiscounts struct {
	All  *Number `json:"all,omitempty" yaml:"all,omitempty"`
	Food *Number `json:"food,omitempty" yaml:"food,omitempty"`
	Wood *Number `json:"wood,omitempty" yaml:"wood,omitempty"`
	Gold *Number `json:"gold,omitempty" yaml:"gold,omitempty"`
}

// Clone returns a deep copy
func (d *ResourceDiscounts) Clone() *ResourceDiscounts {
	if d == nil {
		return nil
	}
	return &ResourceDiscounts{
		All:  cloneNumber(d.All),
		Food: cloneNumber(d.Food),
		Wood: cloneNumber(d.Wood),
		Gold: cloneNumber(d.Gold),
	}
}

// ArmySpec describes one side of a matchup as supplied by the caller
type ArmySpec struct {
	Unit              UnitRef            `json:"unit" yaml:"unit"`
	Count             *Number            `json:"count,omitempty" yaml:"count,omitempty"`
	EngagementPct     *Number            `json:"engagement_pct,omitempty" yaml:"engagement_pct,omitempty"`
	Micro             *Number            `json:"micro,omitempty" yaml:"micro,omitempty"`
	Delay             *Number            `json:"delay,omitempty" yaml:"delay,omitempty"`
	TechDelay         *Number            `json:"tech_delay,omitempty" yaml:"tech_delay,omitempty"`
	UnitsBefore       *Number            `json:"units_before,omitempty" yaml:"units_before,omitempty"`
	Buildings         *Number            `json:"buildings,omitempty" yaml:"buildings,omitempty"`
	Overrides         *Overrides         `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	ResourceDiscounts *ResourceDiscounts `json:"resource_discounts,omitempty" yaml:"resource_discounts,omitempty"`
}

// Clone returns a deep copy of the spec
func (s *ArmySpec) Clone() ArmySpec {
	return ArmySpec{
		Unit:              s.Unit.Clone(),
		Count:             cloneNumber(s.Count),
		EngagementPct:     cloneNumber(s.EngagementPct),
		Micro:             cloneNumber(s.Micro),
		Delay:             cloneNumber(s.Delay),
		TechDelay:         cloneNumber(s.TechDelay),
		UnitsBefore:       cloneNumber(s.UnitsBefore),
		Buildings:         cloneNumber(s.Buildings),
		Overrides:         s.Overrides.Clone(),
		ResourceDiscounts: s.ResourceDiscounts.Clone(),
	}
}

// Merge returns a copy of s with the set fields of patch applied over it.
// Overrides are merged field by field so a patch keeps existing overrides.
func (s *ArmySpec) Merge(patch *ArmySpec) ArmySpec {
	out := s.Clone()
	if patch == nil {
		return out
	}
	if patch.Unit.Kind != RefMissing {
		out.Unit = patch.Unit.Clone()
	}
	out.Count = pickNumber(out.Count, patch.Count)
	out.EngagementPct = pickNumber(out.EngagementPct, patch.EngagementPct)
	out.Micro = pickNumber(out.Micro, patch.Micro)
	out.Delay = pickNumber(out.Delay, patch.Delay)
	out.TechDelay = pickNumber(out.TechDelay, patch.TechDelay)
	out.UnitsBefore = pickNumber(out.UnitsBefore, patch.UnitsBefore)
	out.Buildings = pickNumber(out.Buildings, patch.Buildings)
	if out.Overrides != nil || patch.Overrides != nil {
		out.Overrides = out.Overrides.Merge(patch.Overrides)
	}
	if patch.ResourceDiscounts != nil {
		out.ResourceDiscounts = patch.ResourceDiscounts.Clone()
	}
	return out
}

// EngagementPercent returns engagement_pct, default 100
func (s *ArmySpec) EngagementPercent() float64 {
	return s.EngagementPct.Value(100)
}

// MicroGroups returns micro, default 0
func (s *ArmySpec) MicroGroups() float64 {
	return s.Micro.Value(0)
}

// MaxMicro is the largest number of target groups a side can split fire into
const MaxMicro = 5

// validateTactics checks the per-side combat settings that feed the micro
// model and the engagement fraction
func (s *ArmySpec) validateTactics(side Side) error {
	if m := s.MicroGroups(); m < 0 || m > MaxMicro || m != math.Floor(m) {
		return Validationf("%s.micro must be a whole number from 0 to %d, got %v", side, MaxMicro, m)
	}
	if e := s.EngagementPercent(); e < 0 {
		return Validationf("%s.engagement_pct must not be negative, got %v", side, e)
	}
	return nil
}

func (s *ArmySpec) overrides() *Overrides {
	if s.Overrides == nil {
		s.Overrides = &Overrides{}
	}
	return s.Overrides
}

func (s *ArmySpec) discounts() *ResourceDiscounts {
	if s.ResourceDiscounts == nil {
		s.ResourceDiscounts = &ResourceDiscounts{}
	}
	return s.ResourceDiscounts
}

// fieldSetters is the closed set of numeric fields a sweep may vary
var fieldSetters = map[string]func(s *ArmySpec, v float64){
	"count":          func(s *ArmySpec, v float64) { s.Count = NewNumber(v) },
	"engagement_pct": func(s *ArmySpec, v float64) { s.EngagementPct = NewNumber(v) },
	"micro":          func(s *ArmySpec, v float64) { s.Micro = NewNumber(v) },
	"delay":          func(s *ArmySpec, v float64) { s.Delay = NewNumber(v) },
	"tech_delay":     func(s *ArmySpec, v float64) { s.TechDelay = NewNumber(v) },
	"units_before":   func(s *ArmySpec, v float64) { s.UnitsBefore = NewNumber(v) },
	"buildings":      func(s *ArmySpec, v float64) { s.Buildings = NewNumber(v) },

	"resource_discounts.all":  func(s *ArmySpec, v float64) { s.discounts().All = NewNumber(v) },
	"resource_discounts.food": func(s *ArmySpec, v float64) { s.discounts().Food = NewNumber(v) },
	"resource_discounts.wood": func(s *ArmySpec, v float64) { s.discounts().Wood = NewNumber(v) },
	"resource_discounts.gold": func(s *ArmySpec, v float64) { s.discounts().Gold = NewNumber(v) },

	"overrides.hp":              func(s *ArmySpec, v float64) { s.overrides().HP = NewNumber(v) },
	"overrides.matk":            func(s *ArmySpec, v float64) { s.overrides().Matk = NewNumber(v) },
	"overrides.patk":            func(s *ArmySpec, v float64) { s.overrides().Patk = NewNumber(v) },
	"overrides.marm":            func(s *ArmySpec, v float64) { s.overrides().Marm = NewNumber(v) },
	"overrides.parm":            func(s *ArmySpec, v float64) { s.overrides().Parm = NewNumber(v) },
	"overrides.reload":          func(s *ArmySpec, v float64) { s.overrides().Reload = NewNumber(v) },
	"overrides.range":           func(s *ArmySpec, v float64) { s.overrides().Range = NewNumber(v) },
	"overrides.atkSpeed":        func(s *ArmySpec, v float64) { s.overrides().AtkSpeed = NewNumber(v) },
	"overrides.bonus_atk":       func(s *ArmySpec, v float64) { s.overrides().BonusAtk = NewNumber(v) },
	"overrides.bonus_reduction": func(s *ArmySpec, v float64) { s.overrides().BonusReduction = NewNumber(v) },
	"overrides.accuracy":        func(s *ArmySpec, v float64) { s.overrides().Accuracy = NewNumber(v) },
	"overrides.blastWidth":      func(s *ArmySpec, v float64) { s.overrides().BlastWidth = NewNumber(v) },
	"overrides.blastDamage":     func(s *ArmySpec, v float64) { s.overrides().BlastDamage = NewNumber(v) },
	"overrides.blastLevel":      func(s *ArmySpec, v float64) { s.overrides().BlastLevel = NewNumber(v) },
	"overrides.f":               func(s *ArmySpec, v float64) { s.overrides().F = NewNumber(v) },
	"overrides.w":               func(s *ArmySpec, v float64) { s.overrides().W = NewNumber(v) },
	"overrides.g":               func(s *ArmySpec, v float64) { s.overrides().G = NewNumber(v) },
}

// SweepableFields lists the field paths accepted by SetField, sorted
func SweepableFields() []string {
	out := make([]string, 0, len(fieldSetters))
	for k := range fieldSetters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SetField sets a numeric field addressed by a dotted path such as "count"
// or "overrides.hp"
func (s *ArmySpec) SetField(path string, v float64) error {
	set, ok := fieldSetters[strings.TrimSpace(path)]
	if !ok {
		return Validationf("unsupported sweep field: %s", path)
	}
	set(s, v)
	return nil
}

package models

import (
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ClassMap maps an armor class id to an attack or armor amount
type ClassMap map[int]Number

// Classes returns the class ids in ascending order
func (m ClassMap) Classes() []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone returns a copy of the map (nil stays nil)
func (m ClassMap) Clone() ClassMap {
	if m == nil {
		return nil
	}
	out := make(ClassMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge returns a copy of m with every entry of patch applied over it
func (m ClassMap) Merge(patch ClassMap) ClassMap {
	out := m.Clone()
	if out == nil {
		out = make(ClassMap, len(patch))
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// UnmarshalYAML accepts quoted class ids ("4": 10) as produced by JSON documents
func (m *ClassMap) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]Number
	if err := value.Decode(&raw); err != nil {
		return err
	}
	out := make(ClassMap, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return Validationf("armor class id must be an integer, got %q", k)
		}
		out[id] = v
	}
	*m = out
	return nil
}

// Cost is a per-resource price
type Cost struct {
	Food Number `json:"food,omitempty" yaml:"food,omitempty"`
	Wood Number `json:"wood,omitempty" yaml:"wood,omitempty"`
	Gold Number `json:"gold,omitempty" yaml:"gold,omitempty"`
}

// Get returns the amount for a resource
func (c *Cost) Get(rt ResourceType) Number {
	switch rt {
	case Food:
		return c.Food
	case Wood:
		return c.Wood
	case Gold:
		return c.Gold
	}
	return 0
}

// Set sets the amount for a resource
func (c *Cost) Set(rt ResourceType, v Number) {
	switch rt {
	case Food:
		c.Food = v
	case Wood:
		c.Wood = v
	case Gold:
		c.Gold = v
	}
}

// StatBlock is a fully resolved unit record. Field names follow the catalog
// data files. Discounts and bonus reduction are on a 0-100 scale.
type StatBlock struct {
	Name string `json:"name" yaml:"name"`
	HP   Number `json:"hp" yaml:"hp"`

	Matk Number `json:"matk,omitempty" yaml:"matk,omitempty"`
	Patk Number `json:"patk,omitempty" yaml:"patk,omitempty"`
	Marm Number `json:"marm,omitempty" yaml:"marm,omitempty"`
	Parm Number `json:"parm,omitempty" yaml:"parm,omitempty"`

	Attacks ClassMap `json:"attacks,omitempty" yaml:"attacks,omitempty"`
	Armors  ClassMap `json:"armors,omitempty" yaml:"armors,omitempty"`

	Reload      Number `json:"reload" yaml:"reload"`
	Range       Number `json:"range" yaml:"range"`
	AtkSpeed    Number `json:"atkSpeed,omitempty" yaml:"atkSpeed,omitempty"`
	BonusAtk    Number `json:"bonusAtk,omitempty" yaml:"bonusAtk,omitempty"`
	BonusReduct Number `json:"bonusReduct,omitempty" yaml:"bonusReduct,omitempty"`

	BlastWidth  Number  `json:"blastWidth,omitempty" yaml:"blastWidth,omitempty"`
	BlastDamage Number  `json:"blastDamage,omitempty" yaml:"blastDamage,omitempty"`
	BlastLevel  Number  `json:"blastLevel,omitempty" yaml:"blastLevel,omitempty"`
	Accuracy    *Number `json:"accuracy,omitempty" yaml:"accuracy,omitempty"`

	F    Number `json:"f,omitempty" yaml:"f,omitempty"`
	W    Number `json:"w,omitempty" yaml:"w,omitempty"`
	G    Number `json:"g,omitempty" yaml:"g,omitempty"`
	Cost *Cost  `json:"cost,omitempty" yaml:"cost,omitempty"`

	DiscAll Number `json:"discAll,omitempty" yaml:"discAll,omitempty"`
	DiscF   Number `json:"discF,omitempty" yaml:"discF,omitempty"`
	DiscW   Number `json:"discW,omitempty" yaml:"discW,omitempty"`
	DiscG   Number `json:"discG,omitempty" yaml:"discG,omitempty"`

	// Army-level fields merged in at resolution time
	Count       *Number `json:"count,omitempty" yaml:"count,omitempty"`
	TrainTime   Number  `json:"trainTime,omitempty" yaml:"trainTime,omitempty"`
	Delay       Number  `json:"delay,omitempty" yaml:"delay,omitempty"`
	TechDelay   Number  `json:"techDelay,omitempty" yaml:"techDelay,omitempty"`
	UnitsBefore Number  `json:"unitsBefore,omitempty" yaml:"unitsBefore,omitempty"`
	Buildings   Number  `json:"buildings,omitempty" yaml:"buildings,omitempty"`
}

// Clone returns a deep copy
func (s *StatBlock) Clone() StatBlock {
	out := *s
	out.Attacks = s.Attacks.Clone()
	out.Armors = s.Armors.Clone()
	if s.Accuracy != nil {
		out.Accuracy = NewNumber(float64(*s.Accuracy))
	}
	if s.Count != nil {
		out.Count = NewNumber(float64(*s.Count))
	}
	if s.Cost != nil {
		c := *s.Cost
		out.Cost = &c
	}
	return out
}

// BaseCost returns the undiscounted cost, preferring the cost object over f/w/g
func (s *StatBlock) BaseCost() Cost {
	if s.Cost != nil {
		return *s.Cost
	}
	return Cost{Food: s.F, Wood: s.W, Gold: s.G}
}

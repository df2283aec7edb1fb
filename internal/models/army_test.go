package models

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestUnitRefDecode(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		yaml    string
		want    RefKind
		missing string
	}{
		{"key", `{"unit":"archer"}`, "unit: archer\n", RefKey, ""},
		{"absent", `{}`, "count: 1\n", RefMissing, ""},
		{"null", `{"unit":null}`, "unit: null\n", RefMissing, ""},
		{"number", `{"unit":42}`, "unit: 42\n", RefInvalid, ""},
		{"list", `{"unit":[1]}`, "unit: [1]\n", RefInvalid, ""},
		{
			"complete inline",
			`{"unit":{"name":"X","hp":10,"reload":2,"range":0}}`,
			"unit: {name: X, hp: 10, reload: 2, range: 0}\n",
			RefInline, "",
		},
		{
			"inline without range",
			`{"unit":{"name":"X","hp":10,"reload":2}}`,
			"unit: {name: X, hp: 10, reload: 2}\n",
			RefInline, "range",
		},
		{
			"inline with null hp",
			`{"unit":{"name":"X","hp":null,"reload":2,"range":1}}`,
			"unit: {name: X, hp: null, reload: 2, range: 1}\n",
			RefInline, "hp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromJSON, fromYAML ArmySpec
			if err := json.Unmarshal([]byte(tt.json), &fromJSON); err != nil {
				t.Fatalf("Failed to unmarshal JSON: %v", err)
			}
			if err := yaml.Unmarshal([]byte(tt.yaml), &fromYAML); err != nil {
				t.Fatalf("Failed to unmarshal YAML: %v", err)
			}
			for label, spec := range map[string]*ArmySpec{"json": &fromJSON, "yaml": &fromYAML} {
				if spec.Unit.Kind != tt.want {
					t.Errorf("%s: kind = %v, want %v", label, spec.Unit.Kind, tt.want)
				}
				if got := spec.Unit.MissingField(); got != tt.missing {
					t.Errorf("%s: missing field = %q, want %q", label, got, tt.missing)
				}
			}
		})
	}
}

func TestArmySpecCloneIsDeep(t *testing.T) {
	orig := ArmySpec{
		Unit:      InlineRef(StatBlock{Name: "X", HP: 10, Attacks: ClassMap{4: 5}}),
		Count:     NewNumber(3),
		Overrides: &Overrides{HP: NewNumber(50), Armors: ClassMap{3: 1}},
	}
	c := orig.Clone()
	*c.Count = 9
	*c.Overrides.HP = 1
	c.Overrides.Armors[3] = 7
	c.Unit.Inline.Attacks[4] = 99

	if *orig.Count != 3 || *orig.Overrides.HP != 50 || orig.Overrides.Armors[3] != 1 || orig.Unit.Inline.Attacks[4] != 5 {
		t.Errorf("clone shares state with original: %+v", orig)
	}
}

func TestArmySpecMerge(t *testing.T) {
	base := ArmySpec{
		Unit:      KeyRef("archer"),
		Count:     NewNumber(10),
		Buildings: NewNumber(1),
		Overrides: &Overrides{HP: NewNumber(35), Armors: ClassMap{3: 1, 4: 0}},
	}
	patch := &ArmySpec{
		Count:     NewNumber(25),
		Overrides: &Overrides{Patk: NewNumber(6), Armors: ClassMap{4: 2}},
	}

	got := base.Merge(patch)
	if got.Unit.Key != "archer" {
		t.Errorf("unit = %q, want archer kept", got.Unit.Key)
	}
	if *got.Count != 25 || *got.Buildings != 1 {
		t.Errorf("count=%v buildings=%v, want 25 and 1", *got.Count, *got.Buildings)
	}
	if *got.Overrides.HP != 35 || *got.Overrides.Patk != 6 {
		t.Errorf("overrides not merged field-wise: %+v", got.Overrides)
	}
	if got.Overrides.Armors[3] != 1 || got.Overrides.Armors[4] != 2 {
		t.Errorf("armors = %v, want key-wise merge", got.Overrides.Armors)
	}
	if *base.Count != 10 {
		t.Error("merge modified the base spec")
	}
}

func TestOverridesCostMergeSkipsZero(t *testing.T) {
	base := &Overrides{Cost: &Cost{Food: 60, Gold: 75}}
	got := base.Merge(&Overrides{Cost: &Cost{Gold: 50}})
	if got.Cost.Food != 60 || got.Cost.Gold != 50 {
		t.Errorf("cost = %+v, want food 60 gold 50", *got.Cost)
	}
}

func TestSetField(t *testing.T) {
	for _, path := range SweepableFields() {
		t.Run(path, func(t *testing.T) {
			var s ArmySpec
			if err := s.SetField(path, 42); err != nil {
				t.Fatalf("Failed to set %s: %v", path, err)
			}
			b, err := json.Marshal(s)
			if err != nil {
				t.Fatalf("Failed to marshal: %v", err)
			}
			if !json.Valid(b) || len(b) <= len(`{"unit":null}`) {
				t.Errorf("field %s not reflected in %s", path, b)
			}
		})
	}

	var s ArmySpec
	err := s.SetField("overrides.morale", 1)
	if !errors.Is(err, ErrValidation) || err.Error() != "unsupported sweep field: overrides.morale" {
		t.Errorf("error = %v", err)
	}
}

func TestSetFieldPreservesOtherOverrides(t *testing.T) {
	s := ArmySpec{Overrides: &Overrides{Matk: NewNumber(9)}}
	if err := s.SetField("overrides.hp", 80); err != nil {
		t.Fatalf("Failed to set field: %v", err)
	}
	if *s.Overrides.HP != 80 || *s.Overrides.Matk != 9 {
		t.Errorf("overrides = %+v", s.Overrides)
	}
}

func TestSpecDefaults(t *testing.T) {
	var s ArmySpec
	if s.EngagementPercent() != 100 || s.MicroGroups() != 0 {
		t.Errorf("defaults = %v/%v, want 100/0", s.EngagementPercent(), s.MicroGroups())
	}
	s.EngagementPct = NewNumber(0)
	if s.EngagementPercent() != 0 {
		t.Errorf("explicit zero engagement = %v, want 0", s.EngagementPercent())
	}
}

package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/battlesim/internal/models"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	return c
}

func TestResolveCatalogKey(t *testing.T) {
	c := loadCatalog(t)

	spec := &models.ArmySpec{Unit: models.KeyRef("archer_fu_feudal"), Count: models.NewNumber(10)}
	sb, err := c.Resolve(spec, models.RulesetFlat)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if sb.HP != 30 || sb.Patk != 5 {
		t.Errorf("stats = hp %v patk %v, want 30/5", sb.HP, sb.Patk)
	}
	if sb.Count.Value(0) != 10 {
		t.Errorf("count = %v, want 10", sb.Count.Value(0))
	}
}

func TestResolveErrors(t *testing.T) {
	c := loadCatalog(t)

	tests := []struct {
		name    string
		spec    *models.ArmySpec
		rs      models.Ruleset
		wantIs  error
		wantMsg string
	}{
		{
			name:    "unknown flat key",
			spec:    &models.ArmySpec{Unit: models.KeyRef("nope")},
			rs:      models.RulesetFlat,
			wantIs:  models.ErrUnknownKey,
			wantMsg: "Unknown unit key: nope",
		},
		{
			name:    "civ key under flat ruleset",
			spec:    &models.ArmySpec{Unit: models.KeyRef("britons_halberdier")},
			rs:      models.RulesetFlat,
			wantIs:  models.ErrUnknownKey,
			wantMsg: "Unknown unit key: britons_halberdier",
		},
		{
			name:    "invalid unit",
			spec:    &models.ArmySpec{Unit: models.UnitRef{Kind: models.RefInvalid}},
			rs:      models.RulesetFlat,
			wantIs:  models.ErrValidation,
			wantMsg: "spec.unit must be a string key or an inline stat object",
		},
		{
			name:   "missing unit",
			spec:   &models.ArmySpec{},
			rs:     models.RulesetArmorClass,
			wantIs: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Resolve(tt.spec, tt.rs)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("error %v is not %v", err, tt.wantIs)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestResolveInlineRequiredFields(t *testing.T) {
	c := loadCatalog(t)

	tests := []struct {
		name      string
		doc       string
		wantField string
	}{
		{"complete", `{"unit": {"name": "X", "hp": 10, "reload": 2, "range": 0}}`, ""},
		{"missing name", `{"unit": {"hp": 10, "reload": 2, "range": 0}}`, "name"},
		{"missing range", `{"unit": {"name": "X", "hp": 10, "reload": 2}}`, "range"},
		{"null hp counts as missing", `{"unit": {"name": "X", "hp": null, "reload": 2, "range": 0}}`, "hp"},
	}

	decoders := []struct {
		name   string
		decode func([]byte, any) error
	}{
		{"json", json.Unmarshal},
		{"yaml", yaml.Unmarshal},
	}

	for _, d := range decoders {
		for _, tt := range tests {
			t.Run(d.name+"/"+tt.name, func(t *testing.T) {
				var spec models.ArmySpec
				if err := d.decode([]byte(tt.doc), &spec); err != nil {
					t.Fatalf("Failed to decode: %v", err)
				}
				_, err := c.Resolve(&spec, models.RulesetFlat)
				if tt.wantField == "" {
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					return
				}
				var incomplete *models.InlineSpecIncompleteError
				if !errors.As(err, &incomplete) {
					t.Fatalf("error %v is not InlineSpecIncompleteError", err)
				}
				if incomplete.Field != tt.wantField {
					t.Errorf("field = %q, want %q", incomplete.Field, tt.wantField)
				}
				if want := "Inline unit missing required field: " + tt.wantField; err.Error() != want {
					t.Errorf("message = %q, want %q", err.Error(), want)
				}
			})
		}
	}
}

func TestResolveNonStringUnitIsInvalid(t *testing.T) {
	c := loadCatalog(t)
	var spec models.ArmySpec
	if err := json.Unmarshal([]byte(`{"unit": 42}`), &spec); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if _, err := c.Resolve(&spec, models.RulesetFlat); !errors.Is(err, models.ErrInvalidUnit) {
		t.Errorf("error = %v, want ErrInvalidUnit", err)
	}
}

func TestResolveOverridesFlat(t *testing.T) {
	c := loadCatalog(t)

	spec := &models.ArmySpec{
		Unit: models.KeyRef("archer_fu_feudal"),
		Overrides: &models.Overrides{
			HP:             models.NewNumber(40),
			BonusAtk:       models.NewNumber(2),
			BonusReduction: models.NewNumber(0.25),
		},
		TechDelay:   models.NewNumber(12),
		UnitsBefore: models.NewNumber(4),
		Buildings:   models.NewNumber(3),
		ResourceDiscounts: &models.ResourceDiscounts{
			All:  models.NewNumber(10),
			Gold: models.NewNumber(20),
		},
	}
	sb, err := c.Resolve(spec, models.RulesetFlat)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if sb.HP != 40 {
		t.Errorf("hp = %v, want 40", sb.HP)
	}
	if sb.BonusAtk != 2 {
		t.Errorf("bonusAtk = %v, want 2", sb.BonusAtk)
	}
	if sb.BonusReduct != 25 {
		t.Errorf("bonusReduct = %v, want 25 (0-100 scale)", sb.BonusReduct)
	}
	if sb.TechDelay != 12 || sb.UnitsBefore != 4 || sb.Buildings != 3 {
		t.Errorf("army fields = %v/%v/%v", sb.TechDelay, sb.UnitsBefore, sb.Buildings)
	}
	if sb.DiscAll != 10 || sb.DiscG != 20 || sb.DiscF != 0 {
		t.Errorf("discounts = all %v gold %v food %v", sb.DiscAll, sb.DiscG, sb.DiscF)
	}

	// catalog untouched
	again, _ := c.Preset("archer_fu_feudal")
	if again.HP != 30 || again.BonusAtk != 0 {
		t.Errorf("catalog mutated: %+v", again)
	}
}

func TestResolveOverridesDeepMergeArmorClass(t *testing.T) {
	c := loadCatalog(t)

	spec := &models.ArmySpec{
		Unit: models.KeyRef("britons_halberdier"),
		Overrides: &models.Overrides{
			Attacks: models.ClassMap{models.ClassCavalry: 40},
			Armors:  models.ClassMap{models.ClassBasePierce: 10},
			Cost:    &models.Cost{Gold: 5},
		},
	}
	sb, err := c.Resolve(spec, models.RulesetArmorClass)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if sb.Attacks[models.ClassCavalry] != 40 || sb.Attacks[models.ClassBaseMelee] != 10 {
		t.Errorf("attacks not merged: %v", sb.Attacks)
	}
	if sb.Armors[models.ClassBasePierce] != 10 || sb.Armors[models.ClassBaseMelee] != 3 {
		t.Errorf("armors not merged: %v", sb.Armors)
	}
	if sb.Cost.Food != 35 || sb.Cost.Wood != 25 || sb.Cost.Gold != 5 {
		t.Errorf("cost not merged: %+v", sb.Cost)
	}

	orig, _ := c.CivUnit("britons_halberdier")
	if orig.Attacks[models.ClassCavalry] != 32 || orig.Cost.Gold != 0 {
		t.Errorf("catalog mutated: %v %+v", orig.Attacks, orig.Cost)
	}
}

func TestResolveOverridesReplaceFlat(t *testing.T) {
	c := loadCatalog(t)
	spec := &models.ArmySpec{
		Unit:      models.KeyRef("knight"),
		Overrides: &models.Overrides{Attacks: models.ClassMap{models.ClassBaseMelee: 1}},
	}
	sb, err := c.Resolve(spec, models.RulesetFlat)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(sb.Attacks) != 1 {
		t.Errorf("attacks = %v, want replaced map", sb.Attacks)
	}
}

func TestListingFilters(t *testing.T) {
	c := loadCatalog(t)

	archers := c.Units("ARCH")
	if len(archers) == 0 {
		t.Fatal("no units match ARCH")
	}
	for _, e := range archers {
		t.Logf("%s: %s", e.Key, e.Stat.Name)
	}
	for i := 1; i < len(archers); i++ {
		if archers[i-1].Key >= archers[i].Key {
			t.Errorf("not sorted: %s before %s", archers[i-1].Key, archers[i].Key)
		}
	}

	if got := len(c.Presets("")); got == 0 {
		t.Error("no presets")
	}

	britons := c.CivUnits("", "Britons")
	if len(britons) == 0 {
		t.Fatal("no britons units")
	}
	for _, e := range britons {
		if e.Key[:8] != "britons_" {
			t.Errorf("unexpected civ entry %s", e.Key)
		}
	}

	halbs := c.CivUnits("halb", "britons")
	if len(halbs) != 1 || halbs[0].Key != "britons_halberdier" {
		t.Errorf("halb filter = %v", halbs)
	}

	if civs := c.Civs(); len(civs) < 2 {
		t.Errorf("civs = %v", civs)
	}
}

func TestLookupMisses(t *testing.T) {
	c := loadCatalog(t)

	if _, err := c.Unit("archer_fu_feudal"); !errors.Is(err, models.ErrUnknownKey) {
		t.Errorf("presets are not base units: %v", err)
	}
	if _, err := c.CivUnit("archer"); !errors.Is(err, models.ErrUnknownKey) {
		t.Errorf("flat units are not civ units: %v", err)
	}

	_, err := c.Scenario("no_such_scenario")
	var unknown *models.UnknownKeyError
	if !errors.As(err, &unknown) || unknown.Kind != "scenario" {
		t.Fatalf("error = %v, want scenario UnknownKeyError", err)
	}
	if err.Error() != "Scenario not found: no_such_scenario" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestPresetsWinOverUnits(t *testing.T) {
	units := map[string]models.StatBlock{"x": {Name: "Unit X", HP: 10}}
	presets := map[string]models.StatBlock{"x": {Name: "Preset X", HP: 20}}
	c := New(units, presets, nil, nil)

	sb, err := c.Lookup("x", models.RulesetFlat)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if sb.Name != "Preset X" {
		t.Errorf("name = %q, want preset", sb.Name)
	}
}

package solver

import (
	"errors"
	"testing"

	"github.com/napolitain/battlesim/internal/catalog"
	"github.com/napolitain/battlesim/internal/models"
)

func newTestService(t testing.TB) *Service {
	t.Helper()
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	return NewService(cat, Config{Workers: 4})
}

func side(key string, count float64) *models.ArmySpec {
	return &models.ArmySpec{Unit: models.KeyRef(key), Count: models.NewNumber(count)}
}

func wall(count float64) *models.ArmySpec {
	return &models.ArmySpec{
		Unit:  models.InlineRef(models.StatBlock{Name: "Wall", HP: 1000, Matk: 1, Reload: 1, Range: 0}),
		Count: models.NewNumber(count),
	}
}

func withMicro(spec *models.ArmySpec, micro float64) *models.ArmySpec {
	spec.Micro = models.NewNumber(micro)
	return spec
}

var armorClass = models.Options{Ruleset: models.RulesetArmorClass}

func TestSimulateScenarios(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name string
		a, b *models.ArmySpec
		opts models.Options
		want models.Winner
	}{
		{"skirms beat equal archers", side("archer_fu_feudal", 10), side("skirm_fu_feudal", 10), models.Options{}, models.Winner(models.SideB)},
		{"archer mass beats skirms", side("archer_fu_feudal", 30), side("skirm_fu_feudal", 10), models.Options{}, models.Winner(models.SideA)},
		{"halberdiers beat cavaliers", side("britons_halberdier", 15), side("britons_cavalier", 10), armorClass, models.Winner(models.SideA)},
		{"lone halberdier loses", side("britons_halberdier", 1), side("britons_cavalier", 10), armorClass, models.Winner(models.SideB)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.Simulate(tt.a, tt.b, tt.opts)
			if err != nil {
				t.Fatalf("Failed to simulate: %v", err)
			}
			if out.Winner != tt.want {
				t.Errorf("winner = %v, want %v", out.Winner, tt.want)
			}
			if out.Draw {
				t.Error("unexpected draw")
			}
		})
	}
}

func TestSimulateHistoryToggle(t *testing.T) {
	svc := newTestService(t)
	a, b := side("archer_fu_feudal", 10), side("skirm_fu_feudal", 10)

	out, err := svc.Simulate(a, b, models.Options{})
	if err != nil {
		t.Fatalf("Failed to simulate: %v", err)
	}
	if out.History != nil {
		t.Errorf("history = %d snapshots, want nil", len(out.History))
	}

	out, err = svc.Simulate(a, b, models.Options{IncludeHistory: true})
	if err != nil {
		t.Fatalf("Failed to simulate: %v", err)
	}
	if len(out.History) < 2 {
		t.Errorf("history = %d snapshots, want at least start and end", len(out.History))
	}
}

func TestSimulateErrors(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name string
		a, b *models.ArmySpec
		opts models.Options
		want error
	}{
		{"missing side", nil, side("archer", 1), models.Options{}, models.ErrValidation},
		{"missing unit", &models.ArmySpec{}, side("archer", 1), models.Options{}, models.ErrValidation},
		{"unknown key", side("trebuchet", 1), side("archer", 1), models.Options{}, models.ErrUnknownKey},
		{"flat key under armor-class", side("archer_fu_feudal", 1), side("britons_knight", 1), armorClass, models.ErrUnknownKey},
		{"negative tick", side("archer", 1), side("archer", 1), models.Options{Tick: -1}, models.ErrValidation},
		{"bad ruleset", side("archer", 1), side("archer", 1), models.Options{Ruleset: "v9"}, models.ErrValidation},
		{"negative micro", withMicro(side("archer", 10), -1), side("skirmisher", 10), models.Options{}, models.ErrValidation},
		{"fractional micro", side("archer", 10), withMicro(side("skirmisher", 10), 0.5), models.Options{}, models.ErrValidation},
		{"micro above five", withMicro(side("archer", 10), 6), side("skirmisher", 10), models.Options{}, models.ErrValidation},
		{"negative engagement", &models.ArmySpec{Unit: models.KeyRef("archer"), EngagementPct: models.NewNumber(-5)}, side("skirmisher", 10), models.Options{}, models.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Simulate(tt.a, tt.b, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSimulateMicroNeverGrowsDefender(t *testing.T) {
	svc := newTestService(t)
	for micro := 0.0; micro <= models.MaxMicro; micro++ {
		out, err := svc.Simulate(withMicro(side("archer", 10), micro), side("skirmisher", 10), models.Options{IncludeHistory: true})
		if err != nil {
			t.Fatalf("Failed to simulate with micro %v: %v", micro, err)
		}
		for _, snap := range out.History {
			if snap.CountB > 10 {
				t.Fatalf("micro %v: side_b count grew to %v at t=%v", micro, snap.CountB, snap.Time)
			}
		}
	}
}

func TestNewServiceDefaults(t *testing.T) {
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	svc := NewService(cat, Config{})
	if svc.log == nil {
		t.Fatal("logger is nil, want a no-op logger")
	}
	if svc.workers < 1 {
		t.Errorf("workers = %d, want at least 1", svc.workers)
	}
	if _, err := svc.Simulate(side("archer", 1), side("skirmisher", 1), models.Options{}); err != nil {
		t.Errorf("Failed to simulate with default config: %v", err)
	}
}

func TestSimulateRulesetAliases(t *testing.T) {
	svc := newTestService(t)
	for _, rs := range []models.Ruleset{"v2", "armor-class", "armor_class"} {
		if _, err := svc.Simulate(side("britons_knight", 1), side("britons_halberdier", 1), models.Options{Ruleset: rs}); err != nil {
			t.Errorf("ruleset %q: %v", rs, err)
		}
	}
}

package solver

import (
	"errors"
	"testing"

	"github.com/napolitain/battlesim/internal/models"
)

func TestListScenarios(t *testing.T) {
	svc := newTestService(t)
	list := svc.ListScenarios()
	if len(list) == 0 {
		t.Fatal("no scenarios")
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("scenarios not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
	for _, s := range list {
		if s.SideA == "" || s.SideB == "" {
			t.Errorf("scenario %q missing side labels", s.ID)
		}
	}
}

func TestRunScenario(t *testing.T) {
	svc := newTestService(t)

	base, err := svc.RunScenario("archers_vs_skirms", nil)
	if err != nil {
		t.Fatalf("Failed to run scenario: %v", err)
	}
	if base.Winner != models.Winner(models.SideB) {
		t.Errorf("winner = %v, want side_b", base.Winner)
	}

	patch := &models.ScenarioPatch{SideA: &models.ArmySpec{Count: models.NewNumber(100)}}
	patched, err := svc.RunScenario("archers_vs_skirms", patch)
	if err != nil {
		t.Fatalf("Failed to run patched scenario: %v", err)
	}
	if patched.Winner != models.Winner(models.SideA) {
		t.Errorf("patched winner = %v, want side_a", patched.Winner)
	}
	if patched.SideA.InitialCount != 100 || patched.SideB.InitialCount != 10 {
		t.Errorf("initial counts = %v/%v, want 100/10", patched.SideA.InitialCount, patched.SideB.InitialCount)
	}
}

func TestRunScenarioPatchOptions(t *testing.T) {
	svc := newTestService(t)
	patch := &models.ScenarioPatch{Options: &models.Options{IncludeHistory: true, MaxDuration: 1}}

	out, err := svc.RunScenario("knights_vs_pikes", patch)
	if err != nil {
		t.Fatalf("Failed to run scenario: %v", err)
	}
	if len(out.History) == 0 {
		t.Error("expected history")
	}
	if out.DurationS > 1.05 {
		t.Errorf("duration = %v, want capped near 1s", out.DurationS)
	}
}

func TestRunScenarioUnknown(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.RunScenario("nope", nil)
	if !errors.Is(err, models.ErrUnknownKey) {
		t.Fatalf("error = %v, want unknown key", err)
	}
	if err.Error() != "Scenario not found: nope" {
		t.Errorf("message = %q", err.Error())
	}
}

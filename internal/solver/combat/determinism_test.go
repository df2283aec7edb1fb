package combat

import (
	"testing"

	"github.com/napolitain/battlesim/internal/models"
)

// TestSimDeterminism verifies that the same matchup produces identical
// results across runs. Class maps are iterated in sorted order, so map
// randomization must not leak into damage sums.
func TestSimDeterminism(t *testing.T) {
	opts := models.Options{IncludeHistory: true}

	const iterations = 100

	first, _, _ := run(halberdier(14), cavalier(10), models.RulesetArmorClass, opts)
	t.Logf("Baseline: winner=%v, duration=%.2f, snapshots=%d",
		first.Winner, first.DurationS, len(first.History))

	for i := 1; i < iterations; i++ {
		out, _, _ := run(halberdier(14), cavalier(10), models.RulesetArmorClass, opts)

		if out.Winner != first.Winner {
			t.Errorf("Iteration %d: winner mismatch: got %v, want %v", i, out.Winner, first.Winner)
		}
		if out.DurationS != first.DurationS {
			t.Errorf("Iteration %d: duration mismatch: got %v, want %v", i, out.DurationS, first.DurationS)
		}
		if out.SideA.RemainingHP != first.SideA.RemainingHP || out.SideB.RemainingHP != first.SideB.RemainingHP {
			t.Errorf("Iteration %d: remaining hp mismatch", i)
		}
		if len(out.History) != len(first.History) {
			t.Errorf("Iteration %d: history length mismatch: got %d, want %d",
				i, len(out.History), len(first.History))
			continue
		}
		for j := range out.History {
			if out.History[j] != first.History[j] {
				t.Errorf("Iteration %d: snapshot %d differs", i, j)
				break
			}
		}
	}
}

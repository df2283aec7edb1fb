package solver

import (
	"github.com/napolitain/battlesim/internal/converter"
	"github.com/napolitain/battlesim/internal/models"
	"github.com/napolitain/battlesim/internal/solver/combat"
)

// ScenarioSummary describes a named scenario
type ScenarioSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Desc  string `json:"desc"`
	SideA string `json:"side_a"`
	SideB string `json:"side_b"`
}

// ListScenarios returns every scenario sorted by id
func (s *Service) ListScenarios() []ScenarioSummary {
	all := s.cat.Scenarios()
	out := make([]ScenarioSummary, 0, len(all))
	for _, sc := range all {
		out = append(out, ScenarioSummary{
			ID:    sc.ID,
			Name:  sc.Name,
			Desc:  sc.Desc,
			SideA: sideLabel(sc.A),
			SideB: sideLabel(sc.B),
		})
	}
	return out
}

func sideLabel(side models.ScenarioSide) string {
	if side.Preset != "" {
		return side.Preset
	}
	return side.Unit
}

// RunScenario runs a named scenario. The optional patch is merged over
// each side and may replace the options.
func (s *Service) RunScenario(id string, patch *models.ScenarioPatch) (*combat.Outcome, error) {
	sc, err := s.cat.Scenario(id)
	if err != nil {
		return nil, err
	}

	a, b := converter.ScenarioSpecs(sc)
	var opts models.Options
	if patch != nil {
		a = a.Merge(patch.SideA)
		b = b.Merge(patch.SideB)
		if patch.Options != nil {
			opts = *patch.Options
		}
	}
	return s.Simulate(&a, &b, opts)
}

package solver

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/napolitain/battlesim/internal/logging"
	"github.com/napolitain/battlesim/internal/models"
)

// sweepEpsilon absorbs float drift at the top of the range
const sweepEpsilon = 1e-9

// maxSweepPoints bounds how many values one sweep may expand to
const maxSweepPoints = 100000

// SweepPoint is the winner at one value of the swept field
type SweepPoint struct {
	Value  float64       `json:"value"`
	Winner models.Winner `json:"winner"`
}

// SweepResult lists the winner per value and the first value at which the
// winner changed from the winner at the range minimum
type SweepResult struct {
	SweepParam string       `json:"sweep_param"`
	Breakeven  *float64     `json:"breakeven"`
	Results    []SweepPoint `json:"results"`
}

// sweepValues returns min, min+step, ... up to max inclusive, each rounded
// to 1e-9 so repeated steps do not accumulate drift
func sweepValues(r models.SweepRange) ([]float64, error) {
	var vals []float64
	for v := r.Min; v <= r.Max+sweepEpsilon; {
		if len(vals) == maxSweepPoints {
			return nil, models.Validationf("sweep.range expands to more than %d values", maxSweepPoints)
		}
		vals = append(vals, v)
		next := math.Round((v+r.Step)*1e9) / 1e9
		if next <= v {
			return nil, models.Validationf("sweep.range.step too small")
		}
		v = next
	}
	return vals, nil
}

// Sweep varies one numeric field of one side across an inclusive range and
// reports where the outcome flips. A draw is a distinct outcome, so a flip
// to or from a draw counts as a breakeven. The input specs are not modified.
func (s *Service) Sweep(a, b *models.ArmySpec, sweep models.SweepSpec, opts models.Options) (*SweepResult, error) {
	r := sweep.Range
	for _, f := range []float64{r.Min, r.Max, r.Step} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, models.Validationf("sweep.range min, max and step must be finite")
		}
	}
	if !(r.Step > 0) {
		return nil, models.Validationf("sweep.range.step must be positive")
	}
	if r.Min > r.Max {
		return nil, models.Validationf("sweep.range.min must be <= max")
	}

	side, field, _ := strings.Cut(sweep.Target, ".")
	if side != string(models.SideA) && side != string(models.SideB) {
		return nil, models.Validationf("sweep.target must start with side_a or side_b")
	}
	if err := models.ValidateSides(a, b); err != nil {
		return nil, err
	}
	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}
	opts.IncludeHistory = false

	vals, err := sweepValues(r)
	if err != nil {
		return nil, err
	}
	resolved := make([]matchup, len(vals))
	for i, v := range vals {
		ca, cb := a.Clone(), b.Clone()
		target := &ca
		if side == string(models.SideB) {
			target = &cb
		}
		if err := target.SetField(field, v); err != nil {
			return nil, err
		}
		m, err := s.resolve(&ca, &cb, opts.Ruleset)
		if err != nil {
			return nil, err
		}
		resolved[i] = m
	}

	outcomes := s.runAll(resolved, opts)
	out := &SweepResult{SweepParam: sweep.Target, Results: make([]SweepPoint, len(vals))}
	for i, v := range vals {
		w := outcomes[i].Winner
		out.Results[i] = SweepPoint{Value: v, Winner: w}
		if i > 0 && out.Breakeven == nil && w != outcomes[0].Winner {
			be := v
			out.Breakeven = &be
		}
	}

	s.log.Info("sweep finished",
		logging.RunID(),
		zap.String("target", sweep.Target),
		zap.Int("points", len(vals)),
		zap.Bool("breakeven", out.Breakeven != nil),
	)
	return out, nil
}

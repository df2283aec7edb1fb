package solver

import (
	"github.com/napolitain/battlesim/internal/models"
	"github.com/napolitain/battlesim/internal/production"
	"github.com/napolitain/battlesim/internal/units"
)

// timelineStep is the sampling interval of a production timeline, seconds
const timelineStep = 5.0

// ProductionReport is the queue state of one side at a point in time
type ProductionReport struct {
	Unit        string             `json:"unit"`
	At          float64            `json:"at"`
	Count       float64            `json:"count"`
	TimePerUnit float64            `json:"time_per_unit"`
	NextUnitAt  float64            `json:"next_unit_at"`
	Timeline    []production.Point `json:"timeline"`
}

// Production reports how many units one side's queue has produced by
// req.At, and when the next one comes out
func (s *Service) Production(req models.ProductionRequest, opts models.Options) (*ProductionReport, error) {
	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}
	if req.Side.Unit.Kind == models.RefMissing {
		return nil, models.Validationf("side must be present and have a unit field")
	}
	if req.At < 0 {
		return nil, models.Validationf("at must not be negative")
	}

	stat, err := s.cat.Resolve(&req.Side, opts.Ruleset)
	if err != nil {
		return nil, err
	}
	u := units.New(stat, opts.Ruleset)
	q := production.FromUnit(u)
	if err := q.Validate(); err != nil {
		return nil, err
	}

	n := q.CountAt(req.At)
	return &ProductionReport{
		Unit:        u.Name,
		At:          req.At,
		Count:       n,
		TimePerUnit: q.TimePerUnit(),
		NextUnitAt:  q.TimeFor(n + 1),
		Timeline:    q.Timeline(req.At, timelineStep),
	}, nil
}

// Package solver runs matchups against a unit catalog: single simulations,
// batches, parameter sweeps and named scenarios.
package solver

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/napolitain/battlesim/internal/catalog"
	"github.com/napolitain/battlesim/internal/logging"
	"github.com/napolitain/battlesim/internal/models"
	"github.com/napolitain/battlesim/internal/solver/combat"
	"github.com/napolitain/battlesim/internal/units"
)

// Config tunes a Service
type Config struct {
	Workers int         // batch concurrency, defaults to GOMAXPROCS
	Logger  *zap.Logger // defaults to a no-op logger
}

// Service resolves army specs and runs them through the combat engine.
// It holds no per-run state and is safe for concurrent use.
type Service struct {
	cat     *catalog.Catalog
	workers int
	log     *zap.Logger
}

// NewService creates a service over the given catalog
func NewService(cat *catalog.Catalog, cfg Config) *Service {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Service{cat: cat, workers: workers, log: log}
}

// Catalog returns the catalog the service resolves against
func (s *Service) Catalog() *catalog.Catalog { return s.cat }

// matchup is a fully resolved pair of armies ready to run
type matchup struct {
	a, b       models.StatBlock
	cfgA, cfgB combat.SideConfig
}

// resolve validates both sides and looks them up under the options' ruleset
func (s *Service) resolve(a, b *models.ArmySpec, rs models.Ruleset) (matchup, error) {
	if err := models.ValidateSides(a, b); err != nil {
		return matchup{}, err
	}
	sa, err := s.cat.Resolve(a, rs)
	if err != nil {
		return matchup{}, err
	}
	sb, err := s.cat.Resolve(b, rs)
	if err != nil {
		return matchup{}, err
	}
	return matchup{
		a:    sa,
		b:    sb,
		cfgA: combat.SideConfig{EngagementPct: a.EngagementPercent(), Micro: a.MicroGroups()},
		cfgB: combat.SideConfig{EngagementPct: b.EngagementPercent(), Micro: b.MicroGroups()},
	}, nil
}

// run builds fresh units from a resolved matchup and simulates it
func (m matchup) run(opts models.Options) combat.Outcome {
	ua := units.New(m.a, opts.Ruleset)
	ub := units.New(m.b, opts.Ruleset)
	res := combat.NewSim(ua, ub, m.cfgA, m.cfgB, opts).Run()
	return combat.Summarize(res, ua, ub, opts.IncludeHistory)
}

// normalize validates options and canonicalizes the ruleset name
func normalize(opts models.Options) (models.Options, error) {
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	rs, err := models.ParseRuleset(string(opts.Ruleset))
	if err != nil {
		return opts, err
	}
	opts.Ruleset = rs
	return opts, nil
}

// Simulate runs one matchup
func (s *Service) Simulate(a, b *models.ArmySpec, opts models.Options) (*combat.Outcome, error) {
	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}
	m, err := s.resolve(a, b, opts.Ruleset)
	if err != nil {
		return nil, err
	}

	out := m.run(opts)
	s.log.Debug("simulation finished",
		logging.RunID(),
		zap.String("ruleset", opts.Ruleset.String()),
		zap.String("side_a", m.a.Name),
		zap.String("side_b", m.b.Name),
		zap.Stringer("winner", out.Winner),
		zap.Float64("duration_s", out.DurationS),
		zap.String("state", string(out.State)),
	)
	return &out, nil
}

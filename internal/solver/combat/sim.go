package combat

import (
	"math"

	"github.com/napolitain/battlesim/internal/models"
	"github.com/napolitain/battlesim/internal/units"
)

// State is the lifecycle state of a simulation
type State string

const (
	StateRunning        State = "running"
	StateSideADestroyed State = "side_a_destroyed"
	StateSideBDestroyed State = "side_b_destroyed"
	StateBothDestroyed  State = "both_destroyed"
	StateTimeout        State = "timeout"
)

// hundredths of a second between periodic snapshots
const snapshotIntervalCent = 25

// SideConfig carries per-side tactical settings
type SideConfig struct {
	EngagementPct float64 // share of the starting army that fires each volley
	Micro         float64 // number of target groups volleys are split across, 0 to 5
}

// DefaultSideConfig is full engagement with no micro
func DefaultSideConfig() SideConfig {
	return SideConfig{EngagementPct: 100}
}

// Snapshot is one history sample
type Snapshot struct {
	Time          float64 `json:"time"`
	CountA        float64 `json:"countA"`
	CountB        float64 `json:"countB"`
	HPA           float64 `json:"hpA"`
	HPB           float64 `json:"hpB"`
	ValRemainingA float64 `json:"valRemainingA"`
	ValRemainingB float64 `json:"valRemainingB"`
	ValLostA      float64 `json:"valLostA"`
	ValLostB      float64 `json:"valLostB"`
}

// ArmyResult is one side's final state
type ArmyResult struct {
	Remaining      float64
	TotalHP        float64
	InitialTotalHP float64
}

// Result is the raw outcome of a run
type Result struct {
	ArmyA    ArmyResult
	ArmyB    ArmyResult
	History  []Snapshot
	Duration float64
	State    State
}

// Sim is a single engagement. It owns both units for the duration of Run.
type Sim struct {
	a, b       *units.Unit
	cfgA, cfgB SideConfig

	tick        float64
	maxDuration float64
	accuracy    bool
	trample     bool
	history     bool

	valA, valB float64 // initial resource value per side

	time     float64
	state    State
	snapshot []Snapshot
}

// NewSim prepares a run. Accuracy and trample only apply under the
// armor-class ruleset.
func NewSim(a, b *units.Unit, cfgA, cfgB SideConfig, opts models.Options) *Sim {
	armorClass := a.Ruleset == models.RulesetArmorClass
	return &Sim{
		a:           a,
		b:           b,
		cfgA:        cfgA,
		cfgB:        cfgB,
		tick:        opts.TickOrDefault(),
		maxDuration: opts.MaxDurationOrDefault(),
		accuracy:    opts.Accuracy && armorClass,
		trample:     armorClass,
		history:     opts.IncludeHistory,
		valA:        a.InitialCount * a.ParsedCost().Total,
		valB:        b.InitialCount * b.ParsedCost().Total,
		state:       StateRunning,
	}
}

// Time returns the elapsed simulated time
func (s *Sim) Time() float64 { return s.time }

// State returns the current lifecycle state
func (s *Sim) State() State { return s.state }

// Run advances until one side is destroyed or the time cap is reached
func (s *Sim) Run() Result {
	s.record()
	for s.state == StateRunning {
		s.Step()
	}
	s.record()

	return Result{
		ArmyA:    armyResult(s.a),
		ArmyB:    armyResult(s.b),
		History:  s.snapshot,
		Duration: s.time,
		State:    s.state,
	}
}

// Step advances one tick: side A acts, then side B, then time moves.
// It is a no-op once the run has ended.
func (s *Sim) Step() {
	if s.state = s.checkState(); s.state != StateRunning {
		return
	}

	prevA, prevB := s.a.CountCeil(), s.b.CountCeil()

	s.act(s.a, s.b, s.cfgA)
	s.act(s.b, s.a, s.cfgB)
	s.time += s.tick

	if s.a.CountCeil() != prevA || s.b.CountCeil() != prevB ||
		int64(math.Round(s.time*100))%snapshotIntervalCent == 0 {
		s.record()
	}
	s.state = s.checkState()
}

func (s *Sim) checkState() State {
	switch {
	case !s.a.Alive() && !s.b.Alive():
		return StateBothDestroyed
	case !s.a.Alive():
		return StateSideADestroyed
	case !s.b.Alive():
		return StateSideBDestroyed
	case s.time >= s.maxDuration:
		return StateTimeout
	}
	return StateRunning
}

// act fires a volley when the attacker is ready, otherwise ticks its cooldown
func (s *Sim) act(attacker, defender *units.Unit, cfg SideConfig) {
	if attacker.AttackCooldown > 0 {
		attacker.AttackCooldown -= s.tick
		return
	}

	engaged := math.Min(attacker.CurrentCount, math.Max(1, attacker.InitialCount*(cfg.EngagementPct/100)))
	volley := Damage(attacker, defender) * engaged * accuracyFactor(attacker, s.accuracy)
	defender.ApplyDamage(volley, cfg.Micro)
	if s.trample && attacker.HasTrample() {
		defender.ApplyDamage(volley*attacker.BlastDamage, 0)
	}
	attacker.AttackCooldown = attacker.Reload
}

func (s *Sim) record() {
	if !s.history {
		return
	}
	hpA, hpB := s.a.TotalHP(), s.b.TotalHP()
	remA := hpFraction(hpA, s.a.InitialTotalHP()) * s.valA
	remB := hpFraction(hpB, s.b.InitialTotalHP()) * s.valB
	s.snapshot = append(s.snapshot, Snapshot{
		Time:          s.time,
		CountA:        s.a.CurrentCount,
		CountB:        s.b.CurrentCount,
		HPA:           hpA,
		HPB:           hpB,
		ValRemainingA: remA,
		ValRemainingB: remB,
		ValLostA:      s.valA - remA,
		ValLostB:      s.valB - remB,
	})
}

// hpFraction is hp/initial, or 0 when undefined
func hpFraction(hp, initial float64) float64 {
	f := hp / initial
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func armyResult(u *units.Unit) ArmyResult {
	return ArmyResult{
		Remaining:      u.CurrentCount,
		TotalHP:        u.TotalHP(),
		InitialTotalHP: u.InitialTotalHP(),
	}
}

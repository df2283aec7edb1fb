package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine defaults
const (
	DefaultTick        = 0.05
	DefaultMaxDuration = 300.0
)

// Options tune a single simulation
type Options struct {
	IncludeHistory bool    `json:"include_history" yaml:"include_history"`
	Tick           float64 `json:"tick,omitempty" yaml:"tick,omitempty"`
	MaxDuration    float64 `json:"maxDuration,omitempty" yaml:"maxDuration,omitempty"`
	Accuracy       bool    `json:"accuracy,omitempty" yaml:"accuracy,omitempty"`
	Ruleset        Ruleset `json:"ruleset,omitempty" yaml:"ruleset,omitempty"`
}

// TickOrDefault returns the tick length, default 0.05s
func (o Options) TickOrDefault() float64 {
	if o.Tick > 0 {
		return o.Tick
	}
	return DefaultTick
}

// MaxDurationOrDefault returns the time cap, default 300s
func (o Options) MaxDurationOrDefault() float64 {
	if o.MaxDuration > 0 {
		return o.MaxDuration
	}
	return DefaultMaxDuration
}

// Validate rejects options the engine cannot run with
func (o Options) Validate() error {
	if o.Tick < 0 {
		return Validationf("options.tick must be positive")
	}
	if o.MaxDuration < 0 {
		return Validationf("options.maxDuration must be positive")
	}
	if _, err := ParseRuleset(string(o.Ruleset)); err != nil {
		return err
	}
	return nil
}

// SimulateRequest is a single matchup document
type SimulateRequest struct {
	SideA   *ArmySpec `json:"side_a" yaml:"side_a"`
	SideB   *ArmySpec `json:"side_b" yaml:"side_b"`
	Options Options   `json:"options" yaml:"options"`
}

// Matchup is one entry of a batch
type Matchup struct {
	ID    string    `json:"id" yaml:"id"`
	SideA *ArmySpec `json:"side_a" yaml:"side_a"`
	SideB *ArmySpec `json:"side_b" yaml:"side_b"`
}

// BatchRequest runs independent matchups with shared options
type BatchRequest struct {
	Matchups []Matchup `json:"matchups" yaml:"matchups"`
	Options  Options   `json:"options" yaml:"options"`
}

// SweepRange is an inclusive numeric range
type SweepRange struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

// SweepSpec names the field to vary, e.g. "side_a.count" or "side_b.overrides.hp"
type SweepSpec struct {
	Target string     `json:"target" yaml:"target"`
	Range  SweepRange `json:"range" yaml:"range"`
}

// SweepRequest varies one field across a range
type SweepRequest struct {
	SideA   *ArmySpec `json:"side_a" yaml:"side_a"`
	SideB   *ArmySpec `json:"side_b" yaml:"side_b"`
	Sweep   SweepSpec `json:"sweep" yaml:"sweep"`
	Options Options   `json:"options" yaml:"options"`
}

// ScenarioPatch adjusts a named scenario before it runs
type ScenarioPatch struct {
	SideA   *ArmySpec `json:"side_a,omitempty" yaml:"side_a,omitempty"`
	SideB   *ArmySpec `json:"side_b,omitempty" yaml:"side_b,omitempty"`
	Options *Options  `json:"options,omitempty" yaml:"options,omitempty"`
}

// ProductionRequest describes a production queue for one side
type ProductionRequest struct {
	Side ArmySpec `json:"side" yaml:"side"`
	At   float64  `json:"at" yaml:"at"`
}

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// LoadSimulateRequest reads a YAML or JSON simulate document
func LoadSimulateRequest(path string) (*SimulateRequest, error) {
	var req SimulateRequest
	if err := loadYAML(path, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// LoadBatchRequest reads a YAML or JSON batch document
func LoadBatchRequest(path string) (*BatchRequest, error) {
	var req BatchRequest
	if err := loadYAML(path, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// LoadSweepRequest reads a YAML or JSON sweep document
func LoadSweepRequest(path string) (*SweepRequest, error) {
	var req SweepRequest
	if err := loadYAML(path, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// LoadScenarioPatch reads a YAML or JSON scenario patch
func LoadScenarioPatch(path string) (*ScenarioPatch, error) {
	var req ScenarioPatch
	if err := loadYAML(path, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// LoadProductionRequest reads a YAML or JSON production document
func LoadProductionRequest(path string) (*ProductionRequest, error) {
	var req ProductionRequest
	if err := loadYAML(path, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ValidateSides checks both sides are present and name a unit
func ValidateSides(a, b *ArmySpec) error {
	for _, side := range []struct {
		name Side
		spec *ArmySpec
	}{{SideA, a}, {SideB, b}} {
		if side.spec == nil || side.spec.Unit.Kind == RefMissing {
			return Validationf("%s must be present and have a unit field", side.name)
		}
		if err := side.spec.validateTactics(side.name); err != nil {
			return err
		}
	}
	return nil
}

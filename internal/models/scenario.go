package models

// ScenarioSide is one side of a named scenario in the short field naming of
// the scenario data files
type ScenarioSide struct {
	Preset string `json:"preset,omitempty" yaml:"preset,omitempty"`
	Unit   string `json:"unit,omitempty" yaml:"unit,omitempty"`

	Count     *Number `json:"count,omitempty" yaml:"count,omitempty"`
	Delay     *Number `json:"delay,omitempty" yaml:"delay,omitempty"`
	Tech      *Number `json:"tech,omitempty" yaml:"tech,omitempty"`
	Pre       *Number `json:"pre,omitempty" yaml:"pre,omitempty"`
	Buildings *Number `json:"buildings,omitempty" yaml:"buildings,omitempty"`
	Eng       *Number `json:"eng,omitempty" yaml:"eng,omitempty"`
	Micro     *Number `json:"micro,omitempty" yaml:"micro,omitempty"`

	Name   *string `json:"name,omitempty" yaml:"name,omitempty"`
	HP     *Number `json:"hp,omitempty" yaml:"hp,omitempty"`
	Matk   *Number `json:"matk,omitempty" yaml:"matk,omitempty"`
	Patk   *Number `json:"patk,omitempty" yaml:"patk,omitempty"`
	Marm   *Number `json:"marm,omitempty" yaml:"marm,omitempty"`
	Parm   *Number `json:"parm,omitempty" yaml:"parm,omitempty"`
	Reload *Number `json:"reload,omitempty" yaml:"reload,omitempty"`
	Range  *Number `json:"range,omitempty" yaml:"range,omitempty"`
	F      *Number `json:"f,omitempty" yaml:"f,omitempty"`
	W      *Number `json:"w,omitempty" yaml:"w,omitempty"`
	G      *Number `json:"g,omitempty" yaml:"g,omitempty"`

	Bbn *Number `json:"bbn,omitempty" yaml:"bbn,omitempty"` // bonus attack
	Abr *Number `json:"abr,omitempty" yaml:"abr,omitempty"` // bonus reduction, 0-100
}

// Scenario is a named, preconfigured matchup
type Scenario struct {
	ID   string       `json:"id" yaml:"-"`
	Name string       `json:"name" yaml:"name"`
	Desc string       `json:"desc" yaml:"desc"`
	A    ScenarioSide `json:"a" yaml:"a"`
	B    ScenarioSide `json:"b" yaml:"b"`
}

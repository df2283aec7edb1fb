// Package production models a unit production queue: a start delay, a
// batch of units trained before a tech pause, then continuous training
// across all buildings.
package production

import (
	"math"

	"github.com/napolitain/battlesim/internal/models"
	"github.com/napolitain/battlesim/internal/units"
)

// Queue is the production schedule of one unit type
type Queue struct {
	Start     float64 // seconds before the first unit starts training
	TechDelay float64 // pause after UnitsBefore units are out
	Before    float64 // units trained before the pause
	TrainTime float64 // seconds per unit per building
	Buildings float64
}

// Point is the produced count at a time
type Point struct {
	Time  float64 `json:"time"`
	Count float64 `json:"count"`
}

// FromUnit reads the queue parameters off a resolved unit
func FromUnit(u *units.Unit) Queue {
	return Queue{
		Start:     u.StartDelay,
		TechDelay: u.TechDelay,
		Before:    u.UnitsBefore,
		TrainTime: u.TrainTime,
		Buildings: u.Buildings,
	}
}

// Validate rejects queues that never produce
func (q Queue) Validate() error {
	if !(q.TrainTime > 0) {
		return models.Validationf("trainTime must be positive")
	}
	if !(q.Buildings > 0) {
		return models.Validationf("buildings must be positive")
	}
	if q.Start < 0 || q.TechDelay < 0 || q.Before < 0 {
		return models.Validationf("delay, tech_delay and units_before must not be negative")
	}
	return nil
}

// TimePerUnit is the effective seconds between units across all buildings
func (q Queue) TimePerUnit() float64 {
	return q.TrainTime / q.Buildings
}

// CountAt returns the number of units produced by time t
func (q Queue) CountAt(t float64) float64 {
	if t < q.Start {
		return 0
	}
	per := q.TimePerUnit()
	preDone := q.Start + q.Before*per
	switch {
	case t <= preDone:
		return math.Floor((t - q.Start) / per)
	case t < preDone+q.TechDelay:
		return q.Before
	}
	return q.Before + math.Floor((t-(preDone+q.TechDelay))/per)
}

// TimeFor returns the earliest time n units are out
func (q Queue) TimeFor(n float64) float64 {
	per := q.TimePerUnit()
	if n <= 0 {
		return q.Start
	}
	if n <= q.Before {
		return q.Start + n*per
	}
	return q.Start + q.Before*per + q.TechDelay + (n-q.Before)*per
}

// MaxTimelinePoints bounds a timeline; longer horizons are sampled with a
// wider step
const MaxTimelinePoints = 1000

// Timeline samples CountAt from 0 to until inclusive
func (q Queue) Timeline(until, step float64) []Point {
	if !(step > 0) || until < 0 || math.IsInf(until, 0) || math.IsNaN(until) {
		return nil
	}
	n := MaxTimelinePoints
	widened := math.Floor(until/step+1e-9)+1 > MaxTimelinePoints
	if widened {
		step = until / float64(n-1)
	} else {
		n = int(math.Floor(until/step+1e-9)) + 1
	}
	out := make([]Point, n)
	for i := range out {
		t := float64(i) * step
		if widened && i == n-1 {
			t = until
		}
		out[i] = Point{Time: t, Count: q.CountAt(t)}
	}
	return out
}

package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Number is a stat value decoded leniently from JSON or YAML. Numbers and
// numeric strings decode to their value; anything else decodes to NaN, which
// every consumer treats as "unset".
type Number float64

// NewNumber returns a pointer to v, for optional fields
func NewNumber(v float64) *Number {
	n := Number(v)
	return &n
}

// Float returns the raw value
func (n Number) Float() float64 {
	return float64(n)
}

// Valid reports whether the value is a usable number
func (n Number) Valid() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Or returns the value, or def when it is zero or not a number
func (n Number) Or(def float64) float64 {
	if !n.Valid() || n == 0 {
		return def
	}
	return float64(n)
}

// OrZero returns the value, or 0 when it is not a number
func (n Number) OrZero() float64 {
	if !n.Valid() {
		return 0
	}
	return float64(n)
}

// Value returns the pointed value, or def when unset or not a number
func (n *Number) Value(def float64) float64 {
	if n == nil || !n.Valid() {
		return def
	}
	return float64(*n)
}

func parseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number(math.NaN())
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number(math.NaN())
	}
	return Number(f)
}

// UnmarshalJSON accepts numbers and numeric strings
func (n *Number) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = parseNumber(s)
		return nil
	}
	*n = parseNumber(string(b))
	return nil
}

// MarshalJSON writes NaN as null
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(n))
}

// UnmarshalYAML accepts scalar numbers and numeric strings
func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		*n = Number(math.NaN())
		return nil
	}
	*n = parseNumber(value.Value)
	return nil
}

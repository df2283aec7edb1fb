// Package catalog holds the unit catalogs and resolves army specs against them
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/napolitain/battlesim/internal/loader"
	"github.com/napolitain/battlesim/internal/models"
)

// Entry is a catalog record with its key
type Entry struct {
	Key  string
	Stat models.StatBlock
}

// Resolver turns an army spec into a concrete stat block
type Resolver interface {
	Resolve(spec *models.ArmySpec, rs models.Ruleset) (models.StatBlock, error)
}

var _ Resolver = (*Catalog)(nil)

// Catalog is an immutable set of unit tables and scenarios. Every accessor
// returns copies.
type Catalog struct {
	units     map[string]models.StatBlock
	presets   map[string]models.StatBlock
	flat      map[string]models.StatBlock // units + presets, presets win
	civ       map[string]models.StatBlock
	scenarios map[string]models.Scenario
	order     []string // scenario ids, sorted
}

// New builds a catalog from already loaded tables
func New(units, presets, civ map[string]models.StatBlock, scenarios []models.Scenario) *Catalog {
	c := &Catalog{
		units:     cloneTable(units),
		presets:   cloneTable(presets),
		flat:      make(map[string]models.StatBlock, len(units)+len(presets)),
		civ:       cloneTable(civ),
		scenarios: make(map[string]models.Scenario, len(scenarios)),
	}
	for k, v := range c.units {
		c.flat[k] = v
	}
	for k, v := range c.presets {
		c.flat[k] = v
	}
	for _, s := range scenarios {
		c.scenarios[s.ID] = s
		c.order = append(c.order, s.ID)
	}
	sort.Strings(c.order)
	return c
}

// Load reads every catalog file from dataDir, or the embedded data when
// dataDir is empty
func Load(dataDir string) (*Catalog, error) {
	units, err := loader.LoadUnits(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}
	presets, err := loader.LoadPresets(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}
	civ, err := loader.LoadCivUnits(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load civ units: %w", err)
	}
	scenarios, err := loader.LoadScenarios(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios: %w", err)
	}
	return New(units, presets, civ, scenarios), nil
}

func cloneTable(in map[string]models.StatBlock) map[string]models.StatBlock {
	out := make(map[string]models.StatBlock, len(in))
	for k, v := range in {
		out[k] = v.Clone()
	}
	return out
}

func filterEntries(table map[string]models.StatBlock, keep func(key string, sb *models.StatBlock) bool) []Entry {
	out := make([]Entry, 0, len(table))
	for k, v := range table {
		if keep(k, &v) {
			out = append(out, Entry{Key: k, Stat: v.Clone()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func nameMatches(filter string) func(string, *models.StatBlock) bool {
	q := strings.ToLower(strings.TrimSpace(filter))
	return func(_ string, sb *models.StatBlock) bool {
		return q == "" || strings.Contains(strings.ToLower(sb.Name), q)
	}
}

// table returns the lookup table for a ruleset
func (c *Catalog) table(rs models.Ruleset) map[string]models.StatBlock {
	if rs == models.RulesetArmorClass {
		return c.civ
	}
	return c.flat
}

func lookup(table map[string]models.StatBlock, key string) (models.StatBlock, error) {
	sb, ok := table[key]
	if !ok {
		return models.StatBlock{}, &models.UnknownKeyError{Kind: "unit", Key: key}
	}
	return sb.Clone(), nil
}

// Units lists base flat-ruleset units whose name contains nameFilter
func (c *Catalog) Units(nameFilter string) []Entry {
	return filterEntries(c.units, nameMatches(nameFilter))
}

// Unit returns one base unit
func (c *Catalog) Unit(key string) (models.StatBlock, error) {
	return lookup(c.units, key)
}

// Presets lists flat-ruleset presets whose name contains nameFilter
func (c *Catalog) Presets(nameFilter string) []Entry {
	return filterEntries(c.presets, nameMatches(nameFilter))
}

// Preset returns one preset
func (c *Catalog) Preset(key string) (models.StatBlock, error) {
	return lookup(c.presets, key)
}

// CivUnits lists armor-class units. civFilter matches the key prefix
// "<civ>_", nameFilter is a case-insensitive substring of the name.
func (c *Catalog) CivUnits(nameFilter, civFilter string) []Entry {
	byName := nameMatches(nameFilter)
	prefix := strings.ToLower(strings.TrimSpace(civFilter))
	if prefix != "" {
		prefix += "_"
	}
	return filterEntries(c.civ, func(key string, sb *models.StatBlock) bool {
		return strings.HasPrefix(key, prefix) && byName(key, sb)
	})
}

// CivUnit returns one armor-class unit
func (c *Catalog) CivUnit(key string) (models.StatBlock, error) {
	return lookup(c.civ, key)
}

// Lookup returns the unit a key resolves to under a ruleset
func (c *Catalog) Lookup(key string, rs models.Ruleset) (models.StatBlock, error) {
	return lookup(c.table(rs), key)
}

// Civs returns the distinct civ prefixes of the armor-class catalog
func (c *Catalog) Civs() []string {
	seen := make(map[string]bool)
	var civs []string
	for key := range c.civ {
		civ, _, ok := strings.Cut(key, "_")
		if ok && !seen[civ] {
			seen[civ] = true
			civs = append(civs, civ)
		}
	}
	sort.Strings(civs)
	return civs
}

// Scenarios returns all scenarios sorted by id
func (c *Catalog) Scenarios() []models.Scenario {
	out := make([]models.Scenario, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.scenarios[id])
	}
	return out
}

// Scenario returns one scenario
func (c *Catalog) Scenario(id string) (models.Scenario, error) {
	s, ok := c.scenarios[id]
	if !ok {
		return models.Scenario{}, &models.UnknownKeyError{Kind: "scenario", Key: id}
	}
	return s, nil
}

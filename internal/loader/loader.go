package loader

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/battlesim/internal/models"
)

// Catalog file names, looked up in the data directory
const (
	UnitsFile     = "units.yaml"
	PresetsFile   = "presets.yaml"
	CivUnitsFile  = "civ_units.yaml"
	ScenariosFile = "scenarios.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// source returns the embedded data, or dataDir when one is given
func source(dataDir string) fs.FS {
	if dataDir == "" {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			panic(err)
		}
		return sub
	}
	return os.DirFS(dataDir)
}

func readYAML(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func loadStatBlocks(dataDir, name string) (map[string]models.StatBlock, error) {
	var raw map[string]models.StatBlock
	if err := readYAML(source(dataDir), name, &raw); err != nil {
		return nil, err
	}
	for key, sb := range raw {
		if sb.Name == "" {
			return nil, fmt.Errorf("%s: unit %s has no name", name, key)
		}
		if !sb.HP.Valid() || sb.HP <= 0 {
			return nil, fmt.Errorf("%s: unit %s has invalid hp", name, key)
		}
	}
	return raw, nil
}

// LoadUnits loads base units for the flat ruleset. An empty dataDir reads
// the embedded catalog.
func LoadUnits(dataDir string) (map[string]models.StatBlock, error) {
	return loadStatBlocks(dataDir, UnitsFile)
}

// LoadPresets loads upgraded stat lines for the flat ruleset
func LoadPresets(dataDir string) (map[string]models.StatBlock, error) {
	return loadStatBlocks(dataDir, PresetsFile)
}

// LoadCivUnits loads the armor-class ruleset catalog
func LoadCivUnits(dataDir string) (map[string]models.StatBlock, error) {
	units, err := loadStatBlocks(dataDir, CivUnitsFile)
	if err != nil {
		return nil, err
	}
	for key, sb := range units {
		if len(sb.Attacks) == 0 {
			fmt.Printf("Warning: %s has no class attacks, flat damage will be used\n", key)
		}
	}
	return units, nil
}

// LoadScenarios loads named matchups, sorted by id
func LoadScenarios(dataDir string) ([]models.Scenario, error) {
	var raw map[string]models.Scenario
	if err := readYAML(source(dataDir), ScenariosFile, &raw); err != nil {
		return nil, err
	}

	scenarios := make([]models.Scenario, 0, len(raw))
	for id, s := range raw {
		s.ID = id
		scenarios = append(scenarios, s)
	}
	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ID < scenarios[j].ID
	})
	return scenarios, nil
}

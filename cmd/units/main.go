package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/battlesim/internal/catalog"
	"github.com/napolitain/battlesim/internal/models"
)

var (
	dataDir    string
	ruleset    string
	nameFilter string
	civFilter  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "units",
		Short: "Browse the battle simulator unit catalogs",
		Long: `Lists the unit catalogs the simulator resolves keys against: base
units and presets for the flat ruleset, civilization units with per-class
attacks and armors for the armor-class ruleset.`,
		Run: runUnits,
	}

	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "Path to data directory (default: embedded data)")
	rootCmd.PersistentFlags().StringVarP(&nameFilter, "name", "n", "", "Case-insensitive name filter")
	rootCmd.Flags().StringVarP(&ruleset, "ruleset", "r", "flat", "Catalog to list: flat (v1) or armor-class (v2)")
	rootCmd.Flags().StringVarP(&civFilter, "civ", "c", "", "Civilization filter (armor-class only)")

	rootCmd.AddCommand(
		&cobra.Command{Use: "presets", Short: "List upgraded presets", Run: runPresets},
		&cobra.Command{Use: "civs", Short: "List civilizations", Run: runCivs},
		&cobra.Command{Use: "classes", Short: "List armor class ids", Run: runClasses},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadCatalog() *catalog.Catalog {
	cat, err := catalog.Load(dataDir)
	if err != nil {
		color.Red("Error loading catalog: %v", err)
		os.Exit(1)
	}
	return cat
}

func runUnits(cmd *cobra.Command, args []string) {
	rs, err := models.ParseRuleset(ruleset)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	cat := loadCatalog()

	if rs == models.RulesetArmorClass {
		entries := cat.CivUnits(nameFilter, civFilter)
		color.New(color.FgCyan, color.Bold).Printf("📋 Civilization units (%d):\n", len(entries))
		printClassTable(entries)
		return
	}

	entries := cat.Units(nameFilter)
	color.New(color.FgCyan, color.Bold).Printf("📋 Units (%d):\n", len(entries))
	printFlatTable(entries)
}

func runPresets(cmd *cobra.Command, args []string) {
	entries := loadCatalog().Presets(nameFilter)
	color.New(color.FgCyan, color.Bold).Printf("📋 Presets (%d):\n", len(entries))
	printFlatTable(entries)
}

func runCivs(cmd *cobra.Command, args []string) {
	for _, civ := range loadCatalog().Civs() {
		fmt.Println(civ)
	}
}

func runClasses(cmd *cobra.Command, args []string) {
	ids := make([]int, 0, len(models.ArmorClasses))
	for id := range models.ArmorClasses {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader([]string{"ID", "Class"}))
	for _, id := range ids {
		table.Append([]string{fmt.Sprintf("%d", id), models.ArmorClasses[id]})
	}
	table.Render()
}

func costString(sb *models.StatBlock) string {
	c := sb.BaseCost()
	var parts []string
	for _, rt := range models.AllResourceTypes() {
		if v := c.Get(rt).OrZero(); v != 0 {
			parts = append(parts, fmt.Sprintf("%.0f%s", v, strings.ToUpper(string(rt)[:1])))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func printFlatTable(entries []catalog.Entry) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Key", "Name", "HP", "Atk", "Armor (M/P)", "Reload", "Range", "Bonus", "Cost"}),
	)
	for _, e := range entries {
		sb := e.Stat
		atk := fmt.Sprintf("%.0f", sb.Matk.OrZero())
		if sb.Range.OrZero() > 1 {
			atk = fmt.Sprintf("%.0f (p)", sb.Patk.OrZero())
		}
		table.Append([]string{
			e.Key,
			sb.Name,
			fmt.Sprintf("%.0f", sb.HP.OrZero()),
			atk,
			fmt.Sprintf("%.0f/%.0f", sb.Marm.OrZero(), sb.Parm.OrZero()),
			fmt.Sprintf("%.2f", sb.Reload.OrZero()),
			fmt.Sprintf("%.0f", sb.Range.OrZero()),
			fmt.Sprintf("%.0f", sb.BonusAtk.OrZero()),
			costString(&sb),
		})
	}
	table.Render()
}

func classList(m models.ClassMap) string {
	var parts []string
	for _, id := range m.Classes() {
		parts = append(parts, fmt.Sprintf("%s %.0f", models.ArmorClassName(id), m[id].OrZero()))
	}
	return strings.Join(parts, ", ")
}

func printClassTable(entries []catalog.Entry) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Key", "Name", "HP", "Reload", "Range", "Attacks", "Armors", "Cost"}),
	)
	for _, e := range entries {
		sb := e.Stat
		table.Append([]string{
			e.Key,
			sb.Name,
			fmt.Sprintf("%.0f", sb.HP.OrZero()),
			fmt.Sprintf("%.2f", sb.Reload.OrZero()),
			fmt.Sprintf("%.0f", sb.Range.OrZero()),
			classList(sb.Attacks),
			classList(sb.Armors),
			costString(&sb),
		})
	}
	table.Render()
}

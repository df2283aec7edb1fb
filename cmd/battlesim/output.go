package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/battlesim/internal/models"
	"github.com/napolitain/battlesim/internal/solver"
	"github.com/napolitain/battlesim/internal/solver/combat"
)

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("14")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("14")).
	Padding(0, 2)

func banner(title string) {
	if quiet || asJSON {
		return
	}
	fmt.Println()
	fmt.Println(bannerStyle.Render("AoE2 Battle Simulator\n" + title))
	fmt.Println()
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fail("Error encoding response: %v", err)
	}
}

func fmtOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func printOutcome(out *combat.Outcome) {
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	if out.Draw {
		infoColor.Printf("= Draw after %.2fs (%s)\n\n", out.DurationS, out.State)
	} else {
		successColor.Printf("✓ %s wins after %.2fs\n\n", out.Winner, out.DurationS)
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Side", "Initial", "Remaining", "HP", "HP %", "Value", "Value Left", "Value Lost", "Efficiency"}),
	)
	rows := []struct {
		name string
		s    combat.SideOutcome
		eff  *float64
	}{
		{string(models.SideA), out.SideA, out.Efficiency.SideA},
		{string(models.SideB), out.SideB, out.Efficiency.SideB},
	}
	for _, r := range rows {
		table.Append([]string{
			r.name,
			fmt.Sprintf("%.0f", r.s.InitialCount),
			fmt.Sprintf("%.2f", r.s.RemainingCount),
			fmt.Sprintf("%.1f", r.s.RemainingHP),
			fmt.Sprintf("%.1f%%", r.s.HPPctRemaining*100),
			fmt.Sprintf("%.0f", r.s.ResourceValueInitial),
			fmt.Sprintf("%.0f", r.s.ResourceValueRemaining),
			fmt.Sprintf("%.0f", r.s.ResourceValueLost),
			fmtOptional(r.eff),
		})
	}
	table.Render()

	if len(out.History) > 0 {
		printHistory(out.History)
	}
}

func printHistory(history []combat.Snapshot) {
	fmt.Println("\n📈 History:")
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Time", "Count A", "Count B", "HP A", "HP B", "Lost A", "Lost B"}),
	)
	for _, s := range history {
		table.Append([]string{
			fmt.Sprintf("%.2f", s.Time),
			fmt.Sprintf("%.2f", s.CountA),
			fmt.Sprintf("%.2f", s.CountB),
			fmt.Sprintf("%.1f", s.HPA),
			fmt.Sprintf("%.1f", s.HPB),
			fmt.Sprintf("%.0f", s.ValLostA),
			fmt.Sprintf("%.0f", s.ValLostB),
		})
	}
	table.Render()
}

func printBatch(results []solver.BatchResult) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"ID", "Winner", "Duration", "Left A", "Left B", "Lost A", "Lost B", "Eff A", "Eff B"}),
	)
	for _, r := range results {
		table.Append([]string{
			r.ID,
			r.Winner.String(),
			fmt.Sprintf("%.2fs", r.DurationS),
			fmt.Sprintf("%.2f", r.SideA.RemainingCount),
			fmt.Sprintf("%.2f", r.SideB.RemainingCount),
			fmt.Sprintf("%.0f", r.SideA.ResourceValueLost),
			fmt.Sprintf("%.0f", r.SideB.ResourceValueLost),
			fmtOptional(r.Efficiency.SideA),
			fmtOptional(r.Efficiency.SideB),
		})
	}
	table.Render()
}

func printSweep(res *solver.SweepResult) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{res.SweepParam, "Winner"}),
	)
	for _, p := range res.Results {
		label := p.Winner.String()
		if res.Breakeven != nil && p.Value == *res.Breakeven {
			label += "  ← breakeven"
		}
		table.Append([]string{fmt.Sprintf("%g", p.Value), label})
	}
	table.Render()

	if res.Breakeven == nil {
		color.Yellow("\nNo breakeven: the winner never changed across the range")
		return
	}
	color.New(color.FgGreen, color.Bold).Printf("\n✓ Breakeven at %s = %g\n", res.SweepParam, *res.Breakeven)
}

func printScenarios(list []solver.ScenarioSummary) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"ID", "Name", "Side A", "Side B", "Description"}),
	)
	for _, s := range list {
		table.Append([]string{s.ID, s.Name, s.SideA, s.SideB, s.Desc})
	}
	table.Render()
}

func printProduction(rep *solver.ProductionReport) {
	successColor := color.New(color.FgGreen, color.Bold)
	successColor.Printf("✓ %s: %.0f units out at %.0fs\n", rep.Unit, rep.Count, rep.At)
	fmt.Printf("   Time per unit: %.1fs\n", rep.TimePerUnit)
	fmt.Printf("   Next unit at:  %.1fs\n\n", rep.NextUnitAt)

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Time", "Units"}),
	)
	for _, p := range rep.Timeline {
		table.Append([]string{fmt.Sprintf("%.0fs", p.Time), fmt.Sprintf("%.0f", p.Count)})
	}
	table.Render()
}

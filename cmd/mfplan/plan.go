package main

import (
	"fmt"
	"log"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mfplan/fund-planner/internal/config"
	"github.com/mfplan/fund-planner/internal/output"
)

var retirementCmd = &cobra.Command{
	Use:   "retirement [plan-file]",
	Short: "Run the combined accumulation and withdrawal lifecycle planner",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		plan, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		engine := newEngine(cmd)
		result := engine.PlanRetirement(*plan)
		emitReport(cmd, &output.Report{Title: "Retirement Plan", Retirement: result})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Validate a retirement plan file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Plan file %s is valid\n", args[0])
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [scheme-code] [scheme-code]",
	Short: "Compare rolling CAGR of two schemes over 1y, 3y and 5y windows",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(cmd)

		seriesA, nameA := fetchSeries(cmd, args[0])
		seriesB, nameB := fetchSeries(cmd, args[1])

		comparison := engine.CompareRollingCAGR(seriesA, seriesB)

		windows := make([]string, 0, len(comparison))
		for w := range comparison {
			windows = append(windows, w)
		}
		sort.Strings(windows)

		fmt.Printf("%-6s %24s %24s\n", "Window", truncate(nameA, 24), truncate(nameB, 24))
		for _, w := range windows {
			pair := comparison[w]
			fmt.Printf("%-6s %24s %24s\n", w,
				output.FormatOptionalPercentage(pair[0]),
				output.FormatOptionalPercentage(pair[1]))
		}
	},
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

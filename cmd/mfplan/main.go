package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mfplan/fund-planner/internal/calculation"
	"github.com/mfplan/fund-planner/internal/domain"
	"github.com/mfplan/fund-planner/internal/navapi"
	"github.com/mfplan/fund-planner/internal/output"
	"github.com/mfplan/fund-planner/pkg/dateutil"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mfplan",
	Short: "Mutual fund projection and planning CLI",
	Long:  "Return metrics, SIP/SWP projections and retirement planning for mutual fund investors",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "mfplan %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

func emitReport(cmd *cobra.Command, report *output.Report) {
	format, _ := cmd.Flags().GetString("format")
	data, err := output.GenerateReport(report, format)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(data))
}

func decimalFlag(cmd *cobra.Command, name string) decimal.Decimal {
	v, _ := cmd.Flags().GetFloat64(name)
	return decimal.NewFromFloat(v)
}

func dateFlag(cmd *cobra.Command, name string) time.Time {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return time.Time{}
	}
	return dateutil.ParseFlexibleDate(s)
}

var metricsCmd = &cobra.Command{
	Use:   "metrics [scheme-code]",
	Short: "Compute return and risk metrics for a fund's NAV history",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(cmd)
		series, meta := fetchSeries(cmd, args[0])

		if period, _ := cmd.Flags().GetString("period"); period != "" {
			series = series.FilterByPeriod(period)
		}
		start, end := dateFlag(cmd, "start"), dateFlag(cmd, "end")
		if !start.IsZero() && !end.IsZero() {
			series = series.FilterByDateRange(start, end)
		}

		metrics := engine.AnalyzePerformance(series)
		if metrics == nil {
			log.Fatal("not enough NAV observations to compute metrics")
		}
		emitReport(cmd, &output.Report{Title: meta, Metrics: metrics})
	},
}

var sipCmd = &cobra.Command{
	Use:   "sip",
	Short: "Project a SIP, against an expected rate or replayed over NAV history",
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(cmd)

		stream := domain.ContributionStream{
			MonthlyAmount:     decimalFlag(cmd, "monthly"),
			AnnualRatePercent: decimalFlag(cmd, "rate"),
			StartDate:         dateFlag(cmd, "start"),
			EndDate:           dateFlag(cmd, "end"),
		}
		if stepUp := decimalFlag(cmd, "step-up"); stepUp.GreaterThan(decimal.Zero) {
			stream.StepUp = &domain.StepUp{Enabled: true, AnnualRatePercent: stepUp}
		}
		lumpsum := lumpsumFromFlags(cmd)

		var result *domain.SIPResult
		if scheme, _ := cmd.Flags().GetString("scheme"); scheme != "" {
			series, _ := fetchSeries(cmd, scheme)
			result = engine.ReplaySIP(series, stream, lumpsum)
		} else {
			result = engine.ProjectSIP(stream, lumpsum)
		}
		emitReport(cmd, &output.Report{SIP: result})
	},
}

func lumpsumFromFlags(cmd *cobra.Command) *domain.LumpsumEntry {
	amount := decimalFlag(cmd, "lumpsum")
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	entry := &domain.LumpsumEntry{
		Amount:            amount,
		InvestmentDate:    dateFlag(cmd, "lumpsum-date"),
		AnnualRatePercent: decimalFlag(cmd, "lumpsum-rate"),
	}
	if entry.InvestmentDate.IsZero() {
		entry.InvestmentDate = dateFlag(cmd, "start")
	}
	if entry.AnnualRatePercent.IsZero() {
		entry.AnnualRatePercent = decimalFlag(cmd, "rate")
	}
	return entry
}

var swpCmd = &cobra.Command{
	Use:   "swp",
	Short: "Simulate a systematic withdrawal plan against a corpus",
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(cmd)

		stream := domain.WithdrawalStream{
			MonthlyAmount:     decimalFlag(cmd, "monthly"),
			AnnualRatePercent: decimalFlag(cmd, "rate"),
		}
		if stepUp := decimalFlag(cmd, "step-up"); stepUp.GreaterThan(decimal.Zero) {
			stream.StepUp = &domain.StepUp{Enabled: true, AnnualRatePercent: stepUp}
		}

		result := engine.SimulateSWP(decimalFlag(cmd, "corpus"), stream)
		emitReport(cmd, &output.Report{SWP: result})
	},
}

var xirrCmd = &cobra.Command{
	Use:   "xirr [flows-file]",
	Short: "Solve the money-weighted annual return for dated cash flows",
	Long:  "Reads a CSV of date,amount rows: investments negative, redemptions and the terminal value positive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(cmd)

		flows, err := readCashFlows(args[0])
		if err != nil {
			log.Fatal(err)
		}

		rate := engine.XIRR(flows)
		if rate == nil {
			log.Fatal("XIRR is undefined for these flows; both inflows and outflows are required")
		}
		fmt.Printf("XIRR: %s\n", output.FormatPercentage(*rate))
	},
}

func readCashFlows(filename string) ([]domain.CashFlow, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	var flows []domain.CashFlow
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("%s line %d: want date,amount", filename, i+1)
		}
		when, ok := dateutil.ParseFlexible(record[0])
		if !ok {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("%s line %d: bad date %q", filename, i+1, record[0])
		}
		amount, err := decimal.NewFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad amount %q", filename, i+1, record[1])
		}
		flows = append(flows, domain.CashFlow{Date: when, Amount: amount})
	}
	return flows, nil
}

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Solve the SIP needed for a target corpus, or the months a SIP needs",
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(cmd)

		target := decimalFlag(cmd, "amount")
		rate := decimalFlag(cmd, "rate")
		asOf := time.Now().UTC()
		lumpsums := lumpsumsFromFlags(cmd)

		var result *domain.TargetSIPResult
		if monthly := decimalFlag(cmd, "monthly"); monthly.GreaterThan(decimal.Zero) {
			result = engine.MonthsToTarget(target, monthly, rate, asOf, lumpsums)
		} else {
			months, _ := cmd.Flags().GetInt("months")
			result = engine.RequiredMonthlySIP(target, rate, months, asOf, lumpsums)
		}
		emitReport(cmd, &output.Report{Target: result})
	},
}

func lumpsumsFromFlags(cmd *cobra.Command) []domain.LumpsumEntry {
	amount := decimalFlag(cmd, "lumpsum")
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	entry := domain.LumpsumEntry{
		Amount:            amount,
		InvestmentDate:    time.Now().UTC(),
		AnnualRatePercent: decimalFlag(cmd, "lumpsum-rate"),
	}
	if d := dateFlag(cmd, "lumpsum-date"); !d.IsZero() {
		entry.InvestmentDate = d
	}
	if entry.AnnualRatePercent.IsZero() {
		entry.AnnualRatePercent = decimalFlag(cmd, "rate")
	}
	return []domain.LumpsumEntry{entry}
}

var lumpsumCmd = &cobra.Command{
	Use:   "lumpsum",
	Short: "Project the future value of a one-time investment",
	Run: func(cmd *cobra.Command, args []string) {
		entry := domain.LumpsumEntry{
			Amount:            decimalFlag(cmd, "amount"),
			InvestmentDate:    dateFlag(cmd, "date"),
			AnnualRatePercent: decimalFlag(cmd, "rate"),
		}
		if entry.InvestmentDate.IsZero() {
			entry.InvestmentDate = time.Now().UTC()
		}
		years, _ := cmd.Flags().GetInt("years")
		asOf := entry.InvestmentDate.AddDate(years, 0, 0)

		fv := calculation.LumpsumFutureValue(entry, asOf)
		fmt.Printf("Invested:     %s\n", output.FormatCurrency(entry.Amount))
		fmt.Printf("Value (%dy):  %s\n", years, output.FormatCurrency(fv))
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [scheme-code]",
	Short: "Fetch a scheme's metadata and latest NAV",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		series, name := fetchSeries(cmd, args[0])

		fmt.Println(name)
		if last, ok := series.Last(); ok {
			fmt.Printf("Latest NAV: %s on %s (%d observations)\n",
				last.NAV.StringFixed(4), last.Date.Format("02 Jan 2006"), len(series))
		}
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search mutual fund schemes by name",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := navapi.NewClient()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		matches, err := client.Search(ctx, args[0])
		if err != nil {
			log.Fatal(err)
		}
		for _, m := range matches {
			fmt.Printf("%8d  %s\n", m.SchemeCode, m.SchemeName)
		}
	},
}

// fetchSeries loads a scheme's NAV history and returns the normalized
// series plus the scheme name for report titles.
func fetchSeries(cmd *cobra.Command, schemeCode string) (domain.NAVSeries, string) {
	var code int
	if _, err := fmt.Sscanf(schemeCode, "%d", &code); err != nil {
		log.Fatalf("scheme code must be numeric, got %q", schemeCode)
	}

	client := navapi.NewClient()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	payload, err := client.FetchScheme(ctx, code)
	if err != nil {
		log.Fatal(err)
	}
	series, fallbacks := domain.ParseNAVSeries(payload.Data)
	if fallbacks > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d NAV records had unparseable dates\n", fallbacks)
	}
	return series, payload.Meta.SchemeName
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("format", "console", "Output format (console, json, csv)")

	metricsCmd.Flags().String("period", "", "Trailing window: 1m, 3m, 6m, 1y, 3y, 5y")
	metricsCmd.Flags().String("start", "", "Range start date (YYYY-MM-DD or DD-MM-YYYY)")
	metricsCmd.Flags().String("end", "", "Range end date")

	sipCmd.Flags().Float64("monthly", 0, "Monthly SIP amount")
	sipCmd.Flags().Float64("rate", 12, "Expected annual return percent")
	sipCmd.Flags().String("start", "", "SIP start date")
	sipCmd.Flags().String("end", "", "SIP end date")
	sipCmd.Flags().Float64("step-up", 0, "Annual step-up percent")
	sipCmd.Flags().Float64("lumpsum", 0, "Additional one-time investment")
	sipCmd.Flags().String("lumpsum-date", "", "Lumpsum investment date")
	sipCmd.Flags().Float64("lumpsum-rate", 0, "Lumpsum expected annual return percent")
	sipCmd.Flags().String("scheme", "", "Scheme code: replay against its NAV history instead of a flat rate")

	swpCmd.Flags().Float64("corpus", 0, "Starting corpus")
	swpCmd.Flags().Float64("monthly", 0, "Monthly withdrawal amount")
	swpCmd.Flags().Float64("rate", 8, "Expected annual return percent")
	swpCmd.Flags().Float64("step-up", 0, "Annual withdrawal step-up percent")

	targetCmd.Flags().Float64("amount", 0, "Target corpus")
	targetCmd.Flags().Float64("rate", 12, "Expected annual return percent")
	targetCmd.Flags().Int("months", 120, "Investment horizon in months (solve for the SIP amount)")
	targetCmd.Flags().Float64("monthly", 0, "Fixed monthly SIP (solve for the month count instead)")
	targetCmd.Flags().Float64("lumpsum", 0, "Existing one-time investment")
	targetCmd.Flags().String("lumpsum-date", "", "Lumpsum investment date")
	targetCmd.Flags().Float64("lumpsum-rate", 0, "Lumpsum expected annual return percent")

	lumpsumCmd.Flags().Float64("amount", 0, "Investment amount")
	lumpsumCmd.Flags().Float64("rate", 12, "Expected annual return percent")
	lumpsumCmd.Flags().String("date", "", "Investment date (defaults to today)")
	lumpsumCmd.Flags().Int("years", 10, "Holding period in years")

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(sipCmd)
	rootCmd.AddCommand(swpCmd)
	rootCmd.AddCommand(xirrCmd)
	rootCmd.AddCommand(targetCmd)
	rootCmd.AddCommand(lumpsumCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(retirementCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

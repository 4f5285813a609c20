package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jwtan/plancast/internal/calculation"
	"github.com/jwtan/plancast/internal/config"
	"github.com/jwtan/plancast/internal/domain"
	"github.com/jwtan/plancast/internal/output"
	"github.com/jwtan/plancast/pkg/monthutil"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// zerologAdapter implements calculation.Logger on top of zerolog.
type zerologAdapter struct {
	log zerolog.Logger
}

func (z zerologAdapter) Debugf(format string, args ...any) { z.log.Debug().Msgf(format, args...) }
func (z zerologAdapter) Infof(format string, args ...any)  { z.log.Info().Msgf(format, args...) }
func (z zerologAdapter) Warnf(format string, args ...any)  { z.log.Warn().Msgf(format, args...) }
func (z zerologAdapter) Errorf(format string, args ...any) { z.log.Error().Msgf(format, args...) }

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

var rootCmd = &cobra.Command{
	Use:   "plancast",
	Short: "Household cashflow projection and affordability CLI",
	Long:  "Projects month-by-month household cashflow, overlays what-if events, and answers affordability questions against an emergency-fund floor.",
}

func projectCmd() *cobra.Command {
	var (
		requestFlag       string
		fromFlag, toFlag  string
		incomeFlags       []string
		expenseFlags      []string
		minEndBalanceFlag string
		minMonthlyFlag    string
		maxAffordableFlag string
		safeExpenseFlag   string
		nowFlag           string
		formatFlag        string
		outputFlag        string
		verboseFlag       bool
	)

	cmd := &cobra.Command{
		Use:   "project [ledger-file]",
		Short: "Run a cashflow projection over a ledger snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verboseFlag)

			ledger, warnings, err := config.NewLedgerLoader().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			for _, w := range warnings {
				logger.Warn().Str("item", w.ItemID).Str("field", w.Field).Msg(w.Detail)
			}

			var req domain.ProjectionRequest
			if requestFlag != "" {
				if req, err = config.LoadRequestFromFile(requestFlag); err != nil {
					return err
				}
			}
			if err := applyRequestFlags(&req, fromFlag, toFlag, incomeFlags, expenseFlags,
				minEndBalanceFlag, minMonthlyFlag, maxAffordableFlag, safeExpenseFlag); err != nil {
				return err
			}

			now := time.Now()
			if nowFlag != "" {
				parsed, err := monthutil.Parse(nowFlag)
				if err != nil {
					return fmt.Errorf("invalid --now: %w", err)
				}
				now = parsed.Time()
			}

			engine := calculation.NewProjectionEngine()
			engine.SetLogger(zerologAdapter{log: logger})

			result, err := engine.ComputeBalanceProjection(req, ledger, now)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outputFlag != "" {
				f, err := os.Create(outputFlag)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}
			return output.NewReportGenerator().Generate(result, formatFlag, w)
		},
	}

	cmd.Flags().StringVar(&requestFlag, "request", "", "load the projection request from a YAML or TOML file; flags override its fields")
	cmd.Flags().StringVar(&fromFlag, "from", "", "first projected month (YYYY-MM; required unless --request provides it)")
	cmd.Flags().StringVar(&toFlag, "to", "", "last projected month (YYYY-MM; required unless --request provides it)")
	cmd.Flags().StringArrayVar(&incomeFlags, "income", nil, "hypothetical one-off income, MONTH:AMOUNT[:LABEL] (repeatable)")
	cmd.Flags().StringArrayVar(&expenseFlags, "expense", nil, "hypothetical one-off expense, MONTH:AMOUNT[:LABEL] (repeatable)")
	cmd.Flags().StringVar(&minEndBalanceFlag, "min-end-balance", "", "warn when the final balance falls below this amount")
	cmd.Flags().StringVar(&minMonthlyFlag, "min-monthly-balance", "", "warn when any month's balance falls below this amount")
	cmd.Flags().StringVar(&maxAffordableFlag, "max-affordable-month", "", "compute the max affordable one-time expense for this month (YYYY-MM)")
	cmd.Flags().StringVar(&safeExpenseFlag, "safe-expense", "", "find the earliest safe month to spend this amount")
	cmd.Flags().StringVar(&nowFlag, "now", "", "treat this month (YYYY-MM) as the current month, for reproducible runs")
	cmd.Flags().StringVar(&formatFlag, "format", output.FormatConsole, "report format: console, json, csv, or pdf")
	cmd.Flags().StringVar(&outputFlag, "output", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	return cmd
}

// applyRequestFlags layers the explicitly set flags onto req (which may have
// been pre-filled from a request file). The engine validates the merged
// request, so missing months are reported there with field-level errors.
func applyRequestFlags(req *domain.ProjectionRequest, from, to string, incomes, expenses []string, minEnd, minMonthly, maxAffordable, safeExpense string) error {
	var err error

	if from != "" {
		if req.FromMonth, err = monthutil.Parse(from); err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
	}
	if to != "" {
		if req.ToMonth, err = monthutil.Parse(to); err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}
	}

	for _, spec := range incomes {
		ev, err := parseEventFlag(spec, domain.ItemIncome)
		if err != nil {
			return err
		}
		req.Hypotheticals = append(req.Hypotheticals, ev)
	}
	for _, spec := range expenses {
		ev, err := parseEventFlag(spec, domain.ItemExpense)
		if err != nil {
			return err
		}
		req.Hypotheticals = append(req.Hypotheticals, ev)
	}

	if minEnd != "" {
		amount, err := decimal.NewFromString(minEnd)
		if err != nil {
			return fmt.Errorf("invalid --min-end-balance: %w", err)
		}
		req.MinEndBalance = &amount
	}
	if minMonthly != "" {
		amount, err := decimal.NewFromString(minMonthly)
		if err != nil {
			return fmt.Errorf("invalid --min-monthly-balance: %w", err)
		}
		req.MinMonthlyBalance = &amount
	}
	if maxAffordable != "" {
		month, err := monthutil.Parse(maxAffordable)
		if err != nil {
			return fmt.Errorf("invalid --max-affordable-month: %w", err)
		}
		req.MaxAffordableExpenseMonth = &month
	}
	if safeExpense != "" {
		amount, err := decimal.NewFromString(safeExpense)
		if err != nil {
			return fmt.Errorf("invalid --safe-expense: %w", err)
		}
		req.SafePurchaseAmount = &amount
	}

	return nil
}

// parseEventFlag parses MONTH:AMOUNT[:LABEL], e.g. "2025-03:5000:new laptop".
func parseEventFlag(spec string, kind domain.ItemKind) (domain.HypotheticalEvent, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return domain.HypotheticalEvent{}, fmt.Errorf("invalid %s event %q (want MONTH:AMOUNT[:LABEL])", kind, spec)
	}
	month, err := monthutil.Parse(parts[0])
	if err != nil {
		return domain.HypotheticalEvent{}, fmt.Errorf("invalid %s event %q: %w", kind, spec, err)
	}
	amount, err := decimal.NewFromString(parts[1])
	if err != nil {
		return domain.HypotheticalEvent{}, fmt.Errorf("invalid %s event %q: %w", kind, spec, err)
	}
	ev := domain.HypotheticalEvent{Type: kind, Amount: amount, Month: month}
	if len(parts) == 3 {
		ev.Label = parts[2]
	}
	return ev, nil
}

func contributionCmd() *cobra.Command {
	var (
		grossFlag string
		ageFlag   int
	)

	cmd := &cobra.Command{
		Use:   "contribution",
		Short: "Compute the statutory contribution breakdown for a gross monthly income",
		RunE: func(cmd *cobra.Command, args []string) error {
			gross, err := decimal.NewFromString(grossFlag)
			if err != nil {
				return fmt.Errorf("invalid --gross: %w", err)
			}

			breakdown := calculation.NewContributionCalculator().Compute(gross, ageFlag)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Policy table:     %s\n", breakdown.PolicyVersion)
			fmt.Fprintf(w, "Gross monthly:    %s\n", output.FormatCurrency(breakdown.GrossMonthly))
			fmt.Fprintf(w, "Employee share:   %s\n", output.FormatCurrency(breakdown.EmployeeShare))
			fmt.Fprintf(w, "Employer share:   %s\n", output.FormatCurrency(breakdown.EmployerShare))
			fmt.Fprintf(w, "Net take-home:    %s\n", output.FormatCurrency(breakdown.NetTakeHome))
			fmt.Fprintf(w, "Ordinary account: %s\n", output.FormatCurrency(breakdown.SubAccounts.Ordinary))
			fmt.Fprintf(w, "Special account:  %s\n", output.FormatCurrency(breakdown.SubAccounts.Special))
			fmt.Fprintf(w, "MediSave account: %s\n", output.FormatCurrency(breakdown.SubAccounts.MediSave))
			return nil
		},
	}

	cmd.Flags().StringVar(&grossFlag, "gross", "", "gross monthly income (required)")
	cmd.Flags().IntVar(&ageFlag, "age", 0, "age in years, selects the policy bracket (required)")
	_ = cmd.MarkFlagRequired("gross")
	_ = cmd.MarkFlagRequired("age")

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "plancast %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func main() {
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(contributionCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

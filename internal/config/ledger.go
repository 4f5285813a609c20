// Package config loads household ledger snapshots from YAML or TOML files
// and validates them once at the repository boundary. Malformed nested
// fields (overrides, milestones, custom months) are dropped and reported as
// data-integrity warnings; one corrupt record never aborts a projection.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jwtan/plancast/internal/domain"
	"github.com/jwtan/plancast/pkg/monthutil"
	"github.com/shopspring/decimal"
)

// DataIntegrityWarning describes a record field that failed validation and
// was treated as absent. Non-fatal by design.
type DataIntegrityWarning struct {
	ItemID string
	Field  string
	Detail string
}

func (w DataIntegrityWarning) String() string {
	return fmt.Sprintf("item %s: %s: %s", w.ItemID, w.Field, w.Detail)
}

// LedgerFile is the on-disk shape of a household ledger snapshot. Month and
// period fields stay as strings here so that a single malformed value
// degrades to a warning instead of failing the whole file.
type LedgerFile struct {
	Owner            string          `yaml:"owner" toml:"owner"`
	OwnerAge         int             `yaml:"owner_age" toml:"owner_age"`
	StartingHoldings decimal.Decimal `yaml:"starting_holdings" toml:"starting_holdings"`
	Incomes          []ItemFile      `yaml:"incomes" toml:"incomes"`
	Expenses         []ItemFile      `yaml:"expenses" toml:"expenses"`
}

// ItemFile is one recurring record as stored on disk.
type ItemFile struct {
	ID                    string          `yaml:"id" toml:"id"`
	Name                  string          `yaml:"name" toml:"name"`
	Amount                decimal.Decimal `yaml:"amount" toml:"amount"`
	Frequency             string          `yaml:"frequency" toml:"frequency"`
	CustomMonths          []int           `yaml:"custom_months" toml:"custom_months"`
	StartDate             time.Time       `yaml:"start_date" toml:"start_date"`
	EndDate               *time.Time      `yaml:"end_date" toml:"end_date"`
	SubjectToContribution bool            `yaml:"subject_to_contribution" toml:"subject_to_contribution"`
	HonorFutureMilestones bool            `yaml:"honor_future_milestones" toml:"honor_future_milestones"`

	HistoricalOverrides []OverrideFile  `yaml:"historical_overrides" toml:"historical_overrides"`
	FutureMilestones    []MilestoneFile `yaml:"future_milestones" toml:"future_milestones"`

	// Optional repository-cached statutory breakdown for the base amount.
	Contribution *domain.ContributionBreakdown `yaml:"contribution" toml:"contribution"`
}

// OverrideFile is a historical override as stored on disk.
type OverrideFile struct {
	Period      string          `yaml:"period" toml:"period"`
	Granularity string          `yaml:"granularity" toml:"granularity"`
	Amount      decimal.Decimal `yaml:"amount" toml:"amount"`
}

// MilestoneFile is a future milestone as stored on disk.
type MilestoneFile struct {
	TargetMonth string          `yaml:"target_month" toml:"target_month"`
	Amount      decimal.Decimal `yaml:"amount" toml:"amount"`
	Reason      string          `yaml:"reason" toml:"reason"`
}

// LedgerLoader parses and validates ledger snapshot files.
type LedgerLoader struct{}

// NewLedgerLoader creates a new loader.
func NewLedgerLoader() *LedgerLoader {
	return &LedgerLoader{}
}

// LoadFromFile loads a ledger snapshot from a YAML (.yaml/.yml) or TOML
// (.toml) file. The returned warnings list the fields that were dropped.
func (l *LedgerLoader) LoadFromFile(path string) (*domain.Ledger, []DataIntegrityWarning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read ledger file %s: %w", path, err)
	}

	var file LedgerFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, nil, fmt.Errorf("failed to parse YAML ledger: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, nil, fmt.Errorf("failed to parse TOML ledger: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported ledger file extension %q (want .yaml, .yml or .toml)", ext)
	}

	return l.Convert(&file)
}

// Convert turns the on-disk shape into the strongly typed domain ledger,
// collecting data-integrity warnings along the way.
func (l *LedgerLoader) Convert(file *LedgerFile) (*domain.Ledger, []DataIntegrityWarning, error) {
	if file.OwnerAge < 0 {
		return nil, nil, fmt.Errorf("owner_age must not be negative, got %d", file.OwnerAge)
	}

	ledger := &domain.Ledger{
		OwnerID:          file.Owner,
		OwnerAge:         file.OwnerAge,
		StartingHoldings: file.StartingHoldings,
	}

	var warnings []DataIntegrityWarning
	for i := range file.Incomes {
		item, ws := l.convertItem(&file.Incomes[i], domain.ItemIncome, file.Owner)
		warnings = append(warnings, ws...)
		if item != nil {
			ledger.Incomes = append(ledger.Incomes, *item)
		}
	}
	for i := range file.Expenses {
		item, ws := l.convertItem(&file.Expenses[i], domain.ItemExpense, file.Owner)
		warnings = append(warnings, ws...)
		if item != nil {
			ledger.Expenses = append(ledger.Expenses, *item)
		}
	}

	return ledger, warnings, nil
}

func (l *LedgerLoader) convertItem(file *ItemFile, kind domain.ItemKind, owner string) (*domain.RecurringItem, []DataIntegrityWarning) {
	id := file.ID
	if id == "" {
		id = uuid.NewString()
	}

	var warnings []DataIntegrityWarning
	warn := func(field, detail string) {
		warnings = append(warnings, DataIntegrityWarning{ItemID: id, Field: field, Detail: detail})
	}

	if file.Amount.LessThanOrEqual(decimal.Zero) {
		warn("amount", fmt.Sprintf("must be positive, got %s; record skipped", file.Amount))
		return nil, warnings
	}
	freq := domain.Frequency(file.Frequency)
	if !freq.Valid() {
		warn("frequency", fmt.Sprintf("unknown frequency %q; record skipped", file.Frequency))
		return nil, warnings
	}
	if file.StartDate.IsZero() {
		warn("start_date", "missing start date; record skipped")
		return nil, warnings
	}

	item := &domain.RecurringItem{
		ID:                    id,
		OwnerID:               owner,
		Name:                  file.Name,
		Kind:                  kind,
		GrossAmount:           file.Amount,
		Frequency:             freq,
		StartDate:             file.StartDate,
		EndDate:               file.EndDate,
		SubjectToContribution: kind == domain.ItemIncome && file.SubjectToContribution,
		HonorFutureMilestones: file.HonorFutureMilestones,
		Contribution:          file.Contribution,
	}

	if freq == domain.FreqCustom {
		for _, cm := range file.CustomMonths {
			if cm < 1 || cm > 12 {
				warn("custom_months", fmt.Sprintf("month index %d out of range 1-12; entry dropped", cm))
				continue
			}
			item.CustomMonths = append(item.CustomMonths, cm)
		}
		if len(item.CustomMonths) == 0 {
			warn("custom_months", "custom frequency with no valid months; item will contribute nothing")
		}
	} else if len(file.CustomMonths) > 0 {
		warn("custom_months", fmt.Sprintf("only valid with custom frequency, not %q; ignored", freq))
	}

	for _, ov := range file.HistoricalOverrides {
		converted, detail := convertOverride(ov)
		if detail != "" {
			warn("historical_overrides", detail)
			continue
		}
		item.HistoricalOverrides = append(item.HistoricalOverrides, converted)
	}

	for _, ms := range file.FutureMilestones {
		converted, detail := convertMilestone(ms)
		if detail != "" {
			warn("future_milestones", detail)
			continue
		}
		item.FutureMilestones = append(item.FutureMilestones, converted)
	}

	return item, warnings
}

func convertOverride(file OverrideFile) (domain.HistoricalOverride, string) {
	gran := domain.Granularity(file.Granularity)
	switch gran {
	case domain.GranMonthly:
		if _, err := monthutil.Parse(file.Period); err != nil {
			return domain.HistoricalOverride{}, fmt.Sprintf("monthly override period %q is not YYYY-MM; override dropped", file.Period)
		}
	case domain.GranYearly:
		if year, err := strconv.Atoi(file.Period); err != nil || year < 1900 || year > 9999 {
			return domain.HistoricalOverride{}, fmt.Sprintf("yearly override period %q is not a year; override dropped", file.Period)
		}
	default:
		return domain.HistoricalOverride{}, fmt.Sprintf("unknown override granularity %q; override dropped", file.Granularity)
	}
	if file.Amount.LessThan(decimal.Zero) {
		return domain.HistoricalOverride{}, fmt.Sprintf("override amount %s is negative; override dropped", file.Amount)
	}
	return domain.HistoricalOverride{Period: file.Period, Granularity: gran, Amount: file.Amount}, ""
}

func convertMilestone(file MilestoneFile) (domain.FutureMilestone, string) {
	target, err := monthutil.Parse(file.TargetMonth)
	if err != nil {
		return domain.FutureMilestone{}, fmt.Sprintf("milestone target month %q is not YYYY-MM; milestone dropped", file.TargetMonth)
	}
	if file.Amount.LessThan(decimal.Zero) {
		return domain.FutureMilestone{}, fmt.Sprintf("milestone amount %s is negative; milestone dropped", file.Amount)
	}
	return domain.FutureMilestone{TargetMonth: target, Amount: file.Amount, Reason: file.Reason}, ""
}

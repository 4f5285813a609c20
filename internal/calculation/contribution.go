package calculation

import (
	"github.com/jwtan/plancast/internal/domain"
	"github.com/shopspring/decimal"
)

// CONTRIBUTION POLICY ASSUMPTIONS:
//
// 1. Rates follow the 2025 statutory schedule: age-banded employee and
//    employer percentages applied to gross monthly income.
// 2. Sub-account allocation fractions apply to the combined (employee +
//    employer) contribution and sum to 1 within each bracket; the MediSave
//    share absorbs the rounding remainder so the split is always exact.
// 3. No wage ceiling is modeled. Additional-wage and ceiling handling are
//    treated as repository concerns upstream of this snapshot.

// ContributionBracket is one age band of the statutory policy table.
// AgeCeiling is inclusive; the final bracket's ceiling catches all ages.
type ContributionBracket struct {
	AgeCeiling   int
	EmployeeRate decimal.Decimal
	EmployerRate decimal.Decimal
	// Allocation fractions of the combined contribution.
	Ordinary decimal.Decimal
	Special  decimal.Decimal
	MediSave decimal.Decimal
}

// ContributionPolicy is a versioned statutory rate table. Rate-schedule
// changes mean swapping the table, not touching engine logic.
type ContributionPolicy struct {
	Version  string
	Brackets []ContributionBracket // ascending by AgeCeiling
}

// DefaultContributionPolicy returns the 2025 rate table.
func DefaultContributionPolicy() ContributionPolicy {
	return ContributionPolicy{
		Version: "2025.1",
		Brackets: []ContributionBracket{
			{
				AgeCeiling:   55,
				EmployeeRate: decimal.NewFromFloat(0.20),
				EmployerRate: decimal.NewFromFloat(0.17),
				Ordinary:     decimal.NewFromFloat(0.6217),
				Special:      decimal.NewFromFloat(0.1621),
				MediSave:     decimal.NewFromFloat(0.2162),
			},
			{
				AgeCeiling:   60,
				EmployeeRate: decimal.NewFromFloat(0.17),
				EmployerRate: decimal.NewFromFloat(0.155),
				Ordinary:     decimal.NewFromFloat(0.4683),
				Special:      decimal.NewFromFloat(0.2307),
				MediSave:     decimal.NewFromFloat(0.3010),
			},
			{
				AgeCeiling:   65,
				EmployeeRate: decimal.NewFromFloat(0.115),
				EmployerRate: decimal.NewFromFloat(0.12),
				Ordinary:     decimal.NewFromFloat(0.1749),
				Special:      decimal.NewFromFloat(0.3844),
				MediSave:     decimal.NewFromFloat(0.4407),
			},
			{
				AgeCeiling:   70,
				EmployeeRate: decimal.NewFromFloat(0.075),
				EmployerRate: decimal.NewFromFloat(0.09),
				Ordinary:     decimal.NewFromFloat(0.0607),
				Special:      decimal.NewFromFloat(0.3032),
				MediSave:     decimal.NewFromFloat(0.6361),
			},
			{
				AgeCeiling:   999,
				EmployeeRate: decimal.NewFromFloat(0.05),
				EmployerRate: decimal.NewFromFloat(0.075),
				Ordinary:     decimal.NewFromFloat(0.08),
				Special:      decimal.NewFromFloat(0.08),
				MediSave:     decimal.NewFromFloat(0.84),
			},
		},
	}
}

// BracketFor returns the bracket covering the given age.
func (p ContributionPolicy) BracketFor(age int) ContributionBracket {
	for _, b := range p.Brackets {
		if age <= b.AgeCeiling {
			return b
		}
	}
	return p.Brackets[len(p.Brackets)-1]
}

// ContributionCalculator converts gross income into the statutory
// employee/employer split, the three sub-account shares, and net take-home.
// It is deterministic and has no side effects.
type ContributionCalculator struct {
	Policy ContributionPolicy
}

// NewContributionCalculator creates a calculator with the default policy.
func NewContributionCalculator() *ContributionCalculator {
	return &ContributionCalculator{Policy: DefaultContributionPolicy()}
}

// NewContributionCalculatorWithPolicy creates a calculator with an injected
// policy table.
func NewContributionCalculatorWithPolicy(policy ContributionPolicy) *ContributionCalculator {
	return &ContributionCalculator{Policy: policy}
}

// Compute applies the policy table to a gross monthly income for the given
// age bracket.
func (c *ContributionCalculator) Compute(grossMonthly decimal.Decimal, ageBracket int) domain.ContributionBreakdown {
	if grossMonthly.LessThanOrEqual(decimal.Zero) {
		return domain.ContributionBreakdown{
			GrossMonthly:  grossMonthly,
			PolicyVersion: c.Policy.Version,
		}
	}

	bracket := c.Policy.BracketFor(ageBracket)
	employee := grossMonthly.Mul(bracket.EmployeeRate)
	employer := grossMonthly.Mul(bracket.EmployerRate)
	total := employee.Add(employer)

	ordinary := total.Mul(bracket.Ordinary)
	special := total.Mul(bracket.Special)
	// MediSave takes the remainder so the three shares always sum to the
	// combined contribution exactly.
	medisave := total.Sub(ordinary).Sub(special)

	return domain.ContributionBreakdown{
		GrossMonthly:  grossMonthly,
		EmployeeShare: employee,
		EmployerShare: employer,
		NetTakeHome:   grossMonthly.Sub(employee),
		SubAccounts: domain.SubAccountShares{
			Ordinary: ordinary,
			Special:  special,
			MediSave: medisave,
		},
		PolicyVersion: c.Policy.Version,
	}
}

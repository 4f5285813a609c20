package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContributionPolicy(t *testing.T) {
	policy := DefaultContributionPolicy()

	assert.NotEmpty(t, policy.Version)
	require.NotEmpty(t, policy.Brackets)

	// Brackets must ascend by age ceiling and each allocation must sum to 1.
	prevCeiling := 0
	one := decimal.NewFromInt(1)
	for _, b := range policy.Brackets {
		assert.Greater(t, b.AgeCeiling, prevCeiling, "brackets should ascend")
		prevCeiling = b.AgeCeiling

		allocSum := b.Ordinary.Add(b.Special).Add(b.MediSave)
		assert.True(t, allocSum.Equal(one), "allocation fractions should sum to 1, got %s", allocSum)
	}
}

func TestBracketFor(t *testing.T) {
	policy := DefaultContributionPolicy()

	tests := []struct {
		age         int
		wantCeiling int
	}{
		{25, 55},
		{55, 55}, // ceiling is inclusive
		{56, 60},
		{60, 60},
		{61, 65},
		{66, 70},
		{71, 999},
		{95, 999},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.wantCeiling, policy.BracketFor(tt.age).AgeCeiling, "age %d", tt.age)
	}
}

func TestComputeYoungWorker(t *testing.T) {
	calc := NewContributionCalculator()
	gross := decimal.NewFromInt(5000)

	breakdown := calc.Compute(gross, 30)

	assert.True(t, breakdown.EmployeeShare.Equal(decimal.NewFromInt(1000)), "employee share 20%%, got %s", breakdown.EmployeeShare)
	assert.True(t, breakdown.EmployerShare.Equal(decimal.NewFromInt(850)), "employer share 17%%, got %s", breakdown.EmployerShare)
	assert.True(t, breakdown.NetTakeHome.Equal(decimal.NewFromInt(4000)), "net take-home, got %s", breakdown.NetTakeHome)
	assert.Equal(t, "2025.1", breakdown.PolicyVersion)

	// Sub-account shares split the combined contribution exactly.
	total := breakdown.EmployeeShare.Add(breakdown.EmployerShare)
	assert.True(t, breakdown.SubAccounts.Total().Equal(total),
		"sub-accounts should sum to total contribution: %s vs %s", breakdown.SubAccounts.Total(), total)
}

func TestComputeOlderBrackets(t *testing.T) {
	calc := NewContributionCalculator()
	gross := decimal.NewFromInt(4000)

	tests := []struct {
		age          int
		wantEmployee string
		wantNet      string
	}{
		{55, "800", "3200"},
		{58, "680", "3320"},
		{63, "460", "3540"},
		{68, "300", "3700"},
		{75, "200", "3800"},
	}

	for _, tt := range tests {
		breakdown := calc.Compute(gross, tt.age)
		assert.True(t, breakdown.EmployeeShare.Equal(decimal.RequireFromString(tt.wantEmployee)),
			"age %d employee share, got %s", tt.age, breakdown.EmployeeShare)
		assert.True(t, breakdown.NetTakeHome.Equal(decimal.RequireFromString(tt.wantNet)),
			"age %d net take-home, got %s", tt.age, breakdown.NetTakeHome)
	}
}

func TestComputeZeroAndNegativeGross(t *testing.T) {
	calc := NewContributionCalculator()

	for _, gross := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		breakdown := calc.Compute(gross, 40)
		assert.True(t, breakdown.EmployeeShare.IsZero())
		assert.True(t, breakdown.EmployerShare.IsZero())
		assert.True(t, breakdown.NetTakeHome.IsZero())
		assert.True(t, breakdown.SubAccounts.Total().IsZero())
	}
}

func TestComputeInjectedPolicy(t *testing.T) {
	policy := ContributionPolicy{
		Version: "test.1",
		Brackets: []ContributionBracket{
			{
				AgeCeiling:   999,
				EmployeeRate: decimal.NewFromFloat(0.10),
				EmployerRate: decimal.NewFromFloat(0.10),
				Ordinary:     decimal.NewFromInt(1),
				Special:      decimal.Zero,
				MediSave:     decimal.Zero,
			},
		},
	}
	calc := NewContributionCalculatorWithPolicy(policy)

	breakdown := calc.Compute(decimal.NewFromInt(1000), 50)

	assert.True(t, breakdown.EmployeeShare.Equal(decimal.NewFromInt(100)))
	assert.True(t, breakdown.NetTakeHome.Equal(decimal.NewFromInt(900)))
	assert.True(t, breakdown.SubAccounts.Ordinary.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "test.1", breakdown.PolicyVersion)
}

func TestComputeDeterminism(t *testing.T) {
	calc := NewContributionCalculator()
	gross := decimal.NewFromFloat(5432.10)

	first := calc.Compute(gross, 45)
	second := calc.Compute(gross, 45)

	assert.Equal(t, first, second, "identical inputs must yield identical breakdowns")
}

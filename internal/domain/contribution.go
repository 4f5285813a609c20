package domain

import "github.com/shopspring/decimal"

// SubAccountShares is the allocation of a month's total statutory
// contribution across the three sub-accounts.
type SubAccountShares struct {
	Ordinary decimal.Decimal `yaml:"ordinary" json:"ordinary"`
	Special  decimal.Decimal `yaml:"special" json:"special"`
	MediSave decimal.Decimal `yaml:"medisave" json:"medisave"`
}

// Total returns the sum of the three sub-account shares.
func (s SubAccountShares) Total() decimal.Decimal {
	return s.Ordinary.Add(s.Special).Add(s.MediSave)
}

// ContributionBreakdown is the result of applying the statutory contribution
// policy to a gross monthly income: the employee/employer split, the
// sub-account allocation of the combined contribution, and the net take-home
// amount after the employee share is deducted.
type ContributionBreakdown struct {
	GrossMonthly  decimal.Decimal  `yaml:"gross_monthly" json:"grossMonthly"`
	EmployeeShare decimal.Decimal  `yaml:"employee_share" json:"employeeShare"`
	EmployerShare decimal.Decimal  `yaml:"employer_share" json:"employerShare"`
	NetTakeHome   decimal.Decimal  `yaml:"net_take_home" json:"netTakeHome"`
	SubAccounts   SubAccountShares `yaml:"sub_accounts" json:"subAccountShares"`
	PolicyVersion string           `yaml:"policy_version,omitempty" json:"policyVersion,omitempty"`
}

package output

import "github.com/shopspring/decimal"

// FormatCurrency formats a decimal as currency.
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatMonths formats an emergency-fund figure as a month count.
func FormatMonths(months decimal.Decimal) string {
	return months.StringFixed(1) + " months"
}

package salarycalc

import "github.com/shopspring/decimal"

var (
	pfRate  = decimal.RequireFromString("0.12")
	hraRate = decimal.RequireFromString("0.4")
	daRate  = decimal.RequireFromString("0.2")
)

type Totals struct {
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}

// CalculateTotals sums earnings and deductions without rounding. Net may be
// negative.
func CalculateTotals(f Form) Totals {
	gross := f.Earnings.Sum()
	deductions := f.Deductions.Sum()
	return Totals{
		GrossSalary:     gross,
		TotalDeductions: deductions,
		NetSalary:       gross.Sub(deductions),
	}
}

// ApplyBasicSalary sets basic salary and re-derives PF unconditionally.
// HRA and DA are derived only while their current value is zero.
//
// A manually entered zero still counts as zero, so it is overwritten on the
// next basic salary change just like an unset field. The source flags keep
// the distinction visible without changing that behaviour.
func (f Form) ApplyBasicSalary(basic decimal.Decimal) Form {
	f.BasicSalary = basic
	f.PFDeduction = percentOf(basic, pfRate)

	if f.HRA.IsZero() {
		f.HRA = percentOf(basic, hraRate)
		f.HRASource = SourceAuto
	}
	if f.DA.IsZero() {
		f.DA = percentOf(basic, daRate)
		f.DASource = SourceAuto
	}
	return f
}

// SetHRA records a user-entered HRA.
func (f Form) SetHRA(v decimal.Decimal) Form {
	f.HRA = v
	f.HRASource = SourceManual
	return f
}

// SetDA records a user-entered DA.
func (f Form) SetDA(v decimal.Decimal) Form {
	f.DA = v
	f.DASource = SourceManual
	return f
}

// percentOf rounds to whole units, half away from zero, which matches
// half-up for the non-negative salaries this is used with.
func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(0)
}

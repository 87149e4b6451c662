// Package salarycalc holds the salary structure form and the arithmetic
// around it: validation, totals and the allowances derived from basic
// salary. Amounts are exact decimals; only derived allowances are rounded.
package salarycalc

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

var DefaultProfessionalTax = decimal.NewFromInt(200)

type Earnings struct {
	BasicSalary         decimal.Decimal `json:"basic_salary"`
	HRA                 decimal.Decimal `json:"hra"`
	DA                  decimal.Decimal `json:"da"`
	ConveyanceAllowance decimal.Decimal `json:"conveyance_allowance"`
	MedicalAllowance    decimal.Decimal `json:"medical_allowance"`
	SpecialAllowance    decimal.Decimal `json:"special_allowance"`
	OtherAllowances     decimal.Decimal `json:"other_allowances"`
}

func (e Earnings) Sum() decimal.Decimal {
	return decimal.Sum(e.BasicSalary, e.HRA, e.DA, e.ConveyanceAllowance,
		e.MedicalAllowance, e.SpecialAllowance, e.OtherAllowances)
}

type Deductions struct {
	PFDeduction     decimal.Decimal `json:"pf_deduction"`
	ESIDeduction    decimal.Decimal `json:"esi_deduction"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	TDS             decimal.Decimal `json:"tds"`
	LoanDeduction   decimal.Decimal `json:"loan_deduction"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
}

func (d Deductions) Sum() decimal.Decimal {
	return decimal.Sum(d.PFDeduction, d.ESIDeduction, d.ProfessionalTax,
		d.TDS, d.LoanDeduction, d.OtherDeductions)
}

// FieldSource records where an auto-derivable field's value came from.
type FieldSource int

const (
	SourceUnset FieldSource = iota
	SourceAuto
	SourceManual
)

func (s FieldSource) String() string {
	switch s {
	case SourceAuto:
		return "auto"
	case SourceManual:
		return "manual"
	default:
		return "unset"
	}
}

type Form struct {
	EmployeeID    string `json:"employee_id"`
	EffectiveFrom string `json:"effective_from"`
	Earnings
	Deductions
	Remarks string `json:"remarks,omitempty"`

	HRASource FieldSource `json:"-"`
	DASource  FieldSource `json:"-"`
}

// NewForm returns an empty form with professional tax at its default.
func NewForm() Form {
	return Form{
		Deductions: Deductions{ProfessionalTax: DefaultProfessionalTax},
	}
}

// EffectiveDate parses EffectiveFrom.
func (f Form) EffectiveDate() (time.Time, error) {
	return time.Parse(DateLayout, f.EffectiveFrom)
}

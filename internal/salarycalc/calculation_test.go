package salarycalc_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/prasadp25/protecther-hrms-sub001/internal/salarycalc"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, amt(want).Equal(got), "want %s, got %s", want, got)
}

func TestCalculateTotals(t *testing.T) {
	f := salarycalc.Form{
		Earnings: salarycalc.Earnings{
			BasicSalary:         amt("10000"),
			HRA:                 amt("4000"),
			DA:                  amt("2000"),
			ConveyanceAllowance: amt("1600"),
			MedicalAllowance:    amt("1250"),
			SpecialAllowance:    amt("333"),
			OtherAllowances:     amt("17"),
		},
		Deductions: salarycalc.Deductions{
			PFDeduction:     amt("1200"),
			ESIDeduction:    amt("75"),
			ProfessionalTax: amt("200"),
			TDS:             amt("500"),
			LoanDeduction:   amt("1000"),
			OtherDeductions: amt("25"),
		},
	}

	totals := salarycalc.CalculateTotals(f)

	assertAmount(t, "19200", totals.GrossSalary)
	assertAmount(t, "3000", totals.TotalDeductions)
	assertAmount(t, "16200", totals.NetSalary)
}

func TestCalculateTotals_FractionsAreExact(t *testing.T) {
	f := salarycalc.Form{
		Earnings: salarycalc.Earnings{
			BasicSalary:         amt("10000.10"),
			ConveyanceAllowance: amt("1600.50"),
			OtherAllowances:     amt("0.20"),
		},
		Deductions: salarycalc.Deductions{
			ESIDeduction: amt("75.35"),
			TDS:          amt("0.10"),
		},
	}

	totals := salarycalc.CalculateTotals(f)

	assertAmount(t, "11600.80", totals.GrossSalary)
	assertAmount(t, "75.45", totals.TotalDeductions)
	assertAmount(t, "11525.35", totals.NetSalary)
}

func TestCalculateTotals_NegativeNet(t *testing.T) {
	f := salarycalc.Form{
		Earnings:   salarycalc.Earnings{BasicSalary: amt("1000")},
		Deductions: salarycalc.Deductions{LoanDeduction: amt("5000")},
	}

	totals := salarycalc.CalculateTotals(f)

	assertAmount(t, "-4000", totals.NetSalary)
}

func TestApplyBasicSalary(t *testing.T) {
	t.Run("derives pf hra da from zero", func(t *testing.T) {
		f := salarycalc.NewForm().ApplyBasicSalary(amt("10000"))

		assertAmount(t, "1200", f.PFDeduction)
		assertAmount(t, "4000", f.HRA)
		assertAmount(t, "2000", f.DA)
		assert.Equal(t, salarycalc.SourceAuto, f.HRASource)
		assert.Equal(t, salarycalc.SourceAuto, f.DASource)
	})

	t.Run("manual hra is kept", func(t *testing.T) {
		f := salarycalc.NewForm().SetHRA(amt("5000")).ApplyBasicSalary(amt("10000"))

		assertAmount(t, "5000", f.HRA)
		assert.Equal(t, salarycalc.SourceManual, f.HRASource)
		assertAmount(t, "1200", f.PFDeduction)
		assertAmount(t, "2000", f.DA)
	})

	t.Run("derived values are not re-derived", func(t *testing.T) {
		f := salarycalc.NewForm().ApplyBasicSalary(amt("10000")).ApplyBasicSalary(amt("20000"))

		assertAmount(t, "2400", f.PFDeduction)
		assertAmount(t, "4000", f.HRA)
		assertAmount(t, "2000", f.DA)
	})

	t.Run("manual zero is re-derived", func(t *testing.T) {
		f := salarycalc.NewForm().ApplyBasicSalary(amt("10000")).SetDA(decimal.Zero).ApplyBasicSalary(amt("15000"))

		assertAmount(t, "3000", f.DA)
		assert.Equal(t, salarycalc.SourceAuto, f.DASource)
	})

	t.Run("pf always recomputed", func(t *testing.T) {
		f := salarycalc.NewForm()
		f.PFDeduction = amt("999")

		f = f.ApplyBasicSalary(amt("12345"))

		assertAmount(t, "1481", f.PFDeduction) // 1481.4
	})

	t.Run("rounds half up to whole units", func(t *testing.T) {
		f := salarycalc.NewForm().ApplyBasicSalary(amt("12375"))

		assertAmount(t, "1485", f.PFDeduction) // 1485.0
		assertAmount(t, "4950", f.HRA)
		assertAmount(t, "2475", f.DA)

		f = salarycalc.NewForm().ApplyBasicSalary(amt("1"))
		assertAmount(t, "0", f.PFDeduction) // 0.12
		assertAmount(t, "0", f.HRA)         // 0.4
		assertAmount(t, "0", f.DA)          // 0.2

		f = salarycalc.NewForm().ApplyBasicSalary(amt("5"))
		assertAmount(t, "1", f.PFDeduction) // 0.6
		assertAmount(t, "2", f.HRA)         // 2.0
		assertAmount(t, "1", f.DA)          // 1.0

		f = salarycalc.NewForm().ApplyBasicSalary(amt("10000.50"))
		assertAmount(t, "10000.50", f.BasicSalary)
		assertAmount(t, "1200", f.PFDeduction) // 1200.06
		assertAmount(t, "4000", f.HRA)         // 4000.2
		assertAmount(t, "2000", f.DA)          // 2000.1
	})

	t.Run("professional tax untouched", func(t *testing.T) {
		f := salarycalc.NewForm().ApplyBasicSalary(amt("50000"))

		assertAmount(t, "200", f.ProfessionalTax)
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f := salarycalc.NewForm().ApplyBasicSalary(amt("10000"))
		f.EmployeeID = "b5b0e1e0-0000-4000-8000-000000000001"
		f.EffectiveFrom = "2026-04-01"

		assert.NoError(t, salarycalc.Validate(f))
	})

	t.Run("missing employee and zero basic", func(t *testing.T) {
		f := salarycalc.NewForm()
		f.EffectiveFrom = "2026-04-01"

		err := salarycalc.Validate(f)

		var vErr *salarycalc.ValidationError
		assert.True(t, errors.As(err, &vErr))
		assert.Len(t, vErr.Fields, 2)
		assert.Equal(t, "employee_id", vErr.Fields[0].Field)
		assert.Equal(t, "basic_salary", vErr.Fields[1].Field)
		assert.NotContains(t, vErr.ByField(), "effective_from")
	})

	t.Run("everything missing", func(t *testing.T) {
		f := salarycalc.NewForm()
		f.BasicSalary = amt("-10")

		err := salarycalc.Validate(f)

		var vErr *salarycalc.ValidationError
		assert.True(t, errors.As(err, &vErr))
		assert.Equal(t, []string{"employee_id", "effective_from", "basic_salary"},
			[]string{vErr.Fields[0].Field, vErr.Fields[1].Field, vErr.Fields[2].Field})
	})

	t.Run("malformed date", func(t *testing.T) {
		f := salarycalc.NewForm().ApplyBasicSalary(amt("100"))
		f.EmployeeID = "x"
		f.EffectiveFrom = "01/04/2026"

		err := salarycalc.Validate(f)

		var vErr *salarycalc.ValidationError
		assert.True(t, errors.As(err, &vErr))
		assert.Contains(t, vErr.ByField(), "effective_from")
	})
}

func TestForm_JSON(t *testing.T) {
	t.Run("flattens with exact amounts", func(t *testing.T) {
		f := salarycalc.NewForm().ApplyBasicSalary(amt("10000"))
		f.EmployeeID = "e1"

		raw, err := json.Marshal(f)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(raw, &m))
		assert.Equal(t, "10000", m["basic_salary"])
		assert.Equal(t, "200", m["professional_tax"])
		assert.NotContains(t, m, "HRASource")
	})

	t.Run("accepts fractional numbers", func(t *testing.T) {
		var f salarycalc.Form
		require.NoError(t, json.Unmarshal([]byte(`{"basic_salary":10000,"conveyance_allowance":1600.50,"tds":"12.25"}`), &f))

		assertAmount(t, "1600.50", f.ConveyanceAllowance)
		assertAmount(t, "12.25", f.TDS)
		assertAmount(t, "11600.50", salarycalc.CalculateTotals(f).GrossSalary)
	})
}

// Package salaryeditor is the client-side salary structure form: it keeps
// the derived allowances in step with basic salary, validates locally and
// submits through the salary data service.
package salaryeditor

import (
	"context"
	"errors"
	"fmt"

	"github.com/prasadp25/protecther-hrms-sub001/internal/client"
	"github.com/prasadp25/protecther-hrms-sub001/internal/salarycalc"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrUnknownField = errors.New("unknown salary field")

type SalaryDataService interface {
	GetByID(ctx context.Context, id string) (client.SalaryStructure, error)
	Create(ctx context.Context, form salarycalc.Form) (client.SalaryStructure, error)
	Update(ctx context.Context, id string, form salarycalc.Form) (client.SalaryStructure, error)
}

type Editor struct {
	salaries SalaryDataService
	logger   *zap.Logger

	id   string
	form salarycalc.Form
}

func New(salaries SalaryDataService, logger ...*zap.Logger) *Editor {
	l := zap.L().Named("salaryeditor.editor")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryeditor.editor")
	}
	return &Editor{salaries: salaries, logger: l, form: salarycalc.NewForm()}
}

// Load replaces the form with a stored structure; Submit will then update
// it instead of creating a new one.
func (e *Editor) Load(ctx context.Context, id string) error {
	s, err := e.salaries.GetByID(ctx, id)
	if err != nil {
		return err
	}
	e.id = s.ID
	e.form = s.Form()
	e.form.HRASource = salarycalc.SourceManual
	e.form.DASource = salarycalc.SourceManual
	return nil
}

// ID is the structure being edited, empty for a new one.
func (e *Editor) ID() string {
	return e.id
}

func (e *Editor) Form() salarycalc.Form {
	return e.form
}

func (e *Editor) SetEmployee(id string) {
	e.form.EmployeeID = id
}

func (e *Editor) SetEffectiveFrom(date string) {
	e.form.EffectiveFrom = date
}

func (e *Editor) SetRemarks(remarks string) {
	e.form.Remarks = remarks
}

func (e *Editor) SetBasicSalary(v decimal.Decimal) {
	e.form = e.form.ApplyBasicSalary(v)
}

// SetField sets one amount by its wire name. basic_salary goes through the
// derivation rules; hra and da are recorded as manually entered.
func (e *Editor) SetField(name string, v decimal.Decimal) error {
	f := &e.form
	switch name {
	case "basic_salary":
		e.SetBasicSalary(v)
	case "hra":
		e.form = e.form.SetHRA(v)
	case "da":
		e.form = e.form.SetDA(v)
	case "conveyance_allowance":
		f.ConveyanceAllowance = v
	case "medical_allowance":
		f.MedicalAllowance = v
	case "special_allowance":
		f.SpecialAllowance = v
	case "other_allowances":
		f.OtherAllowances = v
	case "pf_deduction":
		f.PFDeduction = v
	case "esi_deduction":
		f.ESIDeduction = v
	case "professional_tax":
		f.ProfessionalTax = v
	case "tds":
		f.TDS = v
	case "loan_deduction":
		f.LoanDeduction = v
	case "other_deductions":
		f.OtherDeductions = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return nil
}

func (e *Editor) Totals() salarycalc.Totals {
	return salarycalc.CalculateTotals(e.form)
}

// Submit validates the form and saves it. A *salarycalc.ValidationError
// means nothing was sent.
func (e *Editor) Submit(ctx context.Context) (client.SalaryStructure, error) {
	if err := salarycalc.Validate(e.form); err != nil {
		return client.SalaryStructure{}, err
	}

	var (
		saved client.SalaryStructure
		err   error
	)
	if e.id == "" {
		saved, err = e.salaries.Create(ctx, e.form)
	} else {
		saved, err = e.salaries.Update(ctx, e.id, e.form)
	}
	if err != nil {
		e.logger.Warn("save salary structure failed", zap.String("salary_structure_id", e.id), zap.Error(err))
		return client.SalaryStructure{}, err
	}

	e.id = saved.ID
	return saved, nil
}

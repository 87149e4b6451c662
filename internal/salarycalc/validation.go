package salarycalc

import (
	"strings"
	"time"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every failing field of a form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ByField indexes the errors by field name for inline display.
func (e *ValidationError) ByField() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}

// Validate returns nil or a *ValidationError naming, in order, a missing
// employee, a missing or malformed effective date and a non-positive basic
// salary.
func Validate(f Form) error {
	var errs []FieldError

	if strings.TrimSpace(f.EmployeeID) == "" {
		errs = append(errs, FieldError{Field: "employee_id", Message: "Employee is required"})
	}

	if strings.TrimSpace(f.EffectiveFrom) == "" {
		errs = append(errs, FieldError{Field: "effective_from", Message: "Effective date is required"})
	} else if _, err := time.Parse(DateLayout, f.EffectiveFrom); err != nil {
		errs = append(errs, FieldError{Field: "effective_from", Message: "Effective date must be YYYY-MM-DD"})
	}

	if !f.BasicSalary.IsPositive() {
		errs = append(errs, FieldError{Field: "basic_salary", Message: "Basic salary must be greater than 0"})
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

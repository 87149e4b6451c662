package salarystructure

import "github.com/prasadp25/protecther-hrms-sub001/internal/salarycalc"

// SalaryStructureRequest is the salary form as posted by clients.
type SalaryStructureRequest = salarycalc.Form

type SalaryStructureResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EffectiveFrom string `json:"effective_from"`
	salarycalc.Earnings
	salarycalc.Deductions
	salarycalc.Totals
	Remarks   string `json:"remarks,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
}

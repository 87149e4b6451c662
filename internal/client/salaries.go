package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/prasadp25/protecther-hrms-sub001/internal/salarycalc"
)

// SalaryStructure is a stored salary form with its computed totals.
type SalaryStructure struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EffectiveFrom string `json:"effective_from"`
	salarycalc.Earnings
	salarycalc.Deductions
	salarycalc.Totals
	Remarks  string `json:"remarks"`
	IsActive bool   `json:"is_active"`
}

// Form converts the stored structure back into an editable form.
func (s SalaryStructure) Form() salarycalc.Form {
	return salarycalc.Form{
		EmployeeID:    s.EmployeeID,
		EffectiveFrom: s.EffectiveFrom,
		Earnings:      s.Earnings,
		Deductions:    s.Deductions,
		Remarks:       s.Remarks,
	}
}

type SalaryService struct {
	c *Client
}

func (s *SalaryService) GetByID(ctx context.Context, id string) (SalaryStructure, error) {
	var out SalaryStructure
	_, err := s.c.do(ctx, "get salary structure", http.MethodGet, "/salary-structures/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (s *SalaryService) Create(ctx context.Context, form salarycalc.Form) (SalaryStructure, error) {
	var out SalaryStructure
	_, err := s.c.do(ctx, "create salary structure", http.MethodPost, "/salary-structures", nil, form, &out)
	return out, err
}

func (s *SalaryService) Update(ctx context.Context, id string, form salarycalc.Form) (SalaryStructure, error) {
	var out SalaryStructure
	_, err := s.c.do(ctx, "update salary structure", http.MethodPut, "/salary-structures/"+url.PathEscape(id), nil, form, &out)
	return out, err
}

package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"
)

// Employee is one row of the employee list.
type Employee struct {
	ID              string `json:"id"`
	EmployeeCode    string `json:"employee_code"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Designation     string `json:"designation"`
	Department      string `json:"department"`
	DateOfJoining   string `json:"date_of_joining"`
	SiteID          string `json:"site_id"`
	OfferLetterPath string `json:"offer_letter_path"`
	AadhaarCardPath string `json:"aadhaar_card_path"`
	PANCardPath     string `json:"pan_card_path"`
	Status          string `json:"status"`
}

type EmployeeOption struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}

// EmployeePage is a list response: the records and their pagination.
type EmployeePage struct {
	Records    []Employee
	Pagination query.PaginationMeta
}

type EmployeeService struct {
	c *Client
}

// List fetches one page. params is the flat parameter set built by
// query.State.BuildQueryParams plus any extra filters.
func (s *EmployeeService) List(ctx context.Context, params map[string]string) (EmployeePage, error) {
	var records []Employee
	env, err := s.c.do(ctx, "list employees", http.MethodGet, "/employees", query.ToValues(params), nil, &records)
	if err != nil {
		return EmployeePage{}, err
	}

	page := EmployeePage{Records: records}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	if page.Records == nil {
		page.Records = []Employee{}
	}
	return page, nil
}

// Update sends a partial update; only the given fields change.
func (s *EmployeeService) Update(ctx context.Context, id string, fields map[string]any) (Result, error) {
	env, err := s.c.do(ctx, "update employee", http.MethodPatch, "/employees/"+url.PathEscape(id), nil, fields, nil)
	if err != nil {
		return Result{}, err
	}
	return Result{Success: env.Success, Message: env.Message}, nil
}

// SoftDelete marks the employee as resigned.
func (s *EmployeeService) SoftDelete(ctx context.Context, id string) (Result, error) {
	env, err := s.c.do(ctx, "delete employee", http.MethodDelete, "/employees/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		return Result{}, err
	}
	return Result{Success: env.Success, Message: env.Message}, nil
}

// Options lists active employees for pickers.
func (s *EmployeeService) Options(ctx context.Context) ([]EmployeeOption, error) {
	var opts []EmployeeOption
	if _, err := s.c.do(ctx, "employee options", http.MethodGet, "/employees/options", nil, nil, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

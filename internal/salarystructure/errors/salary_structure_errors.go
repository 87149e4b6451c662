package salarystructureerrors

import (
	"net/http"

	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/apperror"
)

var (
	ErrSalaryStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary structure not found",
		http.StatusNotFound,
	)
	ErrEffectiveDateAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Salary structure for this employee and effective date already exists",
		http.StatusConflict,
	)
	ErrInvalidSalaryStructureID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary structure ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrValidation = apperror.New(
		apperror.CodeValidation,
		"Salary structure validation failed",
		http.StatusBadRequest,
	)
)

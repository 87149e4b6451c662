package apperror

import "net/http"

// Generic failures shared by handlers and middleware.
var (
	ErrNotFound = New(
		CodeNotFound,
		"Route not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	// ErrInternal replaces any error that is not an AppError so internal
	// messages never reach clients.
	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Unauthorized",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
)

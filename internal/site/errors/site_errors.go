package siteerrors

import (
	"net/http"

	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/apperror"
)

var (
	ErrSiteCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Site code already exists",
		http.StatusConflict,
	)
)

package response

import (
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"

	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ApiEnvelope struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message,omitempty"`
	Data       any                   `json:"data,omitempty"`
	Pagination *query.PaginationMeta `json:"pagination,omitempty"`
	Error      *ErrorBody            `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *query.PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Success:    true,
		Data:       data,
		Pagination: meta,
	})
}

// Message answers mutations that only report an outcome.
func Message(c *gin.Context, status int, message string, data any) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Success: false,
		Message: message,
		Error: &ErrorBody{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/apperror"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by Authenticate.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Role   string
}

type TokenVerifier interface {
	VerifyAccessToken(token string) (Principal, error)
}

// Enforcer is the part of *casbin.Enforcer Authorize needs.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

// Authenticate requires a valid bearer access token and stores the caller
// in the gin context.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found", nil)
			c.Abort()
			return
		}

		p, err := verifier.VerifyAccessToken(token)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			if httpErr.Status != http.StatusUnauthorized {
				httpErr = apperror.HTTPError{Status: http.StatusUnauthorized, Code: apperror.CodeUnauthorized, Message: "Invalid token"}
			}
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		c.Set(ContextUserID, p.UserID)
		c.Set(ContextRole, p.Role)
		c.Next()
	}
}

// Authorize checks the caller's role against the matched route and method.
func Authorize(enforcer Enforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		obj := c.FullPath()
		if obj == "" {
			obj = c.Request.URL.Path
		}

		allowed, err := enforcer.Enforce(role, obj, c.Request.Method)
		if err != nil {
			abortWith(c, apperror.ErrInternal)
			return
		}
		if !allowed {
			abortWith(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

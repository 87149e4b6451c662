// Package rbac decides which role may call which API route.
package rbac

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin  = "ADMIN"
	RoleHR     = "HR"
	RoleViewer = "VIEWER"
)

var Roles = []string{RoleAdmin, RoleHR, RoleViewer}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

//go:embed model.conf
var modelConf string

// Objects are gin route patterns; actions are regexps over the HTTP method.
var policies = [][]string{
	{RoleViewer, "/api/v1/employees*", "^GET$"},
	{RoleViewer, "/api/v1/sites*", "^GET$"},
	{RoleViewer, "/api/v1/salary-structures*", "^GET$"},
	{RoleViewer, "/api/v1/auth/me", "^GET$"},
	{RoleHR, "/api/v1/employees*", "^(POST|PUT|PATCH|DELETE)$"},
	{RoleHR, "/api/v1/salary-structures*", "^(POST|PUT|DELETE)$"},
	{RoleAdmin, "/api/v1/*", ".*"},
}

// Each role inherits the one below it.
var groupings = [][]string{
	{RoleHR, RoleViewer},
	{RoleAdmin, RoleHR},
}

// NewEnforcer builds an in-memory enforcer holding the route policy.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("add policies: %w", err)
	}
	if _, err := e.AddGroupingPolicies(groupings); err != nil {
		return nil, fmt.Errorf("add role groupings: %w", err)
	}
	return e, nil
}

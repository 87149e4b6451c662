package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prasadp25/protecther-hrms-sub001/internal/salarycalc"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	deletes    atomic.Int32
	patches    atomic.Int32
	creates    atomic.Int32
	lastStatus atomic.Value
	lastAuth   atomic.Value
	lastSalary atomic.Value
}

func newFakeAPI(t *testing.T) (*fakeAPI, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &fakeAPI{}
	r := gin.New()
	v1 := r.Group("/api/v1")

	v1.POST("/auth/login", func(c *gin.Context) {
		var body map[string]string
		_ = c.ShouldBindJSON(&body)
		if body["password"] != "s3cret-pass" {
			response.Error(c, http.StatusUnauthorized, "AUTH_FAILED", "Invalid email or password", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{
			"access_token": "tok-1",
			"expires_in":   900,
			"user":         gin.H{"email": body["email"], "role": "HR"},
		}, nil)
	})
	v1.GET("/employees", func(c *gin.Context) {
		api.lastAuth.Store(c.GetHeader("Authorization"))
		api.lastStatus.Store(c.Query("status"))
		meta := query.NewPaginationMeta(1, 1, 10)
		response.Success(c, http.StatusOK, []gin.H{{
			"id":            "e1",
			"employee_code": "EMP-000001",
			"full_name":     "Asha Rao",
			"designation":   "Engineer",
			"site_id":       "s1",
			"status":        "ACTIVE",
		}}, &meta)
	})
	v1.GET("/employees/options", func(c *gin.Context) {
		response.Success(c, http.StatusOK, []gin.H{{"id": "e1", "employee_code": "EMP-000001", "full_name": "Asha Rao"}}, nil)
	})
	v1.GET("/sites", func(c *gin.Context) {
		response.Success(c, http.StatusOK, []gin.H{{"id": "s1", "name": "Pune Plant", "code": "PUN"}}, nil)
	})
	v1.DELETE("/employees/:id", func(c *gin.Context) {
		api.deletes.Add(1)
		response.Message(c, http.StatusOK, "Employee deleted successfully", nil)
	})
	v1.PATCH("/employees/:id", func(c *gin.Context) {
		api.patches.Add(1)
		response.Message(c, http.StatusOK, "Employee updated successfully", nil)
	})
	v1.POST("/salary-structures", func(c *gin.Context) {
		api.creates.Add(1)
		var form salarycalc.Form
		_ = c.ShouldBindJSON(&form)
		api.lastSalary.Store(form)
		response.Success(c, http.StatusCreated, gin.H{
			"id":          "sal-1",
			"employee_id": form.EmployeeID,
			"net_salary":  salarycalc.CalculateTotals(form).NetSalary,
		}, nil)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return api, srv.URL + "/api/v1"
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestEmployeesList(t *testing.T) {
	api, url := newFakeAPI(t)

	out, _, err := run(t, "", "--api-url", url, "employees", "list", "--status", "active")

	require.NoError(t, err)
	assert.Contains(t, out, "EMP-000001")
	assert.Contains(t, out, "Pune Plant (PUN)")
	assert.Contains(t, out, "Page 1 of 1 (1 employees)")
	assert.Equal(t, "ACTIVE", api.lastStatus.Load())
}

func TestEmployeesList_FetchFailureIsAnError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/employees", func(c *gin.Context) {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	})
	r.GET("/api/v1/sites", func(c *gin.Context) {
		response.Success(c, http.StatusOK, []gin.H{}, nil)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	out, errOut, err := run(t, "", "--api-url", srv.URL+"/api/v1", "employees", "list")

	assert.ErrorContains(t, err, "Internal server error")
	assert.Contains(t, errOut, "error: Internal server error")
	assert.NotContains(t, out, "No employees found")
}

func TestEmployeesList_InvalidStatus(t *testing.T) {
	_, url := newFakeAPI(t)

	_, _, err := run(t, "", "--api-url", url, "employees", "list", "--status", "RETIRED")

	assert.ErrorContains(t, err, "--status must be one of")
}

func TestEmployeesDelete(t *testing.T) {
	t.Run("declined at prompt", func(t *testing.T) {
		api, url := newFakeAPI(t)

		out, _, err := run(t, "n\n", "--api-url", url, "employees", "delete", "e1")

		require.NoError(t, err)
		assert.Contains(t, out, "Are you sure you want to delete this employee? [y/N]")
		assert.Contains(t, out, "Cancelled")
		assert.Zero(t, api.deletes.Load())
	})

	t.Run("confirmed with --yes", func(t *testing.T) {
		api, url := newFakeAPI(t)

		out, _, err := run(t, "", "--api-url", url, "--yes", "employees", "delete", "e1")

		require.NoError(t, err)
		assert.Contains(t, out, "Employee deleted successfully")
		assert.Equal(t, int32(1), api.deletes.Load())
	})
}

func TestEmployeesStatus(t *testing.T) {
	api, url := newFakeAPI(t)

	_, _, err := run(t, "y\n", "--api-url", url, "employees", "status", "e1", "TERMINATED")
	require.NoError(t, err)
	assert.Equal(t, int32(1), api.patches.Load())

	_, _, err = run(t, "y\n", "--api-url", url, "employees", "status", "e1", "ALL")
	assert.ErrorContains(t, err, "status must be one of")
	assert.Equal(t, int32(1), api.patches.Load())
}

func TestEmployeesDoc(t *testing.T) {
	out, _, err := run(t, "", "--upload-url", "https://files.example.com", "employees", "doc", "scan.pdf", "--type", "pan")

	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/uploads/pan-cards/scan.pdf\n", out)
}

func TestSalaryCreate(t *testing.T) {
	t.Run("invalid form sends nothing", func(t *testing.T) {
		api, url := newFakeAPI(t)

		_, errOut, err := run(t, "", "--api-url", url, "salary", "create", "--basic", "10000")

		assert.EqualError(t, err, "salary structure not saved")
		assert.Contains(t, errOut, "employee_id: Employee is required")
		assert.Contains(t, errOut, "effective_from: Effective date is required")
		assert.Zero(t, api.creates.Load())
	})

	t.Run("derived amounts are sent", func(t *testing.T) {
		api, url := newFakeAPI(t)

		out, _, err := run(t, "", "--api-url", url, "salary", "create",
			"--employee", "emp-1", "--effective-from", "2024-04-01", "--basic", "10000", "--set", "tds=100")

		require.NoError(t, err)
		assert.Equal(t, int32(1), api.creates.Load())
		assert.Contains(t, out, "Saved salary structure sal-1")
		assert.Regexp(t, `Net\s+14500`, out)
		assert.Equal(t, "emp-1", api.lastSalary.Load().(salarycalc.Form).EmployeeID)
	})

	t.Run("employee code resolves to id", func(t *testing.T) {
		api, url := newFakeAPI(t)

		_, errOut, err := run(t, "", "--api-url", url, "salary", "create",
			"--employee", "emp-000001", "--effective-from", "2024-04-01", "--basic", "10000")

		require.NoError(t, err)
		assert.Contains(t, errOut, "Employee EMP-000001: Asha Rao")
		assert.Equal(t, "e1", api.lastSalary.Load().(salarycalc.Form).EmployeeID)
	})

	t.Run("fractional amounts", func(t *testing.T) {
		api, url := newFakeAPI(t)

		out, _, err := run(t, "", "--api-url", url, "salary", "create",
			"--employee", "e1", "--effective-from", "2024-04-01", "--basic", "10000.50", "--set", "conveyance_allowance=1600.25")

		require.NoError(t, err)
		sent := api.lastSalary.Load().(salarycalc.Form)
		assert.Equal(t, "10000.5", sent.BasicSalary.String())
		assert.Equal(t, "1600.25", sent.ConveyanceAllowance.String())
		assert.Regexp(t, `Gross\s+17600\.75`, out)
	})

	t.Run("malformed amount", func(t *testing.T) {
		api, url := newFakeAPI(t)

		_, _, err := run(t, "", "--api-url", url, "salary", "create", "--basic", "ten")

		assert.EqualError(t, err, `basic: "ten" is not an amount`)
		assert.Zero(t, api.creates.Load())
	})
}

func TestLogin(t *testing.T) {
	_, url := newFakeAPI(t)

	out, errOut, err := run(t, "s3cret-pass\n", "--api-url", url, "login", "--email", "meera@example.com")
	require.NoError(t, err)
	assert.Equal(t, "tok-1\n", out)
	assert.Contains(t, errOut, "Logged in as meera@example.com (HR)")

	_, _, err = run(t, "guess\n", "--api-url", url, "login", "--email", "meera@example.com")
	assert.ErrorContains(t, err, "Invalid email or password")

	_, _, err = run(t, "", "--api-url", url, "login")
	assert.EqualError(t, err, "--email is required")
}

func TestTokenFlagIsSent(t *testing.T) {
	api, url := newFakeAPI(t)

	_, _, err := run(t, "", "--api-url", url, "--token", "tok-1", "employees", "list")

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", api.lastAuth.Load())
}

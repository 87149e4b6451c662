package site_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prasadp25/protecther-hrms-sub001/internal/site"
	siteerrors "github.com/prasadp25/protecther-hrms-sub001/internal/site/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSiteService struct {
	GetAllFn func(ctx context.Context) ([]site.SiteResponse, error)
	CreateFn func(ctx context.Context, req site.CreateSiteRequest) (site.SiteResponse, error)
}

func (f *fakeSiteService) GetAll(ctx context.Context) ([]site.SiteResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeSiteService) Create(ctx context.Context, req site.CreateSiteRequest) (site.SiteResponse, error) {
	return f.CreateFn(ctx, req)
}

func TestSiteHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := site.NewHandler(&fakeSiteService{
		GetAllFn: func(context.Context) ([]site.SiteResponse, error) {
			return []site.SiteResponse{{ID: "s1", Name: "Pune Plant", Code: "PUN"}}, nil
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/sites", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[{"id":"s1","name":"Pune Plant","code":"PUN","active":false}]}`, w.Body.String())
}

func TestSiteHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing code", func(t *testing.T) {
		h := site.NewHandler(&fakeSiteService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/sites", strings.NewReader(`{"name":"Pune"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		h := site.NewHandler(&fakeSiteService{
			CreateFn: func(context.Context, site.CreateSiteRequest) (site.SiteResponse, error) {
				return site.SiteResponse{}, siteerrors.ErrSiteCodeAlreadyExists
			},
		})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/sites", strings.NewReader(`{"name":"Pune","code":"PUN"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

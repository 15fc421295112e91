package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/middleware"
	"github.com/noah-isme/campus-credit-api/internal/models"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
)

type fakeDashboardSrv struct {
	overview     *dto.DashboardOverviewResponse
	report       *dto.CreditReportResponse
	err          error
	hit          bool
	lastCategory string
	lastSel      models.SelectionState
	lastEnglish  bool
}

func (f *fakeDashboardSrv) Overview(_ context.Context, sel models.SelectionState, lab *locale.Labeler) (*dto.DashboardOverviewResponse, bool, error) {
	f.lastSel = sel
	f.lastEnglish = lab != nil && lab.IsEnglish()
	return f.overview, f.hit, f.err
}

func (f *fakeDashboardSrv) Report(_ context.Context, category string, _ *locale.Labeler) (*dto.CreditReportResponse, bool, error) {
	f.lastCategory = category
	return f.report, f.hit, f.err
}

type responseEnvelope struct {
	Data       map[string]interface{} `json:"data"`
	Error      map[string]interface{} `json:"error"`
	Pagination map[string]interface{} `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestDashboardHandlerOverviewSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeDashboardSrv{
		overview: &dto.DashboardOverviewResponse{Todos: []models.TodoItem{{Key: "pending_review", Count: 5}}},
		hit:      true,
	}
	handler := NewDashboardHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	c.Request.Header.Set("Accept-Language", "en")
	middleware.Locale("zh-CN")(c)
	middleware.SetCacheHit(c, false)

	handler.Overview(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	assert.Len(t, envelope.Data["todos"], 1)
	assert.True(t, service.lastSel.Equal(models.NewSelectionState()))
	assert.True(t, service.lastEnglish)
}

func TestDashboardHandlerReportPassesCategory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	category := "社会实践"
	service := &fakeDashboardSrv{report: &dto.CreditReportResponse{ActiveCategory: &category, Rows: []dto.CreditDetailItem{}}}
	handler := NewDashboardHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/report?category=%E7%A4%BE%E4%BC%9A%E5%AE%9E%E8%B7%B5", nil)

	handler.Report(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "社会实践", service.lastCategory)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "社会实践", envelope.Data["activeCategory"])
}

func TestDashboardHandlerReportValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{err: appErrors.Clone(appErrors.ErrValidation, "unknown distribution category")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/report?category=x", nil)

	handler.Report(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error["code"])
}

func TestDashboardHandlerWithoutService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	handler.Overview(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

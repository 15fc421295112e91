package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/models"
	"github.com/noah-isme/campus-credit-api/internal/repository"
	"github.com/noah-isme/campus-credit-api/internal/service"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
)

type fakeSessionSrv struct {
	session      *models.ViewSession
	err          error
	closed       string
	lastSegment  service.SelectSegmentRequest
	lastToggle   int64
	lastFilters  service.UpdateFiltersRequest
	lastPage     service.Page
	renderCalled bool
}

func (f *fakeSessionSrv) Open(_ context.Context, req service.OpenSessionRequest) (*models.ViewSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ViewSession{ID: "s-1", View: req.View, Selection: models.NewSelectionState()}, nil
}

func (f *fakeSessionSrv) Get(context.Context, string) (*models.ViewSession, error) {
	return f.session, f.err
}

func (f *fakeSessionSrv) Close(_ context.Context, id string) error {
	f.closed = id
	return f.err
}

func (f *fakeSessionSrv) UpdateFilters(_ context.Context, _ string, req service.UpdateFiltersRequest) (*models.ViewSession, error) {
	f.lastFilters = req
	return f.session, f.err
}

func (f *fakeSessionSrv) SelectSegment(_ context.Context, _ string, req service.SelectSegmentRequest) (*models.ViewSession, error) {
	f.lastSegment = req
	return f.session, f.err
}

func (f *fakeSessionSrv) ClearSegment(context.Context, string) (*models.ViewSession, error) {
	return f.session, f.err
}

func (f *fakeSessionSrv) ToggleRead(_ context.Context, _ string, notificationID int64) (*models.ViewSession, error) {
	f.lastToggle = notificationID
	return f.session, f.err
}

func (f *fakeSessionSrv) MarkAllRead(context.Context, string) (*models.ViewSession, error) {
	return f.session, f.err
}

func (f *fakeSessionSrv) Render(_ context.Context, session *models.ViewSession, page service.Page, _ *locale.Labeler) (*dto.SessionResponse, *models.Pagination, bool, error) {
	f.renderCalled = true
	f.lastPage = page
	return &dto.SessionResponse{ID: session.ID, View: session.View, Selection: session.Selection}, nil, false, nil
}

func newSessionContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
		c.Request = httptest.NewRequest(method, target, reader)
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	return c, rec
}

func TestSessionHandlerOpen(t *testing.T) {
	handler := NewSessionHandler(&fakeSessionSrv{})
	c, rec := newSessionContext(http.MethodPost, "/sessions", `{"view":"dashboard"}`)

	handler.Open(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "s-1", envelope.Data["id"])
	assert.Equal(t, "dashboard", envelope.Data["view"])
}

func TestSessionHandlerOpenRejectsBadJSON(t *testing.T) {
	handler := NewSessionHandler(&fakeSessionSrv{})
	c, rec := newSessionContext(http.MethodPost, "/sessions", `{"view":`)

	handler.Open(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandlerGetNotFound(t *testing.T) {
	handler := NewSessionHandler(&fakeSessionSrv{err: appErrors.ErrSessionNotFound})
	c, rec := newSessionContext(http.MethodGet, "/sessions/missing", "")
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "SESSION_NOT_FOUND", envelope.Error["code"])
}

func TestSessionHandlerGetPassesPage(t *testing.T) {
	srv := &fakeSessionSrv{session: &models.ViewSession{ID: "s-1", View: models.ViewUsers}}
	handler := NewSessionHandler(srv)
	c, rec := newSessionContext(http.MethodGet, "/sessions/s-1?page=2&pageSize=5", "")
	c.Params = gin.Params{{Key: "id", Value: "s-1"}}

	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.Page{Page: 2, PageSize: 5}, srv.lastPage)

	c, rec = newSessionContext(http.MethodGet, "/sessions/s-1?pageSize=1000", "")
	handler.Get(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandlerSelectSegment(t *testing.T) {
	srv := &fakeSessionSrv{session: &models.ViewSession{ID: "s-1", View: models.ViewDashboard}}
	handler := NewSessionHandler(srv)

	c, rec := newSessionContext(http.MethodPost, "/sessions/s-1/segments/2", `{"label":"文体活动"}`)
	c.Params = gin.Params{{Key: "id", Value: "s-1"}, {Key: "index", Value: "2"}}
	handler.SelectSegment(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.SelectSegmentRequest{Index: 2, Label: "文体活动"}, srv.lastSegment)

	c, rec = newSessionContext(http.MethodPost, "/sessions/s-1/segments/0", "")
	c.Params = gin.Params{{Key: "id", Value: "s-1"}, {Key: "index", Value: "0"}}
	handler.SelectSegment(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.SelectSegmentRequest{Index: 0}, srv.lastSegment)

	c, rec = newSessionContext(http.MethodPost, "/sessions/s-1/segments/first", "")
	c.Params = gin.Params{{Key: "id", Value: "s-1"}, {Key: "index", Value: "first"}}
	handler.SelectSegment(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandlerToggleRead(t *testing.T) {
	srv := &fakeSessionSrv{session: &models.ViewSession{ID: "s-1", View: models.ViewNotifications}}
	handler := NewSessionHandler(srv)

	c, rec := newSessionContext(http.MethodPost, "/sessions/s-1/notifications/4/toggle-read", "")
	c.Params = gin.Params{{Key: "id", Value: "s-1"}, {Key: "notificationId", Value: "4"}}
	handler.ToggleRead(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), srv.lastToggle)
	assert.True(t, srv.renderCalled)
}

func TestSessionHandlerUnsupportedView(t *testing.T) {
	handler := NewSessionHandler(&fakeSessionSrv{err: appErrors.Clone(appErrors.ErrUnsupportedView, "read state requires the notifications view")})

	c, rec := newSessionContext(http.MethodPost, "/sessions/s-1/notifications/read-all", "")
	c.Params = gin.Params{{Key: "id", Value: "s-1"}}
	handler.MarkAllRead(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "UNSUPPORTED_VIEW", envelope.Error["code"])
}

func TestSessionHandlerClose(t *testing.T) {
	srv := &fakeSessionSrv{}
	handler := NewSessionHandler(srv)

	c, rec := newSessionContext(http.MethodDelete, "/sessions/s-9", "")
	c.Params = gin.Params{{Key: "id", Value: "s-9"}}
	handler.Close(c)
	c.Writer.WriteHeaderNow() // gin's engine flushes the status after handlers; the test context does not

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "s-9", srv.closed)
}

func TestSessionHandlerUpdateFilters(t *testing.T) {
	srv := &fakeSessionSrv{session: &models.ViewSession{ID: "s-1", View: models.ViewUsers}}
	handler := NewSessionHandler(srv)

	c, rec := newSessionContext(http.MethodPatch, "/sessions/s-1/filters", `{"roleFilter":"manager"}`)
	c.Params = gin.Params{{Key: "id", Value: "s-1"}}
	handler.UpdateFilters(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.lastFilters.RoleFilter)
	assert.Equal(t, "manager", *srv.lastFilters.RoleFilter)
	assert.Nil(t, srv.lastFilters.SearchTerm)
}

// End to end through the router with the real services and the static datasets.
func TestSessionRoutesCrossFilterFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	datasets := service.NewDatasetService(repository.NewStaticDatasetRepository(), nil, nil, zap.NewNop())
	sessions := service.NewSessionService(service.SessionServiceParams{
		Repository:    repository.NewMemorySessionRepository(time.Hour),
		Datasets:      datasets,
		Dashboard:     service.NewDashboardService(service.DashboardServiceParams{Datasets: datasets}),
		Activities:    service.NewActivityService(datasets, nil, nil, nil, 20),
		Credits:       service.NewCreditService(datasets, nil, nil, nil, 20),
		Users:         service.NewUserAdminService(datasets, nil, nil, nil, 20),
		Notifications: service.NewNotificationService(datasets, nil, nil, nil),
	})
	handler := NewSessionHandler(sessions)

	router := gin.New()
	router.POST("/sessions", handler.Open)
	router.GET("/sessions/:id", handler.Get)
	router.POST("/sessions/:id/segments/:index", handler.SelectSegment)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"view":"dashboard"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := decodeEnvelope(t, rec).Data["id"].(string)
	require.NotEmpty(t, id)

	reportRows := func(envelope responseEnvelope) []interface{} {
		payload := envelope.Data["payload"].(map[string]interface{})
		report := payload["report"].(map[string]interface{})
		return report["rows"].([]interface{})
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/segments/0", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, reportRows(decodeEnvelope(t, rec)), 2)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/segments/0", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, reportRows(decodeEnvelope(t, rec)), 8)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/segments/-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

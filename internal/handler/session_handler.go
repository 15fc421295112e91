package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/models"
	"github.com/noah-isme/campus-credit-api/internal/service"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
	"github.com/noah-isme/campus-credit-api/pkg/response"
)

type sessionService interface {
	Open(ctx context.Context, req service.OpenSessionRequest) (*models.ViewSession, error)
	Get(ctx context.Context, id string) (*models.ViewSession, error)
	Close(ctx context.Context, id string) error
	UpdateFilters(ctx context.Context, id string, req service.UpdateFiltersRequest) (*models.ViewSession, error)
	SelectSegment(ctx context.Context, id string, req service.SelectSegmentRequest) (*models.ViewSession, error)
	ClearSegment(ctx context.Context, id string) (*models.ViewSession, error)
	ToggleRead(ctx context.Context, id string, notificationID int64) (*models.ViewSession, error)
	MarkAllRead(ctx context.Context, id string) (*models.ViewSession, error)
	Render(ctx context.Context, session *models.ViewSession, page service.Page, lab *locale.Labeler) (*dto.SessionResponse, *models.Pagination, bool, error)
}

// SessionHandler exposes view sessions: a mounted screen with its own selection state.
type SessionHandler struct {
	service sessionService
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(service sessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Open godoc
// @Summary Mount a view and create its session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body service.OpenSessionRequest true "View to mount"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Open(c *gin.Context) {
	var req service.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	start := time.Now()
	session, err := h.service.Open(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.render(c, http.StatusCreated, session, service.Page{}, start)
}

// Get godoc
// @Summary Render a session's view under its current selection
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	page, err := pageFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	session, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.render(c, http.StatusOK, session, page, start)
}

// Close godoc
// @Summary Unmount a view and discard its state
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Close(c *gin.Context) {
	if err := h.service.Close(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateFilters godoc
// @Summary Update search and filter dimensions
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body service.UpdateFiltersRequest true "Filters to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions/{id}/filters [patch]
func (h *SessionHandler) UpdateFilters(c *gin.Context) {
	var req service.UpdateFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	start := time.Now()
	session, err := h.service.UpdateFilters(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.render(c, http.StatusOK, session, service.Page{}, start)
}

// SelectSegment godoc
// @Summary Click a distribution pie segment; clicking the active one clears it
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Segment index"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions/{id}/segments/{index} [post]
func (h *SessionHandler) SelectSegment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "segment index must be an integer"))
		return
	}
	var req service.SelectSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	req.Index = index

	start := time.Now()
	session, err := h.service.SelectSegment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.render(c, http.StatusOK, session, service.Page{}, start)
}

// ClearSegment godoc
// @Summary Clear the pie selection
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/segments [delete]
func (h *SessionHandler) ClearSegment(c *gin.Context) {
	start := time.Now()
	session, err := h.service.ClearSegment(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.render(c, http.StatusOK, session, service.Page{}, start)
}

// ToggleRead godoc
// @Summary Flip the read flag of one notification
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param notificationId path int true "Notification ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/notifications/{notificationId}/toggle-read [post]
func (h *SessionHandler) ToggleRead(c *gin.Context) {
	notificationID, err := strconv.ParseInt(c.Param("notificationId"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "notification id must be an integer"))
		return
	}
	start := time.Now()
	session, err := h.service.ToggleRead(c.Request.Context(), c.Param("id"), notificationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.render(c, http.StatusOK, session, service.Page{}, start)
}

// MarkAllRead godoc
// @Summary Mark every notification as read
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/notifications/read-all [post]
func (h *SessionHandler) MarkAllRead(c *gin.Context) {
	start := time.Now()
	session, err := h.service.MarkAllRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.render(c, http.StatusOK, session, service.Page{}, start)
}

func (h *SessionHandler) render(c *gin.Context, status int, session *models.ViewSession, page service.Page, start time.Time) {
	rendered, pagination, cacheHit, err := h.service.Render(c.Request.Context(), session, page, labelerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, status, rendered, pagination, cacheHit, start)
}

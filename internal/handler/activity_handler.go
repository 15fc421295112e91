package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/models"
	"github.com/noah-isme/campus-credit-api/internal/service"
	"github.com/noah-isme/campus-credit-api/pkg/response"
)

type activityService interface {
	List(ctx context.Context, req service.ActivityListRequest, lab *locale.Labeler) (*dto.ActivityListResponse, *models.Pagination, bool, error)
	FilterOptions(ctx context.Context, lab *locale.Labeler) (*dto.ActivityFilterOptions, bool, error)
}

// ActivityHandler serves the activity management screen.
type ActivityHandler struct {
	service activityService
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(service activityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List godoc
// @Summary List activities
// @Tags Activities
// @Produce json
// @Param search query string false "Title search"
// @Param category query string false "Category (全部类型 for all)"
// @Param status query string false "completed|active|upcoming (全部状态 for all)"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	var req service.ActivityListRequest
	if !bindQuery(c, &req) {
		return
	}
	start := time.Now()
	list, pagination, cacheHit, err := h.service.List(c.Request.Context(), req, labelerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, list, pagination, cacheHit, start)
}

// Filters godoc
// @Summary Activity filter options
// @Tags Activities
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /activities/filters [get]
func (h *ActivityHandler) Filters(c *gin.Context) {
	start := time.Now()
	options, cacheHit, err := h.service.FilterOptions(c.Request.Context(), labelerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, options, nil, cacheHit, start)
}

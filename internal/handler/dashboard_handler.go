package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/models"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
	"github.com/noah-isme/campus-credit-api/pkg/response"
)

type dashboardService interface {
	Overview(ctx context.Context, sel models.SelectionState, lab *locale.Labeler) (*dto.DashboardOverviewResponse, bool, error)
	Report(ctx context.Context, category string, lab *locale.Labeler) (*dto.CreditReportResponse, bool, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Overview godoc
// @Summary Overview dashboard with no chart selection
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	overview, cacheHit, err := h.service.Overview(c.Request.Context(), models.NewSelectionState(), labelerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, overview, nil, cacheHit, start)
}

// Report godoc
// @Summary Credit report filtered by distribution category
// @Tags Dashboard
// @Produce json
// @Param category query string false "Distribution category; empty shows every row"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /dashboard/report [get]
func (h *DashboardHandler) Report(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	report, cacheHit, err := h.service.Report(c.Request.Context(), c.Query("category"), labelerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, report, nil, cacheHit, start)
}

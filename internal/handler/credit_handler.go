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

type creditService interface {
	Overview(ctx context.Context, sel models.SelectionState, lab *locale.Labeler) (*dto.CreditOverviewResponse, bool, error)
	List(ctx context.Context, req service.StudentCreditListRequest, lab *locale.Labeler) (*dto.StudentCreditListResponse, *models.Pagination, bool, error)
}

// CreditHandler serves the credit system screen.
type CreditHandler struct {
	service creditService
}

// NewCreditHandler constructs the handler.
func NewCreditHandler(service creditService) *CreditHandler {
	return &CreditHandler{service: service}
}

// Overview godoc
// @Summary Credit distribution and standing summary
// @Tags Credits
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /credits/overview [get]
func (h *CreditHandler) Overview(c *gin.Context) {
	start := time.Now()
	overview, cacheHit, err := h.service.Overview(c.Request.Context(), models.NewSelectionState(), labelerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, overview, nil, cacheHit, start)
}

// Students godoc
// @Summary List student credit ledgers
// @Tags Credits
// @Produce json
// @Param search query string false "Name or student number"
// @Param status query string false "completed|warning|danger (全部状态 for all)"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /credits/students [get]
func (h *CreditHandler) Students(c *gin.Context) {
	var req service.StudentCreditListRequest
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

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/service"
	"github.com/noah-isme/campus-credit-api/pkg/response"
)

type notificationService interface {
	List(ctx context.Context, req service.NotificationListRequest, lab *locale.Labeler) (*dto.NotificationListResponse, bool, error)
}

// NotificationHandler serves the read-only inbox listing.
type NotificationHandler struct {
	service notificationService
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(service notificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List godoc
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Param search query string false "Title or message"
// @Param type query string false "alert|success|info|calendar (全部类型 for all)"
// @Param read query string false "全部|未读|已读"
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var req service.NotificationListRequest
	if !bindQuery(c, &req) {
		return
	}
	start := time.Now()
	list, cacheHit, err := h.service.List(c.Request.Context(), req, labelerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, list, nil, cacheHit, start)
}

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

type userAdminService interface {
	List(ctx context.Context, req service.UserListRequest, lab *locale.Labeler) (*dto.UserListResponse, *models.Pagination, bool, error)
}

// UserHandler serves the user administration screen.
type UserHandler struct {
	service userAdminService
}

// NewUserHandler constructs a user handler.
func NewUserHandler(service userAdminService) *UserHandler {
	return &UserHandler{service: service}
}

// List godoc
// @Summary List administrative users
// @Tags Users
// @Produce json
// @Param search query string false "Name, username or email"
// @Param role query string false "admin|manager|assistant|class (全部角色 for all)"
// @Param department query string false "Department (全部部门 for all)"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var req service.UserListRequest
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

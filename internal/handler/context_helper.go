package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/middleware"
	"github.com/noah-isme/campus-credit-api/internal/models"
	"github.com/noah-isme/campus-credit-api/internal/service"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
	"github.com/noah-isme/campus-credit-api/pkg/response"
)

func labelerFromContext(c *gin.Context) *locale.Labeler {
	return middleware.Labeler(c)
}

// respond writes a successful envelope carrying cache and timing metadata.
func respond(c *gin.Context, status int, data any, pagination *models.Pagination, cacheHit bool, start time.Time) {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]any{"cache_hit": cacheHit}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, status, data, pagination, meta)
}

func pageFromQuery(c *gin.Context) (service.Page, error) {
	var page service.Page
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return page, appErrors.Clone(appErrors.ErrValidation, "page must be a positive integer")
		}
		page.Page = value
	}
	if raw := strings.TrimSpace(c.Query("pageSize")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 || value > 100 {
			return page, appErrors.Clone(appErrors.ErrValidation, "pageSize must be between 1 and 100")
		}
		page.PageSize = value
	}
	return page, nil
}

func bindQuery(c *gin.Context, dest any) bool {
	if err := c.ShouldBindQuery(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return false
	}
	return true
}

package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/filter"
	"github.com/noah-isme/campus-credit-api/internal/inbox"
	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/models"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
)

type notificationDatasets interface {
	Notifications(ctx context.Context) ([]models.Notification, bool, error)
}

// NotificationListRequest is the query of the stateless inbox listing.
type NotificationListRequest struct {
	Search string `form:"search" validate:"max=100"`
	Type   string `form:"type" validate:"max=50"`
	Read   string `form:"read" validate:"omitempty,oneof=全部 未读 已读"`
}

// NotificationService renders the notification center.
type NotificationService struct {
	datasets  notificationDatasets
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(datasets notificationDatasets, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &NotificationService{datasets: datasets, metrics: metrics, validator: validate, logger: logger}
}

// List renders the initial inbox under the query filters.
func (s *NotificationService) List(ctx context.Context, req NotificationListRequest, lab *locale.Labeler) (*dto.NotificationListResponse, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification query")
	}
	list, hit, err := s.datasets.Notifications(ctx)
	if err != nil {
		return nil, false, err
	}
	sel := models.NewSelectionState()
	sel.SearchTerm = req.Search
	sel.TypeFilter = orSentinel(req.Type, models.AllTypes)
	sel.ReadFilter = orSentinel(req.Read, models.AllReadStates)
	return s.Render(list, sel, lab), hit, nil
}

// Render filters list under sel. Counts always describe the whole list.
func (s *NotificationService) Render(list []models.Notification, sel models.SelectionState, lab *locale.Labeler) *dto.NotificationListResponse {
	lab = labelerOrDefault(lab)
	matched := filter.Notifications(list, sel)
	s.metrics.IncFilterEvaluation(models.ViewNotifications)

	items := make([]dto.NotificationItem, 0, len(matched))
	for _, n := range matched {
		items = append(items, dto.NotificationItem{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			TypeLabel: lab.NotificationType(n.Type),
			Time:      n.Time,
			Read:      n.Read,
		})
	}

	counts := inbox.Count(list)
	return &dto.NotificationListResponse{
		Items: items,
		Counts: dto.NotificationCounts{
			Total:        counts.Total,
			Unread:       counts.Unread,
			UnreadAlerts: counts.UnreadAlerts,
		},
		EmptyState: emptyState(len(matched), lab, "empty.notifications"),
	}
}

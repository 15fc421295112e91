package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/filter"
	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/models"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
)

type activityDatasets interface {
	Activities(ctx context.Context) ([]models.Activity, bool, error)
	ActivityCategories(ctx context.Context) ([]string, bool, error)
}

// ActivityListRequest is the query of the stateless activity listing.
type ActivityListRequest struct {
	Search   string `form:"search" validate:"max=100"`
	Category string `form:"category" validate:"max=50"`
	Status   string `form:"status" validate:"max=50"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// ActivityService renders the activity management view.
type ActivityService struct {
	datasets        activityDatasets
	metrics         *MetricsService
	validator       *validator.Validate
	logger          *zap.Logger
	defaultPageSize int
}

// NewActivityService constructs an ActivityService.
func NewActivityService(datasets activityDatasets, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, defaultPageSize int) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ActivityService{datasets: datasets, metrics: metrics, validator: validate, logger: logger, defaultPageSize: defaultPageSize}
}

// List validates the query and renders the matching page of activities.
func (s *ActivityService) List(ctx context.Context, req ActivityListRequest, lab *locale.Labeler) (*dto.ActivityListResponse, *models.Pagination, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid activity query")
	}
	sel := models.NewSelectionState()
	sel.SearchTerm = req.Search
	sel.CategorySelect = orSentinel(req.Category, models.AllCategories)
	sel.StatusFilter = orSentinel(req.Status, models.AllStatuses)
	return s.Render(ctx, sel, Page{Page: req.Page, PageSize: req.PageSize}, lab)
}

// Render filters the activity dataset under sel.
func (s *ActivityService) Render(ctx context.Context, sel models.SelectionState, page Page, lab *locale.Labeler) (*dto.ActivityListResponse, *models.Pagination, bool, error) {
	lab = labelerOrDefault(lab)
	activities, hit, err := s.datasets.Activities(ctx)
	if err != nil {
		return nil, nil, false, err
	}

	matched := filter.Activities(activities, sel)
	s.metrics.IncFilterEvaluation(models.ViewActivities)

	window, pagination := paginate(matched, page.normalise(s.defaultPageSize))
	items := make([]dto.ActivityItem, 0, len(window))
	for _, a := range window {
		items = append(items, dto.ActivityItem{
			ID:           a.ID,
			Title:        a.Title,
			Category:     a.Category,
			StartDate:    a.StartDate,
			EndDate:      a.EndDate,
			Status:       string(a.Status),
			StatusLabel:  lab.ActivityStatus(a.Status),
			Participants: a.Participants,
			Credits:      a.Credits,
		})
	}
	return &dto.ActivityListResponse{Items: items, EmptyState: emptyState(len(matched), lab, "empty.activities")}, pagination, hit, nil
}

// FilterOptions lists the category and status dropdown options.
func (s *ActivityService) FilterOptions(ctx context.Context, lab *locale.Labeler) (*dto.ActivityFilterOptions, bool, error) {
	lab = labelerOrDefault(lab)
	categories, hit, err := s.datasets.ActivityCategories(ctx)
	if err != nil {
		return nil, false, err
	}
	statuses := make([]dto.FilterOption, 0, len(models.ActivityStatuses)+1)
	statuses = append(statuses, dto.FilterOption{Value: models.AllStatuses, Label: lab.Sentinel(models.AllStatuses)})
	for _, status := range models.ActivityStatuses {
		statuses = append(statuses, dto.FilterOption{Value: string(status), Label: lab.ActivityStatus(status)})
	}
	return &dto.ActivityFilterOptions{
		Categories: optionsWithSentinel(lab, models.AllCategories, categories),
		Statuses:   statuses,
	}, hit, nil
}

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

type userDatasets interface {
	Users(ctx context.Context) ([]models.User, bool, error)
	Departments(ctx context.Context) ([]string, bool, error)
}

// UserListRequest is the query of the stateless user listing.
type UserListRequest struct {
	Search     string `form:"search" validate:"max=100"`
	Role       string `form:"role" validate:"max=50"`
	Department string `form:"department" validate:"max=50"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	PageSize   int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// UserAdminService renders the user administration view. Roles are badges only.
type UserAdminService struct {
	datasets        userDatasets
	metrics         *MetricsService
	validator       *validator.Validate
	logger          *zap.Logger
	defaultPageSize int
}

// NewUserAdminService constructs a UserAdminService.
func NewUserAdminService(datasets userDatasets, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, defaultPageSize int) *UserAdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserAdminService{datasets: datasets, metrics: metrics, validator: validate, logger: logger, defaultPageSize: defaultPageSize}
}

// List validates the query and renders the matching page of users.
func (s *UserAdminService) List(ctx context.Context, req UserListRequest, lab *locale.Labeler) (*dto.UserListResponse, *models.Pagination, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user query")
	}
	sel := models.NewSelectionState()
	sel.SearchTerm = req.Search
	sel.RoleFilter = orSentinel(req.Role, models.AllRoles)
	sel.DepartmentFilter = orSentinel(req.Department, models.AllDepartment)
	return s.Render(ctx, sel, Page{Page: req.Page, PageSize: req.PageSize}, lab)
}

// Render filters the user dataset under sel.
func (s *UserAdminService) Render(ctx context.Context, sel models.SelectionState, page Page, lab *locale.Labeler) (*dto.UserListResponse, *models.Pagination, bool, error) {
	lab = labelerOrDefault(lab)
	users, usersHit, err := s.datasets.Users(ctx)
	if err != nil {
		return nil, nil, false, err
	}
	departments, deptHit, err := s.datasets.Departments(ctx)
	if err != nil {
		return nil, nil, false, err
	}

	matched := filter.Users(users, sel)
	s.metrics.IncFilterEvaluation(models.ViewUsers)

	window, pagination := paginate(matched, page.normalise(s.defaultPageSize))
	items := make([]dto.UserItem, 0, len(window))
	for _, u := range window {
		items = append(items, dto.UserItem{
			ID:         u.ID,
			Name:       u.Name,
			Username:   u.Username,
			Email:      u.Email,
			Role:       string(u.Role),
			RoleLabel:  lab.Role(u.Role),
			Department: u.Department,
			LastActive: u.LastActive,
		})
	}

	roles := make([]dto.FilterOption, 0, len(models.UserRoles)+1)
	roles = append(roles, dto.FilterOption{Value: models.AllRoles, Label: lab.Sentinel(models.AllRoles)})
	for _, role := range models.UserRoles {
		roles = append(roles, dto.FilterOption{Value: string(role), Label: lab.Role(role)})
	}

	return &dto.UserListResponse{
		Items:       items,
		Roles:       roles,
		Departments: optionsWithSentinel(lab, models.AllDepartment, departments),
		EmptyState:  emptyState(len(matched), lab, "empty.users"),
	}, pagination, usersHit && deptHit, nil
}

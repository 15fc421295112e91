package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-credit-api/internal/crossfilter"
	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/inbox"
	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/models"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
)

// SessionRepository stores view sessions.
type SessionRepository interface {
	Save(ctx context.Context, session *models.ViewSession) error
	Get(ctx context.Context, id string) (*models.ViewSession, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type sessionDatasets interface {
	Notifications(ctx context.Context) ([]models.Notification, bool, error)
	CreditDistribution(ctx context.Context, scope models.DistributionScope) ([]models.ChartPoint, bool, error)
}

type dashboardRenderer interface {
	Overview(ctx context.Context, sel models.SelectionState, lab *locale.Labeler) (*dto.DashboardOverviewResponse, bool, error)
}

type activityRenderer interface {
	Render(ctx context.Context, sel models.SelectionState, page Page, lab *locale.Labeler) (*dto.ActivityListResponse, *models.Pagination, bool, error)
}

type creditRenderer interface {
	Overview(ctx context.Context, sel models.SelectionState, lab *locale.Labeler) (*dto.CreditOverviewResponse, bool, error)
	Students(ctx context.Context, sel models.SelectionState, page Page, lab *locale.Labeler) (*dto.StudentCreditListResponse, *models.Pagination, bool, error)
}

type userRenderer interface {
	Render(ctx context.Context, sel models.SelectionState, page Page, lab *locale.Labeler) (*dto.UserListResponse, *models.Pagination, bool, error)
}

type notificationRenderer interface {
	Render(list []models.Notification, sel models.SelectionState, lab *locale.Labeler) *dto.NotificationListResponse
}

// OpenSessionRequest mounts a view.
type OpenSessionRequest struct {
	View models.View `json:"view" validate:"required"`
}

// UpdateFiltersRequest patches the filter dimensions of a session. Nil fields
// are left untouched; an empty string resets the dimension to "show all".
type UpdateFiltersRequest struct {
	SearchTerm       *string `json:"searchTerm" validate:"omitempty,max=100"`
	CategorySelect   *string `json:"categorySelect" validate:"omitempty,max=50"`
	StatusFilter     *string `json:"statusFilter" validate:"omitempty,max=50"`
	RoleFilter       *string `json:"roleFilter" validate:"omitempty,max=50"`
	DepartmentFilter *string `json:"departmentFilter" validate:"omitempty,max=50"`
	TypeFilter       *string `json:"typeFilter" validate:"omitempty,max=50"`
	ReadFilter       *string `json:"readFilter" validate:"omitempty,max=20"`
}

// SelectSegmentRequest is a click on the distribution pie. Label defaults to
// the name of the clicked slice.
type SelectSegmentRequest struct {
	Index int    `json:"index" validate:"min=0"`
	Label string `json:"label" validate:"max=50"`
}

// SessionService owns view sessions. Transitions on one session are
// serialised; different sessions never share state.
type SessionService struct {
	repo          SessionRepository
	datasets      sessionDatasets
	dashboard     dashboardRenderer
	activities    activityRenderer
	credits       creditRenderer
	users         userRenderer
	notifications notificationRenderer
	metrics       *MetricsService
	validator     *validator.Validate
	logger        *zap.Logger
	now           func() time.Time
	locks         sync.Map
}

// SessionServiceParams groups constructor dependencies.
type SessionServiceParams struct {
	Repository    SessionRepository
	Datasets      sessionDatasets
	Dashboard     dashboardRenderer
	Activities    activityRenderer
	Credits       creditRenderer
	Users         userRenderer
	Notifications notificationRenderer
	Metrics       *MetricsService
	Validator     *validator.Validate
	Logger        *zap.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(params SessionServiceParams) *SessionService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	return &SessionService{
		repo:          params.Repository,
		datasets:      params.Datasets,
		dashboard:     params.Dashboard,
		activities:    params.Activities,
		credits:       params.Credits,
		users:         params.Users,
		notifications: params.Notifications,
		metrics:       params.Metrics,
		validator:     validate,
		logger:        logger,
		now:           time.Now,
	}
}

// Open mounts a view with the "show all" selection. The notifications view
// takes its own copy of the inbox.
func (s *SessionService) Open(ctx context.Context, req OpenSessionRequest) (*models.ViewSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	if !req.View.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown view: "+string(req.View))
	}

	now := s.now().UTC()
	session := &models.ViewSession{
		ID:        uuid.NewString(),
		View:      req.View,
		Selection: models.NewSelectionState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.View == models.ViewNotifications {
		list, _, err := s.datasets.Notifications(ctx)
		if err != nil {
			return nil, err
		}
		session.Notifications = list
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}
	s.refreshGauge(ctx)
	s.logger.Info("view session opened", zap.String("session_id", session.ID), zap.String("view", string(session.View)))
	return session, nil
}

// Get loads a session.
func (s *SessionService) Get(ctx context.Context, id string) (*models.ViewSession, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.storeError(id, err)
	}
	return session, nil
}

// Close unmounts a view and discards its state.
func (s *SessionService) Close(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeError(id, err)
	}
	s.locks.Delete(id)
	s.refreshGauge(ctx)
	s.logger.Info("view session closed", zap.String("session_id", id))
	return nil
}

// UpdateFilters applies the non-nil filter fields of req.
func (s *SessionService) UpdateFilters(ctx context.Context, id string, req UpdateFiltersRequest) (*models.ViewSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter payload")
	}
	if req.ReadFilter != nil {
		switch *req.ReadFilter {
		case "", models.AllReadStates, models.ReadStateUnread, models.ReadStateRead:
		default:
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown read filter: "+*req.ReadFilter)
		}
	}

	return s.mutate(ctx, id, func(session *models.ViewSession) error {
		sel := &session.Selection
		if req.SearchTerm != nil {
			sel.SearchTerm = *req.SearchTerm
		}
		applyFilter(&sel.CategorySelect, req.CategorySelect, models.AllCategories)
		applyFilter(&sel.StatusFilter, req.StatusFilter, models.AllStatuses)
		applyFilter(&sel.RoleFilter, req.RoleFilter, models.AllRoles)
		applyFilter(&sel.DepartmentFilter, req.DepartmentFilter, models.AllDepartment)
		applyFilter(&sel.TypeFilter, req.TypeFilter, models.AllTypes)
		applyFilter(&sel.ReadFilter, req.ReadFilter, models.AllReadStates)
		return nil
	})
}

// SelectSegment toggles a slice of the dashboard distribution pie.
// Clicking the active slice again clears the selection.
func (s *SessionService) SelectSegment(ctx context.Context, id string, req SelectSegmentRequest) (*models.ViewSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid segment payload")
	}

	return s.mutate(ctx, id, func(session *models.ViewSession) error {
		if session.View != models.ViewDashboard {
			return appErrors.Clone(appErrors.ErrUnsupportedView, "segment selection requires the dashboard view")
		}
		distribution, _, err := s.datasets.CreditDistribution(ctx, models.DistributionDashboard)
		if err != nil {
			return err
		}
		if req.Index >= len(distribution) {
			return appErrors.Clone(appErrors.ErrValidation, "segment index out of range")
		}
		name := distribution[req.Index].Name
		if req.Label != "" && req.Label != name {
			return appErrors.Clone(appErrors.ErrValidation, "label does not match segment "+name)
		}

		wasActive := crossfilter.Active(session.Selection)
		session.Selection = crossfilter.Select(session.Selection, req.Index, name)
		if wasActive && !crossfilter.Active(session.Selection) {
			s.metrics.RecordSegmentSelection("clear")
		} else {
			s.metrics.RecordSegmentSelection("select")
		}
		return nil
	})
}

// ClearSegment resets the pie selection.
func (s *SessionService) ClearSegment(ctx context.Context, id string) (*models.ViewSession, error) {
	return s.mutate(ctx, id, func(session *models.ViewSession) error {
		if session.View != models.ViewDashboard {
			return appErrors.Clone(appErrors.ErrUnsupportedView, "segment selection requires the dashboard view")
		}
		if !crossfilter.Active(session.Selection) {
			return nil
		}
		session.Selection = crossfilter.Clear(session.Selection)
		s.metrics.RecordSegmentSelection("clear")
		return nil
	})
}

// ToggleRead flips one notification. Unknown ids leave the inbox unchanged.
func (s *SessionService) ToggleRead(ctx context.Context, id string, notificationID int64) (*models.ViewSession, error) {
	return s.mutate(ctx, id, func(session *models.ViewSession) error {
		if session.View != models.ViewNotifications {
			return appErrors.Clone(appErrors.ErrUnsupportedView, "read state requires the notifications view")
		}
		if !inbox.Contains(session.Notifications, notificationID) {
			s.logger.Debug("toggle read ignored unknown notification", zap.String("session_id", id), zap.Int64("notification_id", notificationID))
		}
		session.Notifications = inbox.ToggleRead(session.Notifications, notificationID)
		return nil
	})
}

// MarkAllRead marks the whole inbox as read.
func (s *SessionService) MarkAllRead(ctx context.Context, id string) (*models.ViewSession, error) {
	return s.mutate(ctx, id, func(session *models.ViewSession) error {
		if session.View != models.ViewNotifications {
			return appErrors.Clone(appErrors.ErrUnsupportedView, "read state requires the notifications view")
		}
		session.Notifications = inbox.MarkAllRead(session.Notifications)
		return nil
	})
}

// Render builds the view model of session under its current selection.
func (s *SessionService) Render(ctx context.Context, session *models.ViewSession, page Page, lab *locale.Labeler) (*dto.SessionResponse, *models.Pagination, bool, error) {
	resp := &dto.SessionResponse{
		ID:        session.ID,
		View:      session.View,
		Selection: session.Selection,
		CreatedAt: session.CreatedAt.Format(time.RFC3339),
		UpdatedAt: session.UpdatedAt.Format(time.RFC3339),
	}

	var (
		pagination *models.Pagination
		hit        bool
		err        error
	)
	switch session.View {
	case models.ViewDashboard:
		resp.Payload, hit, err = s.dashboard.Overview(ctx, session.Selection, lab)
	case models.ViewActivities:
		resp.Payload, pagination, hit, err = s.activities.Render(ctx, session.Selection, page, lab)
	case models.ViewCredits:
		resp.Payload, pagination, hit, err = s.renderCredits(ctx, session.Selection, page, lab)
	case models.ViewUsers:
		resp.Payload, pagination, hit, err = s.users.Render(ctx, session.Selection, page, lab)
	case models.ViewNotifications:
		resp.Payload = s.notifications.Render(session.Notifications, session.Selection, lab)
	default:
		return nil, nil, false, appErrors.Clone(appErrors.ErrUnsupportedView, "unknown view: "+string(session.View))
	}
	if err != nil {
		return nil, nil, false, err
	}
	return resp, pagination, hit, nil
}

func (s *SessionService) renderCredits(ctx context.Context, sel models.SelectionState, page Page, lab *locale.Labeler) (*dto.CreditViewResponse, *models.Pagination, bool, error) {
	overview, overviewHit, err := s.credits.Overview(ctx, sel, lab)
	if err != nil {
		return nil, nil, false, err
	}
	students, pagination, studentsHit, err := s.credits.Students(ctx, sel, page, lab)
	if err != nil {
		return nil, nil, false, err
	}
	return &dto.CreditViewResponse{Overview: *overview, Students: *students}, pagination, overviewHit && studentsHit, nil
}

func (s *SessionService) mutate(ctx context.Context, id string, fn func(*models.ViewSession) error) (*models.ViewSession, error) {
	unlock := s.lock(id)
	defer unlock()

	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.storeError(id, err)
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	session.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}
	return session, nil
}

func (s *SessionService) lock(id string) func() {
	value, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *SessionService) storeError(id string, err error) error {
	if errors.Is(err, appErrors.ErrSessionNotFound) {
		s.locks.Delete(id)
		return err
	}
	s.logger.Error("session store failed", zap.String("session_id", id), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "session store unavailable")
}

func (s *SessionService) refreshGauge(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Warn("count sessions", zap.Error(err))
		return
	}
	s.metrics.SetActiveSessions(count)
}

func applyFilter(dst *string, value *string, sentinel string) {
	if value == nil {
		return
	}
	*dst = orSentinel(*value, sentinel)
}

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/models"
	"github.com/noah-isme/campus-credit-api/internal/repository"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
)

func newSessionService(t *testing.T) (*SessionService, *MetricsService) {
	t.Helper()
	datasets := newStaticDatasets()
	metrics := NewMetricsService()
	svc := NewSessionService(SessionServiceParams{
		Repository:    repository.NewMemorySessionRepository(time.Hour),
		Datasets:      datasets,
		Dashboard:     NewDashboardService(DashboardServiceParams{Datasets: datasets, Metrics: metrics}),
		Activities:    NewActivityService(datasets, metrics, nil, nil, 20),
		Credits:       NewCreditService(datasets, metrics, nil, nil, 20),
		Users:         NewUserAdminService(datasets, metrics, nil, nil, 20),
		Notifications: NewNotificationService(datasets, metrics, nil, nil),
		Metrics:       metrics,
		Logger:        zap.NewNop(),
	})
	return svc, metrics
}

func strPtr(s string) *string { return &s }

func TestSessionOpenAndClose(t *testing.T) {
	svc, metrics := newSessionService(t)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewActivities})
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.True(t, session.Selection.Equal(models.NewSelectionState()))
	assert.Nil(t, session.Notifications)
	assert.Equal(t, 1, metrics.Snapshot().ActiveSessions)

	require.NoError(t, svc.Close(ctx, session.ID))
	assert.Equal(t, 0, metrics.Snapshot().ActiveSessions)

	_, err = svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, appErrors.ErrSessionNotFound)
	assert.ErrorIs(t, svc.Close(ctx, session.ID), appErrors.ErrSessionNotFound)
}

func TestSessionOpenRejectsUnknownView(t *testing.T) {
	svc, _ := newSessionService(t)

	_, err := svc.Open(context.Background(), OpenSessionRequest{View: "reports"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Open(context.Background(), OpenSessionRequest{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestSessionUpdateFilters(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewActivities})
	require.NoError(t, err)

	updated, err := svc.UpdateFilters(ctx, session.ID, UpdateFiltersRequest{
		SearchTerm:     strPtr("大赛"),
		CategorySelect: strPtr("文艺活动"),
	})
	require.NoError(t, err)
	assert.Equal(t, "大赛", updated.Selection.SearchTerm)
	assert.Equal(t, "文艺活动", updated.Selection.CategorySelect)
	assert.Equal(t, models.AllStatuses, updated.Selection.StatusFilter)

	rendered, _, _, err := svc.Render(ctx, updated, Page{}, nil)
	require.NoError(t, err)
	list, ok := rendered.Payload.(*dto.ActivityListResponse)
	require.True(t, ok)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "校园歌手大赛", list.Items[0].Title)

	reset, err := svc.UpdateFilters(ctx, session.ID, UpdateFiltersRequest{CategorySelect: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, models.AllCategories, reset.Selection.CategorySelect)
	assert.Equal(t, "大赛", reset.Selection.SearchTerm)

	_, err = svc.UpdateFilters(ctx, session.ID, UpdateFiltersRequest{ReadFilter: strPtr("sometimes")})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestSessionSegmentToggle(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewDashboard})
	require.NoError(t, err)

	selected, err := svc.SelectSegment(ctx, session.ID, SelectSegmentRequest{Index: 1})
	require.NoError(t, err)
	require.NotNil(t, selected.Selection.ActivePieIndex)
	assert.Equal(t, 1, *selected.Selection.ActivePieIndex)
	assert.Equal(t, "志愿服务", selected.Selection.Category())

	rendered, _, _, err := svc.Render(ctx, selected, Page{}, nil)
	require.NoError(t, err)
	overview := rendered.Payload.(*dto.DashboardOverviewResponse)
	assert.Len(t, overview.Report.Rows, 2)

	replaced, err := svc.SelectSegment(ctx, session.ID, SelectSegmentRequest{Index: 2, Label: "文体活动"})
	require.NoError(t, err)
	assert.Equal(t, 2, *replaced.Selection.ActivePieIndex)
	assert.Equal(t, "文体活动", replaced.Selection.Category())

	cleared, err := svc.SelectSegment(ctx, session.ID, SelectSegmentRequest{Index: 2})
	require.NoError(t, err)
	assert.Nil(t, cleared.Selection.ActivePieIndex)
	assert.Nil(t, cleared.Selection.CategoryFilter)

	rendered, _, _, err = svc.Render(ctx, cleared, Page{}, nil)
	require.NoError(t, err)
	overview = rendered.Payload.(*dto.DashboardOverviewResponse)
	assert.Len(t, overview.Report.Rows, 8)
}

func TestSessionClearSegmentMatchesReselect(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	a, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewDashboard})
	require.NoError(t, err)
	b, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewDashboard})
	require.NoError(t, err)

	for _, id := range []string{a.ID, b.ID} {
		_, err := svc.SelectSegment(ctx, id, SelectSegmentRequest{Index: 3})
		require.NoError(t, err)
	}
	viaClear, err := svc.ClearSegment(ctx, a.ID)
	require.NoError(t, err)
	viaReselect, err := svc.SelectSegment(ctx, b.ID, SelectSegmentRequest{Index: 3})
	require.NoError(t, err)

	assert.True(t, viaClear.Selection.Equal(viaReselect.Selection))
}

func TestSessionSegmentValidation(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	dashboard, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewDashboard})
	require.NoError(t, err)

	_, err = svc.SelectSegment(ctx, dashboard.ID, SelectSegmentRequest{Index: -1})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = svc.SelectSegment(ctx, dashboard.ID, SelectSegmentRequest{Index: 5})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = svc.SelectSegment(ctx, dashboard.ID, SelectSegmentRequest{Index: 0, Label: "志愿服务"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	users, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewUsers})
	require.NoError(t, err)
	_, err = svc.SelectSegment(ctx, users.ID, SelectSegmentRequest{Index: 0})
	assert.ErrorIs(t, err, appErrors.ErrUnsupportedView)
	_, err = svc.ClearSegment(ctx, users.ID)
	assert.ErrorIs(t, err, appErrors.ErrUnsupportedView)
}

func TestSessionInboxTransitions(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewNotifications})
	require.NoError(t, err)
	require.Len(t, session.Notifications, 6)

	toggled, err := svc.ToggleRead(ctx, session.ID, 1)
	require.NoError(t, err)
	assert.True(t, toggled.Notifications[0].Read)

	unchanged, err := svc.ToggleRead(ctx, session.ID, 999)
	require.NoError(t, err)
	assert.Equal(t, toggled.Notifications, unchanged.Notifications)

	all, err := svc.MarkAllRead(ctx, session.ID)
	require.NoError(t, err)
	rendered, _, _, err := svc.Render(ctx, all, Page{}, nil)
	require.NoError(t, err)
	inboxView := rendered.Payload.(*dto.NotificationListResponse)
	assert.Equal(t, 0, inboxView.Counts.Unread)

	again, err := svc.ToggleRead(ctx, session.ID, 4)
	require.NoError(t, err)
	rendered, _, _, err = svc.Render(ctx, again, Page{}, nil)
	require.NoError(t, err)
	inboxView = rendered.Payload.(*dto.NotificationListResponse)
	assert.Equal(t, 1, inboxView.Counts.Unread)
	assert.Equal(t, 1, inboxView.Counts.UnreadAlerts)
}

func TestSessionInboxIsPerSession(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	a, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewNotifications})
	require.NoError(t, err)
	b, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewNotifications})
	require.NoError(t, err)

	_, err = svc.MarkAllRead(ctx, a.ID)
	require.NoError(t, err)

	other, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, other.Notifications[0].Read)

	activities, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewActivities})
	require.NoError(t, err)
	_, err = svc.MarkAllRead(ctx, activities.ID)
	assert.ErrorIs(t, err, appErrors.ErrUnsupportedView)
}

func TestSessionTransitionsAreSerialised(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewNotifications})
	require.NoError(t, err)

	const toggles = 50
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ToggleRead(ctx, session.ID, 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	// 50 flips of an initially read notification leave it read.
	assert.True(t, final.Notifications[2].Read)
}

func TestSessionRenderCreditsView(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewCredits})
	require.NoError(t, err)
	updated, err := svc.UpdateFilters(ctx, session.ID, UpdateFiltersRequest{StatusFilter: strPtr("completed")})
	require.NoError(t, err)

	rendered, pagination, _, err := svc.Render(ctx, updated, Page{}, nil)
	require.NoError(t, err)
	view := rendered.Payload.(*dto.CreditViewResponse)
	assert.Len(t, view.Students.Items, 3)
	assert.Equal(t, 3, pagination.TotalCount)
	assert.Equal(t, 6, view.Overview.Summary.Students)
}

func TestClearSegmentCountsOnlyRealClears(t *testing.T) {
	svc, metrics := newSessionService(t)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenSessionRequest{View: models.ViewDashboard})
	require.NoError(t, err)

	_, err = svc.ClearSegment(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.segmentSelections.WithLabelValues("clear")))

	_, err = svc.SelectSegment(ctx, session.ID, SelectSegmentRequest{Index: 1})
	require.NoError(t, err)
	cleared, err := svc.ClearSegment(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.Selection.ActivePieIndex)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.segmentSelections.WithLabelValues("select")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.segmentSelections.WithLabelValues("clear")))
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-credit-api/internal/crossfilter"
	"github.com/noah-isme/campus-credit-api/internal/models"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
)

func newDashboard() *DashboardService {
	return NewDashboardService(DashboardServiceParams{Datasets: newStaticDatasets()})
}

func TestDashboardOverviewWithoutSelection(t *testing.T) {
	svc := newDashboard()

	overview, _, err := svc.Overview(context.Background(), models.NewSelectionState(), nil)
	require.NoError(t, err)
	assert.Len(t, overview.StatCards, 4)
	assert.Len(t, overview.Trend.Data, 7)
	assert.Equal(t, models.ChartArea, overview.Trend.Options.Kind)
	assert.Nil(t, overview.Distribution.ActiveIndex)
	for _, seg := range overview.Distribution.Segments {
		assert.Equal(t, crossfilter.FullOpacity, seg.Opacity)
	}
	assert.Len(t, overview.Todos, 3)
	assert.Nil(t, overview.Report.ActiveCategory)
	assert.Len(t, overview.Report.Rows, 8)
	assert.False(t, overview.Report.Empty)
}

func TestDashboardCompletionTiers(t *testing.T) {
	svc := newDashboard()

	overview, _, err := svc.Overview(context.Background(), models.NewSelectionState(), nil)
	require.NoError(t, err)
	tiers := map[string]string{}
	for _, item := range overview.TopActivities {
		tiers[item.Name] = item.Tier
	}
	assert.Equal(t, TierHigh, tiers["校园歌手大赛"])
	assert.Equal(t, TierMedium, tiers["志愿者服务日"])
	assert.Equal(t, TierLow, tiers["学术论坛"])
	assert.Equal(t, TierHigh, tiers["篮球联赛"])
}

func TestDashboardOverviewFollowsPieSelection(t *testing.T) {
	svc := newDashboard()
	sel := crossfilter.Select(models.NewSelectionState(), 1, "志愿服务")

	overview, _, err := svc.Overview(context.Background(), sel, nil)
	require.NoError(t, err)
	require.NotNil(t, overview.Distribution.ActiveIndex)
	assert.Equal(t, 1, *overview.Distribution.ActiveIndex)
	assert.True(t, overview.Distribution.Segments[1].Active)
	assert.Equal(t, crossfilter.DimmedOpacity, overview.Distribution.Segments[0].Opacity)

	require.Len(t, overview.Report.Rows, 2)
	for _, row := range overview.Report.Rows {
		assert.Equal(t, "志愿服务", row.Category)
	}
	assert.Equal(t, "志愿服务", *overview.Report.ActiveCategory)
}

func TestDashboardReportByCategory(t *testing.T) {
	svc := newDashboard()
	ctx := context.Background()

	all, _, err := svc.Report(ctx, "", nil)
	require.NoError(t, err)
	assert.Len(t, all.Rows, 8)
	assert.Nil(t, all.ActiveIndex)

	practice, _, err := svc.Report(ctx, "社会实践", nil)
	require.NoError(t, err)
	assert.Len(t, practice.Rows, 2)
	require.NotNil(t, practice.ActiveIndex)
	assert.Equal(t, 0, *practice.ActiveIndex)

	other, _, err := svc.Report(ctx, "其他", nil)
	require.NoError(t, err)
	assert.Empty(t, other.Rows)
	assert.NotNil(t, other.Rows)
	assert.True(t, other.Empty)
	assert.Equal(t, "未找到数据", other.Message)
}

func TestDashboardReportRejectsUnknownCategory(t *testing.T) {
	_, _, err := newDashboard().Report(context.Background(), "不存在", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-credit-api/internal/crossfilter"
	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/filter"
	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/models"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
)

// Completion tiers of the top activities leaderboard.
const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

type dashboardDatasets interface {
	StatCards(ctx context.Context) ([]models.StatCard, bool, error)
	ActivityTrend(ctx context.Context) ([]models.ChartPoint, bool, error)
	CreditDistribution(ctx context.Context, scope models.DistributionScope) ([]models.ChartPoint, bool, error)
	TopActivities(ctx context.Context) ([]models.ActivityRanking, bool, error)
	TodoItems(ctx context.Context) ([]models.TodoItem, bool, error)
	CreditDetails(ctx context.Context) ([]models.CreditDetailRow, bool, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	HighCompletion   int
	MediumCompletion int
	ChartHeight      int
}

// DashboardService composes the overview dashboard and its cross-filtered report.
type DashboardService struct {
	datasets dashboardDatasets
	metrics  *MetricsService
	logger   *zap.Logger
	cfg      DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Datasets dashboardDatasets
	Metrics  *MetricsService
	Logger   *zap.Logger
	Config   DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.HighCompletion <= 0 {
		cfg.HighCompletion = 90
	}
	if cfg.MediumCompletion <= 0 {
		cfg.MediumCompletion = 80
	}
	if cfg.ChartHeight <= 0 {
		cfg.ChartHeight = 300
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		datasets: params.Datasets,
		metrics:  params.Metrics,
		logger:   logger,
		cfg:      cfg,
	}
}

// Overview renders the dashboard under sel. The pie selection in sel drives
// both the segment styling and the report table.
func (s *DashboardService) Overview(ctx context.Context, sel models.SelectionState, lab *locale.Labeler) (*dto.DashboardOverviewResponse, bool, error) {
	lab = labelerOrDefault(lab)
	cards, cardsHit, err := s.datasets.StatCards(ctx)
	if err != nil {
		return nil, false, err
	}
	trend, trendHit, err := s.datasets.ActivityTrend(ctx)
	if err != nil {
		return nil, false, err
	}
	distribution, distHit, err := s.datasets.CreditDistribution(ctx, models.DistributionDashboard)
	if err != nil {
		return nil, false, err
	}
	top, topHit, err := s.datasets.TopActivities(ctx)
	if err != nil {
		return nil, false, err
	}
	todos, todosHit, err := s.datasets.TodoItems(ctx)
	if err != nil {
		return nil, false, err
	}
	report, reportHit, err := s.report(ctx, sel, lab)
	if err != nil {
		return nil, false, err
	}

	trendOptions := crossfilter.DefaultOptions(models.ChartArea)
	trendOptions.Height = s.cfg.ChartHeight
	pie := pieView(distribution, sel.ActivePieIndex, false)
	pie.Options.Height = s.cfg.ChartHeight

	ranking := make([]dto.TopActivityItem, 0, len(top))
	for _, a := range top {
		ranking = append(ranking, dto.TopActivityItem{
			ID:           a.ID,
			Name:         a.Name,
			Participants: a.Participants,
			Completion:   a.Completion,
			Tier:         s.completionTier(a.Completion),
		})
	}

	hit := cardsHit && trendHit && distHit && topHit && todosHit && reportHit
	return &dto.DashboardOverviewResponse{
		StatCards:     cards,
		Trend:         dto.ChartView{Options: trendOptions, Data: trend},
		Distribution:  pie,
		TopActivities: ranking,
		Todos:         todos,
		Report:        *report,
	}, hit, nil
}

// Report renders the credit report filtered to category, as if the matching
// pie segment had been clicked. An empty category shows every row; a category
// missing from the pie is rejected.
func (s *DashboardService) Report(ctx context.Context, category string, lab *locale.Labeler) (*dto.CreditReportResponse, bool, error) {
	lab = labelerOrDefault(lab)
	sel := models.NewSelectionState()
	category = strings.TrimSpace(category)
	if category == "" {
		return s.report(ctx, sel, lab)
	}

	distribution, _, err := s.datasets.CreditDistribution(ctx, models.DistributionDashboard)
	if err != nil {
		return nil, false, err
	}
	index := -1
	for i, p := range distribution {
		if p.Name == category {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "unknown distribution category: "+category)
	}
	return s.report(ctx, crossfilter.Select(sel, index, category), lab)
}

func (s *DashboardService) report(ctx context.Context, sel models.SelectionState, lab *locale.Labeler) (*dto.CreditReportResponse, bool, error) {
	rows, hit, err := s.datasets.CreditDetails(ctx)
	if err != nil {
		return nil, false, err
	}
	matched := filter.CreditDetails(rows, sel.CategoryFilter)
	s.metrics.IncFilterEvaluation(models.ViewDashboard)

	items := make([]dto.CreditDetailItem, 0, len(matched))
	for _, r := range matched {
		items = append(items, dto.CreditDetailItem{
			ID:             r.ID,
			Category:       r.Category,
			Name:           r.Name,
			TotalCredits:   r.TotalCredits,
			StudentCount:   r.StudentCount,
			AverageCredits: r.AverageCredits,
		})
	}
	return &dto.CreditReportResponse{
		ActiveCategory: sel.CategoryFilter,
		ActiveIndex:    sel.ActivePieIndex,
		Rows:           items,
		EmptyState:     emptyState(len(matched), lab, "empty.report"),
	}, hit, nil
}

func (s *DashboardService) completionTier(completion int) string {
	switch {
	case completion >= s.cfg.HighCompletion:
		return TierHigh
	case completion >= s.cfg.MediumCompletion:
		return TierMedium
	default:
		return TierLow
	}
}

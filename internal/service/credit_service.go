package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-credit-api/internal/crossfilter"
	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/filter"
	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/models"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
)

type creditDatasets interface {
	StudentCredits(ctx context.Context) ([]models.StudentCredit, bool, error)
	CreditDistribution(ctx context.Context, scope models.DistributionScope) ([]models.ChartPoint, bool, error)
}

// StudentCreditListRequest is the query of the stateless student ledger.
type StudentCreditListRequest struct {
	Search   string `form:"search" validate:"max=100"`
	Status   string `form:"status" validate:"max=50"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// CreditService renders the credit system screen.
type CreditService struct {
	datasets        creditDatasets
	metrics         *MetricsService
	validator       *validator.Validate
	logger          *zap.Logger
	defaultPageSize int
}

// NewCreditService constructs a CreditService.
func NewCreditService(datasets creditDatasets, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, defaultPageSize int) *CreditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CreditService{datasets: datasets, metrics: metrics, validator: validate, logger: logger, defaultPageSize: defaultPageSize}
}

// Overview returns the credit category pie and the standing summary. The
// compliance rate counts students by status, not by percentage.
func (s *CreditService) Overview(ctx context.Context, sel models.SelectionState, lab *locale.Labeler) (*dto.CreditOverviewResponse, bool, error) {
	lab = labelerOrDefault(lab)
	points, distHit, err := s.datasets.CreditDistribution(ctx, models.DistributionCredits)
	if err != nil {
		return nil, false, err
	}
	students, studentsHit, err := s.datasets.StudentCredits(ctx)
	if err != nil {
		return nil, false, err
	}

	summary := dto.CreditSummary{Students: len(students)}
	for _, st := range students {
		switch st.Status {
		case models.CreditCompleted:
			summary.Completed++
		case models.CreditWarning:
			summary.Warning++
		case models.CreditDanger:
			summary.Danger++
		}
	}
	if summary.Students > 0 {
		summary.ComplianceRate = roundTo(float64(summary.Completed)/float64(summary.Students)*100, 1)
	}

	statuses := make([]dto.FilterOption, 0, len(models.CreditStatuses)+1)
	statuses = append(statuses, dto.FilterOption{Value: models.AllStatuses, Label: lab.Sentinel(models.AllStatuses)})
	for _, status := range models.CreditStatuses {
		statuses = append(statuses, dto.FilterOption{Value: string(status), Label: lab.CreditStatus(status)})
	}

	return &dto.CreditOverviewResponse{
		Distribution: pieView(points, sel.ActivePieIndex, true),
		Summary:      summary,
		Statuses:     statuses,
	}, distHit && studentsHit, nil
}

// List validates the query and renders the matching page of students.
func (s *CreditService) List(ctx context.Context, req StudentCreditListRequest, lab *locale.Labeler) (*dto.StudentCreditListResponse, *models.Pagination, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student query")
	}
	sel := models.NewSelectionState()
	sel.SearchTerm = req.Search
	sel.StatusFilter = orSentinel(req.Status, models.AllStatuses)
	return s.Students(ctx, sel, Page{Page: req.Page, PageSize: req.PageSize}, lab)
}

// Students filters the ledger under sel.
func (s *CreditService) Students(ctx context.Context, sel models.SelectionState, page Page, lab *locale.Labeler) (*dto.StudentCreditListResponse, *models.Pagination, bool, error) {
	lab = labelerOrDefault(lab)
	students, hit, err := s.datasets.StudentCredits(ctx)
	if err != nil {
		return nil, nil, false, err
	}

	matched := filter.StudentCredits(students, sel)
	s.metrics.IncFilterEvaluation(models.ViewCredits)

	window, pagination := paginate(matched, page.normalise(s.defaultPageSize))
	items := make([]dto.StudentCreditItem, 0, len(window))
	for _, st := range window {
		items = append(items, dto.StudentCreditItem{
			ID:              st.ID,
			Name:            st.Name,
			StudentID:       st.StudentID,
			TotalCredits:    st.TotalCredits,
			RequiredCredits: st.RequiredCredits,
			Percentage:      st.Percentage(),
			Status:          string(st.Status),
			StatusLabel:     lab.CreditStatus(st.Status),
		})
	}
	return &dto.StudentCreditListResponse{Items: items, EmptyState: emptyState(len(matched), lab, "empty.students")}, pagination, hit, nil
}

func pieView(points []models.ChartPoint, active *int, showLegend bool) dto.ChartView {
	opts := crossfilter.PieOptions(0, showLegend)
	return dto.ChartView{
		Options:     opts,
		Data:        points,
		Segments:    crossfilter.SegmentStyles(len(points), opts.Colors, active),
		ActiveIndex: active,
	}
}

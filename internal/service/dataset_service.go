package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-credit-api/internal/models"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
)

// DatasetRepository is the read-only source of every dashboard dataset.
type DatasetRepository interface {
	Activities(ctx context.Context) ([]models.Activity, error)
	ActivityCategories(ctx context.Context) ([]string, error)
	StudentCredits(ctx context.Context) ([]models.StudentCredit, error)
	CreditDetails(ctx context.Context) ([]models.CreditDetailRow, error)
	CreditDistribution(ctx context.Context, scope models.DistributionScope) ([]models.ChartPoint, error)
	Users(ctx context.Context) ([]models.User, error)
	Departments(ctx context.Context) ([]string, error)
	Notifications(ctx context.Context) ([]models.Notification, error)
	ActivityTrend(ctx context.Context) ([]models.ChartPoint, error)
	TopActivities(ctx context.Context) ([]models.ActivityRanking, error)
	StatCards(ctx context.Context) ([]models.StatCard, error)
	TodoItems(ctx context.Context) ([]models.TodoItem, error)
}

// DatasetService loads datasets from the configured source and keeps
// snapshots in the cache when caching is enabled. The boolean returned by
// each loader reports a cache hit.
type DatasetService struct {
	repo    DatasetRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewDatasetService constructs a dataset service.
func NewDatasetService(repo DatasetRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *DatasetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetService{repo: repo, cache: cache, metrics: metrics, logger: logger}
}

// Activities returns the activity listing.
func (s *DatasetService) Activities(ctx context.Context) ([]models.Activity, bool, error) {
	return loadDataset(ctx, s, "activities", s.repo.Activities)
}

// ActivityCategories returns the activity category options.
func (s *DatasetService) ActivityCategories(ctx context.Context) ([]string, bool, error) {
	return loadDataset(ctx, s, "activity_categories", s.repo.ActivityCategories)
}

// StudentCredits returns the student credit ledger.
func (s *DatasetService) StudentCredits(ctx context.Context) ([]models.StudentCredit, bool, error) {
	return loadDataset(ctx, s, "student_credits", s.repo.StudentCredits)
}

// CreditDetails returns the credit report rows.
func (s *DatasetService) CreditDetails(ctx context.Context) ([]models.CreditDetailRow, bool, error) {
	return loadDataset(ctx, s, "credit_details", s.repo.CreditDetails)
}

// CreditDistribution returns the pie slices of scope.
func (s *DatasetService) CreditDistribution(ctx context.Context, scope models.DistributionScope) ([]models.ChartPoint, bool, error) {
	return loadDataset(ctx, s, "credit_distribution:"+string(scope), func(ctx context.Context) ([]models.ChartPoint, error) {
		return s.repo.CreditDistribution(ctx, scope)
	})
}

// Users returns the administrative accounts.
func (s *DatasetService) Users(ctx context.Context) ([]models.User, bool, error) {
	return loadDataset(ctx, s, "users", s.repo.Users)
}

// Departments returns the department options.
func (s *DatasetService) Departments(ctx context.Context) ([]string, bool, error) {
	return loadDataset(ctx, s, "departments", s.repo.Departments)
}

// Notifications returns the initial inbox.
func (s *DatasetService) Notifications(ctx context.Context) ([]models.Notification, bool, error) {
	return loadDataset(ctx, s, "notifications", s.repo.Notifications)
}

// ActivityTrend returns the weekly participation trend.
func (s *DatasetService) ActivityTrend(ctx context.Context) ([]models.ChartPoint, bool, error) {
	return loadDataset(ctx, s, "activity_trend", s.repo.ActivityTrend)
}

// TopActivities returns the activity leaderboard.
func (s *DatasetService) TopActivities(ctx context.Context) ([]models.ActivityRanking, bool, error) {
	return loadDataset(ctx, s, "top_activities", s.repo.TopActivities)
}

// StatCards returns the headline figures.
func (s *DatasetService) StatCards(ctx context.Context) ([]models.StatCard, bool, error) {
	return loadDataset(ctx, s, "stat_cards", s.repo.StatCards)
}

// TodoItems returns the pending task counters.
func (s *DatasetService) TodoItems(ctx context.Context) ([]models.TodoItem, bool, error) {
	return loadDataset(ctx, s, "todo_items", s.repo.TodoItems)
}

// loadDataset serves name from the cache when possible. A failing cache is
// logged and bypassed; only a failing source is reported to the caller.
func loadDataset[T any](ctx context.Context, s *DatasetService, name string, load func(context.Context) ([]T, error)) ([]T, bool, error) {
	key := DatasetKey(name)
	if s.cache.Enabled() {
		var cached []T
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("dataset cache unavailable, reading source", zap.String("dataset", name), zap.Error(err))
		} else if hit {
			if cached == nil {
				cached = []T{}
			}
			return cached, true, nil
		}
	}

	start := time.Now()
	items, err := load(ctx)
	if err != nil {
		s.logger.Error("dataset load failed", zap.String("dataset", name), zap.Error(err))
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+name)
	}
	s.metrics.ObserveDatasetLoad(name, time.Since(start))
	if items == nil {
		items = []T{}
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, key, items, 0)
	}
	return items, false, nil
}

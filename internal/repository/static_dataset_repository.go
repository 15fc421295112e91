package repository

import (
	"context"
	"slices"

	"github.com/noah-isme/campus-credit-api/internal/models"
)

// StaticDatasetRepository serves the built-in mock datasets. Every call returns
// a fresh copy so callers can never modify the shared rows.
type StaticDatasetRepository struct{}

// NewStaticDatasetRepository constructs the static dataset source.
func NewStaticDatasetRepository() *StaticDatasetRepository {
	return &StaticDatasetRepository{}
}

// Activities returns the activity listing.
func (r *StaticDatasetRepository) Activities(context.Context) ([]models.Activity, error) {
	return slices.Clone(seedActivities), nil
}

// ActivityCategories returns the category options of the activity screen.
func (r *StaticDatasetRepository) ActivityCategories(context.Context) ([]string, error) {
	return slices.Clone(seedActivityCategories), nil
}

// StudentCredits returns the student credit ledger.
func (r *StaticDatasetRepository) StudentCredits(context.Context) ([]models.StudentCredit, error) {
	return slices.Clone(seedStudentCredits), nil
}

// CreditDetails returns the rows of the cross-filterable credit report.
func (r *StaticDatasetRepository) CreditDetails(context.Context) ([]models.CreditDetailRow, error) {
	return slices.Clone(seedCreditDetails), nil
}

// CreditDistribution returns the pie slices for scope.
func (r *StaticDatasetRepository) CreditDistribution(_ context.Context, scope models.DistributionScope) ([]models.ChartPoint, error) {
	switch scope {
	case models.DistributionCredits:
		return slices.Clone(seedCreditsDistribution), nil
	default:
		return slices.Clone(seedDashboardDistribution), nil
	}
}

// Users returns the administrative accounts.
func (r *StaticDatasetRepository) Users(context.Context) ([]models.User, error) {
	return slices.Clone(seedUsers), nil
}

// Departments returns the department options of the user admin screen.
func (r *StaticDatasetRepository) Departments(context.Context) ([]string, error) {
	return slices.Clone(seedDepartments), nil
}

// Notifications returns the initial inbox.
func (r *StaticDatasetRepository) Notifications(context.Context) ([]models.Notification, error) {
	return slices.Clone(seedNotifications), nil
}

// ActivityTrend returns participation over the last seven days.
func (r *StaticDatasetRepository) ActivityTrend(context.Context) ([]models.ChartPoint, error) {
	return slices.Clone(seedActivityTrend), nil
}

// TopActivities returns the leaderboard rows.
func (r *StaticDatasetRepository) TopActivities(context.Context) ([]models.ActivityRanking, error) {
	return slices.Clone(seedTopActivities), nil
}

// StatCards returns the headline figures.
func (r *StaticDatasetRepository) StatCards(context.Context) ([]models.StatCard, error) {
	return slices.Clone(seedStatCards), nil
}

// TodoItems returns pending tasks.
func (r *StaticDatasetRepository) TodoItems(context.Context) ([]models.TodoItem, error) {
	return slices.Clone(seedTodoItems), nil
}

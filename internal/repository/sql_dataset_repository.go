package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-credit-api/internal/models"
)

// SQLDatasetRepository reads the dashboard datasets from Postgres. It never writes.
type SQLDatasetRepository struct {
	db *sqlx.DB
}

// NewSQLDatasetRepository creates a new instance of SQLDatasetRepository.
func NewSQLDatasetRepository(db *sqlx.DB) *SQLDatasetRepository {
	return &SQLDatasetRepository{db: db}
}

// Activities returns every activity ordered by id.
func (r *SQLDatasetRepository) Activities(ctx context.Context) ([]models.Activity, error) {
	const query = `SELECT id, title, category, start_date, end_date, status, participants, credits FROM activities ORDER BY id`
	items := []models.Activity{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return items, nil
}

// ActivityCategories returns the distinct activity categories in first-seen order.
func (r *SQLDatasetRepository) ActivityCategories(ctx context.Context) ([]string, error) {
	const query = `SELECT category FROM activities GROUP BY category ORDER BY MIN(id)`
	items := []string{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list activity categories: %w", err)
	}
	return items, nil
}

// StudentCredits returns the credit ledger ordered by id.
func (r *SQLDatasetRepository) StudentCredits(ctx context.Context) ([]models.StudentCredit, error) {
	const query = `SELECT id, name, student_id, total_credits, required_credits, status FROM student_credits ORDER BY id`
	items := []models.StudentCredit{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list student credits: %w", err)
	}
	return items, nil
}

// CreditDetails returns the report rows ordered by id.
func (r *SQLDatasetRepository) CreditDetails(ctx context.Context) ([]models.CreditDetailRow, error) {
	const query = `SELECT id, category, name, total_credits, student_count, average_credits FROM credit_details ORDER BY id`
	items := []models.CreditDetailRow{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list credit details: %w", err)
	}
	return items, nil
}

// CreditDistribution returns the pie slices of scope in display order.
func (r *SQLDatasetRepository) CreditDistribution(ctx context.Context, scope models.DistributionScope) ([]models.ChartPoint, error) {
	const query = `SELECT name, value FROM credit_distribution WHERE scope = $1 ORDER BY position`
	items := []models.ChartPoint{}
	if err := r.db.SelectContext(ctx, &items, query, string(scope)); err != nil {
		return nil, fmt.Errorf("list credit distribution %s: %w", scope, err)
	}
	return items, nil
}

// Users returns administrative accounts ordered by id.
func (r *SQLDatasetRepository) Users(ctx context.Context) ([]models.User, error) {
	const query = `SELECT id, name, username, email, role, department, last_active FROM dashboard_users ORDER BY id`
	items := []models.User{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return items, nil
}

// Departments returns the distinct departments in first-seen order.
func (r *SQLDatasetRepository) Departments(ctx context.Context) ([]string, error) {
	const query = `SELECT department FROM dashboard_users GROUP BY department ORDER BY MIN(id)`
	items := []string{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return items, nil
}

// Notifications returns the inbox ordered by id.
func (r *SQLDatasetRepository) Notifications(ctx context.Context) ([]models.Notification, error) {
	const query = `SELECT id, title, message, type, time_label, read FROM notifications ORDER BY id`
	items := []models.Notification{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// ActivityTrend returns the participation trend in display order.
func (r *SQLDatasetRepository) ActivityTrend(ctx context.Context) ([]models.ChartPoint, error) {
	const query = `SELECT name, value FROM activity_trend ORDER BY position`
	items := []models.ChartPoint{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list activity trend: %w", err)
	}
	return items, nil
}

// TopActivities returns the leaderboard in display order.
func (r *SQLDatasetRepository) TopActivities(ctx context.Context) ([]models.ActivityRanking, error) {
	const query = `SELECT id, name, participants, completion FROM top_activities ORDER BY position`
	items := []models.ActivityRanking{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list top activities: %w", err)
	}
	return items, nil
}

// StatCards returns the headline figures in display order.
func (r *SQLDatasetRepository) StatCards(ctx context.Context) ([]models.StatCard, error) {
	const query = `SELECT key, title, value, trend_value, trend_positive, description FROM stat_cards ORDER BY position`
	items := []models.StatCard{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list stat cards: %w", err)
	}
	return items, nil
}

// TodoItems returns the pending task counters in display order.
func (r *SQLDatasetRepository) TodoItems(ctx context.Context) ([]models.TodoItem, error) {
	const query = `SELECT key, title, count, level FROM todo_items ORDER BY position`
	items := []models.TodoItem{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list todo items: %w", err)
	}
	return items, nil
}

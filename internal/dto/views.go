package dto

import "github.com/noah-isme/campus-credit-api/internal/models"

// FilterOption is one entry of a filter dropdown.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ChartView bundles chart data with its rendering options.
type ChartView struct {
	Options     models.ChartOptions   `json:"options"`
	Data        []models.ChartPoint   `json:"data"`
	Segments    []models.SegmentStyle `json:"segments,omitempty"`
	ActiveIndex *int                  `json:"activeIndex"`
}

// EmptyState tells the presentation layer to render a placeholder instead of rows.
type EmptyState struct {
	Empty   bool   `json:"empty"`
	Message string `json:"message,omitempty"`
}

// ActivityItem is an activity row with its localised status badge.
type ActivityItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Status       string  `json:"status"`
	StatusLabel  string  `json:"statusLabel"`
	Participants int     `json:"participants"`
	Credits      float64 `json:"credits"`
}

// ActivityFilterOptions lists the dropdown options of the activity screen.
type ActivityFilterOptions struct {
	Categories []FilterOption `json:"categories"`
	Statuses   []FilterOption `json:"statuses"`
}

// ActivityListResponse is the activity management view.
type ActivityListResponse struct {
	Items []ActivityItem `json:"items"`
	EmptyState
}

// StudentCreditItem is a student ledger row.
type StudentCreditItem struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	StudentID       string  `json:"studentId"`
	TotalCredits    float64 `json:"totalCredits"`
	RequiredCredits float64 `json:"requiredCredits"`
	Percentage      int     `json:"percentage"`
	Status          string  `json:"status"`
	StatusLabel     string  `json:"statusLabel"`
}

// StudentCreditListResponse is the student ledger table.
type StudentCreditListResponse struct {
	Items []StudentCreditItem `json:"items"`
	EmptyState
}

// CreditSummary counts students per credit standing.
type CreditSummary struct {
	Students       int     `json:"students"`
	Completed      int     `json:"completed"`
	Warning        int     `json:"warning"`
	Danger         int     `json:"danger"`
	ComplianceRate float64 `json:"complianceRate"`
}

// CreditOverviewResponse is the header of the credit system screen.
type CreditOverviewResponse struct {
	Distribution ChartView      `json:"distribution"`
	Summary      CreditSummary  `json:"summary"`
	Statuses     []FilterOption `json:"statuses"`
}

// UserItem is an administrative account row.
type UserItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	RoleLabel  string `json:"roleLabel"`
	Department string `json:"department"`
	LastActive string `json:"lastActive"`
}

// UserListResponse is the user admin view.
type UserListResponse struct {
	Items       []UserItem     `json:"items"`
	Roles       []FilterOption `json:"roles"`
	Departments []FilterOption `json:"departments"`
	EmptyState
}

// NotificationItem is an inbox row.
type NotificationItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	TypeLabel string `json:"typeLabel"`
	Time      string `json:"time"`
	Read      bool   `json:"read"`
}

// NotificationCounts are the inbox badges.
type NotificationCounts struct {
	Total        int `json:"total"`
	Unread       int `json:"unread"`
	UnreadAlerts int `json:"unreadAlerts"`
}

// NotificationListResponse is the notification center view.
type NotificationListResponse struct {
	Items  []NotificationItem `json:"items"`
	Counts NotificationCounts `json:"counts"`
	EmptyState
}

// CreditDetailItem is a row of the cross-filtered credit report.
type CreditDetailItem struct {
	ID             int64   `json:"id"`
	Category       string  `json:"category"`
	Name           string  `json:"name"`
	TotalCredits   int     `json:"totalCredits"`
	StudentCount   int     `json:"studentCount"`
	AverageCredits float64 `json:"averageCredits"`
}

// CreditReportResponse is the report table linked to the distribution pie.
type CreditReportResponse struct {
	ActiveCategory *string            `json:"activeCategory"`
	ActiveIndex    *int               `json:"activeIndex"`
	Rows           []CreditDetailItem `json:"rows"`
	EmptyState
}

// TopActivityItem is a leaderboard row with its completion tier.
type TopActivityItem struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Participants int    `json:"participants"`
	Completion   int    `json:"completion"`
	Tier         string `json:"tier"`
}

// DashboardOverviewResponse is the landing dashboard.
type DashboardOverviewResponse struct {
	StatCards     []models.StatCard    `json:"statCards"`
	Trend         ChartView            `json:"trend"`
	Distribution  ChartView            `json:"distribution"`
	TopActivities []TopActivityItem    `json:"topActivities"`
	Todos         []models.TodoItem    `json:"todos"`
	Report        CreditReportResponse `json:"report"`
}

// SessionResponse describes a view session and the view rendered under its selection.
type SessionResponse struct {
	ID        string                `json:"id"`
	View      models.View           `json:"view"`
	Selection models.SelectionState `json:"selection"`
	CreatedAt string                `json:"createdAt"`
	UpdatedAt string                `json:"updatedAt"`
	Payload   any                   `json:"payload"`
}

// CreditViewResponse is the credit system screen rendered for a session.
type CreditViewResponse struct {
	Overview CreditOverviewResponse    `json:"overview"`
	Students StudentCreditListResponse `json:"students"`
}

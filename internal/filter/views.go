package filter

import "github.com/noah-isme/campus-credit-api/internal/models"

// Activities filters by title search, category and status.
func Activities(items []models.Activity, sel models.SelectionState) []models.Activity {
	return Apply(items,
		func(a models.Activity) bool { return MatchText(sel.SearchTerm, a.Title) },
		func(a models.Activity) bool { return MatchCategory(sel.CategorySelect, a.Category, models.AllCategories) },
		func(a models.Activity) bool { return MatchCategory(sel.StatusFilter, string(a.Status), models.AllStatuses) },
	)
}

// StudentCredits filters by name or student number, and status.
func StudentCredits(items []models.StudentCredit, sel models.SelectionState) []models.StudentCredit {
	return Apply(items,
		func(s models.StudentCredit) bool { return MatchText(sel.SearchTerm, s.Name, s.StudentID) },
		func(s models.StudentCredit) bool { return MatchCategory(sel.StatusFilter, string(s.Status), models.AllStatuses) },
	)
}

// Users filters by name, username or email, then role and department.
func Users(items []models.User, sel models.SelectionState) []models.User {
	return Apply(items,
		func(u models.User) bool { return MatchText(sel.SearchTerm, u.Name, u.Username, u.Email) },
		func(u models.User) bool { return MatchCategory(sel.RoleFilter, string(u.Role), models.AllRoles) },
		func(u models.User) bool { return MatchCategory(sel.DepartmentFilter, u.Department, models.AllDepartment) },
	)
}

// Notifications filters by title or message, type and read state.
func Notifications(items []models.Notification, sel models.SelectionState) []models.Notification {
	return Apply(items,
		func(n models.Notification) bool { return MatchText(sel.SearchTerm, n.Title, n.Message) },
		func(n models.Notification) bool { return MatchCategory(sel.TypeFilter, string(n.Type), models.AllTypes) },
		func(n models.Notification) bool { return MatchReadState(sel.ReadFilter, n.Read) },
	)
}

// MatchReadState matches the inbox read filter. Unknown filter values match nothing.
func MatchReadState(filter string, read bool) bool {
	switch filter {
	case "", models.AllReadStates:
		return true
	case models.ReadStateUnread:
		return !read
	case models.ReadStateRead:
		return read
	default:
		return false
	}
}

// CreditDetails narrows the report table to the category chosen on the pie chart.
// A nil category leaves the table unfiltered.
func CreditDetails(items []models.CreditDetailRow, category *string) []models.CreditDetailRow {
	if category == nil {
		return Apply(items)
	}
	want := *category
	return Apply(items, func(r models.CreditDetailRow) bool { return r.Category == want })
}

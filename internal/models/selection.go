package models

// All-sentinel filter values. Each one means "no constraint" for its dimension.
const (
	AllCategories = "全部类型"
	AllStatuses   = "全部状态"
	AllRoles      = "全部角色"
	AllDepartment = "全部部门"
	AllTypes      = "全部类型"
	AllReadStates = "全部"
)

// Read-status filter values for the notification inbox.
const (
	ReadStateUnread = "未读"
	ReadStateRead   = "已读"
)

// SelectionState holds one view's active filter dimensions.
// CategoryFilter is driven by the pie chart link: it and ActivePieIndex are
// either both set or both nil. CategorySelect is the dropdown-driven category
// used by list screens.
type SelectionState struct {
	SearchTerm       string  `json:"searchTerm"`
	CategoryFilter   *string `json:"categoryFilter"`
	CategorySelect   string  `json:"categorySelect"`
	StatusFilter     string  `json:"statusFilter"`
	RoleFilter       string  `json:"roleFilter"`
	DepartmentFilter string  `json:"departmentFilter"`
	TypeFilter       string  `json:"typeFilter"`
	ReadFilter       string  `json:"readFilter"`
	ActivePieIndex   *int    `json:"activePieIndex"`
}

// NewSelectionState returns the "show all" state a view starts with.
func NewSelectionState() SelectionState {
	return SelectionState{
		CategorySelect:   AllCategories,
		StatusFilter:     AllStatuses,
		RoleFilter:       AllRoles,
		DepartmentFilter: AllDepartment,
		TypeFilter:       AllTypes,
		ReadFilter:       AllReadStates,
	}
}

// Category returns the chart-linked category, or the empty string when unset.
func (s SelectionState) Category() string {
	if s.CategoryFilter == nil {
		return ""
	}
	return *s.CategoryFilter
}

// Equal compares two states by value, including the pointer fields.
func (s SelectionState) Equal(other SelectionState) bool {
	if s.SearchTerm != other.SearchTerm ||
		s.CategorySelect != other.CategorySelect ||
		s.StatusFilter != other.StatusFilter ||
		s.RoleFilter != other.RoleFilter ||
		s.DepartmentFilter != other.DepartmentFilter ||
		s.TypeFilter != other.TypeFilter ||
		s.ReadFilter != other.ReadFilter {
		return false
	}
	if (s.CategoryFilter == nil) != (other.CategoryFilter == nil) {
		return false
	}
	if s.CategoryFilter != nil && *s.CategoryFilter != *other.CategoryFilter {
		return false
	}
	if (s.ActivePieIndex == nil) != (other.ActivePieIndex == nil) {
		return false
	}
	return s.ActivePieIndex == nil || *s.ActivePieIndex == *other.ActivePieIndex
}

// Clone returns a copy that shares no pointers with s.
func (s SelectionState) Clone() SelectionState {
	if s.CategoryFilter != nil {
		category := *s.CategoryFilter
		s.CategoryFilter = &category
	}
	if s.ActivePieIndex != nil {
		index := *s.ActivePieIndex
		s.ActivePieIndex = &index
	}
	return s
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectionStateShowsAll(t *testing.T) {
	state := NewSelectionState()

	assert.Empty(t, state.SearchTerm)
	assert.Nil(t, state.CategoryFilter)
	assert.Nil(t, state.ActivePieIndex)
	assert.Equal(t, AllStatuses, state.StatusFilter)
	assert.Equal(t, AllReadStates, state.ReadFilter)
	assert.Equal(t, "", state.Category())
}

func TestSelectionStateEqualComparesPointees(t *testing.T) {
	a, b := "志愿服务", "志愿服务"
	i, j := 1, 1
	left := NewSelectionState()
	right := NewSelectionState()
	left.CategoryFilter, left.ActivePieIndex = &a, &i
	right.CategoryFilter, right.ActivePieIndex = &b, &j

	assert.True(t, left.Equal(right))

	j = 2
	assert.False(t, left.Equal(right))
	assert.False(t, left.Equal(NewSelectionState()))
}

func TestStudentCreditPercentage(t *testing.T) {
	assert.Equal(t, 113, StudentCredit{TotalCredits: 22.5, RequiredCredits: 20}.Percentage())
	assert.Equal(t, 75, StudentCredit{TotalCredits: 15, RequiredCredits: 20}.Percentage())
	assert.Equal(t, 0, StudentCredit{TotalCredits: 5}.Percentage())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, ActivityUpcoming.Valid())
	assert.False(t, ActivityStatus("archived").Valid())
	assert.True(t, CreditDanger.Valid())
	assert.True(t, RoleClass.Valid())
	assert.False(t, UserRole("root").Valid())
	assert.True(t, NotificationCalendar.Valid())
	assert.True(t, ViewNotifications.Valid())
	assert.False(t, View("settings").Valid())
}

func TestSelectionCloneDetachesPointers(t *testing.T) {
	category := "志愿服务"
	index := 1
	state := NewSelectionState()
	state.CategoryFilter = &category
	state.ActivePieIndex = &index

	clone := state.Clone()
	require.True(t, clone.Equal(state))
	*clone.CategoryFilter = "其他"
	*clone.ActivePieIndex = 4

	assert.Equal(t, "志愿服务", *state.CategoryFilter)
	assert.Equal(t, 1, *state.ActivePieIndex)
}

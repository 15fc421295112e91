package models

import "math"

// CreditStatus is the precomputed standing of a student against the credit requirement.
type CreditStatus string

const (
	CreditCompleted CreditStatus = "completed"
	CreditWarning   CreditStatus = "warning"
	CreditDanger    CreditStatus = "danger"
)

// CreditStatuses lists statuses in display order.
var CreditStatuses = []CreditStatus{CreditCompleted, CreditWarning, CreditDanger}

// Valid reports whether the status is one of the known values.
func (s CreditStatus) Valid() bool {
	switch s {
	case CreditCompleted, CreditWarning, CreditDanger:
		return true
	}
	return false
}

// StudentCredit is one student's credit ledger summary. Status is authoritative;
// Percentage is derived for display and may disagree with it.
type StudentCredit struct {
	ID              int64        `db:"id" json:"id"`
	Name            string       `db:"name" json:"name"`
	StudentID       string       `db:"student_id" json:"student_id"`
	TotalCredits    float64      `db:"total_credits" json:"total_credits"`
	RequiredCredits float64      `db:"required_credits" json:"required_credits"`
	Status          CreditStatus `db:"status" json:"status"`
}

// Percentage returns total/required as a rounded percentage.
func (s StudentCredit) Percentage() int {
	if s.RequiredCredits <= 0 {
		return 0
	}
	return int(math.Round(s.TotalCredits / s.RequiredCredits * 100))
}

// CreditDetailRow feeds the cross-filterable credit report table.
type CreditDetailRow struct {
	ID             int64   `db:"id" json:"id"`
	Category       string  `db:"category" json:"category"`
	Name           string  `db:"name" json:"name"`
	TotalCredits   int     `db:"total_credits" json:"total_credits"`
	StudentCount   int     `db:"student_count" json:"student_count"`
	AverageCredits float64 `db:"average_credits" json:"average_credits"`
}

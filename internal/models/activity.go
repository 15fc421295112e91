package models

// ActivityStatus tracks the lifecycle stage of a campus activity.
type ActivityStatus string

const (
	ActivityCompleted ActivityStatus = "completed"
	ActivityActive    ActivityStatus = "active"
	ActivityUpcoming  ActivityStatus = "upcoming"
)

// ActivityStatuses lists statuses in display order.
var ActivityStatuses = []ActivityStatus{ActivityCompleted, ActivityActive, ActivityUpcoming}

// Valid reports whether the status is one of the known values.
func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityCompleted, ActivityActive, ActivityUpcoming:
		return true
	}
	return false
}

// Activity is a published campus activity that awards credits to participants.
type Activity struct {
	ID           int64          `db:"id" json:"id"`
	Title        string         `db:"title" json:"title"`
	Category     string         `db:"category" json:"category"`
	StartDate    string         `db:"start_date" json:"start_date"`
	EndDate      string         `db:"end_date" json:"end_date"`
	Status       ActivityStatus `db:"status" json:"status"`
	Participants int            `db:"participants" json:"participants"`
	Credits      float64        `db:"credits" json:"credits"`
}

// ActivityRanking is a row of the "top activities" leaderboard.
type ActivityRanking struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Participants int    `db:"participants" json:"participants"`
	Completion   int    `db:"completion" json:"completion"`
}

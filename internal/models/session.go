package models

import "time"

// View names a dashboard screen that owns its own selection state.
type View string

const (
	ViewDashboard     View = "dashboard"
	ViewActivities    View = "activities"
	ViewCredits       View = "credits"
	ViewUsers         View = "users"
	ViewNotifications View = "notifications"
)

// Views lists every screen a session can be opened for.
var Views = []View{ViewDashboard, ViewActivities, ViewCredits, ViewUsers, ViewNotifications}

// Valid reports whether the view is one of the known screens.
func (v View) Valid() bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}

// ViewSession is the state a mounted view owns until it is closed or expires.
// Notifications is only populated for the notifications view.
type ViewSession struct {
	ID            string         `json:"id"`
	View          View           `json:"view"`
	Selection     SelectionState `json:"selection"`
	Notifications []Notification `json:"notifications,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

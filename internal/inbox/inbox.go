// Package inbox holds the read-state transitions of the notification list.
// Every function returns a new slice and leaves its argument untouched.
package inbox

import "github.com/noah-isme/campus-credit-api/internal/models"

// Counts are the badge numbers shown above the inbox.
type Counts struct {
	Total        int `json:"total"`
	Unread       int `json:"unread"`
	UnreadAlerts int `json:"unreadAlerts"`
}

// ToggleRead flips the read flag of the notification with id. An unknown id
// yields an unchanged copy.
func ToggleRead(list []models.Notification, id int64) []models.Notification {
	out := make([]models.Notification, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i].Read = !out[i].Read
			break
		}
	}
	return out
}

// MarkAllRead marks every notification as read.
func MarkAllRead(list []models.Notification) []models.Notification {
	out := make([]models.Notification, len(list))
	for i, n := range list {
		n.Read = true
		out[i] = n
	}
	return out
}

// Contains reports whether id is present in list.
func Contains(list []models.Notification, id int64) bool {
	for _, n := range list {
		if n.ID == id {
			return true
		}
	}
	return false
}

// Count derives the inbox counters from the current list.
func Count(list []models.Notification) Counts {
	counts := Counts{Total: len(list)}
	for _, n := range list {
		if n.Read {
			continue
		}
		counts.Unread++
		if n.Type == models.NotificationAlert {
			counts.UnreadAlerts++
		}
	}
	return counts
}

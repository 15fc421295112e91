package models

// NotificationType categorises inbox messages.
type NotificationType string

const (
	NotificationAlert    NotificationType = "alert"
	NotificationSuccess  NotificationType = "success"
	NotificationInfo     NotificationType = "info"
	NotificationCalendar NotificationType = "calendar"
)

// NotificationTypes lists types in display order.
var NotificationTypes = []NotificationType{NotificationAlert, NotificationSuccess, NotificationInfo, NotificationCalendar}

// Valid reports whether the type is one of the known values.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationAlert, NotificationSuccess, NotificationInfo, NotificationCalendar:
		return true
	}
	return false
}

// Notification is an inbox message. Read is the only field mutated within a session.
type Notification struct {
	ID      int64            `db:"id" json:"id"`
	Title   string           `db:"title" json:"title"`
	Message string           `db:"message" json:"message"`
	Type    NotificationType `db:"type" json:"type"`
	Time    string           `db:"time_label" json:"time"`
	Read    bool             `db:"read" json:"read"`
}

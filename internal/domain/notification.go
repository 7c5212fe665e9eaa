package domain

import "time"

// Notification is the broadcast content shared by all recipients.
type Notification struct {
	Title      string
	Message    string
	Importance Importance
	CreatedAt  time.Time
}

// UserNotification is one recipient's copy of a notification.
// ID is the user-notification id used by mark-as-read.
type UserNotification struct {
	ID           int64
	Notification Notification
	IsRead       bool
}

// BroadcastPayload is what the composer submits. When ToAll is set the
// recipient list is not sent at all.
type BroadcastPayload struct {
	Title      string
	Message    string
	Importance Importance
	ToAll      bool
	Usernames  []string
}

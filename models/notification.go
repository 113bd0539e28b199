package models

import "time"

// Notification is a stored in-app notification, optionally mirrored as an
// FCM push. Dashboards poll the list endpoint and mark entries read.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	UserID    string            `bson:"userId" json:"userId"`
	Role      string            `bson:"role" json:"role"`
	Type      string            `bson:"type" json:"type"`
	Message   string            `bson:"message" json:"message"`
	Data      map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	IsRead    bool              `bson:"isRead" json:"isRead"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}

// ReminderPayload is the asynq task payload for session reminders.
type ReminderPayload struct {
	BookingID   string `json:"bookingId"`
	ClientID    string `json:"clientId"`
	CounselorID string `json:"counselorId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
}

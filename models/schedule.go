package models

import "time"

// Date and clock formats used throughout the schedule collection.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ScheduleSlot is a counselor-defined bookable time interval on a given date.
// End time is always start + 1h; non-standard session lengths do not exist.
type ScheduleSlot struct {
	ID          string    `bson:"id" json:"id"`
	CounselorID string    `bson:"counselorId" json:"counselorId"`
	Date        string    `bson:"date" json:"date"`           // "YYYY-MM-DD"
	StartTime   string    `bson:"startTime" json:"startTime"` // "HH:MM", 24h clock
	EndTime     string    `bson:"endTime" json:"endTime"`
	IsAvailable bool      `bson:"isAvailable" json:"isAvailable"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

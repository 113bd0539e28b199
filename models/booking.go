package models

import "time"

// Booking statuses.
const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Booking represents a confirmed counseling session. Bookings are only ever
// created through the payment flow, never directly.
type Booking struct {
	ID                   string    `bson:"id" json:"id"`
	ClientID             string    `bson:"clientId" json:"clientId"`
	CounselorID          string    `bson:"counselorId" json:"counselorId"`
	ScheduleID           string    `bson:"scheduleId" json:"scheduleId"`
	Date                 string    `bson:"date" json:"date"`
	StartTime            string    `bson:"startTime" json:"startTime"`
	EndTime              string    `bson:"endTime" json:"endTime"`
	TransactionReference string    `bson:"transactionReference" json:"transactionReference"`
	ZoomJoinURL          string    `bson:"zoomJoinUrl" json:"zoomJoinUrl"`
	ZoomStartURL         string    `bson:"zoomStartUrl" json:"zoomStartUrl"`
	Status               string    `bson:"status" json:"status"`
	CreatedAt            time.Time `bson:"createdAt" json:"createdAt"`
}

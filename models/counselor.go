package models

import "time"

// Counselor availability status values.
const (
	CounselorStatusActive   = "ACTIVE"
	CounselorStatusInactive = "INACTIVE"
)

// CounselorProfile captures the professional details a counselor fills in
// after signup. Slots, articles and bookings are gated on Status + IsApproved.
type CounselorProfile struct {
	UserID          string    `bson:"userId" json:"userId"`
	Bio             string    `bson:"bio" json:"bio"`
	Specialization  string    `bson:"specialization" json:"specialization"`
	LanguagesSpoken []string  `bson:"languagesSpoken" json:"languagesSpoken"`
	Status          string    `bson:"status" json:"status"`
	IsApproved      bool      `bson:"isApproved" json:"isApproved"`
	ProfilePicture  string    `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	CertificateURL  string    `bson:"certificateUrl,omitempty" json:"certificateUrl,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Bookable reports whether the counselor may publish availability and be booked.
func (p CounselorProfile) Bookable() bool {
	return p.Status == CounselorStatusActive && p.IsApproved
}

// CounselorSummary is the projection shown in listings and carried inside a
// booking wizard session.
type CounselorSummary struct {
	UserID         string `bson:"userId" json:"userId"`
	FirstName      string `bson:"firstName" json:"firstName"`
	LastName       string `bson:"lastName" json:"lastName"`
	Specialization string `bson:"specialization" json:"specialization"`
	ProfilePicture string `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
}

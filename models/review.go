package models

import "time"

// Review is a client's rating of a counselor. One review per
// client–counselor pair.
type Review struct {
	ID          string    `bson:"id" json:"id"`
	CounselorID string    `bson:"counselorId" json:"counselorId"`
	ClientID    string    `bson:"clientId" json:"clientId"`
	Rating      int       `bson:"rating" json:"rating"` // 1..5
	Comment     string    `bson:"comment" json:"comment"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// ReviewAverage is the aggregated rating for one counselor.
type ReviewAverage struct {
	CounselorID   string  `bson:"_id" json:"counselorId"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	ReviewCount   int     `bson:"reviewCount" json:"reviewCount"`
}

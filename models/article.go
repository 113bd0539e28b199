package models

import "time"

// Article is a counselor-authored post shown on the public articles page.
type Article struct {
	ID          string    `bson:"id" json:"id"`
	CounselorID string    `bson:"counselorId" json:"counselorId"`
	Title       string    `bson:"title" json:"title"`
	Content     string    `bson:"content" json:"content"`
	CoverImage  string    `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

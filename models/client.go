package models

import "time"

// ClientProfile holds the demographic details a client adds after signup.
type ClientProfile struct {
	UserID         string    `bson:"userId" json:"userId"`
	Phone          string    `bson:"phone" json:"phone"`
	Address        string    `bson:"address" json:"address"`
	Gender         string    `bson:"gender" json:"gender"`
	MaritalStatus  string    `bson:"maritalStatus" json:"maritalStatus"`
	ProfilePicture string    `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

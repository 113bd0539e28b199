package bookingRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"unityconsult/database"
	"unityconsult/models"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByTransactionReference(ctx context.Context, txRef string) (*models.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)
	ListByCounselor(ctx context.Context, counselorID string) ([]models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	UpdateSchedule(ctx context.Context, bookingID, scheduleID, date, startTime, endTime string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{coll: database.DB().Collection("bookings")}
}

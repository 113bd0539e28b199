package scheduleRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"unityconsult/database"
	"unityconsult/models"
)

// ErrSlotUnavailable is returned by MarkBooked when the slot does not exist
// or has already been reserved by a concurrent booking.
var ErrSlotUnavailable = errors.New("slot is not available")

type ScheduleRepository interface {
	Create(ctx context.Context, slot *models.ScheduleSlot) error
	DeleteByID(ctx context.Context, counselorID, slotID string) error
	GetByID(ctx context.Context, slotID string) (*models.ScheduleSlot, error)
	GetByCounselorAndDate(ctx context.Context, counselorID, date string) ([]models.ScheduleSlot, error)
	GetAvailableInRange(ctx context.Context, counselorID, startDate, endDate string) ([]models.ScheduleSlot, error)
	MarkBooked(ctx context.Context, slotID string) error
	MarkAvailable(ctx context.Context, slotID string) error
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	return &mongoScheduleRepo{coll: database.DB().Collection("schedule_slots")}
}

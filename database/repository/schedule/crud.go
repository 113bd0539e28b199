package scheduleRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"unityconsult/models"
)

const opTimeout = 5 * time.Second

func (r *mongoScheduleRepo) Create(ctx context.Context, slot *models.ScheduleSlot) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, slot)
	return err
}

func (r *mongoScheduleRepo) DeleteByID(ctx context.Context, counselorID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": slotID, "counselorId": counselorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoScheduleRepo) GetByID(ctx context.Context, slotID string) (*models.ScheduleSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var slot models.ScheduleSlot
	err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *mongoScheduleRepo) GetByCounselorAndDate(ctx context.Context, counselorID, date string) ([]models.ScheduleSlot, error) {
	return r.find(ctx, bson.M{"counselorId": counselorID, "date": date})
}

func (r *mongoScheduleRepo) GetAvailableInRange(ctx context.Context, counselorID, startDate, endDate string) ([]models.ScheduleSlot, error) {
	filter := bson.M{
		"counselorId": counselorID,
		"isAvailable": true,
		"date":        bson.M{"$gte": startDate, "$lte": endDate},
	}
	return r.find(ctx, filter)
}

func (r *mongoScheduleRepo) find(ctx context.Context, filter bson.M) ([]models.ScheduleSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.ScheduleSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// MarkBooked reserves a slot with a conditional update: only a document that
// is still available matches, so two concurrent confirmations for the same
// slot cannot both succeed.
func (r *mongoScheduleRepo) MarkBooked(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": slotID, "isAvailable": true},
		bson.M{"$set": bson.M{"isAvailable": false}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSlotUnavailable
	}
	return nil
}

func (r *mongoScheduleRepo) MarkAvailable(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": slotID},
		bson.M{"$set": bson.M{"isAvailable": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

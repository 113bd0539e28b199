package reviewRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"unityconsult/models"
)

const opTimeout = 5 * time.Second

func (r *mongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, review)
	return err
}

func (r *mongoReviewRepo) GetByPair(ctx context.Context, clientID, counselorID string) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var review models.Review
	err := r.coll.FindOne(ctx, bson.M{"clientId": clientID, "counselorId": counselorID}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *mongoReviewRepo) ListByClient(ctx context.Context, clientID string) ([]models.Review, error) {
	return r.find(ctx, bson.M{"clientId": clientID})
}

func (r *mongoReviewRepo) ListByCounselor(ctx context.Context, counselorID string) ([]models.Review, error) {
	return r.find(ctx, bson.M{"counselorId": counselorID})
}

func (r *mongoReviewRepo) find(ctx context.Context, filter bson.M) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

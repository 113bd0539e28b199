package reviewRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"unityconsult/database"
	"unityconsult/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByPair(ctx context.Context, clientID, counselorID string) (*models.Review, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Review, error)
	ListByCounselor(ctx context.Context, counselorID string) ([]models.Review, error)
	Averages(ctx context.Context) ([]models.ReviewAverage, error)
}

type mongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo constructs a new MongoDB ReviewRepository.
func NewMongoReviewRepo() ReviewRepository {
	return &mongoReviewRepo{coll: database.DB().Collection("reviews")}
}

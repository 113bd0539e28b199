package clientRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"unityconsult/database"
	"unityconsult/models"
)

type ClientRepository interface {
	Upsert(ctx context.Context, profile *models.ClientProfile) error
	GetByUserID(ctx context.Context, userID string) (*models.ClientProfile, error)
	ListAll(ctx context.Context) ([]models.ClientProfile, error)
}

type mongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo constructs a new MongoDB ClientRepository.
func NewMongoClientRepo() ClientRepository {
	return &mongoClientRepo{coll: database.DB().Collection("client_profiles")}
}

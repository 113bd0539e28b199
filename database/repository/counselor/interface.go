package counselorRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"unityconsult/database"
	"unityconsult/models"
)

type CounselorRepository interface {
	Upsert(ctx context.Context, profile *models.CounselorProfile) error
	GetByUserID(ctx context.Context, userID string) (*models.CounselorProfile, error)
	ListBookable(ctx context.Context) ([]models.CounselorProfile, error)
	ListAll(ctx context.Context) ([]models.CounselorProfile, error)
	SetApproval(ctx context.Context, userID string, approved bool) error
	SetStatus(ctx context.Context, userID, status string) error
}

type mongoCounselorRepo struct {
	coll *mongo.Collection
}

// NewMongoCounselorRepo constructs a new MongoDB CounselorRepository.
func NewMongoCounselorRepo() CounselorRepository {
	return &mongoCounselorRepo{coll: database.DB().Collection("counselor_profiles")}
}

package counselorRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"unityconsult/models"
)

const opTimeout = 5 * time.Second

func (r *mongoCounselorRepo) Upsert(ctx context.Context, profile *models.CounselorProfile) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"userId": profile.UserID}, profile, opts)
	return err
}

func (r *mongoCounselorRepo) GetByUserID(ctx context.Context, userID string) (*models.CounselorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var profile models.CounselorProfile
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *mongoCounselorRepo) ListBookable(ctx context.Context) ([]models.CounselorProfile, error) {
	return r.list(ctx, bson.M{"status": models.CounselorStatusActive, "isApproved": true})
}

func (r *mongoCounselorRepo) ListAll(ctx context.Context) ([]models.CounselorProfile, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoCounselorRepo) list(ctx context.Context, filter bson.M) ([]models.CounselorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.CounselorProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *mongoCounselorRepo) SetApproval(ctx context.Context, userID string, approved bool) error {
	return r.setField(ctx, userID, bson.M{"isApproved": approved})
}

func (r *mongoCounselorRepo) SetStatus(ctx context.Context, userID, status string) error {
	return r.setField(ctx, userID, bson.M{"status": status})
}

func (r *mongoCounselorRepo) setField(ctx context.Context, userID string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

package paymentRepo

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

func (r *mongoPaymentRepo) Create(ctx context.Context, tx *models.PaymentTransaction) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	_, err := r.coll.InsertOne(ctx, tx)
	return err
}

func (r *mongoPaymentRepo) GetByReference(ctx context.Context, txRef string) (*models.PaymentTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var tx models.PaymentTransaction
	err := r.coll.FindOne(ctx, bson.M{"transactionReference": txRef}).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *mongoPaymentRepo) UpdateStatus(ctx context.Context, txRef, status string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"transactionReference": txRef},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkVerified stamps the verification result and returns the updated record.
func (r *mongoPaymentRepo) MarkVerified(ctx context.Context, txRef, status string) (*models.PaymentTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var tx models.PaymentTransaction
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"transactionReference": txRef},
		bson.M{"$set": bson.M{"status": status, "verifiedAt": now}},
		opts,
	).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

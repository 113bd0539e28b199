package paymentRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"unityconsult/database"
	"unityconsult/models"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *models.PaymentTransaction) error
	GetByReference(ctx context.Context, txRef string) (*models.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, txRef, status string) error
	MarkVerified(ctx context.Context, txRef, status string) (*models.PaymentTransaction, error)
}

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo constructs a new MongoDB PaymentRepository.
func NewMongoPaymentRepo() PaymentRepository {
	return &mongoPaymentRepo{coll: database.DB().Collection("payment_transactions")}
}

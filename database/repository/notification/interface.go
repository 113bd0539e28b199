package notificationRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"unityconsult/database"
	"unityconsult/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, role, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID string, ids []string) (int64, error)
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo constructs a new MongoDB NotificationRepository.
func NewMongoNotificationRepo() NotificationRepository {
	return &mongoNotificationRepo{coll: database.DB().Collection("notifications")}
}

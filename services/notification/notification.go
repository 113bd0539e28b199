package notification

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	notificationRepo "unityconsult/database/repository/notification"
	userRepo "unityconsult/database/repository/user"
	"unityconsult/models"
	"unityconsult/utils"
)

// Notification types emitted by the platform.
const (
	TypeBookingConfirmed   = "booking_confirmed"
	TypePaymentResult      = "payment_result"
	TypeCounselorApproved  = "counselor_approved"
	TypeSessionReminder    = "session_reminder"
	TypeBookingRescheduled = "booking_rescheduled"
)

// NotificationService stores in-app notifications and mirrors them as
// best-effort FCM pushes.
type NotificationService interface {
	Notify(ctx context.Context, userID, role, notifType, message string, data map[string]string) error
	ListForRecipient(ctx context.Context, role, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID string, ids []string) (int64, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo     notificationRepo.NotificationRepository
	UserRepo userRepo.UserRepository
}

// Notify persists the notification, then attempts a push. Push failures are
// logged and never surface to the caller.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, role, notifType, message string, data map[string]string) error {
	n := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Role:      role,
		Type:      notifType,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if err := s.push(ctx, userID, notifType, message, data); err != nil {
		utils.GetLogger().Warn("push notification failed",
			zap.String("userId", userID), zap.Error(err))
	}
	return nil
}

func (s *DefaultNotificationService) push(ctx context.Context, userID, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		return nil
	}
	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not find user %s: %w", userID, err)
	}
	if u == nil || u.FCMToken == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}

func (s *DefaultNotificationService) ListForRecipient(ctx context.Context, role, userID string) ([]models.Notification, error) {
	return s.Repo.ListByRecipient(ctx, role, userID)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.Repo.MarkRead(ctx, userID, ids)
}

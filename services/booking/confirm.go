package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"unityconsult/config"
	bookingRepo "unityconsult/database/repository/booking"
	scheduleRepo "unityconsult/database/repository/schedule"
	"unityconsult/models"
	"unityconsult/services/notification"
	"unityconsult/services/payment"
	"unityconsult/utils"
)

// ConfirmationResult is what the confirmation step renders: the verified
// payment and, when the charge succeeded, the created booking.
type ConfirmationResult struct {
	Payment *models.PaymentTransaction `json:"payment"`
	Booking *models.Booking            `json:"booking,omitempty"`
}

// ConfirmationService completes the wizard after the gateway callback.
type ConfirmationService struct {
	Wizard       WizardService
	Payments     payment.PaymentService
	ScheduleRepo scheduleRepo.ScheduleRepository
	BookingRepo  bookingRepo.BookingRepository
	Notifier     notification.NotificationService
}

// ConfirmFromCallback verifies the transaction and, on success, creates the
// booking. It is idempotent: re-entering with an already-processed reference
// returns the stored outcome. The booking is built from the transaction
// record rather than the wizard session, so confirmation still works if the
// session expired during the gateway round trip.
func (s *ConfirmationService) ConfirmFromCallback(ctx context.Context, txRef string) (*ConfirmationResult, error) {
	if txRef == "" {
		return nil, ErrInconsistentState
	}

	tx, err := s.Payments.VerifyPayment(ctx, txRef)
	if err != nil {
		return nil, err
	}

	result := &ConfirmationResult{Payment: tx}
	if tx.Status != models.PaymentStatusSuccess {
		return result, nil
	}

	existing, err := s.BookingRepo.GetByTransactionReference(ctx, txRef)
	if err != nil {
		return nil, fmt.Errorf("failed to look up booking: %w", err)
	}
	if existing != nil {
		result.Booking = existing
		return result, nil
	}

	slot, err := s.ScheduleRepo.GetByID(ctx, tx.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slot: %w", err)
	}
	if slot == nil {
		return nil, ErrSlotRequired
	}

	// Conditional reservation: if another client's callback already took
	// this slot under a different transaction reference, this charge must
	// not produce a second booking.
	if err := s.ScheduleRepo.MarkBooked(ctx, slot.ID); err != nil {
		if errors.Is(err, scheduleRepo.ErrSlotUnavailable) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to reserve slot: %w", err)
	}

	meetingID := uuid.New().String()
	booking := &models.Booking{
		ID:                   uuid.New().String(),
		ClientID:             tx.ClientID,
		CounselorID:          tx.CounselorID,
		ScheduleID:           slot.ID,
		Date:                 slot.Date,
		StartTime:            slot.StartTime,
		EndTime:              slot.EndTime,
		TransactionReference: txRef,
		ZoomJoinURL:          fmt.Sprintf("%s/j/%s", config.AppConfig.MeetingBaseURL, meetingID),
		ZoomStartURL:         fmt.Sprintf("%s/s/%s", config.AppConfig.MeetingBaseURL, meetingID),
		Status:               models.BookingStatusConfirmed,
		CreatedAt:            tx.CreatedAt,
	}
	if tx.VerifiedAt != nil {
		booking.CreatedAt = *tx.VerifiedAt
	}
	if err := s.BookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	result.Booking = booking

	// Move the wizard to its terminal step and drop the session. Both are
	// best-effort: the booking is already durable.
	if session, err := s.Wizard.EnterConfirmation(ctx, txRef); err == nil {
		if err := s.Wizard.Cancel(ctx, session.SessionID); err != nil {
			utils.GetLogger().Warn("failed to discard completed session", zap.Error(err))
		}
	}

	s.notifyBooked(ctx, booking)
	return result, nil
}

func (s *ConfirmationService) notifyBooked(ctx context.Context, b *models.Booking) {
	data := map[string]string{
		"bookingId": b.ID,
		"date":      b.Date,
		"startTime": b.StartTime,
	}
	msg := fmt.Sprintf("Session booked for %s at %s.", b.Date, b.StartTime)
	if err := s.Notifier.Notify(ctx, b.ClientID, models.RoleClient, notification.TypeBookingConfirmed, msg, data); err != nil {
		utils.GetLogger().Warn("failed to notify client", zap.Error(err))
	}
	if err := s.Notifier.Notify(ctx, b.CounselorID, models.RoleCounselor, notification.TypeBookingConfirmed, msg, data); err != nil {
		utils.GetLogger().Warn("failed to notify counselor", zap.Error(err))
	}
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	scheduleRepo "unityconsult/database/repository/schedule"
	"unityconsult/models"
	"unityconsult/services/notification"
	"unityconsult/services/schedule"
	"unityconsult/utils"
)

// Reschedule moves a confirmed booking to a different available slot owned
// by the same counselor. The flow is re-derived from the booking id on every
// call, so a page reload mid-flow loses nothing.
func (s *ConfirmationService) Reschedule(ctx context.Context, clientID, bookingID, newSlotID string) (*models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil || booking.ClientID != clientID {
		return nil, ErrBookingNotFound
	}

	newSlot, err := s.ScheduleRepo.GetByID(ctx, newSlotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	if newSlot == nil || !newSlot.IsAvailable || newSlot.CounselorID != booking.CounselorID {
		return nil, ErrSlotTaken
	}

	day, err := time.Parse(models.DateLayout, newSlot.Date)
	if err != nil || schedule.IsPastDate(day, time.Now()) {
		return nil, ErrPastDate
	}

	if err := s.ScheduleRepo.MarkBooked(ctx, newSlot.ID); err != nil {
		if errors.Is(err, scheduleRepo.ErrSlotUnavailable) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to reserve slot: %w", err)
	}
	if err := s.BookingRepo.UpdateSchedule(ctx, booking.ID, newSlot.ID, newSlot.Date, newSlot.StartTime, newSlot.EndTime); err != nil {
		// Release the reservation we just took.
		if rbErr := s.ScheduleRepo.MarkAvailable(ctx, newSlot.ID); rbErr != nil {
			utils.GetLogger().Error("failed to release slot after reschedule failure", zap.Error(rbErr))
		}
		return nil, fmt.Errorf("failed to move booking: %w", err)
	}
	if err := s.ScheduleRepo.MarkAvailable(ctx, booking.ScheduleID); err != nil {
		utils.GetLogger().Warn("failed to free previous slot", zap.String("slotId", booking.ScheduleID), zap.Error(err))
	}

	booking.ScheduleID = newSlot.ID
	booking.Date = newSlot.Date
	booking.StartTime = newSlot.StartTime
	booking.EndTime = newSlot.EndTime

	data := map[string]string{"bookingId": booking.ID, "date": booking.Date, "startTime": booking.StartTime}
	msg := fmt.Sprintf("Session moved to %s at %s.", booking.Date, booking.StartTime)
	if err := s.Notifier.Notify(ctx, booking.CounselorID, models.RoleCounselor, notification.TypeBookingRescheduled, msg, data); err != nil {
		utils.GetLogger().Warn("failed to notify counselor of reschedule", zap.Error(err))
	}
	return booking, nil
}

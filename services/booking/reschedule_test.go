package booking

import (
	"context"
	"errors"
	"testing"

	"unityconsult/models"
)

func newRescheduleFixture() (*ConfirmationService, *fakeBookingRepo, *fakeScheduleRepoForConfirm) {
	svc, bookings, scheduleRepo, _ := newTestConfirmation(models.PaymentStatusSuccess)

	bookings.bookings["b1"] = &models.Booking{
		ID:          "b1",
		ClientID:    "client-1",
		CounselorID: "c1",
		ScheduleID:  "slot-old",
		Date:        "2030-01-10",
		StartTime:   "09:00",
		EndTime:     "10:00",
		Status:      models.BookingStatusConfirmed,
	}
	scheduleRepo.slots["slot-old"] = &models.ScheduleSlot{
		ID: "slot-old", CounselorID: "c1", Date: "2030-01-10",
		StartTime: "09:00", EndTime: "10:00", IsAvailable: false,
	}
	scheduleRepo.slots["slot-new"] = &models.ScheduleSlot{
		ID: "slot-new", CounselorID: "c1", Date: "2030-01-12",
		StartTime: "14:00", EndTime: "15:00", IsAvailable: true,
	}
	scheduleRepo.slots["slot-other"] = &models.ScheduleSlot{
		ID: "slot-other", CounselorID: "c9", Date: "2030-01-12",
		StartTime: "14:00", EndTime: "15:00", IsAvailable: true,
	}
	return svc, bookings, scheduleRepo
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("moves booking and swaps slot availability", func(t *testing.T) {
		svc, bookings, scheduleRepo := newRescheduleFixture()

		moved, err := svc.Reschedule(ctx, "client-1", "b1", "slot-new")
		if err != nil {
			t.Fatalf("Reschedule: %v", err)
		}
		if moved.ScheduleID != "slot-new" || moved.Date != "2030-01-12" || moved.StartTime != "14:00" {
			t.Errorf("booking not moved: %+v", moved)
		}
		if scheduleRepo.slots["slot-new"].IsAvailable {
			t.Error("new slot must be marked booked")
		}
		if !scheduleRepo.slots["slot-old"].IsAvailable {
			t.Error("old slot must be released")
		}
		if stored := bookings.bookings["b1"]; stored.ScheduleID != "slot-new" {
			t.Errorf("stored booking not updated: %+v", stored)
		}
	})

	t.Run("rejects another client's booking", func(t *testing.T) {
		svc, _, _ := newRescheduleFixture()
		if _, err := svc.Reschedule(ctx, "client-2", "b1", "slot-new"); !errors.Is(err, ErrBookingNotFound) {
			t.Errorf("error = %v, want %v", err, ErrBookingNotFound)
		}
	})

	t.Run("rejects unavailable slot", func(t *testing.T) {
		svc, _, scheduleRepo := newRescheduleFixture()
		scheduleRepo.slots["slot-new"].IsAvailable = false
		if _, err := svc.Reschedule(ctx, "client-1", "b1", "slot-new"); !errors.Is(err, ErrSlotTaken) {
			t.Errorf("error = %v, want %v", err, ErrSlotTaken)
		}
	})

	t.Run("rejects another counselor's slot", func(t *testing.T) {
		svc, _, _ := newRescheduleFixture()
		if _, err := svc.Reschedule(ctx, "client-1", "b1", "slot-other"); !errors.Is(err, ErrSlotTaken) {
			t.Errorf("error = %v, want %v", err, ErrSlotTaken)
		}
	})

	t.Run("rejects past slot", func(t *testing.T) {
		svc, _, scheduleRepo := newRescheduleFixture()
		scheduleRepo.slots["slot-new"].Date = "2020-01-12"
		if _, err := svc.Reschedule(ctx, "client-1", "b1", "slot-new"); !errors.Is(err, ErrPastDate) {
			t.Errorf("error = %v, want %v", err, ErrPastDate)
		}
	})
}

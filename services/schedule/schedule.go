package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	counselorRepo "unityconsult/database/repository/counselor"
	scheduleRepo "unityconsult/database/repository/schedule"
	"unityconsult/models"
)

// SessionLength is the fixed duration of every bookable slot. The editor
// derives the end time from the start; non-standard lengths cannot be entered.
const SessionLength = time.Hour

// ScheduleService manages a counselor's availability calendar.
type ScheduleService interface {
	ListAvailable(ctx context.Context, counselorID, startDate, endDate string) ([]models.ScheduleSlot, error)
	CreateSlot(ctx context.Context, counselorID, date, startTime string) (*models.ScheduleSlot, error)
	DeleteSlot(ctx context.Context, counselorID, slotID string) error
}

// DefaultScheduleService implements ScheduleService.
type DefaultScheduleService struct {
	Repo          scheduleRepo.ScheduleRepository
	CounselorRepo counselorRepo.CounselorRepository
	// Now is the clock used for past-date guards; tests override it.
	Now func() time.Time
}

func (s *DefaultScheduleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ListAvailable returns every available slot for the counselor in the
// inclusive date range.
func (s *DefaultScheduleService) ListAvailable(ctx context.Context, counselorID, startDate, endDate string) ([]models.ScheduleSlot, error) {
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse(models.DateLayout, d); err != nil {
			return nil, ErrInvalidDate
		}
	}
	return s.Repo.GetAvailableInRange(ctx, counselorID, startDate, endDate)
}

// CreateSlot adds a one-hour slot on the given date. Past dates are refused,
// the end time is derived from the start, and overlaps with existing slots
// on the same date are rejected.
func (s *DefaultScheduleService) CreateSlot(ctx context.Context, counselorID, date, startTime string) (*models.ScheduleSlot, error) {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if IsPastDate(day, s.now()) {
		return nil, ErrPastDate
	}

	endTime, err := DeriveEndTime(startTime)
	if err != nil {
		return nil, err
	}

	profile, err := s.CounselorRepo.GetByUserID(ctx, counselorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load counselor profile: %w", err)
	}
	if profile == nil || !profile.Bookable() {
		return nil, ErrNotBookable
	}

	existing, err := s.Repo.GetByCounselorAndDate(ctx, counselorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing slots: %w", err)
	}
	for _, slot := range existing {
		if Overlaps(startTime, endTime, slot.StartTime, slot.EndTime) {
			return nil, ErrSlotOverlap
		}
	}

	slot := &models.ScheduleSlot{
		ID:          uuid.New().String(),
		CounselorID: counselorID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		IsAvailable: true,
		CreatedAt:   s.now(),
	}
	if err := s.Repo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}
	return slot, nil
}

// DeleteSlot removes a slot owned by the counselor.
func (s *DefaultScheduleService) DeleteSlot(ctx context.Context, counselorID, slotID string) error {
	if err := s.Repo.DeleteByID(ctx, counselorID, slotID); err != nil {
		return ErrSlotNotFound
	}
	return nil
}

// DeriveEndTime returns start + 1h in "HH:MM". Starts whose session would
// cross midnight are refused so a slot never spans two calendar dates.
func DeriveEndTime(startTime string) (string, error) {
	start, err := time.Parse(models.TimeLayout, startTime)
	if err != nil {
		return "", ErrInvalidStartTime
	}
	end := start.Add(SessionLength)
	if end.Day() != start.Day() {
		return "", ErrCrossesMidnight
	}
	return end.Format(models.TimeLayout), nil
}

// IsPastDate reports whether day is strictly before now's date at midnight.
func IsPastDate(day, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.Before(today)
}

// Overlaps reports whether two [start, end) clock intervals intersect.
// "HH:MM" strings compare correctly as text.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// GroupSlotsByDate indexes slots by their calendar date. Every slot lands in
// exactly one bucket.
func GroupSlotsByDate(slots []models.ScheduleSlot) map[string][]models.ScheduleSlot {
	grouped := make(map[string][]models.ScheduleSlot, len(slots))
	for _, slot := range slots {
		grouped[slot.Date] = append(grouped[slot.Date], slot)
	}
	return grouped
}

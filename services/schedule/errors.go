package schedule

import "errors"

var (
	ErrPastDate         = errors.New("cannot create or select a slot on a past date")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidStartTime = errors.New("start time must be in HH:MM format")
	ErrCrossesMidnight  = errors.New("session must end on the same day")
	ErrSlotOverlap      = errors.New("slot overlaps an existing slot on this date")
	ErrSlotNotFound     = errors.New("schedule slot not found")
	ErrNotBookable      = errors.New("counselor is not active or not yet approved")
)

package booking

import "errors"

var (
	// ErrSessionNotFound covers missing, expired and stale-schema sessions.
	ErrSessionNotFound = errors.New("booking session not found or expired")

	// ErrCounselorRequired guards the ChooseCounselor -> SelectSlot transition.
	ErrCounselorRequired = errors.New("a counselor must be selected before picking a slot")

	// ErrSlotRequired guards the SelectSlot -> Summary transition: the chosen
	// slot must exist in the availability index and carry a non-empty id.
	ErrSlotRequired = errors.New("a valid slot must be selected before continuing")

	// ErrPastDate refuses selection of any date strictly before today.
	ErrPastDate = errors.New("cannot book a slot on a past date")

	// ErrWrongStep is returned when an operation is attempted out of order.
	ErrWrongStep = errors.New("operation not allowed at this wizard step")

	// ErrCannotGoBack is returned for Back from ChooseCounselor or Confirmation.
	ErrCannotGoBack = errors.New("cannot go back from this step")

	// ErrInconsistentState marks a confirmation entry with no transaction
	// reference to verify against.
	ErrInconsistentState = errors.New("no transaction reference associated with this session")

	ErrSlotTaken       = errors.New("slot is no longer available")
	ErrBookingNotFound = errors.New("booking not found")
)

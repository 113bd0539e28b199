package models

import "time"

// Booking wizard steps. Progression is linear; Back is allowed from steps
// 2-4 and never from Confirmation.
const (
	StepChooseCounselor = 1
	StepSelectSlot      = 2
	StepSummary         = 3
	StepPayment         = 4
	StepConfirmation    = 5
)

// WizardSessionVersion is the schema version stamped on every persisted
// session. Sessions written by an older schema are discarded on read.
const WizardSessionVersion = 1

// WizardSession holds the booking wizard state between steps. It is
// serialized to Redis so the flow survives the full-page redirect to the
// payment gateway and back.
type WizardSession struct {
	Version   int    `json:"version"`
	SessionID string `json:"sessionId"`
	ClientID  string `json:"clientId"`
	Step      int    `json:"step"`

	SelectedCounselor *CounselorSummary `json:"selectedCounselor,omitempty"`
	SelectedDate      string            `json:"selectedDate,omitempty"`
	SelectedSlot      *ScheduleSlot     `json:"selectedSlot,omitempty"`

	// Availability index for the selected counselor and displayed month.
	// Fetched once per (counselor, month) change; per-date selection filters
	// this index without another round trip.
	Month       string                    `json:"month,omitempty"` // "YYYY-MM"
	SlotsByDate map[string][]ScheduleSlot `json:"slotsByDate,omitempty"`

	// Set when the payment leg starts; the gateway callback re-enters the
	// wizard through this reference.
	TxRef string `json:"txRef,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary is the step-3 view of the collected selections. Rehydrating the
// same stored session always yields the identical summary.
type Summary struct {
	Counselor CounselorSummary `json:"counselor"`
	Date      string           `json:"date"`
	Slot      ScheduleSlot     `json:"slot"`
}

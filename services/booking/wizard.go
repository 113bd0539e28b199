package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	scheduleRepo "unityconsult/database/repository/schedule"
	"unityconsult/models"
	"unityconsult/services/counselor"
	"unityconsult/services/schedule"
	"unityconsult/utils"
)

// WizardService drives the five-step booking flow:
//
//	1 ChooseCounselor -> 2 SelectSlot -> 3 Summary -> 4 Payment -> 5 Confirmation
//
// Progression is linear. Back moves 2->1, 3->2 and 4->3; there is no Back
// from Confirmation. Confirmation has a second, external entry point: the
// payment gateway callback carrying a transaction reference.
type WizardService interface {
	Start(ctx context.Context, clientID string) (*models.WizardSession, error)
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	ChooseCounselor(ctx context.Context, sessionID, counselorID string) (*models.WizardSession, error)
	Availability(ctx context.Context, sessionID, month string) (map[string][]models.ScheduleSlot, error)
	SelectSlot(ctx context.Context, sessionID, date, slotID string) (*models.WizardSession, error)
	Summary(ctx context.Context, sessionID string) (*models.Summary, error)
	Back(ctx context.Context, sessionID string) (*models.WizardSession, error)
	BeginPayment(ctx context.Context, sessionID, txRef string) (*models.WizardSession, error)
	EnterConfirmation(ctx context.Context, txRef string) (*models.WizardSession, error)
	Cancel(ctx context.Context, sessionID string) error
}

// DefaultWizardService implements WizardService.
type DefaultWizardService struct {
	Store        SessionStore
	CounselorSvc counselor.CounselorService
	ScheduleRepo scheduleRepo.ScheduleRepository
	// Now is the clock used for past-date guards; tests override it.
	Now func() time.Time
}

func (s *DefaultWizardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Start opens a fresh session at step 1.
func (s *DefaultWizardService) Start(ctx context.Context, clientID string) (*models.WizardSession, error) {
	session := &models.WizardSession{
		SessionID: uuid.New().String(),
		ClientID:  clientID,
		Step:      models.StepChooseCounselor,
		CreatedAt: s.now(),
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *DefaultWizardService) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// ChooseCounselor records the selection and advances 1 -> 2. Only a bookable
// counselor with a non-empty id passes the guard.
func (s *DefaultWizardService) ChooseCounselor(ctx context.Context, sessionID, counselorID string) (*models.WizardSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if counselorID == "" {
		return nil, ErrCounselorRequired
	}

	summary, err := s.CounselorSvc.GetSummary(ctx, counselorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load counselor: %w", err)
	}

	session.SelectedCounselor = summary
	session.Step = models.StepSelectSlot
	// A new counselor invalidates any previously fetched availability.
	session.SelectedDate = ""
	session.SelectedSlot = nil
	session.Month = ""
	session.SlotsByDate = nil

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Availability returns the slot index for the selected counselor and month.
// The range is fetched once per (counselor, month) change; subsequent date
// picks filter the stored index without another round trip.
func (s *DefaultWizardService) Availability(ctx context.Context, sessionID, month string) (map[string][]models.ScheduleSlot, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.SelectedCounselor == nil {
		return nil, ErrCounselorRequired
	}

	if session.Month == month && session.SlotsByDate != nil {
		return session.SlotsByDate, nil
	}

	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("month must be in YYYY-MM format")
	}
	last := first.AddDate(0, 1, -1)

	slots, err := s.ScheduleRepo.GetAvailableInRange(ctx,
		session.SelectedCounselor.UserID,
		first.Format(models.DateLayout),
		last.Format(models.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	session.Month = month
	session.SlotsByDate = schedule.GroupSlotsByDate(slots)
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session.SlotsByDate, nil
}

// SelectSlot records the chosen slot and advances 2 -> 3. The transition is
// refused whenever the slot id is empty or unknown, regardless of any other
// fields the client sent, and past dates are never selectable.
func (s *DefaultWizardService) SelectSlot(ctx context.Context, sessionID, date, slotID string) (*models.WizardSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.SelectedCounselor == nil {
		return nil, ErrCounselorRequired
	}
	if session.Step < models.StepSelectSlot {
		return nil, ErrWrongStep
	}
	if slotID == "" {
		return nil, ErrSlotRequired
	}

	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, ErrSlotRequired
	}
	if schedule.IsPastDate(day, s.now()) {
		return nil, ErrPastDate
	}

	var selected *models.ScheduleSlot
	for i := range session.SlotsByDate[date] {
		if session.SlotsByDate[date][i].ID == slotID {
			selected = &session.SlotsByDate[date][i]
			break
		}
	}
	if selected == nil {
		return nil, ErrSlotRequired
	}

	session.SelectedDate = date
	session.SelectedSlot = selected
	session.Step = models.StepSummary

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Summary renders the step-3 view from the stored selections. It is a pure
// projection: rehydrating the same session always yields the same summary.
func (s *DefaultWizardService) Summary(ctx context.Context, sessionID string) (*models.Summary, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.SelectedCounselor == nil {
		return nil, ErrCounselorRequired
	}
	if session.SelectedSlot == nil || session.SelectedSlot.ID == "" {
		return nil, ErrSlotRequired
	}
	return &models.Summary{
		Counselor: *session.SelectedCounselor,
		Date:      session.SelectedDate,
		Slot:      *session.SelectedSlot,
	}, nil
}

// Back steps the wizard backwards one state. Selections made at later steps
// are kept so moving forward again does not refetch or re-enter anything.
func (s *DefaultWizardService) Back(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	switch session.Step {
	case models.StepSelectSlot, models.StepSummary, models.StepPayment:
		session.Step--
	default:
		return nil, ErrCannotGoBack
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// BeginPayment persists the selections and the transaction reference before
// the client is sent to the gateway's hosted page. The full-page redirect
// destroys all client-side state, so everything needed to finish the flow
// must be durable from here on.
func (s *DefaultWizardService) BeginPayment(ctx context.Context, sessionID, txRef string) (*models.WizardSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepSummary {
		return nil, ErrWrongStep
	}
	if session.SelectedSlot == nil || session.SelectedSlot.ID == "" {
		return nil, ErrSlotRequired
	}

	session.TxRef = txRef
	session.Step = models.StepPayment

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	if err := s.Store.BindTxRef(ctx, txRef, sessionID); err != nil {
		return nil, err
	}
	return session, nil
}

// EnterConfirmation is the wizard's second entry point: a fresh page load on
// the gateway callback, identified only by the transaction reference.
func (s *DefaultWizardService) EnterConfirmation(ctx context.Context, txRef string) (*models.WizardSession, error) {
	if txRef == "" {
		return nil, ErrInconsistentState
	}
	session, err := s.Store.GetByTxRef(ctx, txRef)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepPayment && session.Step != models.StepConfirmation {
		return nil, ErrWrongStep
	}
	session.Step = models.StepConfirmation
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Cancel discards the session.
func (s *DefaultWizardService) Cancel(ctx context.Context, sessionID string) error {
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		utils.GetLogger().Warn("failed to delete booking session",
			zap.String("sessionId", sessionID), zap.Error(err))
		return err
	}
	return nil
}

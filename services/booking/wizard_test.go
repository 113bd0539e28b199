package booking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"unityconsult/models"
	"unityconsult/services/counselor"
)

// memSessionStore mimics the Redis store: sessions are serialized on Save so
// reads always return a rehydrated copy, never shared memory.
type memSessionStore struct {
	sessions map[string][]byte
	txRefs   map[string]string
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{
		sessions: make(map[string][]byte),
		txRefs:   make(map[string]string),
	}
}

func (s *memSessionStore) Save(ctx context.Context, session *models.WizardSession) error {
	session.Version = models.WizardSessionVersion
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.sessions[session.SessionID] = data
	return nil
}

func (s *memSessionStore) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	var session models.WizardSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *memSessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func (s *memSessionStore) BindTxRef(ctx context.Context, txRef, sessionID string) error {
	s.txRefs[txRef] = sessionID
	return nil
}

func (s *memSessionStore) GetByTxRef(ctx context.Context, txRef string) (*models.WizardSession, error) {
	sessionID, ok := s.txRefs[txRef]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Get(ctx, sessionID)
}

type fakeCounselorService struct {
	summaries map[string]*models.CounselorSummary
}

func (f *fakeCounselorService) ListBookable(ctx context.Context) ([]models.CounselorSummary, error) {
	var out []models.CounselorSummary
	for _, s := range f.summaries {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeCounselorService) GetProfile(ctx context.Context, userID string) (*models.CounselorProfile, error) {
	if _, ok := f.summaries[userID]; !ok {
		return nil, counselor.ErrProfileNotFound
	}
	return &models.CounselorProfile{UserID: userID, Status: models.CounselorStatusActive, IsApproved: true}, nil
}

func (f *fakeCounselorService) GetSummary(ctx context.Context, userID string) (*models.CounselorSummary, error) {
	s, ok := f.summaries[userID]
	if !ok {
		return nil, counselor.ErrProfileNotFound
	}
	return s, nil
}

func (f *fakeCounselorService) CompleteProfile(ctx context.Context, userID string, req counselor.CompleteProfileRequest) (*models.CounselorProfile, error) {
	return nil, errors.New("not implemented")
}

// countingScheduleRepo records availability queries so caching behavior is
// observable.
type countingScheduleRepo struct {
	slots      []models.ScheduleSlot
	rangeCalls int
}

func (r *countingScheduleRepo) Create(ctx context.Context, slot *models.ScheduleSlot) error {
	r.slots = append(r.slots, *slot)
	return nil
}

func (r *countingScheduleRepo) DeleteByID(ctx context.Context, counselorID, slotID string) error {
	return nil
}

func (r *countingScheduleRepo) GetByID(ctx context.Context, slotID string) (*models.ScheduleSlot, error) {
	for i := range r.slots {
		if r.slots[i].ID == slotID {
			return &r.slots[i], nil
		}
	}
	return nil, nil
}

func (r *countingScheduleRepo) GetByCounselorAndDate(ctx context.Context, counselorID, date string) ([]models.ScheduleSlot, error) {
	return nil, nil
}

func (r *countingScheduleRepo) GetAvailableInRange(ctx context.Context, counselorID, startDate, endDate string) ([]models.ScheduleSlot, error) {
	r.rangeCalls++
	var out []models.ScheduleSlot
	for _, s := range r.slots {
		if s.CounselorID == counselorID && s.IsAvailable && s.Date >= startDate && s.Date <= endDate {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *countingScheduleRepo) MarkBooked(ctx context.Context, slotID string) error    { return nil }
func (r *countingScheduleRepo) MarkAvailable(ctx context.Context, slotID string) error { return nil }

func newTestWizard() (*DefaultWizardService, *memSessionStore, *countingScheduleRepo) {
	store := newMemSessionStore()
	repo := &countingScheduleRepo{slots: []models.ScheduleSlot{
		{ID: "slot-1", CounselorID: "c1", Date: "2025-07-10", StartTime: "09:00", EndTime: "10:00", IsAvailable: true},
		{ID: "slot-2", CounselorID: "c1", Date: "2025-07-10", StartTime: "14:00", EndTime: "15:00", IsAvailable: true},
		{ID: "slot-3", CounselorID: "c1", Date: "2025-07-22", StartTime: "11:00", EndTime: "12:00", IsAvailable: true},
	}}
	svc := &DefaultWizardService{
		Store: store,
		CounselorSvc: &fakeCounselorService{summaries: map[string]*models.CounselorSummary{
			"c1": {UserID: "c1", FirstName: "Abebe", LastName: "Kebede", Specialization: "Family"},
		}},
		ScheduleRepo: repo,
		Now: func() time.Time {
			return time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
		},
	}
	return svc, store, repo
}

// advanceToSummary walks a fresh session through steps 1 and 2.
func advanceToSummary(t *testing.T, svc *DefaultWizardService) *models.WizardSession {
	t.Helper()
	ctx := context.Background()

	session, err := svc.Start(ctx, "client-1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.ChooseCounselor(ctx, session.SessionID, "c1"); err != nil {
		t.Fatalf("ChooseCounselor: %v", err)
	}
	if _, err := svc.Availability(ctx, session.SessionID, "2025-07"); err != nil {
		t.Fatalf("Availability: %v", err)
	}
	session, err = svc.SelectSlot(ctx, session.SessionID, "2025-07-10", "slot-2")
	if err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}
	return session
}

func TestChooseCounselorRequiresID(t *testing.T) {
	svc, _, _ := newTestWizard()
	ctx := context.Background()

	session, err := svc.Start(ctx, "client-1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := svc.ChooseCounselor(ctx, session.SessionID, ""); !errors.Is(err, ErrCounselorRequired) {
		t.Errorf("error = %v, want %v", err, ErrCounselorRequired)
	}

	got, err := svc.Get(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Step != models.StepChooseCounselor {
		t.Errorf("refused transition must not advance: step = %d, want %d", got.Step, models.StepChooseCounselor)
	}
}

func TestSelectSlotGuards(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*DefaultWizardService, string) {
		svc, _, _ := newTestWizard()
		session, err := svc.Start(ctx, "client-1")
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		if _, err := svc.ChooseCounselor(ctx, session.SessionID, "c1"); err != nil {
			t.Fatalf("ChooseCounselor: %v", err)
		}
		if _, err := svc.Availability(ctx, session.SessionID, "2025-07"); err != nil {
			t.Fatalf("Availability: %v", err)
		}
		return svc, session.SessionID
	}

	t.Run("empty slot id is refused even with a valid date", func(t *testing.T) {
		svc, id := setup(t)
		if _, err := svc.SelectSlot(ctx, id, "2025-07-10", ""); !errors.Is(err, ErrSlotRequired) {
			t.Errorf("error = %v, want %v", err, ErrSlotRequired)
		}
		got, _ := svc.Get(ctx, id)
		if got.Step != models.StepSelectSlot {
			t.Errorf("refused transition must not advance: step = %d, want %d", got.Step, models.StepSelectSlot)
		}
	})

	t.Run("unknown slot id is refused", func(t *testing.T) {
		svc, id := setup(t)
		if _, err := svc.SelectSlot(ctx, id, "2025-07-10", "nope"); !errors.Is(err, ErrSlotRequired) {
			t.Errorf("error = %v, want %v", err, ErrSlotRequired)
		}
	})

	t.Run("valid slot advances to summary", func(t *testing.T) {
		svc, id := setup(t)
		session, err := svc.SelectSlot(ctx, id, "2025-07-10", "slot-1")
		if err != nil {
			t.Fatalf("SelectSlot: %v", err)
		}
		if session.Step != models.StepSummary {
			t.Errorf("step = %d, want %d", session.Step, models.StepSummary)
		}
		if session.SelectedSlot == nil || session.SelectedSlot.ID != "slot-1" {
			t.Errorf("SelectedSlot = %+v, want slot-1", session.SelectedSlot)
		}
	})
}

func TestSelectSlotRefusesPastDate(t *testing.T) {
	svc, _, repo := newTestWizard()
	ctx := context.Background()

	// A stale slot from last month is still in the index.
	repo.slots = append(repo.slots, models.ScheduleSlot{
		ID: "old", CounselorID: "c1", Date: "2025-06-20", StartTime: "09:00", EndTime: "10:00", IsAvailable: true,
	})

	session, _ := svc.Start(ctx, "client-1")
	if _, err := svc.ChooseCounselor(ctx, session.SessionID, "c1"); err != nil {
		t.Fatalf("ChooseCounselor: %v", err)
	}
	if _, err := svc.Availability(ctx, session.SessionID, "2025-06"); err != nil {
		t.Fatalf("Availability: %v", err)
	}

	if _, err := svc.SelectSlot(ctx, session.SessionID, "2025-06-20", "old"); !errors.Is(err, ErrPastDate) {
		t.Errorf("error = %v, want %v", err, ErrPastDate)
	}
}

func TestAvailabilityCachedPerMonth(t *testing.T) {
	svc, _, repo := newTestWizard()
	ctx := context.Background()

	session, _ := svc.Start(ctx, "client-1")
	if _, err := svc.ChooseCounselor(ctx, session.SessionID, "c1"); err != nil {
		t.Fatalf("ChooseCounselor: %v", err)
	}

	first, err := svc.Availability(ctx, session.SessionID, "2025-07")
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if len(first["2025-07-10"]) != 2 || len(first["2025-07-22"]) != 1 {
		t.Errorf("unexpected grouping: %+v", first)
	}

	if _, err := svc.Availability(ctx, session.SessionID, "2025-07"); err != nil {
		t.Fatalf("Availability (repeat): %v", err)
	}
	if repo.rangeCalls != 1 {
		t.Errorf("same month fetched %d times, want 1", repo.rangeCalls)
	}

	if _, err := svc.Availability(ctx, session.SessionID, "2025-08"); err != nil {
		t.Fatalf("Availability (new month): %v", err)
	}
	if repo.rangeCalls != 2 {
		t.Errorf("month change should refetch: %d calls, want 2", repo.rangeCalls)
	}
}

func TestSummaryStableAcrossRehydration(t *testing.T) {
	svc, _, _ := newTestWizard()
	ctx := context.Background()

	session := advanceToSummary(t, svc)

	first, err := svc.Summary(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	// Simulate a page reload: the session is read back from the store and the
	// summary is rendered again.
	second, err := svc.Summary(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("Summary after rehydration: %v", err)
	}

	if *first != *second {
		t.Errorf("summary changed across rehydration:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if first.Slot.ID != "slot-2" || first.Date != "2025-07-10" {
		t.Errorf("summary does not reflect selections: %+v", first)
	}
}

func TestBackKeepsSelections(t *testing.T) {
	svc, _, _ := newTestWizard()
	ctx := context.Background()

	session := advanceToSummary(t, svc)

	back, err := svc.Back(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("Back: %v", err)
	}
	if back.Step != models.StepSelectSlot {
		t.Errorf("step = %d, want %d", back.Step, models.StepSelectSlot)
	}
	if back.SelectedSlot == nil || back.SelectedSlot.ID != "slot-2" {
		t.Errorf("Back dropped the slot selection: %+v", back.SelectedSlot)
	}

	back, err = svc.Back(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("Back to step 1: %v", err)
	}
	if back.Step != models.StepChooseCounselor {
		t.Errorf("step = %d, want %d", back.Step, models.StepChooseCounselor)
	}

	if _, err := svc.Back(ctx, session.SessionID); !errors.Is(err, ErrCannotGoBack) {
		t.Errorf("error = %v, want %v", err, ErrCannotGoBack)
	}
}

func TestPaymentLegAndCallbackReentry(t *testing.T) {
	svc, _, _ := newTestWizard()
	ctx := context.Background()

	session := advanceToSummary(t, svc)

	if _, err := svc.BeginPayment(ctx, session.SessionID, "tx-1751366400000"); err != nil {
		t.Fatalf("BeginPayment: %v", err)
	}

	// The callback arrives on a fresh page load carrying only the reference.
	reentered, err := svc.EnterConfirmation(ctx, "tx-1751366400000")
	if err != nil {
		t.Fatalf("EnterConfirmation: %v", err)
	}
	if reentered.Step != models.StepConfirmation {
		t.Errorf("step = %d, want %d", reentered.Step, models.StepConfirmation)
	}
	if reentered.SelectedSlot == nil || reentered.SelectedSlot.ID != "slot-2" {
		t.Errorf("selections must survive the gateway round trip: %+v", reentered.SelectedSlot)
	}

	if _, err := svc.EnterConfirmation(ctx, ""); !errors.Is(err, ErrInconsistentState) {
		t.Errorf("error = %v, want %v", err, ErrInconsistentState)
	}
	if _, err := svc.EnterConfirmation(ctx, "tx-unknown"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want %v", err, ErrSessionNotFound)
	}
}

func TestBeginPaymentRequiresSummaryStep(t *testing.T) {
	svc, _, _ := newTestWizard()
	ctx := context.Background()

	session, _ := svc.Start(ctx, "client-1")
	if _, err := svc.ChooseCounselor(ctx, session.SessionID, "c1"); err != nil {
		t.Fatalf("ChooseCounselor: %v", err)
	}

	if _, err := svc.BeginPayment(ctx, session.SessionID, "tx-1"); !errors.Is(err, ErrWrongStep) {
		t.Errorf("error = %v, want %v", err, ErrWrongStep)
	}
}

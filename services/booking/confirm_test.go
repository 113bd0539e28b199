package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	scheduleRepo "unityconsult/database/repository/schedule"
	"unityconsult/models"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByTransactionReference(ctx context.Context, txRef string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.TransactionReference == txRef {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByCounselor(ctx context.Context, counselorID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CounselorID == counselorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateSchedule(ctx context.Context, bookingID, scheduleID, date, startTime, endTime string) error {
	b, ok := r.bookings[bookingID]
	if !ok {
		return errors.New("not found")
	}
	b.ScheduleID = scheduleID
	b.Date = date
	b.StartTime = startTime
	b.EndTime = endTime
	return nil
}

type fakePayments struct {
	transactions map[string]*models.PaymentTransaction
	verifyErr    error
}

func (f *fakePayments) InitializePayment(ctx context.Context, session *models.WizardSession, payer *models.User, amount float64) (*models.PaymentTransaction, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePayments) VerifyPayment(ctx context.Context, txRef string) (*models.PaymentTransaction, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	tx, ok := f.transactions[txRef]
	if !ok {
		return nil, errors.New("payment transaction not found")
	}
	return tx, nil
}

type recordingNotifier struct {
	sent []string
}

func (n *recordingNotifier) Notify(ctx context.Context, userID, role, notifType, message string, data map[string]string) error {
	n.sent = append(n.sent, notifType+":"+userID)
	return nil
}

func (n *recordingNotifier) ListForRecipient(ctx context.Context, role, userID string) ([]models.Notification, error) {
	return nil, nil
}

func (n *recordingNotifier) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	return 0, nil
}

func newTestConfirmation(chargeStatus string) (*ConfirmationService, *fakeBookingRepo, *fakeScheduleRepoForConfirm, *recordingNotifier) {
	now := time.Now()
	wizard, _, _ := newTestWizard()
	scheduleRepo := &fakeScheduleRepoForConfirm{slots: map[string]*models.ScheduleSlot{
		"slot-1": {ID: "slot-1", CounselorID: "c1", Date: "2025-07-10", StartTime: "09:00", EndTime: "10:00", IsAvailable: true},
	}}
	bookings := newFakeBookingRepo()
	notifier := &recordingNotifier{}
	payments := &fakePayments{transactions: map[string]*models.PaymentTransaction{
		"tx-1": {
			TransactionReference: "tx-1",
			SessionID:            "sess-1",
			ClientID:             "client-1",
			CounselorID:          "c1",
			ScheduleID:           "slot-1",
			Amount:               500,
			Currency:             models.PaymentCurrency,
			Status:               chargeStatus,
			VerifiedAt:           &now,
		},
	}}
	svc := &ConfirmationService{
		Wizard:       wizard,
		Payments:     payments,
		ScheduleRepo: scheduleRepo,
		BookingRepo:  bookings,
		Notifier:     notifier,
	}
	return svc, bookings, scheduleRepo, notifier
}

// fakeScheduleRepoForConfirm tracks booked/available transitions.
type fakeScheduleRepoForConfirm struct {
	slots map[string]*models.ScheduleSlot
}

func (r *fakeScheduleRepoForConfirm) Create(ctx context.Context, slot *models.ScheduleSlot) error {
	r.slots[slot.ID] = slot
	return nil
}

func (r *fakeScheduleRepoForConfirm) DeleteByID(ctx context.Context, counselorID, slotID string) error {
	delete(r.slots, slotID)
	return nil
}

func (r *fakeScheduleRepoForConfirm) GetByID(ctx context.Context, slotID string) (*models.ScheduleSlot, error) {
	s, ok := r.slots[slotID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeScheduleRepoForConfirm) GetByCounselorAndDate(ctx context.Context, counselorID, date string) ([]models.ScheduleSlot, error) {
	return nil, nil
}

func (r *fakeScheduleRepoForConfirm) GetAvailableInRange(ctx context.Context, counselorID, startDate, endDate string) ([]models.ScheduleSlot, error) {
	return nil, nil
}

func (r *fakeScheduleRepoForConfirm) MarkBooked(ctx context.Context, slotID string) error {
	s, ok := r.slots[slotID]
	if !ok || !s.IsAvailable {
		return scheduleRepo.ErrSlotUnavailable
	}
	s.IsAvailable = false
	return nil
}

func (r *fakeScheduleRepoForConfirm) MarkAvailable(ctx context.Context, slotID string) error {
	s, ok := r.slots[slotID]
	if !ok {
		return errors.New("not found")
	}
	s.IsAvailable = true
	return nil
}

func TestConfirmFromCallbackCreatesBookingOnce(t *testing.T) {
	svc, bookings, scheduleRepo, notifier := newTestConfirmation(models.PaymentStatusSuccess)
	ctx := context.Background()

	result, err := svc.ConfirmFromCallback(ctx, "tx-1")
	if err != nil {
		t.Fatalf("ConfirmFromCallback: %v", err)
	}
	if result.Booking == nil {
		t.Fatal("expected a booking")
	}
	if result.Booking.Status != models.BookingStatusConfirmed {
		t.Errorf("Status = %q, want %q", result.Booking.Status, models.BookingStatusConfirmed)
	}
	if result.Booking.Date != "2025-07-10" || result.Booking.StartTime != "09:00" {
		t.Errorf("booking must carry the slot's schedule: %+v", result.Booking)
	}
	if result.Booking.ZoomJoinURL == "" || result.Booking.ZoomStartURL == "" {
		t.Error("meeting links must be generated")
	}
	if scheduleRepo.slots["slot-1"].IsAvailable {
		t.Error("slot must be marked booked")
	}
	if len(notifier.sent) != 2 {
		t.Errorf("expected 2 notifications (client and counselor), got %v", notifier.sent)
	}

	// Re-entering the callback with the same reference returns the same
	// booking without creating another.
	again, err := svc.ConfirmFromCallback(ctx, "tx-1")
	if err != nil {
		t.Fatalf("second ConfirmFromCallback: %v", err)
	}
	if again.Booking == nil || again.Booking.ID != result.Booking.ID {
		t.Errorf("re-entry returned a different booking: %+v", again.Booking)
	}
	if len(bookings.bookings) != 1 {
		t.Errorf("expected exactly one booking, got %d", len(bookings.bookings))
	}
}

func TestConfirmFromCallbackSlotSoldOnce(t *testing.T) {
	svc, bookings, _, _ := newTestConfirmation(models.PaymentStatusSuccess)
	ctx := context.Background()

	// A second client paid for the same slot under its own reference.
	payments := svc.Payments.(*fakePayments)
	second := *payments.transactions["tx-1"]
	second.TransactionReference = "tx-2"
	second.SessionID = "sess-2"
	second.ClientID = "client-2"
	payments.transactions["tx-2"] = &second

	if _, err := svc.ConfirmFromCallback(ctx, "tx-1"); err != nil {
		t.Fatalf("first ConfirmFromCallback: %v", err)
	}
	if _, err := svc.ConfirmFromCallback(ctx, "tx-2"); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("error = %v, want %v", err, ErrSlotTaken)
	}
	if len(bookings.bookings) != 1 {
		t.Errorf("slot sold %d times, want 1", len(bookings.bookings))
	}
}

func TestConfirmFromCallbackFailedCharge(t *testing.T) {
	svc, bookings, scheduleRepo, _ := newTestConfirmation(models.PaymentStatusFailed)

	result, err := svc.ConfirmFromCallback(context.Background(), "tx-1")
	if err != nil {
		t.Fatalf("ConfirmFromCallback: %v", err)
	}
	if result.Booking != nil {
		t.Error("failed charge must not create a booking")
	}
	if result.Payment.Status != models.PaymentStatusFailed {
		t.Errorf("Payment.Status = %q, want %q", result.Payment.Status, models.PaymentStatusFailed)
	}
	if len(bookings.bookings) != 0 {
		t.Error("no booking should be stored")
	}
	if !scheduleRepo.slots["slot-1"].IsAvailable {
		t.Error("slot must stay available after a failed charge")
	}
}

func TestConfirmFromCallbackGatewayErrorPropagates(t *testing.T) {
	svc, _, _, _ := newTestConfirmation(models.PaymentStatusSuccess)
	svc.Payments = &fakePayments{verifyErr: errors.New("gateway timeout")}

	if _, err := svc.ConfirmFromCallback(context.Background(), "tx-1"); err == nil {
		t.Fatal("gateway errors must propagate so the client can retry")
	}
}

func TestConfirmFromCallbackEmptyRef(t *testing.T) {
	svc, _, _, _ := newTestConfirmation(models.PaymentStatusSuccess)
	if _, err := svc.ConfirmFromCallback(context.Background(), ""); !errors.Is(err, ErrInconsistentState) {
		t.Errorf("error = %v, want %v", err, ErrInconsistentState)
	}
}

package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"unityconsult/config"
	"unityconsult/models"
)

type fakePaymentRepo struct {
	transactions map[string]*models.PaymentTransaction
	markCalls    int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{transactions: make(map[string]*models.PaymentTransaction)}
}

func (r *fakePaymentRepo) Create(ctx context.Context, tx *models.PaymentTransaction) error {
	cp := *tx
	r.transactions[tx.TransactionReference] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByReference(ctx context.Context, txRef string) (*models.PaymentTransaction, error) {
	tx, ok := r.transactions[txRef]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (r *fakePaymentRepo) UpdateStatus(ctx context.Context, txRef, status string) error {
	tx, ok := r.transactions[txRef]
	if !ok {
		return errors.New("not found")
	}
	tx.Status = status
	return nil
}

func (r *fakePaymentRepo) MarkVerified(ctx context.Context, txRef, status string) (*models.PaymentTransaction, error) {
	r.markCalls++
	tx, ok := r.transactions[txRef]
	if !ok {
		return nil, nil
	}
	now := time.Now()
	tx.Status = status
	tx.VerifiedAt = &now
	cp := *tx
	return &cp, nil
}

func testSession() *models.WizardSession {
	return &models.WizardSession{
		SessionID: "sess-1",
		ClientID:  "client-1",
		Step:      models.StepSummary,
		SelectedCounselor: &models.CounselorSummary{
			UserID: "c1", FirstName: "Abebe", LastName: "Kebede",
		},
		SelectedDate: "2025-07-10",
		SelectedSlot: &models.ScheduleSlot{
			ID: "slot-1", CounselorID: "c1", Date: "2025-07-10",
			StartTime: "09:00", EndTime: "10:00",
		},
	}
}

func testPayer() *models.User {
	return &models.User{
		ID: "client-1", Email: "abebe@example.com",
		FirstName: "Abebe", LastName: "Kebede",
	}
}

func TestNewTxRef(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	got := NewTxRef(now)
	want := fmt.Sprintf("tx-%d", now.UnixMilli())
	if got != want {
		t.Errorf("NewTxRef = %q, want %q", got, want)
	}
	if !strings.HasPrefix(got, "tx-") {
		t.Errorf("NewTxRef must be prefixed with tx-: %q", got)
	}
}

func TestInitializePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "Bearer ") {
			t.Errorf("missing bearer auth, got %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"success","data":{"checkout_url":"https://checkout.chapa.co/pay/abc"}}`)
	}))
	defer srv.Close()

	repo := newFakePaymentRepo()
	svc := &DefaultPaymentService{
		Repo:    repo,
		Gateway: NewChapaClient(config.Config{ChapaSecretKey: "test-key", ChapaBaseURL: srv.URL}),
		Now: func() time.Time {
			return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
		},
	}

	tx, err := svc.InitializePayment(context.Background(), testSession(), testPayer(), 500)
	if err != nil {
		t.Fatalf("InitializePayment: %v", err)
	}

	if tx.Currency != models.PaymentCurrency {
		t.Errorf("Currency = %q, want %q", tx.Currency, models.PaymentCurrency)
	}
	if tx.Status != models.PaymentStatusPending {
		t.Errorf("Status = %q, want %q", tx.Status, models.PaymentStatusPending)
	}
	if tx.CheckoutURL != "https://checkout.chapa.co/pay/abc" {
		t.Errorf("CheckoutURL = %q", tx.CheckoutURL)
	}
	if !strings.HasPrefix(tx.TransactionReference, "tx-") {
		t.Errorf("TransactionReference = %q", tx.TransactionReference)
	}
	if _, ok := repo.transactions[tx.TransactionReference]; !ok {
		t.Error("transaction was not recorded")
	}
}

func TestInitializePaymentRejectsBadAmount(t *testing.T) {
	svc := &DefaultPaymentService{Repo: newFakePaymentRepo()}
	for _, amount := range []float64{0, -100} {
		if _, err := svc.InitializePayment(context.Background(), testSession(), testPayer(), amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount %v: error = %v, want %v", amount, err, ErrInvalidAmount)
		}
	}
}

func TestVerifyPayment(t *testing.T) {
	newService := func(chargeStatus string) (*DefaultPaymentService, *fakePaymentRepo, *httptest.Server) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"status":"success","data":{"amount":500,"currency":"ETB","tx_ref":"tx-1","status":%q}}`, chargeStatus)
		}))
		repo := newFakePaymentRepo()
		repo.transactions["tx-1"] = &models.PaymentTransaction{
			TransactionReference: "tx-1",
			Amount:               500,
			Currency:             models.PaymentCurrency,
			Status:               models.PaymentStatusPending,
		}
		return &DefaultPaymentService{
			Repo:    repo,
			Gateway: NewChapaClient(config.Config{ChapaSecretKey: "test-key", ChapaBaseURL: srv.URL}),
		}, repo, srv
	}

	t.Run("successful charge", func(t *testing.T) {
		svc, _, srv := newService("success")
		defer srv.Close()

		tx, err := svc.VerifyPayment(context.Background(), "tx-1")
		if err != nil {
			t.Fatalf("VerifyPayment: %v", err)
		}
		if tx.Status != models.PaymentStatusSuccess {
			t.Errorf("Status = %q, want %q", tx.Status, models.PaymentStatusSuccess)
		}
		if tx.VerifiedAt == nil {
			t.Error("VerifiedAt must be stamped")
		}
	})

	t.Run("declined charge", func(t *testing.T) {
		svc, _, srv := newService("failed")
		defer srv.Close()

		tx, err := svc.VerifyPayment(context.Background(), "tx-1")
		if err != nil {
			t.Fatalf("VerifyPayment: %v", err)
		}
		if tx.Status != models.PaymentStatusFailed {
			t.Errorf("Status = %q, want %q", tx.Status, models.PaymentStatusFailed)
		}
	})

	t.Run("re-verification returns stored result without a gateway call", func(t *testing.T) {
		svc, repo, srv := newService("success")
		defer srv.Close()

		if _, err := svc.VerifyPayment(context.Background(), "tx-1"); err != nil {
			t.Fatalf("first VerifyPayment: %v", err)
		}
		srv.Close() // gateway unreachable from here on

		tx, err := svc.VerifyPayment(context.Background(), "tx-1")
		if err != nil {
			t.Fatalf("second VerifyPayment: %v", err)
		}
		if tx.Status != models.PaymentStatusSuccess {
			t.Errorf("Status = %q, want %q", tx.Status, models.PaymentStatusSuccess)
		}
		if repo.markCalls != 1 {
			t.Errorf("MarkVerified called %d times, want 1", repo.markCalls)
		}
	})

	t.Run("unknown reference", func(t *testing.T) {
		svc, _, srv := newService("success")
		defer srv.Close()

		if _, err := svc.VerifyPayment(context.Background(), "tx-unknown"); !errors.Is(err, ErrTransactionNotFound) {
			t.Errorf("error = %v, want %v", err, ErrTransactionNotFound)
		}
	})
}

func TestVerifyPaymentGatewayDownLeavesPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	repo := newFakePaymentRepo()
	repo.transactions["tx-1"] = &models.PaymentTransaction{
		TransactionReference: "tx-1",
		Status:               models.PaymentStatusPending,
	}
	svc := &DefaultPaymentService{
		Repo:    repo,
		Gateway: NewChapaClient(config.Config{ChapaSecretKey: "test-key", ChapaBaseURL: srv.URL}),
	}

	if _, err := svc.VerifyPayment(context.Background(), "tx-1"); err == nil {
		t.Fatal("expected an error when the gateway is unreachable")
	}
	if got := repo.transactions["tx-1"].Status; got != models.PaymentStatusPending {
		t.Errorf("Status = %q, want still %q for retry", got, models.PaymentStatusPending)
	}
	if repo.markCalls != 0 {
		t.Errorf("MarkVerified called %d times, want 0", repo.markCalls)
	}
}

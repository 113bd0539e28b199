package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"unityconsult/config"
	paymentRepo "unityconsult/database/repository/payment"
	"unityconsult/models"
	"unityconsult/utils"
)

var (
	ErrInvalidAmount       = errors.New("payment amount must be greater than zero")
	ErrTransactionNotFound = errors.New("payment transaction not found")
)

// Gateway is the slice of the Chapa client the service needs; tests swap in
// an httptest-backed client.
type Gateway interface {
	Initialize(ctx context.Context, req InitializeRequest) (string, error)
	Verify(ctx context.Context, txRef string) (*VerifyResult, error)
}

// PaymentService creates payment attempts and verifies them after the
// gateway redirect.
type PaymentService interface {
	InitializePayment(ctx context.Context, session *models.WizardSession, payer *models.User, amount float64) (*models.PaymentTransaction, error)
	VerifyPayment(ctx context.Context, txRef string) (*models.PaymentTransaction, error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Repo    paymentRepo.PaymentRepository
	Gateway Gateway
	// Now supplies the clock for transaction references; tests override it.
	Now func() time.Time
}

func (s *DefaultPaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NewTxRef generates a client-visible transaction reference. Uniqueness per
// attempt follows from millisecond resolution; there is no collision handling.
func NewTxRef(now time.Time) string {
	return fmt.Sprintf("tx-%d", now.UnixMilli())
}

// InitializePayment records a pending transaction and returns it with the
// gateway's hosted checkout URL filled in.
func (s *DefaultPaymentService) InitializePayment(ctx context.Context, session *models.WizardSession, payer *models.User, amount float64) (*models.PaymentTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if session.SelectedSlot == nil || session.SelectedSlot.ID == "" || session.SelectedCounselor == nil {
		return nil, fmt.Errorf("booking selections are incomplete")
	}

	txRef := NewTxRef(s.now())
	tx := &models.PaymentTransaction{
		TransactionReference: txRef,
		SessionID:            session.SessionID,
		ClientID:             session.ClientID,
		CounselorID:          session.SelectedCounselor.UserID,
		ScheduleID:           session.SelectedSlot.ID,
		Amount:               amount,
		Currency:             models.PaymentCurrency,
		Status:               models.PaymentStatusPending,
		CreatedAt:            s.now(),
	}

	checkoutURL, err := s.Gateway.Initialize(ctx, InitializeRequest{
		Amount:      amount,
		Currency:    models.PaymentCurrency,
		Email:       payer.Email,
		FirstName:   payer.FirstName,
		LastName:    payer.LastName,
		TxRef:       txRef,
		CallbackURL: config.AppConfig.ChapaCallbackURL + "/" + txRef,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment: %w", err)
	}
	tx.CheckoutURL = checkoutURL

	if err := s.Repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record payment transaction: %w", err)
	}
	return tx, nil
}

// VerifyPayment checks the reference against the gateway and stamps the
// stored transaction. Re-verifying an already-verified reference returns the
// stored result without another gateway call.
func (s *DefaultPaymentService) VerifyPayment(ctx context.Context, txRef string) (*models.PaymentTransaction, error) {
	tx, err := s.Repo.GetByReference(ctx, txRef)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment transaction: %w", err)
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}
	if tx.VerifiedAt != nil {
		return tx, nil
	}

	result, err := s.Gateway.Verify(ctx, txRef)
	if err != nil {
		// Leave the record pending; the caller may retry.
		utils.GetLogger().Warn("payment verification failed",
			zap.String("txRef", txRef), zap.Error(err))
		return nil, err
	}

	status := models.PaymentStatusFailed
	if result.Status == "success" {
		status = models.PaymentStatusSuccess
	}

	verified, err := s.Repo.MarkVerified(ctx, txRef, status)
	if err != nil {
		return nil, fmt.Errorf("failed to stamp verification: %w", err)
	}
	if verified == nil {
		return nil, ErrTransactionNotFound
	}
	return verified, nil
}

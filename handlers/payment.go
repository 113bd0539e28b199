package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	userRepo "unityconsult/database/repository/user"
	"unityconsult/models"
	bookingSvc "unityconsult/services/booking"
	paymentSvc "unityconsult/services/payment"
)

// InitializePaymentHandler creates the payment attempt for a wizard session
// and returns the gateway's hosted checkout URL. The session is moved to the
// payment step before the client is redirected, so a reload after the
// redirect finds everything it needs server-side.
func InitializePaymentHandler(payments paymentSvc.PaymentService, wizard bookingSvc.WizardService, users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		clientID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req struct {
			SessionID string  `json:"sessionId" binding:"required"`
			Amount    float64 `json:"amount" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		session, err := wizard.Get(c.Request.Context(), req.SessionID)
		if err != nil {
			wizardError(c, err)
			return
		}
		if session.ClientID != clientID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Session belongs to another user"})
			return
		}
		if session.Step != models.StepSummary {
			c.JSON(http.StatusConflict, gin.H{"error": "Session is not at the payment step"})
			return
		}

		payer, err := users.GetByID(c.Request.Context(), clientID)
		if err != nil || payer == nil {
			logger.Error("Failed to load payer", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize payment"})
			return
		}

		tx, err := payments.InitializePayment(c.Request.Context(), session, payer, req.Amount)
		if err != nil {
			if errors.Is(err, paymentSvc.ErrInvalidAmount) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Payment initialization failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to initialize payment"})
			return
		}

		if _, err := wizard.BeginPayment(c.Request.Context(), session.SessionID, tx.TransactionReference); err != nil {
			wizardError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"txRef":            tx.TransactionReference,
			"chapaRedirectUrl": tx.CheckoutURL,
			"amount":           tx.Amount,
			"currency":         tx.Currency,
		})
	}
}

// VerifyPaymentHandler is the gateway callback landing. It verifies the
// reference, creates the booking on success and reports a retryable state on
// gateway trouble.
func VerifyPaymentHandler(confirm *bookingSvc.ConfirmationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		txRef := c.Param("txRef")

		result, err := confirm.ConfirmFromCallback(c.Request.Context(), txRef)
		if err != nil {
			switch {
			case errors.Is(err, paymentSvc.ErrTransactionNotFound),
				errors.Is(err, paymentSvc.ErrTxRefNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Unknown transaction reference"})
			case errors.Is(err, bookingSvc.ErrInconsistentState):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Missing transaction reference"})
			case errors.Is(err, bookingSvc.ErrSlotTaken):
				// The charge went through but another booking claimed the
				// slot first. Not retryable: support has to refund.
				c.JSON(http.StatusConflict, gin.H{"error": "Slot was booked by someone else", "retryable": false})
			default:
				// Gateway or network trouble: the transaction stays pending
				// and the client may retry verification.
				logger.Warn("Payment verification unavailable", zap.String("txRef", txRef), zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"error": "Verification unavailable, try again", "retryable": true})
			}
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

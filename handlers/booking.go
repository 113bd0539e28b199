package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "unityconsult/database/repository/booking"
	"unityconsult/models"
	bookingSvc "unityconsult/services/booking"
)

// wizardError maps booking flow errors onto HTTP statuses.
func wizardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bookingSvc.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking session not found or expired"})
	case errors.Is(err, bookingSvc.ErrCounselorRequired),
		errors.Is(err, bookingSvc.ErrSlotRequired),
		errors.Is(err, bookingSvc.ErrPastDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, bookingSvc.ErrWrongStep),
		errors.Is(err, bookingSvc.ErrCannotGoBack),
		errors.Is(err, bookingSvc.ErrInconsistentState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("Booking flow error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Booking flow failed"})
	}
}

// StartWizardHandler opens a fresh booking session for the caller.
func StartWizardHandler(svc bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		session, err := svc.Start(c.Request.Context(), clientID)
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusCreated, session)
	}
}

// GetWizardHandler rehydrates a session, typically after a page reload.
func GetWizardHandler(svc bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// ChooseCounselorHandler records the step-1 selection.
func ChooseCounselorHandler(svc bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CounselorID string `json:"counselorId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		session, err := svc.ChooseCounselor(c.Request.Context(), c.Param("id"), req.CounselorID)
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// AvailabilityHandler returns the selected counselor's slots for a month,
// grouped by date.
func AvailabilityHandler(svc bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		month := c.Query("month")
		if month == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month query parameter is required (YYYY-MM)"})
			return
		}
		slots, err := svc.Availability(c.Request.Context(), c.Param("id"), month)
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, slots)
	}
}

// SelectSlotHandler records the step-2 selection and advances to the summary.
func SelectSlotHandler(svc bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Date   string `json:"date"`
			SlotID string `json:"slotId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		session, err := svc.SelectSlot(c.Request.Context(), c.Param("id"), req.Date, req.SlotID)
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// WizardSummaryHandler renders the step-3 review of the stored selections.
func WizardSummaryHandler(svc bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.Summary(c.Request.Context(), c.Param("id"))
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// WizardBackHandler steps the session backwards, keeping later selections.
func WizardBackHandler(svc bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.Back(c.Request.Context(), c.Param("id"))
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// CancelWizardHandler discards a session.
func CancelWizardHandler(svc bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Session cancelled"})
	}
}

// ListMyBookingsHandler returns the caller's confirmed sessions, as a client
// or as a counselor depending on the role claim.
func ListMyBookingsHandler(repo bookingRepo.BookingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		role, _ := c.Get("role")
		var (
			bookings []models.Booking
			err      error
		)
		if role == models.RoleCounselor {
			bookings, err = repo.ListByCounselor(c.Request.Context(), userID)
		} else {
			bookings, err = repo.ListByClient(c.Request.Context(), userID)
		}
		if err != nil {
			getLogger(c).Error("Failed to list bookings", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

// RescheduleBookingHandler moves a booking to another of the counselor's
// available slots. Everything is re-derived from the booking id.
func RescheduleBookingHandler(svc *bookingSvc.ConfirmationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req struct {
			SlotID string `json:"slotId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		booking, err := svc.Reschedule(c.Request.Context(), clientID, c.Param("id"), req.SlotID)
		if err != nil {
			switch {
			case errors.Is(err, bookingSvc.ErrBookingNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			case errors.Is(err, bookingSvc.ErrSlotTaken):
				c.JSON(http.StatusConflict, gin.H{"error": "Slot is not available"})
			case errors.Is(err, bookingSvc.ErrPastDate):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				getLogger(c).Error("Reschedule failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Reschedule failed"})
			}
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	scheduleSvc "unityconsult/services/schedule"
)

// ListScheduleHandler returns a counselor's available slots in a date range.
// Used by the counselor's own calendar editor.
func ListScheduleHandler(svc scheduleSvc.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		slots, err := svc.ListAvailable(c.Request.Context(), userID, c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			if errors.Is(err, scheduleSvc.ErrInvalidDate) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate must be YYYY-MM-DD"})
				return
			}
			getLogger(c).Error("Failed to list schedule", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list schedule"})
			return
		}
		c.JSON(http.StatusOK, slots)
	}
}

// CreateSlotHandler adds a one-hour availability slot. The end time is
// derived server-side; clients send only date and start time.
func CreateSlotHandler(svc scheduleSvc.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req struct {
			Date      string `json:"date" binding:"required"`
			StartTime string `json:"startTime" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		slot, err := svc.CreateSlot(c.Request.Context(), userID, req.Date, req.StartTime)
		if err != nil {
			switch {
			case errors.Is(err, scheduleSvc.ErrPastDate),
				errors.Is(err, scheduleSvc.ErrInvalidDate),
				errors.Is(err, scheduleSvc.ErrInvalidStartTime),
				errors.Is(err, scheduleSvc.ErrCrossesMidnight):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, scheduleSvc.ErrSlotOverlap):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case errors.Is(err, scheduleSvc.ErrNotBookable):
				c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			default:
				logger.Error("Failed to create slot", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create slot"})
			}
			return
		}
		c.JSON(http.StatusCreated, slot)
	}
}

// DeleteSlotHandler removes one of the caller's slots.
func DeleteSlotHandler(svc scheduleSvc.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := svc.DeleteSlot(c.Request.Context(), userID, c.Param("id")); err != nil {
			if errors.Is(err, scheduleSvc.ErrSlotNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
				return
			}
			getLogger(c).Error("Failed to delete slot", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete slot"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	notificationSvc "unityconsult/services/notification"
)

// ListNotificationsHandler returns the caller's notifications, newest first.
func ListNotificationsHandler(svc notificationSvc.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		role, _ := c.Get("role")
		roleStr, _ := role.(string)

		notifications, err := svc.ListForRecipient(c.Request.Context(), roleStr, userID)
		if err != nil {
			getLogger(c).Error("Failed to list notifications", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
			return
		}
		c.JSON(http.StatusOK, notifications)
	}
}

// MarkNotificationsReadHandler marks the given notification ids as read.
// Only the caller's own notifications are affected.
func MarkNotificationsReadHandler(svc notificationSvc.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req struct {
			IDs []string `json:"ids" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		updated, err := svc.MarkRead(c.Request.Context(), userID, req.IDs)
		if err != nil {
			getLogger(c).Error("Failed to mark notifications read", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": updated})
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	adminSvc "unityconsult/services/admin"
)

// AdminListClientsHandler returns every client account with its profile.
func AdminListClientsHandler(svc adminSvc.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := svc.ListClients(c.Request.Context())
		if err != nil {
			getLogger(c).Error("Failed to list clients", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

// AdminListCounselorsHandler returns every counselor account, including those
// pending approval.
func AdminListCounselorsHandler(svc adminSvc.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := svc.ListCounselors(c.Request.Context())
		if err != nil {
			getLogger(c).Error("Failed to list counselors", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list counselors"})
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

// AdminApproveCounselorHandler approves and activates a counselor.
func AdminApproveCounselorHandler(svc adminSvc.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.ApproveCounselor(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, adminSvc.ErrCounselorNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Counselor not found"})
				return
			}
			getLogger(c).Error("Failed to approve counselor", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve counselor"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Counselor approved"})
	}
}

// AdminSetCounselorStatusHandler toggles a counselor ACTIVE or INACTIVE.
func AdminSetCounselorStatusHandler(svc adminSvc.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if err := svc.SetCounselorStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
			switch {
			case errors.Is(err, adminSvc.ErrCounselorNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Counselor not found"})
			case errors.Is(err, adminSvc.ErrInvalidStatus):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				getLogger(c).Error("Failed to set counselor status", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
	}
}

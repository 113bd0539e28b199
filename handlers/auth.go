package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"unityconsult/models"
	userSvc "unityconsult/services/user"
)

// SignUpHandler registers a new account. Role defaults to CLIENT when absent.
func SignUpHandler(svc userSvc.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req models.User
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid signup request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		resp, err := svc.RegisterUser(c.Request.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, userSvc.ErrEmailTaken):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case errors.Is(err, userSvc.ErrInvalidRole):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				logger.Error("Signup failed", zap.Error(err))
				c.JSON(http.StatusBadRequest, gin.H{"error": "Registration failed: " + err.Error()})
			}
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// SignInHandler authenticates and returns the token envelope the dashboards
// consume. The nested shape is load-bearing: clients read role and token from
// resp.token.role and resp.token.token.access_token.
func SignInHandler(svc userSvc.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid signin request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		resp, err := svc.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, userSvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			logger.Error("Signin failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": gin.H{
				"role": resp.Role,
				"token": gin.H{
					"access_token": resp.AccessToken,
				},
			},
			"id": resp.ID,
		})
	}
}

// SignOutHandler revokes the caller's current token.
func SignOutHandler(svc userSvc.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := svc.RevokeAuthToken(c.Request.Context(), userID); err != nil {
			getLogger(c).Error("Sign out failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign out failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
	}
}

// UpdateFCMTokenHandler stores the caller's device push token.
func UpdateFCMTokenHandler(svc userSvc.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req struct {
			Token string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if err := svc.UpdateFCMToken(c.Request.Context(), userID, req.Token); err != nil {
			getLogger(c).Error("Failed to update FCM token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update device token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Device token updated"})
	}
}

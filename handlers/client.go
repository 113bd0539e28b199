package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	clientSvc "unityconsult/services/client"
	storageSvc "unityconsult/services/storage"
)

// GetClientProfileHandler returns the authenticated client's profile.
func GetClientProfileHandler(svc clientSvc.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		profile, err := svc.GetProfile(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, clientSvc.ErrProfileNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Profile not completed"})
				return
			}
			getLogger(c).Error("Failed to get client profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// GetClientByIDHandler returns a client's profile by id, for counselors
// reviewing who booked them.
func GetClientByIDHandler(svc clientSvc.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := svc.GetProfile(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, clientSvc.ErrProfileNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
				return
			}
			getLogger(c).Error("Failed to get client profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// CompleteClientProfileHandler saves the client's secondary form. Multipart:
// the optional profile picture is uploaded first.
func CompleteClientProfileHandler(svc clientSvc.ClientService, store storageSvc.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		req := clientSvc.CompleteProfileRequest{
			Phone:         c.PostForm("phone"),
			Address:       c.PostForm("address"),
			Gender:        c.PostForm("gender"),
			MaritalStatus: c.PostForm("maritalStatus"),
		}

		pictureURL, err := uploadFormFile(c, store, "profilePicture", "clients/pictures")
		if err != nil {
			logger.Error("Profile picture upload failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload profile picture"})
			return
		}
		req.ProfilePicture = pictureURL

		profile, err := svc.CompleteProfile(c.Request.Context(), userID, req)
		if err != nil {
			logger.Error("Failed to complete client profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

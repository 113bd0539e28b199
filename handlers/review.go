package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	reviewSvc "unityconsult/services/review"
)

// SubmitReviewHandler stores a client's rating of a counselor.
func SubmitReviewHandler(svc reviewSvc.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req struct {
			CounselorID string `json:"counselorId" binding:"required"`
			Rating      int    `json:"rating" binding:"required"`
			Comment     string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		review, err := svc.SubmitReview(c.Request.Context(), clientID, req.CounselorID, req.Rating, req.Comment)
		if err != nil {
			switch {
			case errors.Is(err, reviewSvc.ErrInvalidRating):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, reviewSvc.ErrAlreadyReviewed):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				getLogger(c).Error("Failed to submit review", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
			}
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}

// ListCounselorReviewsHandler returns all reviews for one counselor.
func ListCounselorReviewsHandler(svc reviewSvc.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := svc.ListByCounselor(c.Request.Context(), c.Param("id"))
		if err != nil {
			getLogger(c).Error("Failed to list reviews", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// ReviewAveragesHandler returns per-counselor rating averages, keyed by
// counselor id. The directory page fetches this once and joins locally.
func ReviewAveragesHandler(svc reviewSvc.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		averages, err := svc.Averages(c.Request.Context())
		if err != nil {
			getLogger(c).Error("Failed to compute review averages", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute review averages"})
			return
		}
		c.JSON(http.StatusOK, averages)
	}
}

// ListMyReviewsHandler returns the reviews the authenticated client wrote.
func ListMyReviewsHandler(svc reviewSvc.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		reviews, err := svc.ListByClient(c.Request.Context(), clientID)
		if err != nil {
			getLogger(c).Error("Failed to list reviews", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	counselorSvc "unityconsult/services/counselor"
	reviewSvc "unityconsult/services/review"
	storageSvc "unityconsult/services/storage"
)

// ListCounselorsHandler returns the bookable counselor directory with rating
// aggregates merged in.
func ListCounselorsHandler(svc counselorSvc.CounselorService, reviews reviewSvc.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		summaries, err := svc.ListBookable(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list counselors", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list counselors"})
			return
		}

		averages, err := reviews.Averages(c.Request.Context())
		if err != nil {
			logger.Warn("Failed to load rating aggregates", zap.Error(err))
			averages = nil
		}

		type listing struct {
			UserID         string  `json:"userId"`
			FirstName      string  `json:"firstName"`
			LastName       string  `json:"lastName"`
			Specialization string  `json:"specialization"`
			ProfilePicture string  `json:"profilePicture,omitempty"`
			AverageRating  float64 `json:"averageRating"`
			ReviewCount    int     `json:"reviewCount"`
		}
		out := make([]listing, 0, len(summaries))
		for _, s := range summaries {
			l := listing{
				UserID:         s.UserID,
				FirstName:      s.FirstName,
				LastName:       s.LastName,
				Specialization: s.Specialization,
				ProfilePicture: s.ProfilePicture,
			}
			if avg, ok := averages[s.UserID]; ok {
				l.AverageRating = avg.AverageRating
				l.ReviewCount = avg.ReviewCount
			}
			out = append(out, l)
		}
		c.JSON(http.StatusOK, out)
	}
}

// GetCounselorHandler returns one counselor's full profile.
func GetCounselorHandler(svc counselorSvc.CounselorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := svc.GetProfile(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, counselorSvc.ErrProfileNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Counselor not found"})
				return
			}
			getLogger(c).Error("Failed to get counselor", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get counselor"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// CompleteCounselorProfileHandler saves the counselor's secondary form. The
// form is multipart: profile picture and certificate arrive as files and are
// uploaded before the profile is stored.
func CompleteCounselorProfileHandler(svc counselorSvc.CounselorService, store storageSvc.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		req := counselorSvc.CompleteProfileRequest{
			Bio:            c.PostForm("bio"),
			Specialization: c.PostForm("specialization"),
		}
		if langs := c.PostForm("languagesSpoken"); langs != "" {
			for _, l := range strings.Split(langs, ",") {
				if l = strings.TrimSpace(l); l != "" {
					req.LanguagesSpoken = append(req.LanguagesSpoken, l)
				}
			}
		}

		pictureURL, err := uploadFormFile(c, store, "profilePicture", "counselors/pictures")
		if err != nil {
			logger.Error("Profile picture upload failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload profile picture"})
			return
		}
		req.ProfilePicture = pictureURL

		certURL, err := uploadFormFile(c, store, "certificate", "counselors/certificates")
		if err != nil {
			logger.Error("Certificate upload failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload certificate"})
			return
		}
		req.CertificateURL = certURL

		profile, err := svc.CompleteProfile(c.Request.Context(), userID, req)
		if err != nil {
			logger.Error("Failed to complete counselor profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// uploadFormFile uploads the named multipart file when present. A missing
// file is not an error: the caller keeps whatever was stored before.
func uploadFormFile(c *gin.Context, store storageSvc.StorageService, field, folder string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	asset, err := store.Upload(c.Request.Context(), f, folder)
	if err != nil {
		return "", err
	}
	return asset.SecureURL, nil
}

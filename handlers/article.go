package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	articleSvc "unityconsult/services/article"
	counselorSvc "unityconsult/services/counselor"
	storageSvc "unityconsult/services/storage"
)

// PublishArticleHandler stores a counselor's article. Multipart: the optional
// cover image is uploaded first.
func PublishArticleHandler(svc articleSvc.ArticleService, store storageSvc.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		counselorID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		title := c.PostForm("title")
		content := c.PostForm("content")

		coverURL, err := uploadFormFile(c, store, "coverImage", "articles/covers")
		if err != nil {
			logger.Error("Cover image upload failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload cover image"})
			return
		}

		article, err := svc.Publish(c.Request.Context(), counselorID, title, content, coverURL)
		if err != nil {
			switch {
			case errors.Is(err, articleSvc.ErrEmptyArticle):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, articleSvc.ErrNotBookable),
				errors.Is(err, counselorSvc.ErrProfileNotFound):
				c.JSON(http.StatusForbidden, gin.H{"error": "Only approved counselors can publish articles"})
			default:
				logger.Error("Failed to publish article", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish article"})
			}
			return
		}
		c.JSON(http.StatusCreated, article)
	}
}

// ListArticlesHandler returns the public articles feed.
func ListArticlesHandler(svc articleSvc.ArticleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		articles, err := svc.ListAll(c.Request.Context())
		if err != nil {
			getLogger(c).Error("Failed to list articles", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list articles"})
			return
		}
		c.JSON(http.StatusOK, articles)
	}
}

// ListCounselorArticlesHandler returns one counselor's published articles.
func ListCounselorArticlesHandler(svc articleSvc.ArticleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		articles, err := svc.ListByCounselor(c.Request.Context(), c.Param("id"))
		if err != nil {
			getLogger(c).Error("Failed to list articles", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list articles"})
			return
		}
		c.JSON(http.StatusOK, articles)
	}
}

// ListMyArticlesHandler returns the authenticated counselor's own articles.
func ListMyArticlesHandler(svc articleSvc.ArticleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		counselorID, ok := authedUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		articles, err := svc.ListByCounselor(c.Request.Context(), counselorID)
		if err != nil {
			getLogger(c).Error("Failed to list articles", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list articles"})
			return
		}
		c.JSON(http.StatusOK, articles)
	}
}

// Package article manages counselor-authored posts.
package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	articleRepo "unityconsult/database/repository/article"
	"unityconsult/models"
	"unityconsult/services/counselor"
)

var (
	ErrNotBookable  = errors.New("counselor must be active and approved to publish articles")
	ErrEmptyArticle = errors.New("article title and content are required")
)

// ArticleService exposes article publishing and listing.
type ArticleService interface {
	Publish(ctx context.Context, counselorID, title, content, coverImage string) (*models.Article, error)
	ListAll(ctx context.Context) ([]models.Article, error)
	ListByCounselor(ctx context.Context, counselorID string) ([]models.Article, error)
}

// DefaultArticleService implements ArticleService.
type DefaultArticleService struct {
	Repo         articleRepo.ArticleRepository
	CounselorSvc counselor.CounselorService
}

// Publish stores an article. Only bookable counselors may publish.
func (s *DefaultArticleService) Publish(ctx context.Context, counselorID, title, content, coverImage string) (*models.Article, error) {
	if title == "" || content == "" {
		return nil, ErrEmptyArticle
	}
	profile, err := s.CounselorSvc.GetProfile(ctx, counselorID)
	if err != nil {
		return nil, err
	}
	if !profile.Bookable() {
		return nil, ErrNotBookable
	}

	article := &models.Article{
		ID:          uuid.New().String(),
		CounselorID: counselorID,
		Title:       title,
		Content:     content,
		CoverImage:  coverImage,
		CreatedAt:   time.Now(),
	}
	if err := s.Repo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to save article: %w", err)
	}
	return article, nil
}

func (s *DefaultArticleService) ListAll(ctx context.Context) ([]models.Article, error) {
	return s.Repo.ListAll(ctx)
}

func (s *DefaultArticleService) ListByCounselor(ctx context.Context, counselorID string) ([]models.Article, error) {
	return s.Repo.ListByCounselor(ctx, counselorID)
}

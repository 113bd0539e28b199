// Package review handles client ratings of counselors.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	reviewRepo "unityconsult/database/repository/review"
	"unityconsult/models"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrAlreadyReviewed = errors.New("client has already reviewed this counselor")
)

// ReviewService exposes review creation and aggregate lookups.
type ReviewService interface {
	SubmitReview(ctx context.Context, clientID, counselorID string, rating int, comment string) (*models.Review, error)
	ListByCounselor(ctx context.Context, counselorID string) ([]models.Review, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Review, error)
	Averages(ctx context.Context) (map[string]models.ReviewAverage, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Repo reviewRepo.ReviewRepository
}

// SubmitReview stores a rating. A client may review each counselor once;
// subsequent attempts are rejected rather than overwritten.
func (s *DefaultReviewService) SubmitReview(ctx context.Context, clientID, counselorID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	existing, err := s.Repo.GetByPair(ctx, clientID, counselorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{
		ID:          uuid.New().String(),
		CounselorID: counselorID,
		ClientID:    clientID,
		Rating:      rating,
		Comment:     comment,
		CreatedAt:   time.Now(),
	}
	if err := s.Repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return review, nil
}

func (s *DefaultReviewService) ListByCounselor(ctx context.Context, counselorID string) ([]models.Review, error) {
	return s.Repo.ListByCounselor(ctx, counselorID)
}

func (s *DefaultReviewService) ListByClient(ctx context.Context, clientID string) ([]models.Review, error) {
	return s.Repo.ListByClient(ctx, clientID)
}

// Averages returns per-counselor rating aggregates keyed by counselor id,
// ready to merge into listing responses.
func (s *DefaultReviewService) Averages(ctx context.Context) (map[string]models.ReviewAverage, error) {
	rows, err := s.Repo.Averages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	out := make(map[string]models.ReviewAverage, len(rows))
	for _, r := range rows {
		out[r.CounselorID] = r
	}
	return out, nil
}

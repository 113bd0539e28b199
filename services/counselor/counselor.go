package counselor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	counselorRepo "unityconsult/database/repository/counselor"
	userRepo "unityconsult/database/repository/user"
	"unityconsult/models"
	"unityconsult/utils"
)

// CompleteProfileRequest carries the secondary-form fields a counselor
// submits after signup. Picture and certificate arrive as multipart files
// and are uploaded before this request is built.
type CompleteProfileRequest struct {
	Bio             string
	Specialization  string
	LanguagesSpoken []string
	ProfilePicture  string
	CertificateURL  string
}

// CounselorService exposes counselor profile operations.
type CounselorService interface {
	ListBookable(ctx context.Context) ([]models.CounselorSummary, error)
	GetProfile(ctx context.Context, userID string) (*models.CounselorProfile, error)
	GetSummary(ctx context.Context, userID string) (*models.CounselorSummary, error)
	CompleteProfile(ctx context.Context, userID string, req CompleteProfileRequest) (*models.CounselorProfile, error)
}

// DefaultCounselorService implements CounselorService.
type DefaultCounselorService struct {
	Repo     counselorRepo.CounselorRepository
	UserRepo userRepo.UserRepository
}

// ListBookable returns summaries for every counselor who is ACTIVE and
// approved. Counselors failing the gate never appear in listings.
func (s *DefaultCounselorService) ListBookable(ctx context.Context) ([]models.CounselorSummary, error) {
	profiles, err := s.Repo.ListBookable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list counselors: %w", err)
	}

	summaries := make([]models.CounselorSummary, 0, len(profiles))
	for _, p := range profiles {
		summary, err := s.summarize(ctx, p)
		if err != nil {
			utils.GetLogger().Warn("ListBookable: skipping counselor without user record",
				zap.String("userId", p.UserID), zap.Error(err))
			continue
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *DefaultCounselorService) GetProfile(ctx context.Context, userID string) (*models.CounselorProfile, error) {
	profile, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// GetSummary returns the listing projection for one bookable counselor.
func (s *DefaultCounselorService) GetSummary(ctx context.Context, userID string) (*models.CounselorSummary, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.Bookable() {
		return nil, ErrNotBookable
	}
	return s.summarize(ctx, *profile)
}

func (s *DefaultCounselorService) summarize(ctx context.Context, p models.CounselorProfile) (*models.CounselorSummary, error) {
	u, err := s.UserRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %s not found", p.UserID)
	}
	return &models.CounselorSummary{
		UserID:         p.UserID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Specialization: p.Specialization,
		ProfilePicture: p.ProfilePicture,
	}, nil
}

// CompleteProfile creates or updates the counselor's professional profile.
// New profiles start INACTIVE and unapproved until an admin acts.
func (s *DefaultCounselorService) CompleteProfile(ctx context.Context, userID string, req CompleteProfileRequest) (*models.CounselorProfile, error) {
	existing, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := models.CounselorProfile{
		UserID:          userID,
		Bio:             req.Bio,
		Specialization:  req.Specialization,
		LanguagesSpoken: req.LanguagesSpoken,
		Status:          models.CounselorStatusInactive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if existing != nil {
		// Approval and status are admin-controlled; profile edits keep them.
		profile.Status = existing.Status
		profile.IsApproved = existing.IsApproved
		profile.CreatedAt = existing.CreatedAt
		profile.ProfilePicture = existing.ProfilePicture
		profile.CertificateURL = existing.CertificateURL
	}
	if req.ProfilePicture != "" {
		profile.ProfilePicture = req.ProfilePicture
	}
	if req.CertificateURL != "" {
		profile.CertificateURL = req.CertificateURL
	}

	if err := s.Repo.Upsert(ctx, &profile); err != nil {
		return nil, fmt.Errorf("failed to save counselor profile: %w", err)
	}
	return &profile, nil
}

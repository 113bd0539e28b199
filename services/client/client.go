package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	clientRepo "unityconsult/database/repository/client"
	"unityconsult/models"
)

var ErrProfileNotFound = errors.New("client profile not found")

// CompleteProfileRequest carries the demographic fields of the client's
// secondary form.
type CompleteProfileRequest struct {
	Phone          string
	Address        string
	Gender         string
	MaritalStatus  string
	ProfilePicture string
}

// ClientService exposes client profile operations.
type ClientService interface {
	GetProfile(ctx context.Context, userID string) (*models.ClientProfile, error)
	CompleteProfile(ctx context.Context, userID string, req CompleteProfileRequest) (*models.ClientProfile, error)
}

// DefaultClientService implements ClientService.
type DefaultClientService struct {
	Repo clientRepo.ClientRepository
}

func (s *DefaultClientService) GetProfile(ctx context.Context, userID string) (*models.ClientProfile, error) {
	profile, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *DefaultClientService) CompleteProfile(ctx context.Context, userID string, req CompleteProfileRequest) (*models.ClientProfile, error) {
	existing, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := models.ClientProfile{
		UserID:        userID,
		Phone:         req.Phone,
		Address:       req.Address,
		Gender:        req.Gender,
		MaritalStatus: req.MaritalStatus,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if existing != nil {
		profile.CreatedAt = existing.CreatedAt
		profile.ProfilePicture = existing.ProfilePicture
	}
	if req.ProfilePicture != "" {
		profile.ProfilePicture = req.ProfilePicture
	}

	if err := s.Repo.Upsert(ctx, &profile); err != nil {
		return nil, fmt.Errorf("failed to save client profile: %w", err)
	}
	return &profile, nil
}

// Package admin implements the back-office operations: listing platform
// users and controlling counselor approval and availability status.
package admin

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	clientRepo "unityconsult/database/repository/client"
	counselorRepo "unityconsult/database/repository/counselor"
	userRepo "unityconsult/database/repository/user"
	"unityconsult/models"
	"unityconsult/services/notification"
	"unityconsult/utils"
)

var (
	ErrCounselorNotFound = errors.New("counselor profile not found")
	ErrInvalidStatus     = errors.New("status must be ACTIVE or INACTIVE")
)

// ClientRecord joins a client account with its profile for the admin table.
type ClientRecord struct {
	User    models.User           `json:"user"`
	Profile *models.ClientProfile `json:"profile,omitempty"`
}

// CounselorRecord joins a counselor account with its professional profile.
type CounselorRecord struct {
	User    models.User              `json:"user"`
	Profile *models.CounselorProfile `json:"profile,omitempty"`
}

// AdminService exposes the admin dashboard operations.
type AdminService interface {
	ListClients(ctx context.Context) ([]ClientRecord, error)
	ListCounselors(ctx context.Context) ([]CounselorRecord, error)
	ApproveCounselor(ctx context.Context, counselorID string) error
	SetCounselorStatus(ctx context.Context, counselorID, status string) error
}

// DefaultAdminService implements AdminService.
type DefaultAdminService struct {
	UserRepo      userRepo.UserRepository
	ClientRepo    clientRepo.ClientRepository
	CounselorRepo counselorRepo.CounselorRepository
	Notifier      notification.NotificationService
}

// ListClients returns every client account with its profile when one exists.
func (s *DefaultAdminService) ListClients(ctx context.Context) ([]ClientRecord, error) {
	users, err := s.UserRepo.ListByRole(ctx, models.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	records := make([]ClientRecord, 0, len(users))
	for _, u := range users {
		profile, err := s.ClientRepo.GetByUserID(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load client profile %s: %w", u.ID, err)
		}
		records = append(records, ClientRecord{User: u, Profile: profile})
	}
	return records, nil
}

// ListCounselors returns every counselor account with its profile, including
// those still pending approval.
func (s *DefaultAdminService) ListCounselors(ctx context.Context) ([]CounselorRecord, error) {
	users, err := s.UserRepo.ListByRole(ctx, models.RoleCounselor)
	if err != nil {
		return nil, fmt.Errorf("failed to list counselors: %w", err)
	}
	records := make([]CounselorRecord, 0, len(users))
	for _, u := range users {
		profile, err := s.CounselorRepo.GetByUserID(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load counselor profile %s: %w", u.ID, err)
		}
		records = append(records, CounselorRecord{User: u, Profile: profile})
	}
	return records, nil
}

// ApproveCounselor marks the counselor approved and activates them so they
// become bookable immediately. The counselor is notified.
func (s *DefaultAdminService) ApproveCounselor(ctx context.Context, counselorID string) error {
	profile, err := s.CounselorRepo.GetByUserID(ctx, counselorID)
	if err != nil {
		return fmt.Errorf("failed to load counselor profile: %w", err)
	}
	if profile == nil {
		return ErrCounselorNotFound
	}

	if err := s.CounselorRepo.SetApproval(ctx, counselorID, true); err != nil {
		return fmt.Errorf("failed to approve counselor: %w", err)
	}
	if err := s.CounselorRepo.SetStatus(ctx, counselorID, models.CounselorStatusActive); err != nil {
		return fmt.Errorf("failed to activate counselor: %w", err)
	}

	err = s.Notifier.Notify(ctx, counselorID, models.RoleCounselor, notification.TypeCounselorApproved,
		"Your counselor profile has been approved. You can now publish availability.", nil)
	if err != nil {
		utils.GetLogger().Warn("failed to notify approved counselor",
			zap.String("counselorId", counselorID), zap.Error(err))
	}
	return nil
}

// SetCounselorStatus toggles a counselor between ACTIVE and INACTIVE.
// Deactivating hides the counselor from listings without touching approval.
func (s *DefaultAdminService) SetCounselorStatus(ctx context.Context, counselorID, status string) error {
	if status != models.CounselorStatusActive && status != models.CounselorStatusInactive {
		return ErrInvalidStatus
	}
	profile, err := s.CounselorRepo.GetByUserID(ctx, counselorID)
	if err != nil {
		return fmt.Errorf("failed to load counselor profile: %w", err)
	}
	if profile == nil {
		return ErrCounselorNotFound
	}
	if err := s.CounselorRepo.SetStatus(ctx, counselorID, status); err != nil {
		return fmt.Errorf("failed to update counselor status: %w", err)
	}
	return nil
}

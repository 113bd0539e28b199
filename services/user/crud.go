package user

import (
	"context"
	"time"

	"unityconsult/models"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	userRec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if userRec == nil {
		return nil, ErrUserNotFound
	}
	return userRec, nil
}

func (s *DefaultUserService) UpdateUser(ctx context.Context, user models.User) (*models.User, error) {
	existing, err := s.Repo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	// Identity and credential fields never change through this path.
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	userRec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if userRec == nil {
		return ErrUserNotFound
	}
	userRec.FCMToken = token
	userRec.UpdatedAt = time.Now()
	return s.Repo.Update(ctx, userRec)
}

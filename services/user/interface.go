package user

import (
	"context"

	userRepo "unityconsult/database/repository/user"
	"unityconsult/models"
)

// AuthResponse carries the authenticated user's identity and access token.
type AuthResponse struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
}

// UserService defines account management operations.
type UserService interface {
	RegisterUser(ctx context.Context, user models.User) (*AuthResponse, error)
	AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	RevokeAuthToken(ctx context.Context, id string) error
	UpdateFCMToken(ctx context.Context, id, token string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

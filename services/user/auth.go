package user

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"unityconsult/models"
	"unityconsult/utils"
)

const tokenTTL = 24 * time.Hour

// verifyPasswordComplexity checks that the password contains at least one
// lowercase letter, one uppercase letter, one digit, and one symbol.
func verifyPasswordComplexity(pw string) error {
	var (
		hasMinLen = len(pw) >= 8
		hasUpper  = regexp.MustCompile(`[A-Z]`).MatchString(pw)
		hasLower  = regexp.MustCompile(`[a-z]`).MatchString(pw)
		hasNumber = regexp.MustCompile(`[0-9]`).MatchString(pw)
		hasSymbol = regexp.MustCompile(`[\W_]`).MatchString(pw)
	)
	if !hasMinLen {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must include at least one number")
	}
	if !hasSymbol {
		return fmt.Errorf("password must include at least one symbol")
	}
	return nil
}

func validRole(role string) bool {
	switch role {
	case models.RoleClient, models.RoleCounselor, models.RoleAdmin:
		return true
	}
	return false
}

// RegisterUser creates a new account, generates a token and stores its hash.
func (s *DefaultUserService) RegisterUser(ctx context.Context, user models.User) (*AuthResponse, error) {
	if user.Email == "" || user.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if user.FirstName == "" || user.LastName == "" {
		return nil, fmt.Errorf("first and last name are required")
	}
	if user.Role == "" {
		user.Role = models.RoleClient
	}
	if !validRole(user.Role) {
		return nil, ErrInvalidRole
	}
	if err := verifyPasswordComplexity(user.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(ctx, user.Email)
	if err != nil {
		utils.GetLogger().Error("Failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	user.PasswordHash = string(hashedPassword)
	user.Password = ""

	user.ID = uuid.New().String()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, tokenTTL)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	user.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(ctx, &user); err != nil {
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &AuthResponse{ID: user.ID, Role: user.Role, AccessToken: token}, nil
}

// AuthenticateUser verifies credentials and issues a fresh token.
func (s *DefaultUserService) AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error) {
	userRec, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Email, userRec.Role, tokenTTL)
	if err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	userRec.TokenHash = utils.HashToken(token)
	userRec.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, userRec); err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	// Drop any stale cached auth entry for this user.
	cacheKey := utils.AuthCachePrefix + userRec.ID
	if err := utils.GetAuthCacheClient().Del(ctx, cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("AuthenticateUser: failed to clear auth cache", zap.Error(err))
	}

	return &AuthResponse{ID: userRec.ID, Role: userRec.Role, AccessToken: token}, nil
}

// RevokeAuthToken clears the stored token hash, invalidating the current token.
func (s *DefaultUserService) RevokeAuthToken(ctx context.Context, id string) error {
	userRec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if userRec == nil {
		return ErrUserNotFound
	}
	userRec.TokenHash = ""
	userRec.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, userRec); err != nil {
		return err
	}
	cacheKey := utils.AuthCachePrefix + id
	return utils.GetAuthCacheClient().Del(ctx, cacheKey).Err()
}

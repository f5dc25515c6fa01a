package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

// UserService handles user profile operations
type UserService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser applies a partial profile update. A password in the request is
// hashed before it reaches the store.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req ports.UpdateUserRequest) (*entities.User, error) {
	patch := ports.UserPatch{
		Email:           req.Email,
		Name:            req.Name,
		AvatarURL:       req.AvatarURL,
		ThemePreference: req.ThemePreference,
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	updated, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User updated", "user_id", id)

	return updated, nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one
func (s *UserService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !VerifyPassword(user, currentPassword) {
		return entities.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	if _, err := s.userRepo.Update(ctx, userID, ports.UserPatch{PasswordHash: &hashed}); err != nil {
		return err
	}

	s.logger.Info("Password changed", "user_id", userID)

	return nil
}

// DeleteUser removes a user account
func (s *UserService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info("User deleted", "user_id", id)
	}

	return deleted, nil
}

// VerifyPassword checks a plaintext password against the stored bcrypt hash.
func VerifyPassword(user *entities.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) *entities.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := repo.Create(context.Background(), &entities.User{
		Email:           email,
		PasswordHash:    string(hash),
		ThemePreference: entities.ThemeLight,
	})
	require.NoError(t, err)
	return user
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, logger.NewNop())

	user := seedUser(t, repo, "ada@example.com", "old password")

	err := svc.ChangePassword(context.Background(), user.ID, "old password", "new password!")
	require.NoError(t, err)

	current, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(current, "new password!"))
	assert.False(t, VerifyPassword(current, "old password"))
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, logger.NewNop())

	user := seedUser(t, repo, "ada@example.com", "old password")

	err := svc.ChangePassword(context.Background(), user.ID, "not the password", "new password!")
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestUpdateUserHashesNewPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, logger.NewNop())

	user := seedUser(t, repo, "ada@example.com", "old password")

	theme := entities.ThemeDark
	updated, err := svc.UpdateUser(context.Background(), user.ID, ports.UpdateUserRequest{
		Password:        strPtr("fresh password"),
		ThemePreference: &theme,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.ThemeDark, updated.ThemePreference)
	assert.True(t, VerifyPassword(updated, "fresh password"))
	assert.NotEqual(t, "fresh password", updated.PasswordHash)
}

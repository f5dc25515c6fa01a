package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/config"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

type fakeUserRepo struct {
	users  map[int64]*entities.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entities.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	stored := *user
	stored.ID = r.nextID
	r.nextID++
	r.users[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, id int64, patch ports.UserPatch) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	if patch.Name != nil {
		user.Name = patch.Name
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = patch.AvatarURL
	}
	if patch.ThemePreference != nil {
		user.ThemePreference = *patch.ThemePreference
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:           "test-secret",
		ExpiresIn:        time.Hour,
		RefreshExpiresIn: 24 * time.Hour,
		Issuer:           "prodotask-test",
	}
}

func newAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, testJWTConfig(), logger.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	resp, err := svc.Register(context.Background(), ports.RegisterRequest{
		Name:     strPtr("Ada"),
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	loginResp, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, loginResp.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	req := ports.RegisterRequest{Name: strPtr("Ada"), Email: "ada@example.com", Password: "correct horse"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, entities.ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), ports.RegisterRequest{
		Name:     strPtr("Ada"),
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), ports.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), ports.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestValidateTokenRejectsRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	resp, err := svc.Register(context.Background(), ports.RegisterRequest{
		Name:     strPtr("Ada"),
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	_, err = svc.ValidateToken(resp.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	resp, err := svc.Register(context.Background(), ports.RegisterRequest{
		Name:     strPtr("Ada"),
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Access tokens are not accepted on the refresh path.
	_, err = svc.Refresh(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestRefreshRejectsDeletedUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	resp, err := svc.Register(context.Background(), ports.RegisterRequest{
		Name:     strPtr("Ada"),
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = repo.Delete(context.Background(), resp.User.ID)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

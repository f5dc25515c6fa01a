package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/database"
	"github.com/prodotask/server/internal/ports"
)

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	theme := user.ThemePreference
	if theme == "" {
		theme = entities.ThemeLight
	}

	res, err := r.db.DB.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, name, avatar_url, theme_preference)
		VALUES (?, ?, ?, ?, ?)`,
		user.Email, user.PasswordHash, user.Name, user.AvatarURL, theme,
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrCreationFailed
		}
		return nil, err
	}

	return created, nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	var user entities.User
	err := r.db.DB.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.DB.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, id int64, patch ports.UserPatch) (*entities.User, error) {
	set := &assignments{}
	if patch.Email != nil {
		set.set("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		set.set("password_hash", *patch.PasswordHash)
	}
	if patch.Name != nil {
		set.set("name", *patch.Name)
	}
	if patch.AvatarURL != nil {
		set.set("avatar_url", *patch.AvatarURL)
	}
	if patch.ThemePreference != nil {
		set.set("theme_preference", *patch.ThemePreference)
	}

	if set.empty() {
		return r.GetByID(ctx, id)
	}

	args := append(set.args, id)
	if _, err := r.db.DB.ExecContext(ctx, `UPDATE users SET `+set.clause()+` WHERE id = ?`, args...); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	return affected > 0, nil
}

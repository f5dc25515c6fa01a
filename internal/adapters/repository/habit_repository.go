package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/database"
	"github.com/prodotask/server/internal/ports"
)

// HabitRepositoryImpl implements the HabitRepository interface
type HabitRepositoryImpl struct {
	db *database.DB
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(db *database.DB) ports.HabitRepository {
	return &HabitRepositoryImpl{db: db}
}

func (r *HabitRepositoryImpl) Create(ctx context.Context, habit *entities.Habit) (*entities.Habit, error) {
	res, err := r.db.DB.ExecContext(ctx,
		`INSERT INTO habits (name, frequency, user_id) VALUES (?, ?, ?)`,
		habit.Name, habit.Frequency, habit.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrHabitNotFound) {
			return nil, entities.ErrCreationFailed
		}
		return nil, err
	}

	return created, nil
}

func (r *HabitRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Habit, error) {
	var habit entities.Habit
	err := r.db.DB.GetContext(ctx, &habit, `SELECT * FROM habits WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrHabitNotFound
		}
		return nil, fmt.Errorf("get habit by id: %w", err)
	}

	return &habit, nil
}

func (r *HabitRepositoryImpl) ListByUser(ctx context.Context, userID int64) ([]*entities.Habit, error) {
	var habits []*entities.Habit
	err := r.db.DB.SelectContext(ctx, &habits,
		`SELECT * FROM habits WHERE user_id = ? ORDER BY name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	return habits, nil
}

func (r *HabitRepositoryImpl) Update(ctx context.Context, id int64, patch ports.HabitPatch) (*entities.Habit, error) {
	set := &assignments{}
	if patch.Name != nil {
		set.set("name", *patch.Name)
	}
	if patch.Frequency != nil {
		set.set("frequency", *patch.Frequency)
	}

	if set.empty() {
		return r.GetByID(ctx, id)
	}

	args := append(set.args, id)
	if _, err := r.db.DB.ExecContext(ctx, `UPDATE habits SET `+set.clause()+` WHERE id = ?`, args...); err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a habit and all of its logs. The two deletes run in one
// transaction so a failure cannot leave orphaned logs behind.
func (r *HabitRepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	var removed bool

	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM habit_logs WHERE habit_id = ?`, id); err != nil {
			return fmt.Errorf("delete habit logs: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete habit: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete habit: %w", err)
		}

		removed = affected > 0
		return nil
	})

	return removed, err
}

// Log records a completion for the given calendar date and advances the
// streak counter. The read-insert-update sequence runs in one transaction;
// a log that already exists for the date is an idempotent no-op.
func (r *HabitRepositoryImpl) Log(ctx context.Context, habitID int64, date string) (bool, error) {
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var habit entities.Habit
		if err := tx.GetContext(ctx, &habit, `SELECT * FROM habits WHERE id = ?`, habitID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return entities.ErrHabitNotFound
			}
			return fmt.Errorf("get habit: %w", err)
		}

		var existing entities.HabitLog
		err := tx.GetContext(ctx, &existing,
			`SELECT * FROM habit_logs WHERE habit_id = ? AND completed_date = ?`, habitID, date)
		if err == nil {
			// Already logged for this date.
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("get habit log: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO habit_logs (habit_id, completed_date) VALUES (?, ?)`, habitID, date); err != nil {
			return fmt.Errorf("insert habit log: %w", err)
		}

		streak, lastLogged, err := habit.AdvanceStreak(date)
		if err != nil {
			return fmt.Errorf("advance streak: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE habits SET streak = ?, last_logged = ? WHERE id = ?`, streak, lastLogged, habitID); err != nil {
			return fmt.Errorf("update habit streak: %w", err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *HabitRepositoryImpl) Logs(ctx context.Context, habitID int64, start, end string) ([]*entities.HabitLog, error) {
	var logs []*entities.HabitLog
	err := r.db.DB.SelectContext(ctx, &logs, `
		SELECT * FROM habit_logs
		WHERE habit_id = ? AND completed_date BETWEEN ? AND ?
		ORDER BY completed_date`, habitID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list habit logs: %w", err)
	}

	return logs, nil
}

func (r *HabitRepositoryImpl) LogFor(ctx context.Context, habitID int64, date string) (*entities.HabitLog, error) {
	var log entities.HabitLog
	err := r.db.DB.GetContext(ctx, &log,
		`SELECT * FROM habit_logs WHERE habit_id = ? AND completed_date = ?`, habitID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get habit log: %w", err)
	}

	return &log, nil
}

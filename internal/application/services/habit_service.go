package services

import (
	"context"
	"fmt"

	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

// HabitService handles habit CRUD and the streak lifecycle.
type HabitService struct {
	habitRepo ports.HabitRepository
	logger    *logger.Logger
}

// NewHabitService creates a new habit service
func NewHabitService(habitRepo ports.HabitRepository, logger *logger.Logger) *HabitService {
	return &HabitService{
		habitRepo: habitRepo,
		logger:    logger,
	}
}

// CreateHabit creates a new habit with a zero streak
func (s *HabitService) CreateHabit(ctx context.Context, userID int64, req ports.CreateHabitRequest) (*entities.Habit, error) {
	habit := &entities.Habit{
		Name:      req.Name,
		Frequency: req.Frequency,
		UserID:    userID,
	}

	created, err := s.habitRepo.Create(ctx, habit)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	s.logger.Info("Habit created", "habit_id", created.ID, "name", created.Name)

	return created, nil
}

// GetHabit retrieves a habit by ID
func (s *HabitService) GetHabit(ctx context.Context, id int64) (*entities.Habit, error) {
	return s.habitRepo.GetByID(ctx, id)
}

// ListHabits retrieves a user's habits ordered by name
func (s *HabitService) ListHabits(ctx context.Context, userID int64) ([]*entities.Habit, error) {
	return s.habitRepo.ListByUser(ctx, userID)
}

// UpdateHabit applies a partial update to name and frequency
func (s *HabitService) UpdateHabit(ctx context.Context, id int64, req ports.UpdateHabitRequest) (*entities.Habit, error) {
	return s.habitRepo.Update(ctx, id, ports.HabitPatch{
		Name:      req.Name,
		Frequency: req.Frequency,
	})
}

// DeleteHabit removes a habit together with all of its logs
func (s *HabitService) DeleteHabit(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.habitRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info("Habit deleted", "habit_id", id)
	}

	return deleted, nil
}

// LogHabit records a completion for the given date (today when absent) and
// advances the streak. Logging the same date twice is a no-op.
func (s *HabitService) LogHabit(ctx context.Context, habitID int64, date *string) (bool, error) {
	day := entities.Today()
	if date != nil {
		day = *date
	}

	ok, err := s.habitRepo.Log(ctx, habitID, day)
	if err != nil {
		return false, err
	}

	s.logger.Info("Habit logged", "habit_id", habitID, "date", day)

	return ok, nil
}

// GetHabitLogs retrieves a habit's logs within [start, end] ordered by date
func (s *HabitService) GetHabitLogs(ctx context.Context, habitID int64, start, end string) ([]*entities.HabitLog, error) {
	if _, err := s.habitRepo.GetByID(ctx, habitID); err != nil {
		return nil, err
	}
	return s.habitRepo.Logs(ctx, habitID, start, end)
}

// DayStatus reports, for every habit the user has, whether it was logged on
// the given date. Drives the daily checklist view.
func (s *HabitService) DayStatus(ctx context.Context, userID int64, date string) ([]ports.HabitDayStatus, error) {
	habits, err := s.habitRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	statuses := make([]ports.HabitDayStatus, 0, len(habits))
	for _, habit := range habits {
		log, err := s.habitRepo.LogFor(ctx, habit.ID, date)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, ports.HabitDayStatus{
			Habit:  habit,
			Logged: log != nil,
		})
	}

	return statuses, nil
}

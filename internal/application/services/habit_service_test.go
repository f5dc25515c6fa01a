package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

// fakeHabitRepo mirrors the persistence semantics for habits, including the
// log transaction: idempotent same-date logs and the streak transition.
type fakeHabitRepo struct {
	habits map[int64]*entities.Habit
	logs   map[int64]map[string]*entities.HabitLog
	nextID int64
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{
		habits: make(map[int64]*entities.Habit),
		logs:   make(map[int64]map[string]*entities.HabitLog),
		nextID: 1,
	}
}

func (r *fakeHabitRepo) Create(_ context.Context, habit *entities.Habit) (*entities.Habit, error) {
	stored := *habit
	stored.ID = r.nextID
	r.nextID++
	r.habits[stored.ID] = &stored
	r.logs[stored.ID] = make(map[string]*entities.HabitLog)
	copied := stored
	return &copied, nil
}

func (r *fakeHabitRepo) GetByID(_ context.Context, id int64) (*entities.Habit, error) {
	habit, ok := r.habits[id]
	if !ok {
		return nil, entities.ErrHabitNotFound
	}
	copied := *habit
	return &copied, nil
}

func (r *fakeHabitRepo) ListByUser(_ context.Context, userID int64) ([]*entities.Habit, error) {
	var out []*entities.Habit
	for _, habit := range r.habits {
		if habit.UserID == userID {
			copied := *habit
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeHabitRepo) Update(_ context.Context, id int64, patch ports.HabitPatch) (*entities.Habit, error) {
	habit, ok := r.habits[id]
	if !ok {
		return nil, entities.ErrHabitNotFound
	}
	if patch.Name != nil {
		habit.Name = *patch.Name
	}
	if patch.Frequency != nil {
		habit.Frequency = *patch.Frequency
	}
	copied := *habit
	return &copied, nil
}

func (r *fakeHabitRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.habits[id]; !ok {
		return false, nil
	}
	delete(r.habits, id)
	delete(r.logs, id)
	return true, nil
}

func (r *fakeHabitRepo) Log(_ context.Context, habitID int64, date string) (bool, error) {
	habit, ok := r.habits[habitID]
	if !ok {
		return false, entities.ErrHabitNotFound
	}
	if _, ok := r.logs[habitID][date]; ok {
		return true, nil
	}
	r.logs[habitID][date] = &entities.HabitLog{HabitID: habitID, CompletedDate: date}

	streak, lastLogged, err := habit.AdvanceStreak(date)
	if err != nil {
		return false, err
	}
	habit.Streak = streak
	habit.LastLogged = &lastLogged
	return true, nil
}

func (r *fakeHabitRepo) Logs(_ context.Context, habitID int64, start, end string) ([]*entities.HabitLog, error) {
	var out []*entities.HabitLog
	for date, log := range r.logs[habitID] {
		if date >= start && date <= end {
			out = append(out, log)
		}
	}
	return out, nil
}

func (r *fakeHabitRepo) LogFor(_ context.Context, habitID int64, date string) (*entities.HabitLog, error) {
	log, ok := r.logs[habitID][date]
	if !ok {
		return nil, nil
	}
	return log, nil
}

func newHabitService(repo ports.HabitRepository) *HabitService {
	return NewHabitService(repo, logger.NewNop())
}

func TestLogHabitBuildsStreak(t *testing.T) {
	repo := newFakeHabitRepo()
	svc := newHabitService(repo)

	habit, err := svc.CreateHabit(context.Background(), 1, ports.CreateHabitRequest{
		Name:      "Meditate",
		Frequency: entities.FrequencyDaily,
	})
	require.NoError(t, err)
	assert.Zero(t, habit.Streak)

	for _, date := range []string{"2024-03-10", "2024-03-11", "2024-03-12"} {
		logged, err := svc.LogHabit(context.Background(), habit.ID, strPtr(date))
		require.NoError(t, err)
		assert.True(t, logged)
	}

	current, err := svc.GetHabit(context.Background(), habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, current.Streak)
	require.NotNil(t, current.LastLogged)
	assert.Equal(t, "2024-03-12", *current.LastLogged)
}

func TestLogHabitSameDayIsIdempotent(t *testing.T) {
	repo := newFakeHabitRepo()
	svc := newHabitService(repo)

	habit, err := svc.CreateHabit(context.Background(), 1, ports.CreateHabitRequest{
		Name:      "Meditate",
		Frequency: entities.FrequencyDaily,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		logged, err := svc.LogHabit(context.Background(), habit.ID, strPtr("2024-03-10"))
		require.NoError(t, err)
		assert.True(t, logged)
	}

	current, err := svc.GetHabit(context.Background(), habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.Streak)
}

func TestLogHabitGapResetsStreak(t *testing.T) {
	repo := newFakeHabitRepo()
	svc := newHabitService(repo)

	habit, err := svc.CreateHabit(context.Background(), 1, ports.CreateHabitRequest{
		Name:      "Run",
		Frequency: entities.FrequencyDaily,
	})
	require.NoError(t, err)

	for _, date := range []string{"2024-03-10", "2024-03-11", "2024-03-15"} {
		_, err := svc.LogHabit(context.Background(), habit.ID, strPtr(date))
		require.NoError(t, err)
	}

	current, err := svc.GetHabit(context.Background(), habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.Streak)
	require.NotNil(t, current.LastLogged)
	assert.Equal(t, "2024-03-15", *current.LastLogged)
}

func TestLogHabitDefaultsToToday(t *testing.T) {
	repo := newFakeHabitRepo()
	svc := newHabitService(repo)

	habit, err := svc.CreateHabit(context.Background(), 1, ports.CreateHabitRequest{
		Name:      "Journal",
		Frequency: entities.FrequencyDaily,
	})
	require.NoError(t, err)

	logged, err := svc.LogHabit(context.Background(), habit.ID, nil)
	require.NoError(t, err)
	assert.True(t, logged)

	current, err := svc.GetHabit(context.Background(), habit.ID)
	require.NoError(t, err)
	require.NotNil(t, current.LastLogged)
	assert.Equal(t, entities.Today(), *current.LastLogged)
}

func TestLogHabitMissing(t *testing.T) {
	repo := newFakeHabitRepo()
	svc := newHabitService(repo)

	_, err := svc.LogHabit(context.Background(), 42, strPtr("2024-03-10"))
	assert.ErrorIs(t, err, entities.ErrHabitNotFound)
}

func TestGetHabitLogsRequiresHabit(t *testing.T) {
	repo := newFakeHabitRepo()
	svc := newHabitService(repo)

	_, err := svc.GetHabitLogs(context.Background(), 42, "2024-03-01", "2024-03-31")
	assert.ErrorIs(t, err, entities.ErrHabitNotFound)
}

func TestDayStatus(t *testing.T) {
	repo := newFakeHabitRepo()
	svc := newHabitService(repo)

	meditate, err := svc.CreateHabit(context.Background(), 1, ports.CreateHabitRequest{
		Name:      "Meditate",
		Frequency: entities.FrequencyDaily,
	})
	require.NoError(t, err)

	_, err = svc.CreateHabit(context.Background(), 1, ports.CreateHabitRequest{
		Name:      "Run",
		Frequency: entities.FrequencyDaily,
	})
	require.NoError(t, err)

	_, err = svc.LogHabit(context.Background(), meditate.ID, strPtr("2024-03-10"))
	require.NoError(t, err)

	statuses, err := svc.DayStatus(context.Background(), 1, "2024-03-10")
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	byName := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		byName[status.Habit.Name] = status.Logged
	}
	assert.True(t, byName["Meditate"])
	assert.False(t, byName["Run"])
}

func TestDeleteHabitRemovesLogs(t *testing.T) {
	repo := newFakeHabitRepo()
	svc := newHabitService(repo)

	habit, err := svc.CreateHabit(context.Background(), 1, ports.CreateHabitRequest{
		Name:      "Meditate",
		Frequency: entities.FrequencyDaily,
	})
	require.NoError(t, err)

	_, err = svc.LogHabit(context.Background(), habit.ID, strPtr("2024-03-10"))
	require.NoError(t, err)

	deleted, err := svc.DeleteHabit(context.Background(), habit.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, repo.logs[habit.ID])
}

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

type fakeEventRepo struct {
	events map[int64]*entities.CalendarEvent
	nextID int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[int64]*entities.CalendarEvent), nextID: 1}
}

func (r *fakeEventRepo) Create(_ context.Context, event *entities.CalendarEvent) (*entities.CalendarEvent, error) {
	stored := *event
	stored.ID = r.nextID
	r.nextID++
	r.events[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int64) (*entities.CalendarEvent, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, entities.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) ListByUser(_ context.Context, userID int64) ([]*entities.CalendarEvent, error) {
	var out []*entities.CalendarEvent
	for _, event := range r.events {
		if event.UserID == userID {
			copied := *event
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListByDateRange(_ context.Context, userID int64, start, end string) ([]*entities.CalendarEvent, error) {
	var out []*entities.CalendarEvent
	for _, event := range r.events {
		if event.UserID != userID {
			continue
		}
		day := event.StartTime[:10]
		if day >= start && day <= end {
			copied := *event
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListByDay(_ context.Context, userID int64, date string) ([]*entities.CalendarEvent, error) {
	var out []*entities.CalendarEvent
	for _, event := range r.events {
		if event.UserID != userID {
			continue
		}
		startDay := event.StartTime[:10]
		endDay := startDay
		if event.EndTime != nil {
			endDay = (*event.EndTime)[:10]
		}
		if startDay <= date && date <= endDay {
			copied := *event
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Overlapping(_ context.Context, userID int64, start, end string, excludeID *int64) ([]*entities.CalendarEvent, error) {
	var out []*entities.CalendarEvent
	for _, event := range r.events {
		if event.UserID != userID {
			continue
		}
		if excludeID != nil && event.ID == *excludeID {
			continue
		}
		if event.OverlapsRange(start, end) {
			copied := *event
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, id int64, patch ports.EventPatch) (*entities.CalendarEvent, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, entities.ErrEventNotFound
	}
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.StartTime != nil {
		event.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		event.EndTime = patch.EndTime
	}
	if patch.Color != nil {
		event.Color = patch.Color
	}
	if patch.IsAllDay != nil {
		event.IsAllDay = *patch.IsAllDay
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.events[id]; !ok {
		return false, nil
	}
	delete(r.events, id)
	return true, nil
}

func newCalendarService(eventRepo ports.EventRepository, taskRepo ports.TaskRepository) *CalendarService {
	return NewCalendarService(eventRepo, taskRepo, logger.NewNop())
}

func TestFindConflicts(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := newCalendarService(eventRepo, newFakeTaskRepo())

	meeting, err := svc.CreateEvent(context.Background(), 1, ports.CreateEventRequest{
		Title:     "Standup",
		StartTime: "2024-03-10T09:00",
		EndTime:   strPtr("2024-03-10T09:30"),
	})
	require.NoError(t, err)

	_, err = svc.CreateEvent(context.Background(), 1, ports.CreateEventRequest{
		Title:     "Company holiday",
		StartTime: "2024-03-10T00:00",
		EndTime:   strPtr("2024-03-10T23:59"),
		IsAllDay:  true,
	})
	require.NoError(t, err)

	conflicts, err := svc.FindConflicts(context.Background(), 1, "2024-03-10T09:15", "2024-03-10T10:00", nil)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, meeting.ID, conflicts[0].ID)

	// Back-to-back slots do not conflict.
	conflicts, err = svc.FindConflicts(context.Background(), 1, "2024-03-10T09:30", "2024-03-10T10:00", nil)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// An event does not conflict with itself when editing.
	conflicts, err = svc.FindConflicts(context.Background(), 1, "2024-03-10T09:00", "2024-03-10T09:30", &meeting.ID)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestDayScheduleCombinesEventsAndDueTasks(t *testing.T) {
	eventRepo := newFakeEventRepo()
	taskRepo := newFakeTaskRepo()
	svc := newCalendarService(eventRepo, taskRepo)

	_, err := svc.CreateEvent(context.Background(), 1, ports.CreateEventRequest{
		Title:     "Dentist",
		StartTime: "2024-03-10T14:00",
		EndTime:   strPtr("2024-03-10T15:00"),
	})
	require.NoError(t, err)

	_, err = svc.CreateEvent(context.Background(), 1, ports.CreateEventRequest{
		Title:     "Next week",
		StartTime: "2024-03-17T10:00",
		EndTime:   strPtr("2024-03-17T11:00"),
	})
	require.NoError(t, err)

	taskService := newTaskService(taskRepo)
	_, err = taskService.CreateTask(context.Background(), 1, ports.CreateTaskRequest{
		Title:   "File taxes",
		DueDate: strPtr("2024-03-10"),
	})
	require.NoError(t, err)
	_, err = taskService.CreateTask(context.Background(), 1, ports.CreateTaskRequest{Title: "No due date"})
	require.NoError(t, err)

	schedule, err := svc.DaySchedule(context.Background(), 1, "2024-03-10")
	require.NoError(t, err)
	require.Len(t, schedule.Events, 1)
	assert.Equal(t, "Dentist", schedule.Events[0].Title)
	require.Len(t, schedule.Tasks, 1)
	assert.Equal(t, "File taxes", schedule.Tasks[0].Title)
}

func TestEventStraddlingMidnightAppearsOnBothDays(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := newCalendarService(eventRepo, newFakeTaskRepo())

	_, err := svc.CreateEvent(context.Background(), 1, ports.CreateEventRequest{
		Title:     "Overnight flight",
		StartTime: "2024-03-10T23:00",
		EndTime:   strPtr("2024-03-11T07:00"),
	})
	require.NoError(t, err)

	for _, date := range []string{"2024-03-10", "2024-03-11"} {
		schedule, err := svc.DaySchedule(context.Background(), 1, date)
		require.NoError(t, err)
		assert.Len(t, schedule.Events, 1, date)
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

// CalendarService handles calendar events, overlap detection and the
// day-aggregation query behind the dashboard.
type CalendarService struct {
	eventRepo ports.EventRepository
	taskRepo  ports.TaskRepository
	logger    *logger.Logger
}

// NewCalendarService creates a new calendar service
func NewCalendarService(eventRepo ports.EventRepository, taskRepo ports.TaskRepository, logger *logger.Logger) *CalendarService {
	return &CalendarService{
		eventRepo: eventRepo,
		taskRepo:  taskRepo,
		logger:    logger,
	}
}

// CreateEvent creates a new calendar event
func (s *CalendarService) CreateEvent(ctx context.Context, userID int64, req ports.CreateEventRequest) (*entities.CalendarEvent, error) {
	event := &entities.CalendarEvent{
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Color:     req.Color,
		IsAllDay:  req.IsAllDay,
		UserID:    userID,
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Info("Calendar event created", "event_id", created.ID, "start", created.StartTime)

	return created, nil
}

// GetEvent retrieves an event by ID
func (s *CalendarService) GetEvent(ctx context.Context, id int64) (*entities.CalendarEvent, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// ListEvents retrieves a user's events ordered by start time
func (s *CalendarService) ListEvents(ctx context.Context, userID int64) ([]*entities.CalendarEvent, error) {
	return s.eventRepo.ListByUser(ctx, userID)
}

// ListEventsByRange retrieves events belonging to any day in [start, end]
func (s *CalendarService) ListEventsByRange(ctx context.Context, userID int64, start, end string) ([]*entities.CalendarEvent, error) {
	return s.eventRepo.ListByDateRange(ctx, userID, start, end)
}

// UpdateEvent applies a partial update
func (s *CalendarService) UpdateEvent(ctx context.Context, id int64, req ports.UpdateEventRequest) (*entities.CalendarEvent, error) {
	return s.eventRepo.Update(ctx, id, ports.EventPatch{
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Color:     req.Color,
		IsAllDay:  req.IsAllDay,
	})
}

// DeleteEvent removes an event, reporting whether a row was deleted
func (s *CalendarService) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info("Calendar event deleted", "event_id", id)
	}

	return deleted, nil
}

// FindConflicts returns timed events overlapping [start, end) for the user,
// optionally ignoring one event id so an edit does not conflict with itself.
func (s *CalendarService) FindConflicts(ctx context.Context, userID int64, start, end string, excludeID *int64) ([]*entities.CalendarEvent, error) {
	return s.eventRepo.Overlapping(ctx, userID, start, end, excludeID)
}

// DaySchedule aggregates a calendar day: events overlapping the date plus
// tasks due exactly on it, tasks ordered by priority descending.
func (s *CalendarService) DaySchedule(ctx context.Context, userID int64, date string) (*ports.DaySchedule, error) {
	events, err := s.eventRepo.ListByDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByDueDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	return &ports.DaySchedule{
		Events: events,
		Tasks:  tasks,
	}, nil
}

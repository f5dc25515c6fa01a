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

// EventRepositoryImpl implements the EventRepository interface
type EventRepositoryImpl struct {
	db *database.DB
}

// NewEventRepository creates a new calendar event repository
func NewEventRepository(db *database.DB) ports.EventRepository {
	return &EventRepositoryImpl{db: db}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *entities.CalendarEvent) (*entities.CalendarEvent, error) {
	res, err := r.db.DB.ExecContext(ctx, `
		INSERT INTO calendar_events (title, start_time, end_time, color, is_all_day, user_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		event.Title, event.StartTime, event.EndTime, event.Color, event.IsAllDay, event.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrEventNotFound) {
			return nil, entities.ErrCreationFailed
		}
		return nil, err
	}

	return created, nil
}

func (r *EventRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.CalendarEvent, error) {
	var event entities.CalendarEvent
	err := r.db.DB.GetContext(ctx, &event, `SELECT * FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}

	return &event, nil
}

func (r *EventRepositoryImpl) ListByUser(ctx context.Context, userID int64) ([]*entities.CalendarEvent, error) {
	var events []*entities.CalendarEvent
	err := r.db.DB.SelectContext(ctx, &events,
		`SELECT * FROM calendar_events WHERE user_id = ? ORDER BY start_time`, userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}

func (r *EventRepositoryImpl) ListByDateRange(ctx context.Context, userID int64, start, end string) ([]*entities.CalendarEvent, error) {
	query := `
		SELECT * FROM calendar_events
		WHERE user_id = ? AND (
			date(start_time) BETWEEN date(?) AND date(?) OR
			date(end_time) BETWEEN date(?) AND date(?) OR
			(date(start_time) <= date(?) AND date(end_time) >= date(?))
		)
		ORDER BY start_time`

	var events []*entities.CalendarEvent
	err := r.db.DB.SelectContext(ctx, &events, query, userID, start, end, start, end, start, end)
	if err != nil {
		return nil, fmt.Errorf("list events by range: %w", err)
	}

	return events, nil
}

// ListByDay returns events belonging to a calendar day: starting on it,
// ending on it, or straddling it.
func (r *EventRepositoryImpl) ListByDay(ctx context.Context, userID int64, date string) ([]*entities.CalendarEvent, error) {
	query := `
		SELECT * FROM calendar_events
		WHERE user_id = ? AND (
			date(start_time) = date(?) OR
			date(end_time) = date(?) OR
			(date(start_time) <= date(?) AND date(end_time) >= date(?))
		)
		ORDER BY start_time`

	var events []*entities.CalendarEvent
	err := r.db.DB.SelectContext(ctx, &events, query, userID, date, date, date, date)
	if err != nil {
		return nil, fmt.Errorf("list events by day: %w", err)
	}

	return events, nil
}

// Overlapping returns timed events conflicting with [start, end) using
// half-open semantics: touching endpoints do not conflict. All-day events
// and events without an end are excluded, as is excludeID when given.
func (r *EventRepositoryImpl) Overlapping(ctx context.Context, userID int64, start, end string, excludeID *int64) ([]*entities.CalendarEvent, error) {
	query := `
		SELECT * FROM calendar_events
		WHERE user_id = ? AND is_all_day = 0 AND end_time IS NOT NULL
			AND datetime(start_time) < datetime(?) AND datetime(?) < datetime(end_time)`
	args := []interface{}{userID, end, start}

	if excludeID != nil {
		query += ` AND id != ?`
		args = append(args, *excludeID)
	}
	query += ` ORDER BY start_time`

	var events []*entities.CalendarEvent
	if err := r.db.DB.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("overlapping events: %w", err)
	}

	return events, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id int64, patch ports.EventPatch) (*entities.CalendarEvent, error) {
	set := &assignments{}
	if patch.Title != nil {
		set.set("title", *patch.Title)
	}
	if patch.StartTime != nil {
		set.set("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		set.set("end_time", *patch.EndTime)
	}
	if patch.Color != nil {
		set.set("color", *patch.Color)
	}
	if patch.IsAllDay != nil {
		set.set("is_all_day", *patch.IsAllDay)
	}

	if set.empty() {
		return r.GetByID(ctx, id)
	}

	args := append(set.args, id)
	if _, err := r.db.DB.ExecContext(ctx, `UPDATE calendar_events SET `+set.clause()+` WHERE id = ?`, args...); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}

	return affected > 0, nil
}

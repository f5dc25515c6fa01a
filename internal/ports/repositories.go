package ports

import (
	"context"

	"github.com/prodotask/server/internal/domain/entities"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*entities.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) (*entities.Task, error)
	GetByID(ctx context.Context, id int64) (*entities.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Task, error)
	ListByStatus(ctx context.Context, userID int64, status entities.TaskStatus) ([]*entities.Task, error)
	ListByDueDate(ctx context.Context, userID int64, date string) ([]*entities.Task, error)
	ListOverdue(ctx context.Context, userID int64, today string) ([]*entities.Task, error)
	Update(ctx context.Context, id int64, patch TaskPatch) (*entities.Task, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// HabitRepository defines the interface for habit data operations. Log runs
// the whole read-insert-update streak transition inside one transaction.
type HabitRepository interface {
	Create(ctx context.Context, habit *entities.Habit) (*entities.Habit, error)
	GetByID(ctx context.Context, id int64) (*entities.Habit, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Habit, error)
	Update(ctx context.Context, id int64, patch HabitPatch) (*entities.Habit, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Log(ctx context.Context, habitID int64, date string) (bool, error)
	Logs(ctx context.Context, habitID int64, start, end string) ([]*entities.HabitLog, error)
	LogFor(ctx context.Context, habitID int64, date string) (*entities.HabitLog, error)
}

// NoteRepository defines the interface for note data operations.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	GetByID(ctx context.Context, id int64) (*entities.Note, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Note, error)
	Search(ctx context.Context, userID int64, term string) ([]*entities.Note, error)
	Recent(ctx context.Context, userID int64, limit int) ([]*entities.Note, error)
	Update(ctx context.Context, id int64, patch NotePatch) (*entities.Note, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// EventRepository defines the interface for calendar event data operations.
type EventRepository interface {
	Create(ctx context.Context, event *entities.CalendarEvent) (*entities.CalendarEvent, error)
	GetByID(ctx context.Context, id int64) (*entities.CalendarEvent, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.CalendarEvent, error)
	ListByDateRange(ctx context.Context, userID int64, start, end string) ([]*entities.CalendarEvent, error)
	ListByDay(ctx context.Context, userID int64, date string) ([]*entities.CalendarEvent, error)
	Overlapping(ctx context.Context, userID int64, start, end string, excludeID *int64) ([]*entities.CalendarEvent, error)
	Update(ctx context.Context, id int64, patch EventPatch) (*entities.CalendarEvent, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Patch types: nil fields are left untouched by Update. An empty patch is a
// no-op reselect. A set pointer always writes a value, so clearing a nullable
// column back to NULL is not expressible through a patch.

type UserPatch struct {
	Email           *string
	PasswordHash    *string
	Name            *string
	AvatarURL       *string
	ThemePreference *entities.ThemePreference
}

type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *entities.TaskPriority
	Status      *entities.TaskStatus
	Recurrence  *entities.TaskRecurrence
	Labels      *string
}

type HabitPatch struct {
	Name      *string
	Frequency *entities.HabitFrequency
}

type NotePatch struct {
	Title   *string
	Content *string
}

type EventPatch struct {
	Title     *string
	StartTime *string
	EndTime   *string
	Color     *string
	IsAllDay  *bool
}

// IsEmpty reports whether no field of the patch is set.

func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.PasswordHash == nil && p.Name == nil && p.AvatarURL == nil && p.ThemePreference == nil
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && p.Priority == nil &&
		p.Status == nil && p.Recurrence == nil && p.Labels == nil
}

func (p HabitPatch) IsEmpty() bool {
	return p.Name == nil && p.Frequency == nil
}

func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}

func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && p.StartTime == nil && p.EndTime == nil && p.Color == nil && p.IsAllDay == nil
}

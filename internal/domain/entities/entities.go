package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrHabitNotFound      = errors.New("habit not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrEventNotFound      = errors.New("calendar event not found")
	ErrCreationFailed     = errors.New("record missing after insert")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Enums and types
type ThemePreference string

const (
	ThemeLight ThemePreference = "light"
	ThemeDark  ThemePreference = "dark"
)

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

type TaskRecurrence string

const (
	RecurrenceDaily   TaskRecurrence = "Daily"
	RecurrenceWeekly  TaskRecurrence = "Weekly"
	RecurrenceMonthly TaskRecurrence = "Monthly"
	RecurrenceNone    TaskRecurrence = "None"
)

type HabitFrequency string

const (
	FrequencyDaily   HabitFrequency = "Daily"
	FrequencyWeekly  HabitFrequency = "Weekly"
	FrequencyMonthly HabitFrequency = "Monthly"
)

// User represents an account. The password hash never leaves the auth
// boundary, hence json:"-".
type User struct {
	ID              int64           `json:"id" db:"id"`
	Email           string          `json:"email" db:"email"`
	PasswordHash    string          `json:"-" db:"password_hash"`
	Name            *string         `json:"name" db:"name"`
	AvatarURL       *string         `json:"avatar_url" db:"avatar_url"`
	ThemePreference ThemePreference `json:"theme_preference" db:"theme_preference"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// Task represents a todo item. DueDate is a calendar date (YYYY-MM-DD);
// Labels is a comma-joined tag list.
type Task struct {
	ID          int64          `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description *string        `json:"description" db:"description"`
	DueDate     *string        `json:"due_date" db:"due_date"`
	Priority    *TaskPriority  `json:"priority" db:"priority"`
	Status      TaskStatus     `json:"status" db:"status"`
	Recurrence  TaskRecurrence `json:"recurrence" db:"recurrence"`
	Labels      *string        `json:"labels" db:"labels"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
	UserID      int64          `json:"user_id" db:"user_id"`
}

// Habit represents a recurring personal habit with a running streak counter.
type Habit struct {
	ID         int64          `json:"id" db:"id"`
	Name       string         `json:"name" db:"name"`
	Frequency  HabitFrequency `json:"frequency" db:"frequency"`
	Streak     int            `json:"streak" db:"streak"`
	LastLogged *string        `json:"last_logged" db:"last_logged"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UserID     int64          `json:"user_id" db:"user_id"`
}

// HabitLog records one completion of a habit on a calendar date. At most one
// log exists per (habit, date); the log operation checks before inserting.
type HabitLog struct {
	ID            int64     `json:"id" db:"id"`
	HabitID       int64     `json:"habit_id" db:"habit_id"`
	CompletedDate string    `json:"completed_date" db:"completed_date"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Note represents a free-form note.
type Note struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   *string   `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	UserID    int64     `json:"user_id" db:"user_id"`
}

// CalendarEvent represents a scheduled event. Start and end are ISO datetime
// strings (YYYY-MM-DDTHH:MM) so lexical order matches chronological order;
// all-day events may omit the end.
type CalendarEvent struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	StartTime string    `json:"start_time" db:"start_time"`
	EndTime   *string   `json:"end_time" db:"end_time"`
	Color     *string   `json:"color" db:"color"`
	IsAllDay  bool      `json:"is_all_day" db:"is_all_day"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UserID    int64     `json:"user_id" db:"user_id"`
}

// Label and TaskLabel form the declared many-to-many tagging schema. No
// service writes to these tables yet; tasks carry a comma-joined labels
// column instead.
type Label struct {
	ID     int64   `json:"id" db:"id"`
	Name   string  `json:"name" db:"name"`
	Color  *string `json:"color" db:"color"`
	UserID int64   `json:"user_id" db:"user_id"`
}

type TaskLabel struct {
	TaskID  int64 `json:"task_id" db:"task_id"`
	LabelID int64 `json:"label_id" db:"label_id"`
}

func (p ThemePreference) IsValid() bool {
	return p == ThemeLight || p == ThemeDark
}

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

func (r TaskRecurrence) IsValid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceNone:
		return true
	default:
		return false
	}
}

func (f HabitFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

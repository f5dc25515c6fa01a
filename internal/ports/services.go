package ports

import (
	"github.com/prodotask/server/internal/domain/entities"
)

// Request types bound from HTTP and validated with go-playground/validator.

// Auth related types
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

// User related types
type UpdateUserRequest struct {
	Email           *string                   `json:"email" validate:"omitempty,email"`
	Password        *string                   `json:"password" validate:"omitempty,min=8"`
	Name            *string                   `json:"name" validate:"omitempty,max=100"`
	AvatarURL       *string                   `json:"avatar_url" validate:"omitempty,url"`
	ThemePreference *entities.ThemePreference `json:"theme_preference" validate:"omitempty,oneof=light dark"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Task related types
type CreateTaskRequest struct {
	Title       string                   `json:"title" validate:"required,max=200"`
	Description *string                  `json:"description"`
	DueDate     *string                  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Priority    *entities.TaskPriority   `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Status      *entities.TaskStatus     `json:"status" validate:"omitempty,oneof='To Do' 'In Progress' 'Completed'"`
	Recurrence  *entities.TaskRecurrence `json:"recurrence" validate:"omitempty,oneof=Daily Weekly Monthly None"`
	Labels      *string                  `json:"labels"`
}

type UpdateTaskRequest struct {
	Title       *string                  `json:"title" validate:"omitempty,max=200"`
	Description *string                  `json:"description"`
	DueDate     *string                  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Priority    *entities.TaskPriority   `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Status      *entities.TaskStatus     `json:"status" validate:"omitempty,oneof='To Do' 'In Progress' 'Completed'"`
	Recurrence  *entities.TaskRecurrence `json:"recurrence" validate:"omitempty,oneof=Daily Weekly Monthly None"`
	Labels      *string                  `json:"labels"`
}

// Habit related types
type CreateHabitRequest struct {
	Name      string                  `json:"name" validate:"required,max=100"`
	Frequency entities.HabitFrequency `json:"frequency" validate:"required,oneof=Daily Weekly Monthly"`
}

type UpdateHabitRequest struct {
	Name      *string                  `json:"name" validate:"omitempty,max=100"`
	Frequency *entities.HabitFrequency `json:"frequency" validate:"omitempty,oneof=Daily Weekly Monthly"`
}

type LogHabitRequest struct {
	Date *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// HabitDayStatus pairs a habit with whether it was logged on a given date.
type HabitDayStatus struct {
	Habit  *entities.Habit `json:"habit"`
	Logged bool            `json:"logged"`
}

// Note related types
type CreateNoteRequest struct {
	Title   string  `json:"title" validate:"required,max=200"`
	Content *string `json:"content"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content"`
}

// Calendar related types
type CreateEventRequest struct {
	Title     string  `json:"title" validate:"required,max=200"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   *string `json:"end_time"`
	Color     *string `json:"color" validate:"omitempty,max=20"`
	IsAllDay  bool    `json:"is_all_day"`
}

type UpdateEventRequest struct {
	Title     *string `json:"title" validate:"omitempty,max=200"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Color     *string `json:"color" validate:"omitempty,max=20"`
	IsAllDay  *bool   `json:"is_all_day"`
}

// DaySchedule aggregates everything happening on one calendar date: events
// overlapping the day and tasks due exactly that day.
type DaySchedule struct {
	Events []*entities.CalendarEvent `json:"events"`
	Tasks  []*entities.Task          `json:"tasks"`
}

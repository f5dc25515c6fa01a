package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name       string
		recurrence TaskRecurrence
		base       string
		want       string
	}{
		{"daily", RecurrenceDaily, "2024-03-10", "2024-03-11"},
		{"daily across month end", RecurrenceDaily, "2024-01-31", "2024-02-01"},
		{"daily across year end", RecurrenceDaily, "2023-12-31", "2024-01-01"},
		{"weekly", RecurrenceWeekly, "2024-03-10", "2024-03-17"},
		{"weekly across month end", RecurrenceWeekly, "2024-02-26", "2024-03-04"},
		{"monthly", RecurrenceMonthly, "2024-03-10", "2024-04-10"},
		{"monthly overflow normalizes", RecurrenceMonthly, "2024-01-31", "2024-03-02"},
		{"monthly overflow non-leap", RecurrenceMonthly, "2023-01-31", "2023-03-03"},
		{"none returns base", RecurrenceNone, "2024-03-10", "2024-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.recurrence.NextDueDate(tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextDueDateInvalidBase(t *testing.T) {
	_, err := RecurrenceDaily.NextDueDate("not-a-date")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want int
	}{
		{"2024-03-10", "2024-03-10", 0},
		{"2024-03-10", "2024-03-11", 1},
		{"2024-03-10", "2024-03-15", 5},
		{"2024-03-15", "2024-03-10", -5},
		{"2024-02-28", "2024-03-01", 2},
		{"2023-02-28", "2023-03-01", 1},
	}

	for _, tt := range tests {
		got, err := DaysBetween(tt.from, tt.to)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestSuccessorResetsStatusAndDueDate(t *testing.T) {
	priority := PriorityHigh
	task := &Task{
		ID:          7,
		Title:       "Water plants",
		Description: strPtr("balcony only"),
		DueDate:     strPtr("2024-03-10"),
		Priority:    &priority,
		Status:      StatusCompleted,
		Recurrence:  RecurrenceWeekly,
		Labels:      strPtr("home,garden"),
		UserID:      3,
	}

	next := task.Successor("2024-03-17")

	assert.Zero(t, next.ID)
	assert.Equal(t, task.Title, next.Title)
	assert.Equal(t, task.Description, next.Description)
	require.NotNil(t, next.DueDate)
	assert.Equal(t, "2024-03-17", *next.DueDate)
	assert.Equal(t, task.Priority, next.Priority)
	assert.Equal(t, StatusTodo, next.Status)
	assert.Equal(t, RecurrenceWeekly, next.Recurrence)
	assert.Equal(t, task.Labels, next.Labels)
	assert.Equal(t, task.UserID, next.UserID)
}

func TestAdvanceStreak(t *testing.T) {
	tests := []struct {
		name           string
		streak         int
		lastLogged     *string
		date           string
		wantStreak     int
		wantLastLogged string
	}{
		{"first log starts at one", 0, nil, "2024-03-10", 1, "2024-03-10"},
		{"consecutive day extends", 4, strPtr("2024-03-09"), "2024-03-10", 5, "2024-03-10"},
		{"same day unchanged", 4, strPtr("2024-03-10"), "2024-03-10", 4, "2024-03-10"},
		{"gap resets to one", 4, strPtr("2024-03-05"), "2024-03-10", 1, "2024-03-10"},
		{"backdated log leaves streak alone", 4, strPtr("2024-03-10"), "2024-03-07", 4, "2024-03-10"},
		{"extends across month boundary", 2, strPtr("2024-02-29"), "2024-03-01", 3, "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habit := &Habit{Streak: tt.streak, LastLogged: tt.lastLogged}

			streak, lastLogged, err := habit.AdvanceStreak(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStreak, streak)
			assert.Equal(t, tt.wantLastLogged, lastLogged)
		})
	}
}

func TestAdvanceStreakInvalidDate(t *testing.T) {
	habit := &Habit{Streak: 1, LastLogged: strPtr("2024-03-09")}
	_, _, err := habit.AdvanceStreak("2024/03/10")
	assert.Error(t, err)
}

func TestOverlapsRange(t *testing.T) {
	timed := func(start, end string) *CalendarEvent {
		return &CalendarEvent{StartTime: start, EndTime: strPtr(end)}
	}

	tests := []struct {
		name  string
		event *CalendarEvent
		start string
		end   string
		want  bool
	}{
		{"full overlap", timed("2024-03-10T09:00", "2024-03-10T10:00"), "2024-03-10T09:15", "2024-03-10T09:45", true},
		{"partial overlap at start", timed("2024-03-10T09:00", "2024-03-10T10:00"), "2024-03-10T08:30", "2024-03-10T09:30", true},
		{"partial overlap at end", timed("2024-03-10T09:00", "2024-03-10T10:00"), "2024-03-10T09:30", "2024-03-10T10:30", true},
		{"touching ends is not a conflict", timed("2024-03-10T09:00", "2024-03-10T10:00"), "2024-03-10T10:00", "2024-03-10T11:00", false},
		{"touching starts is not a conflict", timed("2024-03-10T09:00", "2024-03-10T10:00"), "2024-03-10T08:00", "2024-03-10T09:00", false},
		{"disjoint", timed("2024-03-10T09:00", "2024-03-10T10:00"), "2024-03-10T14:00", "2024-03-10T15:00", false},
		{"no end never conflicts", &CalendarEvent{StartTime: "2024-03-10T09:00"}, "2024-03-10T09:00", "2024-03-10T10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.OverlapsRange(tt.start, tt.end))
		})
	}
}

func TestOverlapsRangeAllDay(t *testing.T) {
	event := &CalendarEvent{
		StartTime: "2024-03-10T00:00",
		EndTime:   strPtr("2024-03-10T23:59"),
		IsAllDay:  true,
	}

	assert.False(t, event.OverlapsRange("2024-03-10T09:00", "2024-03-10T10:00"))
}

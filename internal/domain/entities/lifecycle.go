package entities

import "time"

// DateLayout is the wire format for calendar dates (due dates, habit logs).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Today returns the current calendar date in UTC.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// DaysBetween returns the whole-day difference to - from. Negative when to
// precedes from.
func DaysBetween(from, to string) (int, error) {
	a, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	b, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	return int(b.Sub(a).Hours() / 24), nil
}

// NextDueDate computes the due date one recurrence interval after base.
// Monthly uses time.AddDate, which normalizes overflowing days, so
// Jan 31 + one month lands in early March rather than clamping to the end of
// February. RecurrenceNone returns base unchanged.
func (r TaskRecurrence) NextDueDate(base string) (string, error) {
	d, err := ParseDate(base)
	if err != nil {
		return "", err
	}
	switch r {
	case RecurrenceDaily:
		d = d.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		d = d.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		d = d.AddDate(0, 1, 0)
	}
	return d.Format(DateLayout), nil
}

// Successor clones a completed recurring task into its next instance: same
// title, description, priority, recurrence, labels and owner, status reset
// to To Do and the given due date.
func (t *Task) Successor(dueDate string) *Task {
	return &Task{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     &dueDate,
		Priority:    t.Priority,
		Status:      StatusTodo,
		Recurrence:  t.Recurrence,
		Labels:      t.Labels,
		UserID:      t.UserID,
	}
}

// AdvanceStreak computes the streak counter and last-logged date after a
// completion on date. First log starts the streak at 1; a log exactly one
// day after the previous one extends it; a gap resets it to 1; a repeat of
// the last-logged day leaves it untouched. A backdated log (date before
// last_logged) is recorded but does not move the streak or last_logged.
func (h *Habit) AdvanceStreak(date string) (streak int, lastLogged string, err error) {
	if h.LastLogged == nil {
		return 1, date, nil
	}
	delta, err := DaysBetween(*h.LastLogged, date)
	if err != nil {
		return 0, "", err
	}
	switch {
	case delta < 0:
		return h.Streak, *h.LastLogged, nil
	case delta == 0:
		return h.Streak, date, nil
	case delta == 1:
		return h.Streak + 1, date, nil
	default:
		return 1, date, nil
	}
}

// OverlapsRange reports whether a timed event overlaps [start, end) using
// half-open interval semantics: the event's end and another event's start
// touching is not a conflict. All-day events and events without an end never
// overlap.
func (e *CalendarEvent) OverlapsRange(start, end string) bool {
	if e.IsAllDay || e.EndTime == nil {
		return false
	}
	return e.StartTime < end && start < *e.EndTime
}

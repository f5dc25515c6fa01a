package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/prodotask/server/internal/application/services"
	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

// CalendarHandler handles calendar event and day-schedule requests
type CalendarHandler struct {
	calendarService *services.CalendarService
	logger          *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService *services.CalendarService, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          logger,
	}
}

func (h *CalendarHandler) ownedEvent(c echo.Context) (*entities.CalendarEvent, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, err
	}

	event, err := h.calendarService.GetEvent(c.Request().Context(), id)
	if err != nil {
		return nil, serviceError(err)
	}
	if event.UserID != userIDFromContext(c) {
		return nil, echo.NewHTTPError(http.StatusNotFound, entities.ErrEventNotFound.Error())
	}

	return event, nil
}

// CreateEvent handles event creation
func (h *CalendarHandler) CreateEvent(c echo.Context) error {
	var req ports.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.calendarService.CreateEvent(c.Request().Context(), userIDFromContext(c), req)
	if err != nil {
		h.logger.Error("Create event failed", "error", err)
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, event)
}

// ListEvents lists the user's events; with ?start= and ?end= it narrows
// the list to events belonging to any day in that range.
func (h *CalendarHandler) ListEvents(c echo.Context) error {
	ctx := c.Request().Context()
	userID := userIDFromContext(c)

	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if start != "" || end != "" {
		if start == "" || end == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "start and end must be provided together")
		}
		events, err := h.calendarService.ListEventsByRange(ctx, userID, start, end)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(http.StatusOK, events)
	}

	events, err := h.calendarService.ListEvents(ctx, userID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, events)
}

// FindConflicts returns timed events overlapping ?start= and ?end=,
// optionally excluding ?exclude= so an edit does not conflict with itself.
func (h *CalendarHandler) FindConflicts(c echo.Context) error {
	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if start == "" || end == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "start and end query parameters are required")
	}

	var excludeID *int64
	if raw := c.QueryParam("exclude"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid exclude id")
		}
		excludeID = &parsed
	}

	conflicts, err := h.calendarService.FindConflicts(c.Request().Context(), userIDFromContext(c), start, end, excludeID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, conflicts)
}

// DaySchedule aggregates events and due tasks for ?date= (today by default)
func (h *CalendarHandler) DaySchedule(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = entities.Today()
	}
	if _, err := entities.ParseDate(date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	schedule, err := h.calendarService.DaySchedule(c.Request().Context(), userIDFromContext(c), date)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, schedule)
}

// GetEvent returns one event
func (h *CalendarHandler) GetEvent(c echo.Context) error {
	event, err := h.ownedEvent(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, event)
}

// UpdateEvent partially updates an event
func (h *CalendarHandler) UpdateEvent(c echo.Context) error {
	event, err := h.ownedEvent(c)
	if err != nil {
		return err
	}

	var req ports.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.calendarService.UpdateEvent(c.Request().Context(), event.ID, req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteEvent removes an event
func (h *CalendarHandler) DeleteEvent(c echo.Context) error {
	event, err := h.ownedEvent(c)
	if err != nil {
		return err
	}

	deleted, err := h.calendarService.DeleteEvent(c.Request().Context(), event.ID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

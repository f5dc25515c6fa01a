package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prodotask/server/internal/application/services"
	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

// HabitHandler handles habit requests
type HabitHandler struct {
	habitService *services.HabitService
	logger       *logger.Logger
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(habitService *services.HabitService, logger *logger.Logger) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
		logger:       logger,
	}
}

func (h *HabitHandler) ownedHabit(c echo.Context) (*entities.Habit, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, err
	}

	habit, err := h.habitService.GetHabit(c.Request().Context(), id)
	if err != nil {
		return nil, serviceError(err)
	}
	if habit.UserID != userIDFromContext(c) {
		return nil, echo.NewHTTPError(http.StatusNotFound, entities.ErrHabitNotFound.Error())
	}

	return habit, nil
}

// CreateHabit handles habit creation
func (h *HabitHandler) CreateHabit(c echo.Context) error {
	var req ports.CreateHabitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	habit, err := h.habitService.CreateHabit(c.Request().Context(), userIDFromContext(c), req)
	if err != nil {
		h.logger.Error("Create habit failed", "error", err)
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, habit)
}

// ListHabits lists the user's habits ordered by name
func (h *HabitHandler) ListHabits(c echo.Context) error {
	habits, err := h.habitService.ListHabits(c.Request().Context(), userIDFromContext(c))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, habits)
}

// GetHabit returns one habit
func (h *HabitHandler) GetHabit(c echo.Context) error {
	habit, err := h.ownedHabit(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, habit)
}

// UpdateHabit partially updates a habit's name and frequency
func (h *HabitHandler) UpdateHabit(c echo.Context) error {
	habit, err := h.ownedHabit(c)
	if err != nil {
		return err
	}

	var req ports.UpdateHabitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.habitService.UpdateHabit(c.Request().Context(), habit.ID, req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteHabit removes a habit and all of its logs
func (h *HabitHandler) DeleteHabit(c echo.Context) error {
	habit, err := h.ownedHabit(c)
	if err != nil {
		return err
	}

	deleted, err := h.habitService.DeleteHabit(c.Request().Context(), habit.ID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

// LogHabit records a completion for today or the date in the body
func (h *HabitHandler) LogHabit(c echo.Context) error {
	habit, err := h.ownedHabit(c)
	if err != nil {
		return err
	}

	var req ports.LogHabitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	logged, err := h.habitService.LogHabit(c.Request().Context(), habit.ID, req.Date)
	if err != nil {
		h.logger.Error("Log habit failed", "error", err, "habit_id", habit.ID)
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"logged": logged})
}

// GetHabitLogs lists a habit's logs between ?start= and ?end=
func (h *HabitHandler) GetHabitLogs(c echo.Context) error {
	habit, err := h.ownedHabit(c)
	if err != nil {
		return err
	}

	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if start == "" || end == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "start and end query parameters are required")
	}

	logs, err := h.habitService.GetHabitLogs(c.Request().Context(), habit.ID, start, end)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, logs)
}

// DayStatus reports which habits were logged on ?date= (today by default)
func (h *HabitHandler) DayStatus(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = entities.Today()
	}

	statuses, err := h.habitService.DayStatus(c.Request().Context(), userIDFromContext(c), date)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, statuses)
}

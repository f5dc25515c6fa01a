package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prodotask/server/internal/application/services"
	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

// TaskHandler handles task requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ownedTask loads a task and checks it belongs to the authenticated user.
func (h *TaskHandler) ownedTask(c echo.Context) (*entities.Task, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return nil, serviceError(err)
	}
	if task.UserID != userIDFromContext(c) {
		return nil, echo.NewHTTPError(http.StatusNotFound, entities.ErrTaskNotFound.Error())
	}

	return task, nil
}

// CreateTask handles task creation
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), userIDFromContext(c), req)
	if err != nil {
		h.logger.Error("Create task failed", "error", err)
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// ListTasks lists the user's tasks, optionally filtered by ?status= or ?due=
func (h *TaskHandler) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()
	userID := userIDFromContext(c)

	if status := c.QueryParam("status"); status != "" {
		taskStatus := entities.TaskStatus(status)
		if !taskStatus.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
		}
		tasks, err := h.taskService.ListTasksByStatus(ctx, userID, taskStatus)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(http.StatusOK, tasks)
	}

	if due := c.QueryParam("due"); due != "" {
		tasks, err := h.taskService.ListTasksByDueDate(ctx, userID, due)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(http.StatusOK, tasks)
	}

	tasks, err := h.taskService.ListTasks(ctx, userID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// ListOverdueTasks lists uncompleted tasks due before today
func (h *TaskHandler) ListOverdueTasks(c echo.Context) error {
	tasks, err := h.taskService.ListOverdueTasks(c.Request().Context(), userIDFromContext(c))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetTask returns one task
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.ownedTask(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask partially updates a task
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	task, err := h.ownedTask(c)
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.taskService.UpdateTask(c.Request().Context(), task.ID, req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	task, err := h.ownedTask(c)
	if err != nil {
		return err
	}

	deleted, err := h.taskService.DeleteTask(c.Request().Context(), task.ID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

// CompleteTask marks a task Completed; a recurring task gets its successor
// created as a side effect. The response is the completed original.
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	task, err := h.ownedTask(c)
	if err != nil {
		return err
	}

	completed, err := h.taskService.CompleteTask(c.Request().Context(), task.ID)
	if err != nil {
		h.logger.Error("Complete task failed", "error", err, "task_id", task.ID)
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, completed)
}

package services

import (
	"context"
	"fmt"

	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

// TaskService handles task CRUD and the recurring-task lifecycle.
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// CreateTask creates a new task for the user
func (s *TaskService) CreateTask(ctx context.Context, userID int64, req ports.CreateTaskRequest) (*entities.Task, error) {
	task := &entities.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      entities.StatusTodo,
		Recurrence:  entities.RecurrenceNone,
		Labels:      req.Labels,
		UserID:      userID,
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Recurrence != nil {
		task.Recurrence = *req.Recurrence
	}

	created, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task created", "task_id", created.ID, "title", created.Title)

	return created, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id int64) (*entities.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

// ListTasks retrieves all tasks for a user, due date ascending then
// priority descending
func (s *TaskService) ListTasks(ctx context.Context, userID int64) ([]*entities.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

// ListTasksByStatus retrieves a user's tasks in one status
func (s *TaskService) ListTasksByStatus(ctx context.Context, userID int64, status entities.TaskStatus) ([]*entities.Task, error) {
	return s.taskRepo.ListByStatus(ctx, userID, status)
}

// ListTasksByDueDate retrieves tasks due exactly on the given date
func (s *TaskService) ListTasksByDueDate(ctx context.Context, userID int64, date string) ([]*entities.Task, error) {
	return s.taskRepo.ListByDueDate(ctx, userID, date)
}

// ListOverdueTasks retrieves uncompleted tasks due before today
func (s *TaskService) ListOverdueTasks(ctx context.Context, userID int64) ([]*entities.Task, error) {
	return s.taskRepo.ListOverdue(ctx, userID, entities.Today())
}

// UpdateTask applies a partial update; fields absent from the request are
// left untouched
func (s *TaskService) UpdateTask(ctx context.Context, id int64, req ports.UpdateTaskRequest) (*entities.Task, error) {
	patch := ports.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
		Recurrence:  req.Recurrence,
		Labels:      req.Labels,
	}

	updated, err := s.taskRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Task updated", "task_id", id)

	return updated, nil
}

// DeleteTask removes a task, reporting whether a row was deleted
func (s *TaskService) DeleteTask(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info("Task deleted", "task_id", id)
	}

	return deleted, nil
}

// CompleteTask marks a task Completed and, when it recurs, creates the next
// instance one interval after the current due date (or after today when the
// task has none). Returns the completed original; callers re-query to see
// the successor.
func (s *TaskService) CompleteTask(ctx context.Context, id int64) (*entities.Task, error) {
	completed := entities.StatusCompleted
	task, err := s.taskRepo.Update(ctx, id, ports.TaskPatch{Status: &completed})
	if err != nil {
		return nil, err
	}

	if task.Recurrence != entities.RecurrenceNone {
		base := entities.Today()
		if task.DueDate != nil {
			base = *task.DueDate
		}

		nextDue, err := task.Recurrence.NextDueDate(base)
		if err != nil {
			return nil, fmt.Errorf("compute next due date: %w", err)
		}

		successor, err := s.taskRepo.Create(ctx, task.Successor(nextDue))
		if err != nil {
			return nil, fmt.Errorf("create recurring successor: %w", err)
		}

		s.logger.Info("Recurring task rescheduled",
			"task_id", task.ID,
			"successor_id", successor.ID,
			"due_date", nextDue,
		)
	}

	return task, nil
}

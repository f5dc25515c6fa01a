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

// priorityRank orders High > Medium > Low with NULLs last.
const priorityRank = `CASE priority WHEN 'High' THEN 3 WHEN 'Medium' THEN 2 WHEN 'Low' THEN 1 ELSE 0 END`

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (title, description, due_date, priority, status, recurrence, labels, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.DB.ExecContext(ctx, query,
		task.Title, task.Description, task.DueDate, task.Priority,
		task.Status, task.Recurrence, task.Labels, task.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, entities.ErrCreationFailed
		}
		return nil, err
	}

	return created, nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Task, error) {
	var task entities.Task
	err := r.db.DB.GetContext(ctx, &task, `SELECT * FROM tasks WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) ListByUser(ctx context.Context, userID int64) ([]*entities.Task, error) {
	query := `
		SELECT * FROM tasks
		WHERE user_id = ?
		ORDER BY due_date IS NULL, due_date ASC, ` + priorityRank + ` DESC`

	var tasks []*entities.Task
	if err := r.db.DB.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) ListByStatus(ctx context.Context, userID int64, status entities.TaskStatus) ([]*entities.Task, error) {
	query := `
		SELECT * FROM tasks
		WHERE user_id = ? AND status = ?
		ORDER BY due_date IS NULL, due_date ASC, ` + priorityRank + ` DESC`

	var tasks []*entities.Task
	if err := r.db.DB.SelectContext(ctx, &tasks, query, userID, status); err != nil {
		return nil, fmt.Errorf("list tasks by status: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) ListByDueDate(ctx context.Context, userID int64, date string) ([]*entities.Task, error) {
	query := `
		SELECT * FROM tasks
		WHERE user_id = ? AND due_date = ?
		ORDER BY ` + priorityRank + ` DESC`

	var tasks []*entities.Task
	if err := r.db.DB.SelectContext(ctx, &tasks, query, userID, date); err != nil {
		return nil, fmt.Errorf("list tasks by due date: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) ListOverdue(ctx context.Context, userID int64, today string) ([]*entities.Task, error) {
	query := `
		SELECT * FROM tasks
		WHERE user_id = ? AND due_date IS NOT NULL AND due_date < ? AND status != ?
		ORDER BY due_date ASC, ` + priorityRank + ` DESC`

	var tasks []*entities.Task
	if err := r.db.DB.SelectContext(ctx, &tasks, query, userID, today, entities.StatusCompleted); err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, id int64, patch ports.TaskPatch) (*entities.Task, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	set := buildTaskUpdate(patch)
	args := append(set.args, id)

	if _, err := r.db.DB.ExecContext(ctx, `UPDATE tasks SET `+set.clause()+` WHERE id = ?`, args...); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}

	return affected > 0, nil
}

func buildTaskUpdate(patch ports.TaskPatch) *assignments {
	set := &assignments{}
	if patch.Title != nil {
		set.set("title", *patch.Title)
	}
	if patch.Description != nil {
		set.set("description", *patch.Description)
	}
	if patch.DueDate != nil {
		set.set("due_date", *patch.DueDate)
	}
	if patch.Priority != nil {
		set.set("priority", *patch.Priority)
	}
	if patch.Status != nil {
		set.set("status", *patch.Status)
	}
	if patch.Recurrence != nil {
		set.set("recurrence", *patch.Recurrence)
	}
	if patch.Labels != nil {
		set.set("labels", *patch.Labels)
	}
	set.setRaw("updated_at = CURRENT_TIMESTAMP")
	return set
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studyplan/internal/allocation"
	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/database"
)

const taskColumns = "id, subject_id, topic_id, title, description, priority, duration_hours, scheduled_date, start_time, end_time, completed"

var taskInsertColumns = []string{
	"owner_id", "id", "subject_id", "topic_id", "title", "description", "priority",
	"duration_hours", "scheduled_date", "start_time", "end_time", "completed",
}

// DBTaskRepository implements TaskRepository using sqlx.
type DBTaskRepository struct {
	db *sqlx.DB
}

// NewDBTaskRepository creates a new DBTaskRepository.
func NewDBTaskRepository(db *sqlx.DB) *DBTaskRepository {
	return &DBTaskRepository{db: db}
}

// FindByID returns the task or an error wrapping allocation.ErrTaskNotFound.
func (r *DBTaskRepository) FindByID(ctx context.Context, ownerID, id string) (*allocation.Task, error) {
	var task allocation.Task
	err := r.db.GetContext(ctx, &task,
		r.db.Rebind("SELECT "+taskColumns+" FROM tasks WHERE owner_id = ? AND id = ?"),
		ownerID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", allocation.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(task) > %w", err)
	}
	return &task, nil
}

// FindAll returns all tasks of the owner, scheduled or not.
func (r *DBTaskRepository) FindAll(ctx context.Context, ownerID string) ([]allocation.Task, error) {
	var tasks []allocation.Task
	if err := r.db.SelectContext(ctx, &tasks,
		r.db.Rebind("SELECT "+taskColumns+" FROM tasks WHERE owner_id = ? ORDER BY id"),
		ownerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(tasks) > %w", err)
	}
	return tasks, nil
}

// FindInRange returns the tasks scheduled between from and to, both inclusive.
func (r *DBTaskRepository) FindInRange(ctx context.Context, ownerID string, from, to calendar.Date) ([]allocation.Task, error) {
	var tasks []allocation.Task
	if err := r.db.SelectContext(ctx, &tasks,
		r.db.Rebind(`SELECT `+taskColumns+` FROM tasks
		WHERE owner_id = ? AND scheduled_date >= ? AND scheduled_date <= ?
		ORDER BY scheduled_date, start_time, id`),
		ownerID, from, to); err != nil {
		return nil, fmt.Errorf("db.SelectContext(tasks in range) > %w", err)
	}
	return tasks, nil
}

// Create inserts a task.
func (r *DBTaskRepository) Create(ctx context.Context, ownerID string, task allocation.Task) error {
	query := database.BuildMultiRowInsert("tasks", taskInsertColumns, 1)
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		ownerID, task.ID, task.SubjectRef, task.TopicRef, task.Title, task.Description, task.Priority,
		task.DurationHours, task.ScheduledDate, task.StartTime, task.EndTime, task.Completed); err != nil {
		return fmt.Errorf("db.ExecContext(insert task) > %w", err)
	}
	return nil
}

// Update overwrites every column of the task.
func (r *DBTaskRepository) Update(ctx context.Context, ownerID string, task allocation.Task) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE tasks SET subject_id = ?, topic_id = ?, title = ?, description = ?, priority = ?,
		duration_hours = ?, scheduled_date = ?, start_time = ?, end_time = ?, completed = ?
		WHERE owner_id = ? AND id = ?`),
		task.SubjectRef, task.TopicRef, task.Title, task.Description, task.Priority,
		task.DurationHours, task.ScheduledDate, task.StartTime, task.EndTime, task.Completed,
		ownerID, task.ID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update task) > %w", err)
	}
	return expectAffected(result, fmt.Errorf("%w: %s", allocation.ErrTaskNotFound, task.ID))
}

// Delete removes a task.
func (r *DBTaskRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("DELETE FROM tasks WHERE owner_id = ? AND id = ?"), ownerID, id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete task) > %w", err)
	}
	return expectAffected(result, fmt.Errorf("%w: %s", allocation.ErrTaskNotFound, id))
}

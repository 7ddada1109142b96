package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

const taskColumns = `id, owner_id, title, description, tag, deadline, section, done, created_at, updated_at`

// TaskRepositoryImpl implements the TaskRepository interface on PostgreSQL
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if task.ID == "" {
		task.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.OwnerID, task.Title, task.Description, task.Tag,
		task.Deadline, task.Section, task.Done, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, ownerID, id string) (*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND owner_id = $2`

	var task entities.Task
	if err := r.db.GetContext(ctx, &task, query, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 ORDER BY created_at, id`

	tasks := []*entities.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, ownerID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $3, description = $4, tag = $5, deadline = $6, section = $7,
			done = $8, updated_at = $9
		WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query,
		task.ID, task.OwnerID, task.Title, task.Description, task.Tag,
		task.Deadline, task.Section, task.Done, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	return requireAffected(result, "update task")
}

// UpdateMatching rewrites the oldest task matching owner, title and description
func (r *TaskRepositoryImpl) UpdateMatching(ctx context.Context, match ports.TaskMatch, update ports.TaskUpdate) (*entities.Task, error) {
	staged := &entities.Task{}
	update.Apply(staged)

	query := `
		UPDATE tasks
		SET title = $4, description = $5, tag = $6, deadline = $7, section = $8, updated_at = $9
		WHERE id = (
			SELECT id FROM tasks
			WHERE owner_id = $1 AND title = $2 AND description = $3
			ORDER BY created_at, id
			LIMIT 1
		)
		RETURNING ` + taskColumns

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query,
		match.OwnerID, match.Title, match.Description,
		staged.Title, staged.Description, staged.Tag, staged.Deadline, staged.Section, staged.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task by match: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) SetDone(ctx context.Context, ownerID, id string, done bool) (*entities.Task, error) {
	query := `
		UPDATE tasks
		SET done = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + taskColumns

	var task entities.Task
	if err := r.db.GetContext(ctx, &task, query, id, ownerID, done); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("set task done: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) DeleteByID(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	return requireAffected(result, "delete task")
}

// DeleteMatching removes the oldest task matching the given content
func (r *TaskRepositoryImpl) DeleteMatching(ctx context.Context, match ports.TaskMatch) error {
	where := `owner_id = $1 AND title = $2 AND description = $3`
	args := []interface{}{match.OwnerID, match.Title, match.Description}
	if match.Tag != nil {
		where += ` AND tag = $4`
		args = append(args, *match.Tag)
	}

	query := `
		DELETE FROM tasks
		WHERE id = (
			SELECT id FROM tasks
			WHERE ` + where + `
			ORDER BY created_at, id
			LIMIT 1
		)`

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete task by match: %w", err)
	}

	return requireAffected(result, "delete task by match")
}

func requireAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected: %w", op, err)
	}
	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// TaskService handles owner-scoped task operations.
// Tag, section and deadline are re-parsed here so callers other than the
// HTTP layer cannot store values outside the domain.
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

var _ ports.TaskService = (*TaskService)(nil)

// CreateTask persists a new task for ownerID with done=false
func (s *TaskService) CreateTask(ctx context.Context, ownerID string, req ports.CreateTaskRequest) (*entities.Task, error) {
	fields, err := parseTaskFields(req.Title, req.Description, req.Tag, req.Section, req.Deadline)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &entities.Task{
		OwnerID:     ownerID,
		Title:       fields.Title,
		Description: fields.Description,
		Tag:         fields.Tag,
		Deadline:    fields.Deadline,
		Section:     fields.Section,
		Done:        false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.LogUserAction(ownerID, "task_created", map[string]interface{}{"task_id": task.ID})

	return task, nil
}

// GetTask retrieves one of ownerID's tasks
func (s *TaskService) GetTask(ctx context.Context, ownerID, id string) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListTasks returns every task owned by ownerID
func (s *TaskService) ListTasks(ctx context.Context, ownerID string) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*entities.Task{}
	}
	return tasks, nil
}

// UpdateTaskByMatch replaces the fields of the first task matching
// (owner, title, description).
func (s *TaskService) UpdateTaskByMatch(ctx context.Context, ownerID string, req ports.UpdateTaskByMatchRequest) (*entities.Task, error) {
	update, err := parseTaskFields(req.NewTitle, req.NewDescription, req.NewTag, req.NewSection, req.NewDeadline)
	if err != nil {
		return nil, err
	}

	match := ports.TaskMatch{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
	}

	task, err := s.taskRepo.UpdateMatching(ctx, match, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.LogUserAction(ownerID, "task_updated", map[string]interface{}{"task_id": task.ID})

	return task, nil
}

// ReplaceTask overwrites a task addressed by id
func (s *TaskService) ReplaceTask(ctx context.Context, ownerID string, req ports.ReplaceTaskRequest) (*entities.Task, error) {
	update, err := parseTaskFields(req.Title, req.Description, req.Tag, req.Section, req.Deadline)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, ownerID, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	update.Apply(task)
	if req.Done != nil {
		task.Done = *req.Done
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.LogUserAction(ownerID, "task_replaced", map[string]interface{}{"task_id": task.ID})

	return task, nil
}

// SetTaskDone flips the completion flag of a task addressed by id
func (s *TaskService) SetTaskDone(ctx context.Context, ownerID string, req ports.SetTaskDoneRequest) (*entities.Task, error) {
	if req.Done == nil {
		return nil, fmt.Errorf("missing done flag")
	}

	task, err := s.taskRepo.SetDone(ctx, ownerID, req.ID, *req.Done)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.LogUserAction(ownerID, "task_done_set", map[string]interface{}{"task_id": task.ID, "done": task.Done})

	return task, nil
}

// DeleteTask removes a task addressed by id
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, id string) error {
	if err := s.taskRepo.DeleteByID(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.LogUserAction(ownerID, "task_deleted", map[string]interface{}{"task_id": id})
	return nil
}

// DeleteTaskByMatch removes the first task matching (owner, title, description, tag)
func (s *TaskService) DeleteTaskByMatch(ctx context.Context, ownerID string, req ports.DeleteTaskByMatchRequest) error {
	tag, err := entities.ParseTag(req.Tag)
	if err != nil {
		return err
	}

	match := ports.TaskMatch{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Tag:         &tag,
	}

	if err := s.taskRepo.DeleteMatching(ctx, match); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.LogUserAction(ownerID, "task_deleted", map[string]interface{}{"title": req.Title})
	return nil
}

func parseTaskFields(title, description, tag, section, deadline string) (ports.TaskUpdate, error) {
	t, err := entities.ParseTag(tag)
	if err != nil {
		return ports.TaskUpdate{}, err
	}
	sec, err := entities.ParseSection(section)
	if err != nil {
		return ports.TaskUpdate{}, err
	}
	d, err := entities.ParseDeadline(deadline)
	if err != nil {
		return ports.TaskUpdate{}, err
	}

	return ports.TaskUpdate{
		Title:       title,
		Description: description,
		Tag:         t,
		Deadline:    d,
		Section:     sec,
	}, nil
}

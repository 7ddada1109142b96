package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/core/internal/adapters/repository"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

const (
	alice = "64b7f0c2a1b2c3d4e5f60001"
	bob   = "64b7f0c2a1b2c3d4e5f60002"
)

func newTestTaskService() *TaskService {
	return NewTaskService(repository.NewMemoryTaskRepository(), logger.NewNop())
}

func createReq(title string) ports.CreateTaskRequest {
	return ports.CreateTaskRequest{
		Title:       title,
		Description: "some description",
		Tag:         "Medium",
		Deadline:    "2030-01-02",
		Section:     "todo",
	}
}

func TestCreateTask_OwnedAndNotDone(t *testing.T) {
	svc := newTestTaskService()

	task, err := svc.CreateTask(context.Background(), alice, createReq("Buy milk"))
	require.NoError(t, err)
	assert.Len(t, task.ID, 24)
	assert.Equal(t, alice, task.OwnerID)
	assert.False(t, task.Done)
	assert.Equal(t, entities.TagMedium, task.Tag)
	assert.Equal(t, 2030, task.Deadline.Year())

	tasks, err := svc.ListTasks(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestCreateTask_InvalidDeadline(t *testing.T) {
	req := createReq("Buy milk")
	req.Deadline = "next tuesday"

	_, err := newTestTaskService().CreateTask(context.Background(), alice, req)
	require.ErrorIs(t, err, entities.ErrInvalidDeadline)
}

func TestTaskService_RejectsUnknownLabels(t *testing.T) {
	svc := newTestTaskService()

	req := createReq("Buy milk")
	req.Tag = "Urgent"
	_, err := svc.CreateTask(context.Background(), alice, req)
	require.ErrorIs(t, err, entities.ErrInvalidTag)

	req = createReq("Buy milk")
	req.Section = "backlog"
	_, err = svc.CreateTask(context.Background(), alice, req)
	require.ErrorIs(t, err, entities.ErrInvalidSection)

	err = svc.DeleteTaskByMatch(context.Background(), alice, ports.DeleteTaskByMatchRequest{
		Title: "Buy milk", Description: "two litres", Tag: "low",
	})
	require.ErrorIs(t, err, entities.ErrInvalidTag)

	tasks, err := svc.ListTasks(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestListTasks_EmptyIsNotNil(t *testing.T) {
	tasks, err := newTestTaskService().ListTasks(context.Background(), alice)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestOwnershipIsolation(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	mine, err := svc.CreateTask(ctx, alice, createReq("Alice task"))
	require.NoError(t, err)

	_, err = svc.GetTask(ctx, bob, mine.ID)
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	done := true
	_, err = svc.SetTaskDone(ctx, bob, ports.SetTaskDoneRequest{ID: mine.ID, Done: &done})
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	_, err = svc.UpdateTaskByMatch(ctx, bob, ports.UpdateTaskByMatchRequest{
		Title: "Alice task", Description: "some description",
		NewTitle: "Hijacked", NewDescription: "hijacked!", NewTag: "High", NewDeadline: "2031-01-01", NewSection: "finished",
	})
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	err = svc.DeleteTaskByMatch(ctx, bob, ports.DeleteTaskByMatchRequest{Title: "Alice task", Description: "some description", Tag: "Medium"})
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	require.ErrorIs(t, svc.DeleteTask(ctx, bob, mine.ID), entities.ErrTaskNotFound)

	bobs, err := svc.ListTasks(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	still, err := svc.GetTask(ctx, alice, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice task", still.Title)
	assert.False(t, still.Done)
}

func TestUpdateTaskByMatch_ReplacesFields(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, alice, createReq("Buy milk"))
	require.NoError(t, err)

	updated, err := svc.UpdateTaskByMatch(ctx, alice, ports.UpdateTaskByMatchRequest{
		Title: "Buy milk", Description: "some description",
		NewTitle: "Buy oat milk", NewDescription: "the barista one", NewTag: "High", NewDeadline: "2030-06-01T10:00", NewSection: "inProgress",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.Equal(t, entities.SectionInProgress, updated.Section)
	assert.Equal(t, 6, int(updated.Deadline.Month()))
}

func TestReplaceTask_ByID(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, alice, createReq("Buy milk"))
	require.NoError(t, err)

	done := true
	replaced, err := svc.ReplaceTask(ctx, alice, ports.ReplaceTaskRequest{
		ID: created.ID, Title: "Buy bread", Description: "sourdough", Tag: "Low", Deadline: "2030-02-02", Section: "finished", Done: &done,
	})
	require.NoError(t, err)
	assert.True(t, replaced.Done)

	got, err := svc.GetTask(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy bread", got.Title)
	assert.Equal(t, entities.SectionFinished, got.Section)
	assert.True(t, got.Done)
}

func TestSetTaskDone_Toggle(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, alice, createReq("Buy milk"))
	require.NoError(t, err)

	for _, want := range []bool{true, false} {
		want := want
		task, err := svc.SetTaskDone(ctx, alice, ports.SetTaskDoneRequest{ID: created.ID, Done: &want})
		require.NoError(t, err)
		assert.Equal(t, want, task.Done)
	}

	_, err = svc.SetTaskDone(ctx, alice, ports.SetTaskDoneRequest{ID: created.ID})
	require.Error(t, err)
}

func TestDeleteTask(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, alice, createReq("Buy milk"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, alice, created.ID))
	require.ErrorIs(t, svc.DeleteTask(ctx, alice, created.ID), entities.ErrTaskNotFound)
}

func TestDeleteTaskByMatch_RequiresTag(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, alice, createReq("Buy milk"))
	require.NoError(t, err)

	err = svc.DeleteTaskByMatch(ctx, alice, ports.DeleteTaskByMatchRequest{Title: "Buy milk", Description: "some description", Tag: "High"})
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	err = svc.DeleteTaskByMatch(ctx, alice, ports.DeleteTaskByMatchRequest{Title: "Buy milk", Description: "some description", Tag: "Medium"})
	require.NoError(t, err)

	tasks, err := svc.ListTasks(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

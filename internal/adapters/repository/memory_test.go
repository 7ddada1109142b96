package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

func newMemoryTask(owner, title string) *entities.Task {
	return &entities.Task{
		OwnerID:     owner,
		Title:       title,
		Description: "desc",
		Tag:         entities.TagLow,
		Deadline:    time.Now().Add(time.Hour),
		Section:     entities.SectionTodo,
	}
}

func TestMemoryUserRepository_UniqueEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.User{Name: "Ann", Email: "ann@x.io"}))
	err := repo.Create(ctx, &entities.User{Name: "Other Ann", Email: "ann@x.io"})
	require.ErrorIs(t, err, entities.ErrDuplicateEmail)

	user, err := repo.GetByEmail(ctx, "ann@x.io")
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)

	_, err = repo.GetByEmail(ctx, "bob@x.io")
	require.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestMemoryUserRepository_ConcurrentSignupsOneWins(t *testing.T) {
	repo := NewMemoryUserRepository()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(context.Background(), &entities.User{Name: fmt.Sprint(i), Email: "same@x.io"})
		}(i)
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, entities.ErrDuplicateEmail)
	}
	assert.Equal(t, 1, ok)
}

func TestMemoryTaskRepository_OwnerIsolation(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	mine := newMemoryTask(ownerA, "mine")
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, newMemoryTask("other", "theirs")))

	tasks, err := repo.ListByOwner(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Title)

	_, err = repo.GetByID(ctx, "other", mine.ID)
	require.ErrorIs(t, err, entities.ErrTaskNotFound)
	require.ErrorIs(t, repo.DeleteByID(ctx, "other", mine.ID), entities.ErrTaskNotFound)

	_, err = repo.SetDone(ctx, "other", mine.ID, true)
	require.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestMemoryTaskRepository_MatchActsOnFirst(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	first := newMemoryTask(ownerA, "dup")
	second := newMemoryTask(ownerA, "dup")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	updated, err := repo.UpdateMatching(ctx,
		ports.TaskMatch{OwnerID: ownerA, Title: "dup", Description: "desc"},
		ports.TaskUpdate{Title: "renamed", Description: "desc", Tag: entities.TagHigh, Section: entities.SectionFinished},
	)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	tag := entities.TagLow
	require.NoError(t, repo.DeleteMatching(ctx, ports.TaskMatch{OwnerID: ownerA, Title: "dup", Description: "desc", Tag: &tag}))

	tasks, err := repo.ListByOwner(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, "renamed", tasks[0].Title)

	err = repo.DeleteMatching(ctx, ports.TaskMatch{OwnerID: ownerA, Title: "dup", Description: "desc", Tag: &tag})
	require.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestMemoryTaskRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	task := newMemoryTask(ownerA, "original")
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, ownerA, task.ID)
	require.NoError(t, err)
	got.Title = "mutated"

	again, err := repo.GetByID(ctx, ownerA, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
}

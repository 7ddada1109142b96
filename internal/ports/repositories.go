package ports

import (
	"context"
	"time"

	"github.com/taskflow/core/internal/domain/entities"
)

// UserRepository defines the interface for credential storage.
// Implementations must enforce email uniqueness themselves and report a
// violation as entities.ErrDuplicateEmail.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// TaskRepository defines the interface for task data operations.
// Every method except Create is scoped to an owner.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, ownerID, id string) (*entities.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	UpdateMatching(ctx context.Context, match TaskMatch, update TaskUpdate) (*entities.Task, error)
	SetDone(ctx context.Context, ownerID, id string, done bool) (*entities.Task, error)
	DeleteByID(ctx context.Context, ownerID, id string) error
	DeleteMatching(ctx context.Context, match TaskMatch) error
}

// TokenRevoker keeps a denylist of token ids until they expire
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TaskMatch selects tasks by content instead of identifier. Tag is optional.
type TaskMatch struct {
	OwnerID     string
	Title       string
	Description string
	Tag         *entities.Tag
}

// Matches reports whether task satisfies the match
func (m TaskMatch) Matches(task *entities.Task) bool {
	if task.OwnerID != m.OwnerID || task.Title != m.Title || task.Description != m.Description {
		return false
	}
	if m.Tag != nil && task.Tag != *m.Tag {
		return false
	}
	return true
}

// TaskUpdate carries the replacement values for a content-matched update
type TaskUpdate struct {
	Title       string
	Description string
	Tag         entities.Tag
	Deadline    time.Time
	Section     entities.Section
}

// Apply copies the update onto task
func (u TaskUpdate) Apply(task *entities.Task) {
	task.Title = u.Title
	task.Description = u.Description
	task.Tag = u.Tag
	task.Deadline = u.Deadline
	task.Section = u.Section
	task.UpdatedAt = time.Now()
}

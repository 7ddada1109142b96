package repository

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

// MemoryUserRepository keeps users in process memory
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entities.User
	byEmail map[string]string
}

// NewMemoryUserRepository creates an empty in-memory user store
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]string),
	}
}

var _ ports.UserRepository = (*MemoryUserRepository)(nil)

func (r *MemoryUserRepository) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return entities.ErrDuplicateEmail
	}
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

// MemoryTaskRepository keeps tasks in process memory in insertion order
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	seq   uint64
	tasks map[string]*memoryTask
}

type memoryTask struct {
	task entities.Task
	seq  uint64
}

// NewMemoryTaskRepository creates an empty in-memory task store
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[string]*memoryTask)}
}

var _ ports.TaskRepository = (*MemoryTaskRepository)(nil)

func (r *MemoryTaskRepository) Create(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = primitive.NewObjectID().Hex()
	}
	r.seq++
	r.tasks[task.ID] = &memoryTask{task: *task, seq: r.seq}
	return nil
}

func (r *MemoryTaskRepository) GetByID(_ context.Context, ownerID, id string) (*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.tasks[id]
	if !ok || !entry.task.IsOwnedBy(ownerID) {
		return nil, entities.ErrTaskNotFound
	}
	out := entry.task
	return &out, nil
}

func (r *MemoryTaskRepository) ListByOwner(_ context.Context, ownerID string) ([]*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []*entities.Task{}
	for _, entry := range r.ordered() {
		if entry.task.IsOwnedBy(ownerID) {
			out := entry.task
			tasks = append(tasks, &out)
		}
	}
	return tasks, nil
}

func (r *MemoryTaskRepository) Update(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.tasks[task.ID]
	if !ok || !entry.task.IsOwnedBy(task.OwnerID) {
		return entities.ErrTaskNotFound
	}
	entry.task = *task
	return nil
}

func (r *MemoryTaskRepository) UpdateMatching(_ context.Context, match ports.TaskMatch, update ports.TaskUpdate) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.firstMatch(match)
	if entry == nil {
		return nil, entities.ErrTaskNotFound
	}
	update.Apply(&entry.task)
	out := entry.task
	return &out, nil
}

func (r *MemoryTaskRepository) SetDone(_ context.Context, ownerID, id string, done bool) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.tasks[id]
	if !ok || !entry.task.IsOwnedBy(ownerID) {
		return nil, entities.ErrTaskNotFound
	}
	entry.task.MarkDone(done)
	out := entry.task
	return &out, nil
}

func (r *MemoryTaskRepository) DeleteByID(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.tasks[id]
	if !ok || !entry.task.IsOwnedBy(ownerID) {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *MemoryTaskRepository) DeleteMatching(_ context.Context, match ports.TaskMatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.firstMatch(match)
	if entry == nil {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, entry.task.ID)
	return nil
}

// callers must hold r.mu
func (r *MemoryTaskRepository) ordered() []*memoryTask {
	entries := make([]*memoryTask, 0, len(r.tasks))
	for _, entry := range r.tasks {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	return entries
}

// callers must hold r.mu
func (r *MemoryTaskRepository) firstMatch(match ports.TaskMatch) *memoryTask {
	for _, entry := range r.ordered() {
		if match.Matches(&entry.task) {
			return entry
		}
	}
	return nil
}

package database

import (
	"context"
	"fmt"

	"github.com/taskflow/core/internal/adapters/repository"
	"github.com/taskflow/core/internal/infrastructure/config"
	"github.com/taskflow/core/internal/ports"
)

// Store bundles the repositories of the configured driver with its lifecycle
type Store struct {
	Driver string
	Users  ports.UserRepository
	Tasks  ports.TaskRepository

	health func(ctx context.Context) error
	close  func(ctx context.Context) error
}

// OpenStore connects to the configured driver and builds its repositories.
// The mongo driver also ensures its indexes so email uniqueness holds from
// the first signup.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		m, err := NewMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureIndexes(ctx, m.DB); err != nil {
			_ = m.Close(ctx)
			return nil, err
		}
		return &Store{
			Driver: cfg.Driver,
			Users:  repository.NewMongoUserRepository(m.DB),
			Tasks:  repository.NewMongoTaskRepository(m.DB),
			health: m.HealthCheck,
			close:  m.Close,
		}, nil

	case config.DriverPostgres:
		db, err := New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver: cfg.Driver,
			Users:  repository.NewUserRepository(db.DB),
			Tasks:  repository.NewTaskRepository(db.DB),
			health: db.HealthCheck,
			close:  func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMemory:
		return NewMemoryStore(), nil
	}

	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

// NewMemoryStore builds a process-local store
func NewMemoryStore() *Store {
	return &Store{
		Driver: config.DriverMemory,
		Users:  repository.NewMemoryUserRepository(),
		Tasks:  repository.NewMemoryTaskRepository(),
		health: func(context.Context) error { return nil },
		close:  func(context.Context) error { return nil },
	}
}

// HealthCheck reports whether the backing store is reachable
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.health(ctx)
}

// Close releases the backing connections
func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}

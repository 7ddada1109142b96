package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/taskflow/core/internal/adapters/cache"
	"github.com/taskflow/core/internal/adapters/repository"
	"github.com/taskflow/core/internal/application/services"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/config"
	"github.com/taskflow/core/internal/infrastructure/database"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/infrastructure/server"
	"github.com/taskflow/core/internal/infrastructure/validation"
	"github.com/taskflow/core/internal/ports"
)

// Set at build time with -ldflags "-X github.com/taskflow/core/cmd/api/commands.Version=..."
var (
	Version = "dev"
	Commit  = "none"
)

const startupTimeout = 30 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the TaskFlow API server",
		Long:  "Start the TaskFlow API server with the configured store, routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer(loadConfig(cmd))
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Store schema commands",
		Long:  "Apply or revert the PostgreSQL schema, or create the MongoDB indexes (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration(loadConfig(cmd), "up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert all migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration(loadConfig(cmd), "down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion(loadConfig(cmd))
		},
	})

	return migrateCmd
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create accounts directly in the configured store",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			createUser(loadConfig(cmd), ports.SignupRequest{
				Name:     name,
				Email:    email,
				Password: password,
			})
		},
	}

	createUserCmd.Flags().String("name", "", "Display name (required)")
	createUserCmd.Flags().String("email", "", "User email (required)")
	createUserCmd.Flags().String("password", "", "User password (required)")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print TaskFlow version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("TaskFlow %s\n", Version)
			fmt.Printf("Git Commit: %s\n", Commit)
		},
	}
}

func loadConfig(cmd *cobra.Command) *config.Config {
	configFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

func runServer(cfg *config.Config) {
	appLogger, err := logger.New(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store, err := database.OpenStore(ctx, cfg.Database)
	if err != nil {
		appLogger.Fatalw("Failed to open store", "driver", cfg.Database.Driver, "error", err)
	}
	defer store.Close(context.Background())

	appLogger.Infow("Connected to store", "driver", store.Driver)

	revoker, redisClient := newRevoker(ctx, cfg, appLogger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	srv, err := server.New(cfg, server.Dependencies{
		Users:   store.Users,
		Tasks:   store.Tasks,
		Revoker: revoker,
		Health:  store,
	}, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	go func() {
		appLogger.Infow("Starting TaskFlow API server",
			"port", cfg.Server.Port,
			"environment", cfg.App.Environment,
		)

		if err := srv.Start(cfg.Server.GetAddr()); err != nil {
			appLogger.Fatalw("Server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("Server forced to shutdown", "error", err)
		return
	}

	appLogger.Info("Server exited gracefully")
}

// newRevoker picks the token revocation store when revocation is enabled:
// Redis when configured, process memory otherwise.
func newRevoker(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (ports.TokenRevoker, *redis.Client) {
	if !cfg.Auth.RevokeOnLogout {
		return nil, nil
	}

	if cfg.Redis.Enabled() {
		client, err := database.NewRedis(ctx, cfg.Redis, appLogger)
		if err != nil {
			appLogger.Fatalw("Failed to connect to Redis", "error", err)
		}
		return cache.NewRedisRevoker(client), client
	}

	appLogger.Warn("Redis is not configured; revoked tokens are kept in memory")
	return cache.NewMemoryRevoker(), nil
}

func runMigration(cfg *config.Config, direction string) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	switch cfg.Database.Driver {
	case config.DriverMongo:
		if direction != "up" {
			log.Fatalf("migrate %s is not supported for the mongo driver", direction)
		}
		m, err := database.NewMongo(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer m.Close(context.Background())

		if err := repository.EnsureIndexes(ctx, m.DB); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
		fmt.Println("MongoDB indexes are in place")

	case config.DriverPostgres:
		migrator := openMigrator(ctx, cfg)
		defer migrator.Close()

		var (
			changed bool
			err     error
		)
		if direction == "down" {
			changed, err = migrator.Down()
		} else {
			changed, err = migrator.Up()
		}
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}

		if !changed {
			fmt.Println("No migrations to run")
		} else {
			fmt.Printf("Migration %s completed successfully\n", direction)
		}

	default:
		log.Fatalf("The %s driver has no schema to migrate", cfg.Database.Driver)
	}
}

func showMigrationVersion(cfg *config.Config) {
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("Migration versions are only tracked for the postgres driver")
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	migrator := openMigrator(ctx, cfg)
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

func openMigrator(ctx context.Context, cfg *config.Config) *database.Migrator {
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	migrator, err := database.NewMigrator(db)
	if err != nil {
		_ = db.Close()
		log.Fatalf("Failed to create migrator: %v", err)
	}
	return migrator
}

func createUser(cfg *config.Config, req ports.SignupRequest) {
	var verr *validation.Error
	if err := validation.New().Validate(req); err != nil {
		if errors.As(err, &verr) {
			log.Fatalf("Invalid user: %s", verr.Message)
		}
		log.Fatalf("Invalid user: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store, err := database.OpenStore(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close(context.Background())

	user, err := registerUser(ctx, cfg, store.Users, req)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created successfully:\n")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Name: %s\n", user.Name)
	fmt.Printf("  Email: %s\n", user.Email)
}

// registerUser signs the account up and returns the record as stored
func registerUser(ctx context.Context, cfg *config.Config, users ports.UserRepository, req ports.SignupRequest) (*entities.User, error) {
	authService, err := services.NewAuthService(users, services.NewTokenService(cfg.JWT), nil, cfg.Auth, logger.NewNop())
	if err != nil {
		return nil, err
	}

	created, err := authService.Signup(ctx, req)
	if err != nil {
		return nil, err
	}

	user, err := users.GetByID(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("read back user %s: %w", created.ID, err)
	}
	return user, nil
}

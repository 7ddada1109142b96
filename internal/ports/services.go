package ports

import (
	"context"
	"time"

	"github.com/taskflow/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*entities.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*TokenClaims, error)
}

// TokenService issues and verifies signed identity tokens
type TokenService interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
	Parse(token string) (*TokenClaims, error)
}

// TaskService interface for owner-scoped task operations
type TaskService interface {
	CreateTask(ctx context.Context, ownerID string, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, ownerID, id string) (*entities.Task, error)
	ListTasks(ctx context.Context, ownerID string) ([]*entities.Task, error)
	UpdateTaskByMatch(ctx context.Context, ownerID string, req UpdateTaskByMatchRequest) (*entities.Task, error)
	ReplaceTask(ctx context.Context, ownerID string, req ReplaceTaskRequest) (*entities.Task, error)
	SetTaskDone(ctx context.Context, ownerID string, req SetTaskDoneRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, ownerID, id string) error
	DeleteTaskByMatch(ctx context.Context, ownerID string, req DeleteTaskByMatchRequest) error
}

// TokenClaims is the verified content of an identity token
type TokenClaims struct {
	UserID    string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt *time.Time
}

// Request/Response Types

// Auth related types
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email,min=5,max=50"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,min=5,max=50"`
	Password string `json:"password" validate:"required,password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Task related types
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"required,min=3,max=100"`
	Tag         string `json:"tag" validate:"required,oneof=Low Medium High"`
	Deadline    string `json:"deadline" validate:"required,datestring"`
	Section     string `json:"section" validate:"required,oneof=todo inProgress underReview finished"`
}

type UpdateTaskByMatchRequest struct {
	Title          string `json:"title" validate:"required,min=3,max=50"`
	Description    string `json:"description" validate:"required,min=3,max=100"`
	NewTitle       string `json:"newTitle" validate:"required,min=3,max=50"`
	NewDescription string `json:"newDescription" validate:"required,min=3,max=100"`
	NewTag         string `json:"newTag" validate:"required,oneof=Low Medium High"`
	NewDeadline    string `json:"newDeadline" validate:"required,datestring"`
	NewSection     string `json:"newSection" validate:"required,oneof=todo inProgress underReview finished"`
}

type DeleteTaskByMatchRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"required,min=3,max=100"`
	Tag         string `json:"tag" validate:"required,oneof=Low Medium High"`
}

type TaskIDParam struct {
	ID string `param:"id" validate:"required,len=24,objectid"`
}

type ReplaceTaskRequest struct {
	ID          string `param:"id" json:"-" validate:"required,len=24,objectid"`
	Title       string `json:"title" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"required,min=3,max=100"`
	Tag         string `json:"tag" validate:"required,oneof=Low Medium High"`
	Deadline    string `json:"deadline" validate:"required,datestring"`
	Section     string `json:"section" validate:"required,oneof=todo inProgress underReview finished"`
	Done        *bool  `json:"done"`
}

type SetTaskDoneRequest struct {
	ID   string `param:"id" json:"-" validate:"required,len=24,objectid"`
	Done *bool  `json:"done" validate:"required"`
}

type TodosResponse struct {
	Todos []*entities.Task `json:"todos"`
}

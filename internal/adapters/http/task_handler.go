package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

const (
	msgTodoAdded    = "Todo added successfully!"
	msgTodoUpdated  = "Todo updated successfully!"
	msgTodoDeleted  = "Todo deleted successfully!"
	msgTodoNotFound = "Todo not found"

	msgAddFailed    = "Failed to add todo!"
	msgUpdateFailed = "Failed to update todo!"
	msgDeleteFailed = "Failed to delete todo!"
	msgGetFailed    = "Failed to get todos!"
)

// TaskHandler handles task requests for the authenticated caller
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.WithComponent("task_handler"),
	}
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ports.CreateTaskRequest true "Task data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security TokenAuth
// @Router / [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.CreateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.taskService.CreateTask(c.Request().Context(), userID, req); err != nil {
		return h.storeFailure(err, msgAddFailed, userID)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: msgTodoAdded})
}

// UpdateTaskByMatch godoc
// @Summary Update the first task matching title and description
// @Tags tasks
// @Accept json
// @Produce json
// @Description Responds 201 whether or not a task matched.
// @Param request body ports.UpdateTaskByMatchRequest true "Match and replacement fields"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security TokenAuth
// @Router / [put]
func (h *TaskHandler) UpdateTaskByMatch(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.UpdateTaskByMatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.taskService.UpdateTaskByMatch(c.Request().Context(), userID, req); err != nil && !errors.Is(err, entities.ErrTaskNotFound) {
		return h.storeFailure(err, msgUpdateFailed, userID)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: msgTodoUpdated})
}

// DeleteTaskByMatch godoc
// @Summary Delete the first task matching title, description and tag
// @Tags tasks
// @Accept json
// @Produce json
// @Description Responds 201 whether or not a task matched.
// @Param request body ports.DeleteTaskByMatchRequest true "Match fields"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security TokenAuth
// @Router / [delete]
func (h *TaskHandler) DeleteTaskByMatch(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.DeleteTaskByMatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	// no match is not an error for content-matched deletes
	if err := h.taskService.DeleteTaskByMatch(c.Request().Context(), userID, req); err != nil && !errors.Is(err, entities.ErrTaskNotFound) {
		return h.storeFailure(err, msgDeleteFailed, userID)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: msgTodoDeleted})
}

// DeleteTask godoc
// @Summary Delete a task by id
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security TokenAuth
// @Router /{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.TaskIDParam
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), userID, req.ID); err != nil {
		return h.storeFailure(err, msgDeleteFailed, userID)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: msgTodoDeleted})
}

// ListTasks godoc
// @Summary List the caller's tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} entities.Task
// @Failure 503 {object} ErrorResponse
// @Security TokenAuth
// @Router / [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	userID := getUserIDFromContext(c)

	tasks, err := h.taskService.ListTasks(c.Request().Context(), userID)
	if err != nil {
		return h.storeFailure(err, msgGetFailed, userID)
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get one of the caller's tasks
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 201 {object} entities.Task
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security TokenAuth
// @Router /{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.TaskIDParam
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), userID, req.ID)
	if err != nil {
		return h.storeFailure(err, msgGetFailed, userID)
	}

	return c.JSON(http.StatusCreated, task)
}

// ReplaceTask godoc
// @Summary Replace a task by id
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.ReplaceTaskRequest true "Task data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security TokenAuth
// @Router /{id} [put]
func (h *TaskHandler) ReplaceTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.ReplaceTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.taskService.ReplaceTask(c.Request().Context(), userID, req); err != nil {
		return h.storeFailure(err, msgUpdateFailed, userID)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: msgTodoUpdated})
}

// SetTaskDone godoc
// @Summary Mark a task done or not done
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.SetTaskDoneRequest true "Completion flag"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security TokenAuth
// @Router /{id}/done [patch]
func (h *TaskHandler) SetTaskDone(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.SetTaskDoneRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.taskService.SetTaskDone(c.Request().Context(), userID, req); err != nil {
		return h.storeFailure(err, msgUpdateFailed, userID)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: msgTodoUpdated})
}

// storeFailure maps a service error to 404 for a missing task, 400 for a
// value outside the domain and a fixed 503 message for anything else.
func (h *TaskHandler) storeFailure(err error, message, userID string) error {
	switch {
	case errors.Is(err, entities.ErrTaskNotFound):
		return echo.NewHTTPError(http.StatusNotFound, msgTodoNotFound)
	case errors.Is(err, entities.ErrInvalidTag),
		errors.Is(err, entities.ErrInvalidSection),
		errors.Is(err, entities.ErrInvalidDeadline):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.logger.WithUserID(userID).Errorw("Task operation failed", "error", err)
	return echo.NewHTTPError(http.StatusServiceUnavailable, message)
}

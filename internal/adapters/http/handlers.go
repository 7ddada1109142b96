package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/infrastructure/validation"
	"github.com/taskflow/core/internal/ports"
)

// Echo context keys set by the auth gate
const (
	contextKeyUserID = "user"
	contextKeyToken  = "token"
)

// AuthHandler handles account and session requests
type AuthHandler struct {
	authService ports.AuthService
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, taskService ports.TaskService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		taskService: taskService,
		logger:      logger.WithComponent("auth_handler"),
	}
}

// Signup godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.SignupRequest true "Account data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req ports.SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.authService.Signup(c.Request().Context(), req); err != nil {
		h.logger.Warnw("Signup failed", "error", err)
		return echo.NewHTTPError(http.StatusForbidden, "Signup Failed!")
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "Signup Successful!"})
}

// Login godoc
// @Summary Exchange credentials for a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.LoginRequest true "Credentials"
// @Success 200 {object} ports.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			h.logger.LogSecurityEvent("login_failed", "", c.RealIP(), nil)
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}
		h.logger.Errorw("Login failed", "error", err)
		return echo.NewHTTPError(http.StatusForbidden, "Login Failed")
	}

	return c.JSON(http.StatusOK, response)
}

// Logout godoc
// @Summary End the session
// @Tags auth
// @Produce plain
// @Success 200 {string} string "Logout Successful!"
// @Failure 401
// @Security TokenAuth
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID := getUserIDFromContext(c)

	if err := h.authService.Logout(c.Request().Context(), getTokenFromContext(c)); err != nil {
		h.logger.WithUserID(userID).Errorw("Logout failed", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Logout Failed!")
	}

	return c.String(http.StatusOK, "Logout Successful!")
}

// Todos godoc
// @Summary List the caller's tasks wrapped in an object
// @Tags auth
// @Produce json
// @Success 200 {object} ports.TodosResponse
// @Failure 401
// @Failure 403 {object} ErrorResponse
// @Security TokenAuth
// @Router /todos [get]
func (h *AuthHandler) Todos(c echo.Context) error {
	userID := getUserIDFromContext(c)

	tasks, err := h.taskService.ListTasks(c.Request().Context(), userID)
	if err != nil {
		h.logger.WithUserID(userID).Errorw("List todos failed", "error", err)
		return echo.NewHTTPError(http.StatusForbidden, "Failed to get todos")
	}

	return c.JSON(http.StatusOK, ports.TodosResponse{Todos: tasks})
}

// Request/Response types
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// SetAuthContext records the authenticated caller on the request context
func SetAuthContext(c echo.Context, userID, token string) {
	c.Set(contextKeyUserID, userID)
	c.Set(contextKeyToken, token)
}

func getUserIDFromContext(c echo.Context) string {
	userID, _ := c.Get(contextKeyUserID).(string)
	return userID
}

func getTokenFromContext(c echo.Context) string {
	token, _ := c.Get(contextKeyToken).(string)
	return token
}

// bindAndValidate decodes the request into req and applies its validation rules.
// Failures are returned as 400 errors carrying the first violated rule.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusBadRequest, verr.Message)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/taskflow/core/internal/adapters/http"
	"github.com/taskflow/core/internal/domain/entities"
)

const bearerPrefix = "Bearer "

// authMiddleware admits requests carrying a valid token and stores the
// caller's id on the context. Rejections are 401 with an empty body.
func (s *Server) authMiddleware() echo.MiddlewareFunc {
	header := s.config.Auth.TokenHeader

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c.Request(), header)
			if token == "" {
				s.rejectAuth(c, "missing_token", nil)
				return c.NoContent(http.StatusUnauthorized)
			}

			claims, err := s.authService.Authenticate(c.Request().Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, entities.ErrTokenRevoked):
					s.rejectAuth(c, "revoked_token", err)
				case errors.Is(err, entities.ErrInvalidToken):
					s.rejectAuth(c, "invalid_token", err)
				default:
					// revocation store unreachable
					s.logger.Errorw("Token check failed", "error", err)
					return echo.NewHTTPError(http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable))
				}
				return c.NoContent(http.StatusUnauthorized)
			}

			httpHandlers.SetAuthContext(c, claims.UserID, token)

			return next(c)
		}
	}
}

func (s *Server) rejectAuth(c echo.Context, reason string, err error) {
	s.metrics.authFailures.WithLabelValues(reason).Inc()

	details := map[string]interface{}{"endpoint": c.Request().URL.Path}
	if err != nil {
		details["error"] = err.Error()
	}
	s.logger.LogSecurityEvent(reason, "", c.RealIP(), details)
}

// extractToken reads the raw token from the configured header, falling back
// to an Authorization bearer token.
func extractToken(r *http.Request, header string) string {
	if token := strings.TrimSpace(r.Header.Get(header)); token != "" {
		return token
	}

	auth := r.Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
	}
	return ""
}

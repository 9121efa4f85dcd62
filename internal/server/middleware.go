package server

import (
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/thenoetrevino/kanban/internal/auth"
)

const callerKey = "callerID"

// requireAuth is the single authentication gate. It resolves the bearer token
// to a caller id before any handler runs.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return err
		}
		userID, err := s.tokens.Verify(token)
		if err != nil {
			return err
		}
		c.Set(callerKey, userID)
		return next(c)
	}
}

// callerID returns the identity set by requireAuth
func callerID(c echo.Context) string {
	id, _ := c.Get(callerKey).(string)
	return id
}

// observe counts requests and writes one log line per request.
// Errors are rendered here so the logged status is the one sent.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		s.metrics.begin()

		if err := next(c); err != nil {
			c.Error(err)
		}

		status := c.Response().Status
		s.metrics.end(status)

		fields := log.Fields{
			"method":     c.Request().Method,
			"route":      c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
		}
		if id := callerID(c); id != "" {
			fields["caller"] = id
		}
		entry := s.logger.WithFields(fields)
		if status >= 500 {
			entry.Warn("request")
		} else {
			entry.Debug("request")
		}
		return nil
	}
}

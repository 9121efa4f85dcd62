package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// bind decodes a JSON request body into req; an empty body leaves req untouched
func bind(c echo.Context, req any) error {
	return (&echo.DefaultBinder{}).BindBody(c, req)
}

type healthResponse struct {
	Status  string          `json:"status"`
	Metrics MetricsSnapshot `json:"metrics"`
}

func (s *Server) health() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, envelope{
			Success: true,
			Data:    healthResponse{Status: "ok", Metrics: s.metrics.Snapshot()},
		})
	}
}

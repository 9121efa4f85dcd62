package server

import (
	"github.com/labstack/echo/v4"

	columnservice "github.com/thenoetrevino/kanban/internal/services/column"
)

func (s *Server) listColumns() echo.HandlerFunc {
	return func(c echo.Context) error {
		columns, err := s.app.ColumnService.ListColumns(c.Request().Context(), callerID(c), c.Param("projectId"))
		if err != nil {
			return err
		}
		return ok(c, columns)
	}
}

func (s *Server) createColumn() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req columnservice.CreateColumnRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		column, err := s.app.ColumnService.CreateColumn(c.Request().Context(), callerID(c), req)
		if err != nil {
			return err
		}
		return created(c, column)
	}
}

func (s *Server) updateColumn() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req columnservice.UpdateColumnRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		req.ID = c.Param("id")
		column, err := s.app.ColumnService.UpdateColumn(c.Request().Context(), callerID(c), req)
		if err != nil {
			return err
		}
		return ok(c, column)
	}
}

func (s *Server) deleteColumn() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.app.ColumnService.DeleteColumn(c.Request().Context(), callerID(c), c.Param("id")); err != nil {
			return err
		}
		return message(c, "column deleted")
	}
}

func (s *Server) reorderColumns() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req columnservice.ReorderColumnsRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		columns, err := s.app.ColumnService.ReorderColumns(c.Request().Context(), callerID(c), req)
		if err != nil {
			return err
		}
		return ok(c, columns)
	}
}

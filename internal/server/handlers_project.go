package server

import (
	"github.com/labstack/echo/v4"

	projectservice "github.com/thenoetrevino/kanban/internal/services/project"
)

func (s *Server) listProjects() echo.HandlerFunc {
	return func(c echo.Context) error {
		projects, err := s.app.ProjectService.ListProjects(c.Request().Context(), callerID(c))
		if err != nil {
			return err
		}
		return ok(c, projects)
	}
}

func (s *Server) getBoard() echo.HandlerFunc {
	return func(c echo.Context) error {
		board, err := s.app.ProjectService.GetBoard(c.Request().Context(), callerID(c), c.Param("id"))
		if err != nil {
			return err
		}
		return ok(c, board)
	}
}

func (s *Server) createProject() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req projectservice.CreateProjectRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		board, err := s.app.ProjectService.CreateProject(c.Request().Context(), callerID(c), req)
		if err != nil {
			return err
		}
		return created(c, board)
	}
}

func (s *Server) updateProject() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req projectservice.UpdateProjectRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		req.ID = c.Param("id")
		project, err := s.app.ProjectService.UpdateProject(c.Request().Context(), callerID(c), req)
		if err != nil {
			return err
		}
		return ok(c, project)
	}
}

func (s *Server) deleteProject() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.app.ProjectService.DeleteProject(c.Request().Context(), callerID(c), c.Param("id")); err != nil {
			return err
		}
		return message(c, "project deleted")
	}
}

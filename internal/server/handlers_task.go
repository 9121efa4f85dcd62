package server

import (
	"github.com/labstack/echo/v4"

	taskservice "github.com/thenoetrevino/kanban/internal/services/task"
)

func (s *Server) listTasksByProject() echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks, err := s.app.TaskService.ListTasksByProject(c.Request().Context(), callerID(c), c.Param("projectId"))
		if err != nil {
			return err
		}
		return ok(c, tasks)
	}
}

func (s *Server) listTasksByColumn() echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks, err := s.app.TaskService.ListTasksByColumn(c.Request().Context(), callerID(c), c.Param("columnId"))
		if err != nil {
			return err
		}
		return ok(c, tasks)
	}
}

func (s *Server) createTask() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req taskservice.CreateTaskRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		task, err := s.app.TaskService.CreateTask(c.Request().Context(), callerID(c), req)
		if err != nil {
			return err
		}
		return created(c, task)
	}
}

func (s *Server) updateTask() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req taskservice.UpdateTaskRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		req.ID = c.Param("id")
		task, err := s.app.TaskService.UpdateTask(c.Request().Context(), callerID(c), req)
		if err != nil {
			return err
		}
		return ok(c, task)
	}
}

func (s *Server) moveTask() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req taskservice.MoveTaskRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		req.ID = c.Param("id")
		task, err := s.app.TaskService.MoveTask(c.Request().Context(), callerID(c), req)
		if err != nil {
			return err
		}
		return ok(c, task)
	}
}

func (s *Server) reorderTasks() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req taskservice.ReorderTasksRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		tasks, err := s.app.TaskService.ReorderTasks(c.Request().Context(), callerID(c), req)
		if err != nil {
			return err
		}
		return ok(c, tasks)
	}
}

func (s *Server) deleteTask() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.app.TaskService.DeleteTask(c.Request().Context(), callerID(c), c.Param("id")); err != nil {
			return err
		}
		return message(c, "task deleted")
	}
}

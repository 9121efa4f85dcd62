package server

import (
	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/kanban/internal/models"
	userservice "github.com/thenoetrevino/kanban/internal/services/user"
)

type authResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (s *Server) authResponse(user *models.User) (authResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return authResponse{}, err
	}
	return authResponse{ID: user.ID, Name: user.Name, Email: user.Email, Token: token}, nil
}

func (s *Server) register() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req userservice.RegisterRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		user, err := s.app.UserService.Register(c.Request().Context(), req)
		if err != nil {
			return err
		}
		resp, err := s.authResponse(user)
		if err != nil {
			return err
		}
		return created(c, resp)
	}
}

func (s *Server) login() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req userservice.LoginRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		user, err := s.app.UserService.Login(c.Request().Context(), req)
		if err != nil {
			return err
		}
		resp, err := s.authResponse(user)
		if err != nil {
			return err
		}
		return ok(c, resp)
	}
}

func (s *Server) me() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := s.app.UserService.GetUser(c.Request().Context(), callerID(c))
		if err != nil {
			return err
		}
		return ok(c, user)
	}
}

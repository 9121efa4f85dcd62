package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/models"
)

const (
	// MinPasswordLength is the shortest accepted password
	MinPasswordLength = 6
	// bcrypt ignores input past 72 bytes
	maxPasswordBytes = 72
)

// Service defines account operations
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req LoginRequest) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// RegisterRequest encapsulates data for creating an account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest encapsulates account credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type service struct {
	store  database.UserStore
	cost   int
	logger *log.Logger
}

// Option configures the user service
type Option func(*service)

// WithHashCost overrides the bcrypt cost (tests use bcrypt.MinCost)
func WithHashCost(cost int) Option {
	return func(s *service) {
		s.cost = cost
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// NewService creates a new user service
func NewService(store database.UserStore, opts ...Option) Service {
	s := &service{store: store, cost: bcrypt.DefaultCost, logger: log.StandardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account with a hashed password
func (s *service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithField("user", user.ID).Info("user registered")
	return user, nil
}

// Login checks credentials and returns the matching user.
// Unknown emails and wrong passwords are reported identically.
func (s *service) Login(ctx context.Context, req LoginRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrMissingLogin
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser retrieves an account by id
func (s *service) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, models.ErrUnauthenticated
	}
	return s.store.GetUserByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Package service implements account registration and login.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"foodbridge/internal/identity/models"
	"foodbridge/internal/identity/store"
	"foodbridge/internal/identity/token"
	"foodbridge/internal/platform/metrics"
	"foodbridge/pkg/domain"
	dErrors "foodbridge/pkg/domain-errors"
	"foodbridge/pkg/requestcontext"
)

// Service registers accounts and exchanges credentials for tokens.
type Service struct {
	users   store.UserStore
	tokens  *token.Manager
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(users store.UserStore, tokens *token.Manager, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token manager is required")
	}

	s := &Service{
		users:  users,
		tokens: tokens,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register creates an account and returns a fresh token for it. Duplicate
// emails conflict.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	role, _ := domain.ParseRole(req.Role)
	user := &models.User{
		ID:           domain.NewUserID(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.metrics.IncUsersRegistered()
	s.logger.InfoContext(ctx, "account registered",
		"user_id", user.ID,
		"role", user.Role,
	)
	return s.respond(user)
}

// Login verifies credentials and returns a fresh token. Unknown emails and
// wrong passwords fail identically so callers cannot probe for accounts.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	badCredentials := dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, badCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		return nil, badCredentials
	}

	s.logger.InfoContext(ctx, "login succeeded", "user_id", user.ID)
	return s.respond(user)
}

// Me returns the account behind the authenticated actor.
func (s *Service) Me(ctx context.Context, actor domain.Actor) (*models.User, error) {
	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return s.users.GetByID(ctx, actor.ID)
}

// SeedDemoUsers creates the two demo accounts, one per role, both with the
// password "pass". Idempotent: existing accounts are left alone.
func (s *Service) SeedDemoUsers(ctx context.Context) error {
	demo := []models.RegisterRequest{
		{Name: "Alice Donor", Email: "alice@example.com", Password: "pass", Role: string(domain.RoleDonor)},
		{Name: "Bob Recipient", Email: "bob@example.com", Password: "pass", Role: string(domain.RoleRecipient)},
	}
	for _, req := range demo {
		if _, err := s.Register(ctx, req); err != nil {
			if dErrors.HasCode(err, dErrors.CodeConflict) {
				continue
			}
			return fmt.Errorf("seed demo user %s: %w", req.Email, err)
		}
	}
	return nil
}

func (s *Service) respond(user *models.User) (*models.AuthResponse, error) {
	signed, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: signed, User: *user}, nil
}

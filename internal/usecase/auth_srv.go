package usecase

import (
	"context"
	"fmt"
	"time"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"
	"cineacme/internal/dto/request"
	"cineacme/internal/dto/response"
	"cineacme/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	// EnsureAdmin creates the configured admin account when it does not exist yet.
	EnsureAdmin(ctx context.Context) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	clock  Clock
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	clock Clock,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		clock:  clock,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	user, err := createUser(ctx, s.repo.User, s.clock, req, entity.RoleUser)
	if err != nil {
		if !isDomainError(err) {
			s.log.Error("Failed to create account", zap.Error(err), zap.String("email", req.Email))
		}
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return s.issueToken(user)
}

func (s *authService) EnsureAdmin(ctx context.Context) error {
	email := normalizeEmail(s.config.Admin.Email)
	if email == "" || s.config.Admin.Password == "" {
		s.log.Info("No bootstrap admin configured")
		return nil
	}

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if existing != nil {
		return nil
	}

	user, err := createUser(ctx, s.repo.User, s.clock, &request.RegisterRequest{
		FullName: "Administrator",
		IDNumber: "admin",
		Phone:    "-",
		Email:    email,
		Password: s.config.Admin.Password,
	}, entity.RoleAdmin)
	if err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	s.log.Info("Bootstrap admin created", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) issueToken(user *entity.User) (*response.AuthResponse, error) {
	ttl := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, expiresAt, err := utils.GenerateToken(s.config.JWT.Secret, user.ID, string(user.Role), ttl)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	res := response.AuthToResponse(user, token, expiresAt)
	return &res, nil
}

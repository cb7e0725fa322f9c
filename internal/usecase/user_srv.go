package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"
	"cineacme/internal/dto/request"
	"cineacme/internal/dto/response"
	"cineacme/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.UserCreateRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *request.UserUpdateRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	clock    Clock
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, clock Clock, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		clock:    clock,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	return us.GetUserByID(ctx, userID)
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.Limit(), total), nil
}

func (us *userService) GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

func (us *userService) CreateUser(ctx context.Context, req *request.UserCreateRequest) (*response.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		us.log.Warn("Create user validation failed", zap.Error(err))
		return nil, err
	}

	user, err := createUser(ctx, us.userRepo, us.clock, &req.RegisterRequest, entity.UserRole(req.Role))
	if err != nil {
		if !isDomainError(err) {
			us.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		}
		return nil, err
	}

	us.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

func (us *userService) UpdateUser(ctx context.Context, userID string, req *request.UserUpdateRequest) (*response.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := false

	if req.FullName != nil && *req.FullName != user.FullName {
		user.FullName = *req.FullName
		updated = true
	}
	if req.IDNumber != nil && *req.IDNumber != user.IDNumber {
		user.IDNumber = *req.IDNumber
		updated = true
	}
	if req.Phone != nil && *req.Phone != user.Phone {
		user.Phone = *req.Phone
		updated = true
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			existing, err := us.userRepo.FindByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			}
			if existing != nil {
				return nil, emailTaken(email)
			}
			user.Email = email
			updated = true
		}
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
		updated = true
	}
	if req.Role != nil && entity.UserRole(*req.Role) != user.Role {
		user.Role = entity.UserRole(*req.Role)
		updated = true
	}

	if updated {
		user.UpdatedAt = us.clock.Now()
		if err := us.userRepo.Update(ctx, user); err != nil {
			switch {
			case errors.Is(err, repository.ErrDuplicate):
				return nil, emailTaken(user.Email)
			case errors.Is(err, repository.ErrNotFound):
				return nil, &NotFoundError{Entity: "user", ID: userID}
			}
			us.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", userID))
			return nil, fmt.Errorf("update user %s: %w", userID, err)
		}
		us.log.Info("User updated", zap.String("user_id", userID))
	}

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

func (us *userService) DeleteUser(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return &NotFoundError{Entity: "user", ID: userID}
	}

	if err := us.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Entity: "user", ID: userID}
		}
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("delete user %s: %w", userID, err)
	}

	us.log.Info("User deleted", zap.String("user_id", userID))
	return nil
}

func (us *userService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, &NotFoundError{Entity: "user", ID: userID}
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	if user == nil {
		return nil, &NotFoundError{Entity: "user", ID: userID}
	}
	return user, nil
}

// createUser hashes the password and stores a new account. A taken email is
// a *ValidationError.
func createUser(ctx context.Context, repo repository.UserRepository, clock Clock, req *request.RegisterRequest, role entity.UserRole) (*entity.User, error) {
	email := normalizeEmail(req.Email)

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, emailTaken(email)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := clock.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName:     req.FullName,
		IDNumber:     req.IDNumber,
		Phone:        req.Phone,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, emailTaken(email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailTaken(email string) error {
	return newValidationError(fmt.Sprintf("email %q is already registered", email))
}

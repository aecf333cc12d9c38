package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/internal/repository"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	applog "github.com/noah-isme/lab-portal-api/pkg/logger"
	"github.com/noah-isme/lab-portal-api/pkg/validation"
)

type userRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateStatus(ctx context.Context, id string, active bool) error
	UpdateProfile(ctx context.Context, user *models.User) error
}

// UserService exposes user accounts to their owners and to admins.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	if err := s.validator.Var(id, "required,uuid"); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid user id")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "User not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// UpdateStatus activates or deactivates a user and returns the stored record.
func (s *UserService) UpdateStatus(ctx context.Context, id string, req dto.UpdateUserStatusRequest) (*models.User, error) {
	if err := s.validator.Var(id, "required,uuid"); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid user id")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid status payload")
	}
	if err := s.repo.UpdateStatus(ctx, id, *req.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "User not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user status")
	}
	applog.FromContext(ctx, s.logger).Info("user status changed", zap.String("user_id", id), zap.Bool("active", *req.IsActive))
	return s.Get(ctx, id)
}

// UpdateProfile applies a user's own edits. A new password is re-hashed and
// an email already taken by another account is a conflict.
func (s *UserService) UpdateProfile(ctx context.Context, id string, req dto.UpdateProfileRequest) (*models.User, error) {
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid profile payload")
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "User not found")
		case repository.IsUniqueViolation(err):
			return nil, appErrors.Clone(appErrors.ErrDuplicateAccount, "email already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	applog.FromContext(ctx, s.logger).Info("user profile updated", zap.String("user_id", id), zap.Bool("password_changed", req.Password != nil))
	return user, nil
}

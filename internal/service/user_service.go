package service

import (
	"context"
	"fmt"

	"user_portal/internal/model"
	"user_portal/internal/repository"
	"user_portal/internal/utils"

	"github.com/sirupsen/logrus"
)

// RequireAdmin allows only administrators through
func RequireAdmin(user *model.User) error {
	if user == nil || !user.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// UserService provides the admin-only user management operations
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	hasher   *utils.PasswordHasher
	log      *logrus.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, hasher *utils.PasswordHasher, log *logrus.Logger) UserService {
	return &userService{userRepo: userRepo, hasher: hasher, log: log}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser creates a user with the admin flag chosen by the caller
func (s *userService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	user, err := createUser(ctx, s.userRepo, s.hasher, req.Username, req.Password, req.IsAdmin)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"username": user.Username, "is_admin": user.IsAdmin}).Info("user created by admin")
	return user, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"user_portal/internal/model"
	"user_portal/internal/repository"
	"user_portal/internal/utils"

	"github.com/sirupsen/logrus"
)

var (
	ErrDuplicateUsername  = repository.ErrDuplicateUsername
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("user not authenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("forbidden: admin rights required")
	ErrPasswordTooLong    = utils.ErrPasswordTooLong
)

// AuthService registers users, checks credentials and maps sessions to users
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	ResolveSession(ctx context.Context, token string) (*model.User, error)
	EnsureAdmin(ctx context.Context, username, password string) error
}

type authService struct {
	userRepo repository.UserRepository
	hasher   *utils.PasswordHasher
	sessions utils.SessionCodec
	log      *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, hasher *utils.PasswordHasher, sessions utils.SessionCodec, log *logrus.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		sessions: sessions,
		log:      log,
	}
}

// Register creates a non-admin account
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	user, err := createUser(ctx, s.userRepo, s.hasher, username, password, false)
	if err != nil {
		return nil, err
	}
	s.log.WithField("username", user.Username).Info("user registered")
	return user, nil
}

// Login verifies the password and returns the session token to hand to the client
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		s.log.WithField("username", username).Warn("failed login attempt")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Encode(user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session: %w", err)
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.log.WithField("username", user.Username).Debug("password hash uses an outdated cost")
	}
	s.log.WithField("username", user.Username).Info("user logged in")
	return user, token, nil
}

// ResolveSession maps a session token back to its user
func (s *authService) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	username, err := s.sessions.Decode(token)
	if err != nil {
		s.log.WithError(err).Debug("rejected session token")
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error resolving session: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// EnsureAdmin creates the administrator account if it does not exist yet
func (s *authService) EnsureAdmin(ctx context.Context, username, password string) error {
	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	created, err := s.userRepo.EnsureUser(ctx, &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
		IsAdmin:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure admin user: %w", err)
	}
	if created {
		s.log.WithField("username", username).Info("admin user created")
	} else {
		s.log.WithField("username", username).Debug("admin user already present")
	}
	return nil
}

// createUser hashes the password and inserts the user; a taken username maps to ErrDuplicateUsername
func createUser(ctx context.Context, repo repository.UserRepository, hasher *utils.PasswordHasher, username, password string, isAdmin bool) (*model.User, error) {
	hashedPassword, err := hasher.Hash(password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
		IsAdmin:      isAdmin,
	}
	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

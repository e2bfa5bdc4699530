package repository

import (
	"context"
	"errors"
	"fmt"

	"user_portal/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE raised by PostgreSQL on a UNIQUE constraint violation
const uniqueViolation = "23505"

var ErrDuplicateUsername = errors.New("username already taken")

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	EnsureUser(ctx context.Context, user *model.User) (bool, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

// conn prefers the connection scoped to the current request
func (r *userRepository) conn(ctx context.Context) DBTX {
	if c, ok := ConnFromContext(ctx); ok {
		return c
	}
	return r.db
}

// Create inserts a new user. Uniqueness is left to the users.username constraint.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (username, password_hash, is_admin)
            VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.conn(ctx).QueryRow(ctx, sql, user.Username, user.PasswordHash, user.IsAdmin).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// EnsureUser inserts the user unless the username exists; it reports whether a row was created
func (r *userRepository) EnsureUser(ctx context.Context, user *model.User) (bool, error) {
	sql := `INSERT INTO users (username, password_hash, is_admin)
            VALUES ($1, $2, $3)
            ON CONFLICT (username) DO NOTHING
            RETURNING id, created_at`
	err := r.conn(ctx).QueryRow(ctx, sql, user.Username, user.PasswordHash, user.IsAdmin).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to ensure user: %w", err)
	}
	return true, nil
}

// FindByUsername retrieves a user by username; a missing user is (nil, nil)
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, username, password_hash, is_admin, created_at FROM users WHERE username = $1`
	err := r.conn(ctx).QueryRow(ctx, sql, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// FindAll lists every user ordered by ID
func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	sql := `SELECT id, username, password_hash, is_admin, created_at FROM users ORDER BY id`
	rows, err := r.conn(ctx).Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

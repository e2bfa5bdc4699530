package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"user_portal/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "username", "password_hash", "is_admin", "created_at"}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func TestUserRepository_Create(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (username, password_hash, is_admin)")).
		WithArgs("alice", "hash", false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(7, now))

	user := &model.User{Username: "alice", PasswordHash: "hash"}
	err := repo.Create(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.True(t, now.Equal(user.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "hash", true).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := repo.Create(context.Background(), &model.User{Username: "alice", PasswordHash: "hash", IsAdmin: true})

	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_OtherError(t *testing.T) {
	mock, repo := newMockRepo(t)
	dbErr := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "hash", false).
		WillReturnError(dbErr)

	err := repo.Create(context.Background(), &model.User{Username: "alice", PasswordHash: "hash"})

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrDuplicateUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_EnsureUser(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (username) DO NOTHING")).
		WithArgs("admin", "hash", true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (username) DO NOTHING")).
		WithArgs("admin", "hash", true).
		WillReturnError(pgx.ErrNoRows)

	created, err := repo.EnsureUser(context.Background(), &model.User{Username: "admin", PasswordHash: "hash", IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureUser(context.Background(), &model.User{Username: "admin", PasswordHash: "hash", IsAdmin: true})
	require.NoError(t, err)
	assert.False(t, created)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("admin").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(1, "admin", "hash", true, now))

	user, err := repo.FindByUsername(context.Background(), "admin")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.True(t, user.IsAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByUsername(context.Background(), "ghost")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindAll(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY id")).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(1, "admin", "h1", true, now).
			AddRow(2, "alice", "h2", false, now))

	users, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, "alice", users[1].Username)
	assert.False(t, users[1].IsAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindAll_Empty(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY id")).
		WillReturnRows(pgxmock.NewRows(userColumns))

	users, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UsesScopedConn(t *testing.T) {
	pool, repo := newMockRepo(t)
	scoped, err := pgxmock.NewConn()
	require.NoError(t, err)
	defer scoped.Close(context.Background())

	scoped.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(2, "alice", "hash", false, time.Now()))

	ctx := WithConn(context.Background(), scoped)
	user, err := repo.FindByUsername(ctx, "alice")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.NoError(t, scoped.ExpectationsWereMet())
	assert.NoError(t, pool.ExpectationsWereMet())
}

package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"modernc.org/sqlite"
)

var accountColumns = []string{"id", "name", "surname", "age", "username", "password", "status"}

func newPostgresMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresRepository(db), mock
}

func TestPostgresRepository_Store(t *testing.T) {
	repo, mock := newPostgresMock(t)
	acc := newPendingAccount("Alice123")

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts")).
		WithArgs("Alice", "Smith", 25, "Alice123", validPassword, "In progress").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	require.NoError(t, repo.Store(context.Background(), acc))
	assert.Equal(t, ID(7), acc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_StoreDuplicate(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_key"})

	err := repo.Store(context.Background(), newPendingAccount("Alice123"))

	assert.Equal(t, ErrExistingUsername, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_StoreFailure(t *testing.T) {
	repo, mock := newPostgresMock(t)
	dbErr := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts")).WillReturnError(dbErr)

	err := repo.Store(context.Background(), newPendingAccount("Alice123"))

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrExistingUsername)
}

func TestPostgresRepository_FindByCredentials(t *testing.T) {
	repo, mock := newPostgresMock(t)
	query := regexp.QuoteMeta("WHERE username = $1 AND password = $2")

	mock.ExpectQuery(query).
		WithArgs("Alice123", validPassword).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(int64(3), "Alice", "Smith", int64(25), "Alice123", validPassword, "Active"))
	mock.ExpectQuery(query).
		WithArgs("Alice123", "Wrong12345").
		WillReturnError(sql.ErrNoRows)

	acc, err := repo.FindByCredentials(context.Background(), "Alice123", validPassword)
	require.NoError(t, err)
	assert.Equal(t, &Account{
		ID:          3,
		Name:        "Alice",
		Surname:     "Smith",
		Age:         25,
		Credentials: Credentials{Username: "Alice123", Password: validPassword},
		Status:      StatusActive,
	}, acc)

	_, err = repo.FindByCredentials(context.Background(), "Alice123", "Wrong12345")
	assert.Equal(t, ErrNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_FindByNameUnknownStatus(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1")).
		WithArgs("Alice123").
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(int64(3), "Alice", "Smith", int64(25), "Alice123", validPassword, "Suspended"))

	_, err := repo.FindByName(context.Background(), "Alice123")

	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestPostgresRepository_UpdateStatus(t *testing.T) {
	repo, mock := newPostgresMock(t)
	query := regexp.QuoteMeta("UPDATE accounts SET status = $1 WHERE id = $2")

	mock.ExpectExec(query).
		WithArgs("Active", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).
		WithArgs("Active", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.UpdateStatus(context.Background(), 3, StatusActive))
	assert.Equal(t, ErrNotFound, repo.UpdateStatus(context.Background(), 9, StatusActive))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isPostgresUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isPostgresUniqueViolation(&pgconn.PgError{Code: "23502"}))
	assert.False(t, isPostgresUniqueViolation(errors.New("23505")))

	assert.False(t, isSQLiteUniqueViolation(errors.New("UNIQUE constraint failed")))
	assert.False(t, isSQLiteUniqueViolation(&sqlite.Error{}))
}

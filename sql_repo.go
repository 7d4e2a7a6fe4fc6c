package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DBTX is the subset of database/sql used by sqlRepository.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	insert            string
	findByCredentials string
	findByName        string
	updateStatus      string
}

var sqliteQueries = queries{
	insert: `INSERT INTO accounts (name, surname, age, username, password, status)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
	findByCredentials: `SELECT id, name, surname, age, username, password, status FROM accounts
		WHERE username = ? AND password = ?`,
	findByName: `SELECT id, name, surname, age, username, password, status FROM accounts
		WHERE username = ?`,
	updateStatus: `UPDATE accounts SET status = ? WHERE id = ?`,
}

var postgresQueries = queries{
	insert: `INSERT INTO accounts (name, surname, age, username, password, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
	findByCredentials: `SELECT id, name, surname, age, username, password, status FROM accounts
		WHERE username = $1 AND password = $2`,
	findByName: `SELECT id, name, surname, age, username, password, status FROM accounts
		WHERE username = $1`,
	updateStatus: `UPDATE accounts SET status = $1 WHERE id = $2`,
}

type sqlRepository struct {
	db                DBTX
	q                 queries
	isUniqueViolation func(error) bool
}

func NewSQLiteRepository(db DBTX) Repository {
	return &sqlRepository{db: db, q: sqliteQueries, isUniqueViolation: isSQLiteUniqueViolation}
}

func NewPostgresRepository(db DBTX) Repository {
	return &sqlRepository{db: db, q: postgresQueries, isUniqueViolation: isPostgresUniqueViolation}
}

func (r *sqlRepository) Store(ctx context.Context, acc *Account) error {
	err := r.db.QueryRowContext(ctx, r.q.insert,
		acc.Name, acc.Surname, acc.Age, acc.Credentials.Username, acc.Credentials.Password, acc.Status.String(),
	).Scan(&acc.ID)

	if err != nil {
		if r.isUniqueViolation(err) {
			return ErrExistingUsername
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *sqlRepository) FindByCredentials(ctx context.Context, username, password string) (*Account, error) {
	return r.findOne(ctx, r.q.findByCredentials, username, password)
}

func (r *sqlRepository) FindByName(ctx context.Context, username string) (*Account, error) {
	return r.findOne(ctx, r.q.findByName, username)
}

func (r *sqlRepository) findOne(ctx context.Context, query string, args ...any) (*Account, error) {
	var (
		acc    Account
		status string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&acc.ID, &acc.Name, &acc.Surname, &acc.Age, &acc.Credentials.Username, &acc.Credentials.Password, &status)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if acc.Status, err = ParseStatus(status); err != nil {
		return nil, fmt.Errorf("account %d: %w", acc.ID, err)
	}
	return &acc, nil
}

func (r *sqlRepository) UpdateStatus(ctx context.Context, id ID, s Status) error {
	res, err := r.db.ExecContext(ctx, r.q.updateStatus, s.String(), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isSQLiteUniqueViolation(err error) bool {
	var e *sqlite.Error
	if !errors.As(err, &e) {
		return false
	}
	if e.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	// without extended result codes only the primary code is set
	return e.Code() == sqlite3.SQLITE_CONSTRAINT && strings.Contains(e.Error(), "UNIQUE")
}

func isPostgresUniqueViolation(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && e.Code == "23505"
}

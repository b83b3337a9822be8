// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/database/schema"
	"github.com/taibuivan/voxmundi/internal/platform/dberr"
	"github.com/taibuivan/voxmundi/internal/platform/postgres"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db postgres.Pool
}

// NewUserRepository constructs a PostgreSQL backed account store.
func NewUserRepository(db postgres.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var userColumns = strings.Join(schema.UserAccount.Scannable(), ", ")

// ScanUser reads a row selected with the account column set.
func ScanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.AvatarURL, &user.Bio, &user.Role,
		&user.IsActive, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

// UserColumns is the column list [ScanUser] expects.
func UserColumns() string {
	return userColumns
}

/*
Create inserts a new account.

Returns:
  - error: Conflict on a taken username or email
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.DisplayName, schema.UserAccount.Role,
		schema.UserAccount.IsActive, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.DisplayName, user.Role,
	).Scan(&user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("Username or email is already registered")
	}
	return dberr.Wrap(err, "create_user")
}

// FindByID returns an active, non-deleted account.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL AND %s`,
		userColumns, schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt, schema.UserAccount.IsActive,
	)

	user, err := ScanUser(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_user", "User")
	}
	return user, nil
}

// FindByLogin matches the username or the email, case-insensitively.
func (repository *PostgresUserRepository) FindByLogin(context context.Context, login string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE (LOWER(%s) = LOWER($1) OR LOWER(%s) = LOWER($1)) AND %s IS NULL
		LIMIT 1
	`,
		userColumns, schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.DeletedAt,
	)

	user, err := ScanUser(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, login))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_user_by_login", "User")
	}
	return user, nil
}

// TouchLastLogin stamps the last successful login.
func (repository *PostgresUserRepository) TouchLastLogin(context context.Context, id string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID,
	)

	_, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, id, at)
	return dberr.Wrap(err, "touch_last_login")
}

// # Session Repository

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	db postgres.Pool
}

// NewSessionRepository constructs a PostgreSQL backed session store.
func NewSessionRepository(db postgres.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// Create inserts a session row.
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`,
		schema.UserSession.Table, strings.Join(schema.UserSession.Insertable(), ", "),
		schema.UserSession.CreatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		session.ID, session.UserID, session.TokenHash, session.DeviceName,
		session.IPAddress, session.UserAgent, session.ExpiresAt,
	).Scan(&session.CreatedAt)
	return dberr.Wrap(err, "create_session")
}

// FindActiveByHash returns the live session for a token digest.
func (repository *PostgresSessionRepository) FindActiveByHash(context context.Context, tokenHash string, now time.Time) (*Session, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, COALESCE(%s, ''), COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1 AND %s
	`,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.TokenHash,
		schema.UserSession.IPAddress, schema.UserSession.UserAgent, schema.UserSession.ExpiresAt, schema.UserSession.CreatedAt,
		schema.UserSession.Table,
		schema.UserSession.TokenHash, schema.UserSession.Live("$2"),
	)

	session := &Session{}
	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, tokenHash, now).Scan(
		&session.ID, &session.UserID, &session.TokenHash, &session.IPAddress, &session.UserAgent,
		&session.ExpiresAt, &session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.WrapResource(err, "get_session", "Session")
	}
	return session, nil
}

// Revoke flips an unrevoked session to revoked.
func (repository *PostgresSessionRepository) Revoke(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND NOT %s`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.ID, schema.UserSession.IsRevoked,
	)

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "revoke_session")
	}
	return tag.RowsAffected() == 1, nil
}

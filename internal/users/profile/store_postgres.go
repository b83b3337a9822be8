// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"

	"github.com/taibuivan/voxmundi/internal/platform/database/schema"
	"github.com/taibuivan/voxmundi/internal/platform/dberr"
	"github.com/taibuivan/voxmundi/internal/platform/postgres"
	"github.com/taibuivan/voxmundi/internal/users/auth"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed profile store.
func NewPostgresRepository(db postgres.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Accounts

// FindByID returns an active account.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		auth.UserColumns(), schema.UserAccount.Table, schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	user, err := auth.ScanUser(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_profile", "User")
	}
	return user, nil
}

// FindByUsername matches the username case-insensitively.
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE LOWER(%s) = LOWER($1) AND %s IS NULL AND %s`,
		auth.UserColumns(), schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.DeletedAt, schema.UserAccount.IsActive,
	)

	user, err := auth.ScanUser(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_profile_by_username", "User")
	}
	return user, nil
}

// Update writes the editable profile columns.
func (repository *PostgresRepository) Update(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.DisplayName, schema.UserAccount.Bio, schema.UserAccount.AvatarURL, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
		schema.UserAccount.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		user.ID, user.DisplayName, user.Bio, user.AvatarURL,
	).Scan(&user.UpdatedAt)
	return dberr.WrapResource(err, "update_profile", "User")
}

// # Preferred Cultures

// PreferredCultures lists the user's preferred culture ids.
func (repository *PostgresRepository) PreferredCultures(context context.Context, userID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		schema.UserPreferredCulture.CultureID, schema.UserPreferredCulture.Table,
		schema.UserPreferredCulture.UserID, schema.UserPreferredCulture.CultureID,
	)

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_preferred_cultures")
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_preferred_culture")
		}
		ids = append(ids, id)
	}
	return ids, dberr.Wrap(rows.Err(), "list_preferred_cultures")
}

// ReplacePreferredCultures swaps the whole preference set.
func (repository *PostgresRepository) ReplacePreferredCultures(context context.Context, userID string, cultureIDs []string) error {
	querier := postgres.QuerierFromCtx(context, repository.db)

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserPreferredCulture.Table, schema.UserPreferredCulture.UserID,
	)
	if _, err := querier.Exec(context, deleteQuery, userID); err != nil {
		return dberr.Wrap(err, "clear_preferred_cultures")
	}

	if len(cultureIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1::uuid, UNNEST($2::uuid[])`,
		schema.UserPreferredCulture.Table, schema.UserPreferredCulture.UserID, schema.UserPreferredCulture.CultureID,
	)
	_, err := querier.Exec(context, insertQuery, userID, cultureIDs)
	return dberr.Wrap(err, "insert_preferred_cultures")
}

// # Sessions

// ActiveSessions lists unrevoked, unexpired sessions, newest first.
func (repository *PostgresRepository) ActiveSessions(context context.Context, userID string) ([]SessionInfo, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(%s, ''), COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1 AND %s
		ORDER BY %s DESC
	`,
		schema.UserSession.ID, schema.UserSession.DeviceName, schema.UserSession.IPAddress,
		schema.UserSession.UserAgent, schema.UserSession.CreatedAt, schema.UserSession.ExpiresAt,
		schema.UserSession.Table,
		schema.UserSession.UserID, schema.UserSession.Live("NOW()"),
		schema.UserSession.CreatedAt,
	)

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sessions")
	}
	defer rows.Close()

	sessions := []SessionInfo{}
	for rows.Next() {
		var session SessionInfo
		if err := rows.Scan(&session.ID, &session.DeviceName, &session.IPAddress, &session.UserAgent, &session.CreatedAt, &session.ExpiresAt); err != nil {
			return nil, dberr.Wrap(err, "scan_session")
		}
		sessions = append(sessions, session)
	}
	return sessions, dberr.Wrap(rows.Err(), "list_sessions")
}

// RevokeSession revokes one of the user's live sessions.
func (repository *PostgresRepository) RevokeSession(context context.Context, userID, sessionID string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s = $2 AND NOT %s`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.IsRevoked,
	)

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, sessionID, userID)
	if err != nil {
		return false, dberr.Wrap(err, "revoke_session")
	}
	return tag.RowsAffected() == 1, nil
}

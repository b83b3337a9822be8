// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/voxmundi/internal/platform/database/schema"
	"github.com/taibuivan/voxmundi/internal/platform/dberr"
	"github.com/taibuivan/voxmundi/internal/platform/postgres"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository implements [Repository] and [ListRepository] using pgx.
type PostgresRepository struct {
	db postgres.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed record store.
func NewPostgresRepository(db postgres.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Helpers

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, column := range columns {
		out[i] = alias + "." + column
	}
	return out
}

// recordCultures aggregates a record's culture ids into a text array.
var recordCultures = fmt.Sprintf(
	"COALESCE((SELECT array_agg(rc.%s::text ORDER BY rc.%s) FROM %s rc WHERE rc.%s = r.%s), '{}') AS cultures",
	schema.LibraryRecordCulture.CultureID, schema.LibraryRecordCulture.CultureID,
	schema.LibraryRecordCulture.Table,
	schema.LibraryRecordCulture.RecordID, schema.LibraryRecord.ID,
)

func scanRecord(row pgx.Row, extra ...any) (*Record, error) {
	record := &Record{}
	dest := []any{
		&record.ID, &record.OwnerID, &record.Kind, &record.UniversalItemID, &record.Title,
		&record.Rating, &record.Notes, &record.Visibility, &record.Details,
		&record.CreatedAt, &record.UpdatedAt, &record.CultureIDs,
	}
	err := row.Scan(append(dest, extra...)...)
	return record, err
}

// replaceLinks rewrites a junction table for one owner row.
func replaceLinks(context context.Context, db postgres.Querier, table, keyColumn, cultureColumn, id string, cultureIDs []string) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, keyColumn)
	if _, err := db.Exec(context, deleteQuery, id); err != nil {
		return err
	}

	if len(cultureIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1::uuid, UNNEST($2::uuid[])`, table, keyColumn, cultureColumn)
	_, err := db.Exec(context, insertQuery, id, cultureIDs)
	return err
}

// # Record Writes

// Create inserts a record row. Culture links are written separately.
func (repository *PostgresRepository) Create(context context.Context, record *Record) error {
	table := schema.LibraryRecord
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s, %s
	`,
		table.Table,
		table.ID, table.OwnerID, table.Kind, table.UniversalItemID, table.Title,
		table.Rating, table.Notes, table.Visibility, table.Details,
		table.CreatedAt, table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		record.ID, record.OwnerID, record.Kind, record.UniversalItemID, record.Title,
		record.Rating, record.Notes, record.Visibility, record.Details,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	return dberr.Wrap(err, "create_record")
}

// Update rewrites the mutable record columns.
func (repository *PostgresRepository) Update(context context.Context, record *Record) error {
	table := schema.LibraryRecord
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		table.Table,
		table.Title, table.Rating, table.Notes, table.Visibility, table.Details, table.UpdatedAt,
		table.ID,
		table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		record.ID, record.Title, record.Rating, record.Notes, record.Visibility, record.Details,
	).Scan(&record.UpdatedAt)

	return dberr.WrapResource(err, "update_record", "Record")
}

// UpdateDetails overwrites the details document.
func (repository *PostgresRepository) UpdateDetails(context context.Context, id string, details json.RawMessage) error {
	table := schema.LibraryRecord
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		table.Table, table.Details, table.UpdatedAt, table.ID,
	)

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, id, details)
	if err != nil {
		return dberr.Wrap(err, "update_record_details")
	}
	if tag.RowsAffected() == 0 {
		return dberr.WrapResource(pgx.ErrNoRows, "update_record_details", "Record")
	}
	return nil
}

// Delete removes a record. Culture links cascade.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.LibraryRecord.Table, schema.LibraryRecord.ID)

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_record")
	}
	if tag.RowsAffected() == 0 {
		return dberr.WrapResource(pgx.ErrNoRows, "delete_record", "Record")
	}
	return nil
}

// ReplaceCultures rewrites the record's culture links.
func (repository *PostgresRepository) ReplaceCultures(context context.Context, recordID string, cultureIDs []string) error {
	err := replaceLinks(context, postgres.QuerierFromCtx(context, repository.db),
		schema.LibraryRecordCulture.Table, schema.LibraryRecordCulture.RecordID, schema.LibraryRecordCulture.CultureID,
		recordID, cultureIDs,
	)
	return dberr.Wrap(err, "replace_record_cultures")
}

// # Record Reads

// FindByID returns a record with its culture ids.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Record, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s r WHERE r.%s = $1`,
		strings.Join(prefixed("r", schema.LibraryRecord.Columns()), ", "),
		recordCultures,
		schema.LibraryRecord.Table, schema.LibraryRecord.ID,
	)

	record, err := scanRecord(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_record", "Record")
	}
	return record, nil
}

/*
List returns one page of records restricted by the resolver predicate.

Description: The predicate arrives fully formed from [Resolver.Resolve]; this
method only adds the kind and free-text filters, ordering and paging. The
culture match inside the predicate is an EXISTS, so no DISTINCT is needed.

Parameters:
  - where: sq.Sqlizer (visibility predicate over alias "r")
  - scope: Scope (Kind and Query are applied here)
  - limit, offset: int

Returns:
  - []*Record: Newest first
  - int: Total count from COUNT(*) OVER()
*/
func (repository *PostgresRepository) List(context context.Context, where sq.Sqlizer, scope Scope, limit, offset int) ([]*Record, int, error) {
	table := schema.LibraryRecord
	builder := psql.Select(prefixed("r", table.Columns())...).
		Column(recordCultures).
		Column("COUNT(*) OVER() AS total_count").
		From(table.Table+" r").
		Where(where).
		OrderBy("r."+table.CreatedAt+" DESC", "r."+table.ID+" DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if scope.Kind != "" {
		builder = builder.Where(sq.Eq{"r." + table.Kind: scope.Kind})
	}
	if scope.Query != "" {
		pattern := "%" + scope.Query + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"r." + table.Title: pattern},
			sq.ILike{"r." + table.Notes: pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_list_records")
	}

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_records")
	}
	defer rows.Close()

	total := 0
	records := []*Record{}
	for rows.Next() {
		record, err := scanRecord(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_record")
		}
		records = append(records, record)
	}

	return records, total, dberr.Wrap(rows.Err(), "list_records")
}

// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/voxmundi/internal/platform/database/schema"
	"github.com/taibuivan/voxmundi/internal/platform/dberr"
	"github.com/taibuivan/voxmundi/internal/platform/postgres"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed person store.
func NewPostgresRepository(db postgres.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var personColumns = strings.Join(schema.CorePerson.Columns(), ", ")

func scanPerson(row pgx.Row) (*Person, error) {
	person := &Person{}
	err := row.Scan(
		&person.ID, &person.GivenName, &person.FamilyName, &person.MiddleName, &person.Bio,
		&person.Photo, &person.ExternalLinks, &person.Profession, &person.Nationality,
		&person.Birthplace, &person.Titles, &person.Epithets, &person.NotableWorks,
		&person.CreatedAt, &person.UpdatedAt,
	)
	return person, err
}

/*
List pages through the directory ordered by family then given name.

Returns:
  - []*Person: The page
  - int: Total matching rows
  - error: Database failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Person, int, error) {
	where := sq.And{}
	if filter.Query != "" {
		term := "%" + filter.Query + "%"
		where = append(where, sq.Or{
			sq.ILike{schema.CorePerson.GivenName: term},
			sq.ILike{schema.CorePerson.MiddleName: term},
			sq.ILike{schema.CorePerson.FamilyName: term},
		})
	}
	if filter.Nationality != "" {
		where = append(where, sq.Expr("LOWER("+schema.CorePerson.Nationality+") = LOWER(?)", filter.Nationality))
	}

	querier := postgres.QuerierFromCtx(context, repository.db)

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(schema.CorePerson.Table).Where(where).ToSql()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_count_people")
	}

	var total int
	if err := querier.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_people")
	}

	query, args, err := psql.Select(schema.CorePerson.Columns()...).
		From(schema.CorePerson.Table).
		Where(where).
		OrderBy(
			"LOWER("+schema.CorePerson.FamilyName+")",
			"LOWER("+schema.CorePerson.GivenName+")",
			schema.CorePerson.ID,
		).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_list_people")
	}

	rows, err := querier.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_people")
	}
	defer rows.Close()

	people := []*Person{}
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_person")
		}
		people = append(people, person)
	}

	return people, total, dberr.Wrap(rows.Err(), "list_people")
}

// FindByID returns one person.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Person, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, personColumns, schema.CorePerson.Table, schema.CorePerson.ID)

	person, err := scanPerson(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_person", "Person")
	}
	return person, nil
}

// Create inserts a person whose ID is already set.
func (repository *PostgresRepository) Create(context context.Context, person *Person) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s, %s
	`,
		schema.CorePerson.Table,
		schema.CorePerson.ID, schema.CorePerson.GivenName, schema.CorePerson.FamilyName, schema.CorePerson.MiddleName,
		schema.CorePerson.Bio, schema.CorePerson.Photo, schema.CorePerson.ExternalLinks, schema.CorePerson.Profession,
		schema.CorePerson.Nationality, schema.CorePerson.Birthplace, schema.CorePerson.Titles, schema.CorePerson.Epithets,
		schema.CorePerson.NotableWorks,
		schema.CorePerson.CreatedAt, schema.CorePerson.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, person.arguments()...).
		Scan(&person.CreatedAt, &person.UpdatedAt)
	return dberr.Wrap(err, "create_person")
}

// Update rewrites every mutable column.
func (repository *PostgresRepository) Update(context context.Context, person *Person) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
		    %s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CorePerson.Table,
		schema.CorePerson.GivenName, schema.CorePerson.FamilyName, schema.CorePerson.MiddleName,
		schema.CorePerson.Bio, schema.CorePerson.Photo, schema.CorePerson.ExternalLinks, schema.CorePerson.Profession,
		schema.CorePerson.Nationality, schema.CorePerson.Birthplace, schema.CorePerson.Titles, schema.CorePerson.Epithets,
		schema.CorePerson.NotableWorks, schema.CorePerson.UpdatedAt,
		schema.CorePerson.ID,
		schema.CorePerson.CreatedAt, schema.CorePerson.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, person.arguments()...).
		Scan(&person.CreatedAt, &person.UpdatedAt)
	return dberr.WrapResource(err, "update_person", "Person")
}

// Delete removes a person.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CorePerson.Table, schema.CorePerson.ID)

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_person")
	}
	if tag.RowsAffected() == 0 {
		return dberr.WrapResource(pgx.ErrNoRows, "delete_person", "Person")
	}
	return nil
}

// arguments lists the insert/update values in column order.
func (person *Person) arguments() []any {
	return []any{
		person.ID, person.GivenName, person.FamilyName, person.MiddleName,
		person.Bio, person.Photo, person.ExternalLinks, person.Profession,
		person.Nationality, person.Birthplace, person.Titles, person.Epithets,
		person.NotableWorks,
	}
}

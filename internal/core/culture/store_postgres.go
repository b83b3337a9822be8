// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package culture

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

// NewPostgresRepository constructs a PostgreSQL backed culture store.
func NewPostgresRepository(db postgres.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Column Sets

var (
	cultureColumns  = strings.Join(schema.CoreCulture.Columns(), ", ")
	categoryColumns = strings.Join(schema.CoreCategory.Columns(), ", ")
	periodColumns   = strings.Join(schema.CorePeriod.Columns(), ", ")
)

func scanCulture(row pgx.Row) (*Culture, error) {
	culture := &Culture{}
	err := row.Scan(
		&culture.ID, &culture.OwnerID, &culture.Name, &culture.Code, &culture.Colour,
		&culture.Picture, &culture.SharedGroupKey, &culture.Visibility,
		&culture.CreatedAt, &culture.UpdatedAt,
	)
	return culture, err
}

func scanCategory(row pgx.Row) (*Category, error) {
	category := &Category{}
	err := row.Scan(&category.ID, &category.CultureID, &category.Key, &category.DisplayName, &category.CreatedAt, &category.UpdatedAt)
	return category, err
}

func scanPeriod(row pgx.Row) (*Period, error) {
	period := &Period{}
	err := row.Scan(
		&period.ID, &period.CultureID, &period.CategoryID, &period.Section,
		&period.StartYear, &period.EndYear, &period.Description, &period.ShortIntro,
		&period.CreatedAt, &period.UpdatedAt,
	)
	return period, err
}

// # Culture Writes

/*
Create inserts a culture row.

Parameters:
  - context: context.Context
  - culture: *Culture (ID and SharedGroupKey already set)

Returns:
  - error: Conflict on a duplicate (owner, code)
*/
func (repository *PostgresRepository) Create(context context.Context, culture *Culture) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		schema.CoreCulture.Table,
		schema.CoreCulture.ID, schema.CoreCulture.OwnerID, schema.CoreCulture.Name, schema.CoreCulture.Code,
		schema.CoreCulture.Colour, schema.CoreCulture.Picture, schema.CoreCulture.SharedGroupKey, schema.CoreCulture.Visibility,
		schema.CoreCulture.CreatedAt, schema.CoreCulture.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		culture.ID, culture.OwnerID, culture.Name, culture.Code,
		culture.Colour, culture.Picture, culture.SharedGroupKey, culture.Visibility,
	).Scan(&culture.CreatedAt, &culture.UpdatedAt)

	return dberr.Wrap(err, "create_culture")
}

/*
CreateCategories inserts all categories through one pgx batch.
*/
func (repository *PostgresRepository) CreateCategories(context context.Context, categories []*Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.CoreCategory.Table,
		schema.CoreCategory.ID, schema.CoreCategory.CultureID, schema.CoreCategory.Key, schema.CoreCategory.DisplayName,
	)

	batch := &pgx.Batch{}
	for _, category := range categories {
		batch.Queue(query, category.ID, category.CultureID, category.Key, category.DisplayName)
	}

	results := postgres.QuerierFromCtx(context, repository.db).SendBatch(context, batch)
	defer results.Close()

	for range categories {
		if _, err := results.Exec(); err != nil {
			return dberr.Wrap(err, "create_default_categories")
		}
	}

	return nil
}

// Update persists the mutable culture fields.
func (repository *PostgresRepository) Update(context context.Context, culture *Culture) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreCulture.Table,
		schema.CoreCulture.Name, schema.CoreCulture.Colour, schema.CoreCulture.Picture, schema.CoreCulture.Visibility,
		schema.CoreCulture.UpdatedAt,
		schema.CoreCulture.ID,
		schema.CoreCulture.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		culture.ID, culture.Name, culture.Colour, culture.Picture, culture.Visibility,
	).Scan(&culture.UpdatedAt)

	return dberr.WrapResource(err, "update_culture", "Culture")
}

// Delete removes a culture row.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreCulture.Table, schema.CoreCulture.ID)

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_culture")
	}
	if tag.RowsAffected() == 0 {
		return dberr.WrapResource(pgx.ErrNoRows, "delete_culture", "Culture")
	}
	return nil
}

// # Culture Reads

// FindByID returns a culture by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Culture, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, cultureColumns, schema.CoreCulture.Table, schema.CoreCulture.ID)

	culture, err := scanCulture(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_culture", "Culture")
	}
	return culture, nil
}

// FindByCode returns the owner's culture for a code, case-insensitively.
func (repository *PostgresRepository) FindByCode(context context.Context, ownerID, code string) (*Culture, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND LOWER(%s) = LOWER($2)`,
		cultureColumns, schema.CoreCulture.Table, schema.CoreCulture.OwnerID, schema.CoreCulture.Code,
	)

	culture, err := scanCulture(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, ownerID, code))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_culture_by_code", "Culture")
	}
	return culture, nil
}

/*
ListByOwner returns the owner's cultures ordered by name.

Parameters:
  - context: context.Context
  - ownerID: string
  - code: string (optional exact code filter)

Returns:
  - []*Culture: Possibly empty slice
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID, code string) ([]*Culture, error) {
	builder := psql.Select(schema.CoreCulture.Columns()...).
		From(schema.CoreCulture.Table).
		Where(sq.Eq{schema.CoreCulture.OwnerID: ownerID}).
		OrderBy(schema.CoreCulture.Name + " ASC")

	if code != "" {
		builder = builder.Where(sq.Expr("LOWER("+schema.CoreCulture.Code+") = LOWER(?)", code))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, dberr.Wrap(err, "build_list_cultures")
	}

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_cultures")
	}
	defer rows.Close()

	cultures := []*Culture{}
	for rows.Next() {
		culture, err := scanCulture(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_culture")
		}
		cultures = append(cultures, culture)
	}

	return cultures, dberr.Wrap(rows.Err(), "list_cultures")
}

// OwnedIDs returns the subset of ids owned by ownerID.
func (repository *PostgresRepository) OwnedIDs(context context.Context, ownerID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = ANY($2::uuid[])`,
		schema.CoreCulture.ID, schema.CoreCulture.Table, schema.CoreCulture.OwnerID, schema.CoreCulture.ID,
	)

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, ownerID, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "owned_culture_ids")
	}

	owned, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_owned_culture_ids")
	}
	return owned, nil
}

// # Categories

// CreateCategory inserts a single category.
func (repository *PostgresRepository) CreateCategory(context context.Context, category *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.CoreCategory.Table,
		schema.CoreCategory.ID, schema.CoreCategory.CultureID, schema.CoreCategory.Key, schema.CoreCategory.DisplayName,
		schema.CoreCategory.CreatedAt, schema.CoreCategory.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		category.ID, category.CultureID, category.Key, category.DisplayName,
	).Scan(&category.CreatedAt, &category.UpdatedAt)

	return dberr.Wrap(err, "create_category")
}

// FindCategory returns a category by primary key.
func (repository *PostgresRepository) FindCategory(context context.Context, id string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, categoryColumns, schema.CoreCategory.Table, schema.CoreCategory.ID)

	category, err := scanCategory(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_category", "Category")
	}
	return category, nil
}

// ListCategories returns the owner's categories, optionally for one culture code.
func (repository *PostgresRepository) ListCategories(context context.Context, ownerID, code string) ([]*Category, error) {
	builder := psql.Select(prefixed("cat", schema.CoreCategory.Columns())...).
		From(schema.CoreCategory.Table+" cat").
		Join(schema.CoreCulture.Table+" c ON c."+schema.CoreCulture.ID+" = cat."+schema.CoreCategory.CultureID).
		Where(sq.Eq{"c." + schema.CoreCulture.OwnerID: ownerID}).
		OrderBy("c."+schema.CoreCulture.Name, "cat."+schema.CoreCategory.CreatedAt)

	if code != "" {
		builder = builder.Where(sq.Expr("LOWER(c."+schema.CoreCulture.Code+") = LOWER(?)", code))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, dberr.Wrap(err, "build_list_categories")
	}

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}

	return categories, dberr.Wrap(rows.Err(), "list_categories")
}

// # Periods

// CreatePeriod inserts a period.
func (repository *PostgresRepository) CreatePeriod(context context.Context, period *Period) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		schema.CorePeriod.Table,
		schema.CorePeriod.ID, schema.CorePeriod.CultureID, schema.CorePeriod.CategoryID, schema.CorePeriod.Section,
		schema.CorePeriod.StartYear, schema.CorePeriod.EndYear, schema.CorePeriod.Description, schema.CorePeriod.ShortIntro,
		schema.CorePeriod.CreatedAt, schema.CorePeriod.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		period.ID, period.CultureID, period.CategoryID, period.Section,
		period.StartYear, period.EndYear, period.Description, period.ShortIntro,
	).Scan(&period.CreatedAt, &period.UpdatedAt)

	return dberr.Wrap(err, "create_period")
}

// UpdatePeriod replaces the editable period fields.
func (repository *PostgresRepository) UpdatePeriod(context context.Context, period *Period) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CorePeriod.Table,
		schema.CorePeriod.CategoryID, schema.CorePeriod.Section, schema.CorePeriod.StartYear,
		schema.CorePeriod.EndYear, schema.CorePeriod.Description, schema.CorePeriod.ShortIntro,
		schema.CorePeriod.UpdatedAt,
		schema.CorePeriod.ID,
		schema.CorePeriod.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		period.ID, period.CategoryID, period.Section, period.StartYear,
		period.EndYear, period.Description, period.ShortIntro,
	).Scan(&period.UpdatedAt)

	return dberr.WrapResource(err, "update_period", "Period")
}

// DeletePeriod removes a period row.
func (repository *PostgresRepository) DeletePeriod(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CorePeriod.Table, schema.CorePeriod.ID)

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_period")
	}
	if tag.RowsAffected() == 0 {
		return dberr.WrapResource(pgx.ErrNoRows, "delete_period", "Period")
	}
	return nil
}

// FindPeriod returns a period by primary key.
func (repository *PostgresRepository) FindPeriod(context context.Context, id string) (*Period, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, periodColumns, schema.CorePeriod.Table, schema.CorePeriod.ID)

	period, err := scanPeriod(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_period", "Period")
	}
	return period, nil
}

/*
ListPeriods returns the owner's periods.

Parameters:
  - context: context.Context
  - ownerID: string
  - code: string (optional culture code)
  - key: string (optional category key)

Returns:
  - []*Period: Ordered by start year
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListPeriods(context context.Context, ownerID, code, key string) ([]*Period, error) {
	builder := psql.Select(prefixed("p", schema.CorePeriod.Columns())...).
		From(schema.CorePeriod.Table+" p").
		Join(schema.CoreCulture.Table+" c ON c."+schema.CoreCulture.ID+" = p."+schema.CorePeriod.CultureID).
		Where(sq.Eq{"c." + schema.CoreCulture.OwnerID: ownerID}).
		OrderBy("p."+schema.CorePeriod.StartYear, "p."+schema.CorePeriod.EndYear)

	if code != "" {
		builder = builder.Where(sq.Expr("LOWER(c."+schema.CoreCulture.Code+") = LOWER(?)", code))
	}

	if key != "" {
		builder = builder.
			Join(schema.CoreCategory.Table + " cat ON cat." + schema.CoreCategory.ID + " = p." + schema.CorePeriod.CategoryID).
			Where(sq.Eq{"cat." + schema.CoreCategory.Key: key})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, dberr.Wrap(err, "build_list_periods")
	}

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_periods")
	}
	defer rows.Close()

	periods := []*Period{}
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_period")
		}
		periods = append(periods, period)
	}

	return periods, dberr.Wrap(rows.Err(), "list_periods")
}

// prefixed qualifies every column with a table alias.
func prefixed(alias string, columns []string) []string {
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return qualified
}

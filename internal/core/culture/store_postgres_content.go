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

var (
	pageContentColumns   = strings.Join(schema.CorePageContent.Columns(), ", ")
	mapBorderColumns     = strings.Join(schema.CoreMapBorder.Columns(), ", ")
	languageTableColumns = strings.Join(schema.CoreLanguageTable.Columns(), ", ")
)

func scanPageContent(row pgx.Row) (*PageContent, error) {
	page := &PageContent{}
	err := row.Scan(
		&page.ID, &page.CultureID, &page.CategoryID,
		&page.IntroText, &page.OverviewText, &page.ExtraText,
		&page.CreatedAt, &page.UpdatedAt,
	)
	return page, err
}

func scanMapBorder(row pgx.Row) (*MapBorder, error) {
	border := &MapBorder{}
	err := row.Scan(&border.ID, &border.CultureID, &border.PeriodID, &border.Borders, &border.CreatedAt, &border.UpdatedAt)
	return border, err
}

func scanLanguageTable(row pgx.Row) (*LanguageTable, error) {
	table := &LanguageTable{}
	err := row.Scan(&table.ID, &table.CultureID, &table.Title, &table.TableData, &table.CreatedAt, &table.UpdatedAt)
	return table, err
}

// deleteByID removes one row and reports a missing row as NotFound for resource.
func (repository *PostgresRepository) deleteByID(context context.Context, table, id, operation, resource string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, operation)
	}
	if tag.RowsAffected() == 0 {
		return dberr.WrapResource(pgx.ErrNoRows, operation, resource)
	}
	return nil
}

// # Page Contents

/*
CreatePageContent inserts the texts of a category page.

Returns:
  - error: Conflict when the (culture, category) pair already has a page
*/
func (repository *PostgresRepository) CreatePageContent(context context.Context, page *PageContent) error {
	table := schema.CorePageContent
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		table.Table,
		table.ID, table.CultureID, table.CategoryID, table.IntroText, table.OverviewText, table.ExtraText,
		table.CreatedAt, table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		page.ID, page.CultureID, page.CategoryID, page.IntroText, page.OverviewText, page.ExtraText,
	).Scan(&page.CreatedAt, &page.UpdatedAt)

	return dberr.Wrap(err, "create_page_content")
}

// UpdatePageContent replaces the three texts.
func (repository *PostgresRepository) UpdatePageContent(context context.Context, page *PageContent) error {
	table := schema.CorePageContent
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		table.Table,
		table.IntroText, table.OverviewText, table.ExtraText, table.UpdatedAt,
		table.ID,
		table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		page.ID, page.IntroText, page.OverviewText, page.ExtraText,
	).Scan(&page.UpdatedAt)

	return dberr.WrapResource(err, "update_page_content", "PageContent")
}

// DeletePageContent removes a page row.
func (repository *PostgresRepository) DeletePageContent(context context.Context, id string) error {
	return repository.deleteByID(context, schema.CorePageContent.Table, id, "delete_page_content", "PageContent")
}

// FindPageContent returns a page by primary key.
func (repository *PostgresRepository) FindPageContent(context context.Context, id string) (*PageContent, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, pageContentColumns, schema.CorePageContent.Table, schema.CorePageContent.ID)

	page, err := scanPageContent(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_page_content", "PageContent")
	}
	return page, nil
}

/*
ListPageContents returns the owner's category pages.

Parameters:
  - context: context.Context
  - ownerID: string
  - code: string (optional culture code)
  - key: string (optional category key)

Returns:
  - []*PageContent: Ordered by culture name, then category creation
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListPageContents(context context.Context, ownerID, code, key string) ([]*PageContent, error) {
	builder := psql.Select(prefixed("pc", schema.CorePageContent.Columns())...).
		From(schema.CorePageContent.Table+" pc").
		Join(schema.CoreCulture.Table+" c ON c."+schema.CoreCulture.ID+" = pc."+schema.CorePageContent.CultureID).
		Join(schema.CoreCategory.Table+" cat ON cat."+schema.CoreCategory.ID+" = pc."+schema.CorePageContent.CategoryID).
		Where(sq.Eq{"c." + schema.CoreCulture.OwnerID: ownerID}).
		OrderBy("c."+schema.CoreCulture.Name, "cat."+schema.CoreCategory.CreatedAt)

	if code != "" {
		builder = builder.Where(sq.Expr("LOWER(c."+schema.CoreCulture.Code+") = LOWER(?)", code))
	}
	if key != "" {
		builder = builder.Where(sq.Eq{"cat." + schema.CoreCategory.Key: key})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, dberr.Wrap(err, "build_list_page_contents")
	}

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_page_contents")
	}
	defer rows.Close()

	pages := []*PageContent{}
	for rows.Next() {
		page, err := scanPageContent(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_page_content")
		}
		pages = append(pages, page)
	}

	return pages, dberr.Wrap(rows.Err(), "list_page_contents")
}

// # Map Borders

// CreateMapBorder inserts a border geometry.
func (repository *PostgresRepository) CreateMapBorder(context context.Context, border *MapBorder) error {
	table := schema.CoreMapBorder
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		table.Table,
		table.ID, table.CultureID, table.PeriodID, table.Borders,
		table.CreatedAt, table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		border.ID, border.CultureID, border.PeriodID, border.Borders,
	).Scan(&border.CreatedAt, &border.UpdatedAt)

	return dberr.Wrap(err, "create_map_border")
}

// UpdateMapBorder replaces the period and the geometry.
func (repository *PostgresRepository) UpdateMapBorder(context context.Context, border *MapBorder) error {
	table := schema.CoreMapBorder
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		table.Table,
		table.PeriodID, table.Borders, table.UpdatedAt,
		table.ID,
		table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		border.ID, border.PeriodID, border.Borders,
	).Scan(&border.UpdatedAt)

	return dberr.WrapResource(err, "update_map_border", "MapBorder")
}

// DeleteMapBorder removes a border row.
func (repository *PostgresRepository) DeleteMapBorder(context context.Context, id string) error {
	return repository.deleteByID(context, schema.CoreMapBorder.Table, id, "delete_map_border", "MapBorder")
}

// FindMapBorder returns a border by primary key.
func (repository *PostgresRepository) FindMapBorder(context context.Context, id string) (*MapBorder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, mapBorderColumns, schema.CoreMapBorder.Table, schema.CoreMapBorder.ID)

	border, err := scanMapBorder(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_map_border", "MapBorder")
	}
	return border, nil
}

// ListMapBorders returns the owner's borders in period order, optionally for one culture code.
func (repository *PostgresRepository) ListMapBorders(context context.Context, ownerID, code string) ([]*MapBorder, error) {
	builder := psql.Select(prefixed("mb", schema.CoreMapBorder.Columns())...).
		From(schema.CoreMapBorder.Table+" mb").
		Join(schema.CoreCulture.Table+" c ON c."+schema.CoreCulture.ID+" = mb."+schema.CoreMapBorder.CultureID).
		Join(schema.CorePeriod.Table+" p ON p."+schema.CorePeriod.ID+" = mb."+schema.CoreMapBorder.PeriodID).
		Where(sq.Eq{"c." + schema.CoreCulture.OwnerID: ownerID}).
		OrderBy("p."+schema.CorePeriod.StartYear, "p."+schema.CorePeriod.EndYear)

	if code != "" {
		builder = builder.Where(sq.Expr("LOWER(c."+schema.CoreCulture.Code+") = LOWER(?)", code))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, dberr.Wrap(err, "build_list_map_borders")
	}

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_map_borders")
	}
	defer rows.Close()

	borders := []*MapBorder{}
	for rows.Next() {
		border, err := scanMapBorder(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_map_border")
		}
		borders = append(borders, border)
	}

	return borders, dberr.Wrap(rows.Err(), "list_map_borders")
}

// # Language Tables

// CreateLanguageTable inserts a language table.
func (repository *PostgresRepository) CreateLanguageTable(context context.Context, languageTable *LanguageTable) error {
	table := schema.CoreLanguageTable
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		table.Table,
		table.ID, table.CultureID, table.Title, table.TableData,
		table.CreatedAt, table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		languageTable.ID, languageTable.CultureID, languageTable.Title, languageTable.TableData,
	).Scan(&languageTable.CreatedAt, &languageTable.UpdatedAt)

	return dberr.Wrap(err, "create_language_table")
}

// UpdateLanguageTable replaces the title and the table data.
func (repository *PostgresRepository) UpdateLanguageTable(context context.Context, languageTable *LanguageTable) error {
	table := schema.CoreLanguageTable
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		table.Table,
		table.Title, table.TableData, table.UpdatedAt,
		table.ID,
		table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		languageTable.ID, languageTable.Title, languageTable.TableData,
	).Scan(&languageTable.UpdatedAt)

	return dberr.WrapResource(err, "update_language_table", "LanguageTable")
}

// DeleteLanguageTable removes a language table row.
func (repository *PostgresRepository) DeleteLanguageTable(context context.Context, id string) error {
	return repository.deleteByID(context, schema.CoreLanguageTable.Table, id, "delete_language_table", "LanguageTable")
}

// FindLanguageTable returns a language table by primary key.
func (repository *PostgresRepository) FindLanguageTable(context context.Context, id string) (*LanguageTable, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, languageTableColumns, schema.CoreLanguageTable.Table, schema.CoreLanguageTable.ID)

	languageTable, err := scanLanguageTable(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_language_table", "LanguageTable")
	}
	return languageTable, nil
}

// ListLanguageTables returns the owner's language tables ordered by title.
func (repository *PostgresRepository) ListLanguageTables(context context.Context, ownerID, code string) ([]*LanguageTable, error) {
	builder := psql.Select(prefixed("lt", schema.CoreLanguageTable.Columns())...).
		From(schema.CoreLanguageTable.Table + " lt").
		Join(schema.CoreCulture.Table + " c ON c." + schema.CoreCulture.ID + " = lt." + schema.CoreLanguageTable.CultureID).
		Where(sq.Eq{"c." + schema.CoreCulture.OwnerID: ownerID}).
		OrderBy("lt." + schema.CoreLanguageTable.Title)

	if code != "" {
		builder = builder.Where(sq.Expr("LOWER(c."+schema.CoreCulture.Code+") = LOWER(?)", code))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, dberr.Wrap(err, "build_list_language_tables")
	}

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_language_tables")
	}
	defer rows.Close()

	tables := []*LanguageTable{}
	for rows.Next() {
		languageTable, err := scanLanguageTable(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_language_table")
		}
		tables = append(tables, languageTable)
	}

	return tables, dberr.Wrap(rows.Err(), "list_language_tables")
}

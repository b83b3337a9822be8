// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

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

var listCultures = fmt.Sprintf(
	"COALESCE((SELECT array_agg(lc.%s::text ORDER BY lc.%s) FROM %s lc WHERE lc.%s = l.%s), '{}') AS cultures",
	schema.LibraryListCulture.CultureID, schema.LibraryListCulture.CultureID,
	schema.LibraryListCulture.Table,
	schema.LibraryListCulture.ListID, schema.LibraryList.ID,
)

func scanList(row pgx.Row, extra ...any) (*List, error) {
	list := &List{Items: []ListItem{}}
	dest := []any{
		&list.ID, &list.OwnerID, &list.Name, &list.Type, &list.Description, &list.Visibility,
		&list.CreatedAt, &list.UpdatedAt, &list.CultureIDs,
	}
	err := row.Scan(append(dest, extra...)...)
	return list, err
}

// # List Writes

// CreateList inserts a list row.
func (repository *PostgresRepository) CreateList(context context.Context, list *List) error {
	table := schema.LibraryList
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		table.Table,
		table.ID, table.OwnerID, table.Name, table.ListType, table.Description, table.Visibility,
		table.CreatedAt, table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		list.ID, list.OwnerID, list.Name, list.Type, list.Description, list.Visibility,
	).Scan(&list.CreatedAt, &list.UpdatedAt)

	return dberr.Wrap(err, "create_list")
}

// UpdateList rewrites name, description and visibility. The type is fixed.
func (repository *PostgresRepository) UpdateList(context context.Context, list *List) error {
	table := schema.LibraryList
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		table.Table,
		table.Name, table.Description, table.Visibility, table.UpdatedAt,
		table.ID,
		table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		list.ID, list.Name, list.Description, list.Visibility,
	).Scan(&list.UpdatedAt)

	return dberr.WrapResource(err, "update_list", "List")
}

// DeleteList removes a list. Entries and culture links cascade.
func (repository *PostgresRepository) DeleteList(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.LibraryList.Table, schema.LibraryList.ID)

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_list")
	}
	if tag.RowsAffected() == 0 {
		return dberr.WrapResource(pgx.ErrNoRows, "delete_list", "List")
	}
	return nil
}

// ReplaceListCultures rewrites the list's culture links.
func (repository *PostgresRepository) ReplaceListCultures(context context.Context, listID string, cultureIDs []string) error {
	err := replaceLinks(context, postgres.QuerierFromCtx(context, repository.db),
		schema.LibraryListCulture.Table, schema.LibraryListCulture.ListID, schema.LibraryListCulture.CultureID,
		listID, cultureIDs,
	)
	return dberr.Wrap(err, "replace_list_cultures")
}

// # List Reads

// FindList returns a list with its culture ids. Entries are loaded separately.
func (repository *PostgresRepository) FindList(context context.Context, id string) (*List, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s l WHERE l.%s = $1`,
		strings.Join(prefixed("l", schema.LibraryList.Columns()), ", "),
		listCultures,
		schema.LibraryList.Table, schema.LibraryList.ID,
	)

	list, err := scanList(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_list", "List")
	}
	return list, nil
}

// ListLists returns one page of lists restricted by the resolver predicate.
func (repository *PostgresRepository) ListLists(context context.Context, where sq.Sqlizer, limit, offset int) ([]*List, int, error) {
	table := schema.LibraryList
	query, args, err := psql.Select(prefixed("l", table.Columns())...).
		Column(listCultures).
		Column("COUNT(*) OVER() AS total_count").
		From(table.Table+" l").
		Where(where).
		OrderBy("l."+table.CreatedAt+" DESC", "l."+table.ID+" DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_list_lists")
	}

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_lists")
	}
	defer rows.Close()

	total := 0
	lists := []*List{}
	for rows.Next() {
		list, err := scanList(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_list")
		}
		lists = append(lists, list)
	}

	return lists, total, dberr.Wrap(rows.Err(), "list_lists")
}

// # List Entries

// ListEntries returns the list's items ordered by position.
func (repository *PostgresRepository) ListEntries(context context.Context, listID string) ([]ListItem, error) {
	entry := schema.LibraryListItem
	item := schema.CatalogUniversalItem
	query := fmt.Sprintf(`
		SELECT e.%s, u.%s, u.%s, e.%s, e.%s
		FROM %s e
		JOIN %s u ON u.%s = e.%s
		WHERE e.%s = $1
		ORDER BY e.%s ASC
	`,
		entry.UniversalItemID, item.Title, item.ItemType, entry.Position, entry.AddedAt,
		entry.Table,
		item.Table, item.ID, entry.UniversalItemID,
		entry.ListID,
		entry.Position,
	)

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, listID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_entries")
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ListItem, error) {
		var listItem ListItem
		err := row.Scan(&listItem.UniversalItemID, &listItem.Title, &listItem.Type, &listItem.Position, &listItem.AddedAt)
		return listItem, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_list_entries")
	}
	return entries, nil
}

// lockList serialises position changes on one list until the surrounding
// transaction ends. It must run as its own statement so the next statement
// reads positions committed by the previous lock holder.
func (repository *PostgresRepository) lockList(context context.Context, db postgres.Querier, listID string) error {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 FOR UPDATE`, schema.LibraryList.Table, schema.LibraryList.ID)
	_, err := db.Exec(context, query, listID)
	return dberr.Wrap(err, "lock_list")
}

// AppendEntry inserts an item at max(position)+1. Call it inside a transaction.
func (repository *PostgresRepository) AppendEntry(context context.Context, listID, itemID string) (int, error) {
	entry := schema.LibraryListItem
	db := postgres.QuerierFromCtx(context, repository.db)

	if err := repository.lockList(context, db, listID); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		SELECT $1::uuid, $2::uuid, COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = $1::uuid
		RETURNING %s
	`,
		entry.Table, entry.ListID, entry.UniversalItemID, entry.Position,
		entry.Position, entry.Table, entry.ListID,
		entry.Position,
	)

	var position int
	if err := db.QueryRow(context, query, listID, itemID).Scan(&position); err != nil {
		return 0, dberr.Wrap(err, "append_list_entry")
	}
	return position, nil
}

// RemoveEntry deletes an item and closes the gap it leaves.
func (repository *PostgresRepository) RemoveEntry(context context.Context, listID, itemID string) error {
	entry := schema.LibraryListItem
	db := postgres.QuerierFromCtx(context, repository.db)

	if err := repository.lockList(context, db, listID); err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2 RETURNING %s`,
		entry.Table, entry.ListID, entry.UniversalItemID, entry.Position,
	)

	var position int
	if err := db.QueryRow(context, query, listID, itemID).Scan(&position); err != nil {
		return dberr.WrapResource(err, "remove_list_entry", "List item")
	}

	shift := fmt.Sprintf(`UPDATE %s SET %s = %s - 1 WHERE %s = $1 AND %s > $2`,
		entry.Table, entry.Position, entry.Position, entry.ListID, entry.Position,
	)
	_, err := db.Exec(context, shift, listID, position)
	return dberr.Wrap(err, "compact_list_entries")
}

/*
MoveEntry moves an item to position and shifts the entries between the old
and new slot by one. position is clamped to [1, count].
*/
func (repository *PostgresRepository) MoveEntry(context context.Context, listID, itemID string, position int) error {
	entry := schema.LibraryListItem
	db := postgres.QuerierFromCtx(context, repository.db)

	if err := repository.lockList(context, db, listID); err != nil {
		return err
	}

	// 1. Current slot and bounds
	current := fmt.Sprintf(`
		SELECT %s, (SELECT COUNT(*) FROM %s WHERE %s = $1)
		FROM %s WHERE %s = $1 AND %s = $2
	`,
		entry.Position, entry.Table, entry.ListID,
		entry.Table, entry.ListID, entry.UniversalItemID,
	)

	var from, count int
	if err := db.QueryRow(context, current, listID, itemID).Scan(&from, &count); err != nil {
		return dberr.WrapResource(err, "find_list_entry", "List item")
	}

	to := min(max(position, 1), count)
	if to == from {
		return nil
	}

	// 2. Shift the entries in between
	var shift string
	if to < from {
		shift = fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1 AND %s >= $2 AND %s < $3`,
			entry.Table, entry.Position, entry.Position, entry.ListID, entry.Position, entry.Position)
		if _, err := db.Exec(context, shift, listID, to, from); err != nil {
			return dberr.Wrap(err, "shift_list_entries")
		}
	} else {
		shift = fmt.Sprintf(`UPDATE %s SET %s = %s - 1 WHERE %s = $1 AND %s > $2 AND %s <= $3`,
			entry.Table, entry.Position, entry.Position, entry.ListID, entry.Position, entry.Position)
		if _, err := db.Exec(context, shift, listID, from, to); err != nil {
			return dberr.Wrap(err, "shift_list_entries")
		}
	}

	// 3. Place the moved entry
	place := fmt.Sprintf(`UPDATE %s SET %s = $3 WHERE %s = $1 AND %s = $2`,
		entry.Table, entry.Position, entry.ListID, entry.UniversalItemID)
	_, err := db.Exec(context, place, listID, itemID, to)
	return dberr.Wrap(err, "move_list_entry")
}

// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

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

// NewPostgresRepository constructs a PostgreSQL backed registry store.
func NewPostgresRepository(db postgres.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Helpers

var (
	itemColumns  = strings.Join(schema.CatalogUniversalItem.Columns(), ", ")
	filmColumns  = strings.Join(schema.CatalogFilm.Columns(), ", ")
	bookColumns  = strings.Join(schema.CatalogBook.Columns(), ", ")
	musicColumns = strings.Join(schema.CatalogMusicPiece.Columns(), ", ")
	artColumns   = strings.Join(schema.CatalogArtwork.Columns(), ", ")
	eventColumns = strings.Join(schema.CatalogHistoryEvent.Columns(), ", ")
)

// placeholders returns "$1, $2, ... $n".
func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

// excluded renders "col = EXCLUDED.col" for an ON CONFLICT update list.
func excluded(columns ...string) string {
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = column + " = EXCLUDED." + column
	}
	return strings.Join(parts, ", ")
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}

func scanItem(row pgx.Row, extra ...any) (*UniversalItem, error) {
	item := &UniversalItem{}
	dest := []any{&item.ID, &item.ExternalID, &item.Type, &item.Title, &item.CreatorString, &item.CreatedAt, &item.UpdatedAt}
	err := row.Scan(append(dest, extra...)...)
	return item, err
}

func scanFilm(row pgx.Row, extra ...any) (*Film, error) {
	film := &Film{}
	dest := []any{
		&film.ID, &film.UniversalItemID, &film.TMDbID, &film.Title, &film.AltTitle, &film.Director,
		&film.Runtime, &film.Genres, &film.Cast, &film.Crew, &film.Blurb, &film.Synopsis,
		&film.Languages, &film.Countries, &film.Poster, &film.Background, &film.Budget,
		&film.BoxOffice, &film.ReleaseDate, &film.Homepage, &film.CreatedAt, &film.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return film, err
}

func scanBook(row pgx.Row, extra ...any) (*Book, error) {
	book := &Book{}
	dest := []any{
		&book.ID, &book.UniversalItemID, &book.OLID, &book.ISBN, &book.Title, &book.AltTitle,
		&book.Author, &book.AltCreatorName, &book.Genres, &book.Synopsis, &book.Cover,
		&book.Languages, &book.PublishDate, &book.CreatedAt, &book.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return book, err
}

// # Universal Items

/*
GetOrCreateItem resolves the registry row with a single upsert.

Description: The conflict branch touches updatedat so that RETURNING yields
the existing row. xmax is zero only for a freshly inserted tuple, which
tells the caller whether this statement created it.
*/
func (repository *PostgresRepository) GetOrCreateItem(context context.Context, id, externalID string, itemType ItemType, defaults ItemDefaults) (*UniversalItem, bool, error) {
	table := schema.CatalogUniversalItem
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = NOW()
		RETURNING %s, (xmax = 0) AS created
	`,
		table.Table,
		table.ID, table.ExternalID, table.ItemType, table.Title, table.CreatorString,
		table.ExternalID, table.ItemType, table.UpdatedAt,
		itemColumns,
	)

	var created bool
	item, err := scanItem(
		postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id, externalID, itemType, defaults.Title, defaults.CreatorString),
		&created,
	)
	if err != nil {
		return nil, false, dberr.Wrap(err, "get_or_create_item")
	}
	return item, created, nil
}

// Exists reports whether (externalID, itemType) is registered.
func (repository *PostgresRepository) Exists(context context.Context, externalID string, itemType ItemType) (bool, error) {
	table := schema.CatalogUniversalItem
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		table.Table, table.ExternalID, table.ItemType,
	)

	var exists bool
	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, externalID, itemType).Scan(&exists)
	return exists, dberr.Wrap(err, "item_exists")
}

// ExistingKeys returns which of externalIDs are already registered.
func (repository *PostgresRepository) ExistingKeys(context context.Context, externalIDs []string, itemType ItemType) ([]string, error) {
	if len(externalIDs) == 0 {
		return []string{}, nil
	}

	table := schema.CatalogUniversalItem
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = ANY($2)`,
		table.ExternalID, table.Table, table.ItemType, table.ExternalID,
	)

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, itemType, externalIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "existing_item_keys")
	}

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return keys, dberr.Wrap(err, "scan_existing_item_keys")
}

// FindItem returns a universal item by primary key.
func (repository *PostgresRepository) FindItem(context context.Context, id string) (*UniversalItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		itemColumns, schema.CatalogUniversalItem.Table, schema.CatalogUniversalItem.ID,
	)

	item, err := scanItem(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_item", "Universal item")
	}
	return item, nil
}

/*
ListItems pages through the registry.

Description: Uses COUNT(*) OVER() so the total arrives with the page.

Parameters:
  - filter: Filter (type and case-insensitive title fragment)
  - limit, offset: int

Returns:
  - []*UniversalItem: Page ordered by title
  - int: Total matches
*/
func (repository *PostgresRepository) ListItems(context context.Context, filter Filter, limit, offset int) ([]*UniversalItem, int, error) {
	table := schema.CatalogUniversalItem
	builder := psql.Select(table.Columns()...).
		Column("COUNT(*) OVER() AS total_count").
		From(table.Table).
		OrderBy(table.Title+" ASC", table.ID+" ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if filter.Type != "" {
		builder = builder.Where(sq.Eq{table.ItemType: filter.Type})
	}
	if filter.Query != "" {
		builder = builder.Where(sq.ILike{table.Title: "%" + filter.Query + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_list_items")
	}

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_items")
	}
	defer rows.Close()

	total := 0
	items := []*UniversalItem{}
	for rows.Next() {
		item, err := scanItem(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_item")
		}
		items = append(items, item)
	}

	return items, total, dberr.Wrap(rows.Err(), "list_items")
}

// # Typed Record Writes

/*
UpsertFilm writes the film keyed by tmdbid.

Description: On conflict every metadata column is refreshed. The existing
row keeps its id and universalitemid, which RETURNING copies back.
*/
func (repository *PostgresRepository) UpsertFilm(context context.Context, film *Film) error {
	table := schema.CatalogFilm
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		ON CONFLICT (%s) DO UPDATE SET %s, %s = NOW()
		RETURNING %s, %s, %s, %s
	`,
		table.Table, strings.Join(table.Columns()[:20], ", "),
		placeholders(20),
		table.TMDbID,
		excluded(
			table.Title, table.AltTitle, table.Director, table.Runtime, table.Genres, table.Cast,
			table.Crew, table.Blurb, table.Synopsis, table.Languages, table.Countries, table.Poster,
			table.Background, table.Budget, table.BoxOffice, table.ReleaseDate, table.Homepage,
		),
		table.UpdatedAt,
		table.ID, table.UniversalItemID, table.CreatedAt, table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		film.ID, film.UniversalItemID, film.TMDbID, film.Title, film.AltTitle, film.Director,
		film.Runtime, nonNil(film.Genres), nonNil(film.Cast), nonNil(film.Crew), film.Blurb, film.Synopsis,
		nonNil(film.Languages), nonNil(film.Countries), film.Poster, film.Background, film.Budget,
		film.BoxOffice, film.ReleaseDate, film.Homepage,
	).Scan(&film.ID, &film.UniversalItemID, &film.CreatedAt, &film.UpdatedAt)

	return dberr.Wrap(err, "upsert_film")
}

// UpsertBook writes the book keyed by olid.
func (repository *PostgresRepository) UpsertBook(context context.Context, book *Book) error {
	table := schema.CatalogBook
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		ON CONFLICT (%s) DO UPDATE SET %s, %s = NOW()
		RETURNING %s, %s, %s, %s
	`,
		table.Table, strings.Join(table.Columns()[:13], ", "),
		placeholders(13),
		table.OLID,
		excluded(
			table.ISBN, table.Title, table.AltTitle, table.Creator, table.AltCreatorName,
			table.Genres, table.Synopsis, table.Cover, table.Languages, table.PublishDate,
		),
		table.UpdatedAt,
		table.ID, table.UniversalItemID, table.CreatedAt, table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		book.ID, book.UniversalItemID, book.OLID, book.ISBN, book.Title, book.AltTitle,
		book.Author, book.AltCreatorName, nonNil(book.Genres), book.Synopsis, book.Cover,
		nonNil(book.Languages), book.PublishDate,
	).Scan(&book.ID, &book.UniversalItemID, &book.CreatedAt, &book.UpdatedAt)

	return dberr.Wrap(err, "upsert_book")
}

// CreateMusicPiece inserts a user-entered composition.
func (repository *PostgresRepository) CreateMusicPiece(context context.Context, piece *MusicPiece) error {
	table := schema.CatalogMusicPiece
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s, %s`,
		table.Table, strings.Join(table.Columns()[:8], ", "), placeholders(8),
		table.CreatedAt, table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		piece.ID, piece.UniversalItemID, piece.Title, piece.Composer, piece.Instrument,
		piece.Recording, piece.SheetMusic, piece.Links,
	).Scan(&piece.CreatedAt, &piece.UpdatedAt)

	return dberr.Wrap(err, "create_music_piece")
}

// CreateArtwork inserts a user-entered artwork.
func (repository *PostgresRepository) CreateArtwork(context context.Context, art *Artwork) error {
	table := schema.CatalogArtwork
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s, %s`,
		table.Table, strings.Join(table.Columns()[:11], ", "), placeholders(11),
		table.CreatedAt, table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		art.ID, art.UniversalItemID, art.Title, art.Artist, art.ArtGroup, art.Location,
		art.AssociatedCulture, art.Themes, art.Photo, art.ArtType, art.Links,
	).Scan(&art.CreatedAt, &art.UpdatedAt)

	return dberr.Wrap(err, "create_artwork")
}

// CreateHistoryEvent inserts a user-entered event.
func (repository *PostgresRepository) CreateHistoryEvent(context context.Context, event *HistoryEvent) error {
	table := schema.CatalogHistoryEvent
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s, %s`,
		table.Table, strings.Join(table.Columns()[:9], ", "), placeholders(9),
		table.CreatedAt, table.UpdatedAt,
	)

	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query,
		event.ID, event.UniversalItemID, event.Title, event.Recorder, event.EventType,
		event.Location, event.Sources, event.Significance, event.Links,
	).Scan(&event.CreatedAt, &event.UpdatedAt)

	return dberr.Wrap(err, "create_history_event")
}

// # Typed Record Reads

/*
FindWork loads the typed record that backs item.

Returns:
  - Work: *Film, *Book, *MusicPiece, *Artwork or *HistoryEvent
  - error: NotFound when the typed row is missing
*/
func (repository *PostgresRepository) FindWork(context context.Context, item *UniversalItem) (Work, error) {
	db := postgres.QuerierFromCtx(context, repository.db)

	switch item.Type {
	case ItemFilm:
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, filmColumns, schema.CatalogFilm.Table, schema.CatalogFilm.UniversalItemID)
		film, err := scanFilm(db.QueryRow(context, query, item.ID))
		if err != nil {
			return nil, dberr.WrapResource(err, "get_film", "Film")
		}
		return film, nil

	case ItemBook:
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, bookColumns, schema.CatalogBook.Table, schema.CatalogBook.UniversalItemID)
		book, err := scanBook(db.QueryRow(context, query, item.ID))
		if err != nil {
			return nil, dberr.WrapResource(err, "get_book", "Book")
		}
		return book, nil

	case ItemMusic:
		piece := &MusicPiece{Key: item.ExternalID}
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, musicColumns, schema.CatalogMusicPiece.Table, schema.CatalogMusicPiece.UniversalItemID)
		err := db.QueryRow(context, query, item.ID).Scan(
			&piece.ID, &piece.UniversalItemID, &piece.Title, &piece.Composer, &piece.Instrument,
			&piece.Recording, &piece.SheetMusic, &piece.Links, &piece.CreatedAt, &piece.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.WrapResource(err, "get_music_piece", "Music piece")
		}
		return piece, nil

	case ItemArtwork:
		art := &Artwork{Key: item.ExternalID}
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, artColumns, schema.CatalogArtwork.Table, schema.CatalogArtwork.UniversalItemID)
		err := db.QueryRow(context, query, item.ID).Scan(
			&art.ID, &art.UniversalItemID, &art.Title, &art.Artist, &art.ArtGroup, &art.Location,
			&art.AssociatedCulture, &art.Themes, &art.Photo, &art.ArtType, &art.Links,
			&art.CreatedAt, &art.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.WrapResource(err, "get_artwork", "Artwork")
		}
		return art, nil

	case ItemEvent:
		event := &HistoryEvent{Key: item.ExternalID}
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, eventColumns, schema.CatalogHistoryEvent.Table, schema.CatalogHistoryEvent.UniversalItemID)
		err := db.QueryRow(context, query, item.ID).Scan(
			&event.ID, &event.UniversalItemID, &event.Title, &event.Recorder, &event.EventType,
			&event.Location, &event.Sources, &event.Significance, &event.Links,
			&event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.WrapResource(err, "get_history_event", "History event")
		}
		return event, nil
	}

	return nil, fmt.Errorf("unknown item type %q", item.Type)
}

// FindFilmByTMDbID returns the film with the given TMDb id.
func (repository *PostgresRepository) FindFilmByTMDbID(context context.Context, tmdbID string) (*Film, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, filmColumns, schema.CatalogFilm.Table, schema.CatalogFilm.TMDbID)

	film, err := scanFilm(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, tmdbID))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_film_by_tmdb_id", "Film")
	}
	return film, nil
}

// FindBookByOLID returns the book with the given OpenLibrary work id.
func (repository *PostgresRepository) FindBookByOLID(context context.Context, olid string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, bookColumns, schema.CatalogBook.Table, schema.CatalogBook.OLID)

	book, err := scanBook(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, olid))
	if err != nil {
		return nil, dberr.WrapResource(err, "get_book_by_olid", "Book")
	}
	return book, nil
}

// ListFilms pages through films ordered by title.
func (repository *PostgresRepository) ListFilms(context context.Context, search string, limit, offset int) ([]*Film, int, error) {
	table := schema.CatalogFilm
	builder := psql.Select(table.Columns()...).
		Column("COUNT(*) OVER() AS total_count").
		From(table.Table).
		OrderBy(table.Title+" ASC", table.ID+" ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if search != "" {
		builder = builder.Where(sq.Or{
			sq.ILike{table.Title: "%" + search + "%"},
			sq.ILike{table.Director: "%" + search + "%"},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_list_films")
	}

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_films")
	}
	defer rows.Close()

	total := 0
	films := []*Film{}
	for rows.Next() {
		film, err := scanFilm(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_film")
		}
		films = append(films, film)
	}

	return films, total, dberr.Wrap(rows.Err(), "list_films")
}

// ListBooks pages through books ordered by title.
func (repository *PostgresRepository) ListBooks(context context.Context, search string, limit, offset int) ([]*Book, int, error) {
	table := schema.CatalogBook
	builder := psql.Select(table.Columns()...).
		Column("COUNT(*) OVER() AS total_count").
		From(table.Table).
		OrderBy(table.Title+" ASC", table.ID+" ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if search != "" {
		builder = builder.Where(sq.Or{
			sq.ILike{table.Title: "%" + search + "%"},
			sq.ILike{table.Creator: "%" + search + "%"},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_list_books")
	}

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	total := 0
	books := []*Book{}
	for rows.Next() {
		book, err := scanBook(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}

	return books, total, dberr.Wrap(rows.Err(), "list_books")
}

// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	stdctx "context"
	"log/slog"
	"strings"

	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/validate"
	"github.com/taibuivan/voxmundi/pkg/uuid"
)

type txManager interface {
	RunInTx(ctx stdctx.Context, fn func(ctx stdctx.Context) error) error
}

// # Service Layer

// Service is the canonical item registry.
type Service struct {
	repo   Repository
	tx     txManager
	logger *slog.Logger
}

// NewService constructs the registry [Service].
func NewService(repo Repository, tx txManager, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tx:     tx,
		logger: logger,
	}
}

// # Registry Writes

/*
GetOrCreateItem returns the single universal item for (externalID, itemType),
creating it from defaults when absent.

Parameters:
  - context: context.Context
  - externalID: string (provider id or local key)
  - itemType: ItemType
  - defaults: ItemDefaults (only used on insert)

Returns:
  - *UniversalItem: The canonical row
  - bool: true only for the call that inserted it
  - error: Validation or database failures
*/
func (service *Service) GetOrCreateItem(context stdctx.Context, externalID string, itemType ItemType, defaults ItemDefaults) (*UniversalItem, bool, error) {
	externalID = strings.TrimSpace(externalID)

	validator := &validate.Validator{}
	validator.Required("external_id", externalID).MaxLen("external_id", externalID, 100)
	validator.Custom("type", !itemType.Valid(), "Unknown item type")
	validator.Required("title", defaults.Title)
	if err := validator.Err(); err != nil {
		return nil, false, err
	}

	return service.repo.GetOrCreateItem(context, uuid.New(), externalID, itemType, defaults)
}

/*
UpsertFilm registers the film and writes its typed record atomically.

Description: The universal item is resolved by TMDb id. The film row is
inserted or refreshed in the same transaction, so neither half can be
observed without the other.

Returns:
  - *Upserted: The item and whether it was created by this call
  - error: Any failure; nothing is persisted in that case
*/
func (service *Service) UpsertFilm(context stdctx.Context, film *Film) (*Upserted, error) {
	if film.ID == "" {
		film.ID = uuid.New()
	}

	var result *Upserted
	err := service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		item, created, err := service.GetOrCreateItem(ctx, film.TMDbID, ItemFilm, ItemDefaults{Title: film.Title, CreatorString: film.Director})
		if err != nil {
			return err
		}

		film.UniversalItemID = item.ID
		if err := service.repo.UpsertFilm(ctx, film); err != nil {
			return err
		}

		result = &Upserted{Item: item, Created: created}
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("film_upserted",
		slog.String("tmdb_id", film.TMDbID),
		slog.String("item_id", result.Item.ID),
		slog.Bool("created", result.Created),
	)
	return result, nil
}

// UpsertBook registers the book and writes its typed record atomically.
func (service *Service) UpsertBook(context stdctx.Context, book *Book) (*Upserted, error) {
	if book.ID == "" {
		book.ID = uuid.New()
	}

	var result *Upserted
	err := service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		item, created, err := service.GetOrCreateItem(ctx, book.OLID, ItemBook, ItemDefaults{Title: book.Title, CreatorString: book.Author})
		if err != nil {
			return err
		}

		book.UniversalItemID = item.ID
		if err := service.repo.UpsertBook(ctx, book); err != nil {
			return err
		}

		result = &Upserted{Item: item, Created: created}
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_upserted",
		slog.String("ol_id", book.OLID),
		slog.String("item_id", result.Item.ID),
		slog.Bool("created", result.Created),
	)
	return result, nil
}

/*
UpsertWork dispatches a typed record to the matching registry write.

Description: Films and books go through their provider-keyed upserts.
User-entered music, artworks and events receive a fresh local key, so each
manual entry is a distinct work.
*/
func (service *Service) UpsertWork(context stdctx.Context, work Work) (*Upserted, error) {
	switch typed := work.(type) {
	case *Film:
		return service.UpsertFilm(context, typed)
	case *Book:
		return service.UpsertBook(context, typed)
	case *MusicPiece:
		typed.ID, typed.Key = uuid.New(), LocalKeyPrefix+uuid.New()
		return service.createLocal(context, work, func(ctx stdctx.Context, itemID string) error {
			typed.UniversalItemID = itemID
			return service.repo.CreateMusicPiece(ctx, typed)
		})
	case *Artwork:
		typed.ID, typed.Key = uuid.New(), LocalKeyPrefix+uuid.New()
		return service.createLocal(context, work, func(ctx stdctx.Context, itemID string) error {
			typed.UniversalItemID = itemID
			return service.repo.CreateArtwork(ctx, typed)
		})
	case *HistoryEvent:
		typed.ID, typed.Key = uuid.New(), LocalKeyPrefix+uuid.New()
		return service.createLocal(context, work, func(ctx stdctx.Context, itemID string) error {
			typed.UniversalItemID = itemID
			return service.repo.CreateHistoryEvent(ctx, typed)
		})
	}

	return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "type", Message: "Unsupported work type"})
}

// createLocal registers a user-entered work and its typed row in one transaction.
func (service *Service) createLocal(context stdctx.Context, work Work, insert func(ctx stdctx.Context, itemID string) error) (*Upserted, error) {
	var result *Upserted
	err := service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		item, created, err := service.GetOrCreateItem(ctx, work.ExternalKey(), work.ItemType(), ItemDefaults{
			Title:         work.WorkTitle(),
			CreatorString: work.Creator(),
		})
		if err != nil {
			return err
		}
		if err := insert(ctx, item.ID); err != nil {
			return err
		}
		result = &Upserted{Item: item, Created: created}
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("work_created", slog.String("item_id", result.Item.ID), slog.String("type", string(work.ItemType())))
	return result, nil
}

/*
CreateWork validates a manual entry and registers it.

Returns:
  - *ItemDetail: The new item with its typed record
  - error: ValidationError for malformed input
*/
func (service *Service) CreateWork(context stdctx.Context, input WorkInput) (*ItemDetail, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "title", Message: "This field is required"})
	}

	work := input.Build()
	result, err := service.UpsertWork(context, work)
	if err != nil {
		return nil, err
	}

	return &ItemDetail{UniversalItem: result.Item, Record: work}, nil
}

// # Registry Reads

// Exists reports whether the registry already holds (externalID, itemType).
func (service *Service) Exists(context stdctx.Context, externalID string, itemType ItemType) (bool, error) {
	return service.repo.Exists(context, externalID, itemType)
}

// ExistingKeys filters externalIDs down to registered ones.
func (service *Service) ExistingKeys(context stdctx.Context, externalIDs []string, itemType ItemType) ([]string, error) {
	return service.repo.ExistingKeys(context, externalIDs, itemType)
}

// FindItem returns a universal item without its typed record.
func (service *Service) FindItem(context stdctx.Context, id string) (*UniversalItem, error) {
	return service.repo.FindItem(context, id)
}

// ListItems pages through the registry.
func (service *Service) ListItems(context stdctx.Context, filter Filter, limit, offset int) ([]*UniversalItem, int, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, 0, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "type", Message: "Unknown item type"})
	}
	return service.repo.ListItems(context, filter, limit, offset)
}

/*
GetItem returns a universal item together with its typed record.
*/
func (service *Service) GetItem(context stdctx.Context, id string) (*ItemDetail, error) {
	item, err := service.repo.FindItem(context, id)
	if err != nil {
		return nil, err
	}

	work, err := service.repo.FindWork(context, item)
	if err != nil {
		return nil, err
	}

	return &ItemDetail{UniversalItem: item, Record: work}, nil
}

// ListFilms pages through films.
func (service *Service) ListFilms(context stdctx.Context, search string, limit, offset int) ([]*Film, int, error) {
	return service.repo.ListFilms(context, search, limit, offset)
}

// GetFilmByTMDbID returns a film by its TMDb id.
func (service *Service) GetFilmByTMDbID(context stdctx.Context, tmdbID string) (*Film, error) {
	return service.repo.FindFilmByTMDbID(context, tmdbID)
}

// ListBooks pages through books.
func (service *Service) ListBooks(context stdctx.Context, search string, limit, offset int) ([]*Book, int, error) {
	return service.repo.ListBooks(context, search, limit, offset)
}

// GetBookByOLID returns a book by its OpenLibrary work id.
func (service *Service) GetBookByOLID(context stdctx.Context, olid string) (*Book, error) {
	return service.repo.FindBookByOLID(context, olid)
}

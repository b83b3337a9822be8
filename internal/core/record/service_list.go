// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	stdctx "context"
	"log/slog"
	"strings"

	"github.com/taibuivan/voxmundi/internal/core/culture"
	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/validate"
	"github.com/taibuivan/voxmundi/pkg/uuid"
)

// ListService manages typed, ordered lists of registry items.
type ListService struct {
	repo     ListRepository
	resolver *Resolver
	items    ItemLookup
	tx       txManager
	logger   *slog.Logger
}

// NewListService constructs the [ListService].
func NewListService(repo ListRepository, resolver *Resolver, items ItemLookup, tx txManager, logger *slog.Logger) *ListService {
	return &ListService{repo: repo, resolver: resolver, items: items, tx: tx, logger: logger}
}

// validate checks the list fields and returns the owned culture ids.
func (service *ListService) validate(context stdctx.Context, ownerID string, input *ListInput) ([]string, error) {
	input.Name = strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, maxNameLen)
	validator.Custom(FieldListType, !input.Type.Valid(), "Must be one of: books, films, artworks, music, events, mixed")
	if input.Visibility != "" {
		validator.Custom(FieldVisibility, !input.Visibility.Valid(), "Must be one of: public, private")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.resolver.CheckCultures(context, ownerID, input.CultureIDs)
}

/*
CreateList stores a new list owned by ownerID.

Returns:
  - *List: Stored list with no entries
  - error: ValidationError for bad fields or foreign cultures
*/
func (service *ListService) CreateList(context stdctx.Context, ownerID string, input ListInput) (*List, error) {
	cultureIDs, err := service.validate(context, ownerID, &input)
	if err != nil {
		return nil, err
	}

	list := &List{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		Visibility:  input.Visibility.OrDefault(),
		CultureIDs:  cultureIDs,
		Items:       []ListItem{},
	}

	err = service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		if err := service.repo.CreateList(ctx, list); err != nil {
			return err
		}
		return service.repo.ReplaceListCultures(ctx, list.ID, cultureIDs)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("list_created",
		slog.String("list_id", list.ID),
		slog.String("type", string(list.Type)),
		slog.String("owner_id", ownerID),
	)
	return list, nil
}

// UpdateList patches name, description, visibility and cultures. Absent fields are kept.
func (service *ListService) UpdateList(context stdctx.Context, ownerID, id string, input ListUpdateInput) (*List, error) {
	list, err := service.owned(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	patched := ListInput{
		Name:        list.Name,
		Type:        list.Type,
		Description: list.Description,
		Visibility:  list.Visibility,
		CultureIDs:  list.CultureIDs,
	}
	if input.Name != nil {
		patched.Name = *input.Name
	}
	if input.Description != nil {
		patched.Description = *input.Description
	}
	if input.Visibility != nil {
		patched.Visibility = *input.Visibility
		if patched.Visibility == "" {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: FieldVisibility, Message: "Must be one of: public, private"})
		}
	}
	relink := input.CultureIDs != nil
	if relink {
		patched.CultureIDs = *input.CultureIDs
	}

	cultureIDs, err := service.validate(context, ownerID, &patched)
	if err != nil {
		return nil, err
	}

	list.Name = patched.Name
	list.Description = patched.Description
	list.Visibility = patched.Visibility
	list.CultureIDs = cultureIDs

	err = service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		if err := service.repo.UpdateList(ctx, list); err != nil {
			return err
		}
		if !relink {
			return nil
		}
		return service.repo.ReplaceListCultures(ctx, list.ID, cultureIDs)
	})
	if err != nil {
		return nil, err
	}

	return service.withEntries(context, list)
}

// DeleteList removes an owned list and its entries.
func (service *ListService) DeleteList(context stdctx.Context, ownerID, id string) error {
	if _, err := service.owned(context, ownerID, id); err != nil {
		return err
	}
	if err := service.repo.DeleteList(context, id); err != nil {
		return err
	}

	service.logger.Info("list_deleted", slog.String("list_id", id))
	return nil
}

// GetList returns a visible list with its entries in position order.
func (service *ListService) GetList(context stdctx.Context, viewerID, id string) (*List, error) {
	list, err := service.repo.FindList(context, id)
	if err != nil {
		return nil, err
	}
	if list.OwnerID != viewerID && list.Visibility != culture.VisibilityPublic {
		return nil, apperr.NotFound("List")
	}
	return service.withEntries(context, list)
}

// ListLists applies the same visibility rules as records.
func (service *ListService) ListLists(context stdctx.Context, viewerID, code string, shared bool, limit, offset int) ([]*List, int, error) {
	plan, err := service.resolver.Resolve(context, viewerID, code, shared, ListTarget)
	if err != nil {
		return nil, 0, err
	}
	if plan.Empty {
		return []*List{}, 0, nil
	}
	return service.repo.ListLists(context, plan.Where, limit, offset)
}

// # Entries

/*
AddItem appends a registry item to an owned list.

Returns:
  - int: Assigned position
  - error: Unprocessable when the item type does not fit the list,
    Conflict when it is already present
*/
func (service *ListService) AddItem(context stdctx.Context, ownerID, listID string, input ListItemInput) (int, error) {
	list, err := service.owned(context, ownerID, listID)
	if err != nil {
		return 0, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldUniversalItemID, input.UniversalItemID)
	if err := validator.Err(); err != nil {
		return 0, err
	}

	item, err := service.items.FindItem(context, input.UniversalItemID)
	if err != nil {
		return 0, err
	}
	if !list.Type.Accepts(item.Type) {
		return 0, apperr.Unprocessable("A " + string(list.Type) + " list cannot hold a " + string(item.Type))
	}

	var position int
	err = service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		var appendErr error
		position, appendErr = service.repo.AppendEntry(ctx, listID, item.ID)
		return appendErr
	})
	if err != nil {
		if apperr.HasCode(err, "CONFLICT") {
			return 0, apperr.Conflict("Item is already in this list")
		}
		return 0, err
	}

	service.logger.Info("list_item_added",
		slog.String("list_id", listID),
		slog.String("item_id", item.ID),
		slog.Int("position", position),
	)
	return position, nil
}

// RemoveItem drops an entry and closes the gap it leaves.
func (service *ListService) RemoveItem(context stdctx.Context, ownerID, listID, itemID string) error {
	if _, err := service.owned(context, ownerID, listID); err != nil {
		return err
	}
	return service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		return service.repo.RemoveEntry(ctx, listID, itemID)
	})
}

// MoveItem reorders an entry. Positions beyond the end are clamped.
func (service *ListService) MoveItem(context stdctx.Context, ownerID, listID, itemID string, input MoveInput) (*List, error) {
	list, err := service.owned(context, ownerID, listID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Custom(FieldPosition, input.Position < 1, "Position starts at 1")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	err = service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		return service.repo.MoveEntry(ctx, listID, itemID, input.Position)
	})
	if err != nil {
		return nil, err
	}
	return service.withEntries(context, list)
}

func (service *ListService) owned(context stdctx.Context, ownerID, id string) (*List, error) {
	list, err := service.repo.FindList(context, id)
	if err != nil {
		return nil, err
	}
	if list.OwnerID != ownerID {
		return nil, apperr.Forbidden("You do not own this list")
	}
	return list, nil
}

func (service *ListService) withEntries(context stdctx.Context, list *List) (*List, error) {
	entries, err := service.repo.ListEntries(context, list.ID)
	if err != nil {
		return nil, err
	}
	list.Items = entries
	return list, nil
}

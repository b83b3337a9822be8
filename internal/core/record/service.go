// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	stdctx "context"
	"log/slog"
	"strings"

	"github.com/goccy/go-json"

	"github.com/taibuivan/voxmundi/internal/core/catalog"
	"github.com/taibuivan/voxmundi/internal/core/culture"
	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/validate"
	"github.com/taibuivan/voxmundi/pkg/uuid"
)

// ItemLookup resolves registry items referenced by media records and lists.
type ItemLookup interface {
	FindItem(ctx stdctx.Context, id string) (*catalog.UniversalItem, error)
}

type txManager interface {
	RunInTx(ctx stdctx.Context, fn func(ctx stdctx.Context) error) error
}

// # Service Layer

// Service manages personal records.
type Service struct {
	repo      Repository
	resolver  *Resolver
	items     ItemLookup
	tx        txManager
	imageBase string
	logger    *slog.Logger
}

/*
NewService constructs the record [Service].

Parameters:
  - imageBase: string (CDN prefix joined with TMDb path fragments)
*/
func NewService(repo Repository, resolver *Resolver, items ItemLookup, tx txManager, imageBase string, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		resolver:  resolver,
		items:     items,
		tx:        tx,
		imageBase: strings.TrimRight(imageBase, "/"),
		logger:    logger,
	}
}

// # Validation

// checkTracking validates rating, visibility and culture ownership.
func (service *Service) checkTracking(context stdctx.Context, ownerID string, validator *validate.Validator, input *Input) ([]string, error) {
	validator.OptionalRange(FieldRating, input.Rating, minRating, maxRating)
	if input.Visibility != "" {
		validator.Custom(FieldVisibility, !input.Visibility.Valid(), "Must be one of: public, private")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.resolver.CheckCultures(context, ownerID, input.CultureIDs)
}

// # Record Writes

/*
Create validates and stores a personal record with its culture links.

Description: Media kinds must reference a registry item of the matching
type and take their title from it. Authored kinds require a title. Every
attached culture must belong to the caller.

Returns:
  - *Record: Stored record
  - error: ValidationError (including foreign cultures on field "cultures")
*/
func (service *Service) Create(context stdctx.Context, ownerID string, input Input) (*Record, error) {
	input.Title = strings.TrimSpace(input.Title)

	// 1. Kind and target
	validator := &validate.Validator{}
	if !input.Kind.Valid() {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: FieldKind, Message: "Unknown record kind"})
	}

	title := input.Title
	itemType, isMedia := input.Kind.ItemType()
	if isMedia {
		if input.UniversalItemID == nil || *input.UniversalItemID == "" {
			validator.Required(FieldUniversalItemID, "")
		} else {
			item, err := service.items.FindItem(context, *input.UniversalItemID)
			switch {
			case apperr.IsNotFound(err):
				validator.Custom(FieldUniversalItemID, true, "Unknown universal item")
			case err != nil:
				return nil, err
			case item.Type != itemType:
				validator.Custom(FieldUniversalItemID, true, "Item type "+string(item.Type)+" does not match kind "+string(input.Kind))
			default:
				title = item.Title
			}
		}
	} else {
		input.UniversalItemID = nil
		validator.Required(FieldTitle, title)
	}
	validator.MaxLen(FieldTitle, title, maxTitleLen)

	// 2. Tracking fields and culture ownership
	cultureIDs, err := service.checkTracking(context, ownerID, validator, &input)
	if err != nil {
		return nil, err
	}

	// 3. Kind-specific details and the references inside them
	details, err := NormalizeDetails(input.Kind, input.Details)
	if err != nil {
		return nil, err
	}
	if err := service.checkReferences(context, ownerID, input.Kind, details); err != nil {
		return nil, err
	}

	record := &Record{
		ID:              uuid.New(),
		Kind:            input.Kind,
		UniversalItemID: input.UniversalItemID,
		Title:           title,
		Details:         details,
		Tracking: Tracking{
			OwnerID:    ownerID,
			CultureIDs: cultureIDs,
			Rating:     input.Rating,
			Notes:      input.Notes,
			Visibility: input.Visibility.OrDefault(),
		},
	}

	// 4. Record and links together
	err = service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		if err := service.repo.Create(ctx, record); err != nil {
			return err
		}
		return service.repo.ReplaceCultures(ctx, record.ID, cultureIDs)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("record_created",
		slog.String("record_id", record.ID),
		slog.String("kind", string(record.Kind)),
		slog.String("owner_id", ownerID),
	)
	return record, nil
}

/*
Update patches an owned record. Absent fields keep their stored values, so a
request carrying only notes leaves visibility, rating and cultures intact.

Returns:
  - error: NotFound, Forbidden for a foreign record, or ValidationError
*/
func (service *Service) Update(context stdctx.Context, ownerID, id string, input UpdateInput) (*Record, error) {
	record, err := service.owned(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	// 1. Scalar fields
	validator := &validate.Validator{}
	if _, isMedia := record.Kind.ItemType(); input.Title != nil && !isMedia {
		record.Title = strings.TrimSpace(*input.Title)
		validator.Required(FieldTitle, record.Title).MaxLen(FieldTitle, record.Title, maxTitleLen)
	}
	if input.Rating != nil {
		if *input.Rating == 0 {
			record.Rating = nil
		} else {
			validator.OptionalRange(FieldRating, input.Rating, minRating, maxRating)
			record.Rating = input.Rating
		}
	}
	if input.Visibility != nil {
		validator.Custom(FieldVisibility, !input.Visibility.Valid(), "Must be one of: public, private")
		record.Visibility = *input.Visibility
	}
	if input.Notes != nil {
		record.Notes = *input.Notes
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 2. Culture links, only when sent
	relink := input.CultureIDs != nil
	if relink {
		if record.CultureIDs, err = service.resolver.CheckCultures(context, ownerID, *input.CultureIDs); err != nil {
			return nil, err
		}
	}

	// 3. Details, only when sent
	if len(input.Details) > 0 {
		if record.Details, err = NormalizeDetails(record.Kind, input.Details); err != nil {
			return nil, err
		}
		if err := service.checkReferences(context, ownerID, record.Kind, record.Details); err != nil {
			return nil, err
		}
	}

	err = service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		if err := service.repo.Update(ctx, record); err != nil {
			return err
		}
		if !relink {
			return nil
		}
		return service.repo.ReplaceCultures(ctx, record.ID, record.CultureIDs)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("record_updated", slog.String("record_id", id), slog.Bool("relinked", relink))
	return record, nil
}

// checkReferences verifies ids embedded in normalized details. Only map pins carry one.
func (service *Service) checkReferences(context stdctx.Context, ownerID string, kind Kind, details json.RawMessage) error {
	if kind != KindMapPin {
		return nil
	}
	var pin MapPinDetails
	if err := json.Unmarshal(details, &pin); err != nil {
		return err
	}
	return service.resolver.CheckPeriod(context, ownerID, pin.PeriodID)
}

// Delete removes an owned record.
func (service *Service) Delete(context stdctx.Context, ownerID, id string) error {
	if _, err := service.owned(context, ownerID, id); err != nil {
		return err
	}
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("record_deleted", slog.String("record_id", id), slog.String("owner_id", ownerID))
	return nil
}

// owned loads a record and checks that ownerID owns it.
func (service *Service) owned(context stdctx.Context, ownerID, id string) (*Record, error) {
	record, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if record.OwnerID != ownerID {
		return nil, apperr.Forbidden("You do not own this record")
	}
	return record, nil
}

/*
UpdateFilmImage points a film record's poster and background at TMDb images.

Description: Each non-empty path fragment is joined to the image base URL,
gaining a leading slash when missing. An empty fragment leaves that image
unchanged.

Returns:
  - *Record: Record with updated details
  - error: Unprocessable for non-film records
*/
func (service *Service) UpdateFilmImage(context stdctx.Context, ownerID, id string, input ImageInput) (*Record, error) {
	record, err := service.owned(context, ownerID, id)
	if err != nil {
		return nil, err
	}
	if record.Kind != KindFilm {
		return nil, apperr.Unprocessable("Images can only be set on film records")
	}

	poster := strings.TrimSpace(input.PosterPath)
	backdrop := strings.TrimSpace(input.BackdropPath)
	if poster == "" && backdrop == "" {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "poster_path", Message: "Provide a poster or backdrop path"})
	}

	details := &FilmDetails{Sound: true, Color: true}
	if len(record.Details) > 0 {
		if err := json.Unmarshal(record.Details, details); err != nil {
			return nil, apperr.Internal(err)
		}
	}

	if poster != "" {
		url := service.ImageURL(poster)
		details.Poster = &url
	}
	if backdrop != "" {
		url := service.ImageURL(backdrop)
		details.Background = &url
	}

	encoded, err := json.Marshal(details)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := service.repo.UpdateDetails(context, id, encoded); err != nil {
		return nil, err
	}

	record.Details = encoded
	service.logger.Info("film_image_updated", slog.String("record_id", id))
	return record, nil
}

// ImageURL joins the CDN base with a TMDb path fragment.
func (service *Service) ImageURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return service.imageBase + path
}

// # Record Reads

/*
Get returns a record visible to the viewer. Private records of other users
are reported as missing.
*/
func (service *Service) Get(context stdctx.Context, viewerID, id string) (*Record, error) {
	record, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if record.OwnerID != viewerID && record.Visibility != culture.VisibilityPublic {
		return nil, apperr.NotFound("Record")
	}
	return record, nil
}

/*
List resolves the viewer's scope and returns one page of records.

Returns:
  - []*Record: Possibly empty page
  - int: Total matches
  - error: Unexpected lookup or database failures only
*/
func (service *Service) List(context stdctx.Context, viewerID string, scope Scope, limit, offset int) ([]*Record, int, error) {
	if scope.Kind != "" && !scope.Kind.Valid() {
		return nil, 0, apperr.ValidationError("Validation failed", apperr.FieldError{Field: FieldKind, Message: "Unknown record kind"})
	}

	plan, err := service.resolver.Resolve(context, viewerID, scope.Code, scope.Shared, RecordTarget)
	if err != nil {
		return nil, 0, err
	}

	service.logger.Debug("records_resolved", slog.String("branch", plan.Branch), slog.String("code", scope.Code))

	if plan.Empty {
		return []*Record{}, 0, nil
	}
	return service.repo.List(context, plan.Where, scope, limit, offset)
}

// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package culture

import (
	stdctx "context"
	"log/slog"
	"strings"

	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/validate"
	"github.com/taibuivan/voxmundi/pkg/slug"
	"github.com/taibuivan/voxmundi/pkg/uuid"
)

// txManager runs a callback inside one database transaction.
type txManager interface {
	RunInTx(ctx stdctx.Context, fn func(ctx stdctx.Context) error) error
}

// # Service Layer

// Service orchestrates business rules for cultures and their taxonomy.
type Service struct {
	repo   Repository
	tx     txManager
	logger *slog.Logger
}

// NewService constructs a new culture [Service].
func NewService(repo Repository, tx txManager, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tx:     tx,
		logger: logger,
	}
}

// # Culture Lifecycle

/*
CreateCulture validates input and persists a culture together with its
default categories in one transaction.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: CreateInput

Returns:
  - *Culture: The stored culture with its derived shared group key
  - error: Validation failures or Conflict on a duplicate code
*/
func (service *Service) CreateCulture(context stdctx.Context, ownerID string, input CreateInput) (*Culture, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Code = strings.TrimSpace(input.Code)

	// 1. Shape validation
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, maxNameLen)
	validator.Required(FieldCode, input.Code).MaxLen(FieldCode, input.Code, maxCodeLen)
	if input.Code != "" {
		validator.Slug(FieldCode, strings.ToLower(input.Code))
	}
	validator.MaxLen(FieldSharedGroupKey, input.SharedGroupKey, maxGroupKeyLen)
	if input.Visibility != "" {
		validator.OneOf(FieldVisibility, string(input.Visibility), string(VisibilityPublic), string(VisibilityPrivate))
	}
	if input.Picture != nil && *input.Picture != "" {
		validator.URL(FieldPicture, *input.Picture)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 2. Derive the cross-user linkage key once
	culture := &Culture{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Name:           input.Name,
		Code:           input.Code,
		Colour:         input.Colour,
		Picture:        input.Picture,
		SharedGroupKey: DeriveGroupKey(input.Code, input.SharedGroupKey),
		Visibility:     input.Visibility.OrDefault(),
	}

	categories := make([]*Category, 0, len(DefaultCategories))
	for _, name := range DefaultCategories {
		categories = append(categories, &Category{
			ID:          uuid.New(),
			CultureID:   culture.ID,
			Key:         slug.Key(name, maxKeyLen),
			DisplayName: name,
		})
	}

	// 3. Culture and taxonomy are stored atomically
	err := service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		if err := service.repo.Create(ctx, culture); err != nil {
			if apperr.HasCode(err, "CONFLICT") {
				return apperr.Conflict("A culture with this code already exists")
			}
			return err
		}
		return service.repo.CreateCategories(ctx, categories)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("culture_created",
		slog.String("culture_id", culture.ID),
		slog.String("owner_id", ownerID),
		slog.String("shared_group_key", culture.SharedGroupKey),
	)

	return culture, nil
}

/*
ListCultures returns the caller's cultures. Anonymous callers own nothing
and receive an empty list.
*/
func (service *Service) ListCultures(context stdctx.Context, ownerID, code string) ([]*Culture, error) {
	if ownerID == "" {
		return []*Culture{}, nil
	}
	return service.repo.ListByOwner(context, ownerID, code)
}

/*
GetCulture returns a culture visible to the viewer: their own, or any public one.
Private cultures of other users are reported as missing.
*/
func (service *Service) GetCulture(context stdctx.Context, viewerID, id string) (*Culture, error) {
	culture, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if culture.OwnerID != viewerID && culture.Visibility != VisibilityPublic {
		return nil, apperr.NotFound("Culture")
	}

	return culture, nil
}

/*
UpdateCulture applies a partial update. Code and shared group key are immutable.

Returns:
  - *Culture: Updated entity
  - error: NotFound, Forbidden or validation failures
*/
func (service *Service) UpdateCulture(context stdctx.Context, ownerID, id string, input UpdateInput) (*Culture, error) {
	culture, err := service.owned(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLen)
		culture.Name = name
	}
	if input.Colour != nil {
		culture.Colour = *input.Colour
	}
	if input.Picture != nil {
		if *input.Picture != "" {
			validator.URL(FieldPicture, *input.Picture)
		}
		culture.Picture = input.Picture
	}
	if input.Visibility != nil {
		validator.Custom(FieldVisibility, !input.Visibility.Valid(), "Must be one of: public, private")
		culture.Visibility = *input.Visibility
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, culture); err != nil {
		return nil, err
	}

	service.logger.Info("culture_updated", slog.String("culture_id", id))
	return culture, nil
}

// DeleteCulture removes an owned culture and everything scoped to it.
func (service *Service) DeleteCulture(context stdctx.Context, ownerID, id string) error {
	if _, err := service.owned(context, ownerID, id); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("culture_deleted", slog.String("culture_id", id), slog.String("owner_id", ownerID))
	return nil
}

// # Ownership Queries

/*
FindByCode resolves the caller's culture for a code.

Returns:
  - *Culture: The owned culture
  - error: NotFound when the caller has no culture with that code
*/
func (service *Service) FindByCode(context stdctx.Context, ownerID, code string) (*Culture, error) {
	return service.repo.FindByCode(context, ownerID, code)
}

/*
OwnedCultureIDs returns the subset of ids owned by ownerID, deduplicated.
*/
func (service *Service) OwnedCultureIDs(context stdctx.Context, ownerID string, ids []string) ([]string, error) {
	return service.repo.OwnedIDs(context, ownerID, ids)
}

// owned loads a culture and checks that ownerID owns it.
func (service *Service) owned(context stdctx.Context, ownerID, id string) (*Culture, error) {
	culture, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if culture.OwnerID != ownerID {
		return nil, apperr.Forbidden("You do not own this culture")
	}
	return culture, nil
}

// # Categories

// ListCategories returns the caller's categories, optionally for one culture code.
func (service *Service) ListCategories(context stdctx.Context, ownerID, code string) ([]*Category, error) {
	if ownerID == "" {
		return []*Category{}, nil
	}
	return service.repo.ListCategories(context, ownerID, code)
}

/*
CreateCategory adds a custom category to an owned culture. The key defaults
to the slug of the display name and must be unique within the culture.
*/
func (service *Service) CreateCategory(context stdctx.Context, ownerID string, input CategoryInput) (*Category, error) {
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	key := slug.Key(input.Key, maxKeyLen)
	if key == "" {
		key = slug.Key(input.DisplayName, maxKeyLen)
	}

	validator := &validate.Validator{}
	validator.Required(FieldCultureID, input.CultureID).UUID(FieldCultureID, input.CultureID)
	validator.Required(FieldDisplayName, input.DisplayName).MaxLen(FieldDisplayName, input.DisplayName, maxNameLen)
	validator.Required(FieldKey, key)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.owned(context, ownerID, input.CultureID); err != nil {
		return nil, err
	}

	category := &Category{
		ID:          uuid.New(),
		CultureID:   input.CultureID,
		Key:         key,
		DisplayName: input.DisplayName,
	}

	if err := service.repo.CreateCategory(context, category); err != nil {
		if apperr.HasCode(err, "CONFLICT") {
			return nil, apperr.Conflict("This culture already has a category with that key")
		}
		return nil, err
	}

	service.logger.Info("category_created", slog.String("category_id", category.ID), slog.String("culture_id", category.CultureID))
	return category, nil
}

// # Periods

// ListPeriods returns the caller's periods filtered by culture code and category key.
func (service *Service) ListPeriods(context stdctx.Context, ownerID, code, key string) ([]*Period, error) {
	if ownerID == "" {
		return []*Period{}, nil
	}
	return service.repo.ListPeriods(context, ownerID, code, key)
}

/*
CreatePeriod validates and stores a period.

Returns:
  - *Period: Stored entity
  - error: ValidationError when start_year > end_year, Forbidden for a foreign culture
*/
func (service *Service) CreatePeriod(context stdctx.Context, ownerID string, input PeriodInput) (*Period, error) {
	if err := service.checkPeriod(context, ownerID, input); err != nil {
		return nil, err
	}

	period := &Period{
		ID:          uuid.New(),
		CultureID:   input.CultureID,
		CategoryID:  input.CategoryID,
		Section:     strings.TrimSpace(input.Section),
		StartYear:   input.StartYear,
		EndYear:     input.EndYear,
		Description: input.Description,
		ShortIntro:  input.ShortIntro,
	}

	if err := service.repo.CreatePeriod(context, period); err != nil {
		return nil, err
	}

	service.logger.Info("period_created", slog.String("period_id", period.ID), slog.String("culture_id", period.CultureID))
	return period, nil
}

// UpdatePeriod replaces a period's fields. The culture cannot change.
func (service *Service) UpdatePeriod(context stdctx.Context, ownerID, id string, input PeriodInput) (*Period, error) {
	period, err := service.repo.FindPeriod(context, id)
	if err != nil {
		return nil, err
	}

	input.CultureID = period.CultureID
	if input.CategoryID == "" {
		input.CategoryID = period.CategoryID
	}

	if err := service.checkPeriod(context, ownerID, input); err != nil {
		return nil, err
	}

	period.CategoryID = input.CategoryID
	period.Section = strings.TrimSpace(input.Section)
	period.StartYear = input.StartYear
	period.EndYear = input.EndYear
	period.Description = input.Description
	period.ShortIntro = input.ShortIntro

	if err := service.repo.UpdatePeriod(context, period); err != nil {
		return nil, err
	}

	service.logger.Info("period_updated", slog.String("period_id", id))
	return period, nil
}

// DeletePeriod removes a period of an owned culture.
func (service *Service) DeletePeriod(context stdctx.Context, ownerID, id string) error {
	period, err := service.repo.FindPeriod(context, id)
	if err != nil {
		return err
	}
	if _, err := service.owned(context, ownerID, period.CultureID); err != nil {
		return err
	}
	return service.repo.DeletePeriod(context, id)
}

/*
OwnedPeriod returns a period whose culture belongs to ownerID.

Returns:
  - error: NotFound for an unknown or malformed id, Forbidden for a foreign period
*/
func (service *Service) OwnedPeriod(context stdctx.Context, ownerID, id string) (*Period, error) {
	if uuid.Normalize(id) == "" {
		return nil, apperr.NotFound("Period")
	}
	period, err := service.repo.FindPeriod(context, id)
	if err != nil {
		return nil, err
	}
	if _, err := service.owned(context, ownerID, period.CultureID); err != nil {
		return nil, err
	}
	return period, nil
}

// checkPeriod enforces shape, year order and ownership for period writes.
func (service *Service) checkPeriod(context stdctx.Context, ownerID string, input PeriodInput) error {
	section := strings.TrimSpace(input.Section)

	validator := &validate.Validator{}
	validator.Required(FieldCultureID, input.CultureID).UUID(FieldCultureID, input.CultureID)
	validator.Required(FieldCategoryID, input.CategoryID).UUID(FieldCategoryID, input.CategoryID)
	validator.Required(FieldSection, section).MaxLen(FieldSection, section, maxSectionLen)
	validator.MaxLen("short_intro", input.ShortIntro, maxIntroLen)
	validator.Custom(FieldStartYear, input.StartYear > input.EndYear, "Start year must not be after end year")
	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.owned(context, ownerID, input.CultureID); err != nil {
		return err
	}

	category, err := service.repo.FindCategory(context, input.CategoryID)
	if err != nil {
		return err
	}
	if category.CultureID != input.CultureID {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldCategoryID,
			Message: "Category does not belong to this culture",
		})
	}

	return nil
}

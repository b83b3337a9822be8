// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package culture

import (
	"bytes"
	stdctx "context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/validate"
	"github.com/taibuivan/voxmundi/pkg/uuid"
)

// # Page Contents

// ListPageContents returns the caller's category pages filtered by culture code and category key.
func (service *Service) ListPageContents(context stdctx.Context, ownerID, code, key string) ([]*PageContent, error) {
	if ownerID == "" {
		return []*PageContent{}, nil
	}
	return service.repo.ListPageContents(context, ownerID, code, key)
}

// GetPageContent returns a page of one of the caller's cultures. Other pages are reported as missing.
func (service *Service) GetPageContent(context stdctx.Context, ownerID, id string) (*PageContent, error) {
	page, err := service.repo.FindPageContent(context, id)
	if err != nil {
		return nil, err
	}
	if err := service.visible(context, ownerID, page.CultureID, "PageContent"); err != nil {
		return nil, err
	}
	return page, nil
}

/*
CreatePageContent stores the texts of a category page.

Returns:
  - *PageContent: Stored entity
  - error: Forbidden for a foreign culture, a validation error when the
    category belongs to another culture, Conflict when the page exists
*/
func (service *Service) CreatePageContent(context stdctx.Context, ownerID string, input PageContentInput) (*PageContent, error) {
	validator := &validate.Validator{}
	validator.Required(FieldCultureID, input.CultureID).UUID(FieldCultureID, input.CultureID)
	validator.Required(FieldCategoryID, input.CategoryID).UUID(FieldCategoryID, input.CategoryID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.owned(context, ownerID, input.CultureID); err != nil {
		return nil, err
	}
	if err := service.checkCategory(context, input.CultureID, input.CategoryID); err != nil {
		return nil, err
	}

	page := &PageContent{
		ID:           uuid.New(),
		CultureID:    input.CultureID,
		CategoryID:   input.CategoryID,
		IntroText:    input.IntroText,
		OverviewText: input.OverviewText,
		ExtraText:    input.ExtraText,
	}

	if err := service.repo.CreatePageContent(context, page); err != nil {
		if apperr.HasCode(err, "CONFLICT") {
			return nil, apperr.Conflict("This category already has page content")
		}
		return nil, err
	}

	service.logger.Info("page_content_created", slog.String("page_content_id", page.ID), slog.String("culture_id", page.CultureID))
	return page, nil
}

// UpdatePageContent changes the texts that are present in input.
func (service *Service) UpdatePageContent(context stdctx.Context, ownerID, id string, input PageContentUpdate) (*PageContent, error) {
	page, err := service.repo.FindPageContent(context, id)
	if err != nil {
		return nil, err
	}
	if _, err := service.owned(context, ownerID, page.CultureID); err != nil {
		return nil, err
	}

	if input.IntroText != nil {
		page.IntroText = *input.IntroText
	}
	if input.OverviewText != nil {
		page.OverviewText = *input.OverviewText
	}
	if input.ExtraText != nil {
		page.ExtraText = *input.ExtraText
	}

	if err := service.repo.UpdatePageContent(context, page); err != nil {
		return nil, err
	}

	service.logger.Info("page_content_updated", slog.String("page_content_id", id))
	return page, nil
}

// DeletePageContent removes a page of an owned culture.
func (service *Service) DeletePageContent(context stdctx.Context, ownerID, id string) error {
	page, err := service.repo.FindPageContent(context, id)
	if err != nil {
		return err
	}
	if _, err := service.owned(context, ownerID, page.CultureID); err != nil {
		return err
	}
	return service.repo.DeletePageContent(context, id)
}

// # Map Borders

// ListMapBorders returns the caller's map borders, optionally for one culture code.
func (service *Service) ListMapBorders(context stdctx.Context, ownerID, code string) ([]*MapBorder, error) {
	if ownerID == "" {
		return []*MapBorder{}, nil
	}
	return service.repo.ListMapBorders(context, ownerID, code)
}

// GetMapBorder returns a border of one of the caller's cultures.
func (service *Service) GetMapBorder(context stdctx.Context, ownerID, id string) (*MapBorder, error) {
	border, err := service.repo.FindMapBorder(context, id)
	if err != nil {
		return nil, err
	}
	if err := service.visible(context, ownerID, border.CultureID, "MapBorder"); err != nil {
		return nil, err
	}
	return border, nil
}

/*
CreateMapBorder stores the borders of an owned culture for one of its periods.

Returns:
  - *MapBorder: Stored entity
  - error: Forbidden for a foreign culture, a validation error on period_id
    when the period is unknown or belongs to another culture, and on borders
    unless they are a JSON object or array
*/
func (service *Service) CreateMapBorder(context stdctx.Context, ownerID string, input MapBorderInput) (*MapBorder, error) {
	validator := &validate.Validator{}
	validator.Required(FieldCultureID, input.CultureID).UUID(FieldCultureID, input.CultureID)
	validator.Required(FieldPeriodID, input.PeriodID).UUID(FieldPeriodID, input.PeriodID)
	validator.Custom(FieldBorders, !isDocument(input.Borders, '{', '['), "Must be a JSON object or array")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.owned(context, ownerID, input.CultureID); err != nil {
		return nil, err
	}
	if err := service.checkPeriodOf(context, input.CultureID, input.PeriodID); err != nil {
		return nil, err
	}

	border := &MapBorder{
		ID:        uuid.New(),
		CultureID: input.CultureID,
		PeriodID:  input.PeriodID,
		Borders:   input.Borders,
	}

	if err := service.repo.CreateMapBorder(context, border); err != nil {
		return nil, err
	}

	service.logger.Info("map_border_created", slog.String("map_border_id", border.ID), slog.String("period_id", border.PeriodID))
	return border, nil
}

// UpdateMapBorder moves a border to another period of the same culture or replaces its geometry.
func (service *Service) UpdateMapBorder(context stdctx.Context, ownerID, id string, input MapBorderUpdate) (*MapBorder, error) {
	border, err := service.repo.FindMapBorder(context, id)
	if err != nil {
		return nil, err
	}
	if _, err := service.owned(context, ownerID, border.CultureID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.PeriodID != nil {
		validator.Required(FieldPeriodID, *input.PeriodID).UUID(FieldPeriodID, *input.PeriodID)
	}
	if input.Borders != nil {
		validator.Custom(FieldBorders, !isDocument(input.Borders, '{', '['), "Must be a JSON object or array")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.PeriodID != nil {
		if err := service.checkPeriodOf(context, border.CultureID, *input.PeriodID); err != nil {
			return nil, err
		}
		border.PeriodID = *input.PeriodID
	}
	if input.Borders != nil {
		border.Borders = input.Borders
	}

	if err := service.repo.UpdateMapBorder(context, border); err != nil {
		return nil, err
	}

	service.logger.Info("map_border_updated", slog.String("map_border_id", id))
	return border, nil
}

// DeleteMapBorder removes a border of an owned culture.
func (service *Service) DeleteMapBorder(context stdctx.Context, ownerID, id string) error {
	border, err := service.repo.FindMapBorder(context, id)
	if err != nil {
		return err
	}
	if _, err := service.owned(context, ownerID, border.CultureID); err != nil {
		return err
	}
	return service.repo.DeleteMapBorder(context, id)
}

// # Language Tables

// ListLanguageTables returns the caller's language tables, optionally for one culture code.
func (service *Service) ListLanguageTables(context stdctx.Context, ownerID, code string) ([]*LanguageTable, error) {
	if ownerID == "" {
		return []*LanguageTable{}, nil
	}
	return service.repo.ListLanguageTables(context, ownerID, code)
}

// GetLanguageTable returns a language table of one of the caller's cultures.
func (service *Service) GetLanguageTable(context stdctx.Context, ownerID, id string) (*LanguageTable, error) {
	table, err := service.repo.FindLanguageTable(context, id)
	if err != nil {
		return nil, err
	}
	if err := service.visible(context, ownerID, table.CultureID, "LanguageTable"); err != nil {
		return nil, err
	}
	return table, nil
}

/*
CreateLanguageTable stores a titled table under an owned culture. Missing
table data is stored as an empty object.
*/
func (service *Service) CreateLanguageTable(context stdctx.Context, ownerID string, input LanguageTableInput) (*LanguageTable, error) {
	title := strings.TrimSpace(input.Title)
	data := input.TableData
	if isNull(data) {
		data = json.RawMessage(`{}`)
	}

	validator := &validate.Validator{}
	validator.Required(FieldCultureID, input.CultureID).UUID(FieldCultureID, input.CultureID)
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, maxTitleLen)
	validator.Custom(FieldTableData, !isDocument(data, '{'), "Must be a JSON object")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.owned(context, ownerID, input.CultureID); err != nil {
		return nil, err
	}

	table := &LanguageTable{
		ID:        uuid.New(),
		CultureID: input.CultureID,
		Title:     title,
		TableData: data,
	}

	if err := service.repo.CreateLanguageTable(context, table); err != nil {
		return nil, err
	}

	service.logger.Info("language_table_created", slog.String("language_table_id", table.ID), slog.String("culture_id", table.CultureID))
	return table, nil
}

// UpdateLanguageTable changes the title or the data of an owned language table.
func (service *Service) UpdateLanguageTable(context stdctx.Context, ownerID, id string, input LanguageTableUpdate) (*LanguageTable, error) {
	table, err := service.repo.FindLanguageTable(context, id)
	if err != nil {
		return nil, err
	}
	if _, err := service.owned(context, ownerID, table.CultureID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, maxTitleLen)
		table.Title = title
	}
	if input.TableData != nil {
		validator.Custom(FieldTableData, !isDocument(input.TableData, '{'), "Must be a JSON object")
		table.TableData = input.TableData
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateLanguageTable(context, table); err != nil {
		return nil, err
	}

	service.logger.Info("language_table_updated", slog.String("language_table_id", id))
	return table, nil
}

// DeleteLanguageTable removes a language table of an owned culture.
func (service *Service) DeleteLanguageTable(context stdctx.Context, ownerID, id string) error {
	table, err := service.repo.FindLanguageTable(context, id)
	if err != nil {
		return err
	}
	if _, err := service.owned(context, ownerID, table.CultureID); err != nil {
		return err
	}
	return service.repo.DeleteLanguageTable(context, id)
}

// # Helpers

// visible hides content of cultures the viewer does not own behind a 404.
func (service *Service) visible(context stdctx.Context, viewerID, cultureID, resource string) error {
	if viewerID == "" {
		return apperr.NotFound(resource)
	}
	if _, err := service.owned(context, viewerID, cultureID); err != nil {
		if apperr.HasCode(err, "FORBIDDEN") {
			return apperr.NotFound(resource)
		}
		return err
	}
	return nil
}

// checkCategory requires categoryID to exist under cultureID.
func (service *Service) checkCategory(context stdctx.Context, cultureID, categoryID string) error {
	category, err := service.repo.FindCategory(context, categoryID)
	if err != nil && !apperr.IsNotFound(err) {
		return err
	}
	if err != nil || category.CultureID != cultureID {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldCategoryID,
			Message: "Category does not belong to this culture",
		})
	}
	return nil
}

// checkPeriodOf requires periodID to exist under cultureID.
func (service *Service) checkPeriodOf(context stdctx.Context, cultureID, periodID string) error {
	period, err := service.repo.FindPeriod(context, periodID)
	if err != nil && !apperr.IsNotFound(err) {
		return err
	}
	if err != nil || period.CultureID != cultureID {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldPeriodID,
			Message: "Period does not belong to this culture",
		})
	}
	return nil
}

// isDocument reports whether raw is valid JSON whose top level opens with one of kinds.
func isDocument(raw json.RawMessage, kinds ...byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return false
	}
	return bytes.IndexByte(kinds, trimmed[0]) >= 0
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

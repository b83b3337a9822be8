// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	stdctx "context"
	"log/slog"
	"strings"

	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/validate"
	"github.com/taibuivan/voxmundi/pkg/uuid"
)

const maxNotableWorks = 50

// # Service Layer

// Service manages the person directory.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a person [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List pages through the directory.
func (service *Service) List(context stdctx.Context, filter Filter, limit, offset int) ([]*Person, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Nationality = strings.TrimSpace(filter.Nationality)
	return service.repo.List(context, filter, limit, offset)
}

// Get returns one person.
func (service *Service) Get(context stdctx.Context, id string) (*Person, error) {
	if !uuid.IsValid(id) {
		return nil, apperr.NotFound("Person")
	}
	return service.repo.FindByID(context, id)
}

/*
Create validates and registers a new person.

Returns:
  - error: Validation failures or database errors
*/
func (service *Service) Create(context stdctx.Context, person *Person) error {
	normalize(person)
	if err := check(person); err != nil {
		return err
	}

	person.ID = uuid.New()
	if err := service.repo.Create(context, person); err != nil {
		return err
	}

	service.logger.Info("person_created", slog.String("person_id", person.ID), slog.String("name", person.FullName()))
	return nil
}

// Update replaces the editable fields of a person.
func (service *Service) Update(context stdctx.Context, id string, person *Person) error {
	if !uuid.IsValid(id) {
		return apperr.NotFound("Person")
	}

	person.ID = id
	normalize(person)
	if err := check(person); err != nil {
		return err
	}

	if err := service.repo.Update(context, person); err != nil {
		return err
	}

	service.logger.Info("person_updated", slog.String("person_id", id))
	return nil
}

// Delete removes a person.
func (service *Service) Delete(context stdctx.Context, id string) error {
	if !uuid.IsValid(id) {
		return apperr.NotFound("Person")
	}
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("person_deleted", slog.String("person_id", id))
	return nil
}

func normalize(person *Person) {
	person.GivenName = strings.TrimSpace(person.GivenName)
	person.FamilyName = strings.TrimSpace(person.FamilyName)
	person.MiddleName = strings.TrimSpace(person.MiddleName)

	works := make([]string, 0, len(person.NotableWorks))
	for _, work := range person.NotableWorks {
		if work = strings.TrimSpace(work); work != "" {
			works = append(works, work)
		}
	}
	person.NotableWorks = works
}

func check(person *Person) error {
	validator := &validate.Validator{}

	validator.Required(FieldGivenName, person.GivenName).MaxLen(FieldGivenName, person.GivenName, 100)
	validator.MaxLen(FieldFamilyName, person.FamilyName, 100)
	validator.MaxLen(FieldMiddleName, person.MiddleName, 100)
	validator.MaxLen(FieldProfession, person.Profession, 100)
	validator.MaxLen(FieldNationality, person.Nationality, 100)
	validator.MaxLen(FieldBirthplace, person.Birthplace, 100)
	validator.MaxLen(FieldTitles, person.Titles, 255)
	validator.MaxLen(FieldEpithets, person.Epithets, 255)
	validator.Custom(FieldNotableWorks, len(person.NotableWorks) > maxNotableWorks, "At most 50 notable works are allowed")

	if person.Photo != nil && *person.Photo != "" {
		validator.URL(FieldPhoto, *person.Photo)
	}

	return validator.Err()
}

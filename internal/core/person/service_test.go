// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/core/person"
	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/pkg/uuid"
)

type memoryRepository struct {
	people map[string]*person.Person
	filter person.Filter
}

func (repo *memoryRepository) List(_ context.Context, filter person.Filter, _, _ int) ([]*person.Person, int, error) {
	repo.filter = filter
	out := []*person.Person{}
	for _, entry := range repo.people {
		out = append(out, entry)
	}
	return out, len(out), nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*person.Person, error) {
	if entry, ok := repo.people[id]; ok {
		return entry, nil
	}
	return nil, apperr.NotFound("Person")
}

func (repo *memoryRepository) Create(_ context.Context, entry *person.Person) error {
	repo.people[entry.ID] = entry
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, entry *person.Person) error {
	if _, ok := repo.people[entry.ID]; !ok {
		return apperr.NotFound("Person")
	}
	repo.people[entry.ID] = entry
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.people[id]; !ok {
		return apperr.NotFound("Person")
	}
	delete(repo.people, id)
	return nil
}

func newService() (*person.Service, *memoryRepository) {
	repo := &memoryRepository{people: map[string]*person.Person{}}
	return person.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestService_Create assigns an id and trims names and works.
*/
func TestService_Create(t *testing.T) {
	service, repo := newService()

	entry := &person.Person{
		GivenName:    " Johann ",
		MiddleName:   "Sebastian",
		FamilyName:   "Bach ",
		NotableWorks: []string{"Mass in B minor", " ", "Goldberg Variations"},
	}
	require.NoError(t, service.Create(context.Background(), entry))

	assert.True(t, uuid.IsValid(entry.ID))
	assert.Equal(t, "Johann Sebastian Bach", entry.FullName())
	assert.Equal(t, []string{"Mass in B minor", "Goldberg Variations"}, entry.NotableWorks)
	assert.Contains(t, repo.people, entry.ID)
}

/*
TestService_Create_Validation reports the offending fields.
*/
func TestService_Create_Validation(t *testing.T) {
	badPhoto := "ftp://example.org/bach.png"

	tests := []struct {
		name      string
		entry     person.Person
		wantField string
	}{
		{name: "missing given name", entry: person.Person{FamilyName: "Bach"}, wantField: person.FieldGivenName},
		{name: "long family name", entry: person.Person{GivenName: "J", FamilyName: strings.Repeat("b", 101)}, wantField: person.FieldFamilyName},
		{name: "bad photo", entry: person.Person{GivenName: "J", Photo: &badPhoto}, wantField: person.FieldPhoto},
		{name: "too many works", entry: person.Person{GivenName: "J", NotableWorks: make51()}, wantField: person.FieldNotableWorks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newService()
			entry := tt.entry

			err := service.Create(context.Background(), &entry)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			fields := []string{}
			for _, detail := range ae.Details {
				fields = append(fields, detail.Field)
			}
			assert.Contains(t, fields, tt.wantField)
			assert.Empty(t, repo.people)
		})
	}
}

/*
TestService_UnknownID treats malformed ids as missing.
*/
func TestService_UnknownID(t *testing.T) {
	service, _ := newService()

	_, err := service.Get(context.Background(), "not-a-uuid")
	assert.True(t, apperr.IsNotFound(err))

	err = service.Update(context.Background(), uuid.New(), &person.Person{GivenName: "Clara"})
	assert.True(t, apperr.IsNotFound(err))

	err = service.Delete(context.Background(), "42")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_List trims filters.
*/
func TestService_List(t *testing.T) {
	service, repo := newService()

	_, _, err := service.List(context.Background(), person.Filter{Query: " bach ", Nationality: " German"}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, person.Filter{Query: "bach", Nationality: "German"}, repo.filter)
}

func make51() []string {
	works := make([]string, 51)
	for i := range works {
		works[i] = "Work"
	}
	return works
}

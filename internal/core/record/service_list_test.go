// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record_test

import (
	"context"
	"sort"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/core/catalog"
	"github.com/taibuivan/voxmundi/internal/core/culture"
	"github.com/taibuivan/voxmundi/internal/core/record"
	"github.com/taibuivan/voxmundi/internal/platform/apperr"
)

// # Test Doubles

type memoryLists struct {
	lists   map[string]*record.List
	entries map[string][]string
}

func newMemoryLists() *memoryLists {
	return &memoryLists{lists: map[string]*record.List{}, entries: map[string][]string{}}
}

func (repo *memoryLists) CreateList(_ context.Context, list *record.List) error {
	copied := *list
	repo.lists[list.ID] = &copied
	return nil
}

func (repo *memoryLists) UpdateList(_ context.Context, list *record.List) error {
	copied := *list
	repo.lists[list.ID] = &copied
	return nil
}

func (repo *memoryLists) DeleteList(_ context.Context, id string) error {
	delete(repo.lists, id)
	delete(repo.entries, id)
	return nil
}

func (repo *memoryLists) FindList(_ context.Context, id string) (*record.List, error) {
	list, ok := repo.lists[id]
	if !ok {
		return nil, apperr.NotFound("List")
	}
	copied := *list
	return &copied, nil
}

func (repo *memoryLists) ReplaceListCultures(_ context.Context, listID string, cultureIDs []string) error {
	repo.lists[listID].CultureIDs = cultureIDs
	return nil
}

func (repo *memoryLists) ListLists(_ context.Context, _ sq.Sqlizer, _, _ int) ([]*record.List, int, error) {
	out := make([]*record.List, 0, len(repo.lists))
	for _, list := range repo.lists {
		out = append(out, list)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (repo *memoryLists) ListEntries(_ context.Context, listID string) ([]record.ListItem, error) {
	entries := make([]record.ListItem, 0, len(repo.entries[listID]))
	for index, itemID := range repo.entries[listID] {
		entries = append(entries, record.ListItem{UniversalItemID: itemID, Position: index + 1})
	}
	return entries, nil
}

func (repo *memoryLists) AppendEntry(_ context.Context, listID, itemID string) (int, error) {
	for _, existing := range repo.entries[listID] {
		if existing == itemID {
			return 0, apperr.Conflict("Resource already exists")
		}
	}
	repo.entries[listID] = append(repo.entries[listID], itemID)
	return len(repo.entries[listID]), nil
}

func (repo *memoryLists) RemoveEntry(_ context.Context, listID, itemID string) error {
	current := repo.entries[listID]
	for index, existing := range current {
		if existing == itemID {
			repo.entries[listID] = append(current[:index:index], current[index+1:]...)
			return nil
		}
	}
	return apperr.NotFound("ListItem")
}

func (repo *memoryLists) MoveEntry(_ context.Context, listID, itemID string, position int) error {
	current := repo.entries[listID]
	rest := make([]string, 0, len(current))
	found := false
	for _, existing := range current {
		if existing == itemID {
			found = true
			continue
		}
		rest = append(rest, existing)
	}
	if !found {
		return apperr.NotFound("ListItem")
	}
	position = min(max(position, 1), len(current))
	moved := append([]string{}, rest[:position-1]...)
	moved = append(moved, itemID)
	repo.entries[listID] = append(moved, rest[position-1:]...)
	return nil
}

const (
	solarisItem = "0190b6e4-8d1a-7c3e-9f00-0000000050a1"
	stalkerItem = "0190b6e4-8d1a-7c3e-9f00-0000000057a1"
)

func newListService(repo *memoryLists) *record.ListService {
	lookup := newItems()
	lookup[solarisItem] = &catalog.UniversalItem{ID: solarisItem, ExternalID: "593", Type: catalog.ItemFilm, Title: "Solaris"}
	lookup[stalkerItem] = &catalog.UniversalItem{ID: stalkerItem, ExternalID: "1398", Type: catalog.ItemFilm, Title: "Stalker"}
	return record.NewListService(repo, record.NewResolver(newDirectory()), lookup, &directTx{}, discard())
}

func positions(list *record.List) []string {
	ids := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		ids = append(ids, item.UniversalItemID)
	}
	return ids
}

// # Lists

/*
TestCreateList_Validation covers name, type and culture ownership.
*/
func TestCreateList_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input record.ListInput
		want  []string
	}{
		{name: "missing name", input: record.ListInput{Type: record.ListFilms}, want: []string{record.FieldName}},
		{name: "unknown type", input: record.ListInput{Name: "Faves", Type: "podcasts"}, want: []string{record.FieldListType}},
		{name: "foreign culture", input: record.ListInput{Name: "Faves", Type: record.ListMixed, CultureIDs: []string{bobFrance}}, want: []string{record.FieldCultures}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryLists()
			service := newListService(repo)

			_, err := service.CreateList(context.Background(), alice, tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.want, fieldsOf(err))
			assert.Empty(t, repo.lists)
		})
	}
}

/*
TestAddItem_TypeRules verifies typed lists reject other item types and
mixed lists accept everything.
*/
func TestAddItem_TypeRules(t *testing.T) {
	service := newListService(newMemoryLists())
	ctx := context.Background()

	films, err := service.CreateList(ctx, alice, record.ListInput{Name: "Tarkovsky", Type: record.ListFilms})
	require.NoError(t, err)
	mixed, err := service.CreateList(ctx, alice, record.ListInput{Name: "Everything", Type: record.ListMixed})
	require.NoError(t, err)

	_, err = service.AddItem(ctx, alice, films.ID, record.ListItemInput{UniversalItemID: duneItem})
	assert.True(t, apperr.HasCode(err, "UNPROCESSABLE"))

	position, err := service.AddItem(ctx, alice, mixed.ID, record.ListItemInput{UniversalItemID: duneItem})
	require.NoError(t, err)
	assert.Equal(t, 1, position)

	position, err = service.AddItem(ctx, alice, mixed.ID, record.ListItemInput{UniversalItemID: ranItem})
	require.NoError(t, err)
	assert.Equal(t, 2, position)

	_, err = service.AddItem(ctx, alice, mixed.ID, record.ListItemInput{UniversalItemID: ranItem})
	assert.True(t, apperr.HasCode(err, "CONFLICT"))

	_, err = service.AddItem(ctx, bob, mixed.ID, record.ListItemInput{UniversalItemID: solarisItem})
	assert.True(t, apperr.HasCode(err, "FORBIDDEN"))
}

/*
TestMoveAndRemoveItem verifies reordering and gap closing.
*/
func TestMoveAndRemoveItem(t *testing.T) {
	repo := newMemoryLists()
	service := newListService(repo)
	ctx := context.Background()

	list, err := service.CreateList(ctx, alice, record.ListInput{Name: "Films", Type: record.ListFilms})
	require.NoError(t, err)
	for _, id := range []string{ranItem, solarisItem, stalkerItem} {
		_, err := service.AddItem(ctx, alice, list.ID, record.ListItemInput{UniversalItemID: id})
		require.NoError(t, err)
	}

	moved, err := service.MoveItem(ctx, alice, list.ID, stalkerItem, record.MoveInput{Position: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{stalkerItem, ranItem, solarisItem}, positions(moved))

	moved, err = service.MoveItem(ctx, alice, list.ID, stalkerItem, record.MoveInput{Position: 99})
	require.NoError(t, err)
	assert.Equal(t, []string{ranItem, solarisItem, stalkerItem}, positions(moved))

	_, err = service.MoveItem(ctx, alice, list.ID, stalkerItem, record.MoveInput{Position: 0})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	require.NoError(t, service.RemoveItem(ctx, alice, list.ID, ranItem))
	got, err := service.GetList(ctx, alice, list.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{solarisItem, stalkerItem}, positions(got))
	assert.Equal(t, 1, got.Items[0].Position)
}

/*
TestGetList_Private verifies private lists are hidden from other users.
*/
func TestGetList_Private(t *testing.T) {
	service := newListService(newMemoryLists())
	ctx := context.Background()

	list, err := service.CreateList(ctx, alice, record.ListInput{Name: "Private", Type: record.ListBooks})
	require.NoError(t, err)

	_, err = service.GetList(ctx, bob, list.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.UpdateList(ctx, bob, list.ID, record.ListUpdateInput{Name: ptr("Mine now")})
	assert.True(t, apperr.HasCode(err, "FORBIDDEN"))
}

/*
TestUpdateList_KeepsAbsentFields verifies renaming a list keeps its
visibility and culture links.
*/
func TestUpdateList_KeepsAbsentFields(t *testing.T) {
	repo := newMemoryLists()
	service := newListService(repo)
	ctx := context.Background()

	list, err := service.CreateList(ctx, alice, record.ListInput{
		Name:       "Kurosawa",
		Type:       record.ListFilms,
		Visibility: culture.VisibilityPublic,
		CultureIDs: []string{aliceJapan},
	})
	require.NoError(t, err)

	updated, err := service.UpdateList(ctx, alice, list.ID, record.ListUpdateInput{Name: ptr("Kurosawa essentials")})
	require.NoError(t, err)
	assert.Equal(t, "Kurosawa essentials", updated.Name)
	assert.Equal(t, culture.VisibilityPublic, updated.Visibility)
	assert.Equal(t, []string{aliceJapan}, repo.lists[list.ID].CultureIDs)

	_, err = service.UpdateList(ctx, alice, list.ID, record.ListUpdateInput{Visibility: ptr(culture.Visibility(""))})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
}

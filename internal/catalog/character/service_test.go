// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/marvelis/internal/platform/apperr"
	"github.com/taibuivan/marvelis/internal/platform/dberr"
	"github.com/taibuivan/marvelis/internal/platform/media"
)

// # Test Fakes

// fakeRepository is an in-memory [Repository] for service tests.
type fakeRepository struct {
	nextID     int64
	characters map[int64]*Character
	links      map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID:     1,
		characters: make(map[int64]*Character),
		links:      make(map[string]bool),
	}
}

func linkKey(characterID, comicsID int64) string {
	return fmt.Sprintf("%d:%d", characterID, comicsID)
}

func (f *fakeRepository) List(_ context.Context, _ string, limit, offset int) ([]*Preview, int, error) {
	var previews []*Preview
	for _, c := range f.characters {
		previews = append(previews, &Preview{ID: c.ID, Name: c.Name})
	}
	return previews, len(f.characters), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*Character, error) {
	stored, ok := f.characters[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *stored
	clone.ResolveMedia()
	return &clone, nil
}

func (f *fakeRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.characters[id]
	return ok, nil
}

func (f *fakeRepository) Create(_ context.Context, character *Character) error {
	character.ID = f.nextID
	f.nextID++
	clone := *character
	f.characters[character.ID] = &clone
	return nil
}

func (f *fakeRepository) Update(_ context.Context, character *Character) error {
	if _, ok := f.characters[character.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *character
	f.characters[character.ID] = &clone
	return nil
}

func (f *fakeRepository) SetPortrait(_ context.Context, id int64, filename string) error {
	if stored, ok := f.characters[id]; ok {
		stored.PortraitFile = filename
	}
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.characters[id]; !ok {
		return false, nil
	}
	delete(f.characters, id)
	return true, nil
}

func (f *fakeRepository) ListComics(_ context.Context, characterID int64) ([]*ComicsPreview, error) {
	var previews []*ComicsPreview
	for key := range f.links {
		var cid, comicsID int64
		fmt.Sscanf(key, "%d:%d", &cid, &comicsID)
		if cid == characterID {
			previews = append(previews, &ComicsPreview{ID: comicsID})
		}
	}
	return previews, nil
}

func (f *fakeRepository) Link(_ context.Context, characterID, comicsID int64) error {
	f.links[linkKey(characterID, comicsID)] = true
	return nil
}

func (f *fakeRepository) Unlink(_ context.Context, characterID, comicsID int64) error {
	delete(f.links, linkKey(characterID, comicsID))
	return nil
}

// fakeComicsDirectory reports a fixed set of comic ids as existing.
type fakeComicsDirectory struct {
	ids map[int64]bool
}

func (f *fakeComicsDirectory) Exists(_ context.Context, id int64) (bool, error) {
	return f.ids[id], nil
}

// fakeMediaStore records save/remove calls without touching the filesystem.
type fakeMediaStore struct {
	saved       []string
	removed     []string
	removedAll  []int64
	saveCounter int
}

func (f *fakeMediaStore) Save(_ context.Context, dir string, ownerID int64, upload *media.Upload) (string, error) {
	f.saveCounter++
	stored := fmt.Sprintf("stored%d_%s", f.saveCounter, upload.Filename)
	f.saved = append(f.saved, fmt.Sprintf("%s/%d/%s", dir, ownerID, stored))
	return stored, nil
}

func (f *fakeMediaStore) Remove(_ context.Context, dir string, ownerID int64, filename string) bool {
	f.removed = append(f.removed, filename)
	return true
}

func (f *fakeMediaStore) RemoveAll(_ context.Context, dir string, ownerID int64) bool {
	f.removedAll = append(f.removedAll, ownerID)
	return true
}

// newTestService wires a service over fresh fakes.
func newTestService(comicsIDs ...int64) (*Service, *fakeRepository, *fakeMediaStore) {
	repo := newFakeRepository()
	files := &fakeMediaStore{}
	comics := &fakeComicsDirectory{ids: make(map[int64]bool)}
	for _, id := range comicsIDs {
		comics.ids[id] = true
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, comics, files, logger), repo, files
}

// # Create

func TestCreateAssignsServerIdentity(t *testing.T) {
	service, repo, _ := newTestService()

	created, err := service.Create(context.Background(), &Character{
		ID:   999, // client-supplied ids are discarded
		Name: "Hulk",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Contains(t, repo.characters, int64(1))
	assert.NotContains(t, repo.characters, int64(999))
}

func TestCreateNormalizesDate(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.Create(context.Background(), &Character{
		Name:       "Thor",
		CreateDate: "15.08.1962",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "15-08-1962", created.CreateDate)
}

func TestCreateRejectsInvalidDate(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Create(context.Background(), &Character{
		Name:       "Thor",
		CreateDate: "1962/08/15",
	}, nil)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestCreateRequiresName(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Create(context.Background(), &Character{Name: "  "}, nil)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestCreateStoresPortraitBeforeReturning(t *testing.T) {
	service, repo, files := newTestService()

	upload := &media.Upload{Filename: "hulk.png", Content: strings.NewReader("img")}
	created, err := service.Create(context.Background(), &Character{Name: "Hulk"}, upload)
	require.NoError(t, err)

	require.Len(t, files.saved, 1)
	assert.Equal(t, repo.characters[created.ID].PortraitFile, created.PortraitFile)
	assert.Equal(t, "/character/1/"+created.PortraitFile, created.Portrait)
}

func TestCreateWithoutPortraitResolvesEmptyPath(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.Create(context.Background(), &Character{Name: "Loki"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "/character/1/", created.Portrait)
}

// # Update

func TestUpdateReplacesFullRow(t *testing.T) {
	service, repo, _ := newTestService()

	created, err := service.Create(context.Background(), &Character{
		Name:        "Hulk",
		Description: "Green",
		Biography:   "Gamma accident",
	}, nil)
	require.NoError(t, err)

	// Omitted fields arrive as zero values and blank their columns.
	updated, err := service.Update(context.Background(), &Character{
		ID:   created.ID,
		Name: "Hulk (Worldbreaker)",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Hulk (Worldbreaker)", updated.Name)
	assert.Empty(t, updated.Description)
	assert.Empty(t, updated.Biography)
	assert.Empty(t, repo.characters[created.ID].Description)
}

func TestUpdateKeepsPortraitWithoutNewUpload(t *testing.T) {
	service, _, _ := newTestService()

	upload := &media.Upload{Filename: "hulk.png", Content: strings.NewReader("img")}
	created, err := service.Create(context.Background(), &Character{Name: "Hulk"}, upload)
	require.NoError(t, err)
	require.NotEmpty(t, created.PortraitFile)

	updated, err := service.Update(context.Background(), &Character{
		ID:   created.ID,
		Name: "Hulk",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, created.PortraitFile, updated.PortraitFile)
}

func TestUpdateReplacesPortraitAndRemovesOldFile(t *testing.T) {
	service, _, files := newTestService()

	first := &media.Upload{Filename: "old.png", Content: strings.NewReader("a")}
	created, err := service.Create(context.Background(), &Character{Name: "Hulk"}, first)
	require.NoError(t, err)
	oldFile := created.PortraitFile

	second := &media.Upload{Filename: "new.png", Content: strings.NewReader("b")}
	updated, err := service.Update(context.Background(), &Character{
		ID:   created.ID,
		Name: "Hulk",
	}, second)
	require.NoError(t, err)

	assert.NotEqual(t, oldFile, updated.PortraitFile)
	assert.Contains(t, files.removed, oldFile)
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Update(context.Background(), &Character{ID: 42, Name: "Nobody"}, nil)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
	assert.Contains(t, appError.Message, "42")
}

// # Delete

func TestDeleteRemovesRowAndMedia(t *testing.T) {
	service, repo, files := newTestService()

	created, err := service.Create(context.Background(), &Character{Name: "Hulk"}, nil)
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	assert.NotContains(t, repo.characters, created.ID)
	assert.Contains(t, files.removedAll, created.ID)
}

func TestDeleteUnknownIDSucceeds(t *testing.T) {
	service, _, files := newTestService()

	require.NoError(t, service.Delete(context.Background(), 404))

	// No media cleanup for rows that never existed.
	assert.Empty(t, files.removedAll)
}

// # Associations

func TestLinkComicRequiresBothEndpoints(t *testing.T) {
	service, repo, _ := newTestService(10)

	created, err := service.Create(context.Background(), &Character{Name: "Hulk"}, nil)
	require.NoError(t, err)

	// Known character, known comic.
	require.NoError(t, service.LinkComic(context.Background(), created.ID, 10))
	assert.True(t, repo.links[linkKey(created.ID, 10)])

	// Unknown comic.
	err = service.LinkComic(context.Background(), created.ID, 99)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "BAD_REQUEST", appError.Code)

	// Unknown character.
	err = service.LinkComic(context.Background(), 77, 10)
	appError = apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "BAD_REQUEST", appError.Code)
}

func TestUnlinkComicIsLenientAboutAbsentPairs(t *testing.T) {
	service, _, _ := newTestService(10)

	created, err := service.Create(context.Background(), &Character{Name: "Hulk"}, nil)
	require.NoError(t, err)

	// Pair never linked: still succeeds.
	require.NoError(t, service.UnlinkComic(context.Background(), created.ID, 10))
}

func TestUnlinkComicUnknownCharacterIsBadRequest(t *testing.T) {
	service, _, _ := newTestService(10)

	// Same failure mode as LinkComic: a missing endpoint is a client error.
	err := service.UnlinkComic(context.Background(), 77, 10)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "BAD_REQUEST", appError.Code)
	assert.Equal(t, 400, appError.HTTPStatus)
}

func TestListComicsUnknownCharacterIsNotFound(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.ListComics(context.Background(), 5)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
	assert.Contains(t, appError.Message, "5")
}

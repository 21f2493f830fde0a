// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
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
	nextID int64
	comics map[int64]*Comic
	pages  map[string]*Page
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID: 1,
		comics: make(map[int64]*Comic),
		pages:  make(map[string]*Page),
	}
}

func (f *fakeRepository) List(_ context.Context, _ string, limit, offset int) ([]*Preview, int, error) {
	var previews []*Preview
	for _, c := range f.comics {
		previews = append(previews, &Preview{ID: c.ID, Title: c.Title})
	}
	return previews, len(f.comics), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*Comic, error) {
	stored, ok := f.comics[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *stored
	clone.ResolveMedia()
	return &clone, nil
}

func (f *fakeRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.comics[id]
	return ok, nil
}

func (f *fakeRepository) Create(_ context.Context, comic *Comic) error {
	comic.ID = f.nextID
	f.nextID++
	clone := *comic
	f.comics[comic.ID] = &clone
	return nil
}

func (f *fakeRepository) Update(_ context.Context, comic *Comic) error {
	if _, ok := f.comics[comic.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *comic
	f.comics[comic.ID] = &clone
	return nil
}

func (f *fakeRepository) SetCover(_ context.Context, id int64, filename string) error {
	if stored, ok := f.comics[id]; ok {
		stored.CoverFile = filename
	}
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.comics[id]; !ok {
		return false, nil
	}
	delete(f.comics, id)
	for file, page := range f.pages {
		if page.ComicsID == id {
			delete(f.pages, file)
		}
	}
	return true, nil
}

func (f *fakeRepository) ListCharacters(_ context.Context, comicsID int64) ([]*CharacterPreview, error) {
	return nil, nil
}

// PageByOrdinal mirrors the SQL ordering: order ascending, filename tiebreak.
func (f *fakeRepository) PageByOrdinal(_ context.Context, comicsID int64, ordinal int) (*Page, error) {
	if ordinal < 1 {
		return nil, nil
	}

	var pages []*Page
	for _, page := range f.pages {
		if page.ComicsID == comicsID {
			pages = append(pages, page)
		}
	}
	sort.Slice(pages, func(i, j int) bool {
		if pages[i].Order != pages[j].Order {
			return pages[i].Order < pages[j].Order
		}
		return pages[i].PathFile < pages[j].PathFile
	})

	if ordinal > len(pages) {
		return nil, nil
	}
	return pages[ordinal-1], nil
}

func (f *fakeRepository) CreatePage(_ context.Context, page *Page) error {
	clone := *page
	f.pages[page.PathFile] = &clone
	return nil
}

func (f *fakeRepository) FindPageByFile(_ context.Context, filename string) (*Page, error) {
	page, ok := f.pages[filename]
	if !ok {
		return nil, nil
	}
	return page, nil
}

func (f *fakeRepository) DeletePage(_ context.Context, filename string) error {
	delete(f.pages, filename)
	return nil
}

// fakeMediaStore records save/remove calls without touching the filesystem.
type fakeMediaStore struct {
	removed     []string
	removedAll  []int64
	saveCounter int
}

func (f *fakeMediaStore) Save(_ context.Context, dir string, ownerID int64, upload *media.Upload) (string, error) {
	f.saveCounter++
	return fmt.Sprintf("stored%d_%s", f.saveCounter, upload.Filename), nil
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
func newTestService() (*Service, *fakeRepository, *fakeMediaStore) {
	repo := newFakeRepository()
	files := &fakeMediaStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, files, logger), repo, files
}

func upload(name string) *media.Upload {
	return &media.Upload{Filename: name, Content: strings.NewReader("img")}
}

// # Create / Update

func TestCreateAssignsServerIdentity(t *testing.T) {
	service, repo, _ := newTestService()

	created, err := service.Create(context.Background(), &Comic{
		ID:    999, // client-supplied ids are discarded
		Title: "Incredible Hulk #181",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Contains(t, repo.comics, int64(1))
}

func TestCreateRequiresTitle(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Create(context.Background(), &Comic{Title: ""}, nil)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestCreateStoresCoverBeforeReturning(t *testing.T) {
	service, repo, _ := newTestService()

	created, err := service.Create(context.Background(), &Comic{Title: "X-Men #1"}, upload("cover.png"))
	require.NoError(t, err)

	assert.NotEmpty(t, created.CoverFile)
	assert.Equal(t, created.CoverFile, repo.comics[created.ID].CoverFile)
	assert.Equal(t, "/comics/1/"+created.CoverFile, created.Cover)
}

func TestUpdateKeepsOldCoverFileOnDisk(t *testing.T) {
	service, _, files := newTestService()

	created, err := service.Create(context.Background(), &Comic{Title: "X-Men #1"}, upload("old.png"))
	require.NoError(t, err)
	oldFile := created.CoverFile

	updated, err := service.Update(context.Background(), &Comic{
		ID:    created.ID,
		Title: "X-Men #1 (Reprint)",
	}, upload("new.png"))
	require.NoError(t, err)

	assert.NotEqual(t, oldFile, updated.CoverFile)
	// Replaced covers stay on disk; only whole-comic deletion cleans up.
	assert.NotContains(t, files.removed, oldFile)
}

func TestUpdateBlanksOmittedFields(t *testing.T) {
	service, repo, _ := newTestService()

	created, err := service.Create(context.Background(), &Comic{
		Title:   "X-Men #1",
		Release: "1-09-1963",
	}, nil)
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), &Comic{
		ID:    created.ID,
		Title: "X-Men #1",
	}, nil)
	require.NoError(t, err)

	assert.Empty(t, updated.Release)
	assert.Empty(t, repo.comics[created.ID].Release)
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Update(context.Background(), &Comic{ID: 42, Title: "Nothing"}, nil)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
	assert.Contains(t, appError.Message, "42")
}

// # Get / Page Reader

func TestGetWithoutOrdinalReturnsComic(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.Create(context.Background(), &Comic{Title: "X-Men #1"}, nil)
	require.NoError(t, err)

	view, err := service.Get(context.Background(), created.ID, 0)
	require.NoError(t, err)

	require.NotNil(t, view.Comic)
	assert.Nil(t, view.Page)
	assert.Equal(t, created.ID, view.Comic.ID)
}

func TestGetResolvesPageOrdinalsInReadingOrder(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.Create(context.Background(), &Comic{Title: "X-Men #1"}, nil)
	require.NoError(t, err)

	// Batch lands on order slots 5 and 6.
	err = service.AddPages(context.Background(), created.ID, 5, []*media.Upload{
		upload("page-a.png"),
		upload("page-b.png"),
	})
	require.NoError(t, err)

	first, err := service.Get(context.Background(), created.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, first.Page)
	assert.Contains(t, first.Page.Image, "page-a.png")
	assert.Equal(t, created.Title, first.Page.Title)

	second, err := service.Get(context.Background(), created.ID, 2)
	require.NoError(t, err)
	require.NotNil(t, second.Page)
	assert.Contains(t, second.Page.Image, "page-b.png")
}

func TestGetOutOfRangeOrdinalFallsBackToComic(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.Create(context.Background(), &Comic{Title: "X-Men #1"}, nil)
	require.NoError(t, err)
	require.NoError(t, service.AddPages(context.Background(), created.ID, 0, []*media.Upload{
		upload("page.png"),
	}))

	view, err := service.Get(context.Background(), created.ID, 99)
	require.NoError(t, err)

	require.NotNil(t, view.Comic)
	assert.Nil(t, view.Page)
}

func TestGetUnknownComicIsNotFound(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Get(context.Background(), 7, 0)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
	assert.Contains(t, appError.Message, "7")
}

// # Pages

func TestAddPagesAssignsSequentialOrder(t *testing.T) {
	service, repo, _ := newTestService()

	created, err := service.Create(context.Background(), &Comic{Title: "X-Men #1"}, nil)
	require.NoError(t, err)

	err = service.AddPages(context.Background(), created.ID, 10, []*media.Upload{
		upload("a.png"),
		upload("b.png"),
		upload("c.png"),
	})
	require.NoError(t, err)

	var orders []int64
	for _, page := range repo.pages {
		assert.Equal(t, created.ID, page.ComicsID)
		orders = append(orders, page.Order)
	}
	assert.ElementsMatch(t, []int64{10, 11, 12}, orders)
}

func TestAddPagesUnknownComicIsNotFound(t *testing.T) {
	service, _, _ := newTestService()

	err := service.AddPages(context.Background(), 42, 0, []*media.Upload{upload("a.png")})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestDeletePageRemovesRowAndFile(t *testing.T) {
	service, repo, files := newTestService()

	created, err := service.Create(context.Background(), &Comic{Title: "X-Men #1"}, nil)
	require.NoError(t, err)
	require.NoError(t, service.AddPages(context.Background(), created.ID, 0, []*media.Upload{
		upload("a.png"),
	}))

	var stored string
	for file := range repo.pages {
		stored = file
	}

	require.NoError(t, service.DeletePage(context.Background(), stored))

	assert.Empty(t, repo.pages)
	assert.Contains(t, files.removed, stored)
}

func TestDeletePageUnknownFilenameSucceeds(t *testing.T) {
	service, _, files := newTestService()

	require.NoError(t, service.DeletePage(context.Background(), "never-stored.png"))

	assert.Empty(t, files.removed)
}

// # Delete / Associations

func TestDeleteRemovesComicPagesAndMedia(t *testing.T) {
	service, repo, files := newTestService()

	created, err := service.Create(context.Background(), &Comic{Title: "X-Men #1"}, nil)
	require.NoError(t, err)
	require.NoError(t, service.AddPages(context.Background(), created.ID, 0, []*media.Upload{
		upload("a.png"),
		upload("b.png"),
	}))

	require.NoError(t, service.Delete(context.Background(), created.ID))

	assert.NotContains(t, repo.comics, created.ID)
	assert.Empty(t, repo.pages)
	assert.Contains(t, files.removedAll, created.ID)
}

func TestDeleteUnknownIDSucceeds(t *testing.T) {
	service, _, files := newTestService()

	require.NoError(t, service.Delete(context.Background(), 404))
	assert.Empty(t, files.removedAll)
}

func TestCharacterLinkingIsNotImplemented(t *testing.T) {
	service, _, _ := newTestService()

	err := service.LinkCharacter(context.Background(), 1, 2)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_IMPLEMENTED", appError.Code)

	err = service.UnlinkCharacter(context.Background(), 1, 2)
	appError = apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_IMPLEMENTED", appError.Code)
}

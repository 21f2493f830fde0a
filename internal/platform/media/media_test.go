// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/marvelis/internal/platform/constants"
	"github.com/taibuivan/marvelis/internal/platform/media"
)

func newTestStore(t *testing.T) (*media.FileStore, string) {
	t.Helper()
	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return media.NewFileStore(root, logger), root
}

/*
TestFileStore_Save verifies the on-disk layout {root}/character/{id}/{uuid}_{name}
and that the stored content matches the upload.
*/
func TestFileStore_Save(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	stored, err := store.Save(ctx, constants.CharacterDir, 7, &media.Upload{
		Filename: "portrait.png",
		Content:  strings.NewReader("image-bytes"),
	})
	require.NoError(t, err)

	// Name is "{uuid}_{original}".
	assert.True(t, strings.HasSuffix(stored, "_portrait.png"))
	assert.Len(t, strings.SplitN(stored, "_", 2)[0], 36)

	content, err := os.ReadFile(filepath.Join(root, "character", "7", stored))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(content))
}

/*
TestFileStore_Save_UniqueNames ensures two uploads of the same filename never collide.
*/
func TestFileStore_Save_UniqueNames(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, constants.ComicsDir, 1, &media.Upload{Filename: "page.jpg", Content: strings.NewReader("a")})
	require.NoError(t, err)

	second, err := store.Save(ctx, constants.ComicsDir, 1, &media.Upload{Filename: "page.jpg", Content: strings.NewReader("b")})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestFileStore_Remove covers single-file deletion and its lenient no-op cases.
*/
func TestFileStore_Remove(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	stored, err := store.Save(ctx, constants.CharacterDir, 3, &media.Upload{
		Filename: "old.png",
		Content:  strings.NewReader("x"),
	})
	require.NoError(t, err)

	assert.True(t, store.Remove(ctx, constants.CharacterDir, 3, stored))
	assert.NoFileExists(t, filepath.Join(root, "character", "3", stored))

	// Missing file and empty filename are both success.
	assert.True(t, store.Remove(ctx, constants.CharacterDir, 3, stored))
	assert.True(t, store.Remove(ctx, constants.CharacterDir, 3, ""))
}

/*
TestFileStore_RemoveAll verifies recursive directory deletion, the cleanup
path taken when a comic with pages is deleted.
*/
func TestFileStore_RemoveAll(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"p1.jpg", "p2.jpg", "p3.jpg"} {
		_, err := store.Save(ctx, constants.ComicsDir, 9, &media.Upload{Filename: name, Content: strings.NewReader(name)})
		require.NoError(t, err)
	}

	assert.True(t, store.RemoveAll(ctx, constants.ComicsDir, 9))
	assert.NoDirExists(t, filepath.Join(root, "comics", "9"))

	// Idempotent: removing an absent directory still succeeds.
	assert.True(t, store.RemoveAll(ctx, constants.ComicsDir, 9))
}

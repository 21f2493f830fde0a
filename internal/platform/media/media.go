// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media provides the filesystem-backed blob store for catalog images.

Files live under a configurable root, keyed by entity directory and owner id:

	{root}/character/{id}/{uuid}_{original-filename}
	{root}/comics/{id}/{uuid}_{original-filename}

Core Responsibilities:

  - Uniqueness: Every stored file gets a collision-resistant uuid-prefixed name.
  - Best-Effort Deletes: Removal failures are logged, never propagated. The
    catalog treats deletion as advisory; a stale file on disk is preferable to
    a failed API call.
  - Isolation: Callers never see absolute paths, only stored filenames and
    display paths relative to the media root.
*/
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Path builds the client-facing display path for a stored file:
// "{dir}/{ownerID}/{filename}". An empty filename yields the bare owner
// prefix, which is the canonical "no image" value in API responses.
func Path(dir string, ownerID int64, filename string) string {
	return fmt.Sprintf("%s/%d/%s", dir, ownerID, filename)
}

// Upload is an in-flight file received from a client, not yet persisted.
type Upload struct {
	// Filename is the original client-side filename.
	Filename string
	// Content is the file body. The caller owns closing the underlying reader.
	Content io.Reader
}

// FileStore persists uploads on the local filesystem.
type FileStore struct {
	root   string
	logger *slog.Logger
}

// NewFileStore constructs a [FileStore] rooted at the given directory.
func NewFileStore(root string, logger *slog.Logger) *FileStore {
	return &FileStore{root: root, logger: logger}
}

/*
Save writes an upload under {root}{dir}/{ownerID}/ with a unique name.

The directory chain is created on demand. The returned stored name is
"{uuid}_{original-filename}"; callers persist it on the owning record.

Save errors propagate: create/update operations must not report success
for a record whose image never reached the disk.
*/
func (store *FileStore) Save(ctx context.Context, dir string, ownerID int64, upload *Upload) (string, error) {
	targetDir := store.ownerDir(dir, ownerID)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("media: failed to create directory %s: %w", targetDir, err)
	}

	storedName := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(upload.Filename))
	targetPath := filepath.Join(targetDir, storedName)

	file, err := os.Create(targetPath)
	if err != nil {
		return "", fmt.Errorf("media: failed to create file %s: %w", targetPath, err)
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(file, upload.Content); err != nil {
		// Half-written files are useless; drop the partial before reporting.
		_ = os.Remove(targetPath)
		return "", fmt.Errorf("media: failed to write file %s: %w", targetPath, err)
	}

	store.logger.InfoContext(ctx, "media_file_stored",
		slog.String("dir", dir),
		slog.Int64("owner_id", ownerID),
		slog.String("file", storedName),
	)

	return storedName, nil
}

/*
Remove deletes a single stored file, best-effort.

Returns false when the delete raised an error; a missing file counts as
success. Failures are logged as warnings and never surfaced to callers.
*/
func (store *FileStore) Remove(ctx context.Context, dir string, ownerID int64, filename string) bool {
	if filename == "" {
		return true
	}

	targetPath := filepath.Join(store.ownerDir(dir, ownerID), filepath.Base(filename))
	if err := os.Remove(targetPath); err != nil && !os.IsNotExist(err) {
		store.logger.WarnContext(ctx, "media_file_remove_failed",
			slog.String("path", targetPath),
			slog.Any("error", err),
		)
		return false
	}
	return true
}

/*
RemoveAll recursively deletes an owner's entire media directory, best-effort.

Used when a character or comic is deleted: page images and covers disappear
with the directory rather than file-by-file.
*/
func (store *FileStore) RemoveAll(ctx context.Context, dir string, ownerID int64) bool {
	targetDir := store.ownerDir(dir, ownerID)
	if err := os.RemoveAll(targetDir); err != nil {
		store.logger.WarnContext(ctx, "media_dir_remove_failed",
			slog.String("path", targetDir),
			slog.Any("error", err),
		)
		return false
	}

	store.logger.InfoContext(ctx, "media_dir_removed",
		slog.String("dir", dir),
		slog.Int64("owner_id", ownerID),
	)
	return true
}

// ownerDir resolves the on-disk directory for an entity's files.
func (store *FileStore) ownerDir(dir string, ownerID int64) string {
	return filepath.Join(store.root, filepath.FromSlash(dir), fmt.Sprintf("%d", ownerID))
}

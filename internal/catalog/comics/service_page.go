// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comics

import (
	"context"
	"log/slog"

	"github.com/taibuivan/marvelis/internal/platform/apperr"
	"github.com/taibuivan/marvelis/internal/platform/constants"
	"github.com/taibuivan/marvelis/internal/platform/media"
)

// # Page Operations

/*
AddPages stores a batch of page images and appends them to the comic's
reading order.

Files are processed in arrival order: the i-th file (0-based) receives
order baseOrder + i, so the first file of the batch lands exactly on
baseOrder. Each image is written to the blob store before its row is
inserted; a mid-batch failure leaves the earlier pages committed and
readable.

Parameters:
  - ctx: context.Context
  - comicsID: int64 (the parent comic; unknown ids yield NOT_FOUND)
  - baseOrder: int64 (reading-order slot of the first file)
  - uploads: []*media.Upload (the batch, possibly empty)

Returns:
  - error: NOT_FOUND for an unknown comic, storage or media faults otherwise
*/
func (service *Service) AddPages(ctx context.Context, comicsID, baseOrder int64, uploads []*media.Upload) error {
	exists, err := service.repo.Exists(ctx, comicsID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFoundID("Comics", comicsID)
	}

	for i, upload := range uploads {
		stored, err := service.files.Save(ctx, constants.ComicsDir, comicsID, upload)
		if err != nil {
			return err
		}

		page := &Page{
			PathFile: stored,
			Order:    baseOrder + int64(i),
			ComicsID: comicsID,
		}
		if err := service.repo.CreatePage(ctx, page); err != nil {
			return err
		}
	}

	service.logger.InfoContext(ctx, "comic_pages_added",
		slog.Int64("comics_id", comicsID),
		slog.Int64("base_order", baseOrder),
		slog.Int("count", len(uploads)),
	)

	return nil
}

/*
DeletePage removes a single page by its stored filename.

The page is looked up to find its owning comic for file cleanup; an unknown
filename succeeds without effect. File removal is best-effort and never
fails the call.
*/
func (service *Service) DeletePage(ctx context.Context, filename string) error {
	page, err := service.repo.FindPageByFile(ctx, filename)
	if err != nil {
		return err
	}
	if page == nil {
		return nil
	}

	service.files.Remove(ctx, constants.ComicsDir, page.ComicsID, page.PathFile)

	if err := service.repo.DeletePage(ctx, page.PathFile); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "comic_page_deleted",
		slog.Int64("comics_id", page.ComicsID),
		slog.String("file", page.PathFile),
	)
	return nil
}

package scaninbox

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/quesadillascandy/candy-backend/internal/extract"
	"github.com/quesadillascandy/candy-backend/internal/repository"
	"github.com/quesadillascandy/candy-backend/internal/storage"
	"github.com/rs/zerolog/log"
)

// Inbox polls a Drive folder for dropped invoice scans, archives each file to
// object storage, and runs extractable files through the invoice extractor.
// The resulting drafts are written back to the archive for review; nothing in
// this path ever writes to the stock ledger directly.
type Inbox struct {
	drive     *DriveClient
	extractor extract.Extractor
	archive   storage.ObjectStorage
	inventory repository.InventoryRepository
	scans     repository.ScanRepository

	folder string
}

func NewInbox(
	drive *DriveClient,
	extractor extract.Extractor,
	archive storage.ObjectStorage,
	inventory repository.InventoryRepository,
	scans repository.ScanRepository,
	folder string,
) *Inbox {
	return &Inbox{
		drive:     drive,
		extractor: extractor,
		archive:   archive,
		inventory: inventory,
		scans:     scans,
		folder:    folder,
	}
}

// Poll processes every unseen file currently in the inbox folder. Errors on
// individual files are logged and skipped so one bad scan cannot wedge the
// whole inbox.
func (i *Inbox) Poll(ctx context.Context) error {
	folderID := i.folder
	if strings.Contains(folderID, "/") {
		resolved, err := i.drive.FindFolderByPath(ctx, folderID)
		if err != nil {
			return err
		}
		folderID = resolved
	}

	files, err := i.drive.ListFiles(ctx, folderID)
	if err != nil {
		return err
	}

	for _, f := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		seen, err := i.scans.IsProcessed(ctx, f.ID)
		if err != nil {
			return err
		}
		if seen {
			continue
		}

		if err := i.processFile(ctx, f); err != nil {
			log.Warn().Err(err).Str("file", f.Name).Msg("scan inbox: file skipped")
			continue
		}
		if err := i.scans.MarkProcessed(ctx, f.ID, f.Name); err != nil {
			return err
		}
	}

	return nil
}

func (i *Inbox) processFile(ctx context.Context, f InboxFile) error {
	data, err := i.drive.DownloadFile(ctx, f.ID)
	if err != nil {
		return err
	}

	day := time.Now().Format("2006-01-02")
	scanKey := path.Join("scans", day, f.Name)
	if err := i.archive.UploadObject(ctx, scanKey, data, f.MimeType); err != nil {
		return err
	}

	// Image scans and OCR text exports go through extraction. Anything else
	// (PDFs, spreadsheets) is archived and left for manual entry.
	doc, ok := documentFor(f, data)
	if !ok {
		log.Info().Str("file", f.Name).Str("key", scanKey).Msg("scan inbox: archived scan")
		return nil
	}

	items, err := i.inventory.ListItems(ctx)
	if err != nil {
		return err
	}
	known := make([]extract.KnownItem, 0, len(items))
	for _, item := range items {
		if item.Active {
			known = append(known, extract.KnownItem{ID: item.ID, Name: item.Name, Unit: item.Unit})
		}
	}

	draft, err := i.extractor.ParseInvoice(ctx, doc, known)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("scan inbox: encode draft: %w", err)
	}

	draftKey := path.Join("drafts", day, strings.TrimSuffix(f.Name, path.Ext(f.Name))+".json")
	if err := i.archive.UploadObject(ctx, draftKey, payload, "application/json"); err != nil {
		return err
	}

	log.Info().
		Str("file", f.Name).
		Str("draft", draftKey).
		Int("lines", len(draft.Lines)).
		Msg("scan inbox: invoice draft extracted")

	return nil
}

var extractableImages = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

func documentFor(f InboxFile, data []byte) (extract.Document, bool) {
	if _, ok := extractableImages[f.MimeType]; ok {
		return extract.Document{Image: data, MIME: f.MimeType}, true
	}
	if strings.HasPrefix(f.MimeType, "text/") || strings.EqualFold(path.Ext(f.Name), ".txt") {
		return extract.Document{Text: string(data)}, true
	}
	return extract.Document{}, false
}

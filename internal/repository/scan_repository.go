package repository

import "context"

// ScanRepository remembers which inbox files were already ingested so a
// restart does not re-archive or re-extract them.
type ScanRepository interface {
	IsProcessed(ctx context.Context, fileID string) (bool, error)
	MarkProcessed(ctx context.Context, fileID, name string) error
}

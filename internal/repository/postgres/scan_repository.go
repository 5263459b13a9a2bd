package postgres

import (
	"context"

	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/quesadillascandy/candy-backend/internal/repository"
)

type scanRepository struct {
	db *DB
}

// NewScanRepository builds the postgres-backed scan inbox dedup store.
func NewScanRepository(db *DB) repository.ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) IsProcessed(ctx context.Context, fileID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM scan_files WHERE file_id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, fileID); err != nil {
		return false, domain.WrapStorage("check scan file", err)
	}
	return exists, nil
}

func (r *scanRepository) MarkProcessed(ctx context.Context, fileID, name string) error {
	query := `
		INSERT INTO scan_files (file_id, name, processed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (file_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, fileID, name); err != nil {
		return domain.WrapStorage("mark scan file", err)
	}
	return nil
}

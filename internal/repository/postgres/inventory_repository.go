package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/quesadillascandy/candy-backend/internal/repository"
)

type inventoryRepository struct {
	db *DB
}

// NewInventoryRepository builds the postgres-backed inventory store.
func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

const itemColumns = `
	id, name, type, category, unit, stock_current, stock_min, stock_max,
	cost_avg, last_price, location, active, created_at, updated_at
`

const batchColumns = `
	id, item_id, batch_number, quantity_initial, quantity_current,
	expiry_date, cost_unit, created_at
`

func (r *inventoryRepository) GetItem(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	if err := r.db.GetContext(ctx, &item, query, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, domain.WrapStorage("get item", err)
	}

	batchQuery := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE item_id = $1 ORDER BY expiry_date, created_at`
	if err := r.db.SelectContext(ctx, &item.Batches, batchQuery, itemID); err != nil {
		return nil, domain.WrapStorage("get item batches", err)
	}

	return &item, nil
}

func (r *inventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE active ORDER BY name`
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, domain.WrapStorage("list items", err)
	}

	var batches []domain.InventoryBatch
	batchQuery := `SELECT ` + batchColumns + ` FROM inventory_batches ORDER BY expiry_date, created_at`
	if err := r.db.SelectContext(ctx, &batches, batchQuery); err != nil {
		return nil, domain.WrapStorage("list batches", err)
	}

	byItem := make(map[string][]domain.InventoryBatch, len(items))
	for _, b := range batches {
		byItem[b.ItemID] = append(byItem[b.ItemID], b)
	}
	for i := range items {
		items[i].Batches = byItem[items[i].ID]
	}

	return items, nil
}

func (r *inventoryRepository) ListMovements(ctx context.Context, itemID string, limit int) ([]domain.InventoryMovement, error) {
	query := `
		SELECT id, item_id, kind, quantity, unit_price, total_cost, reason,
		       user_id, user_name, batch_id, stock_after, created_at
		FROM inventory_movements
		WHERE item_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	// limit <= 0 means the full history (kardex replay needs every row).
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}

	var movements []domain.InventoryMovement
	if err := r.db.SelectContext(ctx, &movements, query, itemID, limitArg); err != nil {
		return nil, domain.WrapStorage("list movements", err)
	}

	return movements, nil
}

func (r *inventoryRepository) Atomic(ctx context.Context, fn func(tx repository.InventoryTx) error) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		return fn(&inventoryTx{tx: tx})
	})
}

type inventoryTx struct {
	tx *sqlx.Tx
}

func (t *inventoryTx) GetItemForUpdate(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	if err := t.tx.GetContext(ctx, &item, query, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, domain.WrapStorage("lock item", err)
	}

	batchQuery := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE item_id = $1 ORDER BY expiry_date, created_at`
	if err := t.tx.SelectContext(ctx, &item.Batches, batchQuery, itemID); err != nil {
		return nil, domain.WrapStorage("lock item batches", err)
	}

	return &item, nil
}

// UpdateItemStock is a conditional update: it only applies if stock_current
// still holds the value the caller read, so two racing writers cannot both
// pass a stale sufficient-stock check.
func (t *inventoryTx) UpdateItemStock(ctx context.Context, itemID string, stock, costAvg, lastPrice, expectedStock float64) error {
	query := `
		UPDATE inventory_items
		SET stock_current = $2, cost_avg = $3, last_price = $4, updated_at = now()
		WHERE id = $1 AND stock_current = $5
	`

	res, err := t.tx.ExecContext(ctx, query, itemID, stock, costAvg, lastPrice, expectedStock)
	if err != nil {
		return domain.WrapStorage("update item stock", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapStorage("update item stock", err)
	}
	if rows == 0 {
		return domain.ErrConflict
	}

	return nil
}

func (t *inventoryTx) InsertBatch(ctx context.Context, batch *domain.InventoryBatch) error {
	query := `
		INSERT INTO inventory_batches (id, item_id, batch_number, quantity_initial, quantity_current, expiry_date, cost_unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := t.tx.ExecContext(ctx, query,
		batch.ID, batch.ItemID, batch.BatchNumber, batch.QuantityInitial,
		batch.QuantityCurrent, batch.ExpiryDate, batch.CostUnit, batch.CreatedAt)
	if err != nil {
		return domain.WrapStorage("insert batch", err)
	}

	return nil
}

func (t *inventoryTx) UpdateBatchQuantity(ctx context.Context, batchID string, quantity float64) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE inventory_batches SET quantity_current = $2 WHERE id = $1`, batchID, quantity)
	if err != nil {
		return domain.WrapStorage("update batch quantity", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapStorage("update batch quantity", err)
	}
	if rows == 0 {
		return domain.WrapStorage("update batch quantity", fmt.Errorf("batch %s not found", batchID))
	}

	return nil
}

func (t *inventoryTx) InsertMovement(ctx context.Context, movement *domain.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, item_id, kind, quantity, unit_price, total_cost, reason, user_id, user_name, batch_id, stock_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := t.tx.ExecContext(ctx, query,
		movement.ID, movement.ItemID, movement.Kind, movement.Quantity,
		movement.UnitPrice, movement.TotalCost, movement.Reason,
		movement.UserID, movement.UserName, movement.BatchID,
		movement.StockAfter, movement.CreatedAt)
	if err != nil {
		return domain.WrapStorage("insert movement", err)
	}

	return nil
}

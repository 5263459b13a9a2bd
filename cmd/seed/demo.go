package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/urfave/cli/v2"
)

// runDemoSeeder loads a small self-contained bakery dataset: a handful of raw
// materials with opening batches, one product with its recipe, and an open
// order. Useful for local development and demos.
func runDemoSeeder(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Println("Seeding demo dataset...")

	if err := seedDemoItems(ctx, tx); err != nil {
		return err
	}
	if err := seedDemoRecipe(ctx, tx); err != nil {
		return err
	}
	if err := seedDemoOrder(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Demo dataset seeded successfully!")
	return nil
}

func seedDemoItems(ctx context.Context, tx *sql.Tx) error {
	items := []struct {
		id, name, itemType, category, unit string
		stock, min, max, cost              float64
	}{
		{"flour-000", "Harina de trigo 000", "raw_material", "non_perishable", "kg", 50, 20, 120, 0.85},
		{"sugar-std", "Azucar estandar", "raw_material", "non_perishable", "kg", 30, 10, 80, 0.70},
		{"butter-uns", "Mantequilla sin sal", "raw_material", "perishable", "kg", 12, 5, 30, 6.20},
		{"eggs-med", "Huevo mediano", "raw_material", "perishable", "unit", 180, 60, 400, 0.18},
		{"box-cake", "Caja para torta", "supply", "non_perishable", "unit", 40, 20, 100, 0.55},
	}

	const itemQuery = `
		INSERT INTO inventory_items
			(id, name, type, category, unit, stock_current, stock_min, stock_max, cost_avg, last_price, location, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9, 'main', true)
		ON CONFLICT (id) DO NOTHING`

	for _, it := range items {
		if _, err := tx.ExecContext(ctx, itemQuery,
			it.id, it.name, it.itemType, it.category, it.unit,
			it.stock, it.min, it.max, it.cost,
		); err != nil {
			return fmt.Errorf("failed to insert demo item %s: %w", it.id, err)
		}
	}

	// Opening batches for the perishables so expiry alerts have data.
	const batchQuery = `
		INSERT INTO inventory_batches
			(id, item_id, batch_number, quantity_initial, quantity_current, expiry_date, cost_unit)
		VALUES ($1, $2, $3, $4, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`

	batches := []struct {
		id, itemID, number string
		qty, cost          float64
		expiresInDays      int
	}{
		{"b-butter-1", "butter-uns", "L-DEMO-01", 12, 6.20, 12},
		{"b-eggs-1", "eggs-med", "L-DEMO-02", 180, 0.18, 20},
	}
	for _, b := range batches {
		expiry := time.Now().AddDate(0, 0, b.expiresInDays)
		if _, err := tx.ExecContext(ctx, batchQuery, b.id, b.itemID, b.number, b.qty, expiry, b.cost); err != nil {
			return fmt.Errorf("failed to insert demo batch %s: %w", b.id, err)
		}
	}

	return nil
}

func seedDemoRecipe(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO recipes (id, product_id, name, version, yield, prep_time_minutes, instructions, is_active)
		VALUES ('rec-pound-cake', 'prod-pound-cake', 'Torta basica', 1, 8, 90, 'Cremar, mezclar, hornear 45 min a 170C.', true)
		ON CONFLICT (id) DO NOTHING`); err != nil {
		return fmt.Errorf("failed to insert demo recipe: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO products (id, name, recipe_id)
		VALUES ('prod-pound-cake', 'Torta basica', 'rec-pound-cake')
		ON CONFLICT (id) DO NOTHING`); err != nil {
		return fmt.Errorf("failed to insert demo product: %w", err)
	}

	const ingredientQuery = `
		INSERT INTO recipe_ingredients (id, recipe_id, inventory_item_id, quantity, unit, waste_pct)
		VALUES ($1, 'rec-pound-cake', $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`

	ingredients := []struct {
		id, itemID, unit string
		qty, waste       float64
	}{
		{"ri-flour", "flour-000", "kg", 2.0, 5},
		{"ri-sugar", "sugar-std", "kg", 1.6, 2},
		{"ri-butter", "butter-uns", "kg", 1.6, 0},
		{"ri-eggs", "eggs-med", "unit", 16, 8},
	}
	for _, ing := range ingredients {
		if _, err := tx.ExecContext(ctx, ingredientQuery, ing.id, ing.itemID, ing.qty, ing.unit, ing.waste); err != nil {
			return fmt.Errorf("failed to insert demo ingredient %s: %w", ing.id, err)
		}
	}

	const costQuery = `
		INSERT INTO recipe_costs (id, recipe_id, concept, amount, is_per_unit)
		VALUES ($1, 'rec-pound-cake', $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`

	costs := []struct {
		id, concept string
		amount      float64
		perUnit     bool
	}{
		{"rc-energy", "Horno y energia", 3.50, false},
		{"rc-pack", "Empaque", 0.55, true},
	}
	for _, rc := range costs {
		if _, err := tx.ExecContext(ctx, costQuery, rc.id, rc.concept, rc.amount, rc.perUnit); err != nil {
			return fmt.Errorf("failed to insert demo cost %s: %w", rc.id, err)
		}
	}

	return nil
}

func seedDemoOrder(ctx context.Context, tx *sql.Tx) error {
	delivery := time.Now().AddDate(0, 0, 3)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, user_name, user_role, status, total, notes, delivery_date, source)
		VALUES ('ord-demo-1', 'cust-demo', 'Cafeteria La Plaza', 'wholesale', 'confirmed', 96.00, 'Entrega en la manana', $1, 'app')
		ON CONFLICT (id) DO NOTHING`, delivery); err != nil {
		return fmt.Errorf("failed to insert demo order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, total)
		VALUES ('oi-demo-1', 'ord-demo-1', 'prod-pound-cake', 'Torta basica', 8, 12.00, 96.00)
		ON CONFLICT (id) DO NOTHING`); err != nil {
		return fmt.Errorf("failed to insert demo order item: %w", err)
	}

	return nil
}

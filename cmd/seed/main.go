package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Apply the schema and seed the database",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Apply all SQL files from the migrations directory in order",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "migrations-dir",
						Usage:   "Directory containing .sql migration files",
						Value:   "./migrations",
						EnvVars: []string{"MIGRATIONS_DIR"},
					},
				},
				Action: runMigrations,
			},
			{
				Name:  "catalog",
				Usage: "Seed inventory items and products from CSV files",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing catalog seed data",
						Value:   "./data/seeds/catalog",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
				},
				Action: runCatalogSeeder,
			},
			{
				Name:   "demo",
				Usage:  "Seed a small demo dataset (items, recipe, batches)",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runDemoSeeder,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runMigrations(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	dir := c.String("migrations-dir")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	ctx := context.Background()
	for _, name := range files {
		payload, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		log.Printf("Applying %s\n", name)
		if _, err := db.ExecContext(ctx, string(payload)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}

	log.Println("Migrations applied successfully!")
	return nil
}

func runCatalogSeeder(c *cli.Context) error {
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

	dataDir := c.String("data-dir")
	log.Println("Starting catalog seeding...")

	if err := seedItems(ctx, tx, filepath.Join(dataDir, "items.csv")); err != nil {
		return fmt.Errorf("failed to seed items: %w", err)
	}
	if err := seedProducts(ctx, tx, filepath.Join(dataDir, "products.csv")); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Catalog seeding completed successfully!")
	return nil
}

// seedItems loads inventory items from a CSV with header:
// id,name,type,category,unit,stock_min,stock_max,cost_avg,last_price,location
func seedItems(ctx context.Context, tx *sql.Tx, filePath string) error {
	log.Printf("Seeding inventory_items from %s\n", filePath)

	rows, err := readCSV(filePath)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO inventory_items
			(id, name, type, category, unit, stock_current, stock_min, stock_max, cost_avg, last_price, location, active)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9, $10, true)
		ON CONFLICT (id) DO NOTHING`

	for _, row := range rows {
		if len(row) < 10 {
			return fmt.Errorf("malformed item row: %v", row)
		}
		stockMin, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return fmt.Errorf("bad stock_min in row %v: %w", row, err)
		}
		stockMax, err := strconv.ParseFloat(row[6], 64)
		if err != nil {
			return fmt.Errorf("bad stock_max in row %v: %w", row, err)
		}
		costAvg, err := strconv.ParseFloat(row[7], 64)
		if err != nil {
			return fmt.Errorf("bad cost_avg in row %v: %w", row, err)
		}
		lastPrice, err := strconv.ParseFloat(row[8], 64)
		if err != nil {
			return fmt.Errorf("bad last_price in row %v: %w", row, err)
		}

		if _, err := tx.ExecContext(ctx, query,
			row[0], row[1], row[2], row[3], row[4],
			stockMin, stockMax, costAvg, lastPrice, row[9],
		); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", row[0], err)
		}
	}

	return nil
}

// seedProducts loads sellable products from a CSV with header:
// id,name,recipe_id
func seedProducts(ctx context.Context, tx *sql.Tx, filePath string) error {
	log.Printf("Seeding products from %s\n", filePath)

	rows, err := readCSV(filePath)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO products (id, name, recipe_id)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (id) DO NOTHING`

	for _, row := range rows {
		if len(row) < 3 {
			return fmt.Errorf("malformed product row: %v", row)
		}
		if _, err := tx.ExecContext(ctx, query, row[0], row[1], row[2]); err != nil {
			return fmt.Errorf("failed to insert product %s: %w", row[0], err)
		}
	}

	return nil
}

func readCSV(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

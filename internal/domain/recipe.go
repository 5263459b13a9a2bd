package domain

import "time"

// Product is a sellable good, optionally linked to the recipe that produces it.
type Product struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	RecipeID  *string   `json:"recipe_id,omitempty" db:"recipe_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Recipe is a versioned formula linking a product to its inputs. Yield is the
// number of sellable units one execution of the recipe produces; it is always
// positive for persisted recipes.
type Recipe struct {
	ID              string    `json:"id" db:"id"`
	ProductID       string    `json:"product_id" db:"product_id"`
	Name            string    `json:"name" db:"name"`
	Version         int       `json:"version" db:"version"`
	Yield           float64   `json:"yield" db:"yield"`
	PrepTimeMinutes int       `json:"prep_time_minutes" db:"prep_time_minutes"`
	Instructions    string    `json:"instructions,omitempty" db:"instructions"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	Ingredients []RecipeIngredient `json:"ingredients" db:"-"`
	Costs       []RecipeCost       `json:"costs" db:"-"`
}

// RecipeIngredient is one required input line. Quantity is denominated per
// recipe yield; WastePct (0-100) is expected trim/spillage loss applied
// multiplicatively on top of it.
type RecipeIngredient struct {
	ID                string  `json:"id" db:"id"`
	RecipeID          string  `json:"recipe_id" db:"recipe_id"`
	InventoryItemID   string  `json:"inventory_item_id" db:"inventory_item_id"`
	InventoryItemName string  `json:"inventory_item_name" db:"inventory_item_name"`
	Quantity          float64 `json:"quantity" db:"quantity"`
	Unit              string  `json:"unit" db:"unit"`
	WastePct          float64 `json:"waste_pct" db:"waste_pct"`
}

// WasteMultiplier returns the factor the raw quantity is scaled by.
func (ri RecipeIngredient) WasteMultiplier() float64 {
	return 1 + ri.WastePct/100
}

// RecipeCost is one indirect cost line. When IsPerUnit is false the amount is
// charged once per recipe batch and divided by yield for per-unit figures.
type RecipeCost struct {
	ID        string  `json:"id" db:"id"`
	RecipeID  string  `json:"recipe_id" db:"recipe_id"`
	Concept   string  `json:"concept" db:"concept"`
	Amount    float64 `json:"amount" db:"amount"`
	IsPerUnit bool    `json:"is_per_unit" db:"is_per_unit"`
}

package costing

import "github.com/quesadillascandy/candy-backend/internal/domain"

// IngredientCost is one material line of a cost breakdown, denominated per
// recipe batch.
type IngredientCost struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitCost  float64 `json:"unit_cost"`
	TotalCost float64 `json:"total_cost"`
	WasteCost float64 `json:"waste_cost"`
}

// CostBreakdown is the result of costing one recipe against live valuations.
// Material and fixed totals are per recipe batch; the *PerUnit figures divide
// by yield.
type CostBreakdown struct {
	MaterialCost        float64          `json:"material_cost"`
	FixedCost           float64          `json:"fixed_cost"`
	TotalUnitCost       float64          `json:"total_unit_cost"`
	MaterialCostPerUnit float64          `json:"material_cost_per_unit"`
	FixedCostPerUnit    float64          `json:"fixed_cost_per_unit"`
	Details             []IngredientCost `json:"details"`
}

// RecipeCost prices a recipe from the snapshot's weighted-average costs.
// Ingredients referencing unknown items contribute zero rather than failing;
// a non-positive yield is rejected before it can produce Inf or NaN.
func RecipeCost(recipe *domain.Recipe, idx *StockIndex) (*CostBreakdown, error) {
	if recipe == nil || recipe.Yield <= 0 {
		return nil, domain.ErrInvalidRecipe
	}

	breakdown := &CostBreakdown{
		Details: make([]IngredientCost, 0, len(recipe.Ingredients)),
	}

	for _, ing := range recipe.Ingredients {
		if ing.Quantity < 0 || ing.WastePct < 0 || ing.WastePct > 100 {
			return nil, domain.ErrInvalidRecipe
		}

		unitCost := idx.CostOf(ing.InventoryItemID)
		total := ing.Quantity * unitCost * ing.WasteMultiplier()

		breakdown.MaterialCost += total
		breakdown.Details = append(breakdown.Details, IngredientCost{
			ItemID:    ing.InventoryItemID,
			Name:      ing.InventoryItemName,
			Quantity:  ing.Quantity,
			Unit:      ing.Unit,
			UnitCost:  unitCost,
			TotalCost: total,
			WasteCost: total - ing.Quantity*unitCost,
		})
	}

	for _, cost := range recipe.Costs {
		if cost.IsPerUnit {
			breakdown.FixedCost += cost.Amount
		} else {
			breakdown.FixedCost += cost.Amount / recipe.Yield
		}
	}

	breakdown.TotalUnitCost = (breakdown.MaterialCost + breakdown.FixedCost) / recipe.Yield
	breakdown.MaterialCostPerUnit = breakdown.MaterialCost / recipe.Yield
	breakdown.FixedCostPerUnit = breakdown.FixedCost / recipe.Yield

	return breakdown, nil
}

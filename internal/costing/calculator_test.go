package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

func snapshot() *StockIndex {
	return NewStockIndex([]domain.InventoryItem{
		{ID: "flour", Name: "Wheat flour", Unit: "kg", StockCurrent: 100, CostAvg: 0.80},
		{ID: "sugar", Name: "Sugar", Unit: "kg", StockCurrent: 40, CostAvg: 0.70},
	})
}

func breadRecipe() *domain.Recipe {
	return &domain.Recipe{
		ID:        "rec-bread",
		ProductID: "prod-bread",
		Name:      "White bread",
		Yield:     1,
		IsActive:  true,
		Ingredients: []domain.RecipeIngredient{
			{InventoryItemID: "flour", InventoryItemName: "Wheat flour", Quantity: 0.15, Unit: "kg", WastePct: 2},
		},
	}
}

func TestRecipeCostMaterialWithWaste(t *testing.T) {
	breakdown, err := RecipeCost(breadRecipe(), snapshot())
	require.NoError(t, err)

	// 0.15 kg at 0.80 with 2% waste.
	assert.InDelta(t, 0.1224, breakdown.MaterialCost, 1e-9)
	assert.InDelta(t, 0.1224, breakdown.TotalUnitCost, 1e-9)

	require.Len(t, breakdown.Details, 1)
	detail := breakdown.Details[0]
	assert.Equal(t, "flour", detail.ItemID)
	assert.InDelta(t, 0.1224, detail.TotalCost, 1e-9)
	assert.InDelta(t, 0.0024, detail.WasteCost, 1e-9)
}

func TestRecipeCostFixedCosts(t *testing.T) {
	recipe := breadRecipe()
	recipe.Yield = 10
	recipe.Ingredients = []domain.RecipeIngredient{
		{InventoryItemID: "flour", Quantity: 1.5, Unit: "kg", WastePct: 0},
	}
	recipe.Costs = []domain.RecipeCost{
		{Concept: "Oven energy", Amount: 2.0, IsPerUnit: false},
		{Concept: "Wrapper", Amount: 0.10, IsPerUnit: true},
	}

	breakdown, err := RecipeCost(recipe, snapshot())
	require.NoError(t, err)

	// Material: 1.5 * 0.80 = 1.20 per batch.
	assert.InDelta(t, 1.20, breakdown.MaterialCost, 1e-9)
	// Fixed: 2.0 per batch becomes 0.20, plus the per-unit 0.10.
	assert.InDelta(t, 0.30, breakdown.FixedCost, 1e-9)
	assert.InDelta(t, (1.20+0.30)/10, breakdown.TotalUnitCost, 1e-9)
	assert.InDelta(t, 0.12, breakdown.MaterialCostPerUnit, 1e-9)
	assert.InDelta(t, 0.03, breakdown.FixedCostPerUnit, 1e-9)
}

func TestRecipeCostHomogeneity(t *testing.T) {
	recipe := breadRecipe()
	base, err := RecipeCost(recipe, snapshot())
	require.NoError(t, err)

	// Doubling every ingredient quantity doubles material cost.
	doubled := breadRecipe()
	for i := range doubled.Ingredients {
		doubled.Ingredients[i].Quantity *= 2
	}
	scaled, err := RecipeCost(doubled, snapshot())
	require.NoError(t, err)

	assert.InDelta(t, base.MaterialCost*2, scaled.MaterialCost, 1e-9)
}

func TestRecipeCostUnknownItemContributesZero(t *testing.T) {
	recipe := breadRecipe()
	recipe.Ingredients = append(recipe.Ingredients, domain.RecipeIngredient{
		InventoryItemID: "saffron", InventoryItemName: "Saffron", Quantity: 0.01, Unit: "kg", WastePct: 0,
	})

	breakdown, err := RecipeCost(recipe, snapshot())
	require.NoError(t, err)

	assert.InDelta(t, 0.1224, breakdown.MaterialCost, 1e-9)
	require.Len(t, breakdown.Details, 2)
	assert.Equal(t, 0.0, breakdown.Details[1].UnitCost)
	assert.Equal(t, 0.0, breakdown.Details[1].TotalCost)
}

func TestRecipeCostRejectsBadInput(t *testing.T) {
	_, err := RecipeCost(nil, snapshot())
	assert.ErrorIs(t, err, domain.ErrInvalidRecipe)

	zeroYield := breadRecipe()
	zeroYield.Yield = 0
	_, err = RecipeCost(zeroYield, snapshot())
	assert.ErrorIs(t, err, domain.ErrInvalidRecipe)

	negQty := breadRecipe()
	negQty.Ingredients[0].Quantity = -1
	_, err = RecipeCost(negQty, snapshot())
	assert.ErrorIs(t, err, domain.ErrInvalidRecipe)

	badWaste := breadRecipe()
	badWaste.Ingredients[0].WastePct = 150
	_, err = RecipeCost(badWaste, snapshot())
	assert.ErrorIs(t, err, domain.ErrInvalidRecipe)
}

package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

func cakeRecipe() *domain.Recipe {
	return &domain.Recipe{
		ID:        "rec-cake",
		ProductID: "prod-cake",
		Name:      "Sponge cake",
		Yield:     8,
		IsActive:  true,
		Ingredients: []domain.RecipeIngredient{
			{InventoryItemID: "flour", InventoryItemName: "Wheat flour", Quantity: 2, Unit: "kg", WastePct: 0},
			{InventoryItemID: "sugar", InventoryItemName: "Sugar", Quantity: 1.6, Unit: "kg", WastePct: 0},
		},
	}
}

func TestSimulateFeasible(t *testing.T) {
	// Stock: 100 kg flour, 40 kg sugar.
	sim, err := Simulate(cakeRecipe(), 16, snapshot())
	require.NoError(t, err)

	assert.True(t, sim.CanProduce)
	require.Len(t, sim.Requirements, 2)

	// 2 kg per 8 units, 16 units: 4 kg flour needed.
	flour := sim.Requirements[0]
	assert.Equal(t, "flour", flour.ItemID)
	assert.InDelta(t, 4.0, flour.Required, 1e-9)
	assert.Equal(t, 100.0, flour.Stock)
	assert.Equal(t, 0.0, flour.Missing)
	assert.Equal(t, RequirementOK, flour.Status)
}

func TestSimulateLacking(t *testing.T) {
	// 300 units need 60 kg sugar against 40 in stock.
	sim, err := Simulate(cakeRecipe(), 300, snapshot())
	require.NoError(t, err)

	assert.False(t, sim.CanProduce)

	sugar := sim.Requirements[1]
	assert.Equal(t, "sugar", sugar.ItemID)
	assert.InDelta(t, 60.0, sugar.Required, 1e-9)
	assert.InDelta(t, 20.0, sugar.Missing, 1e-9)
	assert.Equal(t, RequirementLacking, sugar.Status)

	// Flour still covers 300 units; each line carries its own verdict.
	assert.Equal(t, RequirementOK, sim.Requirements[0].Status)
}

func TestSimulateWasteInflatesRequirement(t *testing.T) {
	recipe := cakeRecipe()
	recipe.Ingredients = recipe.Ingredients[:1]
	recipe.Ingredients[0].WastePct = 10

	sim, err := Simulate(recipe, 8, snapshot())
	require.NoError(t, err)

	// 2 kg scaled by 10% waste for one full batch.
	assert.InDelta(t, 2.2, sim.Requirements[0].Required, 1e-9)
}

func TestSimulateRejectsNonPositiveTarget(t *testing.T) {
	_, err := Simulate(cakeRecipe(), 0, snapshot())
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = Simulate(cakeRecipe(), -3, snapshot())
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestSimulateCostScalesWithTarget(t *testing.T) {
	one, err := Simulate(cakeRecipe(), 1, snapshot())
	require.NoError(t, err)
	ten, err := Simulate(cakeRecipe(), 10, snapshot())
	require.NoError(t, err)

	assert.InDelta(t, one.EstimatedTotalCost*10, ten.EstimatedTotalCost, 1e-9)
}

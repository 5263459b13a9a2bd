package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

func orderWith(lines ...domain.OrderItem) domain.Order {
	return domain.Order{
		ID:     "ord-1",
		Status: domain.StatusConfirmed,
		Items:  lines,
	}
}

func TestNeedsAggregatesAcrossOrders(t *testing.T) {
	recipes := []domain.Recipe{*cakeRecipe()}

	orders := []domain.Order{
		orderWith(domain.OrderItem{ProductID: "prod-cake", ProductName: "Sponge cake", Quantity: 8}),
		orderWith(domain.OrderItem{ProductID: "prod-cake", ProductName: "Sponge cake", Quantity: 16}),
	}

	report := Needs(orders, recipes, snapshot())
	require.Len(t, report.Lines, 2)
	assert.Empty(t, report.Unmapped)

	// 24 units total: 6 kg flour, 4.8 kg sugar.
	flour := report.Lines[0]
	assert.Equal(t, "flour", flour.ItemID)
	assert.InDelta(t, 6.0, flour.TotalRequired, 1e-9)
	assert.Equal(t, NeedOK, flour.Status)

	sugar := report.Lines[1]
	assert.Equal(t, "sugar", sugar.ItemID)
	assert.InDelta(t, 4.8, sugar.TotalRequired, 1e-9)
	assert.Equal(t, NeedOK, sugar.Status)
}

func TestNeedsFlagsShortfall(t *testing.T) {
	recipes := []domain.Recipe{*cakeRecipe()}
	orders := []domain.Order{
		orderWith(domain.OrderItem{ProductID: "prod-cake", Quantity: 250}),
	}

	report := Needs(orders, recipes, snapshot())
	require.Len(t, report.Lines, 2)

	// 250 units need 50 kg sugar against 40 in stock.
	sugar := report.Lines[1]
	assert.Equal(t, NeedMissing, sugar.Status)
	assert.InDelta(t, 10.0, sugar.Missing, 1e-9)

	flour := report.Lines[0]
	assert.Equal(t, NeedOK, flour.Status)
}

func TestNeedsReportsUnmappedProducts(t *testing.T) {
	recipes := []domain.Recipe{*cakeRecipe()}
	orders := []domain.Order{
		orderWith(
			domain.OrderItem{ProductID: "prod-cake", Quantity: 8},
			domain.OrderItem{ProductID: "prod-brownie", ProductName: "Brownie", Quantity: 12},
		),
		orderWith(domain.OrderItem{ProductID: "prod-brownie", ProductName: "Brownie", Quantity: 6}),
	}

	report := Needs(orders, recipes, snapshot())

	// Products with no active recipe are reported, not silently dropped.
	require.Len(t, report.Unmapped, 1)
	assert.Equal(t, "prod-brownie", report.Unmapped[0].ProductID)
	assert.Equal(t, "Brownie", report.Unmapped[0].ProductName)
	assert.InDelta(t, 18.0, report.Unmapped[0].Quantity, 1e-9)
}

func TestNeedsIgnoresInactiveRecipes(t *testing.T) {
	inactive := *cakeRecipe()
	inactive.IsActive = false

	orders := []domain.Order{
		orderWith(domain.OrderItem{ProductID: "prod-cake", ProductName: "Sponge cake", Quantity: 8}),
	}

	report := Needs(orders, []domain.Recipe{inactive}, snapshot())
	assert.Empty(t, report.Lines)
	require.Len(t, report.Unmapped, 1)
	assert.Equal(t, "prod-cake", report.Unmapped[0].ProductID)
}

func TestNeedsEmptyOrderBook(t *testing.T) {
	report := Needs(nil, []domain.Recipe{*cakeRecipe()}, snapshot())
	assert.Empty(t, report.Lines)
	assert.Empty(t, report.Unmapped)
}

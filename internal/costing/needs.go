package costing

import (
	"sort"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

// NeedStatus says whether current stock covers an aggregated requirement.
type NeedStatus string

const (
	NeedOK      NeedStatus = "OK"
	NeedMissing NeedStatus = "MISSING"
)

// NeedLine is one raw material's consolidated requirement across all open
// orders.
type NeedLine struct {
	ItemID        string     `json:"item_id"`
	Name          string     `json:"name"`
	Unit          string     `json:"unit"`
	TotalRequired float64    `json:"total_required"`
	Stock         float64    `json:"stock"`
	Missing       float64    `json:"missing"`
	Status        NeedStatus `json:"status"`
}

// UnmappedProduct is an ordered product with no active recipe. It generates
// no material demand, so it is reported instead of silently under-counting.
type UnmappedProduct struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
}

// NeedsReport is the consolidated material plan for a set of open orders.
type NeedsReport struct {
	Lines    []NeedLine        `json:"lines"`
	Unmapped []UnmappedProduct `json:"unmapped"`
}

// Needs explodes every order line through its product's recipe and
// accumulates raw-material demand keyed by inventory item, then compares each
// total against current stock. Lines are sorted by item id so the result does
// not depend on traversal order.
func Needs(orders []domain.Order, recipes []domain.Recipe, idx *StockIndex) NeedsReport {
	recipeByProduct := make(map[string]*domain.Recipe, len(recipes))
	for i := range recipes {
		if recipes[i].IsActive {
			recipeByProduct[recipes[i].ProductID] = &recipes[i]
		}
	}

	type accum struct {
		name  string
		unit  string
		total float64
	}
	needs := make(map[string]*accum)
	unmappedQty := make(map[string]*UnmappedProduct)

	for _, order := range orders {
		for _, line := range order.Items {
			recipe, ok := recipeByProduct[line.ProductID]
			if !ok {
				if u, seen := unmappedQty[line.ProductID]; seen {
					u.Quantity += line.Quantity
				} else {
					unmappedQty[line.ProductID] = &UnmappedProduct{
						ProductID:   line.ProductID,
						ProductName: line.ProductName,
						Quantity:    line.Quantity,
					}
				}
				continue
			}

			for _, ing := range recipe.Ingredients {
				required := ing.Quantity * ing.WasteMultiplier() / recipe.Yield * line.Quantity

				if acc, seen := needs[ing.InventoryItemID]; seen {
					acc.total += required
				} else {
					needs[ing.InventoryItemID] = &accum{
						name:  ing.InventoryItemName,
						unit:  ing.Unit,
						total: required,
					}
				}
			}
		}
	}

	report := NeedsReport{
		Lines:    make([]NeedLine, 0, len(needs)),
		Unmapped: make([]UnmappedProduct, 0, len(unmappedQty)),
	}

	for itemID, acc := range needs {
		stock := idx.StockOf(itemID)

		line := NeedLine{
			ItemID:        itemID,
			Name:          acc.name,
			Unit:          acc.unit,
			TotalRequired: acc.total,
			Stock:         stock,
			Status:        NeedOK,
		}
		if stock < acc.total {
			line.Missing = acc.total - stock
			line.Status = NeedMissing
		}
		report.Lines = append(report.Lines, line)
	}
	sort.Slice(report.Lines, func(i, j int) bool {
		return report.Lines[i].ItemID < report.Lines[j].ItemID
	})

	for _, u := range unmappedQty {
		report.Unmapped = append(report.Unmapped, *u)
	}
	sort.Slice(report.Unmapped, func(i, j int) bool {
		return report.Unmapped[i].ProductID < report.Unmapped[j].ProductID
	})

	return report
}

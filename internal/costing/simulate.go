package costing

import "github.com/quesadillascandy/candy-backend/internal/domain"

// RequirementStatus says whether stock covers one ingredient requirement.
type RequirementStatus string

const (
	RequirementOK      RequirementStatus = "OK"
	RequirementLacking RequirementStatus = "LACKING"
)

// Requirement compares one ingredient's demand for a production run against
// available stock.
type Requirement struct {
	ItemID   string            `json:"item_id"`
	Name     string            `json:"name"`
	Unit     string            `json:"unit"`
	Required float64           `json:"required"`
	Stock    float64           `json:"stock"`
	Missing  float64           `json:"missing"`
	Status   RequirementStatus `json:"status"`
}

// Simulation is the feasibility verdict for producing a target quantity.
type Simulation struct {
	Requirements       []Requirement `json:"requirements"`
	EstimatedTotalCost float64       `json:"estimated_total_cost"`
	CanProduce         bool          `json:"can_produce"`
}

// Simulate checks whether targetQuantity units can be produced right now and
// what that run would cost at current valuations. A non-positive target is
// rejected rather than clamped.
func Simulate(recipe *domain.Recipe, targetQuantity float64, idx *StockIndex) (*Simulation, error) {
	if targetQuantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	breakdown, err := RecipeCost(recipe, idx)
	if err != nil {
		return nil, err
	}

	sim := &Simulation{
		Requirements:       make([]Requirement, 0, len(recipe.Ingredients)),
		EstimatedTotalCost: breakdown.TotalUnitCost * targetQuantity,
		CanProduce:         true,
	}

	for _, ing := range recipe.Ingredients {
		required := ing.Quantity * ing.WasteMultiplier() / recipe.Yield * targetQuantity
		stock := idx.StockOf(ing.InventoryItemID)

		missing := required - stock
		if missing < 0 {
			missing = 0
		}

		status := RequirementOK
		if missing > 0 {
			status = RequirementLacking
			sim.CanProduce = false
		}

		sim.Requirements = append(sim.Requirements, Requirement{
			ItemID:   ing.InventoryItemID,
			Name:     ing.InventoryItemName,
			Unit:     ing.Unit,
			Required: required,
			Stock:    stock,
			Missing:  missing,
			Status:   status,
		})
	}

	return sim, nil
}

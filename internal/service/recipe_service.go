package service

import (
	"context"

	"github.com/quesadillascandy/candy-backend/internal/costing"
	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/quesadillascandy/candy-backend/internal/repository"
)

// RecipeService answers costing and feasibility questions. All calculations
// run against a snapshot of inventory loaded per request, so a single
// response is internally consistent even while the ledger keeps moving.
type RecipeService struct {
	recipes   repository.RecipeRepository
	inventory repository.InventoryRepository
}

func NewRecipeService(recipes repository.RecipeRepository, inventory repository.InventoryRepository) *RecipeService {
	return &RecipeService{recipes: recipes, inventory: inventory}
}

func (s *RecipeService) ListRecipes(ctx context.Context, activeOnly bool) ([]domain.Recipe, error) {
	return s.recipes.ListRecipes(ctx, activeOnly)
}

func (s *RecipeService) GetRecipe(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	return s.recipes.GetRecipe(ctx, recipeID)
}

func (s *RecipeService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.recipes.ListProducts(ctx)
}

// Cost prices one recipe at current weighted-average costs.
func (s *RecipeService) Cost(ctx context.Context, recipeID string) (*costing.CostBreakdown, error) {
	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	idx, err := s.stockIndex(ctx)
	if err != nil {
		return nil, err
	}

	return costing.RecipeCost(recipe, idx)
}

// Simulate checks whether targetQuantity units of the recipe's product could
// be made from stock on hand.
func (s *RecipeService) Simulate(ctx context.Context, recipeID string, targetQuantity float64) (*costing.Simulation, error) {
	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	idx, err := s.stockIndex(ctx)
	if err != nil {
		return nil, err
	}

	return costing.Simulate(recipe, targetQuantity, idx)
}

func (s *RecipeService) stockIndex(ctx context.Context) (*costing.StockIndex, error) {
	items, err := s.inventory.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return costing.NewStockIndex(items), nil
}

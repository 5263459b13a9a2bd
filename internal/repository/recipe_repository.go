package repository

import (
	"context"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

// RecipeRepository reads the recipe book. Recipes are edited elsewhere; the
// costing engine only ever consumes them.
type RecipeRepository interface {
	// ListRecipes returns recipes with nested ingredients and cost lines.
	ListRecipes(ctx context.Context, activeOnly bool) ([]domain.Recipe, error)
	GetRecipe(ctx context.Context, recipeID string) (*domain.Recipe, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

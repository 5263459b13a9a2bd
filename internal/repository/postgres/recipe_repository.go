package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/quesadillascandy/candy-backend/internal/repository"
)

type recipeRepository struct {
	db *DB
}

// NewRecipeRepository builds the postgres-backed recipe book reader.
func NewRecipeRepository(db *DB) repository.RecipeRepository {
	return &recipeRepository{db: db}
}

const recipeColumns = `
	id, product_id, name, version, yield, prep_time_minutes, instructions,
	is_active, updated_at
`

func (r *recipeRepository) ListRecipes(ctx context.Context, activeOnly bool) ([]domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	var recipes []domain.Recipe
	if err := r.db.SelectContext(ctx, &recipes, query); err != nil {
		return nil, domain.WrapStorage("list recipes", err)
	}
	if len(recipes) == 0 {
		return recipes, nil
	}

	ingredientQuery := `
		SELECT ri.id, ri.recipe_id, ri.inventory_item_id,
		       COALESCE(ii.name, 'unknown') AS inventory_item_name,
		       ri.quantity, ri.unit, ri.waste_pct
		FROM recipe_ingredients ri
		LEFT JOIN inventory_items ii ON ii.id = ri.inventory_item_id
		ORDER BY ri.recipe_id, ri.id
	`
	var ingredients []domain.RecipeIngredient
	if err := r.db.SelectContext(ctx, &ingredients, ingredientQuery); err != nil {
		return nil, domain.WrapStorage("list recipe ingredients", err)
	}

	costQuery := `SELECT id, recipe_id, concept, amount, is_per_unit FROM recipe_costs ORDER BY recipe_id, id`
	var costs []domain.RecipeCost
	if err := r.db.SelectContext(ctx, &costs, costQuery); err != nil {
		return nil, domain.WrapStorage("list recipe costs", err)
	}

	ingredientsByRecipe := make(map[string][]domain.RecipeIngredient)
	for _, ing := range ingredients {
		ingredientsByRecipe[ing.RecipeID] = append(ingredientsByRecipe[ing.RecipeID], ing)
	}
	costsByRecipe := make(map[string][]domain.RecipeCost)
	for _, c := range costs {
		costsByRecipe[c.RecipeID] = append(costsByRecipe[c.RecipeID], c)
	}
	for i := range recipes {
		recipes[i].Ingredients = ingredientsByRecipe[recipes[i].ID]
		recipes[i].Costs = costsByRecipe[recipes[i].ID]
	}

	return recipes, nil
}

func (r *recipeRepository) GetRecipe(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	var recipe domain.Recipe
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`
	if err := r.db.GetContext(ctx, &recipe, query, recipeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidRecipe
		}
		return nil, domain.WrapStorage("get recipe", err)
	}

	ingredientQuery := `
		SELECT ri.id, ri.recipe_id, ri.inventory_item_id,
		       COALESCE(ii.name, 'unknown') AS inventory_item_name,
		       ri.quantity, ri.unit, ri.waste_pct
		FROM recipe_ingredients ri
		LEFT JOIN inventory_items ii ON ii.id = ri.inventory_item_id
		WHERE ri.recipe_id = $1
		ORDER BY ri.id
	`
	if err := r.db.SelectContext(ctx, &recipe.Ingredients, ingredientQuery, recipeID); err != nil {
		return nil, domain.WrapStorage("get recipe ingredients", err)
	}

	costQuery := `SELECT id, recipe_id, concept, amount, is_per_unit FROM recipe_costs WHERE recipe_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &recipe.Costs, costQuery, recipeID); err != nil {
		return nil, domain.WrapStorage("get recipe costs", err)
	}

	return &recipe, nil
}

func (r *recipeRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	query := `SELECT id, name, recipe_id, created_at FROM products ORDER BY name`
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, domain.WrapStorage("list products", err)
	}

	return products, nil
}

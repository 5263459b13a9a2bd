package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quesadillascandy/candy-backend/internal/service"
)

type RecipeHandler struct {
	service *service.RecipeService
}

func NewRecipeHandler(service *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"

	recipes, err := h.service.ListRecipes(c.Request.Context(), activeOnly)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.service.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Cost(c *gin.Context) {
	breakdown, err := h.service.Cost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

type simulatePayload struct {
	Quantity float64 `json:"quantity" binding:"required"`
}

func (h *RecipeHandler) Simulate(c *gin.Context) {
	var payload simulatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	simulation, err := h.service.Simulate(c.Request.Context(), c.Param("id"), payload.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, simulation)
}

func (h *RecipeHandler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
